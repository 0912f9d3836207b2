package handler

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"pong-web/internal/models"
	"pong-web/internal/service"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// DataHandler handles HTTP requests for the save-data endpoint
type DataHandler struct {
	dataService  *service.DataService
	maxBodyBytes int64
}

// NewDataHandler creates a new data handler
func NewDataHandler(dataService *service.DataService, maxBodyBytes int64) *DataHandler {
	return &DataHandler{
		dataService:  dataService,
		maxBodyBytes: maxBodyBytes,
	}
}

// SaveData handles POST /save-data
func (h *DataHandler) SaveData(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		log.Printf("error reading save-data body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.dataService.Save(r.Context(), body, isJSONContentType(r.Header.Get("Content-Type"))); err != nil {
		if errors.Is(err, service.ErrMalformedPayload) {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		log.Printf("error saving data: %v", err)
		http.Error(w, "failed to save data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, models.Acknowledgement); err != nil {
		log.Printf("error writing response: %v", err)
	}
}

// isJSONContentType reports whether a Content-Type header names JSON,
// either application/json or a +json structured suffix.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}
