package handler

import (
	"errors"
	"log"
	"net/http"
	"pong-web/internal/models"
	"pong-web/internal/service"

	"github.com/julienschmidt/httprouter"
)

// AssetHandler handles HTTP requests for the index page and static files
type AssetHandler struct {
	assetService *service.AssetService
	rootStatic   bool
}

// NewAssetHandler creates a new asset handler. When rootStatic is set, files
// in the static root are also reachable at the URL root through Fallback.
func NewAssetHandler(assetService *service.AssetService, rootStatic bool) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
		rootStatic:   rootStatic,
	}
}

// Index handles GET /
func (h *AssetHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	asset, err := h.assetService.Index(r.Context())
	if err != nil {
		writeAssetError(w, r, err)
		return
	}
	serveAsset(w, r, asset)
}

// Static handles GET /static/*filepath
func (h *AssetHandler) Static(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	asset, err := h.assetService.Static(r.Context(), ps.ByName("filepath"))
	if err != nil {
		writeAssetError(w, r, err)
		return
	}
	serveAsset(w, r, asset)
}

// Fallback handles every request the routing table does not match
func (h *AssetHandler) Fallback(w http.ResponseWriter, r *http.Request) {
	if !h.rootStatic || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		http.NotFound(w, r)
		return
	}

	asset, err := h.assetService.Static(r.Context(), r.URL.Path)
	if err != nil {
		writeAssetError(w, r, err)
		return
	}
	serveAsset(w, r, asset)
}

func serveAsset(w http.ResponseWriter, r *http.Request, asset *models.Asset) {
	defer asset.Close()
	http.ServeContent(w, r, asset.Name, asset.ModTime, asset.Content)
}

func writeAssetError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAssetNotFound):
		http.NotFound(w, r)
	case errors.Is(err, service.ErrInvalidPath):
		log.Printf("rejected asset request: method=%s path=%q: %v", r.Method, r.URL.Path, err)
		http.Error(w, "invalid path", http.StatusBadRequest)
	default:
		log.Printf("error serving asset: method=%s path=%q: %v", r.Method, r.URL.Path, err)
		http.Error(w, "failed to serve asset", http.StatusInternalServerError)
	}
}
