package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"pong-web/internal/metrics"
	"pong-web/internal/models"
	"time"

	"github.com/google/uuid"
)

var ErrMalformedPayload = errors.New("malformed JSON payload")

// DataService accepts save-data payloads. Payloads are logged and dropped.
type DataService struct {
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewDataService creates a new data service
func NewDataService(metrics *metrics.Metrics) *DataService {
	return &DataService{
		metrics: metrics,
		now:     time.Now,
	}
}

// Save parses body as JSON and logs it
func (s *DataService) Save(ctx context.Context, body []byte, isJSON bool) (*models.SaveRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestID := uuid.New().String()

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		s.metrics.IncrementRejectedPayloads()
		log.Printf("request_id=%s: save-data rejected, is_json=%t, bytes=%d, error=%v", requestID, isJSON, len(body), err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	record := &models.SaveRecord{
		RequestID:  requestID,
		IsJSON:     isJSON,
		Payload:    json.RawMessage(compact.Bytes()),
		ReceivedAt: s.now(),
	}

	s.metrics.IncrementSavedPayloads()
	log.Printf("request_id=%s: save-data received, is_json=%t, payload=%s", record.RequestID, record.IsJSON, record.Payload)

	return record, nil
}
