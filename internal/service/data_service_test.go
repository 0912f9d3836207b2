package service

import (
	"bytes"
	"context"
	"log"
	"os"
	"pong-web/internal/metrics"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestDataService_Save_Success(t *testing.T) {
	logs := captureLog(t)
	m := metrics.NewMetrics()
	service := NewDataService(m)
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	record, err := service.Save(context.Background(), []byte(`{"a": 1, "b": [true, null]}`), true)
	require.NoError(t, err)

	_, err = uuid.Parse(record.RequestID)
	assert.NoError(t, err)
	assert.True(t, record.IsJSON)
	assert.Equal(t, `{"a":1,"b":[true,null]}`, string(record.Payload))
	assert.Equal(t, fixed, record.ReceivedAt)

	assert.Contains(t, logs.String(), "request_id="+record.RequestID)
	assert.Contains(t, logs.String(), `is_json=true, payload={"a":1,"b":[true,null]}`)
	assert.Equal(t, int64(1), m.GetSnapshot()["pong_saved_payloads_total"])
}

func TestDataService_Save_ScalarPayload(t *testing.T) {
	captureLog(t)
	service := NewDataService(metrics.NewMetrics())

	record, err := service.Save(context.Background(), []byte(" 42 "), false)
	require.NoError(t, err)
	assert.False(t, record.IsJSON)
	assert.Equal(t, "42", string(record.Payload))
}

func TestDataService_Save_Malformed(t *testing.T) {
	captureLog(t)
	m := metrics.NewMetrics()
	service := NewDataService(m)

	tests := []string{"", "   ", "not json", `{"a": 1`, `{"a": 1} trailing`}
	for _, body := range tests {
		t.Run(body, func(t *testing.T) {
			record, err := service.Save(context.Background(), []byte(body), true)
			assert.Nil(t, record)
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}

	snapshot := m.GetSnapshot()
	assert.Equal(t, int64(len(tests)), snapshot["pong_rejected_payloads_total"])
	assert.Equal(t, int64(0), snapshot["pong_saved_payloads_total"])
}

func TestDataService_Save_UniqueRequestIDs(t *testing.T) {
	captureLog(t)
	service := NewDataService(metrics.NewMetrics())

	first, err := service.Save(context.Background(), []byte(`{}`), true)
	require.NoError(t, err)
	second, err := service.Save(context.Background(), []byte(`{}`), true)
	require.NoError(t, err)

	assert.NotEqual(t, first.RequestID, second.RequestID)
}

func TestDataService_Save_CancelledContext(t *testing.T) {
	service := NewDataService(metrics.NewMetrics())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Save(ctx, []byte(`{}`), true)
	assert.ErrorIs(t, err, context.Canceled)
}
