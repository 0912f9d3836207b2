package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("index", http.StatusOK)
	m.ObserveRequest("index", http.StatusOK)
	m.ObserveRequest("static", http.StatusNotFound)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("index", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("static", "404")))
}

func TestMetrics_IncrementSavedPayloads(t *testing.T) {
	m := NewMetrics()
	m.IncrementSavedPayloads()

	snapshot := m.GetSnapshot()
	assert.Equal(t, int64(1), snapshot["pong_saved_payloads_total"])
}

func TestMetrics_IncrementRejectedPayloads(t *testing.T) {
	m := NewMetrics()
	m.IncrementRejectedPayloads()

	snapshot := m.GetSnapshot()
	assert.Equal(t, int64(1), snapshot["pong_rejected_payloads_total"])
}

func TestMetrics_ConcurrentAccess(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.ObserveRequest("save-data", http.StatusOK)
			m.IncrementSavedPayloads()
			m.IncrementRejectedPayloads()
		}()
	}

	wg.Wait()

	snapshot := m.GetSnapshot()
	assert.Equal(t, int64(100), snapshot["pong_http_requests_total"])
	assert.Equal(t, int64(100), snapshot["pong_saved_payloads_total"])
	assert.Equal(t, int64(100), snapshot["pong_rejected_payloads_total"])
}

func TestMetrics_GetSnapshot(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("index", http.StatusOK)
	m.ObserveRequest("static", http.StatusOK)
	m.ObserveRequest("static", http.StatusBadRequest)
	m.IncrementSavedPayloads()

	expected := map[string]int64{
		"pong_http_requests_total":     3,
		"pong_saved_payloads_total":    1,
		"pong_rejected_payloads_total": 0,
	}
	assert.Equal(t, expected, m.GetSnapshot())
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("index", http.StatusOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pong_http_requests_total{code="200",route="index"} 1`)
}
