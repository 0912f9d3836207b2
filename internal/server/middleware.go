package server

import (
	"log"
	"net/http"
	"pong-web/internal/metrics"
	"time"

	"github.com/julienschmidt/httprouter"
)

// statusRecorder remembers the status code written through it
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// observe wraps a route handler with access logging and request counting
func observe(route string, m *metrics.Metrics, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next(rec, r, ps)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		m.ObserveRequest(route, rec.status)
		log.Printf("method=%s path=%q route=%s status=%d duration=%s", r.Method, r.URL.Path, route, rec.status, time.Since(start))
	}
}

// observeHandler is observe for plain http.Handlers
func observeHandler(route string, m *metrics.Metrics, next http.Handler) http.Handler {
	handle := observe(route, m, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		next.ServeHTTP(w, r)
	})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle(w, r, nil)
	})
}
