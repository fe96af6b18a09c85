package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// APIMetrics counts requests and records their latency.
type APIMetrics struct {
	Latency *Histogram

	Requests     atomic.Uint64
	ClientErrors atomic.Uint64 // 4xx
	ServerErrors atomic.Uint64 // 5xx

	startTime time.Time
}

// NewAPIMetrics creates a collector.
func NewAPIMetrics() *APIMetrics {
	return &APIMetrics{
		Latency:   NewHistogram(10000),
		startTime: time.Now(),
	}
}

// Middleware records every request passing through next.
func (m *APIMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		m.Latency.Record(time.Since(start))
		m.Requests.Add(1)
		switch status := ww.Status(); {
		case status >= 500:
			m.ServerErrors.Add(1)
		case status >= 400:
			m.ClientErrors.Add(1)
		}
	})
}

// Snapshot is the JSON view served by the metrics endpoint.
type Snapshot struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	Requests      uint64  `json:"requests"`
	ClientErrors  uint64  `json:"client_errors"`
	ServerErrors  uint64  `json:"server_errors"`
	Latency       Summary `json:"latency"`
}

// Snapshot returns the current counters and latency summary.
func (m *APIMetrics) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds: time.Since(m.startTime).Seconds(),
		Requests:      m.Requests.Load(),
		ClientErrors:  m.ClientErrors.Load(),
		ServerErrors:  m.ServerErrors.Load(),
		Latency:       m.Latency.Summary(),
	}
}
