package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHistogram_Summary(t *testing.T) {
	h := NewHistogram(100)
	assert.Equal(t, Summary{}, h.Summary())

	for i := 1; i <= 5; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}

	s := h.Summary()
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 3.0, s.Mean, 0.001)
	assert.InDelta(t, 1.0, s.Min, 0.001)
	assert.InDelta(t, 5.0, s.Max, 0.001)
	assert.InDelta(t, 3.0, s.P50, 0.001)
	assert.InDelta(t, 4.8, s.P95, 0.001)
}

func TestHistogram_RingOverwritesOldest(t *testing.T) {
	h := NewHistogram(3)
	for i := 1; i <= 5; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}

	assert.Equal(t, 3, h.Count())
	s := h.Summary()
	assert.InDelta(t, 3.0, s.Min, 0.001)
	assert.InDelta(t, 5.0, s.Max, 0.001)

	h.Reset()
	assert.Zero(t, h.Count())
}

func TestAPIMetrics_Middleware(t *testing.T) {
	m := NewAPIMetrics()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte("ok"))
		}
	}))

	for _, path := range []string{"/", "/missing", "/boom", "/"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	snap := m.Snapshot()
	assert.Equal(t, uint64(4), snap.Requests)
	assert.Equal(t, uint64(1), snap.ClientErrors)
	assert.Equal(t, uint64(1), snap.ServerErrors)
	assert.Equal(t, 4, snap.Latency.Count)
}
