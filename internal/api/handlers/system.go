package handlers

import (
	"net/http"

	"github.com/ramonehamilton/MD-Companion/internal/api/response"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
	"github.com/ramonehamilton/MD-Companion/internal/metrics"
	"github.com/ramonehamilton/MD-Companion/internal/version"
)

// SystemHandler handles system-related API requests.
type SystemHandler struct {
	controller *facade.Controller
	metrics    *metrics.APIMetrics
}

// NewSystemHandler creates a new SystemHandler. m may be nil.
func NewSystemHandler(controller *facade.Controller, m *metrics.APIMetrics) *SystemHandler {
	return &SystemHandler{controller: controller, metrics: m}
}

// GetVersion returns the build information.
func (h *SystemHandler) GetVersion(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, version.Get())
}

// GetStatus returns the data file path, record count and unsaved state.
func (h *SystemHandler) GetStatus(w http.ResponseWriter, _ *http.Request) {
	st, err := h.controller.Status()
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, st)
}

// GetMetrics returns request counts and latency percentiles.
func (h *SystemHandler) GetMetrics(w http.ResponseWriter, _ *http.Request) {
	if h.metrics == nil {
		response.Success(w, metrics.Snapshot{})
		return
	}
	response.Success(w, h.metrics.Snapshot())
}

// Save writes the state to the data file.
func (h *SystemHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Save(r.Context()); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"status": "saved"})
}

// Reload reads the data file again. It is refused while there are unsaved
// changes.
func (h *SystemHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Reload(r.Context()); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"status": "reloaded"})
}
