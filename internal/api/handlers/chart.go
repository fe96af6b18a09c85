package handlers

import (
	"net/http"

	"github.com/ramonehamilton/MD-Companion/internal/api/response"
	"github.com/ramonehamilton/MD-Companion/internal/charts"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// ChartHandler serves the distribution pie charts as HTML pages.
type ChartHandler struct {
	stats   *facade.StatsFacade
	seasons *facade.SeasonFacade
	config  charts.ChartConfig
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(stats *facade.StatsFacade, seasons *facade.SeasonFacade, config charts.ChartConfig) *ChartHandler {
	return &ChartHandler{stats: stats, seasons: seasons, config: config}
}

// GetOpponentChart renders the opponent-deck pie. ?rank= filters by rank prefix.
func (h *ChartHandler) GetOpponentChart(w http.ResponseWriter, r *http.Request) {
	rank := r.URL.Query().Get("rank")
	if rank == "" {
		rank = models.AllFilter
	}
	pie := charts.OpponentPie(h.stats.Opponents(rank), h.seasons.Active(), rank, h.config)
	h.render(w, func() error { return charts.Render(w, pie) })
}

// GetOwnChart renders the own-deck pie.
func (h *ChartHandler) GetOwnChart(w http.ResponseWriter, _ *http.Request) {
	pie := charts.OwnPie(h.stats.Own(), h.seasons.Active(), h.config)
	h.render(w, func() error { return charts.Render(w, pie) })
}

func (h *ChartHandler) render(w http.ResponseWriter, fn func() error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := fn(); err != nil {
		response.InternalError(w, err)
	}
}
