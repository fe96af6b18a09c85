package handlers

import (
	"net/http"

	"github.com/ramonehamilton/MD-Companion/internal/api/response"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
	"github.com/ramonehamilton/MD-Companion/internal/stats"
)

// StatsHandler serves statistics and distributions of the active season.
type StatsHandler struct {
	facade *facade.StatsFacade
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(facade *facade.StatsFacade) *StatsHandler {
	return &StatsHandler{facade: facade}
}

// StreaksResponse adds a display string to the streak counters.
type StreaksResponse struct {
	stats.StreakStats
	Current string `json:"current_display"`
}

// GetDeckStats returns the statistics of the own-deck in ?deck=.
// A missing deck yields all zeros.
func (h *StatsHandler) GetDeckStats(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.facade.Deck(r.URL.Query().Get("deck")))
}

// GetStreaks returns win/loss streaks, optionally for one own-deck.
func (h *StatsHandler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	s := h.facade.Streaks(r.URL.Query().Get("deck"))
	response.Success(w, StreaksResponse{StreakStats: s, Current: stats.FormatCurrentStreak(s.CurrentStreak)})
}

// GetOpponentDistribution groups by opponent deck. ?rank= filters by rank prefix.
func (h *StatsHandler) GetOpponentDistribution(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.facade.Opponents(r.URL.Query().Get("rank")))
}

// GetOwnDistribution groups by own deck.
func (h *StatsHandler) GetOwnDistribution(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.facade.Own())
}
