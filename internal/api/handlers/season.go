package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/MD-Companion/internal/api/response"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
)

// SeasonHandler handles season API requests.
type SeasonHandler struct {
	facade *facade.SeasonFacade
}

// NewSeasonHandler creates a new SeasonHandler.
func NewSeasonHandler(facade *facade.SeasonFacade) *SeasonHandler {
	return &SeasonHandler{facade: facade}
}

// SeasonsResponse lists the known seasons and the active one.
type SeasonsResponse struct {
	Seasons []string `json:"seasons"`
	Active  string   `json:"active"`
}

// SeasonRequest names a season.
type SeasonRequest struct {
	Season string `json:"season"`
}

func (h *SeasonHandler) current() SeasonsResponse {
	return SeasonsResponse{Seasons: h.facade.List(), Active: h.facade.Active()}
}

// GetSeasons returns every season and the active one.
func (h *SeasonHandler) GetSeasons(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.current())
}

// CreateSeason activates a new, unused season tag.
func (h *SeasonHandler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	var req SeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	if err := h.facade.Create(r.Context(), req.Season); err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, h.current())
}

// ActivateSeason switches the active season. Unseen tags are accepted.
func (h *SeasonHandler) ActivateSeason(w http.ResponseWriter, r *http.Request) {
	var req SeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Season) == "" {
		response.BadRequest(w, errors.New("season is required"))
		return
	}

	h.facade.Activate(r.Context(), strings.TrimSpace(req.Season))
	response.Success(w, h.current())
}

// DeleteSeason removes every record of a season other than the active one.
func (h *SeasonHandler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	removed, err := h.facade.Delete(r.Context(), chi.URLParam(r, "season"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]int{"removed": removed})
}
