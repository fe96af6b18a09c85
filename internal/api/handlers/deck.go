package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/MD-Companion/internal/api/response"
	"github.com/ramonehamilton/MD-Companion/internal/decks"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
)

// DeckHandler handles deck catalog API requests. The {kind} URL parameter
// selects the own ("mine") or opponent catalog.
type DeckHandler struct {
	facade *facade.DeckFacade
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(facade *facade.DeckFacade) *DeckHandler {
	return &DeckHandler{facade: facade}
}

// DeckRequest is the body of add and rename requests.
type DeckRequest struct {
	Name    string `json:"name"`
	NewName string `json:"new_name,omitempty"`
}

// GetDecks returns the catalog in order.
func (h *DeckHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	kind, err := decks.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, h.facade.List(kind))
}

// CreateDeck appends a name to the catalog.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	kind, err := decks.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	if err := h.facade.Add(r.Context(), kind, req.Name); err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, h.facade.List(kind))
}

// RenameDeck renames a catalog entry in place. Records keep the old name.
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	kind, err := decks.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	if err := h.facade.Rename(r.Context(), kind, req.Name, req.NewName); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, h.facade.List(kind))
}

// DeleteDeck removes a catalog entry.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	kind, err := decks.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.facade.Delete(r.Context(), kind, chi.URLParam(r, "name")); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}
