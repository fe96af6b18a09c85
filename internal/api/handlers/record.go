package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/MD-Companion/internal/api/response"
	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// RecordHandler handles match record API requests.
type RecordHandler struct {
	facade *facade.RecordFacade
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(facade *facade.RecordFacade) *RecordHandler {
	return &RecordHandler{facade: facade}
}

// GetRecords returns the active season's rows.
// Query: deck (own-deck filter, default ALL), order (asc|desc).
func (h *RecordHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows := h.facade.List(q.Get("deck"), models.ParseSortOrder(q.Get("order")))
	response.Success(w, rows)
}

// GetRecord returns a single record from any season.
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	rec, err := h.facade.Get(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, rec)
}

// CreateRecord adds a record to the active season.
func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req models.RecordFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if err := normalizeEnums(&req.Result, &req.Turn, &req.Coin); err != nil {
		response.BadRequest(w, err)
		return
	}

	rec, err := h.facade.Add(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, rec)
}

// UpdateRecord edits a record. Omitted fields are left unchanged.
func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	var req models.RecordUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if err := normalizeEnums(req.Result, req.Turn, req.Coin); err != nil {
		response.BadRequest(w, err)
		return
	}

	rec, err := h.facade.Update(r.Context(), id, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, rec)
}

// DeleteRecord removes a record.
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	if err := h.facade.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// normalizeEnums parses the enum fields the way the CLI flags are parsed,
// ignoring case and surrounding spaces. Nil fields are skipped.
func normalizeEnums(result *models.Result, turn *models.Turn, coin *models.Coin) error {
	if result != nil {
		v, ok := models.ParseResult(string(*result))
		if !ok {
			return fmt.Errorf("invalid result %q, want win or loss: %w", *result, errs.ErrValidation)
		}
		*result = v
	}
	if turn != nil {
		v, ok := models.ParseTurn(string(*turn))
		if !ok {
			return fmt.Errorf("invalid turn %q, want first or second: %w", *turn, errs.ErrValidation)
		}
		*turn = v
	}
	if coin != nil {
		v, ok := models.ParseCoin(string(*coin))
		if !ok {
			return fmt.Errorf("invalid coin %q, want heads or tails: %w", *coin, errs.ErrValidation)
		}
		*coin = v
	}
	return nil
}

func recordID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "recordID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid record id %q: %w", raw, errs.ErrValidation)
	}
	return id, nil
}
