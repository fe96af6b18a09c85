package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ramonehamilton/MD-Companion/internal/api/response"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
)

// BackupHandler handles backup API requests.
type BackupHandler struct {
	facade *facade.BackupFacade
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(facade *facade.BackupFacade) *BackupHandler {
	return &BackupHandler{facade: facade}
}

// BackupRequest is the body of create and restore requests. Name selects the
// backup to restore; on create it is optional.
type BackupRequest struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

// GetBackups lists backups, newest first.
func (h *BackupHandler) GetBackups(w http.ResponseWriter, _ *http.Request) {
	backups, err := h.facade.List()
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, backups)
}

// CreateBackup saves the state and backs up the data file.
func (h *BackupHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	var req BackupRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, errors.New("invalid request body"))
			return
		}
	}

	info, err := h.facade.Create(r.Context(), req.Name, req.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, info)
}

// RestoreBackup replaces the data file with a backup and reloads it.
func (h *BackupHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var req BackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Name == "" {
		response.BadRequest(w, errors.New("backup name is required"))
		return
	}

	if err := h.facade.Restore(r.Context(), req.Name, req.Password); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"status": "restored"})
}
