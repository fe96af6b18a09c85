package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ramonehamilton/MD-Companion/internal/api/response"
	"github.com/ramonehamilton/MD-Companion/internal/export"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// ExportHandler downloads the visible rows of the active season.
type ExportHandler struct {
	records *facade.RecordFacade
	seasons *facade.SeasonFacade
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(records *facade.RecordFacade, seasons *facade.SeasonFacade) *ExportHandler {
	return &ExportHandler{records: records, seasons: seasons}
}

// ExportRecords writes the rows as an attachment.
// Query: format (csv|json), deck, order, as for GetRecords.
func (h *ExportHandler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	rows := export.RecordRows(h.records.List(q.Get("deck"), models.ParseSortOrder(q.Get("order"))))
	filename := export.GenerateFilename("records_"+h.seasons.Active(), format, time.Now())

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.Write(w, format, rows, true); err != nil {
		response.InternalError(w, err)
	}
}
