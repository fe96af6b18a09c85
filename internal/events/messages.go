package events

// Event types.
const (
	TypeRecordAdded   = "record:added"
	TypeRecordUpdated = "record:updated"
	TypeRecordDeleted = "record:deleted"
	TypeSeasonChanged = "season:changed"
	TypeSeasonDeleted = "season:deleted"
	TypeDeckUpdated   = "deck:updated"
	TypeDataSaved     = "data:saved"
	TypeDataReloaded  = "data:reloaded"
)

// RecordEvent is the payload for record:added, record:updated and record:deleted.
type RecordEvent struct {
	ID     int    `json:"id"`
	Season string `json:"season"`
}

// SeasonChangedEvent is the payload for season:changed.
type SeasonChangedEvent struct {
	Active string `json:"active"`
}

// SeasonDeletedEvent is the payload for season:deleted.
type SeasonDeletedEvent struct {
	Season  string `json:"season"`
	Removed int    `json:"removed"` // records removed with the season
}

// DeckUpdatedEvent is the payload for deck:updated.
type DeckUpdatedEvent struct {
	Kind    string `json:"kind"`   // "mine" or "opponent"
	Action  string `json:"action"` // "added", "renamed" or "deleted"
	Name    string `json:"name"`
	NewName string `json:"newName,omitempty"`
}

// DataSavedEvent is the payload for data:saved.
type DataSavedEvent struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
}

// DataReloadedEvent is the payload for data:reloaded, sent after the data
// file was edited outside the application and read again.
type DataReloadedEvent struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
}
