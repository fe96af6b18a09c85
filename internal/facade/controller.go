package facade

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ramonehamilton/MD-Companion/internal/decks"
	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/events"
	"github.com/ramonehamilton/MD-Companion/internal/models"
	"github.com/ramonehamilton/MD-Companion/internal/records"
	"github.com/ramonehamilton/MD-Companion/internal/season"
	"github.com/ramonehamilton/MD-Companion/internal/storage"
)

// Controller holds the record store, both deck catalogs and the season
// partition. All access is serialized by mu.
type Controller struct {
	services *Services

	mu        sync.Mutex
	store     *records.Store
	myDecks   *decks.Catalog
	oppDecks  *decks.Catalog
	partition *season.Partition

	// revision counts mutations; saved is the revision last persisted.
	revision uint64
	saved    uint64

	Records *RecordFacade
	Decks   *DeckFacade
	Seasons *SeasonFacade
	Stats   *StatsFacade
	Backups *BackupFacade
}

// New creates a controller holding the default document. Call Load to read
// the persisted state.
func New(services *Services) *Controller {
	if services.Logger == nil {
		services.Logger = zap.NewNop()
	}
	if services.Dispatcher == nil {
		services.Dispatcher = events.NewEventDispatcher(services.Logger)
	}

	c := &Controller{services: services}
	c.install(storage.DefaultDocument(services.DefaultSeason))

	c.Records = &RecordFacade{c: c}
	c.Decks = &DeckFacade{c: c}
	c.Seasons = &SeasonFacade{c: c}
	c.Stats = &StatsFacade{c: c}
	c.Backups = &BackupFacade{c: c}
	return c
}

// install replaces the state with doc. Caller holds mu or owns c exclusively.
func (c *Controller) install(doc *storage.Document) {
	c.store = records.NewStore(doc.Records)
	c.myDecks = decks.NewCatalog(doc.MyDecks)
	c.oppDecks = decks.NewCatalog(doc.OppDecks)
	c.partition = season.NewPartition(c.store, doc.CurrentSeason)
	c.saved = c.revision
}

// changed records a mutation unless err is set. Caller holds mu.
func (c *Controller) changed(err error) {
	if err == nil {
		c.revision++
	}
}

// Dirty reports whether the state has changes that were not saved.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revision != c.saved
}

// document snapshots the state. Caller holds mu.
func (c *Controller) document() *storage.Document {
	return &storage.Document{
		MyDecks:       c.myDecks.Names(),
		OppDecks:      c.oppDecks.Names(),
		Records:       c.store.All(),
		CurrentSeason: c.partition.Active(),
	}
}

// Load reads the persisted document. On failure the defaults stay in place
// and the error is returned so the caller can report it.
func (c *Controller) Load(ctx context.Context) error {
	doc, err := c.services.Gateway.Load(ctx)

	c.mu.Lock()
	if doc != nil {
		c.install(doc)
	}
	n := c.store.Len()
	c.mu.Unlock()

	if err != nil {
		c.services.Logger.Error("failed to load data, starting with defaults",
			zap.String("path", c.services.Gateway.Path()), zap.Error(err))
		return appError("Failed to load data", err)
	}
	c.services.Logger.Info("data loaded", zap.String("path", c.services.Gateway.Path()), zap.Int("records", n))
	return nil
}

// Reload reads the document again after an external edit. The current
// state is kept when the file cannot be read, and when it holds changes
// that were not saved yet.
func (c *Controller) Reload(ctx context.Context) error {
	return c.reload(ctx, false)
}

// reload replaces the state with the stored document. With force, unsaved
// changes are discarded.
func (c *Controller) reload(ctx context.Context, force bool) error {
	doc, err := c.services.Gateway.Load(ctx)
	if err != nil {
		c.services.Logger.Warn("reload failed, keeping current state", zap.Error(err))
		return appError("Failed to reload data", err)
	}

	c.mu.Lock()
	if !force && c.revision != c.saved {
		c.mu.Unlock()
		c.services.Logger.Warn("data file changed on disk while there are unsaved changes, keeping current state",
			zap.String("path", c.services.Gateway.Path()))
		return appError("Failed to reload data",
			fmt.Errorf("unsaved changes would be lost: %w", errs.ErrInvalidOperation))
	}
	c.install(doc)
	n := c.store.Len()
	c.mu.Unlock()

	c.dispatch(ctx, events.TypeDataReloaded, events.DataReloadedEvent{Path: c.services.Gateway.Path(), Records: n})
	return nil
}

// Save writes the state through the gateway.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	doc := c.document()
	rev := c.revision
	c.mu.Unlock()

	if err := c.services.Gateway.Save(ctx, doc); err != nil {
		c.services.Logger.Error("failed to save data", zap.String("path", c.services.Gateway.Path()), zap.Error(err))
		return appError("Failed to save data", err)
	}

	c.mu.Lock()
	if rev > c.saved {
		c.saved = rev
	}
	c.mu.Unlock()
	c.dispatch(ctx, events.TypeDataSaved, events.DataSavedEvent{Path: c.services.Gateway.Path(), Records: len(doc.Records)})
	return nil
}

// Status describes the data file behind the controller.
type Status struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
	Season  string `json:"season"`
	Dirty   bool   `json:"dirty"`

	// SchemaVersion is set for backends with a versioned schema.
	SchemaVersion *uint `json:"schema_version,omitempty"`
}

// Status reports the data file, the record count and the unsaved state.
func (c *Controller) Status() (Status, error) {
	c.mu.Lock()
	st := Status{
		Path:    c.services.Gateway.Path(),
		Records: c.store.Len(),
		Season:  c.partition.Active(),
		Dirty:   c.revision != c.saved,
	}
	c.mu.Unlock()

	if sr, ok := c.services.Gateway.(storage.SchemaReporter); ok {
		v, err := sr.SchemaVersion()
		if err != nil {
			return st, appError("Failed to read schema version", err)
		}
		st.SchemaVersion = &v
	}
	return st, nil
}

// Snapshot returns a copy of the whole state.
func (c *Controller) Snapshot() *storage.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.document()
}

// seasonRecords returns the active season tag and a copy of its records.
func (c *Controller) seasonRecords() (string, []models.MatchRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	active := c.partition.Active()
	return active, c.store.InSeason(active)
}

func (c *Controller) dispatch(ctx context.Context, eventType string, data any) {
	c.services.Dispatcher.Dispatch(events.NewTypedEvent(ctx, eventType, data))
}
