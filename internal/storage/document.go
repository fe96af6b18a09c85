// Package storage persists the tracker state: the JSON document gateway,
// the SQLite gateway, backups and the data-file watcher.
package storage

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/MD-Companion/internal/decks"
	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// Document is the whole persisted state.
type Document struct {
	MyDecks       []string
	OppDecks      []string
	Records       []models.MatchRecord
	CurrentSeason string
}

// Gateway loads and saves the whole document. It owns no business logic.
type Gateway interface {
	// Load returns the stored document. When the store is missing it returns
	// defaults and no error. When it is unreadable it returns defaults and an
	// error wrapping errs.ErrIO.
	Load(ctx context.Context) (*Document, error)

	// Save replaces the stored document.
	Save(ctx context.Context, doc *Document) error

	// Path returns the file backing the gateway.
	Path() string
}

// SchemaReporter is implemented by gateways with a versioned schema.
type SchemaReporter interface {
	SchemaVersion() (uint, error)
}

// DefaultDocument returns an empty document with the built-in catalogs.
func DefaultDocument(season string) *Document {
	return &Document{
		MyDecks:       decks.DefaultMyDecks(),
		OppDecks:      decks.DefaultOppDecks(),
		Records:       []models.MatchRecord{},
		CurrentSeason: season,
	}
}

// fillDefaults replaces empty catalogs and a blank season, then puts
// season-less records in the resolved season.
func (d *Document) fillDefaults(season string) {
	if len(d.MyDecks) == 0 {
		d.MyDecks = decks.DefaultMyDecks()
	}
	if len(d.OppDecks) == 0 {
		d.OppDecks = decks.DefaultOppDecks()
	}
	if d.CurrentSeason == "" {
		d.CurrentSeason = season
	}
	if d.Records == nil {
		d.Records = []models.MatchRecord{}
	}
	// Records without a season belong to the current one.
	for i := range d.Records {
		if d.Records[i].Season == "" {
			d.Records[i].Season = d.CurrentSeason
		}
	}
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Options selects and configures a gateway.
type Options struct {
	Backend       string
	Path          string
	DefaultSeason string
}

// Open returns the gateway for opts.Backend.
func Open(opts Options) (Gateway, error) {
	switch opts.Backend {
	case "", BackendJSON:
		return NewJSONGateway(opts.Path, opts.DefaultSeason), nil
	case BackendSQLite:
		return NewSQLiteGateway(DefaultConfig(opts.Path), opts.DefaultSeason), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
