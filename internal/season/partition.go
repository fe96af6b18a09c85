// Package season derives seasons from the record store and tracks the active one.
package season

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/records"
)

// Partition scopes a record store by season. A season is not stored on its
// own: it exists while a record carries its tag or while it is active.
type Partition struct {
	store  *records.Store
	active string
}

// NewPartition creates a partition over store with the given active season.
func NewPartition(store *records.Store, active string) *Partition {
	return &Partition{store: store, active: active}
}

// Active returns the active season tag.
func (p *Partition) Active() string {
	return p.active
}

// List returns the sorted, deduplicated seasons of every record plus the active one.
func (p *Partition) List() []string {
	set := map[string]struct{}{p.active: {}}
	for _, rec := range p.store.All() {
		set[rec.Season] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Activate makes season the active one. Unseen tags are accepted and start empty.
func (p *Partition) Activate(season string) {
	p.active = season
}

// Create activates a new season tag. The tag is trimmed; it must be non-empty
// and absent from List.
func (p *Partition) Create(season string) error {
	season = strings.TrimSpace(season)
	if season == "" {
		return fmt.Errorf("season name cannot be empty: %w", errs.ErrValidation)
	}
	for _, s := range p.List() {
		if s == season {
			return fmt.Errorf("season %q: %w", season, errs.ErrDuplicate)
		}
	}
	p.Activate(season)
	return nil
}

// Delete removes every record of season and returns how many were removed.
// The active season cannot be deleted.
func (p *Partition) Delete(season string) (int, error) {
	if season == p.active {
		return 0, fmt.Errorf("cannot delete the active season %q: %w", season, errs.ErrInvalidOperation)
	}
	return p.store.RemoveSeason(season), nil
}
