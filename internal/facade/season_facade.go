package facade

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/MD-Companion/internal/events"
)

// SeasonFacade lists, switches, creates and deletes seasons.
type SeasonFacade struct {
	c *Controller
}

// List returns every known season, sorted.
func (f *SeasonFacade) List() []string {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	return f.c.partition.List()
}

// Active returns the active season.
func (f *SeasonFacade) Active() string {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	return f.c.partition.Active()
}

// Activate switches to season, which need not exist yet.
func (f *SeasonFacade) Activate(ctx context.Context, season string) {
	f.c.mu.Lock()
	f.c.partition.Activate(season)
	f.c.changed(nil)
	f.c.mu.Unlock()

	f.c.dispatch(ctx, events.TypeSeasonChanged, events.SeasonChangedEvent{Active: season})
}

// Create adds and activates a new season.
func (f *SeasonFacade) Create(ctx context.Context, season string) error {
	f.c.mu.Lock()
	err := f.c.partition.Create(season)
	f.c.changed(err)
	active := f.c.partition.Active()
	f.c.mu.Unlock()

	if err != nil {
		return appError("Cannot create season", err)
	}
	f.c.dispatch(ctx, events.TypeSeasonChanged, events.SeasonChangedEvent{Active: active})
	return nil
}

// Delete removes every record of season and returns the count removed.
func (f *SeasonFacade) Delete(ctx context.Context, season string) (int, error) {
	f.c.mu.Lock()
	n, err := f.c.partition.Delete(season)
	f.c.changed(err)
	f.c.mu.Unlock()

	if err != nil {
		return 0, appError(fmt.Sprintf("Cannot delete season %q", season), err)
	}
	f.c.dispatch(ctx, events.TypeSeasonDeleted, events.SeasonDeletedEvent{Season: season, Removed: n})
	return n, nil
}
