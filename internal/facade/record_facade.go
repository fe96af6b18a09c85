package facade

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/events"
	"github.com/ramonehamilton/MD-Companion/internal/models"
	"github.com/ramonehamilton/MD-Companion/internal/stats"
)

// RecordFacade handles match record operations in the active season.
type RecordFacade struct {
	c *Controller
}

// Add records a match in the active season. Both decks must be in their catalogs.
func (f *RecordFacade) Add(ctx context.Context, fields models.RecordFields) (models.MatchRecord, error) {
	f.c.mu.Lock()
	var err error
	switch {
	case fields.MyDeck != "" && !f.c.myDecks.Contains(fields.MyDeck):
		err = fmt.Errorf("my deck %q is not in the catalog: %w", fields.MyDeck, errs.ErrValidation)
	case fields.OppDeck != "" && !f.c.oppDecks.Contains(fields.OppDeck):
		err = fmt.Errorf("opponent deck %q is not in the catalog: %w", fields.OppDeck, errs.ErrValidation)
	}
	var rec models.MatchRecord
	active := f.c.partition.Active()
	if err == nil {
		var id int
		id, err = f.c.store.Add(fields, active)
		if err == nil {
			rec, _ = f.c.store.Get(id)
		}
	}
	f.c.changed(err)
	f.c.mu.Unlock()

	if err != nil {
		return models.MatchRecord{}, appError("Cannot add record", err)
	}
	f.c.dispatch(ctx, events.TypeRecordAdded, events.RecordEvent{ID: rec.ID, Season: rec.Season})
	return rec, nil
}

// Update edits the record with id. Season and id never change.
func (f *RecordFacade) Update(ctx context.Context, id int, upd models.RecordUpdate) (models.MatchRecord, error) {
	f.c.mu.Lock()
	err := f.c.store.Update(id, upd)
	var rec models.MatchRecord
	if err == nil {
		rec, _ = f.c.store.Get(id)
	}
	f.c.changed(err)
	f.c.mu.Unlock()

	if err != nil {
		return models.MatchRecord{}, appError(fmt.Sprintf("Cannot update record %d", id), err)
	}
	f.c.dispatch(ctx, events.TypeRecordUpdated, events.RecordEvent{ID: rec.ID, Season: rec.Season})
	return rec, nil
}

// Delete removes the record with id.
func (f *RecordFacade) Delete(ctx context.Context, id int) error {
	f.c.mu.Lock()
	rec, err := f.c.store.Get(id)
	if err == nil {
		err = f.c.store.Remove(id)
	}
	f.c.changed(err)
	f.c.mu.Unlock()

	if err != nil {
		return appError(fmt.Sprintf("Cannot delete record %d", id), err)
	}
	f.c.dispatch(ctx, events.TypeRecordDeleted, events.RecordEvent{ID: rec.ID, Season: rec.Season})
	return nil
}

// Get returns the record with id, from any season.
func (f *RecordFacade) Get(id int) (models.MatchRecord, error) {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()

	rec, err := f.c.store.Get(id)
	if err != nil {
		return models.MatchRecord{}, appError(fmt.Sprintf("Cannot find record %d", id), err)
	}
	return rec, nil
}

// List returns the active season's rows, optionally restricted to one own-deck.
func (f *RecordFacade) List(filterDeck string, order models.SortOrder) []models.MatchRecord {
	active, recs := f.c.seasonRecords()
	return stats.VisibleRows(recs, active, filterDeck, order)
}
