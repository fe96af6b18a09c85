package facade

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/MD-Companion/internal/decks"
	"github.com/ramonehamilton/MD-Companion/internal/events"
)

// DeckFacade manages the own and opponent deck catalogs. Catalog changes
// never touch existing records.
type DeckFacade struct {
	c *Controller
}

// catalog returns the catalog for kind. Caller holds mu.
func (f *DeckFacade) catalog(kind decks.Kind) *decks.Catalog {
	if kind == decks.KindOpponent {
		return f.c.oppDecks
	}
	return f.c.myDecks
}

// List returns the names in the catalog of kind.
func (f *DeckFacade) List(kind decks.Kind) []string {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	return f.catalog(kind).Names()
}

// Add appends name to the catalog of kind.
func (f *DeckFacade) Add(ctx context.Context, kind decks.Kind, name string) error {
	f.c.mu.Lock()
	err := f.catalog(kind).Add(name)
	f.c.changed(err)
	f.c.mu.Unlock()

	if err != nil {
		return appError("Cannot add deck", err)
	}
	f.c.dispatch(ctx, events.TypeDeckUpdated, events.DeckUpdatedEvent{Kind: string(kind), Action: "added", Name: name})
	return nil
}

// Rename renames oldName in place.
func (f *DeckFacade) Rename(ctx context.Context, kind decks.Kind, oldName, newName string) error {
	f.c.mu.Lock()
	err := f.catalog(kind).Rename(oldName, newName)
	f.c.changed(err)
	f.c.mu.Unlock()

	if err != nil {
		return appError(fmt.Sprintf("Cannot rename deck %q", oldName), err)
	}
	f.c.dispatch(ctx, events.TypeDeckUpdated, events.DeckUpdatedEvent{
		Kind: string(kind), Action: "renamed", Name: oldName, NewName: newName,
	})
	return nil
}

// Delete removes name from the catalog of kind.
func (f *DeckFacade) Delete(ctx context.Context, kind decks.Kind, name string) error {
	f.c.mu.Lock()
	err := f.catalog(kind).Delete(name)
	f.c.changed(err)
	f.c.mu.Unlock()

	if err != nil {
		return appError(fmt.Sprintf("Cannot delete deck %q", name), err)
	}
	f.c.dispatch(ctx, events.TypeDeckUpdated, events.DeckUpdatedEvent{Kind: string(kind), Action: "deleted", Name: name})
	return nil
}
