// Package decks manages the own-deck and opponent-deck name catalogs.
package decks

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
)

// Kind identifies which catalog an operation targets.
type Kind string

const (
	KindMine     Kind = "mine"
	KindOpponent Kind = "opponent"
)

// ParseKind parses a catalog kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindMine, "my", "own":
		return KindMine, nil
	case KindOpponent, "opp":
		return KindOpponent, nil
	}
	return "", fmt.Errorf("unknown deck catalog %q: %w", s, errs.ErrValidation)
}

// Catalog is an ordered set of deck names. Names are compared exactly.
type Catalog struct {
	names []string
}

// NewCatalog creates a catalog from names, dropping blanks and later duplicates.
func NewCatalog(names []string) *Catalog {
	c := &Catalog{names: make([]string, 0, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || c.Contains(n) {
			continue
		}
		c.names = append(c.names, n)
	}
	return c
}

// Names returns a copy of the catalog in order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of names.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Contains reports whether name is in the catalog.
func (c *Catalog) Contains(name string) bool {
	return c.indexOf(name) >= 0
}

// Add appends a new name.
func (c *Catalog) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("deck name cannot be empty: %w", errs.ErrValidation)
	}
	if c.Contains(name) {
		return fmt.Errorf("deck %q already exists: %w", name, errs.ErrValidation)
	}
	c.names = append(c.names, name)
	return nil
}

// Rename replaces oldName with newName at the same position.
// Records that reference oldName are not touched.
func (c *Catalog) Rename(oldName, newName string) error {
	idx := c.indexOf(oldName)
	if idx < 0 {
		return fmt.Errorf("deck %q: %w", oldName, errs.ErrNotFound)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("deck name cannot be empty: %w", errs.ErrValidation)
	}
	if c.Contains(newName) {
		return fmt.Errorf("deck %q already exists: %w", newName, errs.ErrValidation)
	}
	c.names[idx] = newName
	return nil
}

// Delete removes name. Records that reference it keep the stale string.
func (c *Catalog) Delete(name string) error {
	idx := c.indexOf(name)
	if idx < 0 {
		return fmt.Errorf("deck %q: %w", name, errs.ErrNotFound)
	}
	c.names = append(c.names[:idx], c.names[idx+1:]...)
	return nil
}

func (c *Catalog) indexOf(name string) int {
	for i, n := range c.names {
		if n == name {
			return i
		}
	}
	return -1
}
