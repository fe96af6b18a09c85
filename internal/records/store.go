// Package records holds the in-memory match record store and its id allocator.
package records

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/models"
)

// Store is an ordered collection of match records plus a monotonic id counter.
// It is not safe for concurrent use; the owning facade serializes access.
type Store struct {
	records []models.MatchRecord
	nextID  int
}

// NewStore creates a store holding a copy of recs. Ids are reconciled so the
// store starts from a consistent state even when recs came from a hand-edited file.
func NewStore(recs []models.MatchRecord) *Store {
	s := &Store{records: make([]models.MatchRecord, len(recs))}
	copy(s.records, recs)
	for i := range s.records {
		s.records[i].RecomputeForcedFirst()
	}
	s.ReconcileIDs()
	return s
}

// Add validates fields, assigns the next id and appends a record tagged with season.
func (s *Store) Add(fields models.RecordFields, season string) (int, error) {
	if strings.TrimSpace(fields.MyDeck) == "" || strings.TrimSpace(fields.OppDeck) == "" {
		return 0, fmt.Errorf("both my deck and opponent deck are required: %w", errs.ErrValidation)
	}

	rec := models.MatchRecord{
		MyDeck:              fields.MyDeck,
		OppDeck:             fields.OppDeck,
		Result:              fields.Result,
		Turn:                fields.Turn,
		Coin:                fields.Coin,
		Rank:                fields.Rank,
		FirstMulliganHit:    fields.FirstMulliganHit,
		ExpandedHandTrapHit: fields.ExpandedHandTrapHit,
		CardStuck:           fields.CardStuck,
		Note:                fields.Note,
		Season:              season,
	}
	if rec.Coin == "" {
		rec.Coin = models.CoinHeads
	}
	if err := validateEnums(&rec); err != nil {
		return 0, err
	}
	rec.RecomputeForcedFirst()

	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, rec)

	return rec.ID, nil
}

// Update applies the non-nil fields of upd to the record with the given id.
func (s *Store) Update(id int, upd models.RecordUpdate) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("record %d: %w", id, errs.ErrNotFound)
	}
	if upd.MyDeck != nil && strings.TrimSpace(*upd.MyDeck) == "" {
		return fmt.Errorf("my deck cannot be blank: %w", errs.ErrValidation)
	}
	if upd.OppDeck != nil && strings.TrimSpace(*upd.OppDeck) == "" {
		return fmt.Errorf("opponent deck cannot be blank: %w", errs.ErrValidation)
	}

	updated := s.records[idx]
	upd.Apply(&updated)
	if err := validateEnums(&updated); err != nil {
		return err
	}

	s.records[idx] = updated
	return nil
}

// Remove deletes the record with the given id.
func (s *Store) Remove(id int) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("record %d: %w", id, errs.ErrNotFound)
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	return nil
}

// RemoveSeason deletes every record tagged with season and returns how many were removed.
func (s *Store) RemoveSeason(season string) int {
	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.Season != season {
			kept = append(kept, rec)
		}
	}
	removed := len(s.records) - len(kept)
	s.records = kept
	return removed
}

// ReconcileIDs reassigns every missing (negative) or duplicate id to the next
// integer above the current maximum, in store order, then resets the counter.
// The first holder of a duplicated id keeps it.
func (s *Store) ReconcileIDs() {
	maxID := -1
	for _, rec := range s.records {
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}

	seen := make(map[int]struct{}, len(s.records))
	for i := range s.records {
		id := s.records[i].ID
		if _, dup := seen[id]; id < 0 || dup {
			maxID++
			s.records[i].ID = maxID
		}
		seen[s.records[i].ID] = struct{}{}
	}

	s.nextID = maxID + 1
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id int) (models.MatchRecord, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.MatchRecord{}, fmt.Errorf("record %d: %w", id, errs.ErrNotFound)
	}
	return s.records[idx], nil
}

// All returns a copy of every record in store order.
func (s *Store) All() []models.MatchRecord {
	out := make([]models.MatchRecord, len(s.records))
	copy(out, s.records)
	return out
}

// InSeason returns a copy of the records tagged with season, in store order.
func (s *Store) InSeason(season string) []models.MatchRecord {
	var out []models.MatchRecord
	for _, rec := range s.records {
		if rec.Season == season {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) indexOf(id int) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func validateEnums(rec *models.MatchRecord) error {
	switch rec.Result {
	case models.ResultWin, models.ResultLoss:
	default:
		return fmt.Errorf("invalid result %q: %w", rec.Result, errs.ErrValidation)
	}
	switch rec.Turn {
	case models.TurnFirst, models.TurnSecond:
	default:
		return fmt.Errorf("invalid turn %q: %w", rec.Turn, errs.ErrValidation)
	}
	switch rec.Coin {
	case models.CoinHeads, models.CoinTails:
	default:
		return fmt.Errorf("invalid coin %q: %w", rec.Coin, errs.ErrValidation)
	}
	return nil
}
