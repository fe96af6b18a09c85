package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/ramonehamilton/MD-Companion/internal/decks"
	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/models"
)

const settingCurrentSeason = "current_season"

// SQLiteGateway stores the document in a SQLite database. Each call opens
// its own connection so the file is not held between load and save.
type SQLiteGateway struct {
	config        *Config
	defaultSeason string
}

// NewSQLiteGateway creates a gateway for the database described by config.
func NewSQLiteGateway(config *Config, defaultSeason string) *SQLiteGateway {
	return &SQLiteGateway{config: config, defaultSeason: defaultSeason}
}

// Path returns the database file path.
func (g *SQLiteGateway) Path() string {
	return g.config.Path
}

// SchemaVersion reports the applied schema version. A missing database is
// version 0. A half-applied migration is an error.
func (g *SQLiteGateway) SchemaVersion() (uint, error) {
	if _, err := os.Stat(g.config.Path); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	version, dirty, err := schemaVersion(g.config.Path)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", err, errs.ErrIO)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d of %s is dirty: %w", version, g.config.Path, errs.ErrIO)
	}
	return version, nil
}

// Load reads every table. A missing database yields defaults.
func (g *SQLiteGateway) Load(ctx context.Context) (*Document, error) {
	if _, err := os.Stat(g.config.Path); errors.Is(err, os.ErrNotExist) {
		return DefaultDocument(g.defaultSeason), nil
	}

	db, err := OpenDB(g.config)
	if err != nil {
		return DefaultDocument(g.defaultSeason), fmt.Errorf("%v: %w", err, errs.ErrIO)
	}
	defer func() { _ = db.Close() }()

	doc, err := readDocument(ctx, db.Conn())
	if err != nil {
		return DefaultDocument(g.defaultSeason), fmt.Errorf("%v: %w", err, errs.ErrIO)
	}
	doc.fillDefaults(g.defaultSeason)
	return doc, nil
}

// Save rewrites every table in one transaction. A database whose current
// contents can no longer be read is left untouched and the save is skipped.
func (g *SQLiteGateway) Save(ctx context.Context, doc *Document) error {
	db, err := OpenDB(g.config)
	if err != nil {
		return fmt.Errorf("save skipped: %v: %w", err, errs.ErrIO)
	}
	defer func() { _ = db.Close() }()

	if _, err := readDocument(ctx, db.Conn()); err != nil {
		return fmt.Errorf("save skipped, existing %s cannot be read: %v: %w", g.config.Path, err, errs.ErrIO)
	}

	err = db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{"DELETE FROM decks", "DELETE FROM records", "DELETE FROM settings"} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to clear tables: %w", err)
			}
		}
		if err := insertDecks(ctx, tx, decks.KindMine, doc.MyDecks); err != nil {
			return err
		}
		if err := insertDecks(ctx, tx, decks.KindOpponent, doc.OppDecks); err != nil {
			return err
		}
		if err := insertRecords(ctx, tx, doc.Records); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?)", settingCurrentSeason, doc.CurrentSeason)
		if err != nil {
			return fmt.Errorf("failed to save current season: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%v: %w", err, errs.ErrIO)
	}
	return nil
}

func insertDecks(ctx context.Context, tx *sql.Tx, kind decks.Kind, names []string) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO decks (kind, position, name) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare deck insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, name := range names {
		if _, err := stmt.ExecContext(ctx, string(kind), i, name); err != nil {
			return fmt.Errorf("failed to insert deck %q: %w", name, err)
		}
	}
	return nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, recs []models.MatchRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			id, position, my_deck, opp_deck, result, turn, coin, rank, note, season,
			forced_first, first_mulligan_hit, expanded_hand_trap_hit, card_stuck
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range recs {
		rec.RecomputeForcedFirst()
		_, err := stmt.ExecContext(ctx,
			rec.ID, i, rec.MyDeck, rec.OppDeck,
			string(rec.Result), string(rec.Turn), string(rec.Coin),
			rec.Rank, rec.Note, rec.Season,
			rec.ForcedFirst, rec.FirstMulliganHit, rec.ExpandedHandTrapHit, rec.CardStuck,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", rec.ID, err)
		}
	}
	return nil
}

func readDocument(ctx context.Context, conn *sql.DB) (*Document, error) {
	doc := &Document{}

	var err error
	if doc.MyDecks, err = readDecks(ctx, conn, decks.KindMine); err != nil {
		return nil, err
	}
	if doc.OppDecks, err = readDecks(ctx, conn, decks.KindOpponent); err != nil {
		return nil, err
	}
	if doc.Records, err = readRecords(ctx, conn); err != nil {
		return nil, err
	}

	err = conn.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", settingCurrentSeason).Scan(&doc.CurrentSeason)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read current season: %w", err)
	}
	return doc, nil
}

func readDecks(ctx context.Context, conn *sql.DB, kind decks.Kind) ([]string, error) {
	rows, err := conn.QueryContext(ctx, "SELECT name FROM decks WHERE kind = ? ORDER BY position", string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readRecords(ctx context.Context, conn *sql.DB) ([]models.MatchRecord, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT id, my_deck, opp_deck, result, turn, coin, rank, note, season,
			first_mulligan_hit, expanded_hand_trap_hit, card_stuck
		FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recs := []models.MatchRecord{}
	for rows.Next() {
		var (
			rec                models.MatchRecord
			result, turn, coin string
		)
		err := rows.Scan(
			&rec.ID, &rec.MyDeck, &rec.OppDeck, &result, &turn, &coin,
			&rec.Rank, &rec.Note, &rec.Season,
			&rec.FirstMulliganHit, &rec.ExpandedHandTrapHit, &rec.CardStuck,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Result = models.Result(result)
		rec.Turn = models.Turn(turn)
		rec.Coin = models.Coin(coin)
		rec.RecomputeForcedFirst()
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
