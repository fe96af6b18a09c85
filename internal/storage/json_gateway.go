package storage

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
)

// JSONGateway stores the document as a single JSON file.
type JSONGateway struct {
	path          string
	defaultSeason string

	mu     sync.Mutex
	digest [sha256.Size]byte // content last loaded from or written to path
}

// NewJSONGateway creates a gateway for the file at path.
func NewJSONGateway(path, defaultSeason string) *JSONGateway {
	return &JSONGateway{path: path, defaultSeason: defaultSeason}
}

// Path returns the data file path.
func (g *JSONGateway) Path() string {
	return g.path
}

// Load reads the data file. A missing file yields defaults.
func (g *JSONGateway) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultDocument(g.defaultSeason), nil
	}
	if err != nil {
		return DefaultDocument(g.defaultSeason), fmt.Errorf("failed to read %s: %v: %w", g.path, err, errs.ErrIO)
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		return DefaultDocument(g.defaultSeason), fmt.Errorf("%s: %v: %w", g.path, err, errs.ErrIO)
	}
	doc.fillDefaults(g.defaultSeason)
	g.remember(data)
	return doc, nil
}

// Save writes doc to the data file. An existing file that can no longer be
// read or parsed is left untouched and the save is skipped.
func (g *JSONGateway) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.checkExisting(); err != nil {
		return err
	}

	data, err := EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("%v: %w", err, errs.ErrIO)
	}
	if err := writeFileAtomic(g.path, data); err != nil {
		return fmt.Errorf("%v: %w", err, errs.ErrIO)
	}
	g.remember(data)
	return nil
}

// checkExisting re-reads the current file before it is replaced.
func (g *JSONGateway) checkExisting() error {
	data, err := os.ReadFile(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("save skipped, cannot read existing %s: %v: %w", g.path, err, errs.ErrIO)
	}
	if _, err := DecodeDocument(data); err != nil {
		return fmt.Errorf("save skipped, existing %s is not a valid document: %v: %w", g.path, err, errs.ErrIO)
	}
	return nil
}

// Changed reports whether the file differs from what this gateway last
// loaded or wrote. A missing file is not a change.
func (g *JSONGateway) Changed() (bool, error) {
	data, err := os.ReadFile(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %v: %w", g.path, err, errs.ErrIO)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return sha256.Sum256(data) != g.digest, nil
}

func (g *JSONGateway) remember(data []byte) {
	g.mu.Lock()
	g.digest = sha256.Sum256(data)
	g.mu.Unlock()
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
