package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeDetector reports whether the watched file changed since it was last
// loaded or written by this process. JSONGateway implements it.
type ChangeDetector interface {
	Changed() (bool, error)
}

// Watcher calls OnChange when the data file is edited by another process.
type Watcher struct {
	path     string
	detector ChangeDetector
	onChange func(ctx context.Context)
	debounce time.Duration
	logger   *zap.Logger
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, detector ChangeDetector, onChange func(ctx context.Context), logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     path,
		detector: detector,
		onChange: onChange,
		debounce: 200 * time.Millisecond,
		logger:   logger,
	}
}

// Run watches until ctx is cancelled. The parent directory is watched since
// saves replace the file by rename.
func (w *Watcher) Run(ctx context.Context) (err error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := fw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch data directory: %w", err)
	}

	name := filepath.Base(w.path)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		case <-timer.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	changed, err := w.detector.Changed()
	if err != nil {
		w.logger.Warn("cannot inspect data file", zap.String("path", w.path), zap.Error(err))
		return
	}
	if !changed {
		return
	}
	w.logger.Info("data file changed on disk, reloading", zap.String("path", w.path))
	w.onChange(ctx)
}
