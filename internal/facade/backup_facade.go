package facade

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ramonehamilton/MD-Companion/internal/errs"
	"github.com/ramonehamilton/MD-Companion/internal/storage"
)

var errNoBackups = fmt.Errorf("backups are not configured: %w", errs.ErrInvalidOperation)

// BackupFacade creates, lists and restores backups of the data file.
type BackupFacade struct {
	c *Controller
}

// Create saves the state and copies the data file into the backup directory.
func (f *BackupFacade) Create(ctx context.Context, name, password string) (*storage.BackupInfo, error) {
	bm := f.c.services.Backups
	if bm == nil {
		return nil, appError("Cannot create backup", errNoBackups)
	}
	if err := f.c.Save(ctx); err != nil {
		return nil, err
	}

	info, err := bm.Backup(storage.BackupConfig{Name: name, Password: password})
	if err != nil {
		return nil, appError("Cannot create backup", err)
	}
	f.c.services.Logger.Info("backup created", zap.String("path", info.Path), zap.Bool("encrypted", info.Encrypted))
	return info, nil
}

// List returns the available backups, newest first.
func (f *BackupFacade) List() ([]storage.BackupInfo, error) {
	bm := f.c.services.Backups
	if bm == nil {
		return nil, appError("Cannot list backups", errNoBackups)
	}
	backups, err := bm.ListBackups()
	if err != nil {
		return nil, appError("Cannot list backups", err)
	}
	return backups, nil
}

// Restore replaces the data file with a backup and reloads the state,
// discarding unsaved changes.
func (f *BackupFacade) Restore(ctx context.Context, name, password string) error {
	bm := f.c.services.Backups
	if bm == nil {
		return appError("Cannot restore backup", errNoBackups)
	}
	if err := bm.Restore(name, password); err != nil {
		return appError("Cannot restore backup", err)
	}
	return f.c.reload(ctx, true)
}
