// Package facade is the single owner of the tracker state. The CLI and the
// HTTP API call into it; every operation runs under one lock.
package facade

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ramonehamilton/MD-Companion/internal/events"
	"github.com/ramonehamilton/MD-Companion/internal/storage"
)

// Services contains the dependencies shared by the facades.
type Services struct {
	// Gateway loads and saves the document.
	Gateway storage.Gateway

	// Backups is optional; backup operations fail when it is nil.
	Backups *storage.BackupManager

	// Dispatcher receives an event after every state change.
	Dispatcher *events.EventDispatcher

	Logger *zap.Logger

	// DefaultSeason is activated when the document names none.
	DefaultSeason string
}

// AppError represents an application error with a user-friendly message.
type AppError struct {
	Message string `json:"message"`
	Err     error  `json:"-"` // Wrapped error for errors.Is/As chain
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

func appError(action string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{Message: fmt.Sprintf("%s: %v", action, err), Err: err}
}
