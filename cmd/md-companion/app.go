package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ramonehamilton/MD-Companion/internal/config"
	"github.com/ramonehamilton/MD-Companion/internal/events"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
	"github.com/ramonehamilton/MD-Companion/internal/storage"
)

type appOptions struct {
	configPath string
	dataPath   string
	backend    string
	debug      bool
}

// app is the state shared by every command: the loaded configuration and
// the controller over the data file.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	gateway    storage.Gateway
	dispatcher *events.EventDispatcher
	controller *facade.Controller
}

func (a *app) open(ctx context.Context, opts appOptions) error {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	if opts.dataPath != "" {
		cfg.Storage.Path = opts.dataPath
	}
	if opts.backend != "" {
		cfg.Storage.Backend = opts.backend
	}
	if opts.debug {
		cfg.App.DebugMode = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	if a.logger, err = newLogger(cfg.App.DebugMode); err != nil {
		return err
	}

	a.gateway, err = storage.Open(storage.Options{
		Backend:       cfg.Storage.Backend,
		Path:          cfg.Storage.Path,
		DefaultSeason: cfg.Season.Default,
	})
	if err != nil {
		return err
	}

	a.dispatcher = events.NewEventDispatcher(a.logger)
	a.dispatcher.Register(events.NewLoggingObserver(a.logger, cfg.App.DebugMode))

	a.controller = facade.New(&facade.Services{
		Gateway:       a.gateway,
		Backups:       storage.NewBackupManager(cfg.Storage.Path, cfg.Backup.Dir, storage.VerifierFor(cfg.Storage.Backend)),
		Dispatcher:    a.dispatcher,
		Logger:        a.logger,
		DefaultSeason: cfg.Season.Default,
	})

	// A broken data file is reported but the command still runs on defaults.
	// The save guard keeps the broken file from being overwritten.
	if err := a.controller.Load(ctx); err != nil {
		a.logger.Warn("continuing with default data", zap.Error(err))
	}
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.logger != nil {
		defer func() { _ = a.logger.Sync() }()
	}
	if a.controller == nil || !a.controller.Dirty() {
		return nil
	}
	return a.controller.Save(ctx)
}

// newLogger writes warnings and errors to stderr, or everything with debug.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
