// Package app wires driven adapters into the core services.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/kgingest/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kgingest/internal/adapters/driven/fetcher"
	"github.com/custodia-labs/kgingest/internal/adapters/driven/notify"
	"github.com/custodia-labs/kgingest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgingest/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kgingest/internal/converters/html"
	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
	"github.com/custodia-labs/kgingest/internal/core/services"
	"github.com/custodia-labs/kgingest/internal/logger"
	"github.com/custodia-labs/kgingest/internal/metrics"
	"github.com/custodia-labs/kgingest/internal/processors"
)

// Options selects the adapters to wire.
type Options struct {
	// ConfigDir holds config.toml. Empty means ~/.kgingest.
	ConfigDir string

	// ConfigStore overrides the TOML store. Used by tests.
	ConfigStore driven.ConfigStore

	// Backend overrides storage.backend from settings when set.
	Backend domain.StorageBackend

	// Notifier receives ingestion outcomes. Defaults to the logger.
	Notifier driven.Notifier
}

// App holds the wired services and the resources they own.
type App struct {
	Settings  *services.SettingsService
	Documents *services.DocumentService
	Ingest    *services.IngestService
	Metrics   *metrics.Metrics
	Config    *domain.AppSettings

	store *sqlite.Store
}

// New builds the application from settings.
func New(opts Options) (*App, error) {
	configStore := opts.ConfigStore
	configDir := opts.ConfigDir
	if configStore == nil {
		if configDir == "" {
			dir, err := file.DefaultDir()
			if err != nil {
				return nil, err
			}
			configDir = dir
		}
		fileStore, err := file.NewConfigStore(configDir)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		configStore = fileStore
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := logger.SetLevel(settings.Log.Level); err != nil {
		logger.Warn("%v", err)
	}

	backend := settings.Storage.Backend
	if opts.Backend != "" {
		if !opts.Backend.IsValid() {
			return nil, fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, opts.Backend)
		}
		backend = opts.Backend
	}

	a := &App{
		Settings: settingsService,
		Metrics:  metrics.New(),
		Config:   settings,
	}

	var docStore driven.DocumentStore
	switch backend {
	case domain.StorageBackendMemory:
		docStore = memory.NewDocumentStore()
	case domain.StorageBackendSQLite:
		dataDir := settings.Storage.DataDir
		if dataDir == "" && configDir != "" {
			dataDir = filepath.Join(configDir, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		a.store = store
		docStore = store.DocumentStore()
	}
	logger.Debug("storage backend: %s", backend)

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewLog()
	}

	ingestOpts := []services.IngestOption{
		services.WithNotifier(notifier),
		services.WithRecorder(a.Metrics),
	}
	if settings.Fetch.ConvertHTML {
		ingestOpts = append(ingestOpts, services.WithHTMLConverter(html.New()))
	}

	a.Documents = services.NewDocumentService(docStore)
	a.Ingest = services.NewIngestService(
		processors.NewDefaultRegistry(),
		fetcher.New(fetcher.FromSettings(settings.Fetch)),
		a.Documents,
		ingestOpts...,
	)
	return a, nil
}

// Close releases the storage connection.
func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	if err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}
