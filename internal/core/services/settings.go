package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
	"github.com/custodia-labs/kgingest/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyFetchTimeout     = "fetch.timeout_seconds"
	keyFetchMaxBytes    = "fetch.max_bytes"
	keyFetchUserAgent   = "fetch.user_agent"
	keyFetchRate        = "fetch.rate_per_second"
	keyFetchConvertHTML = "fetch.convert_html"
	keyStorageBackend   = "storage.backend"
	keyStorageDataDir   = "storage.data_dir"
	keyServerAddr       = "server.addr"
	keyLogLevel         = "log.level"
)

// settingKeys lists the settable keys in display order.
var settingKeys = []string{
	keyFetchTimeout,
	keyFetchMaxBytes,
	keyFetchUserAgent,
	keyFetchRate,
	keyFetchConvertHTML,
	keyStorageBackend,
	keyStorageDataDir,
	keyServerAddr,
	keyLogLevel,
}

// logLevels are the accepted values of log.level.
var logLevels = []string{"debug", "info", "warn", "error"}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling unset keys with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Fetch: domain.FetchSettings{
			TimeoutSeconds: s.getInt(keyFetchTimeout, defaults.Fetch.TimeoutSeconds),
			MaxBytes:       s.getInt(keyFetchMaxBytes, defaults.Fetch.MaxBytes),
			UserAgent:      s.getString(keyFetchUserAgent, defaults.Fetch.UserAgent),
			RatePerSecond:  s.getInt(keyFetchRate, defaults.Fetch.RatePerSecond),
			ConvertHTML:    s.getBool(keyFetchConvertHTML, defaults.Fetch.ConvertHTML),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir), // Empty selects the default location
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
		Log: domain.LogSettings{
			Level: s.getString(keyLogLevel, defaults.Log.Level),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyFetchTimeout, settings.Fetch.TimeoutSeconds},
		{keyFetchMaxBytes, settings.Fetch.MaxBytes},
		{keyFetchUserAgent, settings.Fetch.UserAgent},
		{keyFetchRate, settings.Fetch.RatePerSecond},
		{keyFetchConvertHTML, settings.Fetch.ConvertHTML},
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyServerAddr, settings.Server.Addr},
		{keyLogLevel, settings.Log.Level},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for the given key and persists it.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// parseSetting converts a textual value to the type stored for key.
func parseSetting(key, value string) (any, error) {
	switch key {
	case keyFetchTimeout, keyFetchMaxBytes, keyFetchRate:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return n, nil

	case keyFetchConvertHTML:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		return b, nil

	case keyStorageBackend:
		backend := domain.StorageBackend(value)
		if !backend.IsValid() {
			return nil, fmt.Errorf("%w: %s must be memory or sqlite, got %q", domain.ErrInvalidInput, key, value)
		}
		return backend.String(), nil

	case keyLogLevel:
		for _, l := range logLevels {
			if value == l {
				return value, nil
			}
		}
		return nil, fmt.Errorf("%w: %s must be one of %s, got %q",
			domain.ErrInvalidInput, key, strings.Join(logLevels, ", "), value)

	case keyFetchUserAgent, keyStorageDataDir, keyServerAddr:
		return value, nil

	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
