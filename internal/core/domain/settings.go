package domain

import "time"

const unknownDescription = "Unknown"

// StorageBackend selects the registration store implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendMemory keeps documents for the lifetime of the process.
	StorageBackendMemory StorageBackend = "memory"

	// StorageBackendSQLite persists documents in a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendMemory, StorageBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendMemory:
		return "Memory (not persisted)"
	case StorageBackendSQLite:
		return "SQLite (local file)"
	default:
		return unknownDescription
	}
}

// FetchSettings configures the URL fetcher.
type FetchSettings struct {
	// TimeoutSeconds bounds a single fetch.
	TimeoutSeconds int

	// MaxBytes caps the response body size.
	MaxBytes int

	// UserAgent is sent with every request.
	UserAgent string

	// RatePerSecond throttles fetches; 0 disables throttling.
	RatePerSecond int

	// ConvertHTML converts text/html bodies to Markdown before storing them.
	ConvertHTML bool
}

// Timeout returns the fetch timeout as a duration.
func (f FetchSettings) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// StorageSettings configures the registration store.
type StorageSettings struct {
	// Backend is the store implementation.
	Backend StorageBackend

	// DataDir holds the SQLite database. Empty means ~/.kgingest/data.
	DataDir string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string
}

// LogSettings configures logging.
type LogSettings struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Fetch   FetchSettings
	Storage StorageSettings
	Server  ServerSettings
	Log     LogSettings
}

// Default setting values.
const (
	DefaultFetchTimeoutSeconds = 30
	DefaultFetchMaxBytes       = 10 * 1024 * 1024
	DefaultUserAgent           = "kgingest/1.0"
	DefaultServerAddr          = ":8080"
	DefaultLogLevel            = "info"
)

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Fetch: FetchSettings{
			TimeoutSeconds: DefaultFetchTimeoutSeconds,
			MaxBytes:       DefaultFetchMaxBytes,
			UserAgent:      DefaultUserAgent,
		},
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
		Server: ServerSettings{
			Addr: DefaultServerAddr,
		},
		Log: LogSettings{
			Level: DefaultLogLevel,
		},
	}
}
