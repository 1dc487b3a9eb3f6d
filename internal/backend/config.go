package backend

import (
	"fmt"
	"strings"

	"github.com/making/webfluxfn-handson/internal/config"
)

// Kind represents the kind of backend.
type Kind string

const (
	SQLiteBackend   Kind = "sqlite"
	PostgresBackend Kind = "postgres"
	MemoryBackend   Kind = "memory"
)

// String implements fmt.Stringer
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the backend kind is valid.
func (k Kind) IsValid() bool {
	switch k {
	case SQLiteBackend, PostgresBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for backend creation.
type Config struct {
	Kind Kind

	// SQLite specific
	SQLiteDBPath string

	// Postgres specific
	DatabaseURL string

	// Record event publishing (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// KindFromDatabaseURL resolves the backend kind from the DATABASE_URL
// scheme. The kind is decided once at startup; an empty URL selects the
// embedded SQLite database.
func KindFromDatabaseURL(databaseURL string) (Kind, error) {
	switch {
	case databaseURL == "":
		return SQLiteBackend, nil
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return SQLiteBackend, nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return PostgresBackend, nil
	case databaseURL == "memory", strings.HasPrefix(databaseURL, "memory:"):
		return MemoryBackend, nil
	default:
		return "", fmt.Errorf("unsupported database URL scheme: %s", databaseURL)
	}
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	kind, err := KindFromDatabaseURL(appConfig.DatabaseURL)
	if err != nil {
		return Config{}, err
	}

	sqlitePath := appConfig.SQLiteDBPath
	if p := strings.TrimPrefix(appConfig.DatabaseURL, "sqlite:"); p != appConfig.DatabaseURL && p != "" {
		sqlitePath = p
	}

	return Config{
		Kind:         kind,
		SQLiteDBPath: sqlitePath,
		DatabaseURL:  appConfig.DatabaseURL,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("invalid backend kind: %s", c.Kind)
	}

	switch c.Kind {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case PostgresBackend:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database URL is required for postgres backend")
		}
	case MemoryBackend:
		// No additional configuration required.
	}

	return nil
}
