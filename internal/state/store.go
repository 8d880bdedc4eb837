// Package state persists the set of product ids that have already been
// notified, so a running offer is announced once.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrCorrupt is returned when a persisted record exists but cannot be read
// as a set of product ids. It is never treated as an empty record.
var ErrCorrupt = errors.New("notification record is corrupt")

// Store defines the notification record operations.
type Store interface {
	// IsNotified reports whether id is in the record. A missing record
	// reads as empty.
	IsNotified(ctx context.Context, id string) (bool, error)
	// MarkNotified adds id to the record. Marking twice is a no-op.
	MarkNotified(ctx context.Context, id string) error
	// ResetAll deletes the whole record.
	ResetAll(ctx context.Context) error
	// List returns the notified ids in sorted order.
	List(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Drivers accepted by Open.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and configures a Store backend.
type Config struct {
	Driver string
	// Path is the record file for the file driver and the database file
	// for the sqlite driver.
	Path string
	// DSN is the connection string for the postgres driver.
	DSN string
}

// Open initializes the configured store. An empty driver selects the file
// store.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (Store, error) {
	if log == nil {
		log = slog.Default()
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", DriverFile:
		return NewFileStore(cfg.Path, WithFileLogger(log))
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, "sqlite3":
		return NewSQLiteStore(ctx, cfg.Path)
	case DriverPostgres:
		s, err := NewPostgresStore(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("migrating state database: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown state driver %q", cfg.Driver)
	}
}
