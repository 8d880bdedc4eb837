package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// DefaultFilePath is the record location used when none is configured.
const DefaultFilePath = "notified_offers.json"

// FileStore persists the record as a JSON array of product ids. The file is
// re-read on every call so that an operator deleting it takes effect on the
// next tick.
type FileStore struct {
	path string
	log  *slog.Logger
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

// FileOption configures the FileStore.
type FileOption func(*FileStore)

// WithFileLogger sets the logger.
func WithFileLogger(l *slog.Logger) FileOption {
	return func(s *FileStore) {
		s.log = l
	}
}

// NewFileStore creates a FileStore at path, creating the parent directory
// if needed. The record itself is created on the first MarkNotified.
func NewFileStore(path string, opts ...FileOption) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultFilePath
	}

	s := &FileStore{path: path, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return s, nil
}

// Path returns the record location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) IsNotified(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load()
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

func (s *FileStore) MarkNotified(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load()
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}
	ids = append(ids, id)
	slices.Sort(ids)
	return s.save(ids)
}

func (s *FileStore) ResetAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range []string{s.path, s.tmpPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	s.log.Debug("notification record removed", "path", s.path)
	return nil
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load()
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

// Ping reports whether the record is readable.
func (s *FileStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.load()
	return err
}

func (*FileStore) Close() error { return nil }

func (s *FileStore) tmpPath() string {
	return s.path + ".tmp"
}

// load returns the deduplicated ids in the record. Must hold s.mu.
func (s *FileStore) load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil, fmt.Errorf("%w: %s is not a JSON array", ErrCorrupt, s.path)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, s.path, err)
	}

	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// save writes ids to a temporary file and renames it over the record, so a
// partial write is never visible at the real path. Must hold s.mu.
func (s *FileStore) save(ids []string) error {
	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	tmp := s.tmpPath()
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening %s: %w", tmp, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("syncing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
