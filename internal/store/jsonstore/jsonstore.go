// Package jsonstore is the durable key-value store behind persisted state.
//
// Values are opaque text, like browser local storage. The file store keeps
// every key in one human-readable JSON document and rewrites it atomically
// on each change. The data directory is locked for the lifetime of the
// store, so only one process writes at a time.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"time"
)

const (
	dataFileName = "state.json"
	lockFileName = "state.lock"
)

// ErrLocked means another process holds the data directory.
var ErrLocked = errors.New("data directory is locked by another process")

// KV is a durable string key-value store.
// Get reports ok=false, with a nil error, for a missing key.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

var (
	_ KV = (*FileStore)(nil)
	_ KV = (*Memory)(nil)
)

// FileStore is a KV backed by a JSON file.
type FileStore struct {
	dir  string
	lock *os.File
	data map[string]string
	log  *slog.Logger
}

// Option configures Open.
type Option func(*FileStore)

// WithLogger sets the logger for recovery diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// Open locks dir, creating it if needed, and loads its state file.
// A state file that is not valid JSON is moved aside and the store
// starts empty.
func Open(dir string, opts ...Option) (*FileStore, error) {
	s := &FileStore{dir: dir, data: map[string]string{}, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	lock, err := acquireFileLock(filepath.Join(dir, lockFileName))
	if err != nil {
		return nil, err
	}
	s.lock = lock

	if err := s.load(); err != nil {
		_ = releaseFileLock(lock)
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	p := s.Path()
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read file: %w", err)
	}
	var data map[string]string
	if err := json.Unmarshal(b, &data); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", p, time.Now().UnixNano())
		s.log.Warn("State file is corrupt, starting empty",
			slog.String("path", p),
			slog.String("backup", backup),
			slog.String("error", err.Error()))
		if rerr := os.Rename(p, backup); rerr != nil {
			return fmt.Errorf("move corrupt state file: %w", rerr)
		}
		return nil
	}
	if data != nil {
		s.data = data
	}
	return nil
}

// Path is the location of the state file.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, dataFileName)
}

func (s *FileStore) Get(key string) (string, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key. The in-memory copy only changes once the
// file has been replaced.
func (s *FileStore) Set(key, value string) error {
	next := maps.Clone(s.data)
	next[key] = value
	return s.commit(next)
}

// Delete removes key. Deleting a missing key does not touch the file.
func (s *FileStore) Delete(key string) error {
	if _, ok := s.data[key]; !ok {
		return nil
	}
	next := maps.Clone(s.data)
	delete(next, key)
	return s.commit(next)
}

func (s *FileStore) commit(next map[string]string) error {
	if s.lock == nil {
		return fmt.Errorf("write %s: store is closed", s.Path())
	}
	b, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := atomicWriteFile(s.Path(), b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	s.data = next
	return nil
}

// Close releases the directory lock. Further writes fail.
func (s *FileStore) Close() error {
	if s.lock == nil {
		return nil
	}
	err := releaseFileLock(s.lock)
	s.lock = nil
	return err
}
