package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store is a file-backed collection store. Each named resource is one JSON
// file under the data directory, and every mutation is a whole-document
// replace: load, apply, rewrite. A dedicated per-resource mutex guards the
// full load-mutate-save span, so concurrent updates within this process
// cannot lose each other's writes. Writers in other processes are not
// coordinated.
type Store struct {
	dir    string
	logger *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates the data directory if needed and returns a store rooted there.
func NewStore(dir string, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// Ping verifies the data directory is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	return nil
}

// Dir returns the data directory the store is rooted at.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(resource string) string {
	return filepath.Join(s.dir, resource+".json")
}

func (s *Store) lock(resource string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[resource]
	if !ok {
		l = &sync.Mutex{}
		s.locks[resource] = l
	}
	return l
}

// Read returns the current collection stored under resource. A missing file
// is created with the encoded empty collection so first-use callers never
// observe a missing-resource error; an unreadable or corrupt file falls back
// to the empty collection.
func Read[T any](s *Store, resource string, empty T) T {
	l := s.lock(resource)
	l.Lock()
	defer l.Unlock()
	return load(s, resource, empty)
}

// Update applies fn to the current collection and rewrites the resource with
// the result. When fn returns an error nothing is written and the error is
// returned unchanged, so domain failures (duplicate, not found) leave the
// resource untouched.
func Update[T any](s *Store, resource string, empty T, fn func(T) (T, error)) error {
	l := s.lock(resource)
	l.Lock()
	defer l.Unlock()

	current := load(s, resource, empty)
	next, err := fn(current)
	if err != nil {
		return err
	}
	return save(s, resource, next)
}

func load[T any](s *Store, resource string, empty T) T {
	data, err := os.ReadFile(s.path(resource))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"resource": resource}).WithError(err).Warn("store: failed to read resource, treating as empty")
			}
			return empty
		}
		if serr := save(s, resource, empty); serr != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"resource": resource}).WithError(serr).Warn("store: failed to initialize resource")
		}
		return empty
	}

	collection, derr := Decode(data, empty)
	if derr != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"resource": resource}).WithError(derr).Warn("store: corrupt resource, falling back to empty collection")
	}
	return collection
}

// save rewrites the whole resource. The temp-file-and-rename dance keeps a
// crash mid-write from leaving a truncated document behind.
func save[T any](s *Store, resource string, collection T) error {
	data, err := Encode(collection)
	if err != nil {
		return err
	}

	path := s.path(resource)
	tmp, err := os.CreateTemp(s.dir, resource+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", resource, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", resource, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", resource, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", resource, err)
	}
	return nil
}
