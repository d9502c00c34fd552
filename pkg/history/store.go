// Package history records the operations performed by snakecodec.
//
// Entries keep only a short preview of the processed text. Several storage
// backends implement [Store]:
//   - memory: process-local, for tests and the HTTP server without persistence
//   - file: a single JSON document, the CLI default
//   - sqlite: a local database migrated with goose
//   - redis: a hash of entries indexed by a sorted set
//   - mongo: one document per entry
//
// Use [Open] to build the backend named in a [Config].
package history

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/snakecodec/pkg/errors"
	"github.com/matzehuels/snakecodec/pkg/observability"
)

// Store persists history entries.
type Store interface {
	// Add inserts e, replacing an entry with the same ID.
	Add(ctx context.Context, e Entry) error

	// List returns every entry, newest first.
	List(ctx context.Context) ([]Entry, error)

	// Get returns the entry with the given ID or a NOT_FOUND error.
	Get(ctx context.Context, id string) (Entry, error)

	// Remove deletes the entry with the given ID or returns NOT_FOUND.
	Remove(ctx context.Context, id string) error

	// Clear deletes every entry.
	Clear(ctx context.Context) error

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)

	Close() error
}

// Backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the supported backend names.
var Backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMongo, BackendMemory}

// Config selects and configures a backend.
type Config struct {
	Backend string

	// Path is the JSON file or SQLite database. When empty, a file under
	// DataDir is used.
	Path    string
	DataDir string

	Redis RedisConfig
	Mongo MongoConfig
}

// Open builds the configured store. Every operation on the returned store
// is reported to observability.Store().
func Open(ctx context.Context, cfg Config) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendFile
	}

	var (
		s   Store
		err error
	)
	switch backend {
	case BackendMemory:
		s = NewMemoryStore()
	case BackendFile:
		s, err = NewFileStore(cfg.pathOr("history.json"))
	case BackendSQLite:
		s, err = NewSQLiteStore(ctx, cfg.pathOr("history.db"))
	case BackendRedis:
		s, err = NewRedisStore(ctx, cfg.Redis)
	case BackendMongo:
		s, err = NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown history backend %q (available: %s)", cfg.Backend, strings.Join(Backends, ", "))
	}
	if err != nil {
		return nil, err
	}
	return &instrumented{backend: backend, next: s}, nil
}

func (c Config) pathOr(name string) string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(c.DataDir, name)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "history entry %q not found", id)
}

// sortNewestFirst orders entries by creation time, newest first. Entries
// created at the same instant keep their relative order.
func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// instrumented reports store operations to the observability hooks.
type instrumented struct {
	backend string
	next    Store
}

func (s *instrumented) observe(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, s.backend, op, time.Since(start), err)
}

func (s *instrumented) Add(ctx context.Context, e Entry) error {
	start := time.Now()
	err := s.next.Add(ctx, e)
	s.observe(ctx, "add", start, err)
	return err
}

func (s *instrumented) List(ctx context.Context) ([]Entry, error) {
	start := time.Now()
	entries, err := s.next.List(ctx)
	s.observe(ctx, "list", start, err)
	return entries, err
}

func (s *instrumented) Get(ctx context.Context, id string) (Entry, error) {
	start := time.Now()
	e, err := s.next.Get(ctx, id)
	s.observe(ctx, "get", start, err)
	return e, err
}

func (s *instrumented) Remove(ctx context.Context, id string) error {
	start := time.Now()
	err := s.next.Remove(ctx, id)
	s.observe(ctx, "remove", start, err)
	return err
}

func (s *instrumented) Clear(ctx context.Context) error {
	start := time.Now()
	err := s.next.Clear(ctx)
	s.observe(ctx, "clear", start, err)
	return err
}

func (s *instrumented) Count(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := s.next.Count(ctx)
	s.observe(ctx, "count", start, err)
	return n, err
}

func (s *instrumented) Close() error { return s.next.Close() }

// Backend returns the backend name of a store built by Open.
func Backend(s Store) string {
	if in, ok := s.(*instrumented); ok {
		return in.backend
	}
	return ""
}
