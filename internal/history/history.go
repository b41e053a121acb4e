// Package history persists evaluated REPL expressions between sessions.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"calc/internal/diag"
)

// Current schema version - increment when the file format changes
const schemaVersion uint16 = 1

// FileName is the history file inside the cache directory.
const FileName = "history.mp"

// Entry is one evaluated expression.
type Entry struct {
	Expr  string
	Value float64
	Err   string    // пусто при успехе
	Code  diag.Code // код ошибки, UnknownCode при успехе
	At    time.Time
}

// OK reports whether the expression evaluated without error.
func (e Entry) OK() bool { return e.Err == "" }

// NewEntry records the outcome of evaluating expr.
func NewEntry(expr string, v float64, err error) Entry {
	e := Entry{Expr: expr, At: time.Now().UTC()}
	if err != nil {
		e.Err = err.Error()
		e.Code = diag.CodeOf(err)
		return e
	}
	e.Value = v
	return e
}

type payload struct {
	Schema  uint16
	Entries []Entry
}

// Store keeps the last limit entries in memory and writes them on Save.
// Thread-safe for concurrent access.
type Store struct {
	mu      sync.RWMutex
	path    string
	limit   int
	entries []Entry
}

// DefaultPath returns $XDG_CACHE_HOME/<app>/history.mp, falling back to
// ~/.cache.
func DefaultPath(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app, FileName), nil
}

// Open loads the history at path. A missing file, or one written with
// another schema version, gives an empty store. limit <= 0 disables
// trimming.
func Open(path string, limit int) (*Store, error) {
	s := &Store{path: path, limit: limit}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: corrupt history: %w", path, err)
	}
	if p.Schema != schemaVersion {
		return s, nil
	}
	s.entries = p.Entries
	s.trim()
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Add appends an entry, dropping the oldest ones past the limit.
func (s *Store) Add(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	s.trim()
}

// Entries returns a copy of all entries, oldest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Exprs returns expressions for recall, oldest first, skipping consecutive
// duplicates.
func (s *Store) Exprs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if n := len(out); n > 0 && out[n-1] == e.Expr {
			continue
		}
		out = append(out, e.Expr)
	}
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Save writes the store to disk atomically.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return writeAtomic(s.path, &payload{Schema: schemaVersion, Entries: s.entries})
}

// Clear drops all entries and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) trim() {
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = slices.Clone(s.entries[len(s.entries)-s.limit:])
	}
}

func writeAtomic(path string, p *payload) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(p); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}
