// Package history keeps the bounded, deduplicated list of recent queries.
// The list is most-recent-first and rewritten to disk on every mutation.
package history

import (
	"log/slog"
	"sync"

	"github.com/lepinkainen/bookdex/internal/fileutil"
)

// DefaultCapacity is the number of queries retained.
const DefaultCapacity = 10

// Store holds recent queries. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	path     string
	capacity int
	entries  []string
	onChange func([]string)
}

// NewStore creates a Store persisting to path. A capacity below one
// falls back to DefaultCapacity. The persisted list is loaded eagerly;
// a missing or unreadable payload degrades to an empty history.
func NewStore(path string, capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	s := &Store{
		path:     path,
		capacity: capacity,
	}
	s.load()
	return s
}

// load reads the persisted list. Errors are logged, never raised: a
// corrupt payload means an empty history.
func (s *Store) load() {
	if !fileutil.FileExists(s.path) {
		return
	}

	var entries []string
	if err := fileutil.ReadJSONFile(s.path, &entries); err != nil {
		slog.Warn("Ignoring unreadable history file", "path", s.path, "error", err)
		return
	}

	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
}

// Record removes any existing entry equal to query, inserts it at the
// front, truncates to capacity and persists the list.
func (s *Store) Record(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]string, 0, len(s.entries)+1)
	updated = append(updated, query)
	for _, e := range s.entries {
		if e != query {
			updated = append(updated, e)
		}
	}
	if len(updated) > s.capacity {
		updated = updated[:s.capacity]
	}
	s.entries = updated

	if err := fileutil.WriteJSONFile(s.entries, s.path); err != nil {
		return err
	}

	s.notify()
	return nil
}

// Entries returns a copy of the list, most recent first.
func (s *Store) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear empties the list and persists the empty state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := fileutil.WriteJSONFile([]string{}, s.path); err != nil {
		return err
	}

	s.notify()
	return nil
}

// OnChange registers a callback invoked with the current list after
// every mutation. Only one callback is kept.
func (s *Store) OnChange(fn func([]string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// notify must be called with the lock held.
func (s *Store) notify() {
	if s.onChange == nil {
		return
	}
	snapshot := make([]string, len(s.entries))
	copy(snapshot, s.entries)
	s.onChange(snapshot)
}
