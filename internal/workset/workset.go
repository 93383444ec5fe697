// Package workset holds the session's append-only collection of scored
// tasks. Reads return snapshots, so a rendered list never aliases the
// authoritative set.
package workset

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rnwolfe/triage/internal/task"
)

// Entry is one ingested task. Structurally identical tasks appended twice
// are two entries with distinct IDs.
type Entry struct {
	ID      uuid.UUID
	Seq     int
	AddedAt time.Time
	Task    task.Scored
}

// Store is the working set. It only grows.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// Append adds tasks in the given order and returns the new entries.
func (s *Store) Append(tasks ...task.Scored) []Entry {
	if len(tasks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]Entry, 0, len(tasks))
	now := s.now()
	for _, t := range tasks {
		e := Entry{
			ID:      uuid.New(),
			Seq:     len(s.entries),
			AddedAt: now,
			Task:    t,
		}
		s.entries = append(s.entries, e)
		added = append(added, e)
	}
	return added
}

// Snapshot returns a copy of all entries in insertion order.
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Tasks returns a copy of the scored tasks in insertion order.
func (s *Store) Tasks() []task.Scored {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]task.Scored, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Task
	}
	return out
}

// Len reports the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
