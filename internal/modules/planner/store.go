package planner

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps in-progress drafts in memory. A draft lives until it is
// submitted, explicitly discarded or idle longer than the TTL; nothing is
// persisted before submission, so discarding is just dropping the entry.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]*storeEntry
}

type storeEntry struct {
	draft   Draft
	touched time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[uuid.UUID]*storeEntry),
	}
}

func (s *Store) Put(d Draft) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
	s.entries[d.ID] = &storeEntry{draft: d, touched: now}
}

func (s *Store) Get(id uuid.UUID) (Draft, bool) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
	e, ok := s.entries[id]
	if !ok {
		return Draft{}, false
	}
	e.touched = now
	return e.draft, true
}

// Mutate applies fn to the stored draft under the store lock, so all
// interactions on one draft stay ordered.
func (s *Store) Mutate(id uuid.UUID, fn func(Draft) (Draft, error)) (Draft, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)

	e, ok := s.entries[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}

	next, err := fn(e.draft)
	if err != nil {
		return Draft{}, err
	}
	e.draft = next
	e.touched = now
	return next, nil
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

func (s *Store) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, e := range s.entries {
		if now.Sub(e.touched) > s.ttl {
			delete(s.entries, id)
		}
	}
}
