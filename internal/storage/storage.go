package storage

import (
	"sort"
	"sync"
)

// UnlockStore tracks which premium recipes the current session has paid for.
// The set only grows — there is no remove operation — and it dies with the
// process; nothing is persisted.
type UnlockStore struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func New() *UnlockStore {
	return &UnlockStore{
		ids: make(map[string]struct{}),
	}
}

// Unlock marks a recipe as paid for. Unlocking an already-unlocked recipe is
// a no-op.
func (s *UnlockStore) Unlock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// IsUnlocked reports whether payment has completed for the recipe.
func (s *UnlockStore) IsUnlocked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of unlocked recipes.
func (s *UnlockStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the unlocked recipe ids in sorted order.
func (s *UnlockStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
