package fund

import "sync"

// Store holds the snapshot currently on display. Concurrent refreshes each
// replace the whole snapshot under the lock; last write wins, which is
// acceptable because every snapshot is an idempotent read of external truth.
type Store struct {
	mu        sync.RWMutex
	snapshot  *Snapshot
	tipHeight int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs a new snapshot.
func (s *Store) Replace(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
}

// Snapshot returns the current snapshot, or nil before the first refresh.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// SetTipHeight records the last known chain tip height.
func (s *Store) SetTipHeight(height int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tipHeight = height
}

// TipHeight returns the last known tip height, 0 when never fetched.
func (s *Store) TipHeight() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tipHeight
}

// Campaign looks up a campaign by id in the current snapshot.
func (s *Store) Campaign(id uint64) (Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return Campaign{}, false
	}
	for _, c := range s.snapshot.Campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return Campaign{}, false
}
