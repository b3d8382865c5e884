package builder

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory registry of open drafts. Abandoned drafts are
// reaped by a background goroutine once they have been idle past the TTL;
// there is no offline persistence of in-progress quotes.
type Store struct {
	mu          sync.RWMutex
	drafts      map[uuid.UUID]*Draft
	entryTTL    time.Duration
	cleanupTick time.Duration
}

// StoreConfig holds configuration for the draft store
type StoreConfig struct {
	EntryTTL        time.Duration // How long an idle draft is kept
	CleanupInterval time.Duration // How often idle drafts are reaped
}

// DefaultStoreConfig returns sensible defaults
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		EntryTTL:        2 * time.Hour,
		CleanupInterval: 10 * time.Minute,
	}
}

// NewStore creates a draft store and starts its cleanup goroutine
func NewStore(cfg StoreConfig) *Store {
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = DefaultStoreConfig().EntryTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultStoreConfig().CleanupInterval
	}
	s := &Store{
		drafts:      make(map[uuid.UUID]*Draft),
		entryTTL:    cfg.EntryTTL,
		cleanupTick: cfg.CleanupInterval,
	}
	go s.cleanupLoop()
	return s
}

// Create opens a new empty draft owned by the given user
func (s *Store) Create(createdBy uuid.UUID) *Draft {
	draft := newDraft(createdBy)
	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()
	return draft
}

// Get returns the draft with the given id, if it is still open
func (s *Store) Get(id uuid.UUID) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	return draft, ok
}

// Delete closes a draft. Results of remote calls still in flight for the
// draft are dropped by their callers when Get no longer finds it.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}

// Len returns the number of open drafts
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

// cleanupLoop periodically removes idle drafts
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupTick)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup()
	}
}

// cleanup removes drafts that have been idle past the TTL
func (s *Store) cleanup() {
	cutoff := time.Now().Add(-s.entryTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, draft := range s.drafts {
		draft.mu.Lock()
		idle := draft.lastActive.Before(cutoff)
		draft.mu.Unlock()
		if idle {
			delete(s.drafts, id)
		}
	}
}
