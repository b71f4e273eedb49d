package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edusuite/exam-seating-api/internal/allocator"
)

type draftEntry struct {
	draft     allocator.Draft
	expiresAt time.Time
}

// DraftStore keeps in-progress drafts in memory with a TTL. Drafts have no
// persistent identity until committed; an abandoned draft simply ages out.
type DraftStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]draftEntry
	logger  *zap.Logger
}

// NewDraftStore constructs a store with the given TTL.
func NewDraftStore(ttl time.Duration, logger *zap.Logger) *DraftStore {
	if ttl <= 0 {
		ttl = 4 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftStore{
		ttl:     ttl,
		entries: make(map[string]draftEntry),
		logger:  logger,
	}
}

// Put stores or replaces a draft and refreshes its TTL.
func (s *DraftStore) Put(draft allocator.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[draft.ID] = draftEntry{
		draft:     draft,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Get returns the draft if present and not expired.
func (s *DraftStore) Get(id string) (allocator.Draft, bool) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return allocator.Draft{}, false
	}
	if time.Now().After(entry.expiresAt) {
		s.Delete(id)
		return allocator.Draft{}, false
	}
	return entry.draft, true
}

// Delete drops a draft.
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len reports the number of live entries, expired ones included until swept.
func (s *DraftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes expired drafts and returns how many were dropped.
func (s *DraftStore) Sweep() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired drafts on the given interval until ctx ends.
func (s *DraftStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					s.logger.Sugar().Infow("expired drafts swept", "count", removed)
				}
			}
		}
	}()
}
