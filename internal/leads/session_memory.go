package leads

import (
	"context"
	"strings"
	"sync"
	"time"

	"cloud-savings/internal/shared/telemetry"
)

// MemorySessionStore keeps collections in memory, evicting sessions idle for longer than ttl.
// It is safe for concurrent use.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	collection *Collection
	lastSeen   time.Time
}

// NewMemorySessionStore constructs a MemorySessionStore. A ttl <= 0 disables eviction.
func NewMemorySessionStore(ttl time.Duration, now func() time.Time) *MemorySessionStore {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{
		ttl:      ttl,
		now:      now,
		sessions: make(map[string]*sessionEntry),
	}
}

// Collection returns the session's collection and refreshes its idle timer.
func (s *MemorySessionStore) Collection(ctx context.Context, sessionID string) (*Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{collection: NewCollection()}
		s.sessions[sessionID] = entry
	}
	entry.lastSeen = s.now()
	return entry.collection, nil
}

// Drop removes a session. Unknown sessions are ignored.
func (s *MemorySessionStore) Drop(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, strings.TrimSpace(sessionID))
	return nil
}

// Len reports the number of live sessions.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle past the ttl and returns how many were removed.
func (s *MemorySessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps on every tick until ctx is cancelled.
func (s *MemorySessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				telemetry.Info("sessions.evicted", map[string]any{
					"count":     removed,
					"remaining": s.Len(),
				})
			}
		}
	}
}
