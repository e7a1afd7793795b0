package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/chatterloop/widget/internal/domain/models"
)

// MemoryStore keeps identities in process memory. Values are stored as JSON
// to mirror the browser sessionStorage contract, so a corrupt payload is a
// reachable state rather than a theoretical one.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
		now:     time.Now,
	}
}

// Save serializes the details under the chatbot/visitor key.
func (s *MemoryStore) Save(_ context.Context, chatbotID, visitorID string, details models.UserDetails) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[Key(chatbotID, visitorID)] = raw
	return nil
}

// Load returns the stored details, or nil when absent, expired or corrupt.
// Expired and corrupt entries are removed on the way out.
func (s *MemoryStore) Load(_ context.Context, chatbotID, visitorID string) (*models.UserDetails, error) {
	key := Key(chatbotID, visitorID)

	s.mu.RLock()
	raw, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var details models.UserDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		s.delete(key)
		return nil, nil
	}

	if details.ExpiredAt(s.now()) {
		s.delete(key)
		return nil, nil
	}

	return &details, nil
}

// Clear removes the entry for the chatbot/visitor pair.
func (s *MemoryStore) Clear(_ context.Context, chatbotID, visitorID string) error {
	s.delete(Key(chatbotID, visitorID))
	return nil
}

// SweepExpired drops every expired or unreadable entry and returns the count.
func (s *MemoryStore) SweepExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, raw := range s.entries {
		var details models.UserDetails
		if err := json.Unmarshal(raw, &details); err != nil || details.ExpiredAt(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// putRaw injects an arbitrary payload, used by tests to simulate corruption.
func (s *MemoryStore) putRaw(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = raw
}
