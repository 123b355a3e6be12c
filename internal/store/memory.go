package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/explainit/backend/internal/game"
)

type memoryEntry struct {
	data     []byte
	storedAt time.Time
}

// MemoryStore is the process-local volatile room store. It backs the
// fallback chain and is also handy on its own in tests and local dev.
// Rooms are held serialized, the same isolation the durable backends
// give, so callers never share mutable state through the store. Entries
// are evicted after the retention window; eviction is a storage concern,
// so an expired room reads as ErrNotFound like any other miss.
type MemoryStore struct {
	mu        sync.RWMutex
	rooms     map[string]memoryEntry
	retention time.Duration
	now       func() time.Time
}

// NewMemoryStore creates a store that retains entries for the given
// window. A non-positive retention disables eviction.
func NewMemoryStore(retention time.Duration) *MemoryStore {
	return &MemoryStore{
		rooms:     make(map[string]memoryEntry),
		retention: retention,
		now:       time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, code string) (*game.Room, error) {
	s.mu.RLock()
	entry, ok := s.rooms[keyPrefix+code]
	s.mu.RUnlock()
	if !ok || s.expired(entry) {
		return nil, ErrNotFound
	}
	var room game.Room
	if err := json.Unmarshal(entry.data, &room); err != nil {
		return nil, fmt.Errorf("memory get: decode room %s: %w", code, err)
	}
	return &room, nil
}

func (s *MemoryStore) Set(_ context.Context, code string, room *game.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("memory set: encode room %s: %w", code, err)
	}
	s.mu.Lock()
	s.rooms[keyPrefix+code] = memoryEntry{data: data, storedAt: s.now()}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	delete(s.rooms, keyPrefix+code)
	s.mu.Unlock()
	return nil
}

// StartJanitor sweeps expired entries until ctx is done. Expired entries
// are also filtered lazily on Get, so the sweep only reclaims memory.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if s.retention <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.rooms {
		if s.expired(entry) {
			delete(s.rooms, key)
		}
	}
}

func (s *MemoryStore) expired(entry memoryEntry) bool {
	return s.retention > 0 && s.now().Sub(entry.storedAt) > s.retention
}
