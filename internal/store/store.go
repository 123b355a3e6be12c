package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/explainit/backend/internal/game"
)

// ErrNotFound is returned when no room exists for a code. Callers must not
// distinguish a never-created room from one evicted by the volatile store.
var ErrNotFound = errors.New("room not found")

// keyPrefix namespaces room entries in shared backends.
const keyPrefix = "room:"

// DefaultRetention bounds how long the volatile fallback keeps entries.
const DefaultRetention = 24 * time.Hour

// RoomStore is the uniform persistence contract for room records.
type RoomStore interface {
	Get(ctx context.Context, code string) (*game.Room, error)
	Set(ctx context.Context, code string, room *game.Room) error
	Delete(ctx context.Context, code string) error
}

// FallbackStore chains a durable backend with the process-local volatile
// store. Reads try the durable layer first and fall through to memory on
// any error; writes always mirror into memory so a read after a durable
// outage can still see the latest value written by this process.
type FallbackStore struct {
	durable RoomStore
	memory  *MemoryStore
}

// NewFallbackStore builds the chain. durable may be nil, in which case the
// volatile store is the only layer (and its durability caveats apply).
func NewFallbackStore(durable RoomStore, memory *MemoryStore) *FallbackStore {
	return &FallbackStore{durable: durable, memory: memory}
}

func (s *FallbackStore) Get(ctx context.Context, code string) (*game.Room, error) {
	if s.durable != nil {
		room, err := s.durable.Get(ctx, code)
		if err == nil {
			return room, nil
		}
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("room", code).Msg("durable store read failed, trying fallback")
		}
		// A durable miss still consults memory: the last write may have
		// landed only in the mirror.
	}
	return s.memory.Get(ctx, code)
}

func (s *FallbackStore) Set(ctx context.Context, code string, room *game.Room) error {
	// Best-effort mirror regardless of the durable outcome.
	if err := s.memory.Set(ctx, code, room); err != nil {
		return err
	}
	if s.durable != nil {
		if err := s.durable.Set(ctx, code, room); err != nil {
			log.Warn().Err(err).Str("room", code).Msg("durable store write failed, kept in fallback only")
		}
	}
	return nil
}

func (s *FallbackStore) Delete(ctx context.Context, code string) error {
	if s.durable != nil {
		if err := s.durable.Delete(ctx, code); err != nil {
			log.Warn().Err(err).Str("room", code).Msg("durable store delete failed")
		}
	}
	return s.memory.Delete(ctx, code)
}
