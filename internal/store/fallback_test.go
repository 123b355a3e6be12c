package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/explainit/backend/internal/game"
)

// flakyStore simulates a durable backend that can be switched off.
type flakyStore struct {
	inner *MemoryStore
	down  bool
	sets  int
}

var errBackendDown = errors.New("backend down")

func (f *flakyStore) Get(ctx context.Context, code string) (*game.Room, error) {
	if f.down {
		return nil, errBackendDown
	}
	return f.inner.Get(ctx, code)
}

func (f *flakyStore) Set(ctx context.Context, code string, room *game.Room) error {
	f.sets++
	if f.down {
		return errBackendDown
	}
	return f.inner.Set(ctx, code, room)
}

func (f *flakyStore) Delete(ctx context.Context, code string) error {
	if f.down {
		return errBackendDown
	}
	return f.inner.Delete(ctx, code)
}

func TestFallbackMirrorsEveryWrite(t *testing.T) {
	ctx := context.Background()
	durable := &flakyStore{inner: NewMemoryStore(0)}
	memory := NewMemoryStore(0)
	s := NewFallbackStore(durable, memory)

	room := game.NewRoom("AB12CD", "Ann", "p1", time.Now())
	require.NoError(t, s.Set(ctx, "AB12CD", room))

	// Both layers hold the record even though the durable write succeeded.
	_, err := durable.inner.Get(ctx, "AB12CD")
	assert.NoError(t, err)
	_, err = memory.Get(ctx, "AB12CD")
	assert.NoError(t, err)
}

func TestFallbackReadsSurviveDurableOutage(t *testing.T) {
	ctx := context.Background()
	durable := &flakyStore{inner: NewMemoryStore(0)}
	s := NewFallbackStore(durable, NewMemoryStore(0))

	room := game.NewRoom("AB12CD", "Ann", "p1", time.Now())
	require.NoError(t, s.Set(ctx, "AB12CD", room))

	durable.down = true
	got, err := s.Get(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", got.Code)
}

func TestFallbackWriteSucceedsWhenDurableFails(t *testing.T) {
	ctx := context.Background()
	durable := &flakyStore{inner: NewMemoryStore(0), down: true}
	s := NewFallbackStore(durable, NewMemoryStore(0))

	room := game.NewRoom("AB12CD", "Ann", "p1", time.Now())
	assert.NoError(t, s.Set(ctx, "AB12CD", room), "a durable failure is absorbed by the mirror")
	assert.Equal(t, 1, durable.sets, "exactly one durable attempt, no retries")

	got, err := s.Get(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", got.Code)
}

func TestFallbackMissReadsAsNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewFallbackStore(&flakyStore{inner: NewMemoryStore(0)}, NewMemoryStore(0))

	_, err := s.Get(ctx, "MISSIN")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFallbackWithoutDurableLayer(t *testing.T) {
	ctx := context.Background()
	s := NewFallbackStore(nil, NewMemoryStore(0))

	room := game.NewRoom("AB12CD", "Ann", "p1", time.Now())
	require.NoError(t, s.Set(ctx, "AB12CD", room))

	got, err := s.Get(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", got.Code)

	require.NoError(t, s.Delete(ctx, "AB12CD"))
	_, err = s.Get(ctx, "AB12CD")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFallbackDeleteRemovesBothLayers(t *testing.T) {
	ctx := context.Background()
	durable := &flakyStore{inner: NewMemoryStore(0)}
	memory := NewMemoryStore(0)
	s := NewFallbackStore(durable, memory)

	room := game.NewRoom("AB12CD", "Ann", "p1", time.Now())
	require.NoError(t, s.Set(ctx, "AB12CD", room))
	require.NoError(t, s.Delete(ctx, "AB12CD"))

	_, err := durable.inner.Get(ctx, "AB12CD")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = memory.Get(ctx, "AB12CD")
	assert.ErrorIs(t, err, ErrNotFound)
}
