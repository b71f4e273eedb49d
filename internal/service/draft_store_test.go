package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusuite/exam-seating-api/internal/allocator"
)

func TestDraftStorePutGetDelete(t *testing.T) {
	store := NewDraftStore(time.Hour, zap.NewNop())
	store.Put(allocator.Draft{ID: "d1", ExamName: "Finals"})

	draft, ok := store.Get("d1")
	require.True(t, ok)
	assert.Equal(t, "Finals", draft.ExamName)

	store.Delete("d1")
	_, ok = store.Get("d1")
	assert.False(t, ok)
}

func TestDraftStoreExpiry(t *testing.T) {
	store := NewDraftStore(10*time.Millisecond, zap.NewNop())
	store.Put(allocator.Draft{ID: "d1"})

	time.Sleep(25 * time.Millisecond)
	_, ok := store.Get("d1")
	assert.False(t, ok, "expired draft must not be returned")
	assert.Zero(t, store.Len())
}

func TestDraftStoreSweep(t *testing.T) {
	store := NewDraftStore(10*time.Millisecond, zap.NewNop())
	store.Put(allocator.Draft{ID: "d1"})
	store.Put(allocator.Draft{ID: "d2"})

	time.Sleep(25 * time.Millisecond)
	store.Put(allocator.Draft{ID: "d3"})

	removed := store.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())
}
