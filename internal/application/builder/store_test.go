package builder

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	s := NewStore(DefaultStoreConfig())
	owner := uuid.New()

	draft := s.Create(owner)
	assert.Equal(t, owner, draft.CreatedByID)

	got, ok := s.Get(draft.ID)
	require.True(t, ok)
	assert.Same(t, draft, got)

	_, ok = s.Get(uuid.New())
	assert.False(t, ok)
}

func TestStoreDelete(t *testing.T) {
	s := NewStore(DefaultStoreConfig())

	draft := s.Create(uuid.New())
	require.Equal(t, 1, s.Len())

	s.Delete(draft.ID)
	assert.Equal(t, 0, s.Len())

	_, ok := s.Get(draft.ID)
	assert.False(t, ok)
}

func TestStoreCleanupReapsIdleDrafts(t *testing.T) {
	s := NewStore(StoreConfig{
		EntryTTL:        10 * time.Millisecond,
		CleanupInterval: time.Hour, // cleanup driven manually below
	})

	idle := s.Create(uuid.New())
	time.Sleep(20 * time.Millisecond)
	active := s.Create(uuid.New())

	s.cleanup()

	_, ok := s.Get(idle.ID)
	assert.False(t, ok)
	_, ok = s.Get(active.ID)
	assert.True(t, ok)
}

func TestStoreCleanupKeepsRecentlyTouchedDrafts(t *testing.T) {
	s := NewStore(StoreConfig{
		EntryTTL:        20 * time.Millisecond,
		CleanupInterval: time.Hour,
	})

	draft := s.Create(uuid.New())
	time.Sleep(15 * time.Millisecond)
	draft.SetProjectName("Harbor Hotel lobby")
	time.Sleep(10 * time.Millisecond)

	s.cleanup()

	_, ok := s.Get(draft.ID)
	assert.True(t, ok)
}
