package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propalyze/logger"
	"propalyze/models"
)

func TestSessionStore_Get(t *testing.T) {
	store := NewSessionStore(nil, time.Minute, logger.Discard())

	fresh := store.Get("", "")
	_, err := uuid.Parse(fresh.Key().Visitor)
	require.NoError(t, err)
	_, err = uuid.Parse(fresh.Key().Page)
	require.NoError(t, err)

	assert.Same(t, fresh, store.Get(fresh.Key().Visitor, fresh.Key().Page))
	assert.NotEqual(t, "not-a-uuid", store.Get("not-a-uuid", fresh.Key().Page).Key().Visitor)

	known := SessionKey{Visitor: uuid.NewString(), Page: uuid.NewString()}
	assert.Equal(t, known, store.Get(known.Visitor, known.Page).Key())
	assert.Equal(t, 3, store.Len())

	_, ok := store.Lookup(known.Visitor, uuid.NewString())
	assert.False(t, ok)
}

func TestSessionStore_PagesOfOneVisitorAreSeparate(t *testing.T) {
	store := NewSessionStore(nil, time.Minute, logger.Discard())
	visitor := uuid.NewString()

	tabA := store.Get(visitor, "")
	tabB := store.Get(visitor, "")

	assert.NotSame(t, tabA, tabB)
	assert.Equal(t, visitor, tabA.Key().Visitor)
	assert.Equal(t, visitor, tabB.Key().Visitor)
	assert.Same(t, tabA, store.Get(visitor, tabA.Key().Page))

	found, ok := store.Lookup(visitor, tabB.Key().Page)
	require.True(t, ok)
	assert.Same(t, tabB, found)
}

func TestSessionStore_Evict(t *testing.T) {
	now := time.Now()
	store := NewSessionStore(nil, time.Minute, logger.Discard())
	store.now = func() time.Time { return now }

	stale := store.Get("", "")
	now = now.Add(2 * time.Minute)
	active := store.Get("", "")

	evicted := store.Evict()

	assert.Equal(t, 1, evicted)
	_, ok := store.Lookup(stale.Key().Visitor, stale.Key().Page)
	assert.False(t, ok)
	_, ok = store.Lookup(active.Key().Visitor, active.Key().Page)
	assert.True(t, ok)
}

func TestSessionStore_EvictKeepsBusySessions(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc, err := NewSearchService(&stubAPI{search: func(ctx context.Context, p models.SearchPayload) ([]models.Listing, error) {
		close(started)
		<-release
		return nil, nil
	}}, logger.Discard())
	require.NoError(t, err)

	store := NewSessionStore(svc, time.Nanosecond, logger.Discard())
	busy := store.Get("", "")
	done := make(chan struct{})
	go func() {
		busy.Search(context.Background(), models.SearchPayload{}, "")
		close(done)
	}()
	<-started

	store.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.Equal(t, 0, store.Evict())

	close(release)
	<-done
	assert.Equal(t, 1, store.Evict())
}

func TestSessionStore_Janitor(t *testing.T) {
	store := NewSessionStore(nil, time.Nanosecond, logger.Discard())
	store.Get("", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.StartJanitor(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
}
