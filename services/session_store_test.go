package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"moviedetectives/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *SessionData {
	return &SessionData{
		QuizType:  models.QuizTypeTitleDetectives,
		Question:  &models.TitleDetectivesQuestion{Question: "q", Hint1: "h1", Hint2: "h2"},
		Chat:      &Chat{},
		StartedAt: time.Now(),
	}
}

func TestSessionStoreTakeReturnsSessionExactlyOnce(t *testing.T) {
	store := NewSessionStore()

	id := store.Create(newTestSession())
	require.NotEmpty(t, id)

	session, err := store.Take(id)
	require.NoError(t, err)
	assert.Equal(t, id, session.QuizID)
	assert.Equal(t, models.QuizTypeTitleDetectives, session.QuizType)

	_, err = store.Take(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreTakeUnknownID(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Take("no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreIDsAreUnique(t *testing.T) {
	store := NewSessionStore()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := store.Create(newTestSession())
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestSessionStoreConcurrentTakeHasOneWinner(t *testing.T) {
	store := NewSessionStore()
	id := store.Create(newTestSession())

	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(id); err == nil {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins)
}

func TestSessionStoreSessionsListsOpenSessions(t *testing.T) {
	store := NewSessionStore()

	first := store.Create(newTestSession())
	second := store.Create(newTestSession())

	sessions := store.Sessions()
	require.Len(t, sessions, 2)

	_, err := store.Take(first)
	require.NoError(t, err)

	sessions = store.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, second, sessions[0].QuizID)
}
