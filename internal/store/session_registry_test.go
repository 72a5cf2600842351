package store

import (
	"testing"

	"ledger/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	users := NewUserRegistry()
	user, _, err := users.RegisterOrLogin("Alice", "555-0100")
	require.NoError(t, err)

	sessions := NewSessionRegistry(users)
	sessions.now = fixedClock(42)

	id, session := sessions.Create(user.ID)
	_, err = uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, models.Session{UserID: user.ID, CreatedAt: 42}, session)

	got, ok := sessions.Get(id)
	require.True(t, ok)
	assert.Equal(t, session, got)

	resolved, resolvedUser, err := sessions.Resolve(id)
	require.NoError(t, err)
	assert.Equal(t, session, resolved)
	assert.Equal(t, user.ID, resolvedUser.ID)
}

func TestSessionResolveReadsCurrentUser(t *testing.T) {
	users := NewUserRegistry()
	user, _, err := users.RegisterOrLogin("Alice", "555-0100")
	require.NoError(t, err)
	sessions := NewSessionRegistry(users)
	id, _ := sessions.Create(user.ID)

	_, _, err = users.RegisterOrLogin("Alice B", "555-0100")
	require.NoError(t, err)
	_, resolved, err := sessions.Resolve(id)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", resolved.Name)

	_, err = users.Delete(user.ID)
	require.NoError(t, err)

	_, _, err = sessions.Resolve(id)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, stillThere := sessions.Get(id)
	assert.True(t, stillThere)
}

func TestSessionCreateForUnknownUser(t *testing.T) {
	sessions := NewSessionRegistry(NewUserRegistry())

	id, _ := sessions.Create("USER-ghost")
	_, ok := sessions.Get(id)
	assert.True(t, ok)

	_, _, err := sessions.Resolve(id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSessionDeleteIsIdempotent(t *testing.T) {
	sessions := NewSessionRegistry(NewUserRegistry())
	id, _ := sessions.Create("USER-1")

	sessions.Delete(id)
	sessions.Delete(id)
	sessions.Delete("never-existed")

	_, ok := sessions.Get(id)
	assert.False(t, ok)
	_, _, err := sessions.Resolve(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionIDsAreUnique(t *testing.T) {
	sessions := NewSessionRegistry(NewUserRegistry())
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, _ := sessions.Create("USER-1")
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
