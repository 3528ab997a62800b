package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onamfest/house-registration/internal/session"
)

func setupGuard(t *testing.T) (*session.Guard, *session.Store) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "admin_session.json"))
	return session.NewGuard(store, 24), store
}

func TestCheck_NoSession(t *testing.T) {
	guard, _ := setupGuard(t)
	assert.False(t, guard.Check())
}

func TestCheck_FreshSession(t *testing.T) {
	guard, _ := setupGuard(t)
	require.NoError(t, guard.Begin())
	assert.True(t, guard.Check())
}

func TestCheck_JustBeforeExpiry(t *testing.T) {
	guard, _ := setupGuard(t)
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	guard.Now = func() time.Time { return start }
	require.NoError(t, guard.Begin())

	guard.Now = func() time.Time { return start.Add(24*time.Hour - time.Second) }
	assert.True(t, guard.Check(), "one second inside the window still grants access")
}

func TestCheck_JustAfterExpiryClearsState(t *testing.T) {
	guard, store := setupGuard(t)
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	guard.Now = func() time.Time { return start }
	require.NoError(t, guard.Begin())

	guard.Now = func() time.Time { return start.Add(24*time.Hour + time.Second) }
	assert.False(t, guard.Check(), "one second past the window denies access")

	// Expiry is destructive: the stored flag and timestamp are gone.
	st, err := store.Read()
	require.NoError(t, err)
	assert.False(t, st.Authenticated)
	assert.Zero(t, st.SessionStart)
}

func TestCheck_ExactBoundaryExpires(t *testing.T) {
	guard, _ := setupGuard(t)
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	guard.Now = func() time.Time { return start }
	require.NoError(t, guard.Begin())

	guard.Now = func() time.Time { return start.Add(24 * time.Hour) }
	assert.False(t, guard.Check())
}

func TestLogout_ClearsUnconditionally(t *testing.T) {
	guard, store := setupGuard(t)
	require.NoError(t, guard.Begin())
	require.NoError(t, guard.Logout())

	assert.False(t, guard.Check())
	st, err := store.Read()
	require.NoError(t, err)
	assert.False(t, st.Authenticated)

	// Logging out twice is fine.
	assert.NoError(t, guard.Logout())
}

func TestStore_RoundTrip(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "nested", "state.json"))

	require.NoError(t, store.Write(session.State{Authenticated: true, SessionStart: 1234567890}))
	st, err := store.Read()
	require.NoError(t, err)
	assert.True(t, st.Authenticated)
	assert.Equal(t, int64(1234567890), st.SessionStart)

	require.NoError(t, store.Clear())
	st, err = store.Read()
	require.NoError(t, err)
	assert.False(t, st.Authenticated)
}
