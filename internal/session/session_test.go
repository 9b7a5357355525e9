package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedManager returns a manager whose codec and clock are both pinned to at.
func fixedManager(t *testing.T, ttl time.Duration, at time.Time) *Manager {
	t.Helper()
	codec := &jwtCodec{secret: []byte("test-secret"), now: func() time.Time { return at }}
	m := NewManager(codec, ttl)
	m.now = func() time.Time { return at }
	return m
}

func TestCreateAndValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := fixedManager(t, time.Hour, now)

	token, err := m.Create("household-1")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "household-1", claims.Subject)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("one_hour_token", func(t *testing.T) {
		m := fixedManager(t, time.Hour, now)
		token, err := m.Create("household-1")
		require.NoError(t, err)

		remaining, ok := m.TimeRemaining(token)
		require.True(t, ok)
		assert.Equal(t, int64(3600), remaining)
	})

	t.Run("absent_token", func(t *testing.T) {
		m := fixedManager(t, time.Hour, now)
		_, ok := m.TimeRemaining("")
		assert.False(t, ok)
	})

	t.Run("garbage_token", func(t *testing.T) {
		m := fixedManager(t, time.Hour, now)
		_, ok := m.TimeRemaining("not.a.jwt")
		assert.False(t, ok)
	})

	t.Run("wrong_signature", func(t *testing.T) {
		other := &jwtCodec{secret: []byte("other-secret"), now: func() time.Time { return now }}
		token, err := other.Sign("household-1", time.Hour)
		require.NoError(t, err)

		m := fixedManager(t, time.Hour, now)
		_, ok := m.TimeRemaining(token)
		assert.False(t, ok)
	})

	t.Run("expired_token", func(t *testing.T) {
		m := fixedManager(t, time.Hour, now)
		token, err := m.Create("household-1")
		require.NoError(t, err)

		later := now.Add(2 * time.Hour)
		m.now = func() time.Time { return later }
		m.codec.(*jwtCodec).now = func() time.Time { return later }

		_, ok := m.TimeRemaining(token)
		assert.False(t, ok)
	})
}

func TestExpiringSoon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("true_at_23h_remaining", func(t *testing.T) {
		m := fixedManager(t, 23*time.Hour, now)
		token, err := m.Create("household-1")
		require.NoError(t, err)
		assert.True(t, m.ExpiringSoon(token))
	})

	t.Run("false_at_exactly_24h_remaining", func(t *testing.T) {
		m := fixedManager(t, 24*time.Hour, now)
		token, err := m.Create("household-1")
		require.NoError(t, err)
		assert.False(t, m.ExpiringSoon(token))
	})

	t.Run("false_for_invalid_token", func(t *testing.T) {
		m := fixedManager(t, time.Hour, now)
		assert.False(t, m.ExpiringSoon("bogus"))
	})
}

func TestRefresh(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("extends_session", func(t *testing.T) {
		m := fixedManager(t, 2*time.Hour, now)
		token, err := m.Create("household-1")
		require.NoError(t, err)

		// Advance one hour and refresh; the new token gets a full TTL.
		later := now.Add(time.Hour)
		m.now = func() time.Time { return later }
		m.codec.(*jwtCodec).now = func() time.Time { return later }

		refreshed, err := m.Refresh(token)
		require.NoError(t, err)

		remaining, ok := m.TimeRemaining(refreshed)
		require.True(t, ok)
		assert.Equal(t, int64(7200), remaining)

		claims, err := m.Validate(refreshed)
		require.NoError(t, err)
		assert.Equal(t, "household-1", claims.Subject)
	})

	t.Run("fails_without_valid_session", func(t *testing.T) {
		m := fixedManager(t, time.Hour, now)
		_, err := m.Refresh("")
		assert.ErrorIs(t, err, ErrNoActiveSession)
	})

	t.Run("fails_for_expired_session", func(t *testing.T) {
		m := fixedManager(t, time.Hour, now)
		token, err := m.Create("household-1")
		require.NoError(t, err)

		later := now.Add(3 * time.Hour)
		m.now = func() time.Time { return later }
		m.codec.(*jwtCodec).now = func() time.Time { return later }

		_, err = m.Refresh(token)
		assert.ErrorIs(t, err, ErrNoActiveSession)
	})
}
