package session

import (
	"errors"
	"time"
)

// ExpiringSoonThreshold is the remaining lifetime below which a session is
// reported as expiring soon. Fixed, not configurable per call.
const ExpiringSoonThreshold = 24 * time.Hour

// ErrNoActiveSession is returned by Refresh when there is no valid existing
// session to refresh.
var ErrNoActiveSession = errors.New("no active session to refresh")

// Manager implements the session contract on top of a TokenCodec.
type Manager struct {
	codec TokenCodec
	ttl   time.Duration
	now   func() time.Time
}

// NewManager creates a session manager issuing tokens with the given lifetime.
func NewManager(codec TokenCodec, ttl time.Duration) *Manager {
	return &Manager{codec: codec, ttl: ttl, now: time.Now}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create issues a new session token for the given subject.
func (m *Manager) Create(subject string) (string, error) {
	return m.codec.Sign(subject, m.ttl)
}

// Validate verifies a token and returns its claims, or ErrInvalidToken.
func (m *Manager) Validate(token string) (*Claims, error) {
	return m.codec.Verify(token)
}

// TimeRemaining returns the seconds until the token expires. The second
// return value is false for any absent, malformed, badly signed or expired
// token; that single signal means "not authenticated".
func (m *Manager) TimeRemaining(token string) (int64, bool) {
	claims, err := m.codec.Verify(token)
	if err != nil {
		return 0, false
	}

	remaining := claims.ExpiresAt.Sub(m.now())
	if remaining < 0 {
		return 0, false
	}
	return int64(remaining.Seconds()), true
}

// ExpiringSoon reports whether a valid token has less than 24 hours of
// lifetime left. Exactly 24 hours remaining is not yet "soon". Invalid
// tokens are never expiring soon; they are simply not sessions.
func (m *Manager) ExpiringSoon(token string) bool {
	remaining, ok := m.TimeRemaining(token)
	if !ok {
		return false
	}
	return time.Duration(remaining)*time.Second < ExpiringSoonThreshold
}

// Refresh issues a fresh token for the subject of an existing valid session.
// It fails with ErrNoActiveSession when the presented token is not valid;
// callers must treat that as an explicit result, not an exceptional state.
func (m *Manager) Refresh(token string) (string, error) {
	claims, err := m.codec.Verify(token)
	if err != nil {
		return "", ErrNoActiveSession
	}
	return m.codec.Sign(claims.Subject, m.ttl)
}
