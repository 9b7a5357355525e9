// Package ratelimit guards PIN verification with a persisted per-IP attempt
// counter. The store is read-then-write without a transaction; two racing
// failure recordings can under-count by one attempt, which is acceptable for
// slowing brute force.
package ratelimit

import (
	"time"

	"hearth/internal/models"
)

const (
	// MaxAttempts is the number of failed attempts allowed before lockout.
	MaxAttempts = 3
	// LockoutDuration is measured from the attempt that triggered the lockout.
	LockoutDuration = 5 * time.Minute
)

// Status is the result of a rate-limit check.
type Status struct {
	Allowed           bool       `json:"allowed"`
	RemainingAttempts int        `json:"remaining_attempts"`
	LockoutEndsAt     *time.Time `json:"lockout_ends_at,omitempty"`
}

// Limiter tracks failed PIN attempts per IP.
type Limiter struct {
	store Store
	now   func() time.Time
}

// NewLimiter creates a limiter on top of the given store.
func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// Check reports whether the IP may attempt PIN verification. An expired
// lockout deletes the record so the next window starts fresh with the full
// attempt budget, never a decremented one.
func (l *Limiter) Check(ip string) (*Status, error) {
	record, err := l.store.Get(ip)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &Status{Allowed: true, RemainingAttempts: MaxAttempts}, nil
	}

	if record.LockoutUntil != nil {
		if !l.now().Before(*record.LockoutUntil) {
			if err := l.store.Delete(ip); err != nil {
				return nil, err
			}
			return &Status{Allowed: true, RemainingAttempts: MaxAttempts}, nil
		}
		return &Status{Allowed: false, RemainingAttempts: 0, LockoutEndsAt: record.LockoutUntil}, nil
	}

	remaining := MaxAttempts - record.AttemptCount
	if remaining < 0 {
		remaining = 0
	}
	return &Status{Allowed: remaining > 0, RemainingAttempts: remaining}, nil
}

// RecordFailure counts a failed attempt for the IP, starting the lockout
// when the attempt budget is exhausted.
func (l *Limiter) RecordFailure(ip string) error {
	now := l.now()

	record, err := l.store.Get(ip)
	if err != nil {
		return err
	}
	if record == nil {
		record = &models.RateLimitRecord{IPAddress: ip}
	}

	record.AttemptCount++
	record.LastAttemptAt = now
	if record.AttemptCount >= MaxAttempts {
		lockoutEnd := now.Add(LockoutDuration)
		record.LockoutUntil = &lockoutEnd
	}

	return l.store.Upsert(record)
}

// Clear removes the record for the IP entirely. Called on successful PIN
// verification; deleting rather than resetting the counter guarantees a
// stale lockout timestamp can never resurrect.
func (l *Limiter) Clear(ip string) error {
	return l.store.Delete(ip)
}
