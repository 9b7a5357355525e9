package models

import "time"

// RateLimitRecord tracks failed PIN attempts per client IP. One row per IP,
// created on first failure and deleted on success or lockout expiry.
type RateLimitRecord struct {
	Base
	IPAddress     string     `gorm:"size:45;not null;uniqueIndex" json:"ip_address"`
	AttemptCount  int        `gorm:"not null;default:0" json:"attempt_count"`
	LastAttemptAt time.Time  `gorm:"not null" json:"last_attempt_at"`
	LockoutUntil  *time.Time `json:"lockout_until,omitempty"`
}
