package domain

import "time"

// Lockout policy: reaching MaxLoginAttempts cumulative failures locks the
// account for LockoutDuration. A lockUntil in the past is treated as absent
// (lazy expiry) and the next failure restarts the counter at 1.
const (
	MaxLoginAttempts = 5
	LockoutDuration  = 2 * time.Hour
)

// IsLocked reports whether authentication must be refused at the given time,
// regardless of password correctness.
func (c *Credentials) IsLocked(now time.Time) bool {
	return c.LockUntil != nil && c.LockUntil.After(now)
}

// RegisterLoginFailure advances the lockout state machine after a failed
// password comparison. It must only be called when IsLocked(now) is false.
func (c *Credentials) RegisterLoginFailure(now time.Time) {
	if c.LockUntil != nil && !c.LockUntil.After(now) {
		// Expired lock: this failure starts a fresh window.
		c.LockUntil = nil
		c.LoginAttempts = 1
		return
	}
	c.LoginAttempts++
	if c.LoginAttempts >= MaxLoginAttempts {
		until := now.Add(LockoutDuration)
		c.LockUntil = &until
	}
}

// RegisterLoginSuccess resets the lockout state and records the login time.
func (c *Credentials) RegisterLoginSuccess(now time.Time) {
	c.LoginAttempts = 0
	c.LockUntil = nil
	t := now
	c.LastLogin = &t
}
