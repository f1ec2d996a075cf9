package domain

import "time"

// MaxRefreshTokensPerActor caps the number of concurrently valid refresh
// tokens per actor; inserting beyond the cap evicts the oldest entry (FIFO).
const MaxRefreshTokensPerActor = 5

// RefreshToken is a server-side record of an issued refresh token, stored as
// a SHA-256 digest so the raw value is never persisted.
type RefreshToken struct {
	ID        int64     `json:"-"`
	ActorKind ActorKind `json:"-"`
	ActorID   string    `json:"-"`
	TokenHash string    `json:"-"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the stored entry is past its expiry.
func (r *RefreshToken) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
