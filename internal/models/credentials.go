package models

import (
	"database/sql"
	"time"
)

// CredentialColumns holds the authentication columns shared by the users and
// companies tables.
type CredentialColumns struct {
	PasswordHash sql.NullString `db:"password_hash"`
	GoogleID     sql.NullString `db:"google_id"`

	IsEmailVerified            bool           `db:"is_email_verified"`
	EmailVerificationTokenHash sql.NullString `db:"email_verification_token_hash"`
	EmailVerificationExpiresAt sql.NullTime   `db:"email_verification_expires_at"`
	PasswordResetTokenHash     sql.NullString `db:"password_reset_token_hash"`
	PasswordResetExpiresAt     sql.NullTime   `db:"password_reset_expires_at"`

	LoginAttempts int          `db:"login_attempts"`
	LockUntil     sql.NullTime `db:"lock_until"`

	IsActive  bool         `db:"is_active"`
	LastLogin sql.NullTime `db:"last_login"`
}

// User represents a row of the users table.
type User struct {
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	Email  string `db:"email"`
	Role   string `db:"role"`
	CredentialColumns
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Company represents a row of the companies table.
type Company struct {
	CompanyID   string `db:"company_id"`
	CompanyName string `db:"company_name"`
	Email       string `db:"email"`
	IsApproved  bool   `db:"is_approved"`
	CredentialColumns
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// RefreshToken represents a row of the refresh_tokens table.
type RefreshToken struct {
	ID        int64     `db:"id"`
	ActorKind string    `db:"actor_kind"`
	ActorID   string    `db:"actor_id"`
	TokenHash string    `db:"token_hash"`
	IssuedAt  time.Time `db:"issued_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
