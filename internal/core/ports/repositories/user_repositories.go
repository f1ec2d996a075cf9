package repositories

import (
	"context"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their (lower-cased) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByGoogleID retrieves a user linked to the given Google account.
	FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's profile details.
	UpdateUser(ctx context.Context, user domain.User) error

	// LinkGoogleAccount attaches a Google identity to an existing user,
	// optionally marking the email verified.
	LinkGoogleAccount(ctx context.Context, userID, googleID string, emailVerified bool) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
