package services

import (
	"context"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new learner or mentor, hashes the password,
	// stores a verification token digest and emails the raw token. Email
	// transport failures are logged and swallowed; the account is still
	// created.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// CreateOAuthUser creates or links a user from a validated Google
	// identity. Linked and created accounts are marked email-verified when
	// Google reports the email as verified.
	CreateOAuthUser(ctx context.Context, name, email, googleID string, emailVerified bool) (*domain.User, error)

	// UpdateUser updates profile fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
