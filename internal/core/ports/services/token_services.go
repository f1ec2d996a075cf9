package services

import (
	"context"
	"time"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	"github.com/skillbridge/skillbridge_backend/internal/utils"
)

// TokenPair is an access/refresh token pair; the two are always minted
// together (login, email verification auto-login, OAuth callback, refresh).
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// TokenSvcFacade defines the interface for token generation and verification.
// Signing only; server-side storage and rotation of refresh tokens belong to
// the credential service.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed access token for the actor.
	GenerateAccessToken(ctx context.Context, actor *domain.Actor) (string, time.Time, error)

	// GenerateRefreshToken creates a signed refresh token for the actor.
	GenerateRefreshToken(ctx context.Context, actor *domain.Actor) (string, time.Time, error)

	// ParseAccessToken verifies signature and expiry of an access token.
	ParseAccessToken(tokenString string) (*utils.AccessClaims, error)

	// ParseRefreshToken verifies signature and expiry of a refresh token.
	ParseRefreshToken(tokenString string) (*utils.RefreshClaims, error)
}
