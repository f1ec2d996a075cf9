package repositories

import (
	"context"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
)

// RefreshTokenRepositoryFacade manages the server-side refresh token records
// used for rotation and revocation.
type RefreshTokenRepositoryFacade interface {
	// AddRefreshToken stores a new token digest for the actor, pruning expired
	// entries and evicting the oldest entry beyond
	// domain.MaxRefreshTokensPerActor (FIFO).
	AddRefreshToken(ctx context.Context, token domain.RefreshToken) error

	// HasRefreshToken reports whether an unexpired record with the given digest
	// exists for the actor.
	HasRefreshToken(ctx context.Context, kind domain.ActorKind, actorID string, digest string) (bool, error)

	// RemoveRefreshToken deletes the record with the given digest, if present.
	RemoveRefreshToken(ctx context.Context, kind domain.ActorKind, actorID string, digest string) error

	// RemoveAllRefreshTokens revokes every refresh token held by the actor.
	RemoveAllRefreshTokens(ctx context.Context, kind domain.ActorKind, actorID string) error

	// ListRefreshTokens returns the actor's stored records ordered oldest first.
	ListRefreshTokens(ctx context.Context, kind domain.ActorKind, actorID string) ([]domain.RefreshToken, error)
}
