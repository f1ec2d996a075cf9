package repositories

import (
	"context"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
)

// ActorRepositoryFacade is the consolidated credential-store view over both
// actor tables. The credential service is written once against this interface
// instead of duplicating the login/lockout/token flows per actor variant.
type ActorRepositoryFacade interface {
	// FindActorByID resolves an actor of the given kind by primary key.
	FindActorByID(ctx context.Context, kind domain.ActorKind, actorID string) (*domain.Actor, error)

	// FindActorByEmail resolves an actor of the given kind by (lower-cased) email.
	FindActorByEmail(ctx context.Context, kind domain.ActorKind, email string) (*domain.Actor, error)

	// FindActorByVerificationDigest resolves an actor of the given kind holding
	// the supplied email-verification token digest, regardless of expiry.
	FindActorByVerificationDigest(ctx context.Context, kind domain.ActorKind, digest string) (*domain.Actor, error)

	// FindActorByResetDigest resolves an actor of the given kind holding the
	// supplied password-reset token digest, regardless of expiry.
	FindActorByResetDigest(ctx context.Context, kind domain.ActorKind, digest string) (*domain.Actor, error)

	// UpdateCredentials persists the actor's credential columns (password hash,
	// one-time token digests and expiries, verification flag, lockout state,
	// last login). Profile fields are untouched.
	UpdateCredentials(ctx context.Context, kind domain.ActorKind, actorID string, creds domain.Credentials) error

	// DeactivateActor soft-disables the actor (is_active=false). The record is
	// never hard-deleted.
	DeactivateActor(ctx context.Context, kind domain.ActorKind, actorID string) error
}
