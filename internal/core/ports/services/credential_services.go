package services

import (
	"context"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
)

// LoginParams carries everything a credential check needs. Kinds is tried in
// order, which lets the consolidated routes span both actor namespaces while
// the role-split routes pin a single one.
type LoginParams struct {
	Kinds    []domain.ActorKind
	Role     domain.UserRole // optional; restricts user logins to one role
	Email    string
	Password string
	// RejectUnverified makes an unverified email a hard failure
	// (apperrors.ErrEmailNotVerified) instead of a soft flag on the result.
	RejectUnverified bool
}

// LoginResult is the outcome of a successful credential flow.
type LoginResult struct {
	Actor  *domain.Actor
	Tokens *TokenPair
	// NeedsEmailVerification is set when the login succeeded but the email is
	// still unverified (soft-flag route families).
	NeedsEmailVerification bool
}

// CredentialSvcFacade is the consolidated authentication core: one
// implementation of login/lockout/rotation/one-time-token handling shared by
// every actor variant and route family.
type CredentialSvcFacade interface {
	// Login verifies credentials, drives the lockout state machine and, on
	// success, mints and stores a token pair.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh rotates the presented refresh token: verifies it, checks
	// server-side membership (a miss means it was revoked or replayed), removes
	// it and mints a replacement pair.
	Refresh(ctx context.Context, rawRefreshToken string) (*LoginResult, error)

	// Logout best-effort revokes the presented refresh token.
	Logout(ctx context.Context, rawRefreshToken string) error

	// ResolveActor loads the actor behind a verified access token. It fails
	// with apperrors.ErrAccountInactive for deactivated actors.
	ResolveActor(ctx context.Context, kind domain.ActorKind, actorID string) (*domain.Actor, error)

	// VerifyEmail consumes an email-verification token (searching both actor
	// namespaces), flips the verified flag and issues a session (auto-login).
	VerifyEmail(ctx context.Context, rawToken string) (*LoginResult, error)

	// ResendVerification issues a fresh verification token and emails it. The
	// error is neutral with respect to account existence.
	ResendVerification(ctx context.Context, kinds []domain.ActorKind, email string) error

	// ForgotPassword issues a password-reset token and emails it. Email
	// transport failure rolls the stored digest back and surfaces an error.
	ForgotPassword(ctx context.Context, kinds []domain.ActorKind, email string) error

	// ResetPassword consumes a reset token (searching both actor namespaces),
	// sets the new password and revokes every refresh token for the actor.
	ResetPassword(ctx context.Context, rawToken string, newPassword string) error

	// ChangePassword verifies the current password, sets the new one, revokes
	// all other sessions and returns a fresh token pair.
	ChangePassword(ctx context.Context, kind domain.ActorKind, actorID string, currentPassword, newPassword string) (*TokenPair, error)

	// Deactivate soft-disables the actor and revokes all refresh tokens.
	Deactivate(ctx context.Context, kind domain.ActorKind, actorID string) error

	// IssueSession mints and stores a token pair for an already-authenticated
	// actor (OAuth callback, email verification).
	IssueSession(ctx context.Context, actor *domain.Actor) (*TokenPair, error)
}
