package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/skillbridge/skillbridge_backend/internal/apperrors"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portsrepo "github.com/skillbridge/skillbridge_backend/internal/core/ports/repositories"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
	"github.com/skillbridge/skillbridge_backend/internal/utils"
)

// allActorKinds is the lookup order for flows that span both namespaces
// (consolidated routes, token-based flows).
var allActorKinds = []domain.ActorKind{domain.ActorKindUser, domain.ActorKindCompany}

// credentialService is the single implementation of the credential flows
// shared by every actor variant and route family.
type credentialService struct {
	BaseService
	cfg         *config.Config
	actorRepo   portsrepo.ActorRepositoryFacade
	refreshRepo portsrepo.RefreshTokenRepositoryFacade
	tokenSvc    portssvc.TokenSvcFacade
	mailer      portssvc.MailerSvcFacade
}

// NewCredentialService creates a new instance of credentialService.
func NewCredentialService(
	cfg *config.Config,
	actorRepo portsrepo.ActorRepositoryFacade,
	refreshRepo portsrepo.RefreshTokenRepositoryFacade,
	tokenSvc portssvc.TokenSvcFacade,
	mailer portssvc.MailerSvcFacade,
) portssvc.CredentialSvcFacade {
	return &credentialService{
		cfg:         cfg,
		actorRepo:   actorRepo,
		refreshRepo: refreshRepo,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
	}
}

var _ portssvc.CredentialSvcFacade = (*credentialService)(nil)

// findActorByEmail tries each kind in order and returns the first match.
func (s *credentialService) findActorByEmail(ctx context.Context, kinds []domain.ActorKind, email string) (*domain.Actor, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	for _, kind := range kinds {
		actor, err := s.actorRepo.FindActorByEmail(ctx, kind, email)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		return actor, nil
	}
	return nil, apperrors.ErrNotFound
}

// IssueSession mints a token pair and stores the refresh token digest.
func (s *credentialService) IssueSession(ctx context.Context, actor *domain.Actor) (*portssvc.TokenPair, error) {
	accessToken, accessExpiry, err := s.tokenSvc.GenerateAccessToken(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiry, err := s.tokenSvc.GenerateRefreshToken(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	err = s.refreshRepo.AddRefreshToken(ctx, domain.RefreshToken{
		ActorKind: actor.Kind,
		ActorID:   actor.ID,
		TokenHash: utils.HashToken(refreshToken),
		IssuedAt:  time.Now(),
		ExpiresAt: refreshExpiry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &portssvc.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// Login verifies credentials and drives the lockout state machine.
func (s *credentialService) Login(ctx context.Context, params portssvc.LoginParams) (*portssvc.LoginResult, error) {
	actor, err := s.findActorByEmail(ctx, params.Kinds, params.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if params.Role != "" && actor.Role != params.Role {
		// The actor exists but not under the role this route family serves.
		return nil, apperrors.ErrUnauthorized
	}
	if !actor.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	now := time.Now()
	// Lock check happens before password comparison.
	if actor.IsLocked(now) {
		return nil, apperrors.ErrAccountLocked
	}

	if actor.PasswordHash == "" || !utils.CheckPasswordHash(params.Password, actor.PasswordHash) {
		actor.RegisterLoginFailure(now)
		// Lost updates under concurrent failures are tolerated; the lockout is
		// a deterrent, not a hard guarantee.
		if updateErr := s.actorRepo.UpdateCredentials(ctx, actor.Kind, actor.ID, actor.Credentials); updateErr != nil {
			s.LogError(ctx, updateErr, "Failed to persist login failure", slog.String("actor_id", actor.ID))
		}
		return nil, apperrors.ErrUnauthorized
	}

	needsVerification := !actor.IsEmailVerified
	if needsVerification && params.RejectUnverified {
		return nil, apperrors.ErrEmailNotVerified
	}
	if actor.Kind == domain.ActorKindCompany && !actor.Approved {
		return nil, apperrors.ErrCompanyNotApproved
	}

	actor.RegisterLoginSuccess(now)
	if err := s.actorRepo.UpdateCredentials(ctx, actor.Kind, actor.ID, actor.Credentials); err != nil {
		return nil, fmt.Errorf("failed to persist login success: %w", err)
	}

	tokens, err := s.IssueSession(ctx, actor)
	if err != nil {
		return nil, err
	}

	return &portssvc.LoginResult{
		Actor:                  actor,
		Tokens:                 tokens,
		NeedsEmailVerification: needsVerification,
	}, nil
}

// Refresh rotates the presented refresh token.
func (s *credentialService) Refresh(ctx context.Context, rawRefreshToken string) (*portssvc.LoginResult, error) {
	claims, err := s.tokenSvc.ParseRefreshToken(rawRefreshToken)
	if err != nil {
		return nil, apperrors.ErrRefreshTokenInvalid
	}
	kind := domain.ActorKind(claims.Kind)

	digest := utils.HashToken(rawRefreshToken)
	known, err := s.refreshRepo.HasRefreshToken(ctx, kind, claims.Subject, digest)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token membership: %w", err)
	}
	if !known {
		// Rotated away or never issued: treat as reuse.
		s.LogWarn(ctx, "Refresh token not recognized, possible replay", slog.String("actor_id", claims.Subject))
		return nil, apperrors.ErrRefreshTokenInvalid
	}

	actor, err := s.ResolveActor(ctx, kind, claims.Subject)
	if err != nil {
		return nil, err
	}

	if err := s.refreshRepo.RemoveRefreshToken(ctx, kind, actor.ID, digest); err != nil {
		return nil, fmt.Errorf("failed to remove rotated refresh token: %w", err)
	}

	tokens, err := s.IssueSession(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &portssvc.LoginResult{Actor: actor, Tokens: tokens, NeedsEmailVerification: !actor.IsEmailVerified}, nil
}

// Logout best-effort revokes the presented refresh token.
func (s *credentialService) Logout(ctx context.Context, rawRefreshToken string) error {
	if rawRefreshToken == "" {
		return nil
	}
	claims, err := s.tokenSvc.ParseRefreshToken(rawRefreshToken)
	if err != nil {
		// Unverifiable token; nothing server-side to revoke.
		return nil
	}
	digest := utils.HashToken(rawRefreshToken)
	if err := s.refreshRepo.RemoveRefreshToken(ctx, domain.ActorKind(claims.Kind), claims.Subject, digest); err != nil {
		s.LogError(ctx, err, "Failed to revoke refresh token on logout", slog.String("actor_id", claims.Subject))
	}
	return nil
}

// ResolveActor loads the actor behind a verified token.
func (s *credentialService) ResolveActor(ctx context.Context, kind domain.ActorKind, actorID string) (*domain.Actor, error) {
	actor, err := s.actorRepo.FindActorByID(ctx, kind, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !actor.IsActive {
		return nil, apperrors.ErrAccountInactive
	}
	return actor, nil
}

// findActorByDigest searches both namespaces for a one-time token digest.
func (s *credentialService) findActorByDigest(
	ctx context.Context,
	find func(context.Context, domain.ActorKind, string) (*domain.Actor, error),
	digest string,
) (*domain.Actor, error) {
	for _, kind := range allActorKinds {
		actor, err := find(ctx, kind, digest)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		return actor, nil
	}
	return nil, apperrors.ErrTokenInvalid
}

// VerifyEmail consumes an email-verification token and issues a session.
func (s *credentialService) VerifyEmail(ctx context.Context, rawToken string) (*portssvc.LoginResult, error) {
	digest := utils.HashToken(rawToken)
	actor, err := s.findActorByDigest(ctx, s.actorRepo.FindActorByVerificationDigest, digest)
	if err != nil {
		return nil, err
	}
	// Expired tokens are rejected identically to unknown ones.
	if actor.EmailVerificationExpiresAt == nil || !actor.EmailVerificationExpiresAt.After(time.Now()) {
		return nil, apperrors.ErrTokenInvalid
	}
	if !actor.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	actor.IsEmailVerified = true
	actor.EmailVerificationTokenHash = ""
	actor.EmailVerificationExpiresAt = nil
	if err := s.actorRepo.UpdateCredentials(ctx, actor.Kind, actor.ID, actor.Credentials); err != nil {
		return nil, fmt.Errorf("failed to persist email verification: %w", err)
	}

	if err := s.mailer.SendWelcomeEmail(actor.Email, actor.Name); err != nil {
		s.LogError(ctx, err, "Failed to send welcome email", slog.String("actor_id", actor.ID))
	}

	tokens, err := s.IssueSession(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &portssvc.LoginResult{Actor: actor, Tokens: tokens}, nil
}

// ResendVerification issues a fresh verification token and emails it.
func (s *credentialService) ResendVerification(ctx context.Context, kinds []domain.ActorKind, email string) error {
	actor, err := s.findActorByEmail(ctx, kinds, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Neutral: do not leak account existence.
			return nil
		}
		return err
	}
	if actor.IsEmailVerified || !actor.IsActive {
		return nil
	}

	raw, digest, err := utils.GenerateOneTimeToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	expiry := time.Now().Add(s.cfg.EmailVerificationExpiry)
	actor.EmailVerificationTokenHash = digest
	actor.EmailVerificationExpiresAt = &expiry
	if err := s.actorRepo.UpdateCredentials(ctx, actor.Kind, actor.ID, actor.Credentials); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(actor.Email, actor.Name, raw); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// ForgotPassword issues a password-reset token and emails it.
func (s *credentialService) ForgotPassword(ctx context.Context, kinds []domain.ActorKind, email string) error {
	actor, err := s.findActorByEmail(ctx, kinds, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if !actor.IsActive || actor.PasswordHash == "" {
		// OAuth-only accounts have no password to reset.
		return nil
	}

	raw, digest, err := utils.GenerateOneTimeToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := time.Now().Add(s.cfg.PasswordResetExpiry)
	actor.PasswordResetTokenHash = digest
	actor.PasswordResetExpiresAt = &expiry
	if err := s.actorRepo.UpdateCredentials(ctx, actor.Kind, actor.ID, actor.Credentials); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(actor.Email, actor.Name, raw); err != nil {
		// Roll the token back so the actor is not left with an outstanding
		// token they never received.
		actor.PasswordResetTokenHash = ""
		actor.PasswordResetExpiresAt = nil
		if rollbackErr := s.actorRepo.UpdateCredentials(ctx, actor.Kind, actor.ID, actor.Credentials); rollbackErr != nil {
			s.LogError(ctx, rollbackErr, "Failed to roll back reset token after email failure", slog.String("actor_id", actor.ID))
		}
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *credentialService) ResetPassword(ctx context.Context, rawToken string, newPassword string) error {
	digest := utils.HashToken(rawToken)
	actor, err := s.findActorByDigest(ctx, s.actorRepo.FindActorByResetDigest, digest)
	if err != nil {
		return err
	}
	if actor.PasswordResetExpiresAt == nil || !actor.PasswordResetExpiresAt.After(time.Now()) {
		return apperrors.ErrTokenInvalid
	}
	if !actor.IsActive {
		return apperrors.ErrAccountInactive
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	actor.PasswordHash = hash
	actor.PasswordResetTokenHash = ""
	actor.PasswordResetExpiresAt = nil
	// A completed reset also clears any lockout state.
	actor.LoginAttempts = 0
	actor.LockUntil = nil
	if err := s.actorRepo.UpdateCredentials(ctx, actor.Kind, actor.ID, actor.Credentials); err != nil {
		return fmt.Errorf("failed to persist password reset: %w", err)
	}

	// Every existing session is revoked after a reset.
	if err := s.refreshRepo.RemoveAllRefreshTokens(ctx, actor.Kind, actor.ID); err != nil {
		s.LogError(ctx, err, "Failed to revoke sessions after password reset", slog.String("actor_id", actor.ID))
	}
	return nil
}

// ChangePassword verifies the current password and sets the new one.
func (s *credentialService) ChangePassword(ctx context.Context, kind domain.ActorKind, actorID string, currentPassword, newPassword string) (*portssvc.TokenPair, error) {
	actor, err := s.ResolveActor(ctx, kind, actorID)
	if err != nil {
		return nil, err
	}
	if actor.PasswordHash == "" {
		// OAuth-only account: there is no current password to verify.
		return nil, apperrors.ErrValidation
	}
	if !utils.CheckPasswordHash(currentPassword, actor.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash new password: %w", err)
	}
	actor.PasswordHash = hash
	if err := s.actorRepo.UpdateCredentials(ctx, kind, actorID, actor.Credentials); err != nil {
		return nil, fmt.Errorf("failed to persist password change: %w", err)
	}

	// All other sessions are revoked; the caller gets a fresh pair.
	if err := s.refreshRepo.RemoveAllRefreshTokens(ctx, kind, actorID); err != nil {
		return nil, fmt.Errorf("failed to revoke sessions after password change: %w", err)
	}
	return s.IssueSession(ctx, actor)
}

// Deactivate soft-disables the actor and revokes all refresh tokens.
func (s *credentialService) Deactivate(ctx context.Context, kind domain.ActorKind, actorID string) error {
	if err := s.actorRepo.DeactivateActor(ctx, kind, actorID); err != nil {
		return err
	}
	if err := s.refreshRepo.RemoveAllRefreshTokens(ctx, kind, actorID); err != nil {
		s.LogError(ctx, err, "Failed to revoke sessions on deactivation", slog.String("actor_id", actorID))
	}
	return nil
}
