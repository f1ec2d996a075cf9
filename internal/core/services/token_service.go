package services

import (
	"context"
	"time"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
	"github.com/skillbridge/skillbridge_backend/internal/utils"
)

// tokenService implements TokenSvcFacade. Access and refresh tokens are
// signed with distinct secrets so one kind can never pass for the other.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new signed access token for the given actor.
func (s *tokenService) GenerateAccessToken(ctx context.Context, actor *domain.Actor) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.AccessTokenExpiryDuration)
	token, err := utils.GenerateAccessJWT(
		actor.ID,
		string(actor.Kind),
		actor.Email,
		string(actor.Role),
		actor.IsEmailVerified,
		s.cfg.JWTSecret,
		s.cfg.JWTIssuer,
		s.cfg.AccessTokenExpiryDuration,
	)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiryTime, nil
}

// GenerateRefreshToken creates a new signed refresh token for the given actor.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, actor *domain.Actor) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	token, err := utils.GenerateRefreshJWT(
		actor.ID,
		string(actor.Kind),
		s.cfg.RefreshTokenSecret,
		s.cfg.JWTIssuer,
		s.cfg.RefreshTokenExpiryDuration,
	)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiryTime, nil
}

// ParseAccessToken verifies an access token's signature and expiry.
func (s *tokenService) ParseAccessToken(tokenString string) (*utils.AccessClaims, error) {
	return utils.ParseAccessJWT(tokenString, s.cfg.JWTSecret)
}

// ParseRefreshToken verifies a refresh token's signature and expiry.
func (s *tokenService) ParseRefreshToken(tokenString string) (*utils.RefreshClaims, error) {
	return utils.ParseRefreshJWT(tokenString, s.cfg.RefreshTokenSecret)
}
