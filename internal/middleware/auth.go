package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/skillbridge/skillbridge_backend/internal/apperrors"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	"github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
)

// extractAccessToken pulls the access token from the Authorization header,
// falling back to the auth cookie. The header wins when both are present.
func extractAccessToken(c *gin.Context, cfg *config.Config) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(cfg.AccessTokenCookieName); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context, cfg *config.Config, message string) {
	ClearAuthCookies(c, cfg)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Success: false,
		Message: message,
	})
}

// RequireAuth creates a Gin middleware that validates the access token and
// resolves the actor behind it. Requests without a valid session are
// rejected with 401 and their auth cookies cleared.
func RequireAuth(cfg *config.Config, tokenSvc services.TokenSvcFacade, credentialSvc services.CredentialSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := extractAccessToken(c, cfg)
		if tokenString == "" {
			logger.Warn("Access token missing")
			abortUnauthorized(c, cfg, "Authentication required")
			return
		}

		claims, err := tokenSvc.ParseAccessToken(tokenString)
		if err != nil {
			logger.Warn("Invalid access token", "error", err)
			msg := "Invalid or expired session"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Session has expired"
			}
			abortUnauthorized(c, cfg, msg)
			return
		}

		actor, err := credentialSvc.ResolveActor(c.Request.Context(), domain.ActorKind(claims.Kind), claims.Subject)
		if err != nil {
			logger.Warn("Failed to resolve actor for valid token", "error", err)
			msg := "Invalid or expired session"
			if errors.Is(err, apperrors.ErrAccountInactive) {
				msg = "Account is deactivated"
			}
			abortUnauthorized(c, cfg, msg)
			return
		}

		SetIdentity(c, actor)

		// Enrich the request logger with the actor identity
		enrichedLogger := logger.With(
			slog.String("actor_id", actor.ID),
			slog.String("actor_kind", string(actor.Kind)),
		)
		ctx := context.WithValue(c.Request.Context(), loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid access token is present but
// lets the request through anonymously otherwise.
func OptionalAuth(cfg *config.Config, tokenSvc services.TokenSvcFacade, credentialSvc services.CredentialSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractAccessToken(c, cfg)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokenSvc.ParseAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		actor, err := credentialSvc.ResolveActor(c.Request.Context(), domain.ActorKind(claims.Kind), claims.Subject)
		if err != nil {
			c.Next()
			return
		}

		SetIdentity(c, actor)
		c.Next()
	}
}
