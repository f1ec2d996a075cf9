package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
)

// cookieSameSite returns the SameSite policy for auth cookies. Production
// runs the frontend on a different origin, so cross-site cookies are
// required there; locally Lax keeps things simple.
func cookieSameSite(cfg *config.Config) http.SameSite {
	if cfg.IsProduction {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func setAuthCookie(c *gin.Context, cfg *config.Config, name, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if value == "" {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: cookieSameSite(cfg),
	})
}

// SetAuthCookies writes the access and refresh tokens as httpOnly cookies.
func SetAuthCookies(c *gin.Context, cfg *config.Config, tokens *services.TokenPair) {
	setAuthCookie(c, cfg, cfg.AccessTokenCookieName, tokens.AccessToken, tokens.AccessExpiresAt)
	setAuthCookie(c, cfg, cfg.RefreshTokenCookieName, tokens.RefreshToken, tokens.RefreshExpiresAt)
}

// ClearAuthCookies expires both auth cookies on the client.
func ClearAuthCookies(c *gin.Context, cfg *config.Config) {
	setAuthCookie(c, cfg, cfg.AccessTokenCookieName, "", time.Time{})
	setAuthCookie(c, cfg, cfg.RefreshTokenCookieName, "", time.Time{})
}
