package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/middleware"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
)

const oauthStateCookieName = "oauthState"

// GoogleOAuthHandler handles the Google OAuth login flow. OAuth sign-in is
// available for users only; companies register with email and password.
type GoogleOAuthHandler struct {
	cfg                *config.Config
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	credentialSvc      portssvc.CredentialSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		cfg:                cfg,
		googleOAuthService: services.GoogleOAuthHandler,
		userService:        services.User,
		credentialSvc:      services.Credential,
	}
}

// LoginGoogle godoc
// @Summary Start Google OAuth login
// @Description Redirects the client to Google's consent screen with a CSRF state cookie.
// @Tags oauth
// @Success 307
// @Router /auth/google [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to start Google login"))
		return
	}

	// Short-lived CSRF cookie checked on the callback
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})

	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Validates the callback, creates or links the user, sets the auth cookie pair and redirects to the frontend.
// @Tags oauth
// @Success 307
// @Failure 401 {object} dto.ErrorResponse "State mismatch or invalid Google token"
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	stateCookie, err := c.Cookie(oauthStateCookieName)
	if err != nil || stateCookie == "" || stateCookie != c.Query("state") {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid OAuth state"))
		return
	}
	// Consume the state cookie
	http.SetCookie(c.Writer, &http.Cookie{Name: oauthStateCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Authorization code missing"))
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("Failed to communicate with Google"))
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to retrieve identity from Google"))
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid Google identity token"))
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	googleID := payload.Subject

	if email == "" || googleID == "" {
		logger.Error("Essential claims missing from Google ID token payload")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Essential user information missing from Google token"))
		return
	}

	user, err := h.userService.CreateOAuthUser(ctx, name, email, googleID, emailVerified)
	if err != nil {
		logger.Error("Failed to create or link OAuth user", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	tokens, err := h.credentialSvc.IssueSession(ctx, user.AsActor())
	if err != nil {
		logger.Error("Failed to issue session after OAuth login", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to start session"))
		return
	}

	middleware.SetAuthCookies(c, h.cfg, tokens)
	logger.Info("Google login completed", slog.String("user_id", user.UserID))
	c.Redirect(http.StatusTemporaryRedirect, h.cfg.FrontendBaseURL+"/oauth/success")
}
