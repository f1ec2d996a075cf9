package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/middleware"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
)

// authRouteFamily parameterizes one family of auth routes. The role-split
// families pin a single actor namespace and treat an unverified email as a
// soft flag; the consolidated family spans both namespaces and rejects
// unverified logins outright.
type authRouteFamily struct {
	kinds            []domain.ActorKind
	role             domain.UserRole
	rejectUnverified bool
}

var (
	learnerFamily      = authRouteFamily{kinds: []domain.ActorKind{domain.ActorKindUser}, role: domain.RoleLearner}
	mentorFamily       = authRouteFamily{kinds: []domain.ActorKind{domain.ActorKindUser}, role: domain.RoleMentor}
	companyFamily      = authRouteFamily{kinds: []domain.ActorKind{domain.ActorKindCompany}}
	consolidatedFamily = authRouteFamily{
		kinds:            []domain.ActorKind{domain.ActorKindUser, domain.ActorKindCompany},
		rejectUnverified: true,
	}
)

// AuthHandler serves every authentication and session-lifecycle route. One
// handler backs all four route families.
type AuthHandler struct {
	cfg            *config.Config
	userService    portssvc.UserSvcFacade
	companyService portssvc.CompanySvcFacade
	credentialSvc  portssvc.CredentialSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *AuthHandler {
	return &AuthHandler{
		cfg:            cfg,
		userService:    services.User,
		companyService: services.Company,
		credentialSvc:  services.Credential,
	}
}

// RegisterUser godoc
// @Summary Register a learner or mentor account
// @Description Creates a new user account and emails a verification link.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "Registration info"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure or duplicate email"
// @Router /auth/register [post]
func (h *AuthHandler) RegisterUser(role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RegisterUserRequest
		if !bindJSON(c, &req) {
			return
		}
		if role != "" {
			// Role-split routes pin the role from the URL
			req.Role = string(role)
		}

		user, err := h.userService.RegisterUser(c.Request.Context(), req)
		if err != nil {
			respondWithError(c, err)
			return
		}

		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
		c.JSON(http.StatusCreated, dto.NewMessageResponse("Registration successful. Please check your email to verify your account."))
	}
}

// RegisterCompany godoc
// @Summary Register a company account
// @Description Creates a new, unapproved company account and emails a verification link.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterCompanyRequest true "Registration info"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure or duplicate email"
// @Router /auth/company/register [post]
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Company registered", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.NewMessageResponse("Registration successful. Please check your email to verify your account."))
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and sets the auth cookie pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Unverified email or unapproved company"
// @Failure 423 {object} dto.ErrorResponse "Account temporarily locked"
// @Router /auth/login [post]
func (h *AuthHandler) Login(family authRouteFamily) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		result, err := h.credentialSvc.Login(c.Request.Context(), portssvc.LoginParams{
			Kinds:            family.kinds,
			Role:             family.role,
			Email:            req.Email,
			Password:         req.Password,
			RejectUnverified: family.rejectUnverified,
		})
		if err != nil {
			respondWithError(c, err)
			return
		}

		middleware.SetAuthCookies(c, h.cfg, result.Tokens)
		c.JSON(http.StatusOK, dto.LoginResponse{
			Success:                true,
			Actor:                  dto.ToActorSummary(result.Actor),
			NeedsEmailVerification: result.NeedsEmailVerification,
		})
	}
}

// Refresh godoc
// @Summary Rotate the session
// @Description Verifies the refresh cookie, rotates it and sets a fresh cookie pair.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse "Missing, invalid or replayed refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	rawToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || rawToken == "" {
		middleware.ClearAuthCookies(c, h.cfg)
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Refresh token required"))
		return
	}

	result, err := h.credentialSvc.Refresh(c.Request.Context(), rawToken)
	if err != nil {
		middleware.ClearAuthCookies(c, h.cfg)
		respondWithError(c, err)
		return
	}

	middleware.SetAuthCookies(c, h.cfg, result.Tokens)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Actor:   dto.ToActorSummary(result.Actor),
	})
}

// Logout godoc
// @Summary Log out
// @Description Best-effort revokes the refresh token and always clears cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if rawToken, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil && rawToken != "" {
		if err := h.credentialSvc.Logout(c.Request.Context(), rawToken); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to revoke refresh token on logout", slog.String("error", err.Error()))
		}
	}
	middleware.ClearAuthCookies(c, h.cfg)
	c.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// Me godoc
// @Summary Current actor
// @Description Returns the public projection of the authenticated actor.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	actor, err := h.credentialSvc.ResolveActor(c.Request.Context(), identity.Kind, identity.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Actor:   dto.ToActorSummary(actor),
	})
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Description Consumes the emailed verification token and logs the actor in.
// @Tags auth
// @Produce json
// @Param token path string true "Raw verification token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /auth/verify-email/{token} [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	result, err := h.credentialSvc.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.SetAuthCookies(c, h.cfg, result.Tokens)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Actor:   dto.ToActorSummary(result.Actor),
	})
}

// ResendVerification godoc
// @Summary Resend the verification email
// @Description Issues a fresh verification token. The response does not reveal whether the account exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResendVerificationRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(family authRouteFamily) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ResendVerificationRequest
		if !bindJSON(c, &req) {
			return
		}

		if err := h.credentialSvc.ResendVerification(c.Request.Context(), family.kinds, req.Email); err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewMessageResponse("If an account with that email exists, a verification email has been sent."))
	}
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Emails a short-lived reset token. The response does not reveal whether the account exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ForgotPasswordRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Failure 500 {object} dto.ErrorResponse "Email transport failure"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(family authRouteFamily) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ForgotPasswordRequest
		if !bindJSON(c, &req) {
			return
		}

		if err := h.credentialSvc.ForgotPassword(c.Request.Context(), family.kinds, req.Email); err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewMessageResponse("If an account with that email exists, a password reset email has been sent."))
	}
}

// ResetPassword godoc
// @Summary Reset a forgotten password
// @Description Consumes the emailed reset token, sets the new password and revokes all sessions.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Raw reset token"
// @Param body body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /auth/reset-password/{token} [put]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.credentialSvc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	middleware.ClearAuthCookies(c, h.cfg)
	c.JSON(http.StatusOK, dto.NewMessageResponse("Password has been reset. Please log in with your new password."))
}

// ChangePassword godoc
// @Summary Change the password
// @Description Verifies the current password, sets the new one and rotates the session.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Current password incorrect"
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.credentialSvc.ChangePassword(c.Request.Context(), identity.Kind, identity.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Every other session was revoked; keep this one alive with a fresh pair.
	middleware.SetAuthCookies(c, h.cfg, tokens)
	c.JSON(http.StatusOK, dto.NewMessageResponse("Password changed"))
}

// Deactivate godoc
// @Summary Deactivate the account
// @Description Soft-disables the authenticated actor and revokes all sessions.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [delete]
func (h *AuthHandler) Deactivate(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	if err := h.credentialSvc.Deactivate(c.Request.Context(), identity.Kind, identity.ID); err != nil {
		respondWithError(c, err)
		return
	}

	middleware.ClearAuthCookies(c, h.cfg)
	c.JSON(http.StatusOK, dto.NewMessageResponse("Account deactivated"))
}
