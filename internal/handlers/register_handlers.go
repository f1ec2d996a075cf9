package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/skillbridge/skillbridge_backend/cmd/docs"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/middleware"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	registerAuthRoutes(r, cfg, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerAuthRoutes wires the consolidated and role-split auth route
// families. Each family shares the same handler, parameterized by actor
// namespace and role.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	authHandler := NewAuthHandler(cfg, services)
	companyHandler := NewCompanyHandler(services)
	profileHandler := NewProfileHandler(services)
	oauthHandler := NewGoogleOAuthHandler(cfg, services)

	// 5 requests per minute per IP on the credential-guessing surface
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	throttle := middleware.RateLimit(ipLimiter)

	requireAuth := middleware.RequireAuth(cfg, services.TokenService, services.Credential)

	auth := r.Group("/api/v1/auth")

	type familyRoutes struct {
		group    *gin.RouterGroup
		family   authRouteFamily
		register gin.HandlerFunc
		roles    []domain.UserRole
	}

	families := []familyRoutes{
		{auth, consolidatedFamily, authHandler.RegisterUser(""), nil},
		{auth.Group("/learner"), learnerFamily, authHandler.RegisterUser(domain.RoleLearner), []domain.UserRole{domain.RoleLearner}},
		{auth.Group("/mentor"), mentorFamily, authHandler.RegisterUser(domain.RoleMentor), []domain.UserRole{domain.RoleMentor}},
		{auth.Group("/company"), companyFamily, authHandler.RegisterCompany, []domain.UserRole{domain.RoleCompany}},
	}

	for _, f := range families {
		f.group.POST("/register", f.register)
		f.group.POST("/login", throttle, authHandler.Login(f.family))
		f.group.POST("/refresh", authHandler.Refresh)
		f.group.POST("/logout", authHandler.Logout)
		f.group.GET("/verify-email/:token", authHandler.VerifyEmail)
		f.group.POST("/resend-verification", authHandler.ResendVerification(f.family))
		f.group.POST("/forgot-password", throttle, authHandler.ForgotPassword(f.family))
		f.group.PUT("/reset-password/:token", authHandler.ResetPassword)

		// Session-gated routes. Unapproved companies are rejected here; the
		// approval-status and logout routes stay reachable for them.
		gated := f.group.Group("", requireAuth, middleware.RequireApprovedCompany())
		if len(f.roles) > 0 {
			gated.Use(middleware.RequireRoles(f.roles...))
		}
		gated.GET("/me", authHandler.Me)
		gated.PUT("/me", middleware.RequireVerifiedEmail(), profileHandler.UpdateProfile)
		gated.DELETE("/me", authHandler.Deactivate)
		gated.PUT("/change-password", authHandler.ChangePassword)
	}

	// Reachable by authenticated-but-unapproved companies
	auth.GET("/company/approval-status", requireAuth, companyHandler.ApprovalStatus)

	// Google OAuth (users only)
	auth.GET("/google", oauthHandler.LoginGoogle)
	auth.GET("/google/callback", oauthHandler.CallbackGoogle)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
