package services

import (
	portsrepo "github.com/skillbridge/skillbridge_backend/internal/core/ports/repositories"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Mailer = NewMailerService(cfg)
	container.TokenService = NewTokenService(cfg)

	container.User = NewUserService(cfg, repos.UserRepo, container.Mailer)
	container.Company = NewCompanyService(cfg, repos.CompanyRepo, container.Mailer)

	container.Credential = NewCredentialService(
		cfg,
		repos.ActorRepo,
		repos.RefreshTokenRepo,
		container.TokenService,
		container.Mailer,
	)

	container.GoogleOAuthHandler = NewGoogleOAuthService(cfg)

	return container
}
