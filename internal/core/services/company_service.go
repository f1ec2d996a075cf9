package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portsrepo "github.com/skillbridge/skillbridge_backend/internal/core/ports/repositories"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
	"github.com/skillbridge/skillbridge_backend/internal/utils"
)

type companyService struct {
	BaseService
	cfg         *config.Config
	companyRepo portsrepo.CompanyRepositoryFacade
	mailer      portssvc.MailerSvcFacade
}

// NewCompanyService creates a new instance of companyService.
func NewCompanyService(cfg *config.Config, companyRepo portsrepo.CompanyRepositoryFacade, mailer portssvc.MailerSvcFacade) portssvc.CompanySvcFacade {
	return &companyService{cfg: cfg, companyRepo: companyRepo, mailer: mailer}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// RegisterCompany creates a new, unapproved company account.
func (s *companyService) RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rawToken, digest, err := utils.GenerateOneTimeToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	verificationExpiry := time.Now().Add(s.cfg.EmailVerificationExpiry)

	now := time.Now()
	company := domain.Company{
		CompanyID:   uuid.NewString(),
		CompanyName: strings.TrimSpace(req.CompanyName),
		Email:       strings.TrimSpace(strings.ToLower(req.Email)),
		IsApproved:  false,
		Credentials: domain.Credentials{
			PasswordHash:               passwordHash,
			EmailVerificationTokenHash: digest,
			EmailVerificationExpiresAt: &verificationExpiry,
			IsActive:                   true,
		},
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(company.Email, company.CompanyName, rawToken); err != nil {
		s.LogError(ctx, err, "Failed to send verification email after registration", slog.String("company_id", company.CompanyID))
	}

	return &company, nil
}

// GetCompanyByID retrieves a company by ID.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

// UpdateCompany updates profile fields.
func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if req.CompanyName != nil {
		company.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		return nil, err
	}
	return company, nil
}
