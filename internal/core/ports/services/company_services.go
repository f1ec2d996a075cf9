package services

import (
	"context"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a company by ID.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// RegisterCompany creates a new, unapproved company, hashes the password,
	// stores a verification token digest and emails the raw token. Email
	// transport failures are logged and swallowed; the account is still
	// created.
	RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, error)

	// UpdateCompany updates profile fields.
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
