package repositories

import (
	"context"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindCompanyByEmail retrieves a company by its (lower-cased) email.
	FindCompanyByEmail(ctx context.Context, email string) (*domain.Company, error)

	// FindCompanyByGoogleID retrieves a company linked to the given Google account.
	FindCompanyByGoogleID(ctx context.Context, googleID string) (*domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company. Returns apperrors.ErrDuplicate when
	// the email is already taken.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateCompany updates an existing company's profile details.
	UpdateCompany(ctx context.Context, company domain.Company) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
