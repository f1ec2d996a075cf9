package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbridge/skillbridge_backend/internal/apperrors"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portsrepo "github.com/skillbridge/skillbridge_backend/internal/core/ports/repositories"
	"github.com/skillbridge/skillbridge_backend/internal/models"
)

const companyColumns = `company_id, company_name, email, is_approved,
	password_hash, google_id,
	is_email_verified, email_verification_token_hash, email_verification_expires_at,
	password_reset_token_hash, password_reset_expires_at,
	login_attempts, lock_until, is_active, last_login,
	created_at, updated_at`

type PgxCompanyRepository struct {
	db *pgxpool.Pool
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{db: db}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func scanCompanyRow(row pgx.Row) (*models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.CompanyName,
		&m.Email,
		&m.IsApproved,
		&m.PasswordHash,
		&m.GoogleID,
		&m.IsEmailVerified,
		&m.EmailVerificationTokenHash,
		&m.EmailVerificationExpiresAt,
		&m.PasswordResetTokenHash,
		&m.PasswordResetExpiresAt,
		&m.LoginAttempts,
		&m.LockUntil,
		&m.IsActive,
		&m.LastLogin,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	creds := toModelCredentials(company.Credentials)
	query := `
		INSERT INTO companies (company_id, company_name, email, is_approved,
			password_hash, google_id,
			is_email_verified, email_verification_token_hash, email_verification_expires_at,
			login_attempts, is_active, created_at, updated_at)
		VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8, $9, $10, $11, $12, $12);
	`
	_, err := r.db.Exec(ctx, query,
		company.CompanyID,
		company.CompanyName,
		company.Email,
		company.IsApproved,
		creds.PasswordHash,
		creds.GoogleID,
		creds.IsEmailVerified,
		creds.EmailVerificationTokenHash,
		creds.EmailVerificationExpiresAt,
		creds.LoginAttempts,
		creds.IsActive,
		company.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE company_id = $1;`, companyColumns)
	m, err := scanCompanyRow(r.db.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}
	company := toDomainCompany(*m)
	return &company, nil
}

func (r *PgxCompanyRepository) FindCompanyByEmail(ctx context.Context, email string) (*domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE email = lower($1);`, companyColumns)
	m, err := scanCompanyRow(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by email: %w", err)
	}
	company := toDomainCompany(*m)
	return &company, nil
}

func (r *PgxCompanyRepository) FindCompanyByGoogleID(ctx context.Context, googleID string) (*domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE google_id = $1;`, companyColumns)
	m, err := scanCompanyRow(r.db.QueryRow(ctx, query, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by google ID: %w", err)
	}
	company := toDomainCompany(*m)
	return &company, nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	query := `
		UPDATE companies
		SET company_name = $1, updated_at = now()
		WHERE company_id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, company.CompanyName, company.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to execute update company query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
