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

const pgUniqueViolation = "23505"

const userColumns = `user_id, name, email, role,
	password_hash, google_id,
	is_email_verified, email_verification_token_hash, email_verification_expires_at,
	password_reset_token_hash, password_reset_expires_at,
	login_attempts, lock_until, is_active, last_login,
	created_at, updated_at`

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUserRow(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.Role,
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

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	creds := toModelCredentials(user.Credentials)
	query := `
		INSERT INTO users (user_id, name, email, role,
			password_hash, google_id,
			is_email_verified, email_verification_token_hash, email_verification_expires_at,
			login_attempts, is_active, created_at, updated_at)
		VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8, $9, $10, $11, $12, $12);
	`
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		string(user.Role),
		creds.PasswordHash,
		creds.GoogleID,
		creds.IsEmailVerified,
		creds.EmailVerificationTokenHash,
		creds.EmailVerificationExpiresAt,
		creds.LoginAttempts,
		creds.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1;`, userColumns)
	m, err := scanUserRow(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	user := toDomainUser(*m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = lower($1);`, userColumns)
	m, err := scanUserRow(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	user := toDomainUser(*m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE google_id = $1;`, userColumns)
	m, err := scanUserRow(r.db.QueryRow(ctx, query, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by google ID: %w", err)
	}
	user := toDomainUser(*m)
	return &user, nil
}

func (r *PgxUserRepository) LinkGoogleAccount(ctx context.Context, userID, googleID string, emailVerified bool) error {
	query := `
		UPDATE users
		SET google_id = $1,
			is_email_verified = (is_email_verified OR $2),
			email_verification_token_hash = CASE WHEN $2 THEN NULL ELSE email_verification_token_hash END,
			email_verification_expires_at = CASE WHEN $2 THEN NULL ELSE email_verification_expires_at END,
			updated_at = now()
		WHERE user_id = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, googleID, emailVerified, userID)
	if err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET name = $1, updated_at = now()
		WHERE user_id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, user.Name, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
