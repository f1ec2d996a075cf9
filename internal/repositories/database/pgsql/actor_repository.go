package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbridge/skillbridge_backend/internal/apperrors"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portsrepo "github.com/skillbridge/skillbridge_backend/internal/core/ports/repositories"
	"github.com/skillbridge/skillbridge_backend/internal/models"
)

// actorTable describes how one actor variant maps onto SQL. The credential
// service stays variant-agnostic; this table is the only per-kind code in the
// credential path.
type actorTable struct {
	table        string
	idColumn     string
	nameColumn   string
	roleExpr     string
	approvedExpr string
}

var actorTables = map[domain.ActorKind]actorTable{
	domain.ActorKindUser: {
		table:        "users",
		idColumn:     "user_id",
		nameColumn:   "name",
		roleExpr:     "role",
		approvedExpr: "true",
	},
	domain.ActorKindCompany: {
		table:        "companies",
		idColumn:     "company_id",
		nameColumn:   "company_name",
		roleExpr:     "'company'",
		approvedExpr: "is_approved",
	},
}

type PgxActorRepository struct {
	db *pgxpool.Pool
}

func newPgxActorRepository(db *pgxpool.Pool) portsrepo.ActorRepositoryFacade {
	return &PgxActorRepository{db: db}
}

var _ portsrepo.ActorRepositoryFacade = (*PgxActorRepository)(nil)

func (r *PgxActorRepository) selectQuery(t actorTable, where string) string {
	return fmt.Sprintf(`
		SELECT %s, %s, email, %s, %s,
			password_hash, google_id,
			is_email_verified, email_verification_token_hash, email_verification_expires_at,
			password_reset_token_hash, password_reset_expires_at,
			login_attempts, lock_until, is_active, last_login
		FROM %s
		WHERE %s;`,
		t.idColumn, t.nameColumn, t.roleExpr, t.approvedExpr, t.table, where)
}

func (r *PgxActorRepository) findActor(ctx context.Context, kind domain.ActorKind, where string, arg any) (*domain.Actor, error) {
	t, ok := actorTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown actor kind %q", kind)
	}

	var (
		actor domain.Actor
		role  string
		creds models.CredentialColumns
	)
	err := r.db.QueryRow(ctx, r.selectQuery(t, where), arg).Scan(
		&actor.ID,
		&actor.Name,
		&actor.Email,
		&role,
		&actor.Approved,
		&creds.PasswordHash,
		&creds.GoogleID,
		&creds.IsEmailVerified,
		&creds.EmailVerificationTokenHash,
		&creds.EmailVerificationExpiresAt,
		&creds.PasswordResetTokenHash,
		&creds.PasswordResetExpiresAt,
		&creds.LoginAttempts,
		&creds.LockUntil,
		&creds.IsActive,
		&creds.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s actor: %w", kind, err)
	}

	actor.Kind = kind
	actor.Role = domain.UserRole(role)
	actor.Credentials = toDomainCredentials(creds)
	return &actor, nil
}

func (r *PgxActorRepository) FindActorByID(ctx context.Context, kind domain.ActorKind, actorID string) (*domain.Actor, error) {
	t := actorTables[kind]
	return r.findActor(ctx, kind, t.idColumn+" = $1", actorID)
}

func (r *PgxActorRepository) FindActorByEmail(ctx context.Context, kind domain.ActorKind, email string) (*domain.Actor, error) {
	return r.findActor(ctx, kind, "email = lower($1)", email)
}

func (r *PgxActorRepository) FindActorByVerificationDigest(ctx context.Context, kind domain.ActorKind, digest string) (*domain.Actor, error) {
	return r.findActor(ctx, kind, "email_verification_token_hash = $1", digest)
}

func (r *PgxActorRepository) FindActorByResetDigest(ctx context.Context, kind domain.ActorKind, digest string) (*domain.Actor, error) {
	return r.findActor(ctx, kind, "password_reset_token_hash = $1", digest)
}

func (r *PgxActorRepository) UpdateCredentials(ctx context.Context, kind domain.ActorKind, actorID string, creds domain.Credentials) error {
	t, ok := actorTables[kind]
	if !ok {
		return fmt.Errorf("unknown actor kind %q", kind)
	}
	m := toModelCredentials(creds)
	query := fmt.Sprintf(`
		UPDATE %s
		SET password_hash = $1,
			google_id = $2,
			is_email_verified = $3,
			email_verification_token_hash = $4,
			email_verification_expires_at = $5,
			password_reset_token_hash = $6,
			password_reset_expires_at = $7,
			login_attempts = $8,
			lock_until = $9,
			is_active = $10,
			last_login = $11,
			updated_at = now()
		WHERE %s = $12;`, t.table, t.idColumn)

	cmdTag, err := r.db.Exec(ctx, query,
		m.PasswordHash,
		m.GoogleID,
		m.IsEmailVerified,
		m.EmailVerificationTokenHash,
		m.EmailVerificationExpiresAt,
		m.PasswordResetTokenHash,
		m.PasswordResetExpiresAt,
		m.LoginAttempts,
		m.LockUntil,
		m.IsActive,
		m.LastLogin,
		actorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s credentials: %w", kind, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s not found: %w", kind, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxActorRepository) DeactivateActor(ctx context.Context, kind domain.ActorKind, actorID string) error {
	t, ok := actorTables[kind]
	if !ok {
		return fmt.Errorf("unknown actor kind %q", kind)
	}
	query := fmt.Sprintf(`UPDATE %s SET is_active = false, updated_at = now() WHERE %s = $1;`, t.table, t.idColumn)
	cmdTag, err := r.db.Exec(ctx, query, actorID)
	if err != nil {
		return fmt.Errorf("failed to deactivate %s: %w", kind, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s not found: %w", kind, apperrors.ErrNotFound)
	}
	return nil
}
