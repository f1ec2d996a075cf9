package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portsrepo "github.com/skillbridge/skillbridge_backend/internal/core/ports/repositories"
	"github.com/skillbridge/skillbridge_backend/internal/models"
)

type PgxRefreshTokenRepository struct {
	db *pgxpool.Pool
}

func newPgxRefreshTokenRepository(db *pgxpool.Pool) portsrepo.RefreshTokenRepositoryFacade {
	return &PgxRefreshTokenRepository{db: db}
}

var _ portsrepo.RefreshTokenRepositoryFacade = (*PgxRefreshTokenRepository)(nil)

func (r *PgxRefreshTokenRepository) AddRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin refresh token insert: %w", err)
	}
	defer tx.Rollback(ctx)

	// Expired entries are pruned lazily here rather than by a background job.
	_, err = tx.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE actor_kind = $1 AND actor_id = $2 AND expires_at <= now();`,
		string(token.ActorKind), token.ActorID)
	if err != nil {
		return fmt.Errorf("failed to prune expired refresh tokens: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (actor_kind, actor_id, token_hash, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5);`,
		string(token.ActorKind), token.ActorID, token.TokenHash, token.IssuedAt, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}

	// FIFO eviction beyond the per-actor cap, oldest issued first.
	_, err = tx.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE id IN (
			SELECT id FROM refresh_tokens
			WHERE actor_kind = $1 AND actor_id = $2
			ORDER BY issued_at DESC, id DESC
			OFFSET $3
		);`,
		string(token.ActorKind), token.ActorID, domain.MaxRefreshTokensPerActor)
	if err != nil {
		return fmt.Errorf("failed to evict refresh tokens beyond cap: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgxRefreshTokenRepository) HasRefreshToken(ctx context.Context, kind domain.ActorKind, actorID string, digest string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM refresh_tokens
			WHERE actor_kind = $1 AND actor_id = $2 AND token_hash = $3 AND expires_at > now()
		);`,
		string(kind), actorID, digest).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check refresh token membership: %w", err)
	}
	return exists, nil
}

func (r *PgxRefreshTokenRepository) RemoveRefreshToken(ctx context.Context, kind domain.ActorKind, actorID string, digest string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE actor_kind = $1 AND actor_id = $2 AND token_hash = $3;`,
		string(kind), actorID, digest)
	if err != nil {
		return fmt.Errorf("failed to remove refresh token: %w", err)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) RemoveAllRefreshTokens(ctx context.Context, kind domain.ActorKind, actorID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE actor_kind = $1 AND actor_id = $2;`,
		string(kind), actorID)
	if err != nil {
		return fmt.Errorf("failed to remove refresh tokens for actor: %w", err)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) ListRefreshTokens(ctx context.Context, kind domain.ActorKind, actorID string) ([]domain.RefreshToken, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, actor_kind, actor_id, token_hash, issued_at, expires_at
		FROM refresh_tokens
		WHERE actor_kind = $1 AND actor_id = $2
		ORDER BY issued_at ASC, id ASC;`,
		string(kind), actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh tokens: %w", err)
	}
	defer rows.Close()

	tokens := []domain.RefreshToken{}
	for rows.Next() {
		var m models.RefreshToken
		if err := rows.Scan(&m.ID, &m.ActorKind, &m.ActorID, &m.TokenHash, &m.IssuedAt, &m.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan refresh token row: %w", err)
		}
		tokens = append(tokens, domain.RefreshToken{
			ID:        m.ID,
			ActorKind: domain.ActorKind(m.ActorKind),
			ActorID:   m.ActorID,
			TokenHash: m.TokenHash,
			IssuedAt:  m.IssuedAt,
			ExpiresAt: m.ExpiresAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating refresh token rows: %w", rows.Err())
	}
	return tokens, nil
}
