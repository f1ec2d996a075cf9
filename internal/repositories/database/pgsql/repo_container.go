package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/skillbridge/skillbridge_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		ActorRepo:        newPgxActorRepository(dbPool),
		RefreshTokenRepo: newPgxRefreshTokenRepository(dbPool),
	}
}
