package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/mkaganm/balance-store/internal/repository"
)

type Repositories struct {
	Balances      repo.Balances
	OperationLogs repo.OperationLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Balances:      &balancesRepo{pool},
		OperationLogs: &operationLogsRepo{pool},
	}
}
