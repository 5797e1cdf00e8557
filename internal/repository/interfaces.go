package repository

import (
	"context"
	"errors"
	"math/big"

	"github.com/mkaganm/balance-store/internal/models"
)

// ErrNotFound is returned when an instance id matches no row.
var ErrNotFound = errors.New("instance not found")

type Balances interface {
	// Create inserts the instance with value 0. This is the initialize
	// operation; it runs exactly once per instance id.
	Create(ctx context.Context, instanceID string) (models.Balance, error)
	// Increase atomically adds a non-negative amount. Callers validate
	// the amount before calling.
	Increase(ctx context.Context, instanceID string, amount *big.Int) (models.Balance, error)
	Get(ctx context.Context, instanceID string) (models.Balance, error)
}

type OperationLogs interface {
	Create(ctx context.Context, l models.OperationLog) error
	ListByInstance(ctx context.Context, instanceID string, limit, offset int) ([]models.OperationLog, error)
}
