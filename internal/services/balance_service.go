package services

import (
	"context"
	"errors"
	"math/big"

	"github.com/google/uuid"

	"github.com/mkaganm/balance-store/internal/contract"
	"github.com/mkaganm/balance-store/internal/metrics"
	"github.com/mkaganm/balance-store/internal/models"
	repo "github.com/mkaganm/balance-store/internal/repository"
	"github.com/mkaganm/balance-store/internal/worker"
)

// BalanceService drives the store operations against the repositories
// and records an operation log entry for every applied mutation. Log
// writes go through the worker pool so they stay off the request path.
type BalanceService struct {
	bal  repo.Balances
	logs repo.OperationLogs
	wp   *worker.Pool
}

func NewBalanceService(b repo.Balances, l repo.OperationLogs, wp *worker.Pool) *BalanceService {
	return &BalanceService{bal: b, logs: l, wp: wp}
}

func (s *BalanceService) journal(instanceID string, op models.OperationType, amount *big.Int) {
	l := models.OperationLog{
		ID:         uuid.NewString(),
		InstanceID: instanceID,
		Operation:  op,
	}
	if amount != nil {
		l.Amount = new(big.Int).Set(amount)
	}
	s.wp.Submit(func() { _ = s.logs.Create(context.Background(), l) })
}

// Initialize creates a new instance with value 0. Creation and
// initialization are one operation, so initialize runs exactly once per
// instance by construction.
func (s *BalanceService) Initialize(ctx context.Context) (models.Balance, error) {
	id := uuid.NewString()
	b, err := s.bal.Create(ctx, id)
	if err != nil {
		metrics.OperationsFailed.WithLabelValues("initialize", "storage").Inc()
		return models.Balance{}, err
	}
	s.journal(id, models.OpInitialize, nil)
	metrics.OperationsTotal.WithLabelValues("initialize").Inc()
	return b, nil
}

// Increase adds amount to the instance balance. The reserved parameter
// is accepted for interface parity and ignored. The amount check runs
// before storage is touched, so a rejected call never mutates the row.
func (s *BalanceService) Increase(ctx context.Context, instanceID string, amount, reserved *big.Int) (models.Balance, error) {
	_ = reserved

	if err := contract.ValidateAmount(amount); err != nil {
		metrics.OperationsFailed.WithLabelValues("increase", "invalid_argument").Inc()
		return models.Balance{}, err
	}

	b, err := s.bal.Increase(ctx, instanceID, amount)
	if err != nil {
		reason := "storage"
		if errors.Is(err, repo.ErrNotFound) {
			reason = "not_found"
		}
		metrics.OperationsFailed.WithLabelValues("increase", reason).Inc()
		return models.Balance{}, err
	}
	s.journal(instanceID, models.OpIncrease, amount)
	metrics.OperationsTotal.WithLabelValues("increase").Inc()
	return b, nil
}

// Read returns the current balance without side effects.
func (s *BalanceService) Read(ctx context.Context, instanceID string) (models.Balance, error) {
	b, err := s.bal.Get(ctx, instanceID)
	if err != nil {
		reason := "storage"
		if errors.Is(err, repo.ErrNotFound) {
			reason = "not_found"
		}
		metrics.OperationsFailed.WithLabelValues("read", reason).Inc()
		return models.Balance{}, err
	}
	metrics.OperationsTotal.WithLabelValues("read").Inc()
	return b, nil
}

// Operations lists the applied operations for an instance, oldest first.
func (s *BalanceService) Operations(ctx context.Context, instanceID string, limit, offset int) ([]models.OperationLog, error) {
	if _, err := s.bal.Get(ctx, instanceID); err != nil {
		return nil, err
	}
	return s.logs.ListByInstance(ctx, instanceID, limit, offset)
}
