// Package memory backs the repositories with in-process contract cells.
// It serves tests and STORE_DRIVER=memory runs; Postgres is the real
// store.
package memory

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/mkaganm/balance-store/internal/contract"
	"github.com/mkaganm/balance-store/internal/models"
	repo "github.com/mkaganm/balance-store/internal/repository"
)

type instance struct {
	cell      *contract.BalanceStore
	createdAt time.Time
}

type balancesRepo struct {
	mu    sync.RWMutex
	cells map[string]*instance
}

type operationLogsRepo struct {
	mu   sync.Mutex
	logs map[string][]models.OperationLog
}

type Repositories struct {
	Balances      repo.Balances
	OperationLogs repo.OperationLogs
}

func NewRepositories() Repositories {
	return Repositories{
		Balances:      &balancesRepo{cells: map[string]*instance{}},
		OperationLogs: &operationLogsRepo{logs: map[string][]models.OperationLog{}},
	}
}

func (r *balancesRepo) Create(_ context.Context, instanceID string) (models.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst := &instance{cell: contract.New(), createdAt: time.Now()}
	r.cells[instanceID] = inst
	return r.snapshot(instanceID, inst), nil
}

func (r *balancesRepo) Increase(_ context.Context, instanceID string, amount *big.Int) (models.Balance, error) {
	r.mu.RLock()
	inst, ok := r.cells[instanceID]
	r.mu.RUnlock()
	if !ok {
		return models.Balance{}, repo.ErrNotFound
	}
	if _, err := inst.cell.Increase(amount, nil); err != nil {
		return models.Balance{}, err
	}
	return r.snapshot(instanceID, inst), nil
}

func (r *balancesRepo) Get(_ context.Context, instanceID string) (models.Balance, error) {
	r.mu.RLock()
	inst, ok := r.cells[instanceID]
	r.mu.RUnlock()
	if !ok {
		return models.Balance{}, repo.ErrNotFound
	}
	return r.snapshot(instanceID, inst), nil
}

func (r *balancesRepo) snapshot(instanceID string, inst *instance) models.Balance {
	return models.Balance{
		InstanceID:    instanceID,
		Value:         inst.cell.Read(),
		CreatedAt:     inst.createdAt,
		LastUpdatedAt: inst.cell.UpdatedAt(),
	}
}

func (r *operationLogsRepo) Create(_ context.Context, l models.OperationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.logs[l.InstanceID] = append(r.logs[l.InstanceID], l)
	return nil
}

func (r *operationLogsRepo) ListByInstance(_ context.Context, instanceID string, limit, offset int) ([]models.OperationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.logs[instanceID]
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]models.OperationLog, end-offset)
	copy(out, all[offset:end])
	return out, nil
}
