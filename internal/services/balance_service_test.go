package services

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaganm/balance-store/internal/contract"
	"github.com/mkaganm/balance-store/internal/models"
	repo "github.com/mkaganm/balance-store/internal/repository"
	"github.com/mkaganm/balance-store/internal/repository/memory"
	"github.com/mkaganm/balance-store/internal/worker"
)

func newService() (*BalanceService, *worker.Pool) {
	repos := memory.NewRepositories()
	wp := worker.NewPool(1)
	return NewBalanceService(repos.Balances, repos.OperationLogs, wp), wp
}

func TestInitializeStartsAtZero(t *testing.T) {
	svc, wp := newService()
	defer wp.Stop()

	b, err := svc.Initialize(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, b.InstanceID)
	assert.Equal(t, "0", b.ValueString())

	got, err := svc.Read(context.Background(), b.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, "0", got.ValueString())
}

func TestIncreaseThenRead(t *testing.T) {
	svc, wp := newService()
	defer wp.Stop()
	ctx := context.Background()

	b, err := svc.Initialize(ctx)
	require.NoError(t, err)

	_, err = svc.Increase(ctx, b.InstanceID, big.NewInt(5), nil)
	require.NoError(t, err)

	got, err := svc.Read(ctx, b.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, "5", got.ValueString())
}

func TestIncreaseAccumulatesAcrossCalls(t *testing.T) {
	svc, wp := newService()
	defer wp.Stop()
	ctx := context.Background()

	b, err := svc.Initialize(ctx)
	require.NoError(t, err)

	_, err = svc.Increase(ctx, b.InstanceID, big.NewInt(5), nil)
	require.NoError(t, err)
	updated, err := svc.Increase(ctx, b.InstanceID, big.NewInt(3), nil)
	require.NoError(t, err)
	assert.Equal(t, "8", updated.ValueString())
}

func TestIncreaseNegativeFailsAndLeavesValue(t *testing.T) {
	svc, wp := newService()
	defer wp.Stop()
	ctx := context.Background()

	b, err := svc.Initialize(ctx)
	require.NoError(t, err)

	_, err = svc.Increase(ctx, b.InstanceID, big.NewInt(-1), nil)
	var inv *contract.InvalidArgumentError
	require.True(t, errors.As(err, &inv))
	assert.Contains(t, err.Error(), "-1")

	got, err := svc.Read(ctx, b.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, "0", got.ValueString())
}

func TestIncreaseUnknownInstance(t *testing.T) {
	svc, wp := newService()
	defer wp.Stop()

	_, err := svc.Increase(context.Background(), "b6a7f5a0-0000-0000-0000-000000000000", big.NewInt(1), nil)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestReadUnknownInstance(t *testing.T) {
	svc, wp := newService()
	defer wp.Stop()

	_, err := svc.Read(context.Background(), "b6a7f5a0-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestReservedParameterDoesNotAffectResult(t *testing.T) {
	svc, wp := newService()
	defer wp.Stop()
	ctx := context.Background()

	b, err := svc.Initialize(ctx)
	require.NoError(t, err)

	updated, err := svc.Increase(ctx, b.InstanceID, big.NewInt(7), big.NewInt(12345))
	require.NoError(t, err)
	assert.Equal(t, "7", updated.ValueString())
}

func TestInstancesAreIndependent(t *testing.T) {
	svc, wp := newService()
	defer wp.Stop()
	ctx := context.Background()

	a, err := svc.Initialize(ctx)
	require.NoError(t, err)
	b, err := svc.Initialize(ctx)
	require.NoError(t, err)

	_, err = svc.Increase(ctx, a.InstanceID, big.NewInt(10), nil)
	require.NoError(t, err)

	gotA, err := svc.Read(ctx, a.InstanceID)
	require.NoError(t, err)
	gotB, err := svc.Read(ctx, b.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, "10", gotA.ValueString())
	assert.Equal(t, "0", gotB.ValueString())
}

func TestOperationsJournal(t *testing.T) {
	repos := memory.NewRepositories()
	wp := worker.NewPool(1)
	svc := NewBalanceService(repos.Balances, repos.OperationLogs, wp)
	ctx := context.Background()

	b, err := svc.Initialize(ctx)
	require.NoError(t, err)
	_, err = svc.Increase(ctx, b.InstanceID, big.NewInt(5), nil)
	require.NoError(t, err)
	_, err = svc.Increase(ctx, b.InstanceID, big.NewInt(3), nil)
	require.NoError(t, err)

	// drain the async journal writes before asserting
	wp.Stop()

	logs, err := svc.Operations(ctx, b.InstanceID, 50, 0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, models.OpInitialize, logs[0].Operation)
	assert.Equal(t, models.OpIncrease, logs[1].Operation)
	assert.Equal(t, "5", logs[1].AmountString())
	assert.Equal(t, "3", logs[2].AmountString())
}

func TestRejectedIncreaseIsNotJournaled(t *testing.T) {
	repos := memory.NewRepositories()
	wp := worker.NewPool(1)
	svc := NewBalanceService(repos.Balances, repos.OperationLogs, wp)
	ctx := context.Background()

	b, err := svc.Initialize(ctx)
	require.NoError(t, err)
	_, err = svc.Increase(ctx, b.InstanceID, big.NewInt(-5), nil)
	require.Error(t, err)

	wp.Stop()

	logs, err := svc.Operations(ctx, b.InstanceID, 50, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.OpInitialize, logs[0].Operation)
}
