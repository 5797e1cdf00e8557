package contract

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsAtZero(t *testing.T) {
	s := New()
	assert.Zero(t, s.Read().Sign())
}

func TestIncreaseAddsAmount(t *testing.T) {
	s := New()
	v, err := s.Increase(big.NewInt(5), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.Int64())
	assert.Equal(t, int64(5), s.Read().Int64())
}

func TestIncreaseAccumulates(t *testing.T) {
	s := New()
	_, err := s.Increase(big.NewInt(5), nil)
	require.NoError(t, err)
	_, err = s.Increase(big.NewInt(3), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(8), s.Read().Int64())
}

func TestIncreaseSumsSequence(t *testing.T) {
	s := New()
	amounts := []int64{0, 1, 2, 3, 100, 7}
	var want int64
	for _, a := range amounts {
		_, err := s.Increase(big.NewInt(a), nil)
		require.NoError(t, err)
		want += a
	}
	assert.Equal(t, want, s.Read().Int64())
}

func TestIncreaseRejectsNegative(t *testing.T) {
	s := New()
	_, err := s.Increase(big.NewInt(-1), nil)

	var inv *InvalidArgumentError
	require.True(t, errors.As(err, &inv))
	assert.Contains(t, inv.Error(), "-1")

	// rejected call must not touch the value
	assert.Zero(t, s.Read().Sign())
}

func TestIncreaseRejectsNilAmount(t *testing.T) {
	s := New()
	_, err := s.Increase(nil, nil)

	var inv *InvalidArgumentError
	require.True(t, errors.As(err, &inv))
	assert.Zero(t, s.Read().Sign())
}

func TestReservedParameterIgnored(t *testing.T) {
	s := New()
	_, err := s.Increase(big.NewInt(5), big.NewInt(999))
	require.NoError(t, err)
	assert.Equal(t, int64(5), s.Read().Int64())
}

func TestReadIsIdempotent(t *testing.T) {
	s := New()
	_, err := s.Increase(big.NewInt(42), nil)
	require.NoError(t, err)

	first := s.Read()
	second := s.Read()
	assert.Zero(t, first.Cmp(second))
	assert.Equal(t, int64(42), s.Read().Int64())
}

func TestReadReturnsCopy(t *testing.T) {
	s := New()
	_, err := s.Increase(big.NewInt(10), nil)
	require.NoError(t, err)

	s.Read().SetInt64(999)
	assert.Equal(t, int64(10), s.Read().Int64())
}

func TestFieldElementSizedValues(t *testing.T) {
	s := New()

	// a 252-bit amount, far beyond int64
	huge, ok := new(big.Int).SetString("3618502788666131213697322783095070105623107215331596699973092056135872020480", 10)
	require.True(t, ok)

	_, err := s.Increase(huge, nil)
	require.NoError(t, err)
	_, err = s.Increase(big.NewInt(1), nil)
	require.NoError(t, err)

	want := new(big.Int).Add(huge, big.NewInt(1))
	assert.Zero(t, want.Cmp(s.Read()))
}

func TestZeroValueStoreIsUninitialized(t *testing.T) {
	var s BalanceStore
	_, err := s.Increase(big.NewInt(1), nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Zero(t, s.Read().Sign())
}
