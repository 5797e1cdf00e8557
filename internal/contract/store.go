// Package contract implements the balance state cell: one persisted
// non-negative integer with a constructor, a guarded increase and a
// read accessor. Values are arbitrary precision so field-element-sized
// integers fit without truncation.
package contract

import (
	"math/big"
	"sync"
	"time"
)

// BalanceStore holds one non-negative integer. All operations on an
// instance are serialized by the mutex, so each runs to completion
// before the next begins.
type BalanceStore struct {
	mu        sync.Mutex
	value     *big.Int
	updatedAt time.Time
}

// New creates an initialized store. Initialization happens exactly once,
// here: the value is set to zero and the invariant value >= 0 holds from
// this point on.
func New() *BalanceStore {
	return &BalanceStore{value: new(big.Int), updatedAt: time.Now()}
}

// Increase adds a non-negative amount to the balance and returns the new
// value. The reserved parameter is accepted and ignored; it exists for
// interface parity with callers that send it and must not affect the
// result. The amount check runs before any mutation, so a rejected call
// leaves the value untouched.
func (s *BalanceStore) Increase(amount, reserved *big.Int) (*big.Int, error) {
	_ = reserved

	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return nil, ErrNotInitialized
	}
	s.value.Add(s.value, amount)
	s.updatedAt = time.Now()
	return new(big.Int).Set(s.value), nil
}

// Read returns the current value. It has no side effects; the caller
// gets a copy, so the stored value can not be mutated from outside.
func (s *BalanceStore) Read() *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(s.value)
}

// UpdatedAt reports when the balance last changed.
func (s *BalanceStore) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
