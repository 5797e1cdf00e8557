package contract

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrNotInitialized is returned when an operation runs against a store
// whose constructor never ran. Stores built with New can not hit this.
var ErrNotInitialized = errors.New("balance store not initialized")

// InvalidArgumentError reports an increase amount that violates the
// non-negativity constraint. The offending value is kept so callers can
// surface it to the user.
type InvalidArgumentError struct {
	Amount *big.Int
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: amount must be non-negative, got %s", e.Amount)
}

// ValidateAmount checks the increase input constraint. It is the single
// place the amount >= 0 rule lives; both the in-memory cell and the
// service layer call it before touching state.
func ValidateAmount(amount *big.Int) error {
	if amount == nil {
		return &InvalidArgumentError{Amount: nil}
	}
	if amount.Sign() < 0 {
		return &InvalidArgumentError{Amount: amount}
	}
	return nil
}
