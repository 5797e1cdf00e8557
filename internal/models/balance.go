package models

import (
	"math/big"
	"time"
)

// Balance is the persisted row for one store instance. Value is kept as
// a big.Int so field-element-sized integers survive the round trip; on
// the wire it travels as a decimal string.
type Balance struct {
	InstanceID    string    `json:"id"`
	Value         *big.Int  `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// ValueString renders the value for JSON responses. A nil value (never
// produced by a successful operation) reads as zero.
func (b Balance) ValueString() string {
	if b.Value == nil {
		return "0"
	}
	return b.Value.String()
}
