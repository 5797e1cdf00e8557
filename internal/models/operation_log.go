package models

import (
	"math/big"
	"time"
)

type OperationType string

const (
	OpInitialize OperationType = "initialize"
	OpIncrease   OperationType = "increase"
)

// OperationLog records one applied operation on an instance. Amount is
// nil for initialize.
type OperationLog struct {
	ID         string        `json:"id"`
	InstanceID string        `json:"instance_id"`
	Operation  OperationType `json:"operation"`
	Amount     *big.Int      `json:"-"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (l OperationLog) AmountString() string {
	if l.Amount == nil {
		return ""
	}
	return l.Amount.String()
}
