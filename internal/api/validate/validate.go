package validate

import (
	"math/big"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

// BigInt parses a base-10 integer. Returns nil on empty input so
// optional fields stay optional.
func BigInt(field, value string) (*big.Int, *ErrField) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	n, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
	if !ok {
		return nil, &ErrField{Field: field, Msg: "must be a base-10 integer"}
	}
	return n, nil
}
