package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies a contract violation. Handlers map each kind to a distinct
// HTTP status class, so operations must tag failures at the point where the
// violated condition is checked rather than relying on message text.
type Kind string

const (
	// KindInvalidAmount: deposit/withdraw/transfer amount <= 0.
	KindInvalidAmount Kind = "invalid_amount"

	// KindSameAccountTransfer: transfer source and destination are the same entity.
	KindSameAccountTransfer Kind = "invalid_transfer"

	// KindInsufficientFunds: withdrawal or transfer amount exceeds the balance.
	KindInsufficientFunds Kind = "insufficient_funds"

	// KindContractViolation: any other precondition, postcondition or
	// invariant failure, including a negative initial balance at construction.
	KindContractViolation Kind = "contract_violation"
)

// ViolationError is the failure value returned by every contract-checked
// operation. It carries the structured kind alongside the human-readable
// violation text.
type ViolationError struct {
	Kind    Kind
	Message string
}

func (e *ViolationError) Error() string {
	return e.Message
}

func violation(kind Kind, format string, args ...any) *ViolationError {
	return &ViolationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the violation kind from err, unwrapping if needed.
// Errors that carry no kind classify as KindContractViolation.
func KindOf(err error) Kind {
	var v *ViolationError
	if errors.As(err, &v) {
		return v.Kind
	}
	return KindContractViolation
}
