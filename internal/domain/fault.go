package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes surfaced to presentation.
type ErrorKind string

const (
	ErrorKindNone                ErrorKind = ""
	ErrorKindProviderUnavailable ErrorKind = "provider_unavailable"
	ErrorKindUserRejected        ErrorKind = "user_rejected"
	ErrorKindInsufficientFunds   ErrorKind = "insufficient_funds"
	ErrorKindInvalidAmount       ErrorKind = "invalid_amount"
	ErrorKindCallFailed          ErrorKind = "call_failed"
	ErrorKindUnknown             ErrorKind = "unknown"

	// ErrorKindReconnectRequired is informational: the user disconnected.
	ErrorKindReconnectRequired ErrorKind = "reconnect_required"
)

func (k ErrorKind) Valid() bool {
	switch k {
	case ErrorKindProviderUnavailable, ErrorKindUserRejected, ErrorKindInsufficientFunds,
		ErrorKindInvalidAmount, ErrorKindCallFailed, ErrorKindUnknown, ErrorKindReconnectRequired:
		return true
	default:
		return false
	}
}

func (k ErrorKind) IsFailure() bool {
	return k != ErrorKindNone && k != ErrorKindReconnectRequired
}

// Operation names the session or transaction step a fault came from.
type Operation string

const (
	OpConnect    Operation = "connect"
	OpResync     Operation = "resync"
	OpStake      Operation = "stake"
	OpUnstake    Operation = "unstake"
	OpDisconnect Operation = "disconnect"
)

// Fault is the most recent error attached to a session.
type Fault struct {
	Kind ErrorKind `json:"kind"`
	Op   Operation `json:"op"`
}

// Message returns the user-facing text for the fault.
func (f Fault) Message() string {
	switch f.Kind {
	case ErrorKindReconnectRequired:
		return "Please connect your wallet to continue."
	case ErrorKindProviderUnavailable:
		return "No wallet provider is available. Configure a wallet RPC endpoint and try again."
	case ErrorKindInvalidAmount:
		return "Enter an amount greater than zero."
	}

	switch f.Op {
	case OpConnect:
		if f.Kind == ErrorKindUserRejected {
			return "Please connect your wallet to use the dApp."
		}
		return "Failed to connect wallet. Please try again."
	case OpResync:
		return "Failed to fetch balances. Please try again."
	case OpStake, OpUnstake:
		switch f.Kind {
		case ErrorKindUserRejected:
			return "Transaction was cancelled."
		case ErrorKindInsufficientFunds:
			return "Insufficient funds to complete the transaction."
		}
		return fmt.Sprintf("Failed to %s. Please try again.", f.Op)
	default:
		return "Something went wrong. Please try again."
	}
}

// Failure is a boundary error tagged with its classified kind.
type Failure struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Op, f.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", f.Op, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func NewFailure(kind ErrorKind, op string, err error) *Failure {
	return &Failure{Kind: kind, Op: op, Err: err}
}

// KindOf reports the classified kind carried by err. Errors that never
// crossed the classifier map to ErrorKindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}

	var failure *Failure
	if errors.As(err, &failure) && failure.Kind.Valid() {
		return failure.Kind
	}

	switch {
	case errors.Is(err, ErrInvalidAmount):
		return ErrorKindInvalidAmount
	case errors.Is(err, ErrProviderUnavailable):
		return ErrorKindProviderUnavailable
	case errors.Is(err, ErrReverted):
		return ErrorKindCallFailed
	default:
		return ErrorKindUnknown
	}
}
