// Package classify maps wallet and contract failures onto domain error kinds.
package classify

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/ethereum/go-ethereum/rpc"
)

// EIP-1193 provider error codes.
const (
	codeUserRejected      = 4001
	codeUnauthorized      = 4100
	codeDisconnected      = 4900
	codeChainDisconnected = 4901
)

var rejectionPhrases = []string{
	"user denied",
	"user rejected",
	"rejected by user",
	"action_rejected",
}

var insufficientFundsPhrases = []string{
	"insufficient funds",
	"insufficient_funds",
	"insufficient balance",
}

// Error wraps err in a *domain.Failure carrying its kind. Errors that were
// already classified pass through unchanged; nil stays nil.
func Error(op domain.Operation, err error) error {
	if err == nil {
		return nil
	}

	var failure *domain.Failure
	if errors.As(err, &failure) && failure.Kind.Valid() {
		return err
	}

	return domain.NewFailure(Kind(op, err), string(op), err)
}

// Kind returns the classification of err without wrapping it.
func Kind(op domain.Operation, err error) domain.ErrorKind {
	if err == nil {
		return domain.ErrorKindNone
	}

	var failure *domain.Failure
	if errors.As(err, &failure) && failure.Kind.Valid() {
		return failure.Kind
	}

	if errors.Is(err, domain.ErrInvalidAmount) {
		return domain.ErrorKindInvalidAmount
	}

	code, hasCode := rpcCode(err)
	text := strings.ToLower(err.Error())

	if (hasCode && (code == codeUserRejected || code == codeUnauthorized)) || containsAny(text, rejectionPhrases) {
		return domain.ErrorKindUserRejected
	}

	if containsAny(text, insufficientFundsPhrases) {
		return domain.ErrorKindInsufficientFunds
	}

	if errors.Is(err, domain.ErrProviderUnavailable) ||
		(hasCode && (code == codeDisconnected || code == codeChainDisconnected)) {
		return domain.ErrorKindProviderUnavailable
	}

	if op == domain.OpConnect && unreachable(err) {
		return domain.ErrorKindProviderUnavailable
	}

	if callFailure(err, hasCode, text) {
		return domain.ErrorKindCallFailed
	}

	return domain.ErrorKindUnknown
}

func rpcCode(err error) (int, bool) {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode(), true
	}
	return 0, false
}

// unreachable reports transport faults that mean no wallet answers at the
// configured endpoint.
func unreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusUnauthorized && httpErr.StatusCode <= http.StatusNotFound
	}

	return false
}

func callFailure(err error, hasCode bool, text string) bool {
	if hasCode || errors.Is(err, domain.ErrReverted) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if strings.Contains(text, "execution reverted") {
		return true
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
