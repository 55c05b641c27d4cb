package classify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct {
	code int
	msg  string
}

func (e codedError) Error() string  { return e.msg }
func (e codedError) ErrorCode() int { return e.code }

func TestKind(t *testing.T) {
	t.Parallel()

	refused := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}

	tests := []struct {
		name string
		op   domain.Operation
		err  error
		want domain.ErrorKind
	}{
		{name: "nil", op: domain.OpStake, err: nil, want: domain.ErrorKindNone},
		{name: "eip1193 rejection", op: domain.OpConnect, err: codedError{code: 4001, msg: "User rejected the request."}, want: domain.ErrorKindUserRejected},
		{name: "unauthorized method", op: domain.OpStake, err: codedError{code: 4100, msg: "unauthorized"}, want: domain.ErrorKindUserRejected},
		{name: "denied text", op: domain.OpUnstake, err: errors.New("MetaMask Tx Signature: User denied transaction signature."), want: domain.ErrorKindUserRejected},
		{name: "geth insufficient funds", op: domain.OpStake, err: codedError{code: -32000, msg: "insufficient funds for gas * price + value"}, want: domain.ErrorKindInsufficientFunds},
		{name: "ethers insufficient funds", op: domain.OpUnstake, err: errors.New("code=INSUFFICIENT_FUNDS"), want: domain.ErrorKindInsufficientFunds},
		{name: "provider disconnected", op: domain.OpStake, err: codedError{code: 4900, msg: "disconnected"}, want: domain.ErrorKindProviderUnavailable},
		{name: "provider sentinel", op: domain.OpConnect, err: fmt.Errorf("dial: %w", domain.ErrProviderUnavailable), want: domain.ErrorKindProviderUnavailable},
		{name: "refused on connect", op: domain.OpConnect, err: fmt.Errorf("post: %w", refused), want: domain.ErrorKindProviderUnavailable},
		{name: "refused on resync", op: domain.OpResync, err: fmt.Errorf("post: %w", refused), want: domain.ErrorKindCallFailed},
		{name: "http 404 on connect", op: domain.OpConnect, err: rpc.HTTPError{StatusCode: 404, Status: "404 Not Found"}, want: domain.ErrorKindProviderUnavailable},
		{name: "http 500 on connect", op: domain.OpConnect, err: rpc.HTTPError{StatusCode: 500, Status: "500 Internal Server Error"}, want: domain.ErrorKindCallFailed},
		{name: "revert", op: domain.OpUnstake, err: codedError{code: 3, msg: "execution reverted: not enough staked"}, want: domain.ErrorKindCallFailed},
		{name: "reverted receipt", op: domain.OpStake, err: fmt.Errorf("receipt: %w", domain.ErrReverted), want: domain.ErrorKindCallFailed},
		{name: "cancelled", op: domain.OpStake, err: context.Canceled, want: domain.ErrorKindCallFailed},
		{name: "invalid amount", op: domain.OpStake, err: domain.ErrInvalidAmount, want: domain.ErrorKindInvalidAmount},
		{name: "classified passes through", op: domain.OpStake, err: domain.NewFailure(domain.ErrorKindInsufficientFunds, "stake", nil), want: domain.ErrorKindInsufficientFunds},
		{name: "anything else", op: domain.OpStake, err: errors.New("weird"), want: domain.ErrorKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Kind(tt.op, tt.err))
		})
	}
}

func TestErrorWrapsOnce(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Error(domain.OpStake, nil))

	cause := codedError{code: 4001, msg: "User rejected the request."}
	err := Error(domain.OpStake, cause)

	var failure *domain.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, domain.ErrorKindUserRejected, failure.Kind)
	assert.Equal(t, "stake", failure.Op)
	assert.ErrorIs(t, err, cause)

	again := Error(domain.OpResync, fmt.Errorf("retry: %w", err))
	assert.Equal(t, domain.ErrorKindUserRejected, domain.KindOf(again))
}
