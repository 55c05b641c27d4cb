package ports

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// WalletEvents receives provider notifications. Handlers run on the
// subscription goroutine and must not unsubscribe synchronously.
type WalletEvents struct {
	AccountsChanged func(accounts []common.Address)
	ChainChanged    func(chainID uint64)
}

type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	ChainID(ctx context.Context) (uint64, error)
	// Signer is only available for an account returned by RequestAccounts.
	Signer(ctx context.Context, account common.Address) (Signer, error)
	// Subscribe replaces any previous subscription held by the provider.
	Subscribe(ctx context.Context, events WalletEvents) (event.Subscription, error)
	Close()
}

// TxRequest is an unsigned transaction handed to the wallet for signing.
type TxRequest struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// Signer submits transactions on behalf of one account. Signing happens in
// the wallet.
type Signer interface {
	Address() common.Address
	SendTransaction(ctx context.Context, tx TxRequest) (common.Hash, error)
}
