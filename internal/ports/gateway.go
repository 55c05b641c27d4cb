package ports

import (
	"context"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
)

// StakingGateway is the staking contract bound to one signer.
type StakingGateway interface {
	TotalStaked(ctx context.Context) (domain.Amount, error)
	UserStaked(ctx context.Context, account common.Address) (domain.Amount, error)
	SubmitStake(ctx context.Context, amount domain.Amount) (domain.PendingTransaction, error)
	SubmitUnstake(ctx context.Context, amount domain.Amount) (domain.PendingTransaction, error)
	// AwaitConfirmation blocks until the transaction is mined or ctx ends.
	AwaitConfirmation(ctx context.Context, tx domain.PendingTransaction) error
}

// GatewayBinder builds a fresh gateway for a signer. Gateways are replaced,
// never rebound.
type GatewayBinder interface {
	Bind(signer Signer) (StakingGateway, error)
}
