// Package evm binds the staking contract over an Ethereum JSON-RPC backend.
package evm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/bnema/staking-cli/internal/adapters/classify"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const DefaultConfirmPollInterval = time.Second

// Backend is the part of ethclient.Client the gateway reads through.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type Options struct {
	ConfirmPollInterval time.Duration
	Logger              *slog.Logger
}

// Binder produces gateways bound to the fixed contract address.
type Binder struct {
	backend      Backend
	address      common.Address
	contract     abi.ABI
	pollInterval time.Duration
	logger       *slog.Logger
}

var _ ports.GatewayBinder = (*Binder)(nil)

func NewBinder(backend Backend, address common.Address, opts Options) (*Binder, error) {
	if backend == nil {
		return nil, errors.New("contract backend is nil")
	}
	if address == (common.Address{}) {
		return nil, errors.New("staking contract address is not configured")
	}

	parsed, err := abi.JSON(strings.NewReader(StakingABI))
	if err != nil {
		return nil, fmt.Errorf("parse staking abi: %w", err)
	}

	interval := opts.ConfirmPollInterval
	if interval <= 0 {
		interval = DefaultConfirmPollInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Binder{
		backend:      backend,
		address:      address,
		contract:     parsed,
		pollInterval: interval,
		logger:       logger,
	}, nil
}

func (b *Binder) Bind(signer ports.Signer) (ports.StakingGateway, error) {
	if signer == nil {
		return nil, fmt.Errorf("bind staking contract: %w", domain.ErrNotConnected)
	}

	return &Gateway{binder: b, signer: signer}, nil
}

// Gateway is the staking contract as seen by one signer. It is immutable;
// account changes produce a new Gateway.
type Gateway struct {
	binder *Binder
	signer ports.Signer
}

var _ ports.StakingGateway = (*Gateway)(nil)

func (g *Gateway) TotalStaked(ctx context.Context) (domain.Amount, error) {
	return g.readAmount(ctx, methodTotalStaked)
}

func (g *Gateway) UserStaked(ctx context.Context, account common.Address) (domain.Amount, error) {
	return g.readAmount(ctx, methodStakedBalances, account)
}

// SubmitStake sends stake(amount) carrying amount as value.
func (g *Gateway) SubmitStake(ctx context.Context, amount domain.Amount) (domain.PendingTransaction, error) {
	return g.submit(ctx, domain.TxKindStake, amount, amount.Big())
}

// SubmitUnstake sends unstake(amount) with no value attached.
func (g *Gateway) SubmitUnstake(ctx context.Context, amount domain.Amount) (domain.PendingTransaction, error) {
	return g.submit(ctx, domain.TxKindUnstake, amount, nil)
}

// AwaitConfirmation polls for the receipt until it exists or ctx ends. A
// missing receipt is the only condition that is retried.
func (g *Gateway) AwaitConfirmation(ctx context.Context, tx domain.PendingTransaction) error {
	op := tx.Kind.Operation()
	ticker := time.NewTicker(g.binder.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := g.binder.backend.TransactionReceipt(ctx, tx.Hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return domain.NewFailure(domain.ErrorKindCallFailed, string(op),
					fmt.Errorf("%w: %s in block %v", domain.ErrReverted, tx.Hash.Hex(), receipt.BlockNumber))
			}
			g.binder.logger.Debug("transaction confirmed", "kind", tx.Kind, "hash", tx.Hash.Hex(), "block", receipt.BlockNumber)
			return nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			return classify.Error(op, fmt.Errorf("fetch receipt %s: %w", tx.Hash.Hex(), err))
		}

		select {
		case <-ctx.Done():
			return classify.Error(op, fmt.Errorf("await receipt %s: %w", tx.Hash.Hex(), ctx.Err()))
		case <-ticker.C:
		}
	}
}

func (g *Gateway) readAmount(ctx context.Context, method string, args ...any) (domain.Amount, error) {
	data, err := g.binder.contract.Pack(method, args...)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("pack %s: %w", method, err)
	}

	to := g.binder.address
	raw, err := g.binder.backend.CallContract(ctx, ethereum.CallMsg{
		From: g.signer.Address(),
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return domain.Amount{}, classify.Error(domain.OpResync, fmt.Errorf("call %s: %w", method, err))
	}

	values, err := g.binder.contract.Unpack(method, raw)
	if err != nil {
		return domain.Amount{}, domain.NewFailure(domain.ErrorKindCallFailed, string(domain.OpResync),
			fmt.Errorf("decode %s: %w", method, err))
	}
	if len(values) != 1 {
		return domain.Amount{}, domain.NewFailure(domain.ErrorKindCallFailed, string(domain.OpResync),
			fmt.Errorf("decode %s: expected 1 value, got %d", method, len(values)))
	}

	value, ok := values[0].(*big.Int)
	if !ok {
		return domain.Amount{}, domain.NewFailure(domain.ErrorKindCallFailed, string(domain.OpResync),
			fmt.Errorf("decode %s: unexpected type %T", method, values[0]))
	}

	amount, err := domain.AmountFromBig(value)
	if err != nil {
		return domain.Amount{}, domain.NewFailure(domain.ErrorKindCallFailed, string(domain.OpResync),
			fmt.Errorf("decode %s: %w", method, err))
	}

	return amount, nil
}

func (g *Gateway) submit(ctx context.Context, kind domain.TxKind, amount domain.Amount, value *big.Int) (domain.PendingTransaction, error) {
	op := kind.Operation()
	if amount.IsZero() {
		return domain.PendingTransaction{}, domain.NewFailure(domain.ErrorKindInvalidAmount, string(op),
			fmt.Errorf("%s: %w", kind, domain.ErrInvalidAmount))
	}

	data, err := g.binder.contract.Pack(string(kind), amount.Big())
	if err != nil {
		return domain.PendingTransaction{}, fmt.Errorf("pack %s: %w", kind, err)
	}

	hash, err := g.signer.SendTransaction(ctx, ports.TxRequest{
		To:    g.binder.address,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return domain.PendingTransaction{}, classify.Error(op, fmt.Errorf("submit %s: %w", kind, err))
	}

	g.binder.logger.Info("transaction submitted", "kind", kind, "hash", hash.Hex(), "amount", amount.String())
	return domain.PendingTransaction{Hash: hash, Kind: kind, Amount: amount}, nil
}
