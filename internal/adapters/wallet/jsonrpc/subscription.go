package jsonrpc

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bnema/staking-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// Subscribe polls the wallet for account and chain changes. Any previous
// subscription is torn down first. The subscription ends on its own after
// delivering a chain change.
func (p *Provider) Subscribe(ctx context.Context, events ports.WalletEvents) (event.Subscription, error) {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	if p.sub != nil {
		p.sub.Unsubscribe()
		p.sub = nil
	}

	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("read wallet accounts: %w", err)
	}
	chainID, err := p.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	sub := event.NewSubscription(func(quit <-chan struct{}) error {
		p.poll(quit, events, accounts, chainID)
		return nil
	})
	p.sub = sub

	return sub, nil
}

func (p *Provider) poll(quit <-chan struct{}, events ports.WalletEvents, accounts []common.Address, chainID uint64) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
		}

		currentChain, err := p.ChainID(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn("poll wallet chain id", "error", err)
			continue
		}
		if currentChain != chainID {
			p.logger.Info("wallet chain changed", "from", chainID, "to", currentChain)
			p.revokeAll()
			if events.ChainChanged != nil {
				events.ChainChanged(currentChain)
			}
			return
		}

		var current []common.Address
		if err := p.client.CallContext(ctx, &current, "eth_accounts"); err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn("poll wallet accounts", "error", err)
			continue
		}
		if slices.Equal(current, accounts) {
			continue
		}

		p.logger.Info("wallet accounts changed", "count", len(current))
		accounts = current
		if len(current) == 0 {
			p.revokeAll()
		} else {
			p.grant(current)
		}
		if events.AccountsChanged != nil {
			events.AccountsChanged(slices.Clone(current))
		}
	}
}
