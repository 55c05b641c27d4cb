// Package jsonrpc talks to a wallet exposed as an EIP-1193 style JSON-RPC
// endpoint. Signing stays in the wallet: transactions are submitted with
// eth_sendTransaction.
package jsonrpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bnema/staking-cli/internal/adapters/classify"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	DefaultPollInterval = 2 * time.Second

	codeMethodNotFound = -32601
)

type Options struct {
	// Token is sent as a bearer credential when set.
	Token        string
	PollInterval time.Duration
	Logger       *slog.Logger
}

type Provider struct {
	client       *rpc.Client
	pollInterval time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	granted map[common.Address]struct{}
	closed  bool

	// subMu serializes subscription replacement. It is never taken by the
	// polling goroutine.
	subMu sync.Mutex
	sub   event.Subscription
}

var _ ports.WalletProvider = (*Provider)(nil)

// Dial connects to the wallet endpoint. An empty url means no wallet is
// configured.
func Dial(ctx context.Context, url string, opts Options) (*Provider, error) {
	if strings.TrimSpace(url) == "" {
		return nil, domain.NewFailure(domain.ErrorKindProviderUnavailable, string(domain.OpConnect),
			fmt.Errorf("no wallet endpoint configured: %w", domain.ErrProviderUnavailable))
	}

	var dialOpts []rpc.ClientOption
	if opts.Token != "" {
		dialOpts = append(dialOpts, rpc.WithHeader("Authorization", "Bearer "+opts.Token))
	}

	client, err := rpc.DialOptions(ctx, url, dialOpts...)
	if err != nil {
		return nil, classify.Error(domain.OpConnect, fmt.Errorf("dial wallet endpoint: %w", err))
	}

	return NewProvider(client, opts), nil
}

func NewProvider(client *rpc.Client, opts Options) *Provider {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Provider{
		client:       client,
		pollInterval: interval,
		logger:       logger,
		granted:      make(map[common.Address]struct{}),
	}
}

// RPC exposes the underlying transport so contract reads share the wallet
// connection.
func (p *Provider) RPC() *rpc.Client {
	return p.client
}

func (p *Provider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts")
	if isMethodNotFound(err) {
		err = p.client.CallContext(ctx, &accounts, "eth_accounts")
	}
	if err != nil {
		return nil, classify.Error(domain.OpConnect, fmt.Errorf("request wallet accounts: %w", err))
	}

	p.grant(accounts)
	return accounts, nil
}

func (p *Provider) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Uint64
	if err := p.client.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return 0, classify.Error(domain.OpConnect, fmt.Errorf("read wallet chain id: %w", err))
	}

	return uint64(id), nil
}

func (p *Provider) Signer(_ context.Context, account common.Address) (ports.Signer, error) {
	p.mu.Lock()
	_, ok := p.granted[account]
	closed := p.closed
	p.mu.Unlock()

	if closed {
		return nil, fmt.Errorf("wallet provider closed: %w", domain.ErrProviderUnavailable)
	}
	if !ok {
		return nil, fmt.Errorf("account %s not authorized by wallet: %w", account.Hex(), domain.ErrNotConnected)
	}

	return &signer{client: p.client, account: account}, nil
}

// Close drops the active subscription and the transport.
func (p *Provider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.subMu.Lock()
	sub := p.sub
	p.sub = nil
	p.subMu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	p.client.Close()
}

func (p *Provider) grant(accounts []common.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, account := range accounts {
		p.granted[account] = struct{}{}
	}
}

func (p *Provider) revokeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	clear(p.granted)
}

func isMethodNotFound(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeMethodNotFound
}
