package application

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
	"github.com/bnema/staking-cli/internal/ports/mocks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	accountA = common.HexToAddress("0x0000000000000000000000000000000000000abc")
	accountB = common.HexToAddress("0x0000000000000000000000000000000000000def")
	syncTime = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
)

func mockAnyContext() interface{} {
	return mock.Anything
}

func ether(t *testing.T, n int64) domain.Amount {
	t.Helper()

	wei := new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	amount, err := domain.AmountFromBig(wei)
	require.NoError(t, err)
	return amount
}

// fakeGateway is an in-memory staking contract. Hooks run outside its lock
// so tests can park a call.
type fakeGateway struct {
	mu            sync.Mutex
	total         domain.Amount
	staked        map[common.Address]domain.Amount
	readErr       error
	submitErr     error
	confirmErr    error
	beforeRead    func()
	beforeConfirm func()
	submitted     []domain.PendingTransaction
	reads         int
	nextHash      byte
}

var _ ports.StakingGateway = (*fakeGateway)(nil)

func newFakeGateway(total domain.Amount, account common.Address, user domain.Amount) *fakeGateway {
	return &fakeGateway{
		total:  total,
		staked: map[common.Address]domain.Amount{account: user},
	}
}

func (g *fakeGateway) TotalStaked(context.Context) (domain.Amount, error) {
	g.mu.Lock()
	hook := g.beforeRead
	g.mu.Unlock()
	if hook != nil {
		hook()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.reads++
	if g.readErr != nil {
		return domain.Amount{}, g.readErr
	}
	return g.total, nil
}

func (g *fakeGateway) UserStaked(_ context.Context, account common.Address) (domain.Amount, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.readErr != nil {
		return domain.Amount{}, g.readErr
	}
	return g.staked[account], nil
}

func (g *fakeGateway) SubmitStake(_ context.Context, amount domain.Amount) (domain.PendingTransaction, error) {
	return g.submit(domain.TxKindStake, amount)
}

func (g *fakeGateway) SubmitUnstake(_ context.Context, amount domain.Amount) (domain.PendingTransaction, error) {
	return g.submit(domain.TxKindUnstake, amount)
}

func (g *fakeGateway) submit(kind domain.TxKind, amount domain.Amount) (domain.PendingTransaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.submitErr != nil {
		return domain.PendingTransaction{}, g.submitErr
	}

	g.nextHash++
	tx := domain.PendingTransaction{Hash: common.BytesToHash([]byte{g.nextHash}), Kind: kind, Amount: amount}
	g.submitted = append(g.submitted, tx)
	return tx, nil
}

// AwaitConfirmation settles the write against the in-memory balances.
func (g *fakeGateway) AwaitConfirmation(ctx context.Context, tx domain.PendingTransaction) error {
	g.mu.Lock()
	hook := g.beforeConfirm
	g.mu.Unlock()
	if hook != nil {
		hook()
	}

	if err := ctx.Err(); err != nil {
		return domain.NewFailure(domain.ErrorKindCallFailed, string(tx.Kind.Operation()), err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.confirmErr != nil {
		return g.confirmErr
	}

	account := accountA
	switch tx.Kind {
	case domain.TxKindStake:
		g.total = g.total.Add(tx.Amount)
		g.staked[account] = g.staked[account].Add(tx.Amount)
	case domain.TxKindUnstake:
		total := new(big.Int).Sub(g.total.Big(), tx.Amount.Big())
		user := new(big.Int).Sub(g.staked[account].Big(), tx.Amount.Big())
		g.total, _ = domain.AmountFromBig(total)
		g.staked[account], _ = domain.AmountFromBig(user)
	}
	return nil
}

func (g *fakeGateway) submissions() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.submitted)
}

func (g *fakeGateway) set(apply func(g *fakeGateway)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	apply(g)
}

type core struct {
	provider     *mocks.MockWalletProvider
	binder       *mocks.MockGatewayBinder
	session      *SessionService
	orchestrator *TxOrchestrator
	controller   *Controller
}

func newCore(t *testing.T, opts SessionOptions) core {
	t.Helper()

	provider := mocks.NewMockWalletProvider(t)
	binder := mocks.NewMockGatewayBinder(t)
	if opts.Clock == nil {
		clock := mocks.NewMockClock(t)
		clock.EXPECT().Now().Return(syncTime).Maybe()
		opts.Clock = clock
	}

	session := NewSessionService(provider, binder, opts)
	orchestrator := NewTxOrchestrator(session, OrchestratorOptions{Clock: opts.Clock})

	return core{
		provider:     provider,
		binder:       binder,
		session:      session,
		orchestrator: orchestrator,
		controller:   NewController(session, orchestrator),
	}
}

// expectConnect scripts one successful wallet connect for account bound to
// gateway.
func (c core) expectConnect(t *testing.T, account common.Address, gateway ports.StakingGateway) {
	t.Helper()

	signer := mocks.NewMockSigner(t)
	c.provider.EXPECT().RequestAccounts(mockAnyContext()).Return([]common.Address{account}, nil).Once()
	c.provider.EXPECT().ChainID(mockAnyContext()).Return(uint64(11155111), nil).Once()
	c.provider.EXPECT().Signer(mockAnyContext(), account).Return(signer, nil).Once()
	c.binder.EXPECT().Bind(signer).Return(gateway, nil).Once()
}

func newConnectedCore(t *testing.T, gateway *fakeGateway) core {
	t.Helper()

	c := newCore(t, SessionOptions{})
	c.expectConnect(t, accountA, gateway)
	require.NoError(t, c.controller.Connect(context.Background()))
	return c
}
