package jsonrpc

import (
	"context"
	"math/big"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bnema/staking-cli/internal/adapters/contract/evm"
	"github.com/bnema/staking-cli/internal/adapters/wallet/jsonrpctest"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testContract = common.HexToAddress("0x00000000000000000000000000000000005a4e")
	accountA     = common.HexToAddress("0x0000000000000000000000000000000000000abc")
	accountB     = common.HexToAddress("0x0000000000000000000000000000000000000def")
)

func dialNode(t *testing.T, node *jsonrpctest.Node, opts Options) *Provider {
	t.Helper()

	if opts.PollInterval == 0 {
		opts.PollInterval = 10 * time.Millisecond
	}
	provider, err := Dial(context.Background(), node.URL(), opts)
	require.NoError(t, err)
	t.Cleanup(provider.Close)

	return provider
}

func TestRequestAccountsGrantsSigner(t *testing.T) {
	t.Parallel()

	node := jsonrpctest.NewNode(t, testContract)
	node.SetAccounts(accountA)
	node.SetChainID(11155111)
	provider := dialNode(t, node, Options{})

	_, err := provider.Signer(context.Background(), accountA)
	require.ErrorIs(t, err, domain.ErrNotConnected)

	accounts, err := provider.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{accountA}, accounts)

	chainID, err := provider.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), chainID)

	signer, err := provider.Signer(context.Background(), accountA)
	require.NoError(t, err)
	assert.Equal(t, accountA, signer.Address())

	_, err = provider.Signer(context.Background(), accountB)
	require.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestRequestAccountsClassifiesFailures(t *testing.T) {
	t.Parallel()

	t.Run("declined prompt", func(t *testing.T) {
		t.Parallel()

		node := jsonrpctest.NewNode(t, testContract)
		node.SetAccounts(accountA)
		node.RejectConnect(true)
		provider := dialNode(t, node, Options{})

		_, err := provider.RequestAccounts(context.Background())
		require.Error(t, err)
		assert.Equal(t, domain.ErrorKindUserRejected, domain.KindOf(err))
	})

	t.Run("missing bearer token", func(t *testing.T) {
		t.Parallel()

		node := jsonrpctest.NewNode(t, testContract)
		node.SetAccounts(accountA)
		node.RequireBearer("s3cret")

		provider := dialNode(t, node, Options{})
		_, err := provider.RequestAccounts(context.Background())
		require.Error(t, err)
		assert.Equal(t, domain.ErrorKindProviderUnavailable, domain.KindOf(err))

		authed := dialNode(t, node, Options{Token: "s3cret"})
		accounts, err := authed.RequestAccounts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []common.Address{accountA}, accounts)
	})

	t.Run("nothing listening", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nil)
		url := server.URL
		server.Close()

		provider, err := Dial(context.Background(), url, Options{})
		require.NoError(t, err)
		t.Cleanup(provider.Close)

		_, err = provider.RequestAccounts(context.Background())
		require.Error(t, err)
		assert.Equal(t, domain.ErrorKindProviderUnavailable, domain.KindOf(err))
	})

	t.Run("no endpoint configured", func(t *testing.T) {
		t.Parallel()

		_, err := Dial(context.Background(), "  ", Options{})
		require.ErrorIs(t, err, domain.ErrProviderUnavailable)
		assert.Equal(t, domain.ErrorKindProviderUnavailable, domain.KindOf(err))
	})
}

func TestSignerSendsTransactionToWallet(t *testing.T) {
	t.Parallel()

	node := jsonrpctest.NewNode(t, testContract)
	node.SetAccounts(accountA)
	provider := dialNode(t, node, Options{})

	_, err := provider.RequestAccounts(context.Background())
	require.NoError(t, err)
	signer, err := provider.Signer(context.Background(), accountA)
	require.NoError(t, err)

	parsed, err := abi.JSON(strings.NewReader(evm.StakingABI))
	require.NoError(t, err)
	data, err := parsed.Pack("stake", big.NewInt(5))
	require.NoError(t, err)

	hash, err := signer.SendTransaction(context.Background(), ports.TxRequest{
		To:    testContract,
		Value: big.NewInt(5),
		Data:  data,
	})
	require.NoError(t, err)

	sent := node.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, hash, sent[0].Hash)
	assert.Equal(t, accountA, sent[0].From)
	assert.Equal(t, "stake", sent[0].Method)
	assert.Equal(t, big.NewInt(5), sent[0].Value)
}

func TestSubscribeDeliversAccountAndChainChanges(t *testing.T) {
	t.Parallel()

	node := jsonrpctest.NewNode(t, testContract)
	node.SetAccounts(accountA)
	provider := dialNode(t, node, Options{})

	_, err := provider.RequestAccounts(context.Background())
	require.NoError(t, err)

	accountsCh := make(chan []common.Address, 4)
	chainCh := make(chan uint64, 1)
	sub, err := provider.Subscribe(context.Background(), ports.WalletEvents{
		AccountsChanged: func(accounts []common.Address) { accountsCh <- accounts },
		ChainChanged:    func(chainID uint64) { chainCh <- chainID },
	})
	require.NoError(t, err)

	node.SetAccounts(accountB)
	select {
	case got := <-accountsCh:
		assert.Equal(t, []common.Address{accountB}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("accounts change was not delivered")
	}

	_, err = provider.Signer(context.Background(), accountB)
	require.NoError(t, err)

	node.Lock()
	select {
	case got := <-accountsCh:
		assert.Empty(t, got)
	case <-time.After(2 * time.Second):
		t.Fatal("empty accounts were not delivered")
	}

	node.SetChainID(5)
	select {
	case got := <-chainCh:
		assert.Equal(t, uint64(5), got)
	case <-time.After(2 * time.Second):
		t.Fatal("chain change was not delivered")
	}

	select {
	case _, open := <-sub.Err():
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not end after chain change")
	}
}

func TestSubscribeReplacesPreviousSubscription(t *testing.T) {
	t.Parallel()

	node := jsonrpctest.NewNode(t, testContract)
	node.SetAccounts(accountA)
	provider := dialNode(t, node, Options{})

	first, err := provider.Subscribe(context.Background(), ports.WalletEvents{})
	require.NoError(t, err)
	second, err := provider.Subscribe(context.Background(), ports.WalletEvents{})
	require.NoError(t, err)

	select {
	case _, open := <-first.Err():
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("first subscription still active")
	}

	provider.Close()
	select {
	case <-second.Err():
	case <-time.After(time.Second):
		t.Fatal("close did not end the subscription")
	}
}
