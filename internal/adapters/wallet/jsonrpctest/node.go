// Package jsonrpctest runs an in-process wallet endpoint backed by
// go-ethereum's rpc.Server. It answers the wallet and staking contract
// calls the CLI makes and lets tests script rejections and failures.
package jsonrpctest

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/staking-cli/internal/adapters/contract/evm"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	CodeUserRejected = 4001
	CodeServerError  = -32000
	codeReverted     = 3
)

// Error is a JSON-RPC error with an explicit code.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string  { return e.Message }
func (e *Error) ErrorCode() int { return e.Code }

// SentTx records an accepted eth_sendTransaction.
type SentTx struct {
	Hash   common.Hash
	From   common.Address
	Method string
	Amount *big.Int
	Value  *big.Int
}

type Node struct {
	contract common.Address
	abi      abi.ABI
	server   *httptest.Server
	rpc      *rpc.Server

	mu            sync.Mutex
	accounts      []common.Address
	authorized    bool
	chainID       uint64
	totalStaked   *big.Int
	staked        map[common.Address]*big.Int
	rejectConnect bool
	failNextSend  *Error
	failCalls     *Error
	receiptDelay  int
	receipts      map[common.Hash]*types.Receipt
	pendingPolls  map[common.Hash]int
	sent          []SentTx
	token         string
	block         uint64
	calls         map[string]int
}

// NewNode starts a wallet endpoint for the staking contract at contract.
// The server is closed when the test ends.
func NewNode(t testing.TB, contract common.Address) *Node {
	t.Helper()

	parsed, err := abi.JSON(strings.NewReader(evm.StakingABI))
	if err != nil {
		t.Fatalf("parse staking abi: %v", err)
	}

	n := &Node{
		contract:     contract,
		abi:          parsed,
		rpc:          rpc.NewServer(),
		chainID:      1,
		totalStaked:  new(big.Int),
		staked:       make(map[common.Address]*big.Int),
		receipts:     make(map[common.Hash]*types.Receipt),
		pendingPolls: make(map[common.Hash]int),
		calls:        make(map[string]int),
		block:        1,
	}
	if err := n.rpc.RegisterName("eth", &ethService{node: n}); err != nil {
		t.Fatalf("register eth service: %v", err)
	}

	n.server = httptest.NewServer(http.HandlerFunc(n.serveHTTP))
	t.Cleanup(func() {
		n.server.Close()
		n.rpc.Stop()
	})

	return n
}

func (n *Node) URL() string {
	return n.server.URL
}

func (n *Node) serveHTTP(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	token := n.token
	n.mu.Unlock()

	if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	n.rpc.ServeHTTP(w, r)
}

// SetAccounts sets the accounts the wallet exposes once authorized.
func (n *Node) SetAccounts(accounts ...common.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.accounts = append([]common.Address(nil), accounts...)
}

// Lock makes eth_accounts report no accounts until the next
// eth_requestAccounts.
func (n *Node) Lock() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.authorized = false
}

func (n *Node) SetChainID(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.chainID = id
}

// SetStake sets the total staked in the contract and the stake of account.
func (n *Node) SetStake(total *big.Int, account common.Address, user *big.Int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.totalStaked = new(big.Int).Set(total)
	n.staked[account] = new(big.Int).Set(user)
}

func (n *Node) Stake(account common.Address) (total *big.Int, user *big.Int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	return new(big.Int).Set(n.totalStaked), new(big.Int).Set(n.stakeOf(account))
}

// RejectConnect makes eth_requestAccounts fail with code 4001.
func (n *Node) RejectConnect(reject bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.rejectConnect = reject
}

// FailNextSend makes the next eth_sendTransaction fail with the given error.
func (n *Node) FailNextSend(code int, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.failNextSend = &Error{Code: code, Message: message}
}

// FailCalls makes every eth_call fail until cleared with a zero code.
func (n *Node) FailCalls(code int, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if code == 0 {
		n.failCalls = nil
		return
	}
	n.failCalls = &Error{Code: code, Message: message}
}

// SetReceiptDelay makes each new transaction report no receipt for the
// given number of polls.
func (n *Node) SetReceiptDelay(polls int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.receiptDelay = polls
}

// RequireBearer rejects HTTP requests without the bearer token.
func (n *Node) RequireBearer(token string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.token = token
}

func (n *Node) Sent() []SentTx {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]SentTx(nil), n.sent...)
}

// Calls reports how many times an eth_* method was served.
func (n *Node) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.calls[method]
}

func (n *Node) stakeOf(account common.Address) *big.Int {
	if v, ok := n.staked[account]; ok {
		return v
	}
	return new(big.Int)
}

func (n *Node) count(method string) {
	n.calls[method]++
}

func (n *Node) nextHash(from common.Address) common.Hash {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(len(n.sent)))
	return common.Hash(sha256.Sum256(append(from.Bytes(), buf[:]...)))
}

func (n *Node) mine(hash common.Hash, success bool) {
	status := types.ReceiptStatusSuccessful
	if !success {
		status = types.ReceiptStatusFailed
	}

	n.block++
	n.receipts[hash] = &types.Receipt{
		Type:              types.LegacyTxType,
		Status:            status,
		CumulativeGasUsed: 21000,
		GasUsed:           21000,
		Logs:              []*types.Log{},
		TxHash:            hash,
		BlockNumber:       new(big.Int).SetUint64(n.block),
	}
	n.pendingPolls[hash] = n.receiptDelay
}
