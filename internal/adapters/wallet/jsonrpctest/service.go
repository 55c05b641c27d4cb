package jsonrpctest

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// ethService is registered under the "eth" namespace; method names map to
// eth_requestAccounts, eth_accounts and so on.
type ethService struct {
	node *Node
}

type CallArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Value *hexutil.Big    `json:"value"`
	Data  *hexutil.Bytes  `json:"data"`
	Input *hexutil.Bytes  `json:"input"`
}

func (a CallArgs) payload() []byte {
	if a.Input != nil {
		return *a.Input
	}
	if a.Data != nil {
		return *a.Data
	}
	return nil
}

func (s *ethService) RequestAccounts() ([]common.Address, error) {
	n := s.node
	n.mu.Lock()
	defer n.mu.Unlock()

	n.count("eth_requestAccounts")
	if n.rejectConnect {
		return nil, &Error{Code: CodeUserRejected, Message: "User rejected the request."}
	}

	n.authorized = true
	return append([]common.Address{}, n.accounts...), nil
}

func (s *ethService) Accounts() []common.Address {
	n := s.node
	n.mu.Lock()
	defer n.mu.Unlock()

	n.count("eth_accounts")
	if !n.authorized {
		return []common.Address{}
	}
	return append([]common.Address{}, n.accounts...)
}

func (s *ethService) ChainId() hexutil.Uint64 {
	n := s.node
	n.mu.Lock()
	defer n.mu.Unlock()

	n.count("eth_chainId")
	return hexutil.Uint64(n.chainID)
}

func (s *ethService) Call(args CallArgs, _ *string) (hexutil.Bytes, error) {
	n := s.node
	n.mu.Lock()
	defer n.mu.Unlock()

	n.count("eth_call")
	if n.failCalls != nil {
		return nil, n.failCalls
	}
	if args.To == nil || *args.To != n.contract {
		return hexutil.Bytes{}, nil
	}

	data := args.payload()
	if len(data) < 4 {
		return nil, reverted("missing selector")
	}
	method, err := n.abi.MethodById(data[:4])
	if err != nil {
		return nil, reverted("unknown selector")
	}

	switch method.Name {
	case "totalStaked":
		return method.Outputs.Pack(new(big.Int).Set(n.totalStaked))
	case "stakedBalances":
		inputs, err := method.Inputs.Unpack(data[4:])
		if err != nil {
			return nil, reverted("bad arguments")
		}
		account, _ := inputs[0].(common.Address)
		return method.Outputs.Pack(new(big.Int).Set(n.stakeOf(account)))
	default:
		return nil, reverted("not a view function")
	}
}

func (s *ethService) SendTransaction(args CallArgs) (common.Hash, error) {
	n := s.node
	n.mu.Lock()
	defer n.mu.Unlock()

	n.count("eth_sendTransaction")
	if fail := n.failNextSend; fail != nil {
		n.failNextSend = nil
		return common.Hash{}, fail
	}
	if args.From == nil || !n.authorized || !n.hasAccount(*args.From) {
		return common.Hash{}, &Error{Code: 4100, Message: "The requested account has not been authorized by the user."}
	}
	if args.To == nil || *args.To != n.contract {
		return common.Hash{}, errors.New("unexpected recipient")
	}

	data := args.payload()
	if len(data) < 4 {
		return common.Hash{}, reverted("missing selector")
	}
	method, err := n.abi.MethodById(data[:4])
	if err != nil {
		return common.Hash{}, reverted("unknown selector")
	}
	inputs, err := method.Inputs.Unpack(data[4:])
	if err != nil || len(inputs) != 1 {
		return common.Hash{}, reverted("bad arguments")
	}
	amount, _ := inputs[0].(*big.Int)

	value := new(big.Int)
	if args.Value != nil {
		value = args.Value.ToInt()
	}

	from := *args.From
	hash := n.nextHash(from)
	success := true

	switch method.Name {
	case "stake":
		if value.Cmp(amount) != 0 {
			success = false
			break
		}
		n.staked[from] = new(big.Int).Add(n.stakeOf(from), amount)
		n.totalStaked = new(big.Int).Add(n.totalStaked, amount)
	case "unstake":
		if n.stakeOf(from).Cmp(amount) < 0 {
			success = false
			break
		}
		n.staked[from] = new(big.Int).Sub(n.stakeOf(from), amount)
		n.totalStaked = new(big.Int).Sub(n.totalStaked, amount)
	default:
		return common.Hash{}, reverted("not a write function")
	}

	n.sent = append(n.sent, SentTx{
		Hash:   hash,
		From:   from,
		Method: method.Name,
		Amount: new(big.Int).Set(amount),
		Value:  new(big.Int).Set(value),
	})
	n.mine(hash, success)

	return hash, nil
}

func (s *ethService) GetTransactionReceipt(hash common.Hash) (*types.Receipt, error) {
	n := s.node
	n.mu.Lock()
	defer n.mu.Unlock()

	n.count("eth_getTransactionReceipt")
	receipt, ok := n.receipts[hash]
	if !ok {
		return nil, nil
	}
	if n.pendingPolls[hash] > 0 {
		n.pendingPolls[hash]--
		return nil, nil
	}
	return receipt, nil
}

func (n *Node) hasAccount(account common.Address) bool {
	for _, candidate := range n.accounts {
		if candidate == account {
			return true
		}
	}
	return false
}

func reverted(reason string) error {
	return &Error{Code: codeReverted, Message: "execution reverted: " + reason}
}
