package jsonrpc

import (
	"context"
	"fmt"

	"github.com/bnema/staking-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

type signer struct {
	client  *rpc.Client
	account common.Address
}

type sendTxArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to,omitempty"`
	Value *hexutil.Big    `json:"value,omitempty"`
	Data  hexutil.Bytes   `json:"data,omitempty"`
}

func (s *signer) Address() common.Address {
	return s.account
}

func (s *signer) SendTransaction(ctx context.Context, tx ports.TxRequest) (common.Hash, error) {
	to := tx.To
	args := sendTxArgs{From: s.account, To: &to, Data: tx.Data}
	if tx.Value != nil && tx.Value.Sign() > 0 {
		args.Value = (*hexutil.Big)(tx.Value)
	}

	var hash common.Hash
	if err := s.client.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, fmt.Errorf("eth_sendTransaction: %w", err)
	}

	return hash, nil
}
