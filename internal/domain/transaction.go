package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

type TxKind string

const (
	TxKindStake   TxKind = "stake"
	TxKindUnstake TxKind = "unstake"
)

func (k TxKind) Valid() bool {
	switch k {
	case TxKindStake, TxKindUnstake:
		return true
	default:
		return false
	}
}

func (k TxKind) Operation() Operation {
	if k == TxKindUnstake {
		return OpUnstake
	}
	return OpStake
}

func ParseTxKind(raw string) (TxKind, error) {
	kind := TxKind(raw)
	if !kind.Valid() {
		return "", fmt.Errorf("unsupported transaction kind %q", raw)
	}
	return kind, nil
}

// PendingTransaction is a write accepted by the wallet and not yet settled.
type PendingTransaction struct {
	Hash   common.Hash `json:"hash"`
	Kind   TxKind      `json:"kind"`
	Amount Amount      `json:"amount"`
}
