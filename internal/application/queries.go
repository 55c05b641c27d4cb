package application

import (
	"github.com/bnema/staking-cli/internal/domain"
)

// View is everything presentation needs to render the session.
type View struct {
	Session      domain.Session
	Position     domain.StakePosition
	StakeInput   string
	UnstakeInput string
	Pending      []domain.PendingTransaction
	Decimals     uint8
}

// Notice is the user-facing text for the latest fault, if any.
func (v View) Notice() string {
	if v.Session.LastError == nil {
		return ""
	}
	return v.Session.LastError.Message()
}

func (v View) Format(amount domain.Amount) string {
	return amount.Format(v.Decimals)
}
