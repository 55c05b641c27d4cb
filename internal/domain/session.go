package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusConnecting   ConnectionStatus = "connecting"
	StatusConnected    ConnectionStatus = "connected"
)

// Session is the live wallet connection state. Account is the zero address
// unless Status is StatusConnected.
type Session struct {
	Status    ConnectionStatus `json:"status"`
	Account   common.Address   `json:"account"`
	ChainID   uint64           `json:"chain_id,omitempty"`
	LastError *Fault           `json:"last_error,omitempty"`
}

func NewSession() Session {
	return Session{Status: StatusDisconnected}
}

func (s Session) Connected() bool {
	return s.Status == StatusConnected && s.Account != (common.Address{})
}

// ShortAccount renders the account as 0x1234...abcd.
func (s Session) ShortAccount() string {
	if s.Account == (common.Address{}) {
		return ""
	}

	hex := s.Account.Hex()
	return hex[:6] + "..." + hex[len(hex)-4:]
}

// SessionRecord is the persisted form of a session and its last position.
type SessionRecord struct {
	Session   Session
	Position  StakePosition
	UpdatedAt time.Time
}

// UserDisconnected reports whether the record ends in a user-initiated
// disconnect that has not been followed by a new connect.
func (r SessionRecord) UserDisconnected() bool {
	return r.Session.Status == StatusDisconnected &&
		r.Session.LastError != nil &&
		r.Session.LastError.Kind == ErrorKindReconnectRequired
}
