package domain

import "errors"

var (
	ErrNotConnected        = errors.New("wallet not connected")
	ErrConnectInFlight     = errors.New("wallet connection already in progress")
	ErrActionInFlight      = errors.New("transaction of this kind already pending")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrProviderUnavailable = errors.New("wallet provider unavailable")
	ErrReverted            = errors.New("transaction reverted")
	ErrSessionNotFound     = errors.New("session record not found")
	ErrSecretNotFound      = errors.New("secret not found")
)
