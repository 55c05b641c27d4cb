package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bnema/staking-cli/internal/application"
	"github.com/bnema/staking-cli/internal/domain"
)

// SessionResponse is the JSON shape of a session view. Figures are given both
// as decimal display strings and as base-unit integers.
type SessionResponse struct {
	Status          string            `json:"status"`
	Account         string            `json:"account,omitempty"`
	ChainID         uint64            `json:"chain_id,omitempty"`
	TotalStaked     string            `json:"total_staked"`
	UserStaked      string            `json:"user_staked"`
	TotalStakedBase string            `json:"total_staked_base"`
	UserStakedBase  string            `json:"user_staked_base"`
	SyncedAt        *time.Time        `json:"synced_at,omitempty"`
	Stale           bool              `json:"stale"`
	Fault           *domain.Fault     `json:"fault,omitempty"`
	Notice          string            `json:"notice,omitempty"`
	Inputs          map[string]string `json:"inputs"`
	Pending         []PendingResponse `json:"pending"`
}

type PendingResponse struct {
	Hash   string `json:"hash"`
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
}

func NewSessionResponse(view application.View) SessionResponse {
	resp := SessionResponse{
		Status:          string(view.Session.Status),
		ChainID:         view.Session.ChainID,
		TotalStaked:     view.Format(view.Position.TotalStaked),
		UserStaked:      view.Format(view.Position.UserStaked),
		TotalStakedBase: view.Position.TotalStaked.String(),
		UserStakedBase:  view.Position.UserStaked.String(),
		Stale:           view.Position.Stale,
		Fault:           view.Session.LastError,
		Notice:          view.Notice(),
		Inputs: map[string]string{
			string(domain.TxKindStake):   view.StakeInput,
			string(domain.TxKindUnstake): view.UnstakeInput,
		},
		Pending: make([]PendingResponse, 0, len(view.Pending)),
	}
	if view.Session.Connected() {
		resp.Account = view.Session.Account.Hex()
	}
	if !view.Position.SyncedAt.IsZero() {
		syncedAt := view.Position.SyncedAt
		resp.SyncedAt = &syncedAt
	}
	for _, tx := range view.Pending {
		resp.Pending = append(resp.Pending, PendingResponse{
			Hash:   tx.Hash.Hex(),
			Kind:   string(tx.Kind),
			Amount: view.Format(tx.Amount),
		})
	}

	return resp
}

type errorResponse struct {
	Error   string           `json:"error"`
	Kind    domain.ErrorKind `json:"kind,omitempty"`
	Session SessionResponse  `json:"session"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error body with a plain message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func writeActionError(w http.ResponseWriter, err error, view application.View) {
	kind := domain.KindOf(err)
	message := err.Error()
	if fault := view.Session.LastError; fault != nil && fault.Kind == kind {
		message = fault.Message()
	}

	JSON(w, statusFor(err), errorResponse{
		Error:   message,
		Kind:    kind,
		Session: NewSessionResponse(view),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrActionInFlight),
		errors.Is(err, domain.ErrConnectInFlight),
		errors.Is(err, domain.ErrNotConnected):
		return http.StatusConflict
	}

	switch domain.KindOf(err) {
	case domain.ErrorKindInvalidAmount, domain.ErrorKindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case domain.ErrorKindUserRejected:
		return http.StatusConflict
	case domain.ErrorKindProviderUnavailable:
		return http.StatusServiceUnavailable
	case domain.ErrorKindCallFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
