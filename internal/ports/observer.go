package ports

import (
	"time"

	"github.com/bnema/staking-cli/internal/domain"
)

// TxObserver is notified about session and transaction outcomes.
type TxObserver interface {
	Submitted(kind domain.TxKind)
	Settled(kind domain.TxKind, outcome domain.ErrorKind, elapsed time.Duration)
	Resynced(outcome domain.ErrorKind)
	SessionChanged(status domain.ConnectionStatus)
}

type NoopObserver struct{}

func (NoopObserver) Submitted(domain.TxKind)                                {}
func (NoopObserver) Settled(domain.TxKind, domain.ErrorKind, time.Duration) {}
func (NoopObserver) Resynced(domain.ErrorKind)                              {}
func (NoopObserver) SessionChanged(domain.ConnectionStatus)                 {}
