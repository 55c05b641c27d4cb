package domain

import (
	"math/big"
	"time"
)

// StakePosition is replaced as a whole after every successful resync.
type StakePosition struct {
	TotalStaked Amount    `json:"total_staked"`
	UserStaked  Amount    `json:"user_staked"`
	SyncedAt    time.Time `json:"synced_at,omitempty"`
	// Stale is set when the latest resync failed and the figures may lag.
	Stale bool `json:"stale,omitempty"`
}

func (p StakePosition) IsZero() bool {
	return p.TotalStaked.IsZero() && p.UserStaked.IsZero()
}

// IsOlderThan reports whether the position was last synced more than maxAge
// before now. A never-synced position is always old; maxAge <= 0 disables
// the age check.
func (p StakePosition) IsOlderThan(now time.Time, maxAge time.Duration) bool {
	if p.SyncedAt.IsZero() {
		return true
	}

	if maxAge <= 0 {
		return false
	}

	return now.Sub(p.SyncedAt) > maxAge
}

// SharePercent is the user's share of the total stake in percent.
func (p StakePosition) SharePercent() float64 {
	if p.TotalStaked.IsZero() {
		return 0
	}

	total := new(big.Float).SetInt(p.TotalStaked.Big())
	user := new(big.Float).SetInt(p.UserStaked.Big())
	share, _ := new(big.Float).Quo(user, total).Float64()

	return share * 100
}
