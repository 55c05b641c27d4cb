package status

import (
	"testing"
	"time"

	"github.com/bnema/staking-cli/internal/application"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var account = common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7")

func ether(t *testing.T, raw string) domain.Amount {
	t.Helper()

	amount, err := domain.ParseAmount(raw, domain.DefaultDecimals)
	require.NoError(t, err)
	return amount
}

func TestRenderConnectedSession(t *testing.T) {
	now := time.Date(2026, 10, 17, 11, 0, 0, 0, time.UTC)

	output, err := Render(application.View{
		Session: domain.Session{Status: domain.StatusConnected, Account: account, ChainID: 11155111},
		Position: domain.StakePosition{
			TotalStaked: ether(t, "100"),
			UserStaked:  ether(t, "15"),
			SyncedAt:    now.Add(-5 * time.Minute),
		},
		Decimals: domain.DefaultDecimals,
	}, RenderOptions{Now: now, StaleAfter: time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "Staking dApp")
	assert.Contains(t, output, "wallet: 0x5290...9EE7 (chain 11155111)")
	assert.Contains(t, output, "100.0 ETH")
	assert.Contains(t, output, "15.0 ETH")
	assert.Contains(t, output, "15.0%")
	assert.Contains(t, output, "synced: 5 minutes ago")
	assert.NotContains(t, output, "stale")
	assert.NotContains(t, output, "pending")
}

func TestRenderDisconnectedShowsReconnectNotice(t *testing.T) {
	output, err := Render(application.View{
		Session: domain.Session{
			Status:    domain.StatusDisconnected,
			LastError: &domain.Fault{Kind: domain.ErrorKindReconnectRequired, Op: domain.OpDisconnect},
		},
		Position: domain.StakePosition{TotalStaked: ether(t, "100")},
		Decimals: domain.DefaultDecimals,
	}, RenderOptions{Offline: true})

	require.NoError(t, err)
	assert.Contains(t, output, "wallet: not connected [offline]")
	assert.Contains(t, output, "Please connect your wallet to continue.")
	assert.Contains(t, output, "0.0 ETH")
	assert.Contains(t, output, "synced: never")
	assert.NotContains(t, output, "Pool share")
}

func TestRenderMarksStalePosition(t *testing.T) {
	now := time.Date(2026, 10, 17, 11, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		position domain.StakePosition
		want     bool
	}{
		{
			name:     "failed resync",
			position: domain.StakePosition{TotalStaked: ether(t, "1"), SyncedAt: now, Stale: true},
			want:     true,
		},
		{
			name:     "older than threshold",
			position: domain.StakePosition{TotalStaked: ether(t, "1"), SyncedAt: now.Add(-3 * time.Hour)},
			want:     true,
		},
		{
			name:     "fresh",
			position: domain.StakePosition{TotalStaked: ether(t, "1"), SyncedAt: now.Add(-time.Minute)},
			want:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := Render(application.View{
				Session:  domain.Session{Status: domain.StatusConnected, Account: account, ChainID: 1},
				Position: tc.position,
				Decimals: domain.DefaultDecimals,
			}, RenderOptions{Now: now, StaleAfter: time.Hour})
			require.NoError(t, err)

			if tc.want {
				assert.Contains(t, output, "[stale]")
			} else {
				assert.NotContains(t, output, "[stale]")
			}
		})
	}
}

func TestRenderPendingTransactions(t *testing.T) {
	hash := common.HexToHash("0x9f2c4b1d7e0a3c5b8d6f1e2a4c7b9d0e3f5a6b8c1d2e4f6a7b9c0d1e2f3a4b5c")

	output, err := Render(application.View{
		Session:  domain.Session{Status: domain.StatusConnected, Account: account, ChainID: 1},
		Position: domain.StakePosition{TotalStaked: ether(t, "10"), UserStaked: ether(t, "1")},
		Pending:  []domain.PendingTransaction{{Hash: hash, Kind: domain.TxKindStake, Amount: ether(t, "2.5")}},
		Decimals: domain.DefaultDecimals,
	}, RenderOptions{Symbol: "tETH"})

	require.NoError(t, err)
	assert.Contains(t, output, "pending stake 2.5 tETH (0x9f2c4b1d...4b5c)")
	assert.Contains(t, output, "10.0 tETH")
}

func TestFormatSyncedRelative(t *testing.T) {
	now := time.Date(2026, 10, 17, 11, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		syncedAt time.Time
		want     string
	}{
		{name: "seconds", syncedAt: now.Add(-20 * time.Second), want: "just now"},
		{name: "one minute", syncedAt: now.Add(-time.Minute), want: "1 minute ago"},
		{name: "hours", syncedAt: now.Add(-3 * time.Hour), want: "3 hours ago"},
		{name: "days", syncedAt: now.Add(-49 * time.Hour), want: "2 days ago (10:00 on 15 Oct)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatSyncedRelative(tc.syncedAt, now))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.0%", formatPercent(0))
	assert.Equal(t, "<0.1%", formatPercent(0.01))
	assert.Equal(t, "33.3%", formatPercent(33.333))
	assert.Equal(t, "100.0%", formatPercent(140))
}
