package domain

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestSessionConnectedRequiresAccount(t *testing.T) {
	t.Parallel()

	account := common.HexToAddress("0x00000000000000000000000000000000000ABC")

	assert.False(t, NewSession().Connected())
	assert.False(t, Session{Status: StatusConnected}.Connected())
	assert.False(t, Session{Status: StatusConnecting, Account: account}.Connected())
	assert.True(t, Session{Status: StatusConnected, Account: account}.Connected())
}

func TestSessionShortAccount(t *testing.T) {
	t.Parallel()

	s := Session{Status: StatusConnected, Account: common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7")}
	assert.Equal(t, "0x5290...9EE7", s.ShortAccount())
	assert.Empty(t, NewSession().ShortAccount())
}

func TestSessionRecordUserDisconnected(t *testing.T) {
	t.Parallel()

	record := SessionRecord{Session: Session{
		Status:    StatusDisconnected,
		LastError: &Fault{Kind: ErrorKindReconnectRequired, Op: OpDisconnect},
	}}
	assert.True(t, record.UserDisconnected())

	record.Session.LastError = &Fault{Kind: ErrorKindUserRejected, Op: OpConnect}
	assert.False(t, record.UserDisconnected())
}

func TestStakePositionAge(t *testing.T) {
	t.Parallel()

	syncedAt := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	p := StakePosition{SyncedAt: syncedAt}

	assert.False(t, p.IsOlderThan(syncedAt.Add(time.Minute), 5*time.Minute))
	assert.True(t, p.IsOlderThan(syncedAt.Add(6*time.Minute), 5*time.Minute))
	assert.False(t, p.IsOlderThan(syncedAt.Add(24*time.Hour), 0))
	assert.True(t, StakePosition{}.IsOlderThan(syncedAt, time.Minute))
}

func TestStakePositionSharePercent(t *testing.T) {
	t.Parallel()

	p := StakePosition{TotalStaked: AmountFromUint64(200), UserStaked: AmountFromUint64(50)}
	assert.InDelta(t, 25.0, p.SharePercent(), 0.0001)
	assert.Zero(t, StakePosition{}.SharePercent())
}
