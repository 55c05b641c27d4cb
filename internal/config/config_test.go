package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractHex = "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238"

func TestDecodeDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := Decode(New(home))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8545", cfg.RPCURL)
	assert.Equal(t, domain.DefaultDecimals, cfg.Decimals)
	assert.Equal(t, "ETH", cfg.Symbol)
	assert.Equal(t, 2*time.Second, cfg.WalletPollInterval)
	assert.Equal(t, time.Second, cfg.ConfirmPollInterval)
	assert.Equal(t, filepath.Join(home, ".stk", "session.toml"), cfg.SessionPath)
	assert.Equal(t, filepath.Join(home, ".stk", "secrets"), cfg.SecretsDir)
	assert.Equal(t, "127.0.0.1:8645", cfg.ServeListen)
	assert.Equal(t, 5.0, cfg.ServeRateLimit)
	assert.Equal(t, common.Address{}, cfg.ContractAddress)
	assert.Error(t, cfg.RequireContract())
}

func TestLoadReadsConfigFileAndEnv(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".stk"), 0o700))
	require.NoError(t, os.WriteFile(FilePath(home), []byte(
		"[rpc]\nurl = 'http://wallet.local:8545'\n\n[contract]\naddress = '"+contractHex+"'\ndecimals = 6\n",
	), 0o600))
	t.Setenv("STK_LOG_LEVEL", "debug")

	v, err := Load(home)
	require.NoError(t, err)

	cfg, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "http://wallet.local:8545", cfg.RPCURL)
	assert.Equal(t, common.HexToAddress(contractHex), cfg.ContractAddress)
	assert.Equal(t, uint8(6), cfg.Decimals)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.RequireContract())
}

func TestDecodeRejectsInvalidSettings(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		value   any
		wantErr string
	}{
		{name: "address", key: KeyContractAddress, value: "0x1234", wantErr: "is not a hex address"},
		{name: "decimals", key: KeyContractDecimals, value: 78, wantErr: "between 0 and 77"},
		{name: "poll interval", key: KeyWalletPollInterval, value: "0s", wantErr: "wallet.poll_interval must be positive"},
		{name: "confirm interval", key: KeyConfirmPollInterval, value: "-1s", wantErr: "confirm.poll_interval must be positive"},
		{name: "rpc url", key: KeyRPCURL, value: " ", wantErr: "rpc.url is empty"},
		{name: "rate limit", key: KeyServeRateLimit, value: 0, wantErr: "serve.rate_limit must be positive"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := New(t.TempDir())
			v.Set(tc.key, tc.value)

			_, err := Decode(v)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSetValueWritesAndPreservesEntries(t *testing.T) {
	home := t.TempDir()

	require.NoError(t, SetValue(home, KeyContractAddress, contractHex))
	require.NoError(t, SetValue(home, "RPC.URL", "http://wallet.local:8545"))
	require.NoError(t, SetValue(home, KeyContractDecimals, "6"))

	info, err := os.Stat(FilePath(home))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v, err := Load(home)
	require.NoError(t, err)
	cfg, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(contractHex), cfg.ContractAddress)
	assert.Equal(t, "http://wallet.local:8545", cfg.RPCURL)
	assert.Equal(t, uint8(6), cfg.Decimals)
}

func TestSetValueRejectsBadInput(t *testing.T) {
	home := t.TempDir()

	testCases := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown key", key: "wallet.color", value: "blue", wantErr: `unknown config key "wallet.color"`},
		{name: "not an integer", key: KeyContractDecimals, value: "eighteen", wantErr: "is not an integer"},
		{name: "invalid address", key: KeyContractAddress, value: "nope", wantErr: "is not a hex address"},
		{name: "bad duration", key: KeyConfirmPollInterval, value: "0s", wantErr: "must be positive"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := SetValue(home, tc.key, tc.value)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}

	_, err := os.Stat(FilePath(home))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
