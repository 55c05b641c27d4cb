package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "STK"
	configDir  = ".stk"
	configName = "config"
	configType = "toml"
)

const (
	KeyRPCURL              = "rpc.url"
	KeyContractAddress     = "contract.address"
	KeyContractDecimals    = "contract.decimals"
	KeyContractSymbol      = "contract.symbol"
	KeyWalletPollInterval  = "wallet.poll_interval"
	KeyConfirmPollInterval = "confirm.poll_interval"
	KeySessionPath         = "session.path"
	KeySecretsDir          = "secrets.dir"
	KeyLogPath             = "log.path"
	KeyLogLevel            = "log.level"
	KeyServeListen         = "serve.listen"
	KeyServeRateLimit      = "serve.rate_limit"
	KeyStatusStaleAfter    = "status.stale_after"
)

// Keys lists every setting in display order.
var Keys = []string{
	KeyRPCURL,
	KeyContractAddress,
	KeyContractDecimals,
	KeyContractSymbol,
	KeyWalletPollInterval,
	KeyConfirmPollInterval,
	KeySessionPath,
	KeySecretsDir,
	KeyLogPath,
	KeyLogLevel,
	KeyServeListen,
	KeyServeRateLimit,
	KeyStatusStaleAfter,
}

type Config struct {
	RPCURL              string
	ContractAddress     common.Address
	Decimals            uint8
	Symbol              string
	WalletPollInterval  time.Duration
	ConfirmPollInterval time.Duration
	SessionPath         string
	SecretsDir          string
	LogPath             string
	LogLevel            string
	ServeListen         string
	ServeRateLimit      float64
	StatusStaleAfter    time.Duration
}

// Dir is the per-user directory holding config, session and logs.
func Dir(home string) string {
	return filepath.Join(home, configDir)
}

// FilePath is the location of config.toml under home.
func FilePath(home string) string {
	return filepath.Join(Dir(home), configName+"."+configType)
}

// New returns a viper instance with defaults, env binding and the config
// search path set, without reading anything.
func New(home string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(Dir(home))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dir := Dir(home)
	v.SetDefault(KeyRPCURL, "http://127.0.0.1:8545")
	v.SetDefault(KeyContractAddress, "")
	v.SetDefault(KeyContractDecimals, domain.DefaultDecimals)
	v.SetDefault(KeyContractSymbol, "ETH")
	v.SetDefault(KeyWalletPollInterval, "2s")
	v.SetDefault(KeyConfirmPollInterval, "1s")
	v.SetDefault(KeySessionPath, filepath.Join(dir, "session.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeyLogPath, filepath.Join(dir, "stk.log"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyServeListen, "127.0.0.1:8645")
	v.SetDefault(KeyServeRateLimit, 5.0)
	v.SetDefault(KeyStatusStaleAfter, "10m")

	return v
}

// Load reads ./.env when present, then config.toml under home. A missing
// config file is not an error.
func Load(home string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := New(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// Decode converts the raw settings and validates them.
func Decode(v *viper.Viper) (Config, error) {
	decimals := v.GetInt(KeyContractDecimals)
	if decimals < 0 || decimals > int(domain.MaxDecimals) {
		return Config{}, fmt.Errorf("%s must be between 0 and %d, got %d", KeyContractDecimals, domain.MaxDecimals, decimals)
	}

	cfg := Config{
		RPCURL:              strings.TrimSpace(v.GetString(KeyRPCURL)),
		Decimals:            uint8(decimals),
		Symbol:              strings.TrimSpace(v.GetString(KeyContractSymbol)),
		WalletPollInterval:  v.GetDuration(KeyWalletPollInterval),
		ConfirmPollInterval: v.GetDuration(KeyConfirmPollInterval),
		SessionPath:         v.GetString(KeySessionPath),
		SecretsDir:          v.GetString(KeySecretsDir),
		LogPath:             v.GetString(KeyLogPath),
		LogLevel:            v.GetString(KeyLogLevel),
		ServeListen:         v.GetString(KeyServeListen),
		ServeRateLimit:      v.GetFloat64(KeyServeRateLimit),
		StatusStaleAfter:    v.GetDuration(KeyStatusStaleAfter),
	}

	address := strings.TrimSpace(v.GetString(KeyContractAddress))
	if address != "" {
		if !common.IsHexAddress(address) {
			return Config{}, fmt.Errorf("%s %q is not a hex address", KeyContractAddress, address)
		}
		cfg.ContractAddress = common.HexToAddress(address)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings every command relies on. The contract
// address is checked separately by RequireContract.
func (c Config) Validate() error {
	var errs []error
	if c.RPCURL == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeyRPCURL))
	}
	if c.Decimals > domain.MaxDecimals {
		errs = append(errs, fmt.Errorf("%s must be at most %d", KeyContractDecimals, domain.MaxDecimals))
	}
	if c.WalletPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyWalletPollInterval))
	}
	if c.ConfirmPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyConfirmPollInterval))
	}
	if strings.TrimSpace(c.SessionPath) == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeySessionPath))
	}
	if strings.TrimSpace(c.SecretsDir) == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeySecretsDir))
	}
	if c.ServeRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyServeRateLimit))
	}
	if c.StatusStaleAfter < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyStatusStaleAfter))
	}

	return errors.Join(errs...)
}

func (c Config) RequireContract() error {
	if c.ContractAddress == (common.Address{}) {
		return fmt.Errorf("%s is not set; run `stk config set %s <address>` or export %s_CONTRACT_ADDRESS", KeyContractAddress, KeyContractAddress, EnvPrefix)
	}
	return nil
}
