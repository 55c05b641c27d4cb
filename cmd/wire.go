package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bnema/staking-cli/internal/adapters/contract/evm"
	"github.com/bnema/staking-cli/internal/adapters/logging"
	"github.com/bnema/staking-cli/internal/adapters/metrics"
	statusadapter "github.com/bnema/staking-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/staking-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/staking-cli/internal/adapters/secrets/chain"
	"github.com/bnema/staking-cli/internal/adapters/wallet/jsonrpc"
	"github.com/bnema/staking-cli/internal/application"
	"github.com/bnema/staking-cli/internal/config"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type app struct {
	config       config.Config
	logger       *slog.Logger
	closeLog     func() error
	repo         *tomlrepo.Repository
	credentials  *application.CredentialService
	registry     *prometheus.Registry
	observer     *metrics.Observer
	viewRenderer func(application.View, statusadapter.RenderOptions) (string, error)
	now          func() time.Time
}

// liveSession is one wallet connection and the core built on it.
type liveSession struct {
	controller *application.Controller
	provider   *jsonrpc.Provider
}

func (s *liveSession) Close() {
	s.controller.Close()
	s.provider.Close()
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	settings, err := config.Load(homeDir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Decode(settings)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := logging.Setup(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewRepository(settings)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &app{
		config:       cfg,
		logger:       logger,
		closeLog:     closeLog,
		repo:         repo,
		credentials:  application.NewCredentialService(secretStore),
		registry:     registry,
		observer:     metrics.New(registry),
		viewRenderer: statusadapter.Render,
		now:          time.Now,
	}, nil
}

func (a *app) close() {
	if err := a.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "close log: %v\n", err)
	}
}

// openSession dials the wallet endpoint and builds the session core. The
// reloader may be nil for one-shot commands.
func (a *app) openSession(ctx context.Context, reloader ports.HostReloader) (*liveSession, error) {
	if err := a.config.RequireContract(); err != nil {
		return nil, err
	}

	token, err := a.credentials.Token(ctx, a.config.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("load rpc token: %w", err)
	}

	provider, err := jsonrpc.Dial(ctx, a.config.RPCURL, jsonrpc.Options{
		Token:        token,
		PollInterval: a.config.WalletPollInterval,
		Logger:       a.logger.With("component", "wallet"),
	})
	if err != nil {
		return nil, err
	}

	binder, err := evm.NewBinder(ethclient.NewClient(provider.RPC()), a.config.ContractAddress, evm.Options{
		ConfirmPollInterval: a.config.ConfirmPollInterval,
		Logger:              a.logger.With("component", "contract"),
	})
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("bind staking contract: %w", err)
	}

	session := application.NewSessionService(provider, binder, application.SessionOptions{
		Repo:     a.repo,
		Reloader: reloader,
		Observer: a.observer,
		Clock:    ports.SystemClock{},
		Logger:   a.logger.With("component", "session"),
	})
	orchestrator := application.NewTxOrchestrator(session, application.OrchestratorOptions{
		Decimals: a.config.Decimals,
		Observer: a.observer,
		Clock:    ports.SystemClock{},
		Logger:   a.logger.With("component", "tx"),
	})

	return &liveSession{
		controller: application.NewController(session, orchestrator),
		provider:   provider,
	}, nil
}

// verifyToken checks that the endpoint answers eth_chainId with token.
func (a *app) verifyToken(ctx context.Context, endpoint, token string) error {
	provider, err := jsonrpc.Dial(ctx, endpoint, jsonrpc.Options{Token: token, Logger: a.logger})
	if err != nil {
		return err
	}
	defer provider.Close()

	if _, err := provider.ChainID(ctx); err != nil {
		return fmt.Errorf("query chain id: %w", err)
	}
	return nil
}

func (a *app) renderOptions(staleAfter time.Duration, offline bool) statusadapter.RenderOptions {
	return statusadapter.RenderOptions{
		Now:        a.now(),
		StaleAfter: staleAfter,
		Symbol:     a.config.Symbol,
		Offline:    offline,
	}
}

// offlineView reads the persisted record without touching the network.
func (a *app) offlineView(ctx context.Context) (application.View, error) {
	view := application.View{
		Session:      domain.NewSession(),
		StakeInput:   application.DefaultInput,
		UnstakeInput: application.DefaultInput,
		Decimals:     a.config.Decimals,
	}

	record, err := a.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return view, nil
		}
		return application.View{}, fmt.Errorf("load session: %w", err)
	}

	view.Session = record.Session
	view.Position = record.Position
	return view, nil
}
