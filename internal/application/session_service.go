package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/bnema/staking-cli/internal/application"

type SessionOptions struct {
	Repo     ports.SessionRepository
	Reloader ports.HostReloader
	Observer ports.TxObserver
	Clock    ports.Clock
	Logger   *slog.Logger
}

// SessionService owns the wallet session, the cached stake position and
// the contract binding. No lock is held across provider or contract calls.
type SessionService struct {
	provider ports.WalletProvider
	binder   ports.GatewayBinder
	repo     ports.SessionRepository
	reloader ports.HostReloader
	observer ports.TxObserver
	clock    ports.Clock
	logger   *slog.Logger
	tracer   trace.Tracer

	mu       sync.Mutex
	session  domain.Session
	position domain.StakePosition
	gateway  ports.StakingGateway
	// epoch changes whenever the binding is invalidated; work started under
	// an older epoch is discarded.
	epoch      uint64
	nextTicket uint64
	applied    uint64
	revision   uint64

	persistMu sync.Mutex
	saved     uint64

	watchMu     sync.Mutex
	sub         event.Subscription
	watchCancel context.CancelFunc
}

func NewSessionService(provider ports.WalletProvider, binder ports.GatewayBinder, opts SessionOptions) *SessionService {
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Observer == nil {
		opts.Observer = ports.NoopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SessionService{
		provider: provider,
		binder:   binder,
		repo:     opts.Repo,
		reloader: opts.Reloader,
		observer: opts.Observer,
		clock:    opts.Clock,
		logger:   opts.Logger,
		tracer:   otel.Tracer(tracerName),
		session:  domain.NewSession(),
	}
}

// Snapshot returns copies of the session and position.
func (s *SessionService) Snapshot() (domain.Session, domain.StakePosition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session
	if session.LastError != nil {
		fault := *session.LastError
		session.LastError = &fault
	}

	return session, s.position
}

// Restore seeds the session from the persisted record so a previous user
// disconnect keeps its reconnect notice. It returns the record, or
// domain.ErrSessionNotFound.
func (s *SessionService) Restore(ctx context.Context) (domain.SessionRecord, error) {
	if s.repo == nil {
		return domain.SessionRecord{}, domain.ErrSessionNotFound
	}

	record, err := s.repo.Load(ctx)
	if err != nil {
		return domain.SessionRecord{}, err
	}

	if record.UserDisconnected() {
		s.mu.Lock()
		if s.session.Status == domain.StatusDisconnected {
			fault := *record.Session.LastError
			s.session.LastError = &fault
		}
		s.mu.Unlock()
	}

	return record, nil
}

// Connect asks the wallet for accounts, binds the contract and resyncs. It
// is a no-op while connected and refused while another connect runs.
func (s *SessionService) Connect(ctx context.Context) error {
	s.mu.Lock()
	switch s.session.Status {
	case domain.StatusConnected:
		s.mu.Unlock()
		return nil
	case domain.StatusConnecting:
		s.mu.Unlock()
		return domain.ErrConnectInFlight
	}
	s.epoch++
	epoch := s.epoch
	s.session = domain.Session{Status: domain.StatusConnecting}
	s.position = domain.StakePosition{}
	s.gateway = nil
	s.revision++
	s.mu.Unlock()
	s.changed(ctx, domain.StatusConnecting)

	ctx, span := s.tracer.Start(ctx, "session.connect")
	defer span.End()

	account, chainID, gateway, err := s.establish(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "connect failed")
		return s.failConnect(ctx, epoch, err)
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		s.logger.Info("discard superseded connect", "account", account.Hex())
		return fmt.Errorf("connect wallet: superseded: %w", domain.ErrNotConnected)
	}
	s.session = domain.Session{Status: domain.StatusConnected, Account: account, ChainID: chainID}
	s.gateway = gateway
	s.revision++
	s.mu.Unlock()

	span.SetAttributes(attribute.String("account", account.Hex()), attribute.Int64("chain_id", int64(chainID)))
	s.logger.Info("wallet connected", "account", account.Hex(), "chain_id", chainID)
	s.changed(ctx, domain.StatusConnected)

	if err := s.Resync(ctx); err != nil && !errors.Is(err, domain.ErrNotConnected) {
		s.logger.Warn("initial resync failed", "error", err)
	}

	return nil
}

func (s *SessionService) establish(ctx context.Context) (common.Address, uint64, ports.StakingGateway, error) {
	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		return common.Address{}, 0, nil, err
	}
	if len(accounts) == 0 {
		return common.Address{}, 0, nil, domain.NewFailure(domain.ErrorKindUserRejected, string(domain.OpConnect),
			errors.New("wallet returned no accounts"))
	}
	account := accounts[0]

	chainID, err := s.provider.ChainID(ctx)
	if err != nil {
		return common.Address{}, 0, nil, err
	}

	gateway, err := s.bind(ctx, account)
	if err != nil {
		return common.Address{}, 0, nil, err
	}

	return account, chainID, gateway, nil
}

func (s *SessionService) bind(ctx context.Context, account common.Address) (ports.StakingGateway, error) {
	signer, err := s.provider.Signer(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("get wallet signer: %w", err)
	}

	gateway, err := s.binder.Bind(signer)
	if err != nil {
		return nil, fmt.Errorf("bind staking contract: %w", err)
	}

	return gateway, nil
}

func (s *SessionService) failConnect(ctx context.Context, epoch uint64, err error) error {
	kind := domain.KindOf(err)

	s.mu.Lock()
	if s.epoch == epoch {
		s.session = domain.Session{
			Status:    domain.StatusDisconnected,
			LastError: &domain.Fault{Kind: kind, Op: domain.OpConnect},
		}
		s.gateway = nil
		s.revision++
	}
	s.mu.Unlock()

	s.logger.Warn("wallet connect failed", "kind", kind, "error", err)
	s.changed(ctx, domain.StatusDisconnected)

	return fmt.Errorf("connect wallet: %w", err)
}

// Disconnect drops the session on user request. The wallet itself stays
// authorized; the informational reconnect notice is recorded.
func (s *SessionService) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	s.epoch++
	s.session = domain.Session{
		Status:    domain.StatusDisconnected,
		LastError: &domain.Fault{Kind: domain.ErrorKindReconnectRequired, Op: domain.OpDisconnect},
	}
	s.position = domain.StakePosition{}
	s.gateway = nil
	s.revision++
	s.mu.Unlock()

	s.logger.Info("wallet disconnected by user")
	s.changed(ctx, domain.StatusDisconnected)

	return nil
}

// HandleAccountsChanged applies a wallet account notification. An empty
// list always forces a disconnect; a new account while connected rebinds the
// contract and resyncs.
func (s *SessionService) HandleAccountsChanged(ctx context.Context, accounts []common.Address) error {
	if len(accounts) == 0 {
		s.mu.Lock()
		s.epoch++
		s.session = domain.Session{
			Status:    domain.StatusDisconnected,
			LastError: &domain.Fault{Kind: domain.ErrorKindReconnectRequired, Op: domain.OpDisconnect},
		}
		s.position = domain.StakePosition{}
		s.gateway = nil
		s.revision++
		s.mu.Unlock()

		s.logger.Info("wallet reported no accounts")
		s.changed(ctx, domain.StatusDisconnected)
		return nil
	}

	account := accounts[0]

	s.mu.Lock()
	if s.session.Status != domain.StatusConnected {
		status := s.session.Status
		s.mu.Unlock()
		s.logger.Debug("ignore accounts change", "status", status)
		return nil
	}
	if account == s.session.Account {
		rebinding := s.gateway == nil
		s.mu.Unlock()
		if rebinding {
			return nil
		}
		return s.Resync(ctx)
	}
	// The old binding is dropped before the new one is built so nothing in
	// between can read or write as the previous account.
	s.epoch++
	epoch := s.epoch
	s.session.Account = account
	s.gateway = nil
	s.position = domain.StakePosition{Stale: true}
	s.revision++
	s.mu.Unlock()
	s.persist(ctx)

	gateway, err := s.bind(ctx, account)

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.epoch++
		s.session = domain.Session{
			Status:    domain.StatusDisconnected,
			LastError: &domain.Fault{Kind: domain.KindOf(err), Op: domain.OpConnect},
		}
		s.position = domain.StakePosition{}
		s.gateway = nil
		s.revision++
		s.mu.Unlock()

		s.logger.Warn("rebind after account change failed", "account", account.Hex(), "error", err)
		s.changed(ctx, domain.StatusDisconnected)
		return fmt.Errorf("switch wallet account: %w", err)
	}
	s.gateway = gateway
	s.revision++
	s.mu.Unlock()

	s.logger.Info("wallet account changed", "account", account.Hex())
	s.changed(ctx, domain.StatusConnected)

	return s.Resync(ctx)
}

// HandleChainChanged wipes the session and asks the host to reload, since
// the binding belongs to the previous network.
func (s *SessionService) HandleChainChanged(ctx context.Context, chainID uint64) {
	s.mu.Lock()
	s.epoch++
	s.session = domain.NewSession()
	s.position = domain.StakePosition{}
	s.gateway = nil
	s.revision++
	s.mu.Unlock()

	s.logger.Info("wallet chain changed, reloading", "chain_id", chainID)
	s.changed(ctx, domain.StatusDisconnected)

	if s.reloader != nil {
		s.reloader.Reload()
	}
}

// Resync refreshes both stake figures together. Only the latest started
// resync of the current epoch is applied.
func (s *SessionService) Resync(ctx context.Context) error {
	s.mu.Lock()
	if !s.session.Connected() || s.gateway == nil {
		s.mu.Unlock()
		return domain.ErrNotConnected
	}
	gateway := s.gateway
	account := s.session.Account
	epoch := s.epoch
	s.nextTicket++
	ticket := s.nextTicket
	s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "session.resync", trace.WithAttributes(attribute.Int64("ticket", int64(ticket))))
	defer span.End()

	total, err := gateway.TotalStaked(ctx)
	var user domain.Amount
	if err == nil {
		user, err = gateway.UserStaked(ctx, account)
	}

	s.mu.Lock()
	if s.epoch != epoch || ticket <= s.applied {
		s.mu.Unlock()
		s.logger.Debug("discard stale resync", "ticket", ticket)
		return nil
	}
	s.applied = ticket

	if err != nil {
		kind := domain.KindOf(err)
		s.position.Stale = true
		s.session.LastError = &domain.Fault{Kind: kind, Op: domain.OpResync}
		s.revision++
		s.mu.Unlock()

		span.RecordError(err)
		span.SetStatus(codes.Error, "resync failed")
		s.logger.Warn("resync failed", "kind", kind, "error", err)
		s.observer.Resynced(kind)
		s.persist(ctx)
		return fmt.Errorf("resync stake position: %w", err)
	}

	s.position = domain.StakePosition{TotalStaked: total, UserStaked: user, SyncedAt: s.clock.Now()}
	s.session.LastError = nil
	s.revision++
	s.mu.Unlock()

	s.observer.Resynced(domain.ErrorKindNone)
	s.persist(ctx)
	return nil
}

// Watch subscribes to wallet notifications for the lifetime of the service.
func (s *SessionService) Watch(ctx context.Context) error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.sub != nil {
		s.sub.Unsubscribe()
		s.watchCancel()
		s.sub = nil
	}

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sub, err := s.provider.Subscribe(ctx, ports.WalletEvents{
		AccountsChanged: func(accounts []common.Address) {
			if err := s.HandleAccountsChanged(watchCtx, accounts); err != nil {
				s.logger.Warn("handle accounts change", "error", err)
			}
		},
		ChainChanged: func(chainID uint64) {
			s.HandleChainChanged(watchCtx, chainID)
		},
	})
	if err != nil {
		cancel()
		return fmt.Errorf("subscribe to wallet events: %w", err)
	}

	s.sub = sub
	s.watchCancel = cancel
	return nil
}

// Close ends the wallet subscription. It must not be called from a wallet
// event handler.
func (s *SessionService) Close() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.sub == nil {
		return
	}
	s.watchCancel()
	s.sub.Unsubscribe()
	s.sub = nil
}

// binding returns the current gateway and epoch for a write.
func (s *SessionService) binding() (ports.StakingGateway, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Connected() || s.gateway == nil {
		return nil, 0, false
	}
	return s.gateway, s.epoch, true
}

// clearFailure drops the last fault unless it is the reconnect notice.
func (s *SessionService) clearFailure(ctx context.Context) {
	s.mu.Lock()
	if s.session.LastError == nil || !s.session.LastError.Kind.IsFailure() {
		s.mu.Unlock()
		return
	}
	s.session.LastError = nil
	s.revision++
	s.mu.Unlock()

	s.persist(ctx)
}

// recordFault stores a fault unless the session moved to a new epoch.
func (s *SessionService) recordFault(ctx context.Context, epoch uint64, op domain.Operation, kind domain.ErrorKind) {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	s.session.LastError = &domain.Fault{Kind: kind, Op: op}
	s.revision++
	s.mu.Unlock()

	s.persist(ctx)
}

func (s *SessionService) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.epoch
}

func (s *SessionService) changed(ctx context.Context, status domain.ConnectionStatus) {
	s.observer.SessionChanged(status)
	s.persist(ctx)
}

// persist writes the latest record. Writes are serialized and a snapshot
// older than one already saved is skipped.
func (s *SessionService) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	revision := s.revision
	record := domain.SessionRecord{Session: s.session, Position: s.position, UpdatedAt: s.clock.Now()}
	s.mu.Unlock()

	if revision <= s.saved {
		return
	}

	if err := s.repo.Save(context.WithoutCancel(ctx), record); err != nil {
		s.logger.Error("persist session", "error", err)
		return
	}
	s.saved = revision
}
