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
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultInput is the value of an input field before and after a write.
const DefaultInput = "0"

type OrchestratorOptions struct {
	Decimals uint8
	Observer ports.TxObserver
	Clock    ports.Clock
	Logger   *slog.Logger
}

// TxOrchestrator drives stake and unstake through submit, confirm and
// resync. At most one write per kind is in flight.
type TxOrchestrator struct {
	session  *SessionService
	decimals uint8
	observer ports.TxObserver
	clock    ports.Clock
	logger   *slog.Logger
	tracer   trace.Tracer

	mu       sync.Mutex
	inputs   map[domain.TxKind]string
	inFlight map[domain.TxKind]bool
	pending  map[domain.TxKind]domain.PendingTransaction
}

func NewTxOrchestrator(session *SessionService, opts OrchestratorOptions) *TxOrchestrator {
	if opts.Decimals == 0 {
		opts.Decimals = domain.DefaultDecimals
	}
	if opts.Observer == nil {
		opts.Observer = ports.NoopObserver{}
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &TxOrchestrator{
		session:  session,
		decimals: opts.Decimals,
		observer: opts.Observer,
		clock:    opts.Clock,
		logger:   opts.Logger,
		tracer:   otel.Tracer(tracerName),
		inputs: map[domain.TxKind]string{
			domain.TxKindStake:   DefaultInput,
			domain.TxKindUnstake: DefaultInput,
		},
		inFlight: make(map[domain.TxKind]bool),
		pending:  make(map[domain.TxKind]domain.PendingTransaction),
	}
}

func (o *TxOrchestrator) Decimals() uint8 {
	return o.decimals
}

// SetInput updates the input field of kind. It is refused while a write of
// that kind is in flight.
func (o *TxOrchestrator) SetInput(kind domain.TxKind, raw string) error {
	if !kind.Valid() {
		return fmt.Errorf("set input: unsupported transaction kind %q", kind)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight[kind] {
		return domain.ErrActionInFlight
	}
	o.inputs[kind] = raw
	return nil
}

func (o *TxOrchestrator) Input(kind domain.TxKind) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.inputs[kind]
}

// Pending lists accepted writes awaiting confirmation, stake first.
func (o *TxOrchestrator) Pending() []domain.PendingTransaction {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := make([]domain.PendingTransaction, 0, len(o.pending))
	for _, kind := range []domain.TxKind{domain.TxKindStake, domain.TxKindUnstake} {
		if tx, ok := o.pending[kind]; ok {
			result = append(result, tx)
		}
	}
	return result
}

// Submit stores raw as the input of kind and runs the write.
func (o *TxOrchestrator) Submit(ctx context.Context, kind domain.TxKind, raw string) error {
	if !kind.Valid() {
		return fmt.Errorf("submit: unsupported transaction kind %q", kind)
	}

	o.mu.Lock()
	if o.inFlight[kind] {
		o.mu.Unlock()
		return domain.ErrActionInFlight
	}
	o.inFlight[kind] = true
	o.inputs[kind] = raw
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		delete(o.inFlight, kind)
		delete(o.pending, kind)
		o.mu.Unlock()
	}()

	actionID := uuid.NewString()
	logger := o.logger.With("action_id", actionID, "kind", kind)
	ctx, span := o.tracer.Start(ctx, "tx."+string(kind), trace.WithAttributes(
		attribute.String("action_id", actionID),
		attribute.String("amount", raw),
	))
	defer span.End()

	started := o.clock.Now()
	err := o.run(ctx, kind, raw, logger)
	elapsed := o.clock.Now().Sub(started)

	switch {
	case err == nil:
		o.observer.Settled(kind, domain.ErrorKindNone, elapsed)
	case errors.Is(err, domain.ErrNotConnected):
	default:
		outcome := domain.KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(outcome))
		o.observer.Settled(kind, outcome, elapsed)
	}

	return err
}

func (o *TxOrchestrator) run(ctx context.Context, kind domain.TxKind, raw string, logger *slog.Logger) error {
	op := kind.Operation()
	o.session.clearFailure(ctx)

	amount, err := domain.ParsePositiveAmount(raw, o.decimals)
	if err != nil {
		failure := domain.NewFailure(domain.ErrorKindInvalidAmount, string(op), err)
		o.session.recordFault(ctx, o.session.currentEpoch(), op, failure.Kind)
		logger.Info("rejected amount", "input", raw)
		return failure
	}

	gateway, epoch, ok := o.session.binding()
	if !ok {
		return fmt.Errorf("%s: %w", kind, domain.ErrNotConnected)
	}

	var tx domain.PendingTransaction
	switch kind {
	case domain.TxKindStake:
		tx, err = gateway.SubmitStake(ctx, amount)
	case domain.TxKindUnstake:
		tx, err = gateway.SubmitUnstake(ctx, amount)
	}
	if err != nil {
		o.session.recordFault(ctx, epoch, op, domain.KindOf(err))
		logger.Warn("submit failed", "kind_of_error", domain.KindOf(err), "error", err)
		return fmt.Errorf("submit %s: %w", kind, err)
	}

	o.mu.Lock()
	o.pending[kind] = tx
	o.mu.Unlock()
	o.observer.Submitted(kind)
	logger.Info("transaction pending", "hash", tx.Hash.Hex(), "amount", amount.Format(o.decimals))

	if err := gateway.AwaitConfirmation(ctx, tx); err != nil {
		o.session.recordFault(ctx, epoch, op, domain.KindOf(err))
		logger.Warn("confirmation failed", "hash", tx.Hash.Hex(), "error", err)
		return fmt.Errorf("confirm %s: %w", kind, err)
	}

	logger.Info("transaction confirmed", "hash", tx.Hash.Hex())
	if err := o.session.Resync(ctx); err != nil && !errors.Is(err, domain.ErrNotConnected) {
		logger.Warn("resync after confirmed write failed", "error", err)
	}

	o.mu.Lock()
	o.inputs[kind] = DefaultInput
	o.mu.Unlock()

	return nil
}
