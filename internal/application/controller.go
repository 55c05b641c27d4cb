package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/staking-cli/internal/domain"
)

// Controller is the surface presentation layers drive: one read and the
// four user actions.
type Controller struct {
	session      *SessionService
	orchestrator *TxOrchestrator
}

func NewController(session *SessionService, orchestrator *TxOrchestrator) *Controller {
	return &Controller{session: session, orchestrator: orchestrator}
}

func (c *Controller) View() View {
	session, position := c.session.Snapshot()

	return View{
		Session:      session,
		Position:     position,
		StakeInput:   c.orchestrator.Input(domain.TxKindStake),
		UnstakeInput: c.orchestrator.Input(domain.TxKindUnstake),
		Pending:      c.orchestrator.Pending(),
		Decimals:     c.orchestrator.Decimals(),
	}
}

// Start restores the persisted session and connects unless the user
// disconnected last time.
func (c *Controller) Start(ctx context.Context) error {
	record, err := c.session.Restore(ctx)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("restore session: %w", err)
	}
	if err == nil && record.UserDisconnected() {
		return nil
	}

	return c.session.Connect(ctx)
}

func (c *Controller) Connect(ctx context.Context) error {
	return c.session.Connect(ctx)
}

func (c *Controller) Disconnect(ctx context.Context) error {
	return c.session.Disconnect(ctx)
}

func (c *Controller) Resync(ctx context.Context) error {
	return c.session.Resync(ctx)
}

func (c *Controller) SubmitStake(ctx context.Context, amount string) error {
	return c.orchestrator.Submit(ctx, domain.TxKindStake, amount)
}

func (c *Controller) SubmitUnstake(ctx context.Context, amount string) error {
	return c.orchestrator.Submit(ctx, domain.TxKindUnstake, amount)
}

func (c *Controller) SetInput(kind domain.TxKind, raw string) error {
	return c.orchestrator.SetInput(kind, raw)
}

// Watch follows wallet account and chain notifications until Close.
func (c *Controller) Watch(ctx context.Context) error {
	return c.session.Watch(ctx)
}

func (c *Controller) Close() {
	c.session.Close()
}
