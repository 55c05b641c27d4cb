package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bnema/staking-cli/internal/adapters/httpapi"
	"github.com/bnema/staking-cli/internal/application"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var errReloading = errors.New("session is reloading, retry shortly")

// swappableController serves the current session and survives reloads.
type swappableController struct {
	current  atomic.Pointer[application.Controller]
	decimals uint8
}

var _ httpapi.Controller = (*swappableController)(nil)

func (c *swappableController) View() application.View {
	if ctrl := c.current.Load(); ctrl != nil {
		return ctrl.View()
	}

	return application.View{
		Session:      domain.NewSession(),
		StakeInput:   application.DefaultInput,
		UnstakeInput: application.DefaultInput,
		Decimals:     c.decimals,
	}
}

func (c *swappableController) do(run func(*application.Controller) error) error {
	ctrl := c.current.Load()
	if ctrl == nil {
		return errReloading
	}
	return run(ctrl)
}

func (c *swappableController) Connect(ctx context.Context) error {
	return c.do(func(ctrl *application.Controller) error { return ctrl.Connect(ctx) })
}

func (c *swappableController) Disconnect(ctx context.Context) error {
	return c.do(func(ctrl *application.Controller) error { return ctrl.Disconnect(ctx) })
}

func (c *swappableController) Resync(ctx context.Context) error {
	return c.do(func(ctrl *application.Controller) error { return ctrl.Resync(ctx) })
}

func (c *swappableController) SubmitStake(ctx context.Context, amount string) error {
	return c.do(func(ctrl *application.Controller) error { return ctrl.SubmitStake(ctx, amount) })
}

func (c *swappableController) SubmitUnstake(ctx context.Context, amount string) error {
	return c.do(func(ctrl *application.Controller) error { return ctrl.SubmitUnstake(ctx, amount) })
}

func newServeCmd(app *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Keep a live wallet session and serve it over local HTTP",
		Long:  "serve connects on start, follows wallet account and network changes, and exposes the session on /v1 plus prometheus metrics on /metrics. A network change tears the session down and connects again.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, app, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", app.config.ServeListen, "Address for the local HTTP surface")

	return cmd
}

func runServe(cmd *cobra.Command, app *app, listen string) error {
	ctx := cmd.Context()
	live := &swappableController{decimals: app.config.Decimals}

	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listen, err)
	}

	srv := &http.Server{
		Handler: httpapi.NewHandler(live, httpapi.Options{
			Gatherer:  app.registry,
			WriteRate: app.config.ServeRateLimit,
			Lifetime:  ctx,
			Logger:    app.logger.With("component", "http"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Warn("http shutdown", "error", err)
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "serving on http://%s\n", ln.Addr())
	app.logger.Info("serving", "addr", ln.Addr().String())

	for {
		reload := make(chan struct{}, 1)
		reloader := ports.ReloadFunc(func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})

		session, err := app.openSession(ctx, reloader)
		if err != nil {
			return err
		}
		live.current.Store(session.controller)

		if err := session.controller.Start(ctx); err != nil {
			app.logger.Warn("auto-connect failed", "error", err)
		}
		if err := session.controller.Watch(ctx); err != nil {
			app.logger.Warn("watch wallet events", "error", err)
		}

		select {
		case <-ctx.Done():
			live.current.Store(nil)
			session.Close()
			return nil
		case err := <-serveErr:
			live.current.Store(nil)
			session.Close()
			return fmt.Errorf("serve http: %w", err)
		case <-reload:
			live.current.Store(nil)
			session.Close()
			app.logger.Info("wallet network changed, reloading session")
			fmt.Fprintln(cmd.OutOrStdout(), "wallet network changed, reconnecting")
		}
	}
}
