package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newTxCmd(app *app, kind domain.TxKind) *cobra.Command {
	var asJSON bool
	var noSpinner bool

	verb := "Stake"
	if kind == domain.TxKindUnstake {
		verb = "Unstake"
	}

	cmd := &cobra.Command{
		Use:   string(kind) + " <amount>",
		Short: verb + " an amount and wait for confirmation",
		Long: fmt.Sprintf(
			"%s submits %s(amount) through the wallet, waits for the receipt and refreshes your position. The amount is a decimal in whole units, e.g. 1.5.",
			kind, kind,
		),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := strings.TrimSpace(args[0])

			session, err := app.openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer session.Close()

			ctrl := session.controller
			if err := ctrl.Start(cmd.Context()); err != nil {
				_ = writeView(cmd, app, ctrl.View(), app.renderOptions(0, false), asJSON)
				return err
			}

			submit := func(ctx context.Context) error {
				if kind == domain.TxKindUnstake {
					return ctrl.SubmitUnstake(ctx, amount)
				}
				return ctrl.SubmitStake(ctx, amount)
			}

			var submitErr error
			if noSpinner {
				submitErr = submit(cmd.Context())
			} else {
				progress := newTxProgress(kind, amount, app.config.Symbol, ctrl.View, nil)
				submitErr = runTxProgress(cmd.Context(), cmd.ErrOrStderr(), progress, submit)
			}

			if err := writeView(cmd, app, ctrl.View(), app.renderOptions(0, false), asJSON); err != nil {
				return err
			}
			if errors.Is(submitErr, domain.ErrNotConnected) {
				return fmt.Errorf("%w: run `stk connect` first", submitErr)
			}

			return submitErr
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the resulting session as JSON")
	cmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "Do not animate while waiting for confirmation")

	return cmd
}
