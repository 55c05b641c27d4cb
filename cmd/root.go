package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/spf13/cobra"
)

// standaloneAnnotation marks commands that work without the wired app, so a
// broken config can still be inspected and fixed.
const standaloneAnnotation = "stk/standalone"

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	rootCmd, cleanup := newRootCmd()
	defer cleanup()

	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd builds the command tree and returns a func releasing what the
// wiring opened.
func newRootCmd() (*cobra.Command, func()) {
	rootCmd := &cobra.Command{
		Use:           "stk",
		Short:         "Staking CLI (stk): connect a wallet and manage your stake",
		Long:          "stk connects to a wallet exposed over JSON-RPC, shows your position on the staking contract, and submits stake and unstake transactions through to confirmation.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	a, err := wireApp()
	if err != nil {
		a = &app{closeLog: func() error { return nil }}
		wireErr := fmt.Errorf("wire stk: %w", err)
		rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
			if isStandalone(cmd) {
				return nil
			}
			return wireErr
		}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newConnectCmd(a),
		newDisconnectCmd(a),
		newStatusCmd(a),
		newTxCmd(a, domain.TxKindStake),
		newTxCmd(a, domain.TxKindUnstake),
		newServeCmd(a),
		newAuthCmd(a),
	)

	return rootCmd, a.close
}

func isStandalone(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[standaloneAnnotation] == "true" {
			return true
		}
	}
	return false
}
