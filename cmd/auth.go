package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the bearer token sent to the wallet endpoint",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var endpoint string
	var token string
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the wallet endpoint token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			verify := app.verifyToken
			if noVerify {
				verify = nil
			}

			if err := app.credentials.SetToken(cmd.Context(), endpoint, token, verify); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "token saved for %s\n", endpoint)
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", app.config.RPCURL, "Wallet JSON-RPC endpoint the token belongs to")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Store the token without checking it against the endpoint")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the wallet endpoint token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.credentials.RemoveToken(cmd.Context(), endpoint); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "token removed for %s\n", endpoint)
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", app.config.RPCURL, "Wallet JSON-RPC endpoint the token belongs to")

	return cmd
}
