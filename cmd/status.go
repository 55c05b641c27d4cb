package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var offline bool
	var staleAfter time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the wallet session and staking position",
		Long:  "status reconnects (unless you disconnected), refreshes both stake figures and prints them. With --offline it prints the last saved snapshot without any network call.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if offline {
				view, err := app.offlineView(cmd.Context())
				if err != nil {
					return err
				}
				return writeView(cmd, app, view, app.renderOptions(staleAfter, true), asJSON)
			}

			session, err := app.openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer session.Close()

			startErr := session.controller.Start(cmd.Context())
			if err := writeView(cmd, app, session.controller.View(), app.renderOptions(staleAfter, false), asJSON); err != nil {
				return err
			}

			return startErr
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the session as JSON")
	cmd.Flags().BoolVar(&offline, "offline", false, "Show the last saved snapshot without contacting the wallet")
	cmd.Flags().DurationVar(&staleAfter, "stale-after", app.config.StatusStaleAfter, "Flag figures synced longer ago than this as stale (0 disables)")

	return cmd
}
