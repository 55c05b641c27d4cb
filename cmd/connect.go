package cmd

import (
	"github.com/spf13/cobra"
)

func newConnectCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect the wallet and load your stake",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer session.Close()

			connectErr := session.controller.Connect(cmd.Context())
			if err := writeView(cmd, app, session.controller.View(), app.renderOptions(0, false), asJSON); err != nil {
				return err
			}

			return connectErr
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the session as JSON")

	return cmd
}
