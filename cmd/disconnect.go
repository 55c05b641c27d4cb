package cmd

import (
	"github.com/spf13/cobra"
)

func newDisconnectCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Forget the connected account until the next connect",
		Long:  "disconnect drops the account and cached balances. The wallet itself keeps its authorization; later commands stay disconnected until you run stk connect.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer session.Close()

			if err := session.controller.Disconnect(cmd.Context()); err != nil {
				return err
			}

			return writeView(cmd, app, session.controller.View(), app.renderOptions(0, false), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the session as JSON")

	return cmd
}
