package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/staking-cli/internal/adapters/httpapi"
	statusadapter "github.com/bnema/staking-cli/internal/adapters/render/status"
	"github.com/bnema/staking-cli/internal/application"
	"github.com/spf13/cobra"
)

func writeView(cmd *cobra.Command, app *app, view application.View, opts statusadapter.RenderOptions, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(httpapi.NewSessionResponse(view))
	}

	rendered, err := app.viewRenderer(view, opts)
	if err != nil {
		return fmt.Errorf("render session: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
