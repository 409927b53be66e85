package cli

import (
	"github.com/nouspsyche/launchpad/internal/cli/render"
	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks configured in launchpad.toml",
		Long: `List all networks configured in the [networks] section of launchpad.toml.

Networks without a chain_id are asked for it over RPC. A network whose
secrets are missing from the environment is listed with the error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}

	return cmd
}
