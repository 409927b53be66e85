package cli

import (
	"fmt"

	"github.com/nouspsyche/launchpad/internal/cli/render"
	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "verify <plan>",
		Short: "Verify the contracts of a previous run on the block explorer",
		Long: `Re-submit explorer verification for the contracts recorded in the run
journal of a plan. Contracts already verified are skipped unless --force is set.

Examples:
  launchpad verify plans/nft_patreon.yaml --network mumbai
  launchpad verify plans/nft_patreon.yaml --network mumbai --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if app.Config.Network == nil {
				return fmt.Errorf("no network selected, --network is required")
			}

			options := usecase.VerifyOptions{
				PlanPath: args[0],
				Network:  app.Config.Network.Name,
				Force:    forceFlag,
			}
			result, err := app.VerifyRecorded.Run(cmd.Context(), options)
			if err != nil {
				return err
			}

			renderer := render.NewVerifyRenderer(cmd.OutOrStdout())
			if err := renderer.RenderVerifyResult(result, options); err != nil {
				return err
			}
			if result.Failures > 0 {
				return fmt.Errorf("%d contract(s) failed verification", result.Failures)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceFlag, "force", false, "Re-verify even if already verified")

	return cmd
}
