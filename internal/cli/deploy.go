package cli

import (
	"fmt"
	"time"

	"github.com/nouspsyche/launchpad/internal/cli/render"
	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		dryRun     bool
		resume     bool
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "deploy <plan>",
		Short: "Deploy the contracts of a plan",
		Long: `Deploy every step of a plan in order, wait for its confirmations, verify it
on the block explorer and finally run the plan's link calls.

A failed step stops the run. Contracts deployed before the failure are
printed and kept in the run journal; --resume continues from there.

Examples:
  launchpad deploy plans/nft_patreon.yaml --network mumbai
  launchpad deploy plans/nft_patreon.yaml --network mumbai --dry-run
  launchpad deploy plans/nft_patreon.yaml --network mumbai --resume
  launchpad deploy plans/nft_patreon.yaml --network local --skip-verify`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			planPath := args[0]

			network := app.Config.Network
			if network == nil && !dryRun {
				return fmt.Errorf("no network selected, --network is required")
			}

			plan, err := app.Plans.Load(ctx, planPath)
			if err != nil {
				return fmt.Errorf("failed to load plan %s: %w", planPath, err)
			}
			if err := plan.Validate(); err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout())
			renderer.RenderExecutionPlan(plan, network)

			if !dryRun && !network.IsLocal() && !app.Config.NonInteractive {
				ok, err := app.Selector.Confirm(ctx, fmt.Sprintf("Broadcast %d deployment(s) to %s", len(plan.Steps), network.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Deployment cancelled.")
					return nil
				}
			}

			opts := usecase.RunOptions{
				PlanPath:            planPath,
				ConfirmationTimeout: app.Config.ConfirmationTimeout,
				SkipVerification:    skipVerify,
				Resume:              resume,
				DryRun:              dryRun,
			}
			networkName := ""
			if network != nil {
				networkName = network.Name
				opts.Network = network.Name
				opts.ChainID = network.ChainID
			}

			result, runErr := app.DeployPlan.Run(ctx, plan, opts)
			renderer.RenderRunResult(result, networkName, runErr)
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and print the plan without sending transactions")
	cmd.Flags().BoolVar(&resume, "resume", false, "Continue the last run of this plan on this network")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Do not verify contracts on the block explorer")
	cmd.Flags().Duration("confirmation-timeout", 10*time.Minute, "Maximum wait for a transaction's confirmations (0 waits forever)")

	return cmd
}
