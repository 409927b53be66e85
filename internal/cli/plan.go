package cli

import (
	"github.com/nouspsyche/launchpad/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <plan>",
		Short: "Validate a plan and show its steps",
		Long: `Load and validate a plan file, then list its steps in deployment order with
the steps each one depends on, and its link calls. Nothing is sent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowPlan.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render.NewPlanRenderer(cmd.OutOrStdout()).RenderPlan(result)
		},
	}
}
