package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nouspsyche/launchpad/internal/adapters/progress"
	"github.com/nouspsyche/launchpad/internal/app"
	"github.com/nouspsyche/launchpad/internal/cli/render"
	"github.com/nouspsyche/launchpad/internal/config"
	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "launchpad",
		Short: "Deploy, verify and link smart contracts from a plan file",
		Long: `Launchpad deploys the contracts listed in a YAML plan in order, feeding
earlier addresses into later constructor arguments, verifies each contract
on the network's block explorer and runs the plan's link calls.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := loadSettings(projectRoot, cmd)

			sink := newProgressSink(cmd, cmd.OutOrStdout(), !v.GetBool("non_interactive"))

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., mumbai, polygon)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "main"
	rootCmd.AddCommand(verifyCmd)

	planCmd := NewPlanCmd()
	planCmd.GroupID = "main"
	rootCmd.AddCommand(planCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// loadSettings builds the command's viper settings. A CI environment turns
// off prompts the same way --non-interactive does.
func loadSettings(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := config.SetupViper(projectRoot, cmd)
	if isNonInteractive() {
		v.Set("non_interactive", true)
	}
	return v
}

// newProgressSink picks the progress display for the command being run
func newProgressSink(cmd *cobra.Command, out io.Writer, interactive bool) usecase.ProgressSink {
	switch cmd.Name() {
	case "deploy":
		return progress.NewDeployProgress(render.NewDeployRenderer(out), interactive)
	case "verify":
		return progress.NewVerifyProgress(out, interactive)
	default:
		return progress.NewNopSink()
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// isNonInteractive checks if the environment is non-interactive
func isNonInteractive() bool {
	return os.Getenv("LAUNCHPAD_NON_INTERACTIVE") == "true" ||
		os.Getenv("CI") == "true"
}
