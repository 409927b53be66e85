package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/nouspsyche/launchpad/internal/adapters/progress"
	"github.com/nouspsyche/launchpad/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

const testProject = `
[project]
confirmations = 2

[networks.local]
chain_id = 31337
url = "http://127.0.0.1:8545"
accounts = ["0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"]

[networks.mumbai]
chain_id = 80001
url = "https://polygon-mumbai.g.alchemy.com/v2/${LAUNCHPAD_TEST_MISSING_KEY}"
`

const testPlan = `
group: nft_patreon
steps:
  - name: nft
    contract: NousNFT
  - name: referral
    contract: Referral
    args: [3, {ref: nft}, "0x666d0bb670b0A241a33C4e60dFd33907F224D9f3"]
links:
  - from: nft
    call: addAllowAddress
    args: [{ref: referral}]
`

// setupProject creates a project in a temp dir and makes it the working directory
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "launchpad.toml"), []byte(testProject), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "plans"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plans", "patreon.yaml"), []byte(testPlan), 0644))
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"deploy", "verify", "plan", "networks", "version"})

	network := root.PersistentFlags().Lookup("network")
	require.NotNil(t, network)
	assert.Equal(t, "n", network.Shorthand)
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, root.PersistentFlags().Lookup("non-interactive"))
}

func TestDeployCmdFlags(t *testing.T) {
	cmd := NewDeployCmd()
	for _, name := range []string{"dry-run", "resume", "skip-verify"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	timeout, err := cmd.Flags().GetDuration("confirmation-timeout")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, timeout)
}

func TestNewProgressSink(t *testing.T) {
	var out bytes.Buffer
	tests := []struct {
		name string
		want any
	}{
		{"deploy", &progress.DeployProgress{}},
		{"verify", &progress.VerifyProgress{}},
		{"plan", &progress.NopSink{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := newProgressSink(&cobra.Command{Use: tt.name}, &out, false)
			assert.IsType(t, tt.want, sink)
		})
	}
}

func TestLoadSettings_NonInteractive(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want bool
	}{
		{name: "terminal", want: false},
		{name: "CI", env: map[string]string{"CI": "true"}, want: true},
		{name: "env override", env: map[string]string{"LAUNCHPAD_NON_INTERACTIVE": "true"}, want: true},
		{name: "flag", args: []string{"--non-interactive"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupProject(t)
			t.Setenv("CI", "")
			t.Setenv("LAUNCHPAD_NON_INTERACTIVE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			root := NewRootCmd()
			deploy, _, err := root.Find([]string{"deploy"})
			require.NoError(t, err)
			require.NoError(t, deploy.ParseFlags(tt.args))

			v := loadSettings(dir, deploy)
			assert.Equal(t, tt.want, v.GetBool("non_interactive"))

			cfg, err := config.Provider(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.NonInteractive)
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "launchpad version dev\n", out)
}

func TestPlanCmd(t *testing.T) {
	setupProject(t)

	out, err := execute(t, "plan", "plans/patreon.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "plans/patreon.yaml (nft_patreon)")
	assert.Contains(t, out, "Execution plan: 2 step(s), 1 link(s)")
	assert.Contains(t, out, "nft → referral")
	assert.Contains(t, out, "✓ Plan is valid")
}

func TestPlanCmd_MissingFile(t *testing.T) {
	setupProject(t)

	_, err := execute(t, "plan", "plans/missing.yaml")
	assert.Error(t, err)
}

func TestNetworksCmd(t *testing.T) {
	setupProject(t)
	t.Setenv("LAUNCHPAD_TEST_MISSING_KEY", "")

	out, err := execute(t, "networks")
	require.NoError(t, err)
	assert.Contains(t, out, "local")
	assert.Contains(t, out, "31337")
	assert.Contains(t, out, "127.0.0.1:8545")
	assert.Contains(t, out, "LAUNCHPAD_TEST_MISSING_KEY")
}

func TestDeployCmd_DryRun(t *testing.T) {
	setupProject(t)

	out, err := execute(t, "deploy", "plans/patreon.yaml", "--dry-run", "--non-interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Deploying nft_patreon")
	assert.Contains(t, out, "Dry run: plan is valid, no transactions were sent")
}

func TestDeployCmd_RequiresNetwork(t *testing.T) {
	setupProject(t)

	_, err := execute(t, "deploy", "plans/patreon.yaml")
	assert.ErrorContains(t, err, "--network is required")
}

func TestVerifyCmd_NoJournal(t *testing.T) {
	setupProject(t)

	_, err := execute(t, "verify", "plans/patreon.yaml", "--network", "local")
	assert.ErrorContains(t, err, "failed to load run journal")
}

func TestRequiresProject(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "networks")
	assert.ErrorContains(t, err, "not in a launchpad project")
}
