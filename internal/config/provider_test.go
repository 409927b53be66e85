package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const providerProject = `
[project]
artifacts = "build/artifacts"
confirmations = 3

[networks.local]
chain_id = 31337
url = "http://127.0.0.1:8545"
`

func TestProvider(t *testing.T) {
	dir := writeProject(t, providerProject)

	v := SetupViper(dir, nil)
	v.Set("network", "local")

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, ".launchpad"), cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "build/artifacts"), cfg.ArtifactsDir)
	require.NotNil(t, cfg.Confirmations)
	assert.Equal(t, uint64(3), *cfg.Confirmations)
	assert.Equal(t, 10*time.Minute, cfg.ConfirmationTimeout)
	assert.Equal(t, 4*time.Second, cfg.PollInterval)
	require.NotNil(t, cfg.Network)
	assert.Equal(t, uint64(31337), cfg.Network.ChainID)
}

func TestProvider_UnknownNetwork(t *testing.T) {
	dir := writeProject(t, providerProject)

	v := SetupViper(dir, nil)
	v.Set("network", "sepolia")

	_, err := Provider(v)
	assert.ErrorContains(t, err, "network 'sepolia' not found")
}

func TestSetupViper_Flags(t *testing.T) {
	dir := writeProject(t, providerProject)

	cmd := &cobra.Command{Use: "deploy"}
	cmd.Flags().Duration("confirmation-timeout", 10*time.Minute, "")
	cmd.Flags().Bool("non-interactive", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--confirmation-timeout=30s", "--non-interactive"}))

	v := SetupViper(dir, cmd)
	assert.Equal(t, 30*time.Second, v.GetDuration("confirmation_timeout"))
	assert.True(t, v.GetBool("non_interactive"))
}

func TestSetupViper_Env(t *testing.T) {
	dir := writeProject(t, providerProject)
	t.Setenv("LAUNCHPAD_POLL_INTERVAL", "250ms")

	v := SetupViper(dir, nil)
	assert.Equal(t, 250*time.Millisecond, v.GetDuration("poll_interval"))
}

func TestFindProjectRoot(t *testing.T) {
	dir := writeProject(t, providerProject)
	nested := filepath.Join(dir, "plans", "nft")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	root, err := FindProjectRoot()
	require.NoError(t, err)

	// macOS temp dirs resolve through /private
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
