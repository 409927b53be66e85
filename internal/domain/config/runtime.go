package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	DataDir      string
	ArtifactsDir string

	// Context settings
	Network *Network // nil if not specified

	// Execution settings
	Debug               bool
	NonInteractive      bool
	ConfirmationTimeout time.Duration // 0 disables the timeout
	PollInterval        time.Duration
	Confirmations       *uint64 // project-wide default depth, nil if unset

	// Resolved configurations
	ProjectConfig *ProjectConfig
}

// Network represents a resolved network configuration
type Network struct {
	Name     string
	ChainID  uint64
	RPCURL   string
	Accounts []string // private keys; the first one deploys
	Gas      GasSetting
	Explorer *ExplorerConfig // nil when verification is not configured
}

// IsLocal reports whether the network is a local development chain
func (n *Network) IsLocal() bool {
	return n.ChainID == 31337 || n.ChainID == 1337
}

// ExplorerConfig holds an Etherscan-compatible explorer's API settings
type ExplorerConfig struct {
	Name       string
	APIKey     string
	APIURL     string
	BrowserURL string
}
