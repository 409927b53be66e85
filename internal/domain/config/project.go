package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ProjectConfig represents the full launchpad.toml configuration
type ProjectConfig struct {
	Project   ProjectSettings            `toml:"project"`
	Networks  map[string]NetworkConfig   `toml:"networks"`
	Etherscan map[string]EtherscanConfig `toml:"etherscan,omitempty"`
}

// ProjectSettings holds project-wide defaults
type ProjectSettings struct {
	Artifacts     string  `toml:"artifacts,omitempty"`     // compiled artifacts directory
	Confirmations *uint64 `toml:"confirmations,omitempty"` // default confirmation depth, nil if unset
}

// NetworkConfig represents a [networks.<name>] section
type NetworkConfig struct {
	ChainID  uint64     `toml:"chain_id"`
	URL      string     `toml:"url"`
	Accounts []string   `toml:"accounts,omitempty"` //nolint:gosec // holds env var references, not literal secrets
	Gas      GasSetting `toml:"gas,omitempty"`
	Explorer string     `toml:"explorer,omitempty"` // key into [etherscan]
}

// EtherscanConfig represents an [etherscan.<name>] section
type EtherscanConfig struct {
	Key     string `toml:"key,omitempty"`     // API key for verification
	URL     string `toml:"url,omitempty"`     // API URL
	Browser string `toml:"browser,omitempty"` // human-facing explorer URL
}

// GasSetting is either a fixed gas limit or "auto" (estimate per transaction)
type GasSetting struct {
	Limit uint64 // 0 means auto
}

// IsAuto reports whether the gas limit is estimated
func (g GasSetting) IsAuto() bool {
	return g.Limit == 0
}

func (g GasSetting) String() string {
	if g.IsAuto() {
		return "auto"
	}
	return strconv.FormatUint(g.Limit, 10)
}

// UnmarshalTOML accepts an integer or the string "auto"
func (g *GasSetting) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case int64:
		if v < 0 {
			return fmt.Errorf("gas limit must be positive, got %d", v)
		}
		g.Limit = uint64(v)
	case string:
		if strings.EqualFold(v, "auto") {
			g.Limit = 0
			return nil
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("gas must be an integer or \"auto\", got %q", v)
		}
		g.Limit = n
	default:
		return fmt.Errorf("gas must be an integer or \"auto\", got %T", data)
	}
	return nil
}
