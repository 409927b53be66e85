package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/nouspsyche/launchpad/internal/domain/config"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = "launchpad.toml"

// loadDotEnv loads .env files from the project root so ${VAR} references can
// be expanded. Variables already present in the environment win.
func loadDotEnv(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectConfig loads and parses launchpad.toml. Values are kept raw;
// ${VAR} references are expanded when a network is resolved, so a missing
// secret for one network does not break commands on another.
func loadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadDotEnv(projectRoot)

	path := filepath.Join(projectRoot, ProjectFile)
	var cfg config.ProjectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}

	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if cfg.Etherscan == nil {
		cfg.Etherscan = make(map[string]config.EtherscanConfig)
	}
	if cfg.Project.Artifacts == "" {
		cfg.Project.Artifacts = "artifacts"
	}

	return &cfg, nil
}
