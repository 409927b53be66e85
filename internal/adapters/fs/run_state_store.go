package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// RunStateStoreAdapter implements RunStateStore with one JSON file per plan and network
type RunStateStoreAdapter struct {
	runsDir string
}

// NewRunStateStoreAdapter creates a new RunStateStoreAdapter
func NewRunStateStoreAdapter(cfg *config.RuntimeConfig) *RunStateStoreAdapter {
	return &RunStateStoreAdapter{
		runsDir: filepath.Join(cfg.DataDir, "runs"),
	}
}

// Path returns the journal file for a plan on a network,
// e.g. .launchpad/runs/nft_patreon-sepolia.json
func (s *RunStateStoreAdapter) Path(planPath, network string) string {
	plan := strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath))
	name := unsafeChars.ReplaceAllString(plan+"-"+network, "_")
	return filepath.Join(s.runsDir, name+".json")
}

// Load reads the journal of the last run. Returns domain.ErrNotFound if there is none.
func (s *RunStateStoreAdapter) Load(_ context.Context, planPath, network string) (*models.RunState, error) {
	path := s.Path(planPath, network)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no run journal for %s on %s", domain.ErrNotFound, planPath, network)
		}
		return nil, fmt.Errorf("failed to read run journal: %w", err)
	}

	var state models.RunState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse run journal %s: %w", path, err)
	}

	if state.Results == nil {
		state.Results = make(map[string]*models.DeploymentResult)
	}

	return &state, nil
}

// Save writes the journal, creating the directory if needed. The file is
// replaced atomically so an interrupted write never leaves a truncated journal.
func (s *RunStateStoreAdapter) Save(_ context.Context, state *models.RunState) error {
	if err := os.MkdirAll(s.runsDir, 0755); err != nil {
		return fmt.Errorf("failed to create runs directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run journal: %w", err)
	}

	path := s.Path(state.PlanPath, state.Network)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write run journal: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write run journal: %w", err)
	}

	return nil
}

// Ensure RunStateStoreAdapter implements RunStateStore
var _ usecase.RunStateStore = (*RunStateStoreAdapter)(nil)
