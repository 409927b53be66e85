package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectContract selects an artifact from a list
func (s *SelectorAdapter) SelectContract(ctx context.Context, artifacts []*models.Artifact, prompt string) (*models.Artifact, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(artifacts) == 0 {
		return nil, fmt.Errorf("no contracts provided for selection")
	}
	if len(artifacts) == 1 {
		return artifacts[0], nil
	}

	options := formatArtifactOptions(artifacts)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return artifacts[index], nil
}

// Confirm asks a yes/no question. Declining is not an error.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return true, nil
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}

	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// formatArtifactOptions creates display strings like "Token (contracts/mocks/Token.sol)"
func formatArtifactOptions(artifacts []*models.Artifact) []string {
	options := make([]string, len(artifacts))
	for i, artifact := range artifacts {
		name := color.New(color.FgWhite, color.Bold).Sprint(artifact.ContractName)
		path := color.New(color.FgBlue).Sprint(artifact.SourceName)
		options[i] = fmt.Sprintf("%s (%s)", name, path)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.InteractiveSelector = (*SelectorAdapter)(nil)
