package usecase

import (
	"context"
	"fmt"

	"github.com/nouspsyche/launchpad/internal/domain/models"
)

// ShowPlan loads and validates a plan without touching the network
type ShowPlan struct {
	loader PlanLoader
}

// NewShowPlan creates a new ShowPlan use case
func NewShowPlan(loader PlanLoader) *ShowPlan {
	return &ShowPlan{loader: loader}
}

// ShowPlanResult is a validated plan together with its dependency edges
type ShowPlanResult struct {
	Path string
	Plan *models.Plan
	// Dependents maps a step name to the steps and links that reference it.
	Dependents map[string][]string
}

// Run loads the plan at path and validates it
func (uc *ShowPlan) Run(ctx context.Context, path string) (*ShowPlanResult, error) {
	plan, err := uc.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	dependents := make(map[string][]string)
	for _, step := range plan.Steps {
		for _, ref := range step.References() {
			dependents[ref] = append(dependents[ref], step.Name)
		}
	}
	for i, link := range plan.Links {
		label := fmt.Sprintf("link %d", i+1)
		dependents[link.From] = append(dependents[link.From], label)
		for _, arg := range link.Args {
			if arg.IsRef() && arg.Ref != link.From {
				dependents[arg.Ref] = append(dependents[arg.Ref], label)
			}
		}
	}

	return &ShowPlanResult{
		Path:       path,
		Plan:       plan,
		Dependents: dependents,
	}, nil
}
