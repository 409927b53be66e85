package models

import (
	"fmt"

	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/samber/lo"
)

// Plan is an ordered list of deployment steps followed by link actions
type Plan struct {
	Group string
	Steps []*DeploymentStep
	Links []*LinkAction
}

// Step returns the step with the given name
func (p *Plan) Step(name string) (*DeploymentStep, bool) {
	return lo.Find(p.Steps, func(s *DeploymentStep) bool { return s.Name == name })
}

// Validate checks the plan before anything is submitted. References must
// point to a step earlier in the list; self and forward references are
// reported as UnresolvedReferenceError.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: at least one step is required", domain.ErrInvalidPlan)
	}

	names := lo.Map(p.Steps, func(s *DeploymentStep, _ int) string { return s.Name })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate step names %v", domain.ErrInvalidPlan, dups)
	}

	seen := make(map[string]bool, len(p.Steps))
	for i, step := range p.Steps {
		if step.Name == "" {
			return fmt.Errorf("%w: step %d has no name", domain.ErrInvalidPlan, i+1)
		}
		if step.Contract == "" {
			return fmt.Errorf("%w: step '%s' must specify a contract", domain.ErrInvalidPlan, step.Name)
		}
		for pos, arg := range step.Args {
			if arg.IsEmpty() {
				return fmt.Errorf("%w: step '%s' argument %d is empty", domain.ErrInvalidPlan, step.Name, pos)
			}
			if arg.IsRef() && !seen[arg.Ref] {
				return UnresolvedRef(step.Name, arg.Ref, pos)
			}
		}
		seen[step.Name] = true
	}

	for i, link := range p.Links {
		label := fmt.Sprintf("link %d", i+1)
		if link.Operation == "" {
			return fmt.Errorf("%w: %s must specify an operation", domain.ErrInvalidPlan, label)
		}
		if !seen[link.From] {
			return UnresolvedRef(label, link.From, -1)
		}
		for pos, arg := range link.Args {
			if arg.IsEmpty() {
				return fmt.Errorf("%w: %s argument %d is empty", domain.ErrInvalidPlan, label, pos)
			}
			if arg.IsRef() && !seen[arg.Ref] {
				return UnresolvedRef(label, arg.Ref, pos)
			}
		}
	}

	return nil
}

// UnresolvedRef builds the error for a reference that has no result yet.
// Position -1 denotes the link target rather than an argument.
func UnresolvedRef(owner, ref string, pos int) error {
	return domain.UnresolvedReferenceError{Step: owner, Reference: ref, Position: pos}
}
