package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// PlanRenderer renders a validated plan
type PlanRenderer struct {
	out io.Writer
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer) *PlanRenderer {
	return &PlanRenderer{out: out}
}

// RenderPlan renders the plan and which steps feed into later ones
func (r *PlanRenderer) RenderPlan(result *usecase.ShowPlanResult) error {
	fmt.Fprintf(r.out, "\n📄 %s", result.Path)
	if result.Plan.Group != "" {
		fmt.Fprintf(r.out, " (%s)", result.Plan.Group)
	}
	fmt.Fprintln(r.out)
	writePlan(r.out, result.Plan)

	var lines []string
	for _, step := range result.Plan.Steps {
		if deps := result.Dependents[step.Name]; len(deps) > 0 {
			lines = append(lines, fmt.Sprintf("  %s → %s", step.Name, strings.Join(deps, ", ")))
		}
	}
	if len(lines) > 0 {
		color.New(color.Bold).Fprintln(r.out, "Address used by:")
		for _, line := range lines {
			fmt.Fprintln(r.out, line)
		}
		fmt.Fprintln(r.out)
	}

	color.New(color.FgGreen).Fprintln(r.out, "✓ Plan is valid")
	return nil
}
