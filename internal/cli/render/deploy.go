package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/samber/lo"
)

// DeployRenderer handles rendering of deployment runs
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{
		out: out,
	}
}

// GetWriter returns the io.Writer used by this renderer
func (r *DeployRenderer) GetWriter() io.Writer {
	return r.out
}

// RenderExecutionPlan displays the plan before anything is sent
func (r *DeployRenderer) RenderExecutionPlan(plan *models.Plan, network *config.Network) {
	group := plan.Group
	if group == "" {
		group = "plan"
	}
	if network != nil {
		fmt.Fprintf(r.out, "\n🎯 Deploying %s to %s (chain %d)\n", group, network.Name, network.ChainID)
	} else {
		fmt.Fprintf(r.out, "\n🎯 Deploying %s\n", group)
	}
	writePlan(r.out, plan)
}

// RenderStepStarting shows the header for a step
func (r *DeployRenderer) RenderStepStarting(step *models.DeploymentStep, current, total int) {
	color.New(color.Bold).Fprintf(r.out, "[%d/%d] %s\n", current, total, step.Name)
}

// RenderStepResult renders a completed step
func (r *DeployRenderer) RenderStepResult(res *models.DeploymentResult) {
	color.New(color.FgGreen).Fprintf(r.out, "  ✓ %s deployed at %s\n", res.Step.Contract, res.Address)
	color.New(color.FgHiBlack).Fprintf(r.out, "    tx %s\n", res.TransactionHash)

	switch {
	case res.Verification == nil:
	case res.Verified:
		color.New(color.FgGreen).Fprintf(r.out, "    ✓ %s\n", outcomeLabel(res.Verification.Kind))
	default:
		color.New(color.FgYellow).Fprintf(r.out, "    ⚠️  Verification failed: %s\n", res.Verification.Reason)
	}
}

// RenderStepSkipped renders a step taken over from a previous run
func (r *DeployRenderer) RenderStepSkipped(res *models.DeploymentResult, current, total int) {
	color.New(color.FgHiBlack).Fprintf(r.out, "[%d/%d] %s already deployed at %s, skipping\n",
		current, total, res.Step.Name, res.Address)
}

// RenderLinkStarting shows the header for a link action
func (r *DeployRenderer) RenderLinkStarting(link *models.LinkAction, current, total int) {
	color.New(color.Bold).Fprintf(r.out, "[link %d/%d] %s\n", current, total, formatCall(link.From+"."+link.Operation, link.Args))
}

// RenderLinkResult renders a confirmed link action
func (r *DeployRenderer) RenderLinkResult(res *models.LinkResult) {
	color.New(color.FgGreen).Fprintf(r.out, "  ✓ confirmed in tx %s\n", shortHash(res.TransactionHash))
}

// RenderRunResult renders the final address list. On failure it lists what
// completed before the error so the operator can recover.
func (r *DeployRenderer) RenderRunResult(result *usecase.RunResult, networkName string, runErr error) {
	if result == nil {
		return
	}

	fmt.Fprintf(r.out, "%s\n", strings.Repeat("═", 70))

	if result.DryRun {
		color.New(color.FgCyan, color.Bold).Fprintln(r.out, "Dry run: plan is valid, no transactions were sent")
		return
	}

	deployed := result.Deployed()
	if runErr == nil {
		color.New(color.FgGreen, color.Bold).Fprintf(r.out, "🎉 Deployed %d contract(s)", len(deployed))
		if networkName != "" {
			color.New(color.FgGreen, color.Bold).Fprintf(r.out, " to %s", networkName)
		}
		fmt.Fprintln(r.out)
	} else {
		color.New(color.FgRed, color.Bold).Fprintln(r.out, "❌ Deployment failed")
		if len(deployed) == 0 {
			fmt.Fprintln(r.out, "No contracts were deployed.")
		} else {
			fmt.Fprintf(r.out, "Deployed before the failure (%d/%d):\n", len(deployed), len(result.Plan.Steps))
		}
	}

	if len(deployed) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.addressTable(deployed, result.Resumed))
	}

	if len(result.Links) > 0 {
		fmt.Fprintf(r.out, "\nLinks executed: %d/%d\n", len(result.Links), len(result.Plan.Links))
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(r.out)
		for _, w := range result.Warnings {
			color.New(color.FgYellow).Fprintf(r.out, "⚠️  %s at %s was not verified: %s\n", w.Step, w.Address, w.Reason)
		}
		color.New(color.FgHiBlack).Fprintln(r.out, "   Retry later with: launchpad verify <plan> --network "+networkName)
	}
}

func (r *DeployRenderer) addressTable(deployed []*models.DeploymentResult, resumed []string) string {
	t := newTable()
	t.AppendHeader(table.Row{"Step", "Contract", "Address", "Verification"})
	for _, res := range deployed {
		name := res.Step.Name
		if lo.Contains(resumed, name) {
			name += " (resumed)"
		}
		t.AppendRow(table.Row{name, res.Step.Contract, res.Address, verificationLabel(res)})
	}
	return t.Render()
}

// writePlan lists steps with their arguments and the link actions
func writePlan(out io.Writer, plan *models.Plan) {
	links := ""
	if len(plan.Links) > 0 {
		links = fmt.Sprintf(", %d link(s)", len(plan.Links))
	}
	fmt.Fprintf(out, "📋 Execution plan: %d step(s)%s\n", len(plan.Steps), links)
	fmt.Fprintf(out, "%s\n", strings.Repeat("─", 50))

	for i, step := range plan.Steps {
		fmt.Fprintf(out, "%d. ", i+1)
		color.New(color.FgCyan).Fprintf(out, "%s", step.Name)
		fmt.Fprintf(out, " → ")
		color.New(color.FgGreen).Fprintf(out, "%s", formatCall(step.Contract, step.Args))

		if refs := lo.Uniq(step.References()); len(refs) > 0 {
			color.New(color.FgHiBlack).Fprintf(out, " (depends on: %s)", strings.Join(refs, ", "))
		}
		color.New(color.FgHiBlack).Fprintf(out, " [%d confirmations]", step.Confirmations)
		fmt.Fprintln(out)
	}

	if len(plan.Links) > 0 {
		fmt.Fprintln(out)
		color.New(color.Bold).Fprintln(out, "🔗 Links:")
		for i, link := range plan.Links {
			fmt.Fprintf(out, "%d. %s\n", i+1, formatCall(link.From+"."+link.Operation, link.Args))
		}
	}

	fmt.Fprintln(out)
}
