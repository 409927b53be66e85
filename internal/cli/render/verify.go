package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{
		out: out,
	}
}

// RenderVerifyResult renders the outcome of re-verifying a journaled run
func (r *VerifyRenderer) RenderVerifyResult(result *usecase.VerifyRecordedResult, options usecase.VerifyOptions) error {
	if len(result.Skipped) > 0 {
		color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Skipping %d verified contract(s):\n", len(result.Skipped))
		for _, res := range result.Skipped {
			fmt.Fprintf(r.out, "  ⏭️  %s at %s\n", res.Step.Name, res.Address)
		}
		fmt.Fprintln(r.out)
	}

	if len(result.Results) == 0 {
		if options.Force {
			color.New(color.FgYellow).Fprintln(r.out, "No deployed contracts found to verify.")
		} else {
			color.New(color.FgYellow).Fprintln(r.out, "No unverified deployed contracts found. Use --force to re-verify all contracts.")
		}
		return nil
	}

	for _, v := range result.Results {
		label := outcomeLabel(v.Outcome.Kind)
		if v.Outcome.Succeeded() {
			color.New(color.FgGreen).Fprintf(r.out, "  ✓ %s at %s: %s\n", v.Result.Step.Name, v.Result.Address, label)
		} else {
			color.New(color.FgRed).Fprintf(r.out, "  ✗ %s at %s: %s (%s)\n", v.Result.Step.Name, v.Result.Address, label, v.Outcome.Reason)
		}
	}

	fmt.Fprintln(r.out)
	verified := len(result.Results) - result.Failures
	if result.Failures == 0 {
		color.New(color.FgGreen, color.Bold).Fprintf(r.out, "Verified %d contract(s)\n", verified)
	} else {
		color.New(color.FgYellow, color.Bold).Fprintf(r.out, "Verified %d contract(s), %d failed\n", verified, result.Failures)
	}
	return nil
}
