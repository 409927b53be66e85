package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// newTable returns a borderless table in the style used across the CLI
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Format.Header = text.FormatDefault
	t.Style().Box.PaddingRight = "   "
	t.Style().Box.PaddingLeft = "  "
	return t
}

// outcomeLabel turns an outcome kind such as already_verified into "Already Verified"
func outcomeLabel(kind models.VerificationKind) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(kind), "_", " "))
}

// verificationLabel describes the verification state of a result
func verificationLabel(res *models.DeploymentResult) string {
	if res.Verification == nil {
		return "Skipped"
	}
	return outcomeLabel(res.Verification.Kind)
}

// formatCall renders name(arg, ...) with references shown as ref(Step)
func formatCall(name string, args []models.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

// shortHash abbreviates a transaction hash for status lines
func shortHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:10] + "…" + hash[len(hash)-4:]
}
