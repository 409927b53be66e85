package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// VerifyProgress implements progress reporting for contract verification
type VerifyProgress struct {
	out       io.Writer
	spinner   *SpinnerProgressReporter
	startTime time.Time
}

// NewVerifyProgress creates a new verification progress reporter
func NewVerifyProgress(out io.Writer, interactive bool) *VerifyProgress {
	return &VerifyProgress{
		out:       out,
		spinner:   NewSpinnerProgressReporter(out, interactive),
		startTime: time.Now(),
	}
}

// OnProgress handles progress events
func (v *VerifyProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case usecase.StageVerifying:
		if event.Total > 0 {
			event.Message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message)
		}
		v.spinner.OnProgress(ctx, event)

	case usecase.StageRunCompleted:
		v.spinner.Stop()
		duration := time.Since(v.startTime)
		color.New(color.FgGreen).Fprintf(v.out, "✅ Verification completed in %s\n", duration.Round(time.Millisecond))

	case usecase.StageRunFailed:
		v.spinner.Stop()

	default:
		v.spinner.OnProgress(ctx, event)
	}
}

// Info prints an info message
func (v *VerifyProgress) Info(message string) {
	v.spinner.Info("ℹ️  " + message)
}

// Error prints an error message
func (v *VerifyProgress) Error(message string) {
	v.spinner.Error("❌ " + message)
}

// Ensure it implements the interface
var _ usecase.ProgressSink = (*VerifyProgress)(nil)
