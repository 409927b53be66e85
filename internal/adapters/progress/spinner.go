package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// SpinnerProgressReporter shows a spinner while the run is blocked on the
// network. Without a terminal it prints the waiting message once instead.
type SpinnerProgressReporter struct {
	spinner     *spinner.Spinner
	out         io.Writer
	interactive bool
	message     string
	startedAt   time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter(out io.Writer, interactive bool) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	_ = s.Color("cyan", "bold")

	return &SpinnerProgressReporter{
		spinner:     s,
		out:         out,
		interactive: interactive,
	}
}

// OnProgress starts, updates or stops the spinner
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if !event.Spinner {
		r.Stop()
		return
	}

	if !r.interactive {
		if event.Message != r.message {
			fmt.Fprintln(r.out, event.Message)
		}
		r.message = event.Message
		return
	}

	if r.message != event.Message {
		r.startedAt = time.Now()
	}
	r.message = event.Message
	r.spinner.Suffix = " " + event.Message
	r.spinner.PreUpdate = func(s *spinner.Spinner) {
		s.Suffix = fmt.Sprintf(" %s (%s)", r.message, time.Since(r.startedAt).Round(time.Second))
	}
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

// Stop clears the spinner line
func (r *SpinnerProgressReporter) Stop() {
	r.message = ""
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pause(func() { color.New(color.FgCyan).Fprintln(r.out, message) })
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pause(func() { color.New(color.FgRed).Fprintln(r.out, message) })
}

// pause stops the spinner while print writes, then resumes it
func (r *SpinnerProgressReporter) pause(print func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	print()

	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
