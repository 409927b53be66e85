package progress

import (
	"context"

	"github.com/nouspsyche/launchpad/internal/cli/render"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// DeployProgress renders a deployment run as it happens. The execution plan
// itself is rendered by the deploy command before the run starts.
type DeployProgress struct {
	renderer *render.DeployRenderer
	spinner  *SpinnerProgressReporter
}

// NewDeployProgress creates a new deploy progress reporter
func NewDeployProgress(renderer *render.DeployRenderer, interactive bool) *DeployProgress {
	return &DeployProgress{
		renderer: renderer,
		spinner:  NewSpinnerProgressReporter(renderer.GetWriter(), interactive),
	}
}

// OnProgress handles progress events for deployment runs
func (p *DeployProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case usecase.StagePlanCreated:
		// Already on screen

	case usecase.StageStepStarting:
		if step, ok := event.Metadata.(*models.DeploymentStep); ok {
			p.spinner.Stop()
			p.renderer.RenderStepStarting(step, event.Current, event.Total)
		}

	case usecase.StageStepSkipped:
		if res, ok := event.Metadata.(*models.DeploymentResult); ok {
			p.renderer.RenderStepSkipped(res, event.Current, event.Total)
		}

	case usecase.StageStepCompleted:
		if res, ok := event.Metadata.(*models.DeploymentResult); ok {
			p.spinner.Stop()
			p.renderer.RenderStepResult(res)
		}

	case usecase.StageLinkStarting:
		if link, ok := event.Metadata.(*models.LinkAction); ok {
			p.spinner.Stop()
			p.renderer.RenderLinkStarting(link, event.Current, event.Total)
		}

	case usecase.StageLinkCompleted:
		if res, ok := event.Metadata.(*models.LinkResult); ok {
			p.spinner.Stop()
			p.renderer.RenderLinkResult(res)
		}

	case usecase.StageRunCompleted, usecase.StageRunFailed:
		// Final summary or partial results are rendered by the CLI command after this returns
		p.spinner.Stop()

	default:
		p.spinner.OnProgress(ctx, event)
	}
}

// Info forwards info messages to the spinner
func (p *DeployProgress) Info(message string) {
	p.spinner.Info(message)
}

// Error forwards error messages to the spinner
func (p *DeployProgress) Error(message string) {
	p.spinner.Error(message)
}

// Ensure DeployProgress implements ProgressSink
var _ usecase.ProgressSink = (*DeployProgress)(nil)
