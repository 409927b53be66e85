package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nouspsyche/launchpad/internal/domain/models"
)

// VerifyRecorded re-submits explorer verification for contracts recorded in
// a run journal
type VerifyRecorded struct {
	journal  RunStateStore
	verifier ContractVerifier
	progress ProgressSink
	log      *slog.Logger
}

// NewVerifyRecorded creates a new VerifyRecorded use case
func NewVerifyRecorded(journal RunStateStore, verifier ContractVerifier, progress ProgressSink, log *slog.Logger) *VerifyRecorded {
	return &VerifyRecorded{
		journal:  journal,
		verifier: verifier,
		progress: progress,
		log:      log,
	}
}

// VerifyOptions contains options for verification
type VerifyOptions struct {
	PlanPath string
	Network  string
	Force    bool // re-verify results already marked verified
}

// VerifyResult is the outcome for one recorded deployment
type VerifyResult struct {
	Result  *models.DeploymentResult
	Outcome models.VerificationOutcome
}

// VerifyRecordedResult contains the outcome of a verify run
type VerifyRecordedResult struct {
	RunID    string
	Results  []*VerifyResult
	Skipped  []*models.DeploymentResult // already verified
	Failures int
}

// Run verifies the journaled results in deployment order and saves the
// updated outcomes back to the journal
func (uc *VerifyRecorded) Run(ctx context.Context, opts VerifyOptions) (*VerifyRecordedResult, error) {
	state, err := uc.journal.Load(ctx, opts.PlanPath, opts.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to load run journal: %w", err)
	}

	out := &VerifyRecordedResult{RunID: state.RunID}
	for i, name := range state.Order {
		res, ok := state.Results[name]
		if !ok || res.Address == "" || res.State == models.StepSubmitted {
			continue
		}
		if res.Verified && !opts.Force {
			out.Skipped = append(out.Skipped, res)
			continue
		}

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageVerifying,
			Current: i + 1,
			Total:   len(state.Order),
			Spinner: true,
			Message: fmt.Sprintf("Verifying %s at %s", name, res.Address),
		})

		outcome := uc.verifier.Verify(ctx, models.VerificationRequest{
			Contract:        res.Step.Contract,
			Address:         res.Address,
			ConstructorArgs: models.Values(res.ConstructorArgs),
		})
		res.Verification = &outcome
		res.Verified = outcome.Succeeded()
		if !res.Verified {
			out.Failures++
			uc.log.Warn("verification failed", "step", name, "address", res.Address, "reason", outcome.Reason)
		}
		out.Results = append(out.Results, &VerifyResult{Result: res, Outcome: outcome})
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageRunCompleted})

	if len(out.Results) > 0 {
		if err := uc.journal.Save(ctx, state); err != nil {
			return out, fmt.Errorf("failed to update run journal: %w", err)
		}
	}

	return out, nil
}
