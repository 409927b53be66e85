package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/nouspsyche/launchpad/internal/domain/models"
)

// DeployPlan deploys the steps of a plan in order, verifies each contract and
// then executes the plan's link actions.
type DeployPlan struct {
	ledger   LedgerClient
	verifier ContractVerifier
	journal  RunStateStore
	progress ProgressSink
	log      *slog.Logger
}

// NewDeployPlan creates a new deploy plan use case
func NewDeployPlan(
	ledger LedgerClient,
	verifier ContractVerifier,
	journal RunStateStore,
	progress ProgressSink,
	log *slog.Logger,
) *DeployPlan {
	return &DeployPlan{
		ledger:   ledger,
		verifier: verifier,
		journal:  journal,
		progress: progress,
		log:      log,
	}
}

// RunOptions contains parameters for a deployment run
type RunOptions struct {
	PlanPath            string
	Network             string
	ChainID             uint64
	ConfirmationTimeout time.Duration // 0 waits indefinitely
	SkipVerification    bool
	Resume              bool // continue the journaled run of the same plan and network
	DryRun              bool
}

// RunResult contains the outcome of a run. On a fatal error it holds
// everything that completed before the failure.
type RunResult struct {
	RunID    string
	Plan     *models.Plan
	Order    []string // step names in completion order
	Results  map[string]*models.DeploymentResult
	Links    []*models.LinkResult
	Resumed  []string // steps taken over from the journal
	Warnings []domain.VerificationFailure
	DryRun   bool
}

// Deployed returns the results in completion order
func (r *RunResult) Deployed() []*models.DeploymentResult {
	out := make([]*models.DeploymentResult, 0, len(r.Order))
	for _, name := range r.Order {
		out = append(out, r.Results[name])
	}
	return out
}

func (r *RunResult) record(res *models.DeploymentResult) {
	if _, exists := r.Results[res.Step.Name]; !exists {
		r.Order = append(r.Order, res.Step.Name)
	}
	r.Results[res.Step.Name] = res
}

// Run executes the plan. Steps run strictly in list order because later
// constructor arguments may reference earlier addresses.
func (d *DeployPlan) Run(ctx context.Context, plan *models.Plan, opts RunOptions) (*RunResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	result := &RunResult{
		Plan:    plan,
		Results: make(map[string]*models.DeploymentResult),
		DryRun:  opts.DryRun,
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StagePlanCreated,
		Total:    len(plan.Steps),
		Metadata: plan,
	})

	if opts.DryRun {
		return result, nil
	}

	state, err := d.openState(ctx, plan, opts)
	if err != nil {
		return nil, err
	}
	result.RunID = state.RunID

	for i, step := range plan.Steps {
		if prev := resumable(state, step); prev != nil {
			result.record(prev)
			result.Resumed = append(result.Resumed, step.Name)
			d.progress.OnProgress(ctx, ProgressEvent{
				Stage:    StageStepSkipped,
				Current:  i + 1,
				Total:    len(plan.Steps),
				Metadata: prev,
			})
			continue
		}

		if prev, ok := state.Results[step.Name]; ok && prev.State == models.StepSubmitted {
			d.log.Warn("previous deployment never confirmed, deploying again", "step", step.Name, "tx", prev.TransactionHash)
		}

		if err := d.deployStep(ctx, i, step, result, state, opts); err != nil {
			d.fail(ctx, state, err)
			return result, err
		}
	}

	doneLinks := len(state.Links)
	for i, link := range plan.Links {
		if i < doneLinks && sameLink(state.Links[i].Action, link) {
			result.Links = append(result.Links, state.Links[i])
			continue
		}

		linkResult, err := d.executeLink(ctx, i, link, result, opts)
		if err != nil {
			d.fail(ctx, state, err)
			return result, err
		}
		result.Links = append(result.Links, linkResult)
		state.Links = append(state.Links[:min(i, len(state.Links))], linkResult)
		d.save(ctx, state)
	}

	state.Status = models.RunCompleted
	d.save(ctx, state)

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageRunCompleted,
		Metadata: result,
	})

	return result, nil
}

// deployStep walks one step through submitted, confirmed and verified
func (d *DeployPlan) deployStep(ctx context.Context, index int, step *models.DeploymentStep, result *RunResult, state *models.RunState, opts RunOptions) error {
	args, err := resolveArgs(step.Name, step.Args, result.Results)
	if err != nil {
		return err
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageStepStarting,
		Current:  index + 1,
		Total:    len(result.Plan.Steps),
		Metadata: step,
	})

	submission, err := d.ledger.Submit(ctx, step.Contract, models.Values(args))
	if err != nil {
		return domain.DeploymentError{Step: step.Name, Contract: step.Contract, Err: err}
	}
	d.log.Debug("deployment submitted", "step", step.Name, "contract", step.Contract, "tx", submission.TxHash)

	// Journaled before the wait so an interrupted run still shows the tx hash
	res := &models.DeploymentResult{
		Step:            step,
		Address:         submission.Address,
		TransactionHash: submission.TxHash,
		ConstructorArgs: args,
		State:           models.StepSubmitted,
	}
	state.Results[step.Name] = res
	d.save(ctx, state)

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageSubmitted,
		Current:  index + 1,
		Total:    len(result.Plan.Steps),
		Metadata: res,
	})

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Spinner: true,
		Message: fmt.Sprintf("Waiting for %d confirmation(s) of %s (%s)", step.Confirmations, step.Name, submission.TxHash),
	})

	if err := d.waitForConfirmations(ctx, step.Name, submission.TxHash, step.Confirmations, opts.ConfirmationTimeout); err != nil {
		var timeout domain.ConfirmationTimeoutError
		if errors.As(err, &timeout) {
			return err
		}
		return domain.DeploymentError{Step: step.Name, Contract: step.Contract, Err: err}
	}

	address, err := d.ledger.GetAddress(ctx, submission)
	if err != nil {
		return domain.DeploymentError{Step: step.Name, Contract: step.Contract, Err: fmt.Errorf("failed to read contract address: %w", err)}
	}

	res.Address = address
	res.State = models.StepConfirmed
	res.DeployedAt = time.Now()
	result.record(res)
	state.Order = result.Order
	d.save(ctx, state)

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageConfirmed,
		Metadata: res,
	})

	if !opts.SkipVerification {
		d.verify(ctx, res, result)
	}

	res.State = models.StepDone
	d.save(ctx, state)

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageStepCompleted,
		Current:  index + 1,
		Total:    len(result.Plan.Steps),
		Metadata: res,
	})

	return nil
}

// verify attempts explorer verification. Failures are recorded and logged
// but never abort the run: the contract is already live.
func (d *DeployPlan) verify(ctx context.Context, res *models.DeploymentResult, result *RunResult) {
	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageVerifying,
		Spinner: true,
		Message: fmt.Sprintf("Verifying %s at %s", res.Step.Name, res.Address),
	})

	outcome := d.verifier.Verify(ctx, models.VerificationRequest{
		Contract:        res.Step.Contract,
		Address:         res.Address,
		ConstructorArgs: models.Values(res.ConstructorArgs),
	})
	res.Verification = &outcome
	res.Verified = outcome.Succeeded()
	res.State = models.StepVerificationAttempted

	if !res.Verified {
		failure := domain.VerificationFailure{Step: res.Step.Name, Address: res.Address, Reason: outcome.Reason}
		result.Warnings = append(result.Warnings, failure)
		d.log.Warn("verification failed", "step", res.Step.Name, "address", res.Address, "reason", outcome.Reason)
	}
}

// executeLink performs one post-deployment call and waits for it to confirm
func (d *DeployPlan) executeLink(ctx context.Context, index int, link *models.LinkAction, result *RunResult, opts RunOptions) (*models.LinkResult, error) {
	wrap := func(err error) error {
		return domain.LinkActionError{Index: index, From: link.From, Operation: link.Operation, Err: err}
	}

	label := fmt.Sprintf("link %d", index+1)
	target, ok := result.Results[link.From]
	if !ok {
		return nil, wrap(models.UnresolvedRef(label, link.From, -1))
	}
	args, err := resolveArgs(label, link.Args, result.Results)
	if err != nil {
		return nil, wrap(err)
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageLinkStarting,
		Current:  index + 1,
		Total:    len(result.Plan.Links),
		Metadata: link,
	})

	submission, err := d.ledger.Call(ctx, target.Step.Contract, target.Address, link.Operation, models.Values(args))
	if err != nil {
		return nil, wrap(err)
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Spinner: true,
		Message: fmt.Sprintf("Waiting for %s.%s (%s)", link.From, link.Operation, submission.TxHash),
	})

	if err := d.waitForConfirmations(ctx, label, submission.TxHash, max(link.Confirmations, 1), opts.ConfirmationTimeout); err != nil {
		return nil, wrap(err)
	}

	linkResult := &models.LinkResult{
		Action:          link,
		Target:          target.Address,
		Args:            args,
		TransactionHash: submission.TxHash,
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageLinkCompleted,
		Current:  index + 1,
		Total:    len(result.Plan.Links),
		Metadata: linkResult,
	})

	return linkResult, nil
}

// waitForConfirmations bounds the ledger wait with the configured timeout.
// A deadline hit by the timeout (not by the caller) becomes ConfirmationTimeoutError.
func (d *DeployPlan) waitForConfirmations(ctx context.Context, owner, txHash string, confirmations uint64, timeout time.Duration) error {
	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := d.ledger.WaitForConfirmations(waitCtx, txHash, confirmations)
	if err == nil {
		return nil
	}
	if timeout > 0 && ctx.Err() == nil && errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
		return domain.ConfirmationTimeoutError{
			Step:          owner,
			TxHash:        txHash,
			Confirmations: confirmations,
			Timeout:       timeout,
		}
	}
	return fmt.Errorf("waiting for %s: %w", txHash, err)
}

// openState starts a new journal or reopens the previous one when resuming
func (d *DeployPlan) openState(ctx context.Context, plan *models.Plan, opts RunOptions) (*models.RunState, error) {
	if opts.Resume {
		if d.journal == nil {
			return nil, fmt.Errorf("failed to resume: no run journal available")
		}
		prev, err := d.journal.Load(ctx, opts.PlanPath, opts.Network)
		if err != nil {
			return nil, fmt.Errorf("failed to resume: %w", err)
		}
		if prev.Status == models.RunCompleted {
			return nil, fmt.Errorf("previous run of %s on %s already completed successfully", opts.PlanPath, opts.Network)
		}
		if prev.Results == nil {
			prev.Results = make(map[string]*models.DeploymentResult)
		}
		prev.Status = models.RunRunning
		prev.Error = ""
		d.log.Info("resuming run", "run", prev.RunID, "journaled_steps", len(prev.Order))
		return prev, nil
	}

	state := &models.RunState{
		RunID:     uuid.NewString(),
		PlanPath:  opts.PlanPath,
		Network:   opts.Network,
		ChainID:   opts.ChainID,
		Group:     plan.Group,
		StartedAt: time.Now(),
		Status:    models.RunRunning,
		Results:   make(map[string]*models.DeploymentResult),
	}
	d.save(ctx, state)
	return state, nil
}

func (d *DeployPlan) fail(ctx context.Context, state *models.RunState, err error) {
	state.Status = models.RunFailed
	state.Error = err.Error()
	d.save(ctx, state)

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageRunFailed,
		Message:  err.Error(),
		Metadata: err,
	})
}

// save writes the journal; a write failure never fails the run
func (d *DeployPlan) save(ctx context.Context, state *models.RunState) {
	if d.journal == nil {
		return
	}
	state.UpdatedAt = time.Now()
	if err := d.journal.Save(ctx, state); err != nil {
		d.log.Warn("failed to save run journal", "run", state.RunID, "error", err)
	}
}

// resumable returns the journaled result for a step confirmed by a previous
// run. A step that was only submitted is deployed again.
func resumable(state *models.RunState, step *models.DeploymentStep) *models.DeploymentResult {
	prev, ok := state.Results[step.Name]
	if !ok || prev.Address == "" || prev.Step == nil || prev.Step.Contract != step.Contract {
		return nil
	}
	if !prev.Confirmed() {
		return nil
	}
	return prev
}

func sameLink(a, b *models.LinkAction) bool {
	return a != nil && b != nil && a.From == b.From && a.Operation == b.Operation
}

// resolveArgs substitutes step references with the referenced deployment address
func resolveArgs(owner string, args []models.Arg, results map[string]*models.DeploymentResult) ([]models.Arg, error) {
	resolved := make([]models.Arg, len(args))
	for i, arg := range args {
		if !arg.IsRef() {
			resolved[i] = arg
			continue
		}
		res, ok := results[arg.Ref]
		if !ok {
			return nil, models.UnresolvedRef(owner, arg.Ref, i)
		}
		resolved[i] = models.Literal(res.Address)
	}
	return resolved, nil
}
