package usecase

import (
	"context"

	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
)

// LedgerClient submits transactions to the network and observes their confirmation
type LedgerClient interface {
	// Submit sends a contract creation transaction
	Submit(ctx context.Context, contract string, args []any) (*models.Submission, error)
	// WaitForConfirmations blocks until the transaction is confirmations blocks deep
	WaitForConfirmations(ctx context.Context, txHash string, confirmations uint64) error
	// GetAddress returns the address of a confirmed contract creation
	GetAddress(ctx context.Context, submission *models.Submission) (string, error)
	// Call sends a state-changing call to a deployed contract
	Call(ctx context.Context, contract, address, method string, args []any) (*models.Submission, error)
}

// ContractVerifier registers deployed contracts with a block explorer
type ContractVerifier interface {
	Verify(ctx context.Context, req models.VerificationRequest) models.VerificationOutcome
}

// ArtifactRepository looks up compiled contracts by name or fully qualified name
type ArtifactRepository interface {
	FindArtifact(ctx context.Context, name string) (*models.Artifact, error)
	// SourceBundle returns the compiler input an explorer needs to verify the artifact
	SourceBundle(ctx context.Context, artifact *models.Artifact) (*models.SourceBundle, error)
}

// InteractiveSelector handles operator prompts
type InteractiveSelector interface {
	SelectContract(ctx context.Context, artifacts []*models.Artifact, prompt string) (*models.Artifact, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// PlanLoader reads a deployment plan
type PlanLoader interface {
	Load(ctx context.Context, path string) (*models.Plan, error)
}

// RunStateStore persists the run journal
type RunStateStore interface {
	Load(ctx context.Context, planPath, network string) (*models.RunState, error)
	Save(ctx context.Context, state *models.RunState) error
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    ExecutionStage
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the deployment process
type ExecutionStage string

const (
	StagePlanCreated   ExecutionStage = "plan_created"
	StageStepStarting  ExecutionStage = "step_starting"
	StageSubmitted     ExecutionStage = "submitted"
	StageConfirming    ExecutionStage = "confirming"
	StageConfirmed     ExecutionStage = "confirmed"
	StageVerifying     ExecutionStage = "verifying"
	StageStepCompleted ExecutionStage = "step_completed"
	StageStepSkipped   ExecutionStage = "step_skipped"
	StageLinkStarting  ExecutionStage = "link_starting"
	StageLinkCompleted ExecutionStage = "link_completed"
	StageRunCompleted  ExecutionStage = "run_completed"
	StageRunFailed     ExecutionStage = "run_failed"
)
