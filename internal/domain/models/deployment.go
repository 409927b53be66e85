package models

import (
	"time"
)

// DefaultConfirmations is the depth a deployment waits for when neither the
// step nor the plan sets one.
const DefaultConfirmations uint64 = 5

// StepState tracks a step through the deployment workflow.
// Transitions only move forward. A step with no journal entry is pending.
type StepState string

const (
	StepSubmitted             StepState = "submitted"
	StepConfirmed             StepState = "confirmed"
	StepVerificationAttempted StepState = "verification_attempted"
	StepDone                  StepState = "done"
)

// DeploymentStep describes one contract instantiation
type DeploymentStep struct {
	Name          string `json:"name"`
	Contract      string `json:"contract"`
	Args          []Arg  `json:"args"`
	Confirmations uint64 `json:"confirmations"`
}

// References returns the names of the steps this step depends on, in argument order.
func (s *DeploymentStep) References() []string {
	var refs []string
	for _, a := range s.Args {
		if a.IsRef() {
			refs = append(refs, a.Ref)
		}
	}
	return refs
}

// DeploymentResult is the outcome of a completed step
type DeploymentResult struct {
	Step            *DeploymentStep      `json:"step"`
	Address         string               `json:"address"`
	TransactionHash string               `json:"transactionHash"`
	ConstructorArgs []Arg                `json:"constructorArgs"` // resolved, literal only
	Verified        bool                 `json:"verified"`
	Verification    *VerificationOutcome `json:"verification,omitempty"`
	State           StepState            `json:"state"`
	DeployedAt      time.Time            `json:"deployedAt"`
}

// Confirmed reports whether the deployment reached its confirmation depth
func (r *DeploymentResult) Confirmed() bool {
	switch r.State {
	case StepConfirmed, StepVerificationAttempted, StepDone:
		return true
	}
	return false
}

// Submission is a transaction accepted by the ledger
type Submission struct {
	TxHash string
	// Address is the contract address computed from sender and nonce; empty for calls.
	Address string
}

// LinkAction is a post-deployment call on a deployed contract
type LinkAction struct {
	From          string `json:"from"`
	Operation     string `json:"operation"`
	Args          []Arg  `json:"args"`
	Confirmations uint64 `json:"confirmations"`
}

// LinkResult records an executed link action
type LinkResult struct {
	Action          *LinkAction `json:"action"`
	Target          string      `json:"target"`
	Args            []Arg       `json:"args"` // resolved
	TransactionHash string      `json:"transactionHash"`
}
