package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidPlan is returned when a deployment plan fails validation
	ErrInvalidPlan = errors.New("invalid plan")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrContractNotFound is returned when a contract artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrNoAccounts is returned when a network has no signing account configured
	ErrNoAccounts = errors.New("no accounts configured")
)

// UnresolvedReferenceError is returned when a step or link argument references
// a step that has not produced a result before it is needed.
type UnresolvedReferenceError struct {
	Step      string // step or link that owns the argument
	Reference string // referenced step name
	Position  int    // argument index
}

func (e UnresolvedReferenceError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%s: target %q is not a step of the plan", e.Step, e.Reference)
	}
	return fmt.Sprintf("%s: argument %d references %q which is not deployed before it", e.Step, e.Position, e.Reference)
}

// DeploymentError is returned when the ledger rejects a deployment submission.
// It aborts the run since later steps may depend on the address.
type DeploymentError struct {
	Step     string
	Contract string
	Err      error
}

func (e DeploymentError) Error() string {
	return fmt.Sprintf("deployment of %s (%s) failed: %v", e.Step, e.Contract, e.Err)
}

func (e DeploymentError) Unwrap() error { return e.Err }

// ConfirmationTimeoutError is returned when a transaction does not reach the
// required depth in time. The transaction may still land later.
type ConfirmationTimeoutError struct {
	Step          string
	TxHash        string
	Confirmations uint64
	Timeout       time.Duration
}

func (e ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("%s: transaction %s did not reach %d confirmations within %s; check the explorer before re-running",
		e.Step, e.TxHash, e.Confirmations, e.Timeout)
}

// VerificationFailure records a non-fatal explorer verification failure.
type VerificationFailure struct {
	Step    string
	Address string
	Reason  string
}

func (e VerificationFailure) Error() string {
	return fmt.Sprintf("verification of %s at %s failed: %s", e.Step, e.Address, e.Reason)
}

// LinkActionError is returned when a post-deployment call fails. Deployments
// made before it are not rolled back.
type LinkActionError struct {
	Index     int
	From      string
	Operation string
	Err       error
}

func (e LinkActionError) Error() string {
	return fmt.Sprintf("link %d (%s.%s) failed: %v", e.Index+1, e.From, e.Operation, e.Err)
}

func (e LinkActionError) Unwrap() error { return e.Err }

// AmbiguousContractError is returned when a short contract name matches
// several artifacts.
type AmbiguousContractError struct {
	Name    string
	Matches []string // fully qualified names
}

func (e AmbiguousContractError) Error() string {
	var suggestions []string
	for _, m := range e.Matches {
		suggestions = append(suggestions, "  - "+m)
	}
	return fmt.Sprintf("multiple contracts found matching %q - use the fully qualified path:Name form:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}

// UnknownNetworkError is returned when a network name is not configured.
type UnknownNetworkError struct {
	Name        string
	Suggestions []string
}

func (e UnknownNetworkError) Error() string {
	msg := fmt.Sprintf("network '%s' not found in launchpad.toml [networks]", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}
