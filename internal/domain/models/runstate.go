package models

import (
	"time"
)

// RunStatus is the overall status of a journaled run
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunFailed    RunStatus = "failed"
	RunCompleted RunStatus = "completed"
)

// RunState is the on-disk journal of a deployment run
type RunState struct {
	RunID     string                       `json:"runId"`
	PlanPath  string                       `json:"planPath"`
	Network   string                       `json:"network"`
	ChainID   uint64                       `json:"chainId"`
	Group     string                       `json:"group"`
	StartedAt time.Time                    `json:"startedAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`
	Status    RunStatus                    `json:"status"`
	Error     string                       `json:"error,omitempty"`
	Order     []string                     `json:"order"`
	Results   map[string]*DeploymentResult `json:"results"`
	Links     []*LinkResult                `json:"links,omitempty"`
}
