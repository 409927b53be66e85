package app

import (
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Plans    usecase.PlanLoader
	Selector usecase.InteractiveSelector

	// Use cases
	DeployPlan     *usecase.DeployPlan
	VerifyRecorded *usecase.VerifyRecorded
	ShowPlan       *usecase.ShowPlan
	ListNetworks   *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	plans usecase.PlanLoader,
	selector usecase.InteractiveSelector,
	deployPlan *usecase.DeployPlan,
	verifyRecorded *usecase.VerifyRecorded,
	showPlan *usecase.ShowPlan,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:         cfg,
		Plans:          plans,
		Selector:       selector,
		DeployPlan:     deployPlan,
		VerifyRecorded: verifyRecorded,
		ShowPlan:       showPlan,
		ListNetworks:   listNetworks,
	}, nil
}
