//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/nouspsyche/launchpad/internal/adapters"
	"github.com/nouspsyche/launchpad/internal/config"
	"github.com/nouspsyche/launchpad/internal/logging"
	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployPlan,
		usecase.NewVerifyRecorded,
		usecase.NewShowPlan,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
