package adapters

import (
	"github.com/google/wire"
	internalconfig "github.com/nouspsyche/launchpad/internal/adapters/config"
	"github.com/nouspsyche/launchpad/internal/adapters/fs"
	"github.com/nouspsyche/launchpad/internal/adapters/interactive"
	"github.com/nouspsyche/launchpad/internal/adapters/ledger"
	"github.com/nouspsyche/launchpad/internal/adapters/planfile"
	"github.com/nouspsyche/launchpad/internal/adapters/repository/artifacts"
	"github.com/nouspsyche/launchpad/internal/adapters/verification"
	"github.com/nouspsyche/launchpad/internal/config"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRunStateStoreAdapter,
	wire.Bind(new(usecase.RunStateStore), new(*fs.RunStateStoreAdapter)),

	planfile.NewLoader,
	wire.Bind(new(usecase.PlanLoader), new(*planfile.Loader)),
)

// ArtifactSet provides the compiled artifact repository
var ArtifactSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// LedgerSet provides the JSON-RPC ledger client
var LedgerSet = wire.NewSet(
	ledger.NewClient,
	wire.Bind(new(usecase.LedgerClient), new(*ledger.Client)),
)

// VerificationSet provides block explorer verification
var VerificationSet = wire.NewSet(
	verification.NewClient,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.Client)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ArtifactSet,
	LedgerSet,
	VerificationSet,
	InteractiveSet,
	ConfigSet,
)
