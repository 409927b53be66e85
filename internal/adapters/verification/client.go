package verification

import (
	"context"
	"fmt"
	"log/slog"

	abiencoder "github.com/nouspsyche/launchpad/internal/adapters/abi"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// Client verifies deployed contracts on the network's block explorer
type Client struct {
	explorer  Explorer // nil when the network has no explorer section
	artifacts usecase.ArtifactRepository
	network   string
	log       *slog.Logger
}

// NewClient creates a verification client for the configured network
func NewClient(cfg *config.RuntimeConfig, artifacts usecase.ArtifactRepository, log *slog.Logger) *Client {
	c := &Client{
		artifacts: artifacts,
		log:       log,
	}
	if cfg.Network != nil {
		c.network = cfg.Network.Name
		if cfg.Network.Explorer != nil {
			c.explorer = NewEtherscanExplorer(cfg.Network.Explorer, cfg.PollInterval)
		}
	}
	return c
}

// NewClientWithExplorer creates a client that submits to the given explorer
func NewClientWithExplorer(explorer Explorer, artifacts usecase.ArtifactRepository, log *slog.Logger) *Client {
	return &Client{
		explorer:  explorer,
		artifacts: artifacts,
		log:       log,
	}
}

// Verify submits the contract source and classifies the explorer's answer.
// It never returns an error; failures are reported in the outcome.
func (c *Client) Verify(ctx context.Context, req models.VerificationRequest) models.VerificationOutcome {
	outcome := Classify(c.submit(ctx, req))
	c.log.Debug("verification finished", "contract", req.Contract, "address", req.Address, "outcome", outcome.Kind)
	return outcome
}

func (c *Client) submit(ctx context.Context, req models.VerificationRequest) error {
	if c.explorer == nil {
		return fmt.Errorf("no block explorer configured for network %s", c.network)
	}

	artifact, err := c.artifacts.FindArtifact(ctx, req.Contract)
	if err != nil {
		return err
	}
	bundle, err := c.artifacts.SourceBundle(ctx, artifact)
	if err != nil {
		return err
	}
	encoded, err := abiencoder.EncodeConstructorArgs(artifact.ABI, req.ConstructorArgs)
	if err != nil {
		return err
	}

	return c.explorer.Submit(ctx, Submission{
		Address:         req.Address,
		ContractName:    bundle.FullyQualifiedName,
		CompilerVersion: bundle.CompilerVersion,
		SourceCode:      bundle.StandardJSONInput,
		ConstructorArgs: encoded,
	})
}

// Ensure the adapter implements the interface
var _ usecase.ContractVerifier = (*Client)(nil)
