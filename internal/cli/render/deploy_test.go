package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func testPlan() *models.Plan {
	return &models.Plan{
		Group: "nft-patreon",
		Steps: []*models.DeploymentStep{
			{Name: "Referral", Contract: "Referral", Args: []models.Arg{models.Literal(3)}, Confirmations: 5},
			{Name: "Patreon", Contract: "Patreon", Args: []models.Arg{models.Ref("Referral")}, Confirmations: 5},
		},
		Links: []*models.LinkAction{
			{From: "Referral", Operation: "addAllowAddress", Args: []models.Arg{models.Ref("Patreon")}},
		},
	}
}

func TestDeployRenderer_RenderExecutionPlan(t *testing.T) {
	var buf bytes.Buffer
	NewDeployRenderer(&buf).RenderExecutionPlan(testPlan(), &config.Network{Name: "sepolia", ChainID: 11155111})

	out := buf.String()
	assert.Contains(t, out, "Deploying nft-patreon to sepolia (chain 11155111)")
	assert.Contains(t, out, "2 step(s), 1 link(s)")
	assert.Contains(t, out, "1. Referral → Referral(3)")
	assert.Contains(t, out, "2. Patreon → Patreon(ref(Referral)) (depends on: Referral)")
	assert.Contains(t, out, "1. Referral.addAllowAddress(ref(Patreon))")
}

func TestDeployRenderer_RenderRunResult(t *testing.T) {
	plan := testPlan()
	referral := &models.DeploymentResult{
		Step:         plan.Steps[0],
		Address:      "0x0000000000000000000000000000000000000001",
		Verified:     true,
		Verification: &models.VerificationOutcome{Kind: models.AlreadyVerified},
	}

	t.Run("success", func(t *testing.T) {
		patreon := &models.DeploymentResult{
			Step:         plan.Steps[1],
			Address:      "0x0000000000000000000000000000000000000002",
			Verification: &models.VerificationOutcome{Kind: models.Failed, Reason: "nonexistent contract"},
		}
		result := &usecase.RunResult{
			Plan:    plan,
			Order:   []string{"Referral", "Patreon"},
			Results: map[string]*models.DeploymentResult{"Referral": referral, "Patreon": patreon},
			Links:   []*models.LinkResult{{Action: plan.Links[0]}},
			Warnings: []domain.VerificationFailure{
				{Step: "Patreon", Address: patreon.Address, Reason: "nonexistent contract"},
			},
		}

		var buf bytes.Buffer
		NewDeployRenderer(&buf).RenderRunResult(result, "sepolia", nil)

		out := buf.String()
		assert.Contains(t, out, "Deployed 2 contract(s) to sepolia")
		assert.Contains(t, out, "0x0000000000000000000000000000000000000001")
		assert.Contains(t, out, "0x0000000000000000000000000000000000000002")
		assert.Contains(t, out, "Already Verified")
		assert.Contains(t, out, "Links executed: 1/1")
		assert.Contains(t, out, "Patreon at 0x0000000000000000000000000000000000000002 was not verified: nonexistent contract")
	})

	t.Run("failure lists partial results", func(t *testing.T) {
		result := &usecase.RunResult{
			Plan:    plan,
			Order:   []string{"Referral"},
			Results: map[string]*models.DeploymentResult{"Referral": referral},
		}

		var buf bytes.Buffer
		NewDeployRenderer(&buf).RenderRunResult(result, "sepolia", errors.New("boom"))

		out := buf.String()
		assert.Contains(t, out, "Deployment failed")
		assert.Contains(t, out, "Deployed before the failure (1/2)")
		assert.Contains(t, out, "0x0000000000000000000000000000000000000001")
		assert.NotContains(t, out, "Patreon")
	})

	t.Run("dry run", func(t *testing.T) {
		var buf bytes.Buffer
		NewDeployRenderer(&buf).RenderRunResult(&usecase.RunResult{Plan: plan, DryRun: true}, "", nil)
		assert.Contains(t, buf.String(), "no transactions were sent")
	})
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "Already Verified", outcomeLabel(models.AlreadyVerified))
	assert.Equal(t, "Verified", outcomeLabel(models.Verified))
	assert.Equal(t, "Failed", outcomeLabel(models.Failed))
}
