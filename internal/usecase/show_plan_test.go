package usecase

import (
	"context"
	"testing"

	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanLoader struct {
	plan *models.Plan
	err  error
}

func (l stubPlanLoader) Load(ctx context.Context, path string) (*models.Plan, error) {
	return l.plan, l.err
}

func TestShowPlan_Run(t *testing.T) {
	t.Run("collects dependents", func(t *testing.T) {
		uc := NewShowPlan(stubPlanLoader{plan: patreonPlan()})

		result, err := uc.Run(context.Background(), "plans/patreon.yaml")
		require.NoError(t, err)

		assert.Equal(t, []string{"Patreon", "link 1"}, result.Dependents["Referral"])
		assert.Equal(t, []string{"link 1"}, result.Dependents["Patreon"])
	})

	t.Run("invalid plan", func(t *testing.T) {
		uc := NewShowPlan(stubPlanLoader{plan: &models.Plan{}})

		_, err := uc.Run(context.Background(), "empty.yaml")
		assert.ErrorIs(t, err, domain.ErrInvalidPlan)
	})
}
