package planfile

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const patreonPlan = `
group: nft_patreon
confirmations: 3
steps:
  - name: referral
    contract: ReferralRegistry
    args:
      - 3
      - "0xecf138865d780e03d60B7Ab98B0c6081330780A0"
      - 0x666d0bb670b0A241a33C4e60dFd33907F224D9f3
  - name: patreon
    contract: NFTPatreonV1
    confirmations: 1
    args:
      - ipfs://base/
      - {ref: referral}
      - {ether: "0.05"}
      - {units: "1.5", decimals: 6}
      - true
links:
  - from: referral
    call: addAllowAddress
    args: [{ref: patreon}]
`

func TestLoader_Parse(t *testing.T) {
	loader := NewLoader(&config.RuntimeConfig{Confirmations: lo.ToPtr(uint64(5))})

	plan, err := loader.Parse([]byte(patreonPlan))
	require.NoError(t, err)
	require.NoError(t, plan.Validate())

	assert.Equal(t, "nft_patreon", plan.Group)
	require.Len(t, plan.Steps, 2)

	referral := plan.Steps[0]
	assert.Equal(t, "ReferralRegistry", referral.Contract)
	assert.Equal(t, uint64(3), referral.Confirmations)
	assert.Equal(t, models.Literal(big.NewInt(3)), referral.Args[0])
	assert.Equal(t, models.Literal("0xecf138865d780e03d60B7Ab98B0c6081330780A0"), referral.Args[1])
	assert.Equal(t, models.Literal("0x666d0bb670b0A241a33C4e60dFd33907F224D9f3"), referral.Args[2])

	patreon := plan.Steps[1]
	assert.Equal(t, uint64(1), patreon.Confirmations)
	assert.Equal(t, models.Literal("ipfs://base/"), patreon.Args[0])
	assert.Equal(t, models.Ref("referral"), patreon.Args[1])
	assert.Equal(t, models.Literal(big.NewInt(50000000000000000)), patreon.Args[2])
	assert.Equal(t, models.Literal(big.NewInt(1500000)), patreon.Args[3])
	assert.Equal(t, models.Literal(true), patreon.Args[4])

	require.Len(t, plan.Links, 1)
	link := plan.Links[0]
	assert.Equal(t, "referral", link.From)
	assert.Equal(t, "addAllowAddress", link.Operation)
	assert.Equal(t, []models.Arg{models.Ref("patreon")}, link.Args)
	assert.Equal(t, uint64(1), link.Confirmations)
}

func TestLoader_ConfirmationDefaults(t *testing.T) {
	doc := []byte("steps:\n  - name: nft\n    contract: NousPsycheNFTV2\n")

	plan, err := NewLoader(&config.RuntimeConfig{Confirmations: lo.ToPtr(uint64(2))}).Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), plan.Steps[0].Confirmations)

	plan, err = NewLoader(&config.RuntimeConfig{}).Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultConfirmations, plan.Steps[0].Confirmations)

	plan, err = NewLoader(&config.RuntimeConfig{Confirmations: lo.ToPtr(uint64(0))}).Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), plan.Steps[0].Confirmations)
}

func TestLoader_ExplicitZeroConfirmations(t *testing.T) {
	loader := NewLoader(&config.RuntimeConfig{Confirmations: lo.ToPtr(uint64(4))})

	t.Run("on the plan", func(t *testing.T) {
		plan, err := loader.Parse([]byte(`
confirmations: 0
steps:
  - name: nft
    contract: NousPsycheNFTV2
  - name: registry
    contract: ReferralRegistry
    confirmations: 2
`))
		require.NoError(t, err)
		assert.Equal(t, uint64(0), plan.Steps[0].Confirmations)
		assert.Equal(t, uint64(2), plan.Steps[1].Confirmations)
	})

	t.Run("on a step", func(t *testing.T) {
		plan, err := loader.Parse([]byte(`
steps:
  - name: nft
    contract: NousPsycheNFTV2
    confirmations: 0
  - name: registry
    contract: ReferralRegistry
links:
  - from: registry
    call: addAllowAddress
    args: [{ref: nft}]
    confirmations: 0
`))
		require.NoError(t, err)
		assert.Equal(t, uint64(0), plan.Steps[0].Confirmations)
		assert.Equal(t, uint64(4), plan.Steps[1].Confirmations)
		assert.Equal(t, uint64(0), plan.Links[0].Confirmations)
	})
}

func TestLoader_ParseErrors(t *testing.T) {
	loader := NewLoader(&config.RuntimeConfig{})

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "fractional literal",
			doc:     "steps:\n  - name: a\n    contract: A\n    args: [0.05]\n",
			wantErr: "needs {ether: ...}",
		},
		{
			name:    "empty argument",
			doc:     "steps:\n  - name: a\n    contract: A\n    args: [~]\n",
			wantErr: "empty argument",
		},
		{
			name:    "empty argument after literals",
			doc:     "steps:\n  - name: a\n    contract: A\n    args: [1, null]\n",
			wantErr: "step 1 (a): invalid plan: argument 1 is an empty argument",
		},
		{
			name:    "empty link argument",
			doc:     "steps:\n  - name: a\n    contract: A\nlinks:\n  - from: a\n    call: set\n    args: [~]\n",
			wantErr: "empty argument",
		},
		{
			name:    "units without decimals",
			doc:     "steps:\n  - name: a\n    contract: A\n    args: [{units: \"1\"}]\n",
			wantErr: "units requires decimals",
		},
		{
			name:    "unknown mapping",
			doc:     "steps:\n  - name: a\n    contract: A\n    args: [{wei: 1}]\n",
			wantErr: "needs one of ref, ether or units",
		},
		{
			name:    "too many decimals",
			doc:     "steps:\n  - name: a\n    contract: A\n    args: [{units: \"0.1234567\", decimals: 6}]\n",
			wantErr: "more than 6 decimals",
		},
		{
			name:    "not yaml",
			doc:     "steps: [",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoader_EmptyArgumentIsInvalidPlan(t *testing.T) {
	_, err := NewLoader(&config.RuntimeConfig{}).Parse([]byte("steps:\n  - name: a\n    contract: A\n    args: [~]\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(patreonPlan), 0644))

	plan, err := NewLoader(&config.RuntimeConfig{}).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, plan.Steps, 2)

	_, err = NewLoader(&config.RuntimeConfig{}).Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		value    string
		decimals int
		want     string
	}{
		{"0.05", 18, "50000000000000000"},
		{"1", 18, "1000000000000000000"},
		{".5", 1, "5"},
		{"-2.5", 2, "-250"},
		{"100", 0, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseUnits(tt.value, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := ParseUnits("abc", 2)
	assert.ErrorContains(t, err, "invalid amount")
}
