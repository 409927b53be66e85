package models

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(name, contract string, args ...Arg) *DeploymentStep {
	return &DeploymentStep{Name: name, Contract: contract, Args: args, Confirmations: 1}
}

func TestPlan_Validate(t *testing.T) {
	tests := []struct {
		name    string
		plan    *Plan
		wantErr error
		wantRef *domain.UnresolvedReferenceError
	}{
		{
			name: "valid chain of references",
			plan: &Plan{
				Steps: []*DeploymentStep{
					step("referral", "ReferralRegistry", Literal(3)),
					step("patreon", "NFTPatreonV1", Ref("referral")),
				},
				Links: []*LinkAction{{From: "referral", Operation: "addAllowAddress", Args: []Arg{Ref("patreon")}}},
			},
		},
		{
			name:    "empty plan",
			plan:    &Plan{},
			wantErr: domain.ErrInvalidPlan,
		},
		{
			name:    "duplicate names",
			plan:    &Plan{Steps: []*DeploymentStep{step("a", "A"), step("a", "B")}},
			wantErr: domain.ErrInvalidPlan,
		},
		{
			name:    "missing contract",
			plan:    &Plan{Steps: []*DeploymentStep{step("a", "")}},
			wantErr: domain.ErrInvalidPlan,
		},
		{
			name:    "forward reference",
			plan:    &Plan{Steps: []*DeploymentStep{step("a", "A", Literal("x"), Ref("b")), step("b", "B")}},
			wantRef: &domain.UnresolvedReferenceError{Step: "a", Reference: "b", Position: 1},
		},
		{
			name:    "self reference",
			plan:    &Plan{Steps: []*DeploymentStep{step("a", "A", Ref("a"))}},
			wantRef: &domain.UnresolvedReferenceError{Step: "a", Reference: "a", Position: 0},
		},
		{
			name: "link to unknown step",
			plan: &Plan{
				Steps: []*DeploymentStep{step("a", "A")},
				Links: []*LinkAction{{From: "b", Operation: "set"}},
			},
			wantRef: &domain.UnresolvedReferenceError{Step: "link 1", Reference: "b", Position: -1},
		},
		{
			name:    "empty step argument",
			plan:    &Plan{Steps: []*DeploymentStep{step("a", "A", Literal(1), Arg{})}},
			wantErr: domain.ErrInvalidPlan,
		},
		{
			name: "empty link argument",
			plan: &Plan{
				Steps: []*DeploymentStep{step("a", "A")},
				Links: []*LinkAction{{From: "a", Operation: "set", Args: []Arg{{Kind: ArgLiteral}}}},
			},
			wantErr: domain.ErrInvalidPlan,
		},
		{
			name: "link without operation",
			plan: &Plan{
				Steps: []*DeploymentStep{step("a", "A")},
				Links: []*LinkAction{{From: "a"}},
			},
			wantErr: domain.ErrInvalidPlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantRef != nil:
				var ref domain.UnresolvedReferenceError
				require.ErrorAs(t, err, &ref)
				assert.Equal(t, *tt.wantRef, ref)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlan_Step(t *testing.T) {
	plan := &Plan{Steps: []*DeploymentStep{step("a", "A"), step("b", "B")}}

	s, ok := plan.Step("b")
	require.True(t, ok)
	assert.Equal(t, "B", s.Contract)

	_, ok = plan.Step("c")
	assert.False(t, ok)
}

func TestArg_IsEmpty(t *testing.T) {
	assert.True(t, Arg{}.IsEmpty())
	assert.True(t, Ref("").IsEmpty())
	assert.True(t, Arg{Kind: ArgLiteral}.IsEmpty())
	assert.False(t, Literal("").IsEmpty())
	assert.False(t, Literal(false).IsEmpty())
	assert.False(t, Ref("nft").IsEmpty())
}

func TestLiteral_NormalizesIntegers(t *testing.T) {
	assert.Equal(t, big.NewInt(7), Literal(7).Value)
	assert.Equal(t, big.NewInt(7), Literal(uint64(7)).Value)
	assert.Equal(t, "abc", Literal("abc").Value)
	assert.Equal(t, "ref(nft)", Ref("nft").String())
	assert.Equal(t, "7", Literal(7).String())
}

func TestArg_JSON(t *testing.T) {
	args := []Arg{
		Ref("referral"),
		Literal("0x666d0bb670b0A241a33C4e60dFd33907F224D9f3"),
		Literal(true),
		Literal(new(big.Int).Lsh(big.NewInt(1), 200)),
	}

	data, err := json.Marshal(args)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"ref":"referral"},
		{"string":"0x666d0bb670b0A241a33C4e60dFd33907F224D9f3"},
		{"bool":true},
		{"int":"1606938044258990275541962092341162602522202993782792835301376"}
	]`, string(data))

	var decoded []Arg
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, args, decoded)

	var bad Arg
	assert.ErrorContains(t, json.Unmarshal([]byte(`{}`), &bad), "empty argument")
}
