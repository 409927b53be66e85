package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworksRenderer_RenderNetworksList(t *testing.T) {
	var buf bytes.Buffer
	err := NewNetworksRenderer(&buf).RenderNetworksList(&usecase.ListNetworksResult{
		Networks: []usecase.NetworkStatus{
			{Name: "base-mainnet", ChainID: 8453, RPCHost: "base-mainnet.g.alchemy.com", Explorer: "base", Accounts: 2},
			{Name: "mumbai", Error: errors.New("networks.mumbai.url references unset environment variable(s) ALCHEMY_API_KEY_MUMBAI")},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "base-mainnet")
	assert.Contains(t, out, "8453")
	assert.Contains(t, out, "base-mainnet.g.alchemy.com")
	assert.Contains(t, out, "mumbai: networks.mumbai.url references unset environment variable(s) ALCHEMY_API_KEY_MUMBAI")
}

func TestNetworksRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(&usecase.ListNetworksResult{}))
	assert.Contains(t, buf.String(), "No networks configured")
}
