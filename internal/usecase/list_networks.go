package usecase

import (
	"context"
	"net/url"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name     string
	ChainID  uint64
	RPCHost  string
	Explorer string
	Accounts int
	Error    error
}

// ListNetworks is a use case for listing configured networks
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
	}
}

// Run executes the use case. A network that fails to resolve (missing
// secret, unreachable RPC) is listed with its error instead of failing the list.
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name: name,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}

		status.ChainID = info.ChainID
		status.Accounts = len(info.Accounts)
		// Only the host is shown; RPC paths usually embed API keys.
		if u, err := url.Parse(info.RPCURL); err == nil {
			status.RPCHost = u.Host
		}
		if info.Explorer != nil {
			status.Explorer = info.Explorer.Name
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
