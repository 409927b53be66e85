package config

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/sahilm/fuzzy"
)

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	projectConfig *config.ProjectConfig
	chainIDs      map[string]uint64 // url -> chain ID fetched from RPC
	dialTimeout   time.Duration
	mu            sync.RWMutex
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(projectConfig *config.ProjectConfig) *NetworkResolver {
	return &NetworkResolver{
		projectConfig: projectConfig,
		chainIDs:      make(map[string]uint64),
		dialTimeout:   10 * time.Second,
	}
}

// Names returns the configured network names in sorted order
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.projectConfig.Networks))
	for name := range r.projectConfig.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	raw, exists := r.projectConfig.Networks[networkName]
	if !exists {
		return nil, domain.UnknownNetworkError{
			Name:        networkName,
			Suggestions: r.suggest(networkName),
		}
	}

	rpcURL, err := expandRequired(fmt.Sprintf("networks.%s.url", networkName), raw.URL)
	if err != nil {
		return nil, err
	}

	accounts := make([]string, 0, len(raw.Accounts))
	for i, acc := range raw.Accounts {
		key, err := expandRequired(fmt.Sprintf("networks.%s.accounts[%d]", networkName, i), acc)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, key)
	}

	chainID := raw.ChainID
	if chainID == 0 {
		chainID, err = r.fetchChainID(ctx, rpcURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
		}
	}

	return &config.Network{
		Name:     networkName,
		ChainID:  chainID,
		RPCURL:   rpcURL,
		Accounts: accounts,
		Gas:      raw.Gas,
		Explorer: r.resolveExplorer(networkName, raw, chainID),
	}, nil
}

// fetchChainID asks the RPC endpoint for its chain ID
func (r *NetworkResolver) fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	r.mu.RLock()
	if chainID, ok := r.chainIDs[rpcURL]; ok {
		r.mu.RUnlock()
		return chainID, nil
	}
	r.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, r.dialTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("RPC error: %w", err)
	}

	r.mu.Lock()
	r.chainIDs[rpcURL] = id.Uint64()
	r.mu.Unlock()

	return id.Uint64(), nil
}

// resolveExplorer finds the explorer section for a network. The explicit
// `explorer` key wins, then a section named like the network.
func (r *NetworkResolver) resolveExplorer(networkName string, raw config.NetworkConfig, chainID uint64) *config.ExplorerConfig {
	name := raw.Explorer
	if name == "" {
		name = networkName
	}
	section, ok := r.projectConfig.Etherscan[name]
	if !ok {
		return nil
	}

	defaults := defaultExplorers[chainID]
	explorer := &config.ExplorerConfig{
		Name:       name,
		APIKey:     os.ExpandEnv(section.Key),
		APIURL:     os.ExpandEnv(section.URL),
		BrowserURL: section.Browser,
	}
	if explorer.APIURL == "" {
		explorer.APIURL = defaults.api
	}
	if explorer.BrowserURL == "" {
		explorer.BrowserURL = defaults.browser
	}
	return explorer
}

// suggest returns configured network names close to the given one
func (r *NetworkResolver) suggest(name string) []string {
	var suggestions []string
	for _, match := range fuzzy.Find(name, r.Names()) {
		suggestions = append(suggestions, match.Str)
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}

type explorerDefaults struct {
	api     string
	browser string
}

// defaultExplorers holds the well-known Etherscan-family endpoints by chain ID
var defaultExplorers = map[uint64]explorerDefaults{
	1:        {"https://api.etherscan.io/api", "https://etherscan.io"},
	11155111: {"https://api-sepolia.etherscan.io/api", "https://sepolia.etherscan.io"},
	10:       {"https://api-optimistic.etherscan.io/api", "https://optimistic.etherscan.io"},
	137:      {"https://api.polygonscan.com/api", "https://polygonscan.com"},
	80001:    {"https://api-testnet.polygonscan.com/api", "https://mumbai.polygonscan.com"},
	8453:     {"https://api.basescan.org/api", "https://basescan.org"},
	42161:    {"https://api.arbiscan.io/api", "https://arbiscan.io"},
	56:       {"https://api.bscscan.com/api", "https://bscscan.com"},
}
