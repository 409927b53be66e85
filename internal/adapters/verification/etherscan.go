package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nouspsyche/launchpad/internal/domain/config"
)

// Submission is one verification request in the form explorers accept
type Submission struct {
	Address         string
	ContractName    string // fully qualified, e.g. contracts/Referral.sol:Referral
	CompilerVersion string // solc long version
	SourceCode      []byte // standard JSON input
	ConstructorArgs string // ABI-encoded hex without 0x
}

// Explorer submits source code for verification and waits for the verdict
type Explorer interface {
	Submit(ctx context.Context, sub Submission) error
}

// etherscanResponse represents Etherscan API response
type etherscanResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// EtherscanExplorer talks to an Etherscan-compatible API
// (Etherscan, Polygonscan, Basescan and friends)
type EtherscanExplorer struct {
	client       *http.Client
	name         string
	apiKey       string
	apiURL       string
	pollInterval time.Duration
	maxPolls     int
}

// NewEtherscanExplorer creates an explorer client for the given config
func NewEtherscanExplorer(cfg *config.ExplorerConfig, pollInterval time.Duration) *EtherscanExplorer {
	if pollInterval <= 0 {
		pollInterval = 4 * time.Second
	}
	return &EtherscanExplorer{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		name:         cfg.Name,
		apiKey:       cfg.APIKey,
		apiURL:       cfg.APIURL,
		pollInterval: pollInterval,
		maxPolls:     30,
	}
}

// Submit posts the standard JSON input and polls until the explorer decides.
// Rejections, including "already verified", are returned as errors.
func (e *EtherscanExplorer) Submit(ctx context.Context, sub Submission) error {
	if e.apiKey == "" {
		return fmt.Errorf("no API key configured for explorer %s", e.name)
	}
	if e.apiURL == "" {
		return fmt.Errorf("no API URL configured for explorer %s", e.name)
	}

	data := url.Values{}
	data.Set("apikey", e.apiKey)
	data.Set("module", "contract")
	data.Set("action", "verifysourcecode")
	data.Set("contractaddress", sub.Address)
	data.Set("sourceCode", string(sub.SourceCode))
	data.Set("codeformat", "solidity-standard-json-input")
	data.Set("contractname", sub.ContractName)
	data.Set("compilerversion", "v"+strings.TrimPrefix(sub.CompilerVersion, "v"))
	if sub.ConstructorArgs != "" {
		data.Set("constructorArguements", sub.ConstructorArgs) // Note: Etherscan typo
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.apiURL, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	result, err := e.do(req)
	if err != nil {
		return fmt.Errorf("failed to submit verification: %w", err)
	}
	if result.Status != "1" {
		return errors.New(result.Result)
	}

	return e.waitForVerdict(ctx, result.Result)
}

// waitForVerdict polls checkverifystatus until the request leaves the queue
func (e *EtherscanExplorer) waitForVerdict(ctx context.Context, guid string) error {
	params := url.Values{}
	params.Set("apikey", e.apiKey)
	params.Set("module", "contract")
	params.Set("action", "checkverifystatus")
	params.Set("guid", guid)

	for range e.maxPolls {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.apiURL+"?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		result, err := e.do(req)
		if err != nil {
			return fmt.Errorf("failed to check status: %w", err)
		}

		// Check if still pending
		if strings.Contains(strings.ToLower(result.Result), "pending") {
			continue
		}
		if result.Status != "1" {
			return errors.New(result.Result)
		}
		return nil
	}

	return fmt.Errorf("verification %s still pending after %d checks", guid, e.maxPolls)
}

func (e *EtherscanExplorer) do(req *http.Request) (*etherscanResponse, error) {
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned HTTP %d", resp.StatusCode)
	}

	var result etherscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

var _ Explorer = (*EtherscanExplorer)(nil)
