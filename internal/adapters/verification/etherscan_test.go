package verification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEtherscan answers verifysourcecode with submitResult and then serves
// statusResults in order for checkverifystatus
type fakeEtherscan struct {
	mu            sync.Mutex
	submitStatus  string
	submitResult  string
	statusResults []etherscanResponse
	submitted     url.Values
	polls         int
}

func (f *fakeEtherscan) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		f.submitted = r.PostForm
		_ = json.NewEncoder(w).Encode(etherscanResponse{Status: f.submitStatus, Message: "OK", Result: f.submitResult})
		return
	}

	if r.URL.Query().Get("action") != "checkverifystatus" {
		http.Error(w, "unexpected action", http.StatusBadRequest)
		return
	}
	res := f.statusResults[min(f.polls, len(f.statusResults)-1)]
	f.polls++
	_ = json.NewEncoder(w).Encode(res)
}

func newTestExplorer(t *testing.T, handler http.Handler, apiKey string) *EtherscanExplorer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewEtherscanExplorer(&config.ExplorerConfig{
		Name:   "sepolia",
		APIKey: apiKey,
		APIURL: server.URL + "/api",
	}, time.Millisecond)
}

func testSubmission() Submission {
	return Submission{
		Address:         "0x0000000000000000000000000000000000000001",
		ContractName:    "contracts/Referral.sol:Referral",
		CompilerVersion: "0.8.10+commit.fc410830",
		SourceCode:      []byte(`{"language":"Solidity"}`),
		ConstructorArgs: "0000000000000000000000000000000000000000000000000000000000000003",
	}
}

func TestEtherscanExplorer_Submit(t *testing.T) {
	t.Run("verified after pending", func(t *testing.T) {
		fake := &fakeEtherscan{
			submitStatus: "1",
			submitResult: "guid-123",
			statusResults: []etherscanResponse{
				{Status: "0", Result: "Pending in queue"},
				{Status: "1", Result: "Pass - Verified"},
			},
		}
		explorer := newTestExplorer(t, fake, "key")

		err := explorer.Submit(context.Background(), testSubmission())
		require.NoError(t, err)

		assert.Equal(t, 2, fake.polls)
		assert.Equal(t, "verifysourcecode", fake.submitted.Get("action"))
		assert.Equal(t, "solidity-standard-json-input", fake.submitted.Get("codeformat"))
		assert.Equal(t, "v0.8.10+commit.fc410830", fake.submitted.Get("compilerversion"))
		assert.Equal(t, "contracts/Referral.sol:Referral", fake.submitted.Get("contractname"))
		assert.Equal(t, testSubmission().ConstructorArgs, fake.submitted.Get("constructorArguements"))
		assert.Equal(t, "key", fake.submitted.Get("apikey"))
	})

	t.Run("already verified on submit", func(t *testing.T) {
		fake := &fakeEtherscan{submitStatus: "0", submitResult: "Contract source code already verified"}
		explorer := newTestExplorer(t, fake, "key")

		err := explorer.Submit(context.Background(), testSubmission())
		require.Error(t, err)
		assert.Equal(t, "Contract source code already verified", err.Error())
		assert.Equal(t, 0, fake.polls)
	})

	t.Run("rejected while polling", func(t *testing.T) {
		fake := &fakeEtherscan{
			submitStatus:  "1",
			submitResult:  "guid-123",
			statusResults: []etherscanResponse{{Status: "0", Result: "Fail - Unable to verify"}},
		}
		explorer := newTestExplorer(t, fake, "key")

		err := explorer.Submit(context.Background(), testSubmission())
		assert.EqualError(t, err, "Fail - Unable to verify")
	})

	t.Run("gives up on endless pending", func(t *testing.T) {
		fake := &fakeEtherscan{
			submitStatus:  "1",
			submitResult:  "guid-123",
			statusResults: []etherscanResponse{{Status: "0", Result: "Pending in queue"}},
		}
		explorer := newTestExplorer(t, fake, "key")
		explorer.maxPolls = 3

		err := explorer.Submit(context.Background(), testSubmission())
		assert.ErrorContains(t, err, "still pending after 3 checks")
	})

	t.Run("missing API key", func(t *testing.T) {
		explorer := newTestExplorer(t, &fakeEtherscan{}, "")

		err := explorer.Submit(context.Background(), testSubmission())
		assert.ErrorContains(t, err, "no API key configured for explorer sepolia")
	})

	t.Run("HTTP error", func(t *testing.T) {
		explorer := newTestExplorer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}), "key")

		err := explorer.Submit(context.Background(), testSubmission())
		assert.ErrorContains(t, err, "HTTP 429")
	})
}
