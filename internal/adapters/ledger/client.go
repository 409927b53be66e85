package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	abiencoder "github.com/nouspsyche/launchpad/internal/adapters/abi"
	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// Backend is what the ledger client needs from an RPC connection
type Backend interface {
	bind.ContractBackend
	ChainReader
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client deploys and calls contracts through a JSON-RPC endpoint, signing
// with the network's first configured account
type Client struct {
	network      *config.Network
	artifacts    usecase.ArtifactRepository
	pollInterval time.Duration
	log          *slog.Logger

	mu       sync.Mutex
	backend  Backend
	waiter   *Waiter
	checked  bool
	receipts map[common.Hash]*types.Receipt
}

// NewClient creates a ledger client for the configured network. The RPC
// connection is opened on first use.
func NewClient(cfg *config.RuntimeConfig, artifacts usecase.ArtifactRepository, log *slog.Logger) *Client {
	return &Client{
		network:      cfg.Network,
		artifacts:    artifacts,
		pollInterval: cfg.PollInterval,
		log:          log,
		receipts:     make(map[common.Hash]*types.Receipt),
	}
}

// NewClientWithBackend creates a ledger client on an existing connection
func NewClientWithBackend(network *config.Network, backend Backend, artifacts usecase.ArtifactRepository, pollInterval time.Duration, log *slog.Logger) *Client {
	return &Client{
		network:      network,
		artifacts:    artifacts,
		pollInterval: pollInterval,
		log:          log,
		backend:      backend,
		waiter:       NewWaiter(backend, pollInterval, log),
		receipts:     make(map[common.Hash]*types.Receipt),
	}
}

// Submit sends the contract creation transaction for the named artifact
func (c *Client) Submit(ctx context.Context, contract string, args []any) (*models.Submission, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	artifact, err := c.artifacts.FindArtifact(ctx, contract)
	if err != nil {
		return nil, err
	}
	params, err := abiencoder.ConvertArgs(artifact.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("constructor of %s: %w", contract, err)
	}

	auth, err := c.transactor(ctx)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(auth, artifact.ABI, artifact.Bytecode, backend, params...)
	if err != nil {
		return nil, err
	}

	c.log.Debug("contract deployment transaction sent", "contract", contract, "address", address.Hex(), "tx_hash", tx.Hash().Hex())

	return &models.Submission{
		TxHash:  tx.Hash().Hex(),
		Address: address.Hex(),
	}, nil
}

// WaitForConfirmations blocks until the transaction has the requested depth
func (c *Client) WaitForConfirmations(ctx context.Context, txHash string, confirmations uint64) error {
	if _, err := c.connect(ctx); err != nil {
		return err
	}

	hash := common.HexToHash(txHash)
	receipt, err := c.waiter.Wait(ctx, hash, confirmations)
	if err != nil {
		return err
	}
	if receipt != nil {
		c.mu.Lock()
		c.receipts[hash] = receipt
		c.mu.Unlock()
	}
	return nil
}

// GetAddress returns the created contract's address from its receipt,
// falling back to the address derived at submission
func (c *Client) GetAddress(ctx context.Context, submission *models.Submission) (string, error) {
	hash := common.HexToHash(submission.TxHash)

	c.mu.Lock()
	receipt, ok := c.receipts[hash]
	c.mu.Unlock()

	if !ok {
		backend, err := c.connect(ctx)
		if err != nil {
			return "", err
		}
		receipt, err = backend.TransactionReceipt(ctx, hash)
		if err != nil {
			if submission.Address != "" {
				return submission.Address, nil
			}
			return "", fmt.Errorf("failed to fetch receipt for %s: %w", submission.TxHash, err)
		}
	}

	if receipt.ContractAddress != (common.Address{}) {
		return receipt.ContractAddress.Hex(), nil
	}
	if submission.Address == "" {
		return "", fmt.Errorf("transaction %s did not create a contract", submission.TxHash)
	}
	return submission.Address, nil
}

// Call sends a state-changing method call to a deployed contract
func (c *Client) Call(ctx context.Context, contract, address, method string, args []any) (*models.Submission, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	artifact, err := c.artifacts.FindArtifact(ctx, contract)
	if err != nil {
		return nil, err
	}
	abiMethod, ok := artifact.ABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("contract %s has no method %s", contract, method)
	}
	params, err := abiencoder.ConvertArgs(abiMethod.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", contract, method, err)
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	auth, err := c.transactor(ctx)
	if err != nil {
		return nil, err
	}

	bound := bind.NewBoundContract(common.HexToAddress(address), artifact.ABI, backend, backend, backend)
	tx, err := bound.Transact(auth, method, params...)
	if err != nil {
		return nil, err
	}

	c.log.Debug("call transaction sent", "contract", contract, "method", method, "tx_hash", tx.Hash().Hex())

	return &models.Submission{TxHash: tx.Hash().Hex()}, nil
}

// connect dials the RPC endpoint once and checks it serves the configured chain
func (c *Client) connect(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.network == nil {
		return nil, errors.New("no network selected, use --network")
	}

	if c.backend == nil {
		client, err := ethclient.DialContext(ctx, c.network.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", c.network.Name, err)
		}
		c.backend = client
		c.waiter = NewWaiter(client, c.pollInterval, c.log)
	}

	if !c.checked {
		chainID, err := c.backend.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
		if chainID.Uint64() != c.network.ChainID {
			return nil, fmt.Errorf("RPC for network %s serves chain %s, expected %d", c.network.Name, chainID, c.network.ChainID)
		}
		c.checked = true
	}

	return c.backend, nil
}

func (c *Client) transactor(ctx context.Context) (*bind.TransactOpts, error) {
	key, err := c.signer()
	if err != nil {
		return nil, err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, new(big.Int).SetUint64(c.network.ChainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx
	if !c.network.Gas.IsAuto() {
		auth.GasLimit = c.network.Gas.Limit
	}
	return auth, nil
}

// signer parses the deployer key, the first account of the network
func (c *Client) signer() (*ecdsa.PrivateKey, error) {
	if len(c.network.Accounts) == 0 {
		return nil, fmt.Errorf("%w for network %s", domain.ErrNoAccounts, c.network.Name)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.network.Accounts[0], "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key for network %s: %w", c.network.Name, err)
	}
	return key, nil
}

// Ensure the adapter implements the interface
var _ usecase.LedgerClient = (*Client)(nil)
