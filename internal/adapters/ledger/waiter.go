package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainReader is the part of the RPC client the waiter polls
type ChainReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Waiter blocks until a transaction is mined and buried deep enough
type Waiter struct {
	chain        ChainReader
	pollInterval time.Duration
	log          *slog.Logger
}

// NewWaiter creates a waiter polling the chain every pollInterval
func NewWaiter(chain ChainReader, pollInterval time.Duration, log *slog.Logger) *Waiter {
	if pollInterval <= 0 {
		pollInterval = 4 * time.Second
	}
	return &Waiter{chain: chain, pollInterval: pollInterval, log: log}
}

// Wait returns the receipt once the transaction has the given number of
// confirmations. The block containing the transaction is the first
// confirmation; zero confirmations returns without looking at the chain.
// Transient RPC errors are retried until ctx ends.
func (w *Waiter) Wait(ctx context.Context, txHash common.Hash, confirmations uint64) (*types.Receipt, error) {
	if confirmations == 0 {
		return nil, nil
	}

	var receipt *types.Receipt
	for {
		if receipt == nil {
			r, err := w.chain.TransactionReceipt(ctx, txHash)
			switch {
			case err == nil:
				if r.Status != types.ReceiptStatusSuccessful {
					return r, fmt.Errorf("transaction %s reverted in block %d", txHash.Hex(), r.BlockNumber)
				}
				receipt = r
			case errors.Is(err, ethereum.NotFound):
			default:
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				w.log.Debug("receipt lookup failed, retrying", "tx", txHash.Hex(), "error", err)
			}
		}

		if receipt != nil {
			head, err := w.chain.BlockNumber(ctx)
			if err == nil && head >= receipt.BlockNumber.Uint64() && head-receipt.BlockNumber.Uint64()+1 >= confirmations {
				return receipt, nil
			}
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				w.log.Debug("block number lookup failed, retrying", "error", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(w.pollInterval):
		}
	}
}
