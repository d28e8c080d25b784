// Package nockrpc defines the query boundary over an indexed nockchain
// block store — a read-only view of block records previously written by
// the node, addressed by height or by digest.
//
// The core [Indexer] interface is required. [Balances] is an optional
// capability backed by the external wallet binary; transports that do
// not expose it simply omit the method.
package nockrpc

import (
	"context"

	"github.com/uwupunks/nockchain-rpc/types"
)

// Indexer answers point queries against the block index.
//
// Both methods return (nil, nil) when the key resolves to nothing —
// absence is an empty result, never an error. A non-nil error always
// means the request itself failed (malformed stored record, unreadable
// store, uninterpretable key).
//
// Implementations MUST be safe for concurrent use: the underlying
// store is read-only and queries share no state.
type Indexer interface {
	// GetBlockByHeight resolves a block height to its stored record.
	GetBlockByHeight(ctx context.Context, height uint64) (*types.Block, error)

	// GetBlockByDigest resolves a block digest to its stored record.
	//
	// The digest may be given in canonical hex form ("0x..." with
	// optional "_" digit separators) or as raw key bytes in string
	// form. Both forms occur in existing data and are accepted
	// interchangeably.
	GetBlockByDigest(ctx context.Context, digest string) (*types.Block, error)
}

// Balances reports the total spendable balance for a public key,
// denominated in nocks.
type Balances interface {
	GetBalance(ctx context.Context, pubkey string) (float64, error)
}

// Connection represents a transport-agnostic connection to the
// indexer. Both gRPC clients and in-process adapters implement this.
type Connection interface {
	Indexer
	Balances

	// Close terminates the connection.
	Close() error
}
