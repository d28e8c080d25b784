package nockgrpc

import "github.com/uwupunks/nockchain-rpc/types"

// Transport-specific request/response wrappers. These exist only at
// the gRPC serialization boundary.

// GetBlockByHeightRequest wraps the height key.
type GetBlockByHeightRequest struct {
	Height uint64 `cramberry:"1"`
}

// GetBlockByDigestRequest wraps the digest key, in hex-prefixed or
// raw-byte form. Carried as bytes: raw digests are arbitrary key
// bytes, not valid UTF-8.
type GetBlockByDigestRequest struct {
	Digest []byte `cramberry:"1"`
}

// GetBlockResponse carries an optional block. A nil Block means the
// key resolved to nothing — an empty result, not an error.
type GetBlockResponse struct {
	Block *types.Block `cramberry:"1"`
}

// GetBalanceRequest wraps the pubkey to list notes for.
type GetBalanceRequest struct {
	Pubkey string `cramberry:"1"`
}

// GetBalanceResponse carries the balance in nocks. Cramberry has no
// float scalar, so the value travels as a decimal string that
// round-trips the float64 exactly.
type GetBalanceResponse struct {
	Nocks string `cramberry:"1"`
}
