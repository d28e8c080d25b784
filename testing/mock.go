package nockrpctest

import (
	"context"
	"sync/atomic"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/types"
)

// Compile-time interface check.
var _ nockrpc.Connection = (*MockConnection)(nil)

// MockConnection is a configurable mock for transport testing. All
// methods are configurable via function fields; unconfigured methods
// report empty results.
type MockConnection struct {
	GetBlockByHeightFn func(ctx context.Context, height uint64) (*types.Block, error)
	GetBlockByDigestFn func(ctx context.Context, digest string) (*types.Block, error)
	GetBalanceFn       func(ctx context.Context, pubkey string) (float64, error)

	// Call counters (atomic for concurrent access).
	HeightCalls  atomic.Int64
	DigestCalls  atomic.Int64
	BalanceCalls atomic.Int64
}

func (m *MockConnection) GetBlockByHeight(ctx context.Context, height uint64) (*types.Block, error) {
	m.HeightCalls.Add(1)
	if m.GetBlockByHeightFn != nil {
		return m.GetBlockByHeightFn(ctx, height)
	}
	return nil, nil
}

func (m *MockConnection) GetBlockByDigest(ctx context.Context, digest string) (*types.Block, error) {
	m.DigestCalls.Add(1)
	if m.GetBlockByDigestFn != nil {
		return m.GetBlockByDigestFn(ctx, digest)
	}
	return nil, nil
}

func (m *MockConnection) GetBalance(ctx context.Context, pubkey string) (float64, error) {
	m.BalanceCalls.Add(1)
	if m.GetBalanceFn != nil {
		return m.GetBalanceFn(ctx, pubkey)
	}
	return 0, nil
}

func (m *MockConnection) Close() error { return nil }
