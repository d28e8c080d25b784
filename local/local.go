// Package local provides a zero-copy, in-process connection to the
// indexer.
//
// For callers compiled into the same binary as the query service,
// this adapter satisfies the same Connection interface as the gRPC
// client — with no serialization overhead.
package local

import (
	"context"
	"errors"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/service"
	"github.com/uwupunks/nockchain-rpc/types"
	"github.com/uwupunks/nockchain-rpc/wallet"
)

// Compile-time interface check.
var _ nockrpc.Connection = (*Connection)(nil)

// Connection wraps the query service (and optionally the wallet
// client) behind the transport-agnostic Connection interface.
type Connection struct {
	svc    *service.Service
	wallet *wallet.Client
}

// NewConnection creates an in-process connection. wallet may be nil
// when the balance capability is not deployed alongside the indexer.
func NewConnection(svc *service.Service, wallet *wallet.Client) *Connection {
	return &Connection{svc: svc, wallet: wallet}
}

func (c *Connection) GetBlockByHeight(ctx context.Context, height uint64) (*types.Block, error) {
	return c.svc.GetBlockByHeight(ctx, height)
}

func (c *Connection) GetBlockByDigest(ctx context.Context, digest string) (*types.Block, error) {
	return c.svc.GetBlockByDigest(ctx, digest)
}

func (c *Connection) GetBalance(ctx context.Context, pubkey string) (float64, error) {
	if c.wallet == nil {
		return 0, errors.New("balance capability not configured")
	}
	return c.wallet.GetBalance(ctx, pubkey)
}

func (c *Connection) Close() error { return nil }
