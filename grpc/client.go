package nockgrpc

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/grpc"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/types"
)

// Compile-time interface check.
var _ nockrpc.Connection = (*Client)(nil)

// Client implements nockrpc.Connection over gRPC using cramberry
// serialization.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote indexer.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("nockrpc client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

func (c *Client) GetBlockByHeight(ctx context.Context, height uint64) (*types.Block, error) {
	req := &GetBlockByHeightRequest{Height: height}
	resp := new(GetBlockResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetBlockByHeight"), req, resp); err != nil {
		return nil, err
	}
	return resp.Block, nil
}

func (c *Client) GetBlockByDigest(ctx context.Context, digest string) (*types.Block, error) {
	req := &GetBlockByDigestRequest{Digest: []byte(digest)}
	resp := new(GetBlockResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetBlockByDigest"), req, resp); err != nil {
		return nil, err
	}
	return resp.Block, nil
}

func (c *Client) GetBalance(ctx context.Context, pubkey string) (float64, error) {
	req := &GetBalanceRequest{Pubkey: pubkey}
	resp := new(GetBalanceResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetBalance"), req, resp); err != nil {
		return 0, err
	}
	nocks, err := strconv.ParseFloat(resp.Nocks, 64)
	if err != nil {
		return 0, fmt.Errorf("nockrpc client: bad balance %q: %w", resp.Nocks, err)
	}
	return nocks, nil
}
