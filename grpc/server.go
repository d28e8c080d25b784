package nockgrpc

import (
	"context"
	"net"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	nockrpc "github.com/uwupunks/nockchain-rpc"
)

// Compile-time interface check.
var _ NockchainServiceServer = (*GRPCServer)(nil)

// GRPCServer exposes the indexer (and optionally the wallet) as a
// gRPC service. Domain types are serialized directly via cramberry —
// no conversion layer.
type GRPCServer struct {
	idx nockrpc.Indexer
	bal nockrpc.Balances
}

// NewGRPCServer creates a gRPC server over the given indexer. bal may
// be nil when the balance capability is not deployed.
func NewGRPCServer(idx nockrpc.Indexer, bal nockrpc.Balances) *GRPCServer {
	return &GRPCServer{idx: idx, bal: bal}
}

// Register adds the service to a gRPC server.
func (s *GRPCServer) Register(gs *grpc.Server) {
	RegisterNockchainServiceServer(gs, s)
}

// Serve starts a gRPC server on the given listener.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

// --- RPCs ---

func (s *GRPCServer) GetBlockByHeight(ctx context.Context, req *GetBlockByHeightRequest) (*GetBlockResponse, error) {
	blk, err := s.idx.GetBlockByHeight(ctx, req.Height)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetBlockResponse{Block: blk}, nil
}

func (s *GRPCServer) GetBlockByDigest(ctx context.Context, req *GetBlockByDigestRequest) (*GetBlockResponse, error) {
	blk, err := s.idx.GetBlockByDigest(ctx, string(req.Digest))
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetBlockResponse{Block: blk}, nil
}

func (s *GRPCServer) GetBalance(ctx context.Context, req *GetBalanceRequest) (*GetBalanceResponse, error) {
	if s.bal == nil {
		return nil, status.Error(codes.Unimplemented, "balance capability not configured")
	}
	nocks, err := s.bal.GetBalance(ctx, req.Pubkey)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &GetBalanceResponse{Nocks: strconv.FormatFloat(nocks, 'g', -1, 64)}, nil
}

// statusFromError maps the error taxonomy onto gRPC status codes.
// Not-found never reaches here: absence is a nil block, not an error.
func statusFromError(err error) error {
	if nockrpc.IsInvalidArgument(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
