package nockgrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

const serviceName = "nockchain.v1.NockchainService"

// NockchainServiceServer is the server-side interface for the
// indexer's gRPC service.
type NockchainServiceServer interface {
	GetBlockByHeight(context.Context, *GetBlockByHeightRequest) (*GetBlockResponse, error)
	GetBlockByDigest(context.Context, *GetBlockByDigestRequest) (*GetBlockResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
}

// RegisterNockchainServiceServer registers the service on a gRPC
// server.
func RegisterNockchainServiceServer(s *grpc.Server, srv NockchainServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// --- Handler functions ---

func handlerGetBlockByHeight(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(GetBlockByHeightRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NockchainServiceServer).GetBlockByHeight(ctx, req)
}

func handlerGetBlockByDigest(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(GetBlockByDigestRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NockchainServiceServer).GetBlockByDigest(ctx, req)
}

func handlerGetBalance(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(GetBalanceRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NockchainServiceServer).GetBalance(ctx, req)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*NockchainServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetBlockByHeight", Handler: handlerGetBlockByHeight},
		{MethodName: "GetBlockByDigest", Handler: handlerGetBlockByDigest},
		{MethodName: "GetBalance", Handler: handlerGetBalance},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nockchain/v1/service.cram",
}
