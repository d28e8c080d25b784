// Package nockgrpc exposes the block query API over gRPC.
//
// The wire format is cramberry, not protobuf: the request and
// response wrappers in wire.go carry cramberry struct tags and are
// marshaled whole, so there is no generated code and no .proto file.
// The service descriptor in service.go is written by hand for the
// same reason.
package nockgrpc

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"google.golang.org/grpc/encoding"
)

const codecName = "cramberry"

// CramberryCodec plugs cramberry into grpc's encoding registry so
// the wire wrappers travel as cramberry bytes instead of protobuf.
type CramberryCodec struct{}

func (CramberryCodec) Marshal(v any) ([]byte, error) {
	data, err := cramberry.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cramberry marshal: %w", err)
	}
	return data, nil
}

func (CramberryCodec) Unmarshal(data []byte, v any) error {
	if err := cramberry.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cramberry unmarshal: %w", err)
	}
	return nil
}

func (CramberryCodec) Name() string { return codecName }

// Registered at init so servers pick the codec up by content-subtype;
// clients still pass ForceCodec because they dial before any request
// names it.
func init() {
	encoding.RegisterCodec(CramberryCodec{})
}
