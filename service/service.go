// Package service composes the index store and the record codec into
// the externally visible query operations.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/noun"
	"github.com/uwupunks/nockchain-rpc/record"
	"github.com/uwupunks/nockchain-rpc/types"
)

// Lookup is the slice of the index store the service depends on.
// Both methods return (nil, nil) on a miss.
type Lookup interface {
	LookupByHeight(height uint64) ([]byte, error)
	LookupByDigest(digest string) ([]byte, error)
}

// Compile-time interface check.
var _ nockrpc.Indexer = (*Service)(nil)

// Service answers block point queries: resolve key, fetch bytes,
// decode, render. Stateless between requests — every decode allocates
// fresh working memory owned by that request alone, so concurrent
// queries share nothing but the read-only store handle.
type Service struct {
	store Lookup
	codec noun.Codec
	log   *logrus.Logger
}

// New creates a query service over the given store. A nil codec
// defaults to the cramberry scheme; a nil logger to a fresh one.
func New(store Lookup, codec noun.Codec, log *logrus.Logger) *Service {
	if codec == nil {
		codec = noun.CramberryCodec{}
	}
	if log == nil {
		log = logrus.New()
	}
	return &Service{store: store, codec: codec, log: log}
}

// GetBlockByHeight resolves a height to its rendered block.
// Returns (nil, nil) when the height is not indexed.
func (s *Service) GetBlockByHeight(ctx context.Context, height uint64) (*types.Block, error) {
	buf, err := s.store.LookupByHeight(height)
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	return s.render(buf, logrus.Fields{"height": height})
}

// GetBlockByDigest resolves a digest string to its rendered block.
// Returns (nil, nil) when the digest is not indexed.
func (s *Service) GetBlockByDigest(ctx context.Context, digest string) (*types.Block, error) {
	buf, err := s.store.LookupByDigest(digest)
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	return s.render(buf, logrus.Fields{"digest": digest})
}

func (s *Service) render(buf []byte, fields logrus.Fields) (*types.Block, error) {
	blk, err := record.DecodeBlock(s.codec, buf)
	if err != nil {
		s.log.WithFields(fields).WithError(err).Error("stored record failed to decode")
		return nil, fmt.Errorf("decoding stored record: %w", err)
	}

	out, err := blk.Render(s.codec)
	if err != nil {
		s.log.WithFields(fields).WithError(err).Error("decoded record failed to render")
		return nil, fmt.Errorf("rendering record: %w", err)
	}
	return &out, nil
}
