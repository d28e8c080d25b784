package nockrpctest

import (
	"context"
	"testing"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/noun"
)

// The compliance fixture: one block at height 100 under digest
// 0xAB12, reachable by height, by hex digest, and by raw key bytes.
const (
	ComplianceHeight = 100

	// Hex form with the "_" digit separator used in existing data.
	ComplianceHexDigest = "0x_ab12"
)

// ComplianceRawDigest is the raw key-byte form of the same digest.
var ComplianceRawDigest = []byte{0xAB, 0x12}

// ComplianceSeeds returns the store contents the compliance suite
// expects.
func ComplianceSeeds(t *testing.T) []Seed {
	t.Helper()
	return []Seed{{
		Height: ComplianceHeight,
		Digest: ComplianceRawDigest,
		Record: RecordBytes(t, noun.CramberryCodec{}, ComplianceHeight),
	}}
}

// RunQueryCompliance exercises the query behavior every Indexer —
// local or remote — must share, against a store seeded with
// ComplianceSeeds.
func RunQueryCompliance(t *testing.T, idx nockrpc.Indexer) {
	t.Helper()
	ctx := context.Background()

	byHeight, err := idx.GetBlockByHeight(ctx, ComplianceHeight)
	if err != nil {
		t.Fatalf("GetBlockByHeight(%d): %v", ComplianceHeight, err)
	}
	if byHeight == nil {
		t.Fatalf("GetBlockByHeight(%d) returned empty for a seeded height", ComplianceHeight)
	}
	if byHeight.Height != "100" {
		t.Errorf("height field renders as %q, want \"100\"", byHeight.Height)
	}

	// Hex-prefixed digest form resolves to the identical record.
	byHex, err := idx.GetBlockByDigest(ctx, ComplianceHexDigest)
	if err != nil {
		t.Fatalf("GetBlockByDigest(%q): %v", ComplianceHexDigest, err)
	}
	if byHex == nil {
		t.Fatalf("GetBlockByDigest(%q) returned empty for a seeded digest", ComplianceHexDigest)
	}
	if *byHex != *byHeight {
		t.Errorf("digest and height views differ:\n%+v\n%+v", byHex, byHeight)
	}

	// Raw key-byte form is interchangeable with the hex form.
	byRaw, err := idx.GetBlockByDigest(ctx, string(ComplianceRawDigest))
	if err != nil {
		t.Fatalf("GetBlockByDigest(raw): %v", err)
	}
	if byRaw == nil || *byRaw != *byHeight {
		t.Error("raw-byte digest form does not resolve to the same record")
	}

	// Absent keys read as empty results from both operations.
	if blk, err := idx.GetBlockByHeight(ctx, ComplianceHeight+1); err != nil || blk != nil {
		t.Errorf("absent height: got (%v, %v), want (nil, nil)", blk, err)
	}
	if blk, err := idx.GetBlockByDigest(ctx, "0x_ffff"); err != nil || blk != nil {
		t.Errorf("absent digest: got (%v, %v), want (nil, nil)", blk, err)
	}
}
