// Package nockrpctest provides test utilities for the indexer: a
// fixture store writer, a configurable mock connection, and a query
// compliance suite shared by every transport.
package nockrpctest

import (
	"io"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/uwupunks/nockchain-rpc/index"
	"github.com/uwupunks/nockchain-rpc/noun"
	"github.com/uwupunks/nockchain-rpc/record"
)

// Seed is one block to plant in a fixture store. A nil Record plants
// only the height_to_digest entry, leaving the digest dangling.
type Seed struct {
	Height uint64
	Digest []byte
	Record []byte
}

// WriteStore creates a badger store at dir holding the given seeds.
// The production adapter never writes, so fixtures go through badger
// directly, the same way the node populates the real store.
func WriteStore(t *testing.T, dir string, seeds []Seed) {
	t.Helper()

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("opening fixture store for writing: %v", err)
	}

	err = db.Update(func(txn *badger.Txn) error {
		for _, s := range seeds {
			if err := txn.Set(index.HeightKey(s.Height), s.Digest); err != nil {
				return err
			}
			if s.Record == nil {
				continue
			}
			if err := txn.Set(index.PageKey(s.Digest), s.Record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		t.Fatalf("seeding fixture store: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("closing fixture store: %v", err)
	}
}

// OpenFixture writes seeds into a fresh temp directory and opens the
// read-only adapter over it. The store is closed with the test.
func OpenFixture(t *testing.T, seeds []Seed) *index.Store {
	t.Helper()

	dir := t.TempDir()
	WriteStore(t, dir, seeds)

	store, err := index.Open(index.StoreConfig{Path: dir, Logger: QuietLogger()})
	if err != nil {
		t.Fatalf("opening fixture store read-only: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// RecordBytes encodes a well-formed ten-entry record whose height
// slot holds the given height. The other slots carry small distinct
// values.
func RecordBytes(t *testing.T, codec noun.Codec, height uint64) []byte {
	t.Helper()

	var slots [record.SlotCount]noun.Noun
	for i := range slots {
		slots[i] = noun.FromCell([]byte{byte(i), 0xC4, 0xFE})
	}
	slots[5] = noun.FromAtom(noun.NewAtom(1_700_000_000))
	slots[6] = noun.FromAtom(noun.NewAtom(2))
	slots[9] = noun.FromAtom(noun.NewAtom(height))

	buf, err := record.Encode(codec, slots)
	if err != nil {
		t.Fatalf("encoding fixture record: %v", err)
	}
	return buf
}

// QuietLogger returns a logger that discards everything, keeping
// fixture noise out of test output.
func QuietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
