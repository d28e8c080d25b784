// Package index provides a read-only handle over the block index the
// node writes: two namespaces in one persistent ordered key space,
// resolving heights to digests and digests to encoded records.
package index

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	nockrpc "github.com/uwupunks/nockchain-rpc"
)

// Namespace prefixes over the shared key space.
const (
	nsPages          = "pages/"
	nsHeightToDigest = "height_to_digest/"
)

// PageKey returns the pages-namespace key for a raw digest.
func PageKey(digest []byte) []byte {
	return append([]byte(nsPages), digest...)
}

// HeightKey returns the height_to_digest-namespace key for a height.
// Heights are keyed by their canonical decimal string form.
func HeightKey(height uint64) []byte {
	return strconv.AppendUint([]byte(nsHeightToDigest), height, 10)
}

// StoreConfig configures the index store handle.
type StoreConfig struct {
	// Path of the badger directory written by the node.
	Path   string
	Logger *logrus.Logger
}

// Store is a read-only handle over the index. It is safe for
// unsynchronized concurrent reads; nothing here ever writes.
type Store struct {
	db  *badger.DB
	log *logrus.Logger
}

// Open opens the store in read-only mode. A missing or incompatible
// on-disk store fails here, at startup — never per request.
func Open(config StoreConfig) (*Store, error) {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	opts := badger.DefaultOptions(config.Path)
	opts.Logger = nil
	opts.ReadOnly = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening index at %s: %w", config.Path, err)
	}

	config.Logger.WithField("path", config.Path).Info("block index opened read-only")

	return &Store{db: db, log: config.Logger}, nil
}

// Close releases the store handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// LookupByHeight resolves a height to its encoded record bytes.
// Returns (nil, nil) when the height is unknown, or when the digest
// it maps to has no pages entry — a dangling digest reads as absent,
// not as corruption.
func (s *Store) LookupByHeight(height uint64) ([]byte, error) {
	digest, err := s.get(HeightKey(height))
	if err != nil || digest == nil {
		return nil, err
	}
	return s.get(PageKey(digest))
}

// LookupByDigest resolves a digest to its encoded record bytes.
// Returns (nil, nil) on a miss.
//
// A "0x"-prefixed digest is hex-decoded, with "_" digit separators
// stripped; any other string is used as raw key bytes. Both forms
// occur interchangeably in existing data.
func (s *Store) LookupByDigest(digest string) ([]byte, error) {
	key, err := digestKey(digest)
	if err != nil {
		return nil, err
	}
	return s.get(PageKey(key))
}

func digestKey(digest string) ([]byte, error) {
	if !strings.HasPrefix(digest, "0x") {
		return []byte(digest), nil
	}
	raw, err := hex.DecodeString(strings.ReplaceAll(digest[2:], "_", ""))
	if err != nil {
		return nil, fmt.Errorf("digest %q: %w", digest, nockrpc.ErrInvalidKey)
	}
	return raw, nil
}

// get returns (nil, nil) on a missing key.
func (s *Store) get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.WithError(err).WithField("key", fmt.Sprintf("%x", key)).Error("index read failed")
		return nil, fmt.Errorf("%w: reading key %x: %v", nockrpc.ErrStoreUnavailable, key, err)
	}
	return value, nil
}
