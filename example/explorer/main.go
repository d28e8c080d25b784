// Command explorer seeds a throwaway block index and queries it
// through the in-process connection, printing the rendered blocks as
// JSON. It exists to show the store layout and the query API end to
// end without a running node.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/uwupunks/nockchain-rpc/index"
	"github.com/uwupunks/nockchain-rpc/local"
	"github.com/uwupunks/nockchain-rpc/noun"
	"github.com/uwupunks/nockchain-rpc/record"
	"github.com/uwupunks/nockchain-rpc/service"
)

func main() {
	log := logrus.New()

	dir, err := os.MkdirTemp("", "explorer-index")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	if err := seed(dir); err != nil {
		log.WithError(err).Fatal("seeding demo index")
	}

	store, err := index.Open(index.StoreConfig{Path: dir, Logger: log})
	if err != nil {
		log.WithError(err).Fatal("opening demo index")
	}
	defer store.Close()

	conn := local.NewConnection(service.New(store, nil, log), nil)
	defer conn.Close()

	ctx := context.Background()
	for _, q := range []func() (any, error){
		func() (any, error) { return conn.GetBlockByHeight(ctx, 100) },
		func() (any, error) { return conn.GetBlockByDigest(ctx, "0x_ab12") },
		func() (any, error) { return conn.GetBlockByHeight(ctx, 101) }, // absent
	} {
		blk, err := q()
		if err != nil {
			log.WithError(err).Fatal("query failed")
		}
		out, _ := json.MarshalIndent(blk, "", "  ")
		fmt.Println(string(out))
	}
}

// seed writes one block at height 100 under digest 0xAB12, the same
// way the node populates the real store.
func seed(dir string) error {
	codec := noun.CramberryCodec{}

	var slots [record.SlotCount]noun.Noun
	for i := range slots {
		slots[i] = noun.FromCell([]byte{byte(i), 0xEE})
	}
	slots[5] = noun.FromAtom(noun.NewAtom(1_700_000_000))
	slots[6] = noun.FromAtom(noun.NewAtom(4))
	slots[9] = noun.FromAtom(noun.NewAtom(100))

	buf, err := record.Encode(codec, slots)
	if err != nil {
		return err
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return err
	}
	defer db.Close()

	digest := []byte{0xAB, 0x12}
	return db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(index.HeightKey(100), digest); err != nil {
			return err
		}
		return txn.Set(index.PageKey(digest), buf)
	})
}
