// Package types defines the wire-facing shapes served by the
// indexer.
//
// These are plain Go structs with cramberry struct tags for
// deterministic binary serialization on the gRPC transport and json
// tags for the JSON-RPC transport. Decode and storage concerns live
// in the record and index packages.
package types

// Block is the externally consumable view of one block record.
//
// Structured fields are hex-encoded serialized bytes — they have no
// canonical human-readable form, so they pass through raw. Scalar
// counters are exact decimal strings so downstream consumers can
// compare and sort them at any magnitude.
type Block struct {
	Digest          string `cramberry:"1" json:"digest"`
	Parent          string `cramberry:"2" json:"parent"`
	TxIDs           string `cramberry:"3" json:"tx_ids"`
	Coinbase        string `cramberry:"4" json:"coinbase"`
	Timestamp       string `cramberry:"5" json:"timestamp"`
	EpochCounter    string `cramberry:"6" json:"epoch_counter"`
	Target          string `cramberry:"7" json:"target"`
	AccumulatedWork string `cramberry:"8" json:"accumulated_work"`
	Height          string `cramberry:"9" json:"height"`
}
