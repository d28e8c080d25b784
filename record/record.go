package record

import (
	"encoding/hex"
	"fmt"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/noun"
	"github.com/uwupunks/nockchain-rpc/types"
)

// Slot positions of the on-disk layout. Slot 1 carries the
// proof-of-work entry: it must be read to keep offsets aligned but is
// never exposed. An optional trailing message entry, when present,
// falls into the ignored excess after the final slot.
const (
	slotDigest = iota
	slotPow
	slotParent
	slotTxIDs
	slotCoinbase
	slotTimestamp
	slotEpochCounter
	slotTarget
	slotAccumulatedWork
	slotHeight
)

// Block is the decoded, typed view of one block header. It
// exclusively owns its field values: constructed transiently per
// query, never cached, discarded once the response is rendered.
type Block struct {
	Digest          noun.Noun
	Parent          noun.Noun
	TxIDs           noun.Noun
	Coinbase        noun.Noun
	Timestamp       noun.Noun
	EpochCounter    noun.Noun
	Target          noun.Noun
	AccumulatedWork noun.Noun
	Height          noun.Noun
}

// FromSlots binds the positional slots to named fields, discarding
// the proof-of-work slot.
func FromSlots(slots [SlotCount]noun.Noun) Block {
	return Block{
		Digest:          slots[slotDigest],
		Parent:          slots[slotParent],
		TxIDs:           slots[slotTxIDs],
		Coinbase:        slots[slotCoinbase],
		Timestamp:       slots[slotTimestamp],
		EpochCounter:    slots[slotEpochCounter],
		Target:          slots[slotTarget],
		AccumulatedWork: slots[slotAccumulatedWork],
		Height:          slots[slotHeight],
	}
}

// DecodeBlock decodes a stored buffer straight into a typed Block.
func DecodeBlock(codec noun.Codec, buf []byte) (Block, error) {
	slots, err := Decode(codec, buf)
	if err != nil {
		return Block{}, err
	}
	return FromSlots(slots), nil
}

// Render produces the wire-facing shape.
//
// Structured fields are re-serialized through the codec and
// hex-encoded; a re-serialization failure is fatal to the request.
// Counter fields render as exact decimal atoms; a counter that is not
// an atom degrades to a diagnostic placeholder instead of failing the
// whole block.
func (b Block) Render(codec noun.Codec) (types.Block, error) {
	out := types.Block{
		Timestamp:    renderAtom(b.Timestamp),
		EpochCounter: renderAtom(b.EpochCounter),
		Height:       renderAtom(b.Height),
	}

	var err error
	if out.Digest, err = renderHex(codec, "digest", b.Digest); err != nil {
		return types.Block{}, err
	}
	if out.Parent, err = renderHex(codec, "parent", b.Parent); err != nil {
		return types.Block{}, err
	}
	if out.TxIDs, err = renderHex(codec, "tx_ids", b.TxIDs); err != nil {
		return types.Block{}, err
	}
	if out.Coinbase, err = renderHex(codec, "coinbase", b.Coinbase); err != nil {
		return types.Block{}, err
	}
	if out.Target, err = renderHex(codec, "target", b.Target); err != nil {
		return types.Block{}, err
	}
	if out.AccumulatedWork, err = renderHex(codec, "accumulated_work", b.AccumulatedWork); err != nil {
		return types.Block{}, err
	}
	return out, nil
}

func renderHex(codec noun.Codec, name string, n noun.Noun) (string, error) {
	data, err := codec.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", name, nockrpc.ErrEncodeFailed, err)
	}
	return hex.EncodeToString(data), nil
}

func renderAtom(n noun.Noun) string {
	if a, ok := n.Atom(); ok {
		return a.String()
	}
	return fmt.Sprintf("invalid (not atom): %s", n)
}
