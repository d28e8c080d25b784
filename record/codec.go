// Package record implements the on-disk block record layout: a
// fixed-arity sequence of length-prefixed serialized field values in
// one contiguous buffer.
package record

import (
	"encoding/binary"
	"fmt"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/noun"
)

// SlotCount is the number of length-prefixed entries in one record.
const SlotCount = 10

// MaxFieldBytes bounds the serialized size of a single entry. A
// length prefix above this is treated as corruption and the claimed
// payload is never read.
const MaxFieldBytes = 200_000

// Each entry starts with a 4-byte little-endian payload length.
const prefixBytes = 4

// Decode reads the fixed 10-entry layout out of buf, deserializing
// each payload through codec. A record either decodes fully or fails;
// no partial slot array is returned as success.
//
// Excess bytes after the final entry are ignored — the format is
// prefix-exact, not length-exact, matching how the store was
// populated.
func Decode(codec noun.Codec, buf []byte) ([SlotCount]noun.Noun, error) {
	var slots [SlotCount]noun.Noun

	cursor := 0
	for i := 0; i < SlotCount; i++ {
		rest := len(buf) - cursor
		if rest == 0 {
			// Clean exhaustion: the record simply has too few
			// entries.
			return slots, fmt.Errorf("%d of %d entries: %w", i, SlotCount, nockrpc.ErrWrongFieldCount)
		}
		if rest < prefixBytes {
			return slots, nockrpc.NewFieldError(i, fmt.Errorf("%w: %d bytes left, need %d for length prefix", nockrpc.ErrTruncated, rest, prefixBytes))
		}

		// Compare as uint32 before converting: on 32-bit platforms a
		// huge prefix would wrap negative as int.
		raw := binary.LittleEndian.Uint32(buf[cursor:])
		if raw > MaxFieldBytes {
			return slots, nockrpc.NewFieldError(i, fmt.Errorf("%w: %d > %d", nockrpc.ErrFieldTooLarge, raw, MaxFieldBytes))
		}
		l := int(raw)
		if rest-prefixBytes < l {
			return slots, nockrpc.NewFieldError(i, fmt.Errorf("%w: %d bytes left, length prefix claims %d", nockrpc.ErrTruncated, rest-prefixBytes, l))
		}

		payload := buf[cursor+prefixBytes : cursor+prefixBytes+l]
		n, err := codec.Unmarshal(payload)
		if err != nil {
			return slots, nockrpc.NewFieldError(i, fmt.Errorf("%w: %v", nockrpc.ErrDeserializeFailed, err))
		}
		slots[i] = n
		cursor += prefixBytes + l
	}

	return slots, nil
}

// Encode is the inverse of Decode: length prefix plus payload for
// each slot in fixed order. The read path never calls it; it exists
// for fixtures and round-trip verification.
func Encode(codec noun.Codec, slots [SlotCount]noun.Noun) ([]byte, error) {
	var out []byte
	for i, n := range slots {
		data, err := codec.Marshal(n)
		if err != nil {
			return nil, nockrpc.NewFieldError(i, fmt.Errorf("%w: %v", nockrpc.ErrEncodeFailed, err))
		}
		if len(data) > MaxFieldBytes {
			return nil, nockrpc.NewFieldError(i, fmt.Errorf("%w: %d > %d", nockrpc.ErrFieldTooLarge, len(data), MaxFieldBytes))
		}

		var prefix [prefixBytes]byte
		binary.LittleEndian.PutUint32(prefix[:], uint32(len(data)))
		out = append(out, prefix[:]...)
		out = append(out, data...)
	}
	return out, nil
}
