// Package noun models the opaque field values stored inside block
// records: unbounded unsigned integers (atoms) and uninterpreted
// binary cells, together with the serialization scheme that moves
// them to and from bytes.
package noun

import (
	"encoding/binary"
	"math/big"
	"strconv"
)

// Atom is an unsigned integer of unbounded magnitude. Values that fit
// in 64 bits take a fast path; larger values fall back to
// arbitrary-precision arithmetic. Immutable once constructed.
type Atom struct {
	small uint64
	// big is non-nil only when the value exceeds 64 bits.
	big *big.Int
}

// NewAtom creates an Atom from a native unsigned integer.
func NewAtom(v uint64) Atom {
	return Atom{small: v}
}

// AtomFromBig creates an Atom from an arbitrary-precision integer.
// Returns false if v is nil or negative.
func AtomFromBig(v *big.Int) (Atom, bool) {
	if v == nil || v.Sign() < 0 {
		return Atom{}, false
	}
	if v.IsUint64() {
		return Atom{small: v.Uint64()}, true
	}
	return Atom{big: new(big.Int).Set(v)}, true
}

// AtomFromBytes creates an Atom from its canonical little-endian
// byte form. Trailing zero bytes are not significant; the empty
// slice is zero.
func AtomFromBytes(b []byte) Atom {
	// Strip non-significant high bytes.
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	b = b[:n]

	if len(b) <= 8 {
		var buf [8]byte
		copy(buf[:], b)
		return Atom{small: binary.LittleEndian.Uint64(buf[:])}
	}

	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return Atom{big: new(big.Int).SetBytes(be)}
}

// Uint64 returns the native value and true when the atom fits in
// 64 bits.
func (a Atom) Uint64() (uint64, bool) {
	if a.big != nil {
		return 0, false
	}
	return a.small, true
}

// Bytes returns the canonical minimal little-endian byte form.
// Zero renders as the empty slice.
func (a Atom) Bytes() []byte {
	if a.big != nil {
		be := a.big.Bytes()
		le := make([]byte, len(be))
		for i, c := range be {
			le[len(be)-1-i] = c
		}
		return le
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], a.small)
	n := 8
	for n > 0 && buf[n-1] == 0 {
		n--
	}
	return buf[:n:n]
}

// String renders the exact decimal form at any magnitude.
func (a Atom) String() string {
	if a.big != nil {
		return a.big.String()
	}
	return strconv.FormatUint(a.small, 10)
}

// Equal reports whether two atoms hold the same value.
func (a Atom) Equal(b Atom) bool {
	if a.big == nil && b.big == nil {
		return a.small == b.small
	}
	if a.big != nil && b.big != nil {
		return a.big.Cmp(b.big) == 0
	}
	// One side is big, the other small: normalized atoms only use
	// the big form past 64 bits, so they cannot be equal.
	return false
}
