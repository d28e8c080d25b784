package noun

import "fmt"

// Noun is one opaque field value from a block record: either an atom
// or a cell whose internal structure this package never interprets.
// A decoded Noun is exclusively owned by the record that produced it.
type Noun struct {
	atom *Atom
	// cell holds the canonical serialized bytes of a non-atom value.
	cell []byte
}

// FromAtom wraps an atom as a noun.
func FromAtom(a Atom) Noun {
	return Noun{atom: &a}
}

// FromCell wraps opaque serialized cell bytes as a noun. The bytes
// are copied; the caller keeps ownership of its slice.
func FromCell(b []byte) Noun {
	cell := make([]byte, len(b))
	copy(cell, b)
	return Noun{cell: cell}
}

// IsAtom reports whether the noun is an atom.
func (n Noun) IsAtom() bool { return n.atom != nil }

// Atom returns the atom value and true when the noun is an atom.
func (n Noun) Atom() (Atom, bool) {
	if n.atom == nil {
		return Atom{}, false
	}
	return *n.atom, true
}

// CellBytes returns the opaque serialized bytes of a cell noun, or
// nil for an atom.
func (n Noun) CellBytes() []byte {
	return n.cell
}

// Equal reports whether two nouns hold the same value.
func (n Noun) Equal(o Noun) bool {
	if n.IsAtom() != o.IsAtom() {
		return false
	}
	if n.IsAtom() {
		return n.atom.Equal(*o.atom)
	}
	return string(n.cell) == string(o.cell)
}

// String renders a short diagnostic form. Atoms render as decimal;
// cells as a byte count, since their structure is opaque here.
func (n Noun) String() string {
	if n.atom != nil {
		return n.atom.String()
	}
	return fmt.Sprintf("cell{%d bytes}", len(n.cell))
}
