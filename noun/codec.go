package noun

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// Codec is the external serialization scheme for field values. The
// indexer depends only on these two capabilities and assumes nothing
// about the encoded form beyond what the codec itself guarantees.
type Codec interface {
	Marshal(n Noun) ([]byte, error)
	Unmarshal(data []byte) (Noun, error)
}

// Noun kinds on the wire.
const (
	kindAtom uint32 = iota
	kindCell
)

// wireNoun is the serialized shape of one field value.
type wireNoun struct {
	Kind uint32 `cramberry:"1"`
	// Atom magnitude, minimal little-endian. Empty = zero.
	Atom []byte `cramberry:"2"`
	// Opaque cell payload.
	Cell []byte `cramberry:"3"`
}

// CramberryCodec implements Codec using cramberry for deterministic
// binary serialization.
type CramberryCodec struct{}

// Compile-time interface check.
var _ Codec = CramberryCodec{}

func (CramberryCodec) Marshal(n Noun) ([]byte, error) {
	w := wireNoun{Kind: kindCell, Cell: n.CellBytes()}
	if a, ok := n.Atom(); ok {
		w = wireNoun{Kind: kindAtom, Atom: a.Bytes()}
	}
	data, err := cramberry.Marshal(&w)
	if err != nil {
		return nil, fmt.Errorf("cramberry marshal: %w", err)
	}
	return data, nil
}

func (CramberryCodec) Unmarshal(data []byte) (Noun, error) {
	var w wireNoun
	if err := cramberry.Unmarshal(data, &w); err != nil {
		return Noun{}, fmt.Errorf("cramberry unmarshal: %w", err)
	}
	switch w.Kind {
	case kindAtom:
		return FromAtom(AtomFromBytes(w.Atom)), nil
	case kindCell:
		return FromCell(w.Cell), nil
	default:
		return Noun{}, fmt.Errorf("unknown noun kind %d", w.Kind)
	}
}
