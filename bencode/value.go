package bencode

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
)

// Value is a parsed bencode document node. It is implemented by exactly four
// types: Integer, Bytes, List and Dict.
type Value interface {
	bencodeValue()
}

// Integer is the raw digit run of a bencoded integer, exactly as it appeared
// between 'i' and 'e'. It is never parsed eagerly, so arbitrary precision and
// leading zeros survive a round trip.
type Integer []byte

// Bytes is a bencoded byte string. It need not be valid text.
type Bytes []byte

// List is an ordered sequence of values.
type List []Value

func (Integer) bencodeValue() {}
func (Bytes) bencodeValue()   {}
func (List) bencodeValue()    {}
func (Dict) bencodeValue()    {}

// Kind identifies the variant of a Value.
type Kind int

// Value kinds.
const (
	InvalidKind Kind = iota
	IntegerKind
	BytesKind
	ListKind
	DictKind
)

func (k Kind) String() string {
	switch k {
	case IntegerKind:
		return "integer"
	case BytesKind:
		return "bytes"
	case ListKind:
		return "list"
	case DictKind:
		return "dict"
	default:
		return "invalid"
	}
}

// KindOf returns the variant of v, or InvalidKind for a nil Value.
func KindOf(v Value) Kind {
	switch v.(type) {
	case Integer:
		return IntegerKind
	case Bytes:
		return BytesKind
	case List:
		return ListKind
	case Dict:
		return DictKind
	default:
		return InvalidKind
	}
}

// NewInteger creates an Integer holding the decimal form of n.
func NewInteger(n int64) Integer {
	return Integer(strconv.AppendInt(nil, n, 10))
}

// NewBigInteger creates an Integer holding the decimal form of n.
func NewBigInteger(n *big.Int) Integer {
	return Integer(n.Append(nil, 10))
}

// Int64 parses the digit run as a signed 64 bit integer.
func (i Integer) Int64() (int64, error) {
	return strconv.ParseInt(string(i), 10, 64)
}

// BigInt parses the digit run without a size limit.
func (i Integer) BigInt() (*big.Int, error) {
	n, ok := new(big.Int).SetString(string(i), 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", []byte(i))
	}
	return n, nil
}

func (i Integer) String() string {
	return string(i)
}

func (b Bytes) String() string {
	return string(b)
}

// Equal reports whether a and b are structurally equal. List comparison is
// order sensitive, Dict comparison compares keys and values.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Integer:
		bv, ok := b.(Integer)
		return ok && bytes.Equal(av, bv)
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Dict:
		bv, ok := b.(Dict)
		return ok && av.equal(bv)
	case nil:
		return b == nil
	default:
		panic(fmt.Sprintf("unknown value type %T", a))
	}
}

// AsDict returns v as a Dict.
func AsDict(v Value) (Dict, error) {
	d, ok := v.(Dict)
	if !ok {
		return Dict{}, fmt.Errorf("expected dict, got %s", KindOf(v))
	}
	return d, nil
}
