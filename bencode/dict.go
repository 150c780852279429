package bencode

import (
	iradix "github.com/hashicorp/go-immutable-radix/v2"
)

// Dict maps byte string keys to values. It is backed by an immutable radix
// tree, so iteration is always in ascending byte-wise key order no matter in
// which order entries were added. The zero Dict is an empty dict.
//
// Set and Delete return a new Dict and leave the receiver untouched.
type Dict struct {
	tree *iradix.Tree[Value]
}

// NewDict returns an empty Dict.
func NewDict() Dict {
	return Dict{tree: iradix.New[Value]()}
}

func (d Dict) getTree() *iradix.Tree[Value] {
	if d.tree == nil {
		return iradix.New[Value]()
	}
	return d.tree
}

// Len returns the number of entries.
func (d Dict) Len() int {
	if d.tree == nil {
		return 0
	}
	return d.tree.Len()
}

// Get returns the value stored under key.
func (d Dict) Get(key []byte) (Value, bool) {
	if d.tree == nil {
		return nil, false
	}
	return d.tree.Get(key)
}

// GetString is Get with a string key.
func (d Dict) GetString(key string) (Value, bool) {
	return d.Get([]byte(key))
}

// Set returns a copy of d with key mapped to v. An existing entry for key is
// replaced.
func (d Dict) Set(key []byte, v Value) Dict {
	t, _, _ := d.getTree().Insert(copyKey(key), v)
	return Dict{tree: t}
}

// SetString is Set with a string key.
func (d Dict) SetString(key string, v Value) Dict {
	return d.Set([]byte(key), v)
}

// Delete returns a copy of d without key.
func (d Dict) Delete(key []byte) Dict {
	if d.tree == nil {
		return d
	}
	t, _, _ := d.tree.Delete(key)
	return Dict{tree: t}
}

// Walk calls fn for every entry in ascending key order until fn returns
// true. The key slice must not be modified.
func (d Dict) Walk(fn func(key []byte, v Value) bool) {
	if d.tree == nil {
		return
	}
	d.tree.Root().Walk(func(k []byte, v Value) bool {
		return fn(k, v)
	})
}

// Keys returns all keys in ascending order.
func (d Dict) Keys() [][]byte {
	keys := make([][]byte, 0, d.Len())
	d.Walk(func(k []byte, _ Value) bool {
		keys = append(keys, copyKey(k))
		return false
	})
	return keys
}

func (d Dict) equal(o Dict) bool {
	if d.Len() != o.Len() {
		return false
	}
	eq := true
	d.Walk(func(k []byte, v Value) bool {
		ov, ok := o.Get(k)
		if !ok || !Equal(v, ov) {
			eq = false
			return true
		}
		return false
	})
	return eq
}

// DictBuilder accumulates entries into a single radix transaction and is
// cheaper than repeated Set calls when building a large Dict.
type DictBuilder struct {
	txn *iradix.Txn[Value]
}

// NewDictBuilder returns an empty DictBuilder.
func NewDictBuilder() *DictBuilder {
	return &DictBuilder{txn: iradix.New[Value]().Txn()}
}

// Set maps key to v, replacing any earlier entry for key.
func (b *DictBuilder) Set(key []byte, v Value) {
	b.txn.Insert(copyKey(key), v)
}

// Dict returns the accumulated entries.
func (b *DictBuilder) Dict() Dict {
	return Dict{tree: b.txn.Commit()}
}

func copyKey(k []byte) []byte {
	return append([]byte{}, k...)
}
