package bencode

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDictIsSortedRegardlessOfInsertOrder(t *testing.T) {
	d := NewDict().
		SetString("zz", Integer("1")).
		SetString("a", Integer("2")).
		SetString("\xff", Integer("3")).
		SetString("m", Integer("4")).
		SetString("ab", Integer("5"))

	var keys []string
	for _, k := range d.Keys() {
		keys = append(keys, string(k))
	}
	require.Equal(t, []string{"a", "ab", "m", "zz", "\xff"}, keys)
}

func TestDictIsImmutable(t *testing.T) {
	d1 := NewDict().SetString("a", Integer("1"))
	d2 := d1.SetString("b", Integer("2"))
	d3 := d2.Delete([]byte("a"))

	require.Equal(t, 1, d1.Len())
	require.Equal(t, 2, d2.Len())
	require.Equal(t, 1, d3.Len())
	_, ok := d3.GetString("a")
	require.False(t, ok)
	_, ok = d2.GetString("a")
	require.True(t, ok)
}

func TestDictCopiesKeys(t *testing.T) {
	key := []byte("key")
	d := NewDict().Set(key, Bytes("v"))
	key[0] = 'x'

	_, ok := d.GetString("key")
	require.True(t, ok)
	_, ok = d.GetString("xey")
	require.False(t, ok)
}

func TestZeroDict(t *testing.T) {
	var d Dict
	require.Equal(t, 0, d.Len())
	_, ok := d.GetString("a")
	require.False(t, ok)
	require.Empty(t, d.Keys())
	require.True(t, Equal(d, NewDict()))
	require.Equal(t, 0, d.Delete([]byte("a")).Len())
	require.Equal(t, 1, d.SetString("a", List{}).Len())
}

func TestDictBuilderLastWins(t *testing.T) {
	b := NewDictBuilder()
	b.Set([]byte("a"), Integer("1"))
	b.Set([]byte("a"), Integer("2"))
	d := b.Dict()

	require.Equal(t, 1, d.Len())
	v, _ := d.GetString("a")
	require.Equal(t, Integer("2"), v)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		description string
		a, b        Value
		equal       bool
	}{
		{"same integer", Integer("1"), Integer("1"), true},
		{"leading zero differs", Integer("01"), Integer("1"), false},
		{"integer vs bytes", Integer("1"), Bytes("1"), false},
		{"nil bytes vs empty", Bytes(nil), Bytes{}, true},
		{"list order", List{Integer("1"), Integer("2")}, List{Integer("2"), Integer("1")}, false},
		{"list length", List{Integer("1")}, List{Integer("1"), Integer("1")}, false},
		{"dict insert order", dictOf("a", Bytes("x"), "b", Bytes("y")), dictOf("b", Bytes("y"), "a", Bytes("x")), true},
		{"dict values", dictOf("a", Bytes("x")), dictOf("a", Bytes("y")), false},
		{"dict keys", dictOf("a", Bytes("x")), dictOf("b", Bytes("x")), false},
		{"dict vs list", NewDict(), List{}, false},
		{"nil", nil, nil, true},
		{"nil vs value", nil, List{}, false},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			require.Equal(t, test.equal, Equal(test.a, test.b))
			require.Equal(t, test.equal, Equal(test.b, test.a))
		})
	}
}

func TestIntegerAccessors(t *testing.T) {
	n, err := Integer("42").Int64()
	require.NoError(t, err)
	require.EqualValues(t, 42, n)

	_, err = Integer("604919719469385652980544193299329427705624352086").Int64()
	require.Error(t, err)

	b, err := Integer("604919719469385652980544193299329427705624352086").BigInt()
	require.NoError(t, err)
	require.Equal(t, "604919719469385652980544193299329427705624352086", b.String())

	_, err = Integer("").BigInt()
	require.Error(t, err)

	require.Equal(t, Integer("-5"), NewInteger(-5))
	require.Equal(t, Integer("18446744073709551616"), NewBigInteger(new(big.Int).Lsh(big.NewInt(1), 64)))
}

func TestKindOf(t *testing.T) {
	require.Equal(t, IntegerKind, KindOf(Integer("1")))
	require.Equal(t, BytesKind, KindOf(Bytes("1")))
	require.Equal(t, ListKind, KindOf(List{}))
	require.Equal(t, DictKind, KindOf(Dict{}))
	require.Equal(t, InvalidKind, KindOf(nil))
	require.Equal(t, "dict", DictKind.String())
}

func TestAsDict(t *testing.T) {
	_, err := AsDict(List{})
	require.EqualError(t, err, "expected dict, got list")

	d, err := AsDict(dictOf("a", Integer("1")))
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())
}
