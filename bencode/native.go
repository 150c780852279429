package bencode

import (
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ToNative converts v into plain Go values: int64 (or *big.Int when the
// integer does not fit, or the raw string when it is not a number at all),
// string, []interface{} and map[string]interface{}.
func ToNative(v Value) interface{} {
	switch v := v.(type) {
	case Integer:
		n, err := v.Int64()
		if err == nil {
			return n
		}
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			if b, err := v.BigInt(); err == nil {
				return b
			}
		}
		return string(v)
	case Bytes:
		return string(v)
	case List:
		list := make([]interface{}, 0, len(v))
		for _, item := range v {
			list = append(list, ToNative(item))
		}
		return list
	case Dict:
		dict := make(map[string]interface{}, v.Len())
		v.Walk(func(k []byte, item Value) bool {
			dict[string(k)] = ToNative(item)
			return false
		})
		return dict
	default:
		return nil
	}
}

// FromNative converts a Go value into a Value. Supported are Values, integer
// kinds, bool (as 0 or 1), *big.Int, strings, byte slices, slices and arrays,
// maps with string keys, and structs. Struct fields are named by their
// `bencode:"name,omitempty"` tag or by the field name; a "-" tag skips the
// field. Pointers and interfaces are followed. A nil pointer encodes as the
// zero value of its element type, except that nil struct and array pointers
// encode as an empty dict and an empty list.
func FromNative(x interface{}) (Value, error) {
	if x == nil {
		return nil, &MarshalTypeError{}
	}
	return fromReflect(reflect.ValueOf(x))
}

var (
	integerType = reflect.TypeOf(Integer(nil))
	bytesType   = reflect.TypeOf(Bytes(nil))
	listType    = reflect.TypeOf(List(nil))
	dictType    = reflect.TypeOf(Dict{})
	bigIntType  = reflect.TypeOf((*big.Int)(nil))
)

// isValueType reports whether t is one of the four Value variants. Pointers
// to variants are not, and are dereferenced like any other pointer.
func isValueType(t reflect.Type) bool {
	switch t {
	case integerType, bytesType, listType, dictType:
		return true
	}
	return false
}

func fromReflect(v reflect.Value) (Value, error) {
	if v.IsValid() && isValueType(v.Type()) {
		return v.Interface().(Value), nil
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return Integer("1"), nil
		}
		return Integer("0"), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInteger(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer(strconv.AppendUint(nil, v.Uint(), 10)), nil
	case reflect.String:
		return Bytes(v.String()), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(append([]byte{}, v.Bytes()...)), nil
		}
		fallthrough
	case reflect.Array:
		list := make(List, 0, v.Len())
		for i, n := 0, v.Len(); i < n; i++ {
			item, err := fromReflect(v.Index(i))
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
		return list, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, &MarshalTypeError{v.Type()}
		}
		b := NewDictBuilder()
		iter := v.MapRange()
		for iter.Next() {
			item, err := fromReflect(iter.Value())
			if err != nil {
				return nil, err
			}
			b.Set([]byte(iter.Key().String()), item)
		}
		return b.Dict(), nil
	case reflect.Struct:
		b := NewDictBuilder()
		for _, ef := range encodeFields(v.Type()) {
			fv := v.Field(ef.i)
			if ef.omitEmpty && isEmptyValue(fv) {
				continue
			}
			item, err := fromReflect(fv)
			if err != nil {
				return nil, err
			}
			b.Set([]byte(ef.tag), item)
		}
		return b.Dict(), nil
	case reflect.Interface:
		if v.IsNil() {
			return nil, &MarshalTypeError{v.Type()}
		}
		return fromReflect(v.Elem())
	case reflect.Ptr:
		if v.Type() == bigIntType && !v.IsNil() {
			return NewBigInteger(v.Interface().(*big.Int)), nil
		}
		if v.IsNil() {
			switch v.Type().Elem().Kind() {
			case reflect.Struct:
				return Dict{}, nil
			case reflect.Array:
				return List{}, nil
			}
			return fromReflect(reflect.Zero(v.Type().Elem()))
		}
		return fromReflect(v.Elem())
	default:
		if !v.IsValid() {
			return nil, &MarshalTypeError{}
		}
		return nil, &MarshalTypeError{v.Type()}
	}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

type encodeField struct {
	i         int
	tag       string
	omitEmpty bool
}

var (
	typeCacheLock     sync.RWMutex
	encodeFieldsCache = make(map[reflect.Type][]encodeField)
)

func encodeFields(t reflect.Type) []encodeField {
	typeCacheLock.RLock()
	fs, ok := encodeFieldsCache[t]
	typeCacheLock.RUnlock()
	if ok {
		return fs
	}

	typeCacheLock.Lock()
	defer typeCacheLock.Unlock()
	fs, ok = encodeFieldsCache[t]
	if ok {
		return fs
	}

	for i, n := 0, t.NumField(); i < n; i++ {
		f := t.Field(i)
		if f.PkgPath != "" || f.Anonymous {
			continue
		}
		ef := encodeField{i: i, tag: f.Name}

		if tv := f.Tag.Get("bencode"); tv != "" {
			if tv == "-" {
				continue
			}
			name, opts := parseTag(tv)
			if name != "" {
				ef.tag = name
			}
			ef.omitEmpty = opts.contains("omitempty")
		}
		fs = append(fs, ef)
	}
	encodeFieldsCache[t] = fs
	return fs
}

// parseTag splits a struct tag into its name and comma separated options.
func parseTag(tag string) (string, tagOptions) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, tagOptions(opts)
}

type tagOptions string

func (opts tagOptions) contains(name string) bool {
	for _, o := range strings.Split(string(opts), ",") {
		if o == name {
			return true
		}
	}
	return false
}
