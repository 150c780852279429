package bencode

import (
	"bufio"
	"fmt"
	"strconv"
)

// Encoder writes values in canonical bencode form.
type Encoder struct {
	w       *bufio.Writer
	scratch [64]byte
	err     error
}

// Encode writes v and flushes the underlying writer. The only errors are
// those reported by the writer.
func (e *Encoder) Encode(v Value) error {
	e.err = nil
	e.encodeValue(v)
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

func (e *Encoder) write(s []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(s)
}

func (e *Encoder) writeByte(b byte) {
	if e.err != nil {
		return
	}
	e.err = e.w.WriteByte(b)
}

func (e *Encoder) encodeBytes(s []byte) {
	e.write(strconv.AppendInt(e.scratch[:0], int64(len(s)), 10))
	e.writeByte(':')
	e.write(s)
}

func (e *Encoder) encodeValue(v Value) {
	switch v := v.(type) {
	case Integer:
		e.writeByte('i')
		e.write(v)
		e.writeByte('e')
	case Bytes:
		e.encodeBytes(v)
	case List:
		e.writeByte('l')
		for _, item := range v {
			e.encodeValue(item)
		}
		e.writeByte('e')
	case Dict:
		e.writeByte('d')
		v.Walk(func(k []byte, item Value) bool {
			e.encodeBytes(k)
			e.encodeValue(item)
			return e.err != nil
		})
		e.writeByte('e')
	default:
		panic(fmt.Sprintf("bencode: cannot encode %T", v))
	}
}
