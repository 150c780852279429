package bencode

import (
	"bufio"
	"bytes"
	"io"
)

// Decode parses one value from the start of data. Bytes after the value are
// ignored.
func Decode(data []byte, opts ...DecoderOption) (Value, error) {
	v, _, err := DecodePrefix(data, opts...)
	return v, err
}

// DecodePrefix parses one value from the start of data and returns the bytes
// that follow it.
func DecodePrefix(data []byte, opts ...DecoderOption) (Value, []byte, error) {
	d := NewDecoder(bytes.NewReader(data), opts...)
	v, err := d.Decode()
	if err == io.EOF {
		err = d.syntaxError(0, ErrTruncated)
	}
	if err != nil {
		return nil, nil, err
	}
	return v, data[d.Offset():], nil
}

// Encode returns the canonical encoding of v.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewDecoder creates a decoder reading from r. If r is an io.ByteScanner and
// io.Reader, such as *bytes.Reader or *bufio.Reader, it is read directly and
// is left positioned just past each decoded value. Otherwise it is buffered
// and may be read ahead.
func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{c: cursor{src: newByteSource(r)}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}
