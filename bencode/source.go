package bencode

import (
	"bufio"
	"io"
)

// byteSource is what the decoder reads from: single bytes with one byte of
// lookahead, plus bulk reads for byte string payloads. *bytes.Reader,
// *bytes.Buffer and *bufio.Reader all satisfy it.
type byteSource interface {
	io.ByteScanner
	io.Reader
}

func newByteSource(r io.Reader) byteSource {
	if s, ok := r.(byteSource); ok {
		return s
	}
	return bufio.NewReader(r)
}

// cursor tracks how many bytes of src have been consumed.
type cursor struct {
	src    byteSource
	offset int64
}

// peek returns the next byte without consuming it.
func (c *cursor) peek() (byte, error) {
	b, err := c.src.ReadByte()
	if err != nil {
		return 0, err
	}
	if err := c.src.UnreadByte(); err != nil {
		return 0, err
	}
	return b, nil
}

func (c *cursor) next() (byte, error) {
	b, err := c.src.ReadByte()
	if err != nil {
		return 0, err
	}
	c.offset++
	return b, nil
}

// skip consumes a byte that was just returned by peek.
func (c *cursor) skip() {
	if _, err := c.next(); err != nil {
		panic("bencode: skip after failed peek: " + err.Error())
	}
}

// copyN moves exactly n bytes from the source into w.
func (c *cursor) copyN(w io.Writer, n int64) error {
	copied, err := io.CopyN(w, c.src, n)
	c.offset += copied
	return err
}
