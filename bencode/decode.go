package bencode

import (
	"bytes"
	"io"
	"strconv"
)

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithStrictKeyOrder makes the decoder reject a dict key equal to the key
// before it. By default keys only need to be non-decreasing and a repeated
// key overwrites the earlier entry.
func WithStrictKeyOrder() DecoderOption {
	return func(d *Decoder) { d.strictKeys = true }
}

// WithMaxDepth bounds list and dict nesting. A container opened beyond the
// limit fails with ErrInvalidCharacter at its opening byte. Zero means no
// limit.
func WithMaxDepth(n int) DecoderOption {
	return func(d *Decoder) { d.maxDepth = n }
}

// WithMaxBytesLength rejects byte strings longer than n with
// ErrInvalidLength before reading their payload. Zero means no limit.
func WithMaxBytesLength(n int64) DecoderOption {
	return func(d *Decoder) { d.maxBytesLength = n }
}

// Decoder reads bencoded values from a byte stream.
type Decoder struct {
	c              cursor
	buf            bytes.Buffer
	depth          int
	strictKeys     bool
	maxDepth       int
	maxBytesLength int64
}

// Decode reads exactly one value from the stream and leaves the stream
// positioned just past it. It returns io.EOF if the stream is already
// exhausted before the value starts.
func (d *Decoder) Decode() (Value, error) {
	if _, err := d.c.peek(); err != nil {
		return nil, err
	}
	d.depth = 0
	return d.parseValue()
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 {
	return d.c.offset
}

func (d *Decoder) syntaxError(offset int64, what error) error {
	return &SyntaxError{
		Offset: offset,
		What:   what,
	}
}

// sourceError turns end of input into a truncation error. Other source
// errors are returned as is.
func (d *Decoder) sourceError(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return d.syntaxError(d.c.offset, ErrTruncated)
	}
	return err
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (d *Decoder) parseValue() (Value, error) {
	b, err := d.c.peek()
	if err != nil {
		return nil, d.sourceError(err)
	}

	switch {
	case b == 'i':
		return d.parseInt()
	case b == 'l':
		return d.parseList()
	case b == 'd':
		return d.parseDict()
	case isDigit(b):
		return d.parseBytes()
	default:
		return nil, d.syntaxError(d.c.offset, ErrInvalidCharacter)
	}
}

// readDigits consumes the longest run of ASCII digits. The byte following the
// run is left unconsumed.
func (d *Decoder) readDigits() ([]byte, error) {
	d.buf.Reset()
	for {
		b, err := d.c.peek()
		if err != nil {
			return nil, d.sourceError(err)
		}
		if !isDigit(b) {
			return append([]byte{}, d.buf.Bytes()...), nil
		}
		d.c.skip()
		d.buf.WriteByte(b)
	}
}

func (d *Decoder) expect(want byte) error {
	b, err := d.c.next()
	if err != nil {
		return d.sourceError(err)
	}
	if b != want {
		return d.syntaxError(d.c.offset-1, ErrInvalidCharacter)
	}
	return nil
}

func (d *Decoder) parseInt() (Value, error) {
	d.c.skip() // 'i'

	digits, err := d.readDigits()
	if err != nil {
		return nil, err
	}
	if len(digits) == 0 {
		return nil, d.syntaxError(d.c.offset, ErrInvalidCharacter)
	}
	if err := d.expect('e'); err != nil {
		return nil, err
	}
	return Integer(digits), nil
}

func (d *Decoder) readBytes() ([]byte, error) {
	start := d.c.offset

	digits, err := d.readDigits()
	if err != nil {
		return nil, err
	}
	length, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil || (d.maxBytesLength > 0 && length > d.maxBytesLength) {
		return nil, d.syntaxError(start, ErrInvalidLength)
	}
	if err := d.expect(':'); err != nil {
		return nil, err
	}

	d.buf.Reset()
	if err := d.c.copyN(&d.buf, length); err != nil {
		return nil, d.sourceError(err)
	}
	return append([]byte{}, d.buf.Bytes()...), nil
}

func (d *Decoder) parseBytes() (Value, error) {
	b, err := d.readBytes()
	if err != nil {
		return nil, err
	}
	return Bytes(b), nil
}

// enter consumes the opening byte of a container.
func (d *Decoder) enter() error {
	if d.maxDepth > 0 && d.depth >= d.maxDepth {
		return d.syntaxError(d.c.offset, ErrInvalidCharacter)
	}
	d.c.skip()
	d.depth++
	return nil
}

func (d *Decoder) leave() {
	d.depth--
}

func (d *Decoder) parseList() (Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	list := List{}
	for {
		b, err := d.c.peek()
		if err != nil {
			return nil, d.sourceError(err)
		}
		if b == 'e' {
			d.c.skip()
			return list, nil
		}
		v, err := d.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
}

func (d *Decoder) parseDict() (Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	builder := NewDictBuilder()
	var prev []byte
	for first := true; ; first = false {
		b, err := d.c.peek()
		if err != nil {
			return nil, d.sourceError(err)
		}
		if b == 'e' {
			d.c.skip()
			return builder.Dict(), nil
		}

		keyOffset := d.c.offset
		key, err := d.readBytes()
		if err != nil {
			return nil, err
		}
		if c := bytes.Compare(key, prev); c < 0 || (c == 0 && d.strictKeys && !first) {
			return nil, d.syntaxError(keyOffset, ErrOutOfOrderKey)
		}
		prev = key

		v, err := d.parseValue()
		if err != nil {
			return nil, err
		}
		builder.Set(key, v)
	}
}
