package bencode

import (
	"errors"
	"fmt"
	"reflect"
)

// Decode errors. Every syntax failure returned by a Decoder is a *SyntaxError
// wrapping exactly one of these.
var (
	// ErrTruncated means the input ended before a production was closed.
	ErrTruncated = errors.New("truncated input")

	// ErrInvalidCharacter means a byte cannot begin or continue the
	// production being parsed.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrInvalidLength means a byte string length prefix is not a usable
	// non-negative length.
	ErrInvalidLength = errors.New("invalid length")

	// ErrOutOfOrderKey means dict keys are not in ascending byte order.
	ErrOutOfOrderKey = errors.New("out of order key")
)

// SyntaxError Malformed bencode input, decoder failed to parse it.
type SyntaxError struct {
	Offset int64 // location of the error
	What   error // one of the Err* sentinels
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: syntax error (offset: %d): %s", e.Offset, e.What)
}

// Unwrap returns the error kind.
func (e *SyntaxError) Unwrap() error {
	return e.What
}

// MarshalTypeError is returned by FromNative for Go types which have no
// bencode representation, e.g. float64.
type MarshalTypeError struct {
	Type reflect.Type
}

func (e *MarshalTypeError) Error() string {
	if e.Type == nil {
		return "bencode: unsupported type: nil"
	}
	return "bencode: unsupported type: " + e.Type.String()
}
