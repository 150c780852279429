package cmd

import (
	"errors"

	"github.com/uber/kraken-bencode/bencode"

	"github.com/uber-go/tally"
)

// errorKind names the decode failure err for metric tags.
func errorKind(err error) string {
	switch {
	case errors.Is(err, bencode.ErrTruncated):
		return "truncated"
	case errors.Is(err, bencode.ErrInvalidCharacter):
		return "invalid_character"
	case errors.Is(err, bencode.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, bencode.ErrOutOfOrderKey):
		return "out_of_order_key"
	default:
		return "io"
	}
}

func countDecode(stats tally.Scope, err error) {
	result := "ok"
	if err != nil {
		result = errorKind(err)
	}
	stats.Tagged(map[string]string{"result": result}).Counter("decode").Inc(1)
}
