package torlib

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/uber/kraken-bencode/bencode"
)

// InfoHash is the sha1 of the canonical encoding of a torrent info dict.
type InfoHash [20]byte

// Bytes returns the raw hash bytes.
func (h InfoHash) Bytes() []byte {
	return h[:]
}

func (h InfoHash) String() string {
	return h.HexString()
}

// HexString returns the lowercase hex form of h.
func (h InfoHash) HexString() string {
	return hex.EncodeToString(h[:])
}

// NewInfoHashFromHex parses a 40 character hex string.
func NewInfoHashFromHex(s string) (h InfoHash, err error) {
	if len(s) != 40 {
		return h, fmt.Errorf("InfoHash hex string has bad length: %d", len(s))
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, err
	}
	return h, nil
}

// NewInfoHashFromBytes hashes b.
func NewInfoHashFromBytes(b []byte) InfoHash {
	return InfoHash(sha1.Sum(b))
}

// ComputeInfoHash encodes info canonically and hashes the result.
func ComputeInfoHash(info bencode.Value) (InfoHash, error) {
	b, err := bencode.Encode(info)
	if err != nil {
		return InfoHash{}, fmt.Errorf("encode info: %s", err)
	}
	return NewInfoHashFromBytes(b), nil
}
