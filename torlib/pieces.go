package torlib

import (
	"encoding/hex"
	"encoding/json"
)

// Pieces is the concatenation of the sha1 sums of every piece.
type Pieces []byte

// UnmarshalJSON decodes a hex string.
func (p *Pieces) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// MarshalJSON encodes p as a hex string.
func (p Pieces) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(p))
}
