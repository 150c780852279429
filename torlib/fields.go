package torlib

import (
	"fmt"

	"github.com/uber/kraken-bencode/bencode"
)

func requireString(d bencode.Dict, key string) (string, error) {
	s, ok, err := optionalString(d, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("missing %q", key)
	}
	return s, nil
}

func optionalString(d bencode.Dict, key string) (string, bool, error) {
	v, ok := d.GetString(key)
	if !ok {
		return "", false, nil
	}
	b, ok := v.(bencode.Bytes)
	if !ok {
		return "", false, fmt.Errorf("%q: expected bytes, got %s", key, bencode.KindOf(v))
	}
	return string(b), true, nil
}

func requireInt(d bencode.Dict, key string) (int64, error) {
	n, ok, err := optionalInt(d, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("missing %q", key)
	}
	return n, nil
}

func optionalInt(d bencode.Dict, key string) (int64, bool, error) {
	v, ok := d.GetString(key)
	if !ok {
		return 0, false, nil
	}
	i, ok := v.(bencode.Integer)
	if !ok {
		return 0, false, fmt.Errorf("%q: expected integer, got %s", key, bencode.KindOf(v))
	}
	n, err := i.Int64()
	if err != nil {
		return 0, false, fmt.Errorf("%q: %s", key, err)
	}
	return n, true, nil
}
