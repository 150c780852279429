package configutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/validator.v2"
)

const (
	baseConfig = `
decoder:
  max_depth: 64
  max_bytes_length: 1048576
torrent:
  piece_length: 4096
formats:
  dump: tree
`

	strictConfig = `
extends: %s
decoder:
  strict_key_order: true
formats:
  canonicalize: raw
`

	invalidConfig = `
decoder:
  max_depth: -1
torrent:
  piece_length: 0
`
)

type decoderConfig struct {
	StrictKeyOrder bool  `yaml:"strict_key_order"`
	MaxDepth       int   `yaml:"max_depth" validate:"min=0"`
	MaxBytesLength int64 `yaml:"max_bytes_length" validate:"min=0"`
}

type torrentConfig struct {
	PieceLength int64 `yaml:"piece_length" validate:"min=1"`
}

type configuration struct {
	Decoder decoderConfig     `yaml:"decoder"`
	Torrent torrentConfig     `yaml:"torrent"`
	Formats map[string]string `yaml:"formats"`
}

func writeFile(t *testing.T, dir, name, contents string) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
	return p
}

func TestLoad(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	fname := writeFile(t, dir, "base.yaml", baseConfig)

	var cfg configuration
	require.NoError(Load(fname, &cfg))
	require.Equal(64, cfg.Decoder.MaxDepth)
	require.Equal(int64(1048576), cfg.Decoder.MaxBytesLength)
	require.False(cfg.Decoder.StrictKeyOrder)
	require.Equal(int64(4096), cfg.Torrent.PieceLength)
}

func TestLoadExtends(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", baseConfig)
	fname := writeFile(t, dir, "strict.yaml", fmt.Sprintf(strictConfig, "base.yaml"))

	var cfg configuration
	require.NoError(Load(fname, &cfg))
	require.True(cfg.Decoder.StrictKeyOrder)
	require.Equal(64, cfg.Decoder.MaxDepth)
	require.Equal(int64(4096), cfg.Torrent.PieceLength)

	// Maps are merged across the extends chain.
	require.Equal(map[string]string{"dump": "tree", "canonicalize": "raw"}, cfg.Formats)
}

func TestLoadInvalidConfig(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	fname := writeFile(t, dir, "invalid.yaml", invalidConfig)

	var cfg configuration
	err := Load(fname, &cfg)
	require.Error(err)

	verr, ok := err.(ValidationError)
	require.True(ok)
	require.Equal(validator.ErrorArray{validator.ErrMin}, verr.ErrForField("Decoder.MaxDepth"))
	require.Equal(validator.ErrorArray{validator.ErrMin}, verr.ErrForField("Torrent.PieceLength"))
}

func TestLoadMissingFile(t *testing.T) {
	var cfg configuration
	require.Error(t, Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	fname := writeFile(t, dir, "bad.yaml", "decoder: [")

	var cfg configuration
	require.Error(t, Load(fname, &cfg))
}

func TestLoadCircularExtends(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "extends: b.yaml\n")
	fname := writeFile(t, dir, "b.yaml", "extends: a.yaml\n")

	var cfg configuration
	require.Equal(ErrCycleRef, Load(fname, &cfg))
}
