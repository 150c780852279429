package cmd

import (
	"github.com/uber/kraken-bencode/bencode"
	"github.com/uber/kraken-bencode/metrics"
	"github.com/uber/kraken-bencode/utils/log"

	"github.com/c2h5oh/datasize"
	"go.uber.org/zap"
)

// Config defines bencodetool configuration. ZapLogging takes precedence over
// Logging when it names an encoding.
type Config struct {
	ZapLogging zap.Config     `yaml:"zap"`
	Logging    log.Config     `yaml:"logging"`
	Metrics    metrics.Config `yaml:"metrics"`
	Decoder    DecoderConfig  `yaml:"decoder"`
	Torrent    TorrentConfig  `yaml:"torrent"`
}

// DecoderConfig defines decoding limits.
type DecoderConfig struct {
	StrictKeyOrder bool              `yaml:"strict_key_order"`
	MaxDepth       int               `yaml:"max_depth" validate:"min=0"`
	MaxBytesLength datasize.ByteSize `yaml:"max_bytes_length"`
}

// Options returns the decoder options c describes.
func (c DecoderConfig) Options() []bencode.DecoderOption {
	var opts []bencode.DecoderOption
	if c.StrictKeyOrder {
		opts = append(opts, bencode.WithStrictKeyOrder())
	}
	if c.MaxDepth > 0 {
		opts = append(opts, bencode.WithMaxDepth(c.MaxDepth))
	}
	if c.MaxBytesLength > 0 {
		opts = append(opts, bencode.WithMaxBytesLength(int64(c.MaxBytesLength.Bytes())))
	}
	return opts
}

// TorrentConfig defines mktorrent defaults.
type TorrentConfig struct {
	PieceLength datasize.ByteSize `yaml:"piece_length"`
}

func (c TorrentConfig) applyDefaults() TorrentConfig {
	if c.PieceLength == 0 {
		c.PieceLength = 256 * datasize.KB
	}
	return c
}

func (c Config) applyDefaults() Config {
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = "bencodetool"
	}
	c.Torrent = c.Torrent.applyDefaults()
	return c
}
