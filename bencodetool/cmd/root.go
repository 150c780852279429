package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/uber/kraken-bencode/metrics"
	"github.com/uber/kraken-bencode/utils/configutil"
	"github.com/uber/kraken-bencode/utils/log"

	"github.com/andres-erbsen/clock"
	"github.com/spf13/cobra"
	"github.com/uber-go/tally"
	"go.uber.org/zap"
)

// Version is stamped at build time.
var Version string

// Flags defines bencodetool persistent flags.
type Flags struct {
	ConfigFile string
	Cluster    string
}

type options struct {
	config  *Config
	metrics tally.Scope
	logger  *zap.Logger
	clk     clock.Clock
}

// Option defines an optional command parameter.
type Option func(*options)

// WithConfig ignores the config flag and directly uses the provided config
// struct.
func WithConfig(c Config) Option {
	return func(o *options) { o.config = &c }
}

// WithMetrics ignores metrics config and directly uses the provided tally scope.
func WithMetrics(s tally.Scope) Option {
	return func(o *options) { o.metrics = s }
}

// WithLogger ignores logging config and directly uses the provided logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock overrides the clock used to stamp creation dates.
func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clk = clk }
}

// env holds what every subcommand needs once persistent flags are parsed.
type env struct {
	flags     Flags
	overrides options

	config Config
	clk    clock.Clock
	stats  tally.Scope
	closer io.Closer
	sync   func() error
}

func (e *env) setup() error {
	if e.overrides.config != nil {
		e.config = *e.overrides.config
	} else if e.flags.ConfigFile != "" {
		if err := configutil.Load(e.flags.ConfigFile, &e.config); err != nil {
			return fmt.Errorf("load config: %s", err)
		}
	}
	e.config = e.config.applyDefaults()

	e.clk = e.overrides.clk
	if e.clk == nil {
		e.clk = clock.New()
	}

	if e.overrides.logger != nil {
		log.SetGlobalLogger(e.overrides.logger.Sugar())
	} else if e.config.ZapLogging.Encoding != "" {
		e.sync = log.ConfigureLogger(e.config.ZapLogging).Sync
	} else {
		l, err := log.New(e.config.Logging, map[string]interface{}{"cluster": e.flags.Cluster})
		if err != nil {
			return fmt.Errorf("logger: %s", err)
		}
		log.SetGlobalLogger(l.Sugar())
		e.sync = l.Sync
	}

	if e.overrides.metrics != nil {
		e.stats = e.overrides.metrics
	} else {
		s, closer, err := metrics.New(e.config.Metrics, e.flags.Cluster)
		if err != nil {
			return fmt.Errorf("init metrics: %s", err)
		}
		e.stats = s
		e.closer = closer
	}
	metrics.EmitVersion(e.stats, Version)
	return nil
}

func (e *env) teardown() {
	if e.closer != nil {
		e.closer.Close()
	}
	if e.sync != nil {
		e.sync()
	}
}

// runE wraps a subcommand so metrics and logs are flushed even when it fails.
func (e *env) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer e.teardown()
		return fn(cmd, args)
	}
}

// NewRootCmd builds the bencodetool command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	e := &env{}
	for _, o := range opts {
		o(&e.overrides)
	}

	root := &cobra.Command{
		Use:   "bencodetool",
		Short: "bencodetool inspects, validates and rewrites bencoded documents.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(
		&e.flags.ConfigFile, "config", "", "", "configuration file path")
	root.PersistentFlags().StringVarP(
		&e.flags.Cluster, "cluster", "", "", "cluster name used to tag logs and metrics")

	root.AddCommand(
		newDumpCmd(e),
		newValidateCmd(e),
		newCanonicalizeCmd(e),
		newInfoHashCmd(e),
		newMkTorrentCmd(e))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openInput returns the file named by args, or stdin when args is empty or "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %s", err)
	}
	return f, nil
}
