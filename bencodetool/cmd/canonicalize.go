package cmd

import (
	"errors"
	"io"

	"github.com/uber/kraken-bencode/bencode"
	"github.com/uber/kraken-bencode/utils/log"

	"github.com/spf13/cobra"
)

// countingWriter counts bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func newCanonicalizeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "canonicalize [file]",
		Short: "re-encode every document in canonical form, dropping repeated dict keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			out := &countingWriter{w: cmd.OutOrStdout()}
			d := bencode.NewDecoder(in, e.config.Decoder.Options()...)
			enc := bencode.NewEncoder(out)
			encoded := e.stats.Counter("bytes_encoded")
			var n int
			for {
				v, err := d.Decode()
				if err == io.EOF {
					break
				}
				countDecode(e.stats, err)
				if err != nil {
					return err
				}
				written := out.n
				err = enc.Encode(v)
				encoded.Inc(out.n - written)
				if err != nil {
					return err
				}
				n++
			}
			if n == 0 {
				return errors.New("empty input")
			}
			log.Debugw("Canonicalized input",
				"documents", n, "bytes_in", d.Offset(), "bytes_out", out.n)
			return nil
		}),
	}
}
