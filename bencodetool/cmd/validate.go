package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/uber/kraken-bencode/bencode"
	"github.com/uber/kraken-bencode/utils/log"

	"github.com/spf13/cobra"
)

func newValidateCmd(e *env) *cobra.Command {
	var strict bool
	c := &cobra.Command{
		Use:   "validate [file]",
		Short: "check that every concatenated document in the input is well formed",
		Args:  cobra.MaximumNArgs(1),
	}
	c.Flags().BoolVarP(&strict, "strict", "s", false, "reject repeated dict keys")
	c.RunE = e.runE(func(cmd *cobra.Command, args []string) error {
		in, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer in.Close()

		opts := e.config.Decoder.Options()
		if strict {
			opts = append(opts, bencode.WithStrictKeyOrder())
		}
		d := bencode.NewDecoder(in, opts...)
		var n int
		for {
			_, err := d.Decode()
			if err == io.EOF {
				break
			}
			countDecode(e.stats, err)
			if err != nil {
				var serr *bencode.SyntaxError
				if errors.As(err, &serr) {
					log.Warnw("Invalid document",
						"document", n, "offset", serr.Offset, "kind", errorKind(err))
					return fmt.Errorf("document %d: offset %d: %s", n, serr.Offset, serr.What)
				}
				return fmt.Errorf("document %d: %s", n, err)
			}
			n++
		}
		if n == 0 {
			return errors.New("empty input")
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d document(s), %d bytes\n", n, d.Offset())
		return err
	})
	return c
}
