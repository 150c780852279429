package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/uber/kraken-bencode/bencode"
	"github.com/uber/kraken-bencode/utils/log"

	"github.com/spf13/cobra"
)

func newDumpCmd(e *env) *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:   "dump [file]",
		Short: "print the first document of a bencoded input as a tree or JSON",
		Args:  cobra.MaximumNArgs(1),
	}
	c.Flags().StringVarP(&format, "format", "f", "tree", "output format: tree or json")
	c.RunE = e.runE(func(cmd *cobra.Command, args []string) error {
		if format != "tree" && format != "json" {
			return fmt.Errorf("unknown format %q", format)
		}
		in, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer in.Close()

		v, err := bencode.NewDecoder(in, e.config.Decoder.Options()...).Decode()
		if err == io.EOF {
			err = errors.New("empty input")
		}
		countDecode(e.stats, err)
		if err != nil {
			return err
		}
		log.Debugw("Decoded document", "kind", bencode.KindOf(v).String())

		var out []byte
		if format == "json" {
			if out, err = json.MarshalIndent(bencode.ToNative(v), "", "  "); err != nil {
				return fmt.Errorf("json: %s", err)
			}
			out = append(out, '\n')
		} else {
			var b bytes.Buffer
			writeTree(&b, v, 0)
			out = b.Bytes()
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	})
	return c
}

// writeTree prints v one node per line, children indented two spaces below
// their container.
func writeTree(b *bytes.Buffer, v bencode.Value, depth int) {
	switch v := v.(type) {
	case bencode.Integer:
		fmt.Fprintf(b, "integer %s\n", v)
	case bencode.Bytes:
		fmt.Fprintf(b, "bytes %q\n", []byte(v))
	case bencode.List:
		fmt.Fprintf(b, "list (%d)\n", len(v))
		for _, item := range v {
			b.WriteString(strings.Repeat("  ", depth+1))
			writeTree(b, item, depth+1)
		}
	case bencode.Dict:
		fmt.Fprintf(b, "dict (%d)\n", v.Len())
		v.Walk(func(k []byte, item bencode.Value) bool {
			b.WriteString(strings.Repeat("  ", depth+1))
			fmt.Fprintf(b, "%q: ", k)
			writeTree(b, item, depth+1)
			return false
		})
	}
}
