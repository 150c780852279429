package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/uber/kraken-bencode/bencode"
	"github.com/uber/kraken-bencode/torlib"
	"github.com/uber/kraken-bencode/utils/log"

	"github.com/spf13/cobra"
)

func newInfoHashCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "infohash [file]",
		Short: "print the info hash of a .torrent file",
		Args:  cobra.MaximumNArgs(1),
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %s", err)
			}
			mi, err := torlib.ParseMetaInfo(data)
			var serr *bencode.SyntaxError
			if errors.As(err, &serr) {
				countDecode(e.stats, err)
				return err
			}
			countDecode(e.stats, nil)
			if err != nil {
				return fmt.Errorf("parse metainfo: %s", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), mi.InfoHash.HexString())
			return err
		}),
	}
}

func newMkTorrentCmd(e *env) *cobra.Command {
	var (
		name        string
		announce    string
		output      string
		pieceLength int64
	)
	c := &cobra.Command{
		Use:   "mktorrent <file>",
		Short: "build a single file .torrent for a blob",
		Args:  cobra.ExactArgs(1),
	}
	c.Flags().StringVarP(&name, "name", "n", "", "torrent name (defaults to the file base name)")
	c.Flags().StringVarP(&announce, "announce", "a", "", "tracker announce url")
	c.Flags().StringVarP(&output, "output", "o", "", "output path (defaults to stdout)")
	c.Flags().Int64VarP(&pieceLength, "piece-length", "p", 0, "piece length in bytes (defaults to config)")
	c.RunE = e.runE(func(cmd *cobra.Command, args []string) error {
		if name == "" {
			name = filepath.Base(args[0])
		}
		if pieceLength == 0 {
			pieceLength = int64(e.config.Torrent.PieceLength.Bytes())
		}
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open blob: %s", err)
		}
		defer f.Close()

		mi, err := torlib.NewMetaInfoFromBlob(name, f, pieceLength, announce)
		if err != nil {
			return fmt.Errorf("create metainfo: %s", err)
		}
		mi.CreationDate = e.clk.Now().Unix()
		mi.CreatedBy = "bencodetool"
		data, err := mi.Serialize()
		if err != nil {
			return fmt.Errorf("serialize metainfo: %s", err)
		}
		e.stats.Counter("bytes_encoded").Inc(int64(len(data)))
		log.Infow("Created torrent",
			"name", name, "info_hash", mi.InfoHash.HexString(), "pieces", mi.Info.NumPieces())

		if output == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write torrent: %s", err)
		}
		return nil
	})
	return c
}
