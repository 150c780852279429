package torlib

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/uber/kraken-bencode/bencode"
)

const pieceHashSize = sha1.Size

// File is one entry of a multi-file torrent.
type File struct {
	Length int64    `json:"length"`
	Path   []string `json:"path"`
}

// Info is a torrent info dictionary.
type Info struct {
	PieceLength int64  `json:"piece_length"`
	Pieces      Pieces `json:"pieces"`
	Name        string `json:"name"`
	Length      int64  `json:"length,omitempty"`
	Files       []File `json:"files,omitempty"`
	Private     bool   `json:"private,omitempty"`
}

// NewInfoFromFile creates new info given file and piecelength
func NewInfoFromFile(name, filepath string, pieceLength int64) (Info, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %s", err)
	}
	defer f.Close()

	return NewInfoFromBlob(name, f, pieceLength)
}

// NewInfoFromBlob creates a new single file Info from a blob.
func NewInfoFromBlob(name string, blob io.Reader, pieceLength int64) (Info, error) {
	length, pieces, err := generatePieces(blob, pieceLength)
	if err != nil {
		return Info{}, fmt.Errorf("generate pieces: %s", err)
	}
	return Info{
		PieceLength: pieceLength,
		Pieces:      pieces,
		Name:        name,
		Length:      length,
	}, nil
}

// InfoFromValue reads an info dict.
func InfoFromValue(v bencode.Value) (Info, error) {
	d, err := bencode.AsDict(v)
	if err != nil {
		return Info{}, err
	}
	var info Info
	if info.Name, err = requireString(d, "name"); err != nil {
		return Info{}, err
	}
	if info.PieceLength, err = requireInt(d, "piece length"); err != nil {
		return Info{}, err
	}
	pieces, err := requireString(d, "pieces")
	if err != nil {
		return Info{}, err
	}
	info.Pieces = Pieces(pieces)

	if private, ok, err := optionalInt(d, "private"); err != nil {
		return Info{}, err
	} else if ok {
		info.Private = private == 1
	}

	if _, ok := d.GetString("files"); ok {
		if info.Files, err = filesFromValue(d); err != nil {
			return Info{}, err
		}
	} else if info.Length, err = requireInt(d, "length"); err != nil {
		return Info{}, err
	}
	return info, nil
}

func filesFromValue(d bencode.Dict) ([]File, error) {
	v, _ := d.GetString("files")
	list, ok := v.(bencode.List)
	if !ok {
		return nil, fmt.Errorf("files: expected list, got %s", bencode.KindOf(v))
	}
	files := make([]File, 0, len(list))
	for i, item := range list {
		fd, err := bencode.AsDict(item)
		if err != nil {
			return nil, fmt.Errorf("files[%d]: %s", i, err)
		}
		length, err := requireInt(fd, "length")
		if err != nil {
			return nil, fmt.Errorf("files[%d]: %s", i, err)
		}
		pv, ok := fd.GetString("path")
		if !ok {
			return nil, fmt.Errorf("files[%d]: missing path", i)
		}
		parts, ok := pv.(bencode.List)
		if !ok {
			return nil, fmt.Errorf("files[%d]: path: expected list, got %s", i, bencode.KindOf(pv))
		}
		f := File{Length: length}
		for _, p := range parts {
			b, ok := p.(bencode.Bytes)
			if !ok {
				return nil, fmt.Errorf("files[%d]: path element is %s", i, bencode.KindOf(p))
			}
			f.Path = append(f.Path, string(b))
		}
		files = append(files, f)
	}
	return files, nil
}

// Value returns the info dict in bencode form.
func (info *Info) Value() bencode.Dict {
	d := bencode.NewDict().
		SetString("name", bencode.Bytes(info.Name)).
		SetString("piece length", bencode.NewInteger(info.PieceLength)).
		SetString("pieces", bencode.Bytes(info.Pieces))
	if info.Private {
		d = d.SetString("private", bencode.NewInteger(1))
	}
	if len(info.Files) == 0 {
		return d.SetString("length", bencode.NewInteger(info.Length))
	}
	files := make(bencode.List, 0, len(info.Files))
	for _, f := range info.Files {
		path := make(bencode.List, 0, len(f.Path))
		for _, p := range f.Path {
			path = append(path, bencode.Bytes(p))
		}
		files = append(files, bencode.NewDict().
			SetString("length", bencode.NewInteger(f.Length)).
			SetString("path", path))
	}
	return d.SetString("files", files)
}

// ComputeInfoHash returns the hash of Info
// it is an identifier of a torrent
func (info *Info) ComputeInfoHash() (InfoHash, error) {
	return ComputeInfoHash(info.Value())
}

// PieceHash returns the hash for given piece
func (info *Info) PieceHash(piece int) ([]byte, error) {
	if piece < 0 || piece >= info.NumPieces() {
		return nil, fmt.Errorf("Piece index %d out of range %d", piece, info.NumPieces())
	}
	start := piece * pieceHashSize
	hash := make([]byte, pieceHashSize)
	copy(hash, info.Pieces[start:start+pieceHashSize])
	return hash, nil
}

// TotalLength returns a total length of all torrent files
func (info *Info) TotalLength() int64 {
	if len(info.Files) == 0 {
		return info.Length
	}
	var total int64
	for _, f := range info.Files {
		total += f.Length
	}
	return total
}

// NumPieces return number of pieces in a torrent
func (info *Info) NumPieces() int {
	return len(info.Pieces) / pieceHashSize
}

// Validate returns error if the Info is invalid.
func (info *Info) Validate() error {
	if len(info.Pieces)%pieceHashSize != 0 {
		return errors.New("pieces has invalid length")
	}
	if info.PieceLength == 0 {
		if info.TotalLength() != 0 {
			return errors.New("zero piece length")
		}
	} else {
		if int((info.TotalLength()+info.PieceLength-1)/info.PieceLength) != info.NumPieces() {
			return fmt.Errorf("piece count and file lengths are at odds: num pieces %d", info.NumPieces())
		}
	}
	return nil
}

// generatePieces hashes blob content in pieceLength chunks.
func generatePieces(blob io.Reader, pieceLength int64) (length int64, pieces Pieces, err error) {
	if pieceLength <= 0 {
		return 0, nil, errors.New("piece length must be positive")
	}
	for {
		h := sha1.New()
		n, err := io.CopyN(h, blob, pieceLength)
		if err != nil && err != io.EOF {
			return 0, nil, fmt.Errorf("read blob: %s", err)
		}
		length += n
		if n == 0 {
			break
		}
		pieces = h.Sum(pieces)
		if n < pieceLength {
			break
		}
	}
	return length, pieces, nil
}
