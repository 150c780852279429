package torlib

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
)

// TestTorrentFile joins a MetaInfo with the file contents used to generate
// said MetaInfo.
type TestTorrentFile struct {
	MetaInfo *MetaInfo
	Content  []byte
}

// CustomTestTorrentFileFixture returns a randomly generated TestTorrentFile
// of the given size and piece length. The torrent is named after the sha256
// of its content.
func CustomTestTorrentFileFixture(size uint64, pieceLength uint64) *TestTorrentFile {
	content := make([]byte, size)
	rand.Read(content)

	sum := sha256.Sum256(content)
	mi, err := NewMetaInfoFromBlob(
		hex.EncodeToString(sum[:]), bytes.NewReader(content), int64(pieceLength), "")
	if err != nil {
		panic(err)
	}
	return &TestTorrentFile{mi, content}
}

// TestTorrentFileFixture returns a randomly generated TestTorrentFile.
func TestTorrentFileFixture() *TestTorrentFile {
	return CustomTestTorrentFileFixture(128, 32)
}

// MetaInfoFixture returns a randomly generated MetaInfo.
func MetaInfoFixture() *MetaInfo {
	return TestTorrentFileFixture().MetaInfo
}

// InfoHashFixture returns a randomly generated InfoHash.
func InfoHashFixture() InfoHash {
	return MetaInfoFixture().InfoHash
}

// PeerInfoFixture returns a randomly generated PeerInfo.
func PeerInfoFixture() PeerInfo {
	id := make([]byte, 20)
	rand.Read(id)
	return PeerInfo{
		InfoHash: InfoHashFixture().String(),
		PeerID:   hex.EncodeToString(id),
		IP:       "10.0.0.1",
		Port:     int64(1024 + rand.Intn(60000)),
		DC:       "sjc1",
	}
}
