package torlib

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/uber/kraken-bencode/bencode"

	jackpal "github.com/jackpal/bencode-go"
	"github.com/stretchr/testify/require"
)

func TestMetaInfoSerializeRoundTrip(t *testing.T) {
	require := require.New(t)

	mi := MetaInfoFixture()
	mi.Announce = "http://tracker:8080/announce"
	mi.AnnounceList = AnnounceList{{"http://a/announce"}, {"http://b/announce", "http://c/announce"}}
	mi.Comment = "fixture"
	mi.CreatedBy = "kraken"
	mi.CreationDate = 1500000000

	data, err := mi.Serialize()
	require.NoError(err)

	parsed, err := ParseMetaInfo(data)
	require.NoError(err)
	require.Equal(mi.InfoHash, parsed.InfoHash)
	require.Equal(mi.Info, parsed.Info)
	require.Equal(mi.Announce, parsed.Announce)
	require.Equal(mi.AnnounceList, parsed.AnnounceList)
	require.Equal(mi.Comment, parsed.Comment)
	require.Equal(mi.CreatedBy, parsed.CreatedBy)
	require.Equal(mi.CreationDate, parsed.CreationDate)

	again, err := parsed.Serialize()
	require.NoError(err)
	require.Equal(data, again)
}

func TestParseMetaInfoKeepsUnknownInfoKeysInHash(t *testing.T) {
	require := require.New(t)

	doc := "d4:infod6:lengthi3e6:md5sum32:0123456789abcdef0123456789abcdef" +
		"4:name1:a12:piece lengthi4e6:pieces20:aaaaaaaaaaaaaaaaaaaaee"
	mi, err := ParseMetaInfo([]byte(doc))
	require.NoError(err)

	start := len("d4:info")
	rawInfo := doc[start : len(doc)-1]
	require.Equal(NewInfoHashFromBytes([]byte(rawInfo)), mi.InfoHash)

	reduced, err := mi.Info.ComputeInfoHash()
	require.NoError(err)
	require.NotEqual(mi.InfoHash, reduced)

	data, err := mi.Serialize()
	require.NoError(err)
	require.Equal(doc, string(data))
}

func TestMetaInfoSerializeAfterInfoEdit(t *testing.T) {
	require := require.New(t)

	mi, err := NewMetaInfoFromBlob("a", bytes.NewReader([]byte("0123456789")), 4, "")
	require.NoError(err)
	original := mi.InfoHash

	mi.Info.Name = "renamed"
	data, err := mi.Serialize()
	require.NoError(err)
	require.NotEqual(original, mi.InfoHash)

	parsed, err := ParseMetaInfo(data)
	require.NoError(err)
	require.Equal("renamed", parsed.Name())
	require.Equal(mi.InfoHash, parsed.InfoHash)

	expected, err := mi.Info.ComputeInfoHash()
	require.NoError(err)
	require.Equal(expected, parsed.InfoHash)
}

func TestParsedMetaInfoSerializeAfterInfoEdit(t *testing.T) {
	require := require.New(t)

	doc := "d4:infod6:lengthi3e6:md5sum32:0123456789abcdef0123456789abcdef" +
		"4:name1:a12:piece lengthi4e6:pieces20:aaaaaaaaaaaaaaaaaaaaee"
	mi, err := ParseMetaInfo([]byte(doc))
	require.NoError(err)

	mi.Info.Private = true
	data, err := mi.Serialize()
	require.NoError(err)

	parsed, err := ParseMetaInfo(data)
	require.NoError(err)
	require.True(parsed.Info.Private)
	require.Equal(mi.InfoHash, parsed.InfoHash)

	// Keys Info does not model do not survive an edit.
	require.NotContains(string(data), "md5sum")
}

func TestParseMetaInfoMultiFile(t *testing.T) {
	require := require.New(t)

	doc := "d4:infod5:filesld6:lengthi5e4:pathl1:a5:b.bineed6:lengthi3e4:pathl1:ceee" +
		"4:name3:dir12:piece lengthi8e6:pieces20:aaaaaaaaaaaaaaaaaaaa7:privatei1eee"
	mi, err := ParseMetaInfo([]byte(doc))
	require.NoError(err)
	require.Equal("dir", mi.Name())
	require.True(mi.Info.Private)
	require.Equal([]File{
		{Length: 5, Path: []string{"a", "b.bin"}},
		{Length: 3, Path: []string{"c"}},
	}, mi.Info.Files)
	require.EqualValues(8, mi.Info.TotalLength())

	require.Equal(NewInfoHashFromBytes([]byte(doc[len("d4:info"):len(doc)-1])), mi.InfoHash)

	rebuilt, err := bencode.Encode(mi.Info.Value())
	require.NoError(err)
	require.Equal(doc[len("d4:info"):len(doc)-1], string(rebuilt))
}

func TestParseMetaInfoErrors(t *testing.T) {
	tests := []struct {
		description string
		doc         string
	}{
		{"not bencode", "garbage"},
		{"not a dict", "le"},
		{"missing info", "d8:announce1:xe"},
		{"info not a dict", "d4:infoi1ee"},
		{"missing name", "d4:infod6:lengthi1e12:piece lengthi1e6:pieces0:ee"},
		{"name wrong type", "d4:infod6:lengthi1e4:namei1e12:piece lengthi1e6:pieces0:ee"},
		{"bad pieces", "d4:infod6:lengthi1e4:name1:a12:piece lengthi1e6:pieces3:abcee"},
		{"announce wrong type", "d8:announcei1e4:infod6:lengthi0e4:name1:a12:piece lengthi0e6:pieces0:ee"},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			_, err := ParseMetaInfo([]byte(test.doc))
			require.Error(t, err)
		})
	}
}

func TestInfoHashMatchesJackpal(t *testing.T) {
	require := require.New(t)

	info := MetaInfoFixture().Info

	var b bytes.Buffer
	require.NoError(jackpal.Marshal(&b, map[string]interface{}{
		"length":       info.Length,
		"name":         info.Name,
		"piece length": info.PieceLength,
		"pieces":       string(info.Pieces),
	}))

	h, err := info.ComputeInfoHash()
	require.NoError(err)
	require.Equal(NewInfoHashFromBytes(b.Bytes()), h)
}

func TestMetaInfoJSON(t *testing.T) {
	require := require.New(t)

	mi := MetaInfoFixture()
	b, err := json.Marshal(mi)
	require.NoError(err)

	var out MetaInfo
	require.NoError(json.Unmarshal(b, &out))
	require.Equal(mi.Info, out.Info)
}
