package torlib

import (
	"fmt"
	"io"
	"reflect"

	"github.com/uber/kraken-bencode/bencode"
)

// AnnounceList is a list of tracker announcers
// index is the tier of the list, smaller index means this list of announcers is more preferred.
type AnnounceList [][]string

// MetaInfo contains torrent metadata
type MetaInfo struct {
	Info         Info         `json:"info"`
	Announce     string       `json:"announce,omitempty"`
	AnnounceList AnnounceList `json:"announce_list,omitempty"`
	CreationDate int64        `json:"creation_date,omitempty"`
	Comment      string       `json:"comment,omitempty"`
	CreatedBy    string       `json:"created_by,omitempty"`

	// InfoHash is computed over the info dict exactly as it was decoded, so
	// keys Info does not model still count. Serialize refreshes it.
	InfoHash InfoHash `json:"info_hash"`

	// rawInfo is the decoded info dict of a parsed document. It is used only
	// while Info still matches it; once Info is edited the dict is rebuilt
	// from Info and unmodeled keys are lost.
	rawInfo bencode.Dict
}

// NewMetaInfoFromBlob creates MetaInfo from a blob reader.
func NewMetaInfoFromBlob(
	name string,
	blob io.Reader,
	pieceLength int64,
	announce string) (*MetaInfo, error) {

	info, err := NewInfoFromBlob(name, blob, pieceLength)
	if err != nil {
		return nil, fmt.Errorf("create info: %s", err)
	}
	mi := &MetaInfo{
		Info:     info,
		Announce: announce,
	}
	if err := mi.setInfoHash(); err != nil {
		return nil, err
	}
	return mi, nil
}

// ParseMetaInfo decodes a .torrent document.
func ParseMetaInfo(data []byte) (*MetaInfo, error) {
	v, err := bencode.Decode(data)
	if err != nil {
		return nil, err
	}
	d, err := bencode.AsDict(v)
	if err != nil {
		return nil, err
	}

	iv, ok := d.GetString("info")
	if !ok {
		return nil, fmt.Errorf("missing %q", "info")
	}
	mi := &MetaInfo{}
	if mi.rawInfo, err = bencode.AsDict(iv); err != nil {
		return nil, fmt.Errorf("info: %s", err)
	}
	if mi.Info, err = InfoFromValue(mi.rawInfo); err != nil {
		return nil, fmt.Errorf("info: %s", err)
	}
	if err := mi.Info.Validate(); err != nil {
		return nil, fmt.Errorf("info: %s", err)
	}

	if mi.Announce, _, err = optionalString(d, "announce"); err != nil {
		return nil, err
	}
	if mi.Comment, _, err = optionalString(d, "comment"); err != nil {
		return nil, err
	}
	if mi.CreatedBy, _, err = optionalString(d, "created by"); err != nil {
		return nil, err
	}
	if mi.CreationDate, _, err = optionalInt(d, "creation date"); err != nil {
		return nil, err
	}
	if mi.AnnounceList, err = announceListFromValue(d); err != nil {
		return nil, err
	}

	if err := mi.setInfoHash(); err != nil {
		return nil, err
	}
	return mi, nil
}

func announceListFromValue(d bencode.Dict) (AnnounceList, error) {
	v, ok := d.GetString("announce-list")
	if !ok {
		return nil, nil
	}
	tiers, ok := v.(bencode.List)
	if !ok {
		return nil, fmt.Errorf("announce-list: expected list, got %s", bencode.KindOf(v))
	}
	var al AnnounceList
	for _, tv := range tiers {
		tier, ok := tv.(bencode.List)
		if !ok {
			return nil, fmt.Errorf("announce-list tier: expected list, got %s", bencode.KindOf(tv))
		}
		var urls []string
		for _, u := range tier {
			b, ok := u.(bencode.Bytes)
			if !ok {
				return nil, fmt.Errorf("announce-list url: expected bytes, got %s", bencode.KindOf(u))
			}
			urls = append(urls, string(b))
		}
		al = append(al, urls)
	}
	return al, nil
}

// Name returns torrent name
func (mi *MetaInfo) Name() string {
	return mi.Info.Name
}

// infoValue returns the decoded info dict if Info was not edited since
// parsing, and the dict built from Info otherwise.
func (mi *MetaInfo) infoValue() bencode.Dict {
	if mi.rawInfo.Len() > 0 {
		if parsed, err := InfoFromValue(mi.rawInfo); err == nil && reflect.DeepEqual(parsed, mi.Info) {
			return mi.rawInfo
		}
	}
	return mi.Info.Value()
}

// Value returns the whole metainfo document in bencode form.
func (mi *MetaInfo) Value() bencode.Dict {
	d := bencode.NewDict().SetString("info", mi.infoValue())
	if mi.Announce != "" {
		d = d.SetString("announce", bencode.Bytes(mi.Announce))
	}
	if len(mi.AnnounceList) > 0 {
		tiers := make(bencode.List, 0, len(mi.AnnounceList))
		for _, tier := range mi.AnnounceList {
			urls := make(bencode.List, 0, len(tier))
			for _, u := range tier {
				urls = append(urls, bencode.Bytes(u))
			}
			tiers = append(tiers, urls)
		}
		d = d.SetString("announce-list", tiers)
	}
	if mi.CreationDate != 0 {
		d = d.SetString("creation date", bencode.NewInteger(mi.CreationDate))
	}
	if mi.Comment != "" {
		d = d.SetString("comment", bencode.Bytes(mi.Comment))
	}
	if mi.CreatedBy != "" {
		d = d.SetString("created by", bencode.Bytes(mi.CreatedBy))
	}
	return d
}

// Serialize returns metainfo as a bencoded string and updates InfoHash to
// match the serialized info dict.
func (mi *MetaInfo) Serialize() ([]byte, error) {
	if err := mi.setInfoHash(); err != nil {
		return nil, err
	}
	return bencode.Encode(mi.Value())
}

// setInfoHash computes hash of the info dict and sets mi.InfoHash
func (mi *MetaInfo) setInfoHash() error {
	hash, err := ComputeInfoHash(mi.infoValue())
	if err != nil {
		return err
	}
	mi.InfoHash = hash
	return nil
}
