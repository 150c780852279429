package torlib

import (
	"fmt"

	"github.com/uber/kraken-bencode/bencode"
)

// AnnouncerResponse follows a bittorrent tracker protocol
// for tracker based peer discovery
type AnnouncerResponse struct {
	Interval int64      `bencode:"interval"`
	Peers    []PeerInfo `bencode:"peers"`
}

// PeerInfo defines metadata for a peer
type PeerInfo struct {
	InfoHash string `bencode:"info_hash"`
	PeerID   string `bencode:"peer_id"`
	IP       string `bencode:"ip"`
	Port     int64  `bencode:"port"`
	Priority int64  `bencode:"priority"`

	DC              string `bencode:"dc,omitempty"`
	BytesDownloaded int64  `bencode:"downloaded,omitempty"`

	Complete bool `bencode:"-"`
}

// Serialize bencodes the response.
func (r *AnnouncerResponse) Serialize() ([]byte, error) {
	v, err := bencode.FromNative(r)
	if err != nil {
		return nil, err
	}
	return bencode.Encode(v)
}

// ParseAnnouncerResponse decodes a tracker response. A response carrying a
// "failure reason" is returned as an error.
func ParseAnnouncerResponse(data []byte) (*AnnouncerResponse, error) {
	v, err := bencode.Decode(data)
	if err != nil {
		return nil, err
	}
	d, err := bencode.AsDict(v)
	if err != nil {
		return nil, err
	}
	if reason, ok, _ := optionalString(d, "failure reason"); ok {
		return nil, fmt.Errorf("tracker failure: %s", reason)
	}

	var resp AnnouncerResponse
	if resp.Interval, err = requireInt(d, "interval"); err != nil {
		return nil, err
	}
	pv, ok := d.GetString("peers")
	if !ok {
		return &resp, nil
	}
	peers, ok := pv.(bencode.List)
	if !ok {
		return nil, fmt.Errorf("peers: expected list, got %s", bencode.KindOf(pv))
	}
	for i, item := range peers {
		p, err := peerInfoFromValue(item)
		if err != nil {
			return nil, fmt.Errorf("peers[%d]: %s", i, err)
		}
		resp.Peers = append(resp.Peers, p)
	}
	return &resp, nil
}

func peerInfoFromValue(v bencode.Value) (PeerInfo, error) {
	d, err := bencode.AsDict(v)
	if err != nil {
		return PeerInfo{}, err
	}
	var p PeerInfo
	if p.IP, err = requireString(d, "ip"); err != nil {
		return PeerInfo{}, err
	}
	if p.Port, err = requireInt(d, "port"); err != nil {
		return PeerInfo{}, err
	}
	if p.InfoHash, _, err = optionalString(d, "info_hash"); err != nil {
		return PeerInfo{}, err
	}
	if p.PeerID, _, err = optionalString(d, "peer_id"); err != nil {
		return PeerInfo{}, err
	}
	if p.Priority, _, err = optionalInt(d, "priority"); err != nil {
		return PeerInfo{}, err
	}
	if p.DC, _, err = optionalString(d, "dc"); err != nil {
		return PeerInfo{}, err
	}
	if p.BytesDownloaded, _, err = optionalInt(d, "downloaded"); err != nil {
		return PeerInfo{}, err
	}
	return p, nil
}
