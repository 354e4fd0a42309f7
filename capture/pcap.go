package capture

import (
	"encoding/binary"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"

	"github.com/currantlabs/beacon/hci"
)

// Link types carrying HCI traffic.
const (
	LinkTypeHCIH4     = layers.LinkType(187) // LINKTYPE_BLUETOOTH_HCI_H4
	LinkTypeHCIH4PHDR = layers.LinkType(201) // LINKTYPE_BLUETOOTH_HCI_H4_WITH_PHDR
)

// ErrUnsupportedLinkType is returned for captures that don't carry HCI traffic.
var ErrUnsupportedLinkType = errors.New("unsupported link type")

// Direction of a packet in LINKTYPE_BLUETOOTH_HCI_H4_WITH_PHDR captures.
const dirFromController = 1

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// PcapSource extracts advertisements from the LE Advertising Report events of
// an HCI capture. Other HCI traffic is skipped.
type PcapSource struct {
	r       packetReader
	pending []Record
}

// NewPcapSource reads a pcap capture from r.
func NewPcapSource(r io.Reader) (*PcapSource, error) {
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, err
	}
	return newPcapSource(pr)
}

// NewPcapngSource reads a pcapng capture from r.
func NewPcapngSource(r io.Reader) (*PcapSource, error) {
	pr, err := pcapgo.NewNgReader(r, pcapgo.DefaultNgReaderOptions)
	if err != nil {
		return nil, err
	}
	return newPcapSource(pr)
}

func newPcapSource(pr packetReader) (*PcapSource, error) {
	switch lt := pr.LinkType(); lt {
	case LinkTypeHCIH4, LinkTypeHCIH4PHDR:
	default:
		return nil, errors.Wrapf(ErrUnsupportedLinkType, "%d", lt)
	}
	return &PcapSource{r: pr}, nil
}

// Next ...
func (s *PcapSource) Next() (Record, error) {
	for len(s.pending) == 0 {
		data, ci, err := s.r.ReadPacketData()
		if err != nil {
			return Record{}, err
		}
		if s.r.LinkType() == LinkTypeHCIH4PHDR {
			if len(data) < 4 || binary.BigEndian.Uint32(data) != dirFromController {
				continue
			}
			data = data[4:]
		}
		rs, err := hci.DecodeH4(data)
		switch errors.Cause(err) {
		case nil:
		case hci.ErrNotAdvertisingReport:
			continue
		default:
			logger.Warn("skipping malformed event", "time", ci.Timestamp, "err", err)
			continue
		}
		for _, r := range rs {
			if r.RSSI == hci.RSSINotAvailable {
				logger.Debug("no RSSI", "addr", r.Addr())
				continue
			}
			s.pending = append(s.pending, Record{
				Time: ci.Timestamp,
				Addr: r.Addr(),
				RSSI: int(r.RSSI),
				Data: r.Data,

				Connectable: r.Connectable(),
			})
		}
	}
	r := s.pending[0]
	s.pending = s.pending[1:]
	return r, nil
}
