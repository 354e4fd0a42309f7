package hci

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrShortEvent is returned when an event ends before its declared content.
	ErrShortEvent = errors.New("hci: short event")

	// ErrNotAdvertisingReport is returned for HCI packets other than LE Advertising Reports.
	ErrNotAdvertisingReport = errors.New("hci: not an LE advertising report")
)

// Report is one entry of an LE Advertising Report event.
type Report struct {
	EventType   uint8
	AddressType uint8
	Address     [6]byte // Little endian, as on the wire.
	Data        []byte
	RSSI        int8
}

// Addr returns the device address in the usual colon separated form.
func (r Report) Addr() string {
	a := r.Address
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[5], a[4], a[3], a[2], a[1], a[0])
}

// Connectable reports whether the advertiser accepts connections.
func (r Report) Connectable() bool {
	return r.EventType == AdvInd || r.EventType == AdvDirectInd
}

// DecodeLEAdvertisingReport decodes the parameters of an LE Meta event carrying
// the LE Advertising Report subevent, starting at the subevent code.
//
// Reports are laid out one after the other (event type, address type, address,
// length, data, RSSI), which is what controllers send in practice.
func DecodeLEAdvertisingReport(b []byte) ([]Report, error) {
	if len(b) < 2 {
		return nil, ErrShortEvent
	}
	if b[0] != leAdvertisingReportSubCode {
		return nil, ErrNotAdvertisingReport
	}
	n := int(b[1])
	b = b[2:]
	rs := make([]Report, 0, n)
	for i := 0; i < n; i++ {
		if len(b) < 9 {
			return nil, errors.Wrapf(ErrShortEvent, "report %d header", i)
		}
		r := Report{EventType: b[0], AddressType: b[1]}
		copy(r.Address[:], b[2:8])
		dlen := int(b[8])
		if len(b) < 9+dlen+1 {
			return nil, errors.Wrapf(ErrShortEvent, "report %d data", i)
		}
		r.Data = make([]byte, dlen)
		copy(r.Data, b[9:9+dlen])
		r.RSSI = int8(b[9+dlen])
		rs = append(rs, r)
		b = b[1+1+6+1+dlen+1:]
	}
	return rs, nil
}

// DecodeH4 decodes an HCI packet in UART (H4) framing, with the leading packet
// type indicator. Anything other than an LE Advertising Report yields
// ErrNotAdvertisingReport.
func DecodeH4(b []byte) ([]Report, error) {
	if len(b) < 1 {
		return nil, ErrShortEvent
	}
	if b[0] != pktTypeEvent {
		return nil, ErrNotAdvertisingReport
	}
	b = b[1:]
	if len(b) < 2 {
		return nil, ErrShortEvent
	}
	code, plen := b[0], int(b[1])
	if code != leMetaEventCode {
		return nil, ErrNotAdvertisingReport
	}
	if len(b) < 2+plen {
		return nil, errors.Wrap(ErrShortEvent, "event parameters")
	}
	return DecodeLEAdvertisingReport(b[2 : 2+plen])
}

// EncodeH4 returns the H4 framed LE Advertising Report event carrying rs.
func EncodeH4(rs ...Report) []byte {
	p := []byte{leAdvertisingReportSubCode, uint8(len(rs))}
	for _, r := range rs {
		p = append(p, r.EventType, r.AddressType)
		p = append(p, r.Address[:]...)
		p = append(p, uint8(len(r.Data)))
		p = append(p, r.Data...)
		p = append(p, uint8(r.RSSI))
	}
	return append([]byte{pktTypeEvent, leMetaEventCode, uint8(len(p))}, p...)
}
