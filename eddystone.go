package beacon

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/currantlabs/beacon/adv"
	"github.com/currantlabs/beacon/uuid"
)

// Eddystone interprets Eddystone advertisements: a list of 16-bit
// service UUIDs containing 0xFEAA and a service data field for 0xFEAA.
type Eddystone struct{}

// CouldInterpret ...
func (Eddystone) CouldInterpret(b []byte) bool {
	p := adv.Packet(b)
	if !uuid.Contains(p.UUIDs(), uuid.Eddystone) {
		return false
	}
	d, ok := p.ServiceDataFor(uuid.Eddystone)
	return ok && len(d) > 0
}

// Interpret ...
func (Eddystone) Interpret(b []byte) Packet {
	p := adv.Packet(b)
	d, _ := p.ServiceDataFor(uuid.Eddystone)
	e := &EddystonePacket{data: b, FrameType: d[0]}
	f := d[1:]
	switch e.FrameType {
	case adv.EddystoneUID:
		if len(f) >= 17 {
			e.TxPower = int8(f[0])
			copy(e.Namespace[:], f[1:11])
			copy(e.Instance[:], f[11:17])
		}
	case adv.EddystoneURL:
		if len(f) < 2 {
			e.URLErr = errors.New("short URL frame")
			break
		}
		e.TxPower = int8(f[0])
		e.URL, e.URLErr = adv.DecodeURL(f[1:])
	case adv.EddystoneTLM:
		if len(f) >= 13 {
			e.TLM = &Telemetry{
				Version:     f[0],
				BatteryMV:   binary.BigEndian.Uint16(f[1:]),
				Temperature: float64(int16(binary.BigEndian.Uint16(f[3:]))) / 256,
				AdvCount:    binary.BigEndian.Uint32(f[5:]),
				Uptime:      time.Duration(binary.BigEndian.Uint32(f[9:])) * 100 * time.Millisecond,
			}
		}
	case adv.EddystoneEID:
		if len(f) >= 9 {
			e.TxPower = int8(f[0])
			copy(e.EID[:], f[1:9])
		}
	}
	return e
}

// Telemetry is the content of an unencrypted Eddystone-TLM frame.
type Telemetry struct {
	Version     uint8
	BatteryMV   uint16
	Temperature float64 // Celsius, 8.8 fixed point on the air.
	AdvCount    uint32
	Uptime      time.Duration
}

// EddystonePacket is a parsed Eddystone advertisement.
// Fields not carried by FrameType are left zero.
type EddystonePacket struct {
	data []byte

	FrameType uint8
	TxPower   int8 // Calibrated TX power at 0 m.
	Namespace [10]byte
	Instance  [6]byte
	URL       string
	URLErr    error // Set when the URL frame could not be decoded.
	EID       [8]byte
	TLM       *Telemetry
}

// Format ...
func (e *EddystonePacket) Format() Format { return FormatEddystone }

// Bytes ...
func (e *EddystonePacket) Bytes() []byte { return e.data }

// FrameName returns a short name for the frame type.
func (e *EddystonePacket) FrameName() string {
	switch e.FrameType {
	case adv.EddystoneUID:
		return "UID"
	case adv.EddystoneURL:
		return "URL"
	case adv.EddystoneTLM:
		return "TLM"
	case adv.EddystoneEID:
		return "EID"
	}
	return fmt.Sprintf("0x%02X", e.FrameType)
}

func (e *EddystonePacket) String() string {
	switch e.FrameType {
	case adv.EddystoneUID:
		return fmt.Sprintf("Eddystone-UID ns %X inst %X tx %d", e.Namespace, e.Instance, e.TxPower)
	case adv.EddystoneURL:
		if e.URLErr != nil {
			return fmt.Sprintf("Eddystone-URL (%s) tx %d", e.URLErr, e.TxPower)
		}
		return fmt.Sprintf("Eddystone-URL %s tx %d", e.URL, e.TxPower)
	case adv.EddystoneTLM:
		if e.TLM == nil {
			return "Eddystone-TLM (short)"
		}
		return fmt.Sprintf("Eddystone-TLM bat %dmV temp %.2fC cnt %d up %s",
			e.TLM.BatteryMV, e.TLM.Temperature, e.TLM.AdvCount, e.TLM.Uptime)
	case adv.EddystoneEID:
		return fmt.Sprintf("Eddystone-EID %X tx %d", e.EID, e.TxPower)
	}
	return "Eddystone-" + e.FrameName()
}
