package beacon

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/currantlabs/beacon/adv"
)

// IBeacon interprets Apple iBeacon advertisements.
type IBeacon struct{}

// CouldInterpret reports whether b carries iBeacon manufacturer data:
// company 0x004C, type 0x02, length 0x15.
func (IBeacon) CouldInterpret(b []byte) bool {
	md := adv.Packet(b).ManufacturerData()
	return len(md) == adv.IBeaconTotalSize &&
		binary.LittleEndian.Uint16(md) == adv.CompanyApple &&
		md[2] == adv.IBeaconType &&
		md[3] == adv.IBeaconLength
}

// Interpret ...
func (IBeacon) Interpret(b []byte) Packet {
	md := adv.Packet(b).ManufacturerData()
	u, _ := uuid.FromBytes(md[4:20])
	return &IBeaconPacket{
		data:          b,
		UUID:          u,
		Major:         binary.BigEndian.Uint16(md[20:]),
		Minor:         binary.BigEndian.Uint16(md[22:]),
		MeasuredPower: int8(md[24]),
	}
}

// IBeaconPacket is a parsed iBeacon advertisement.
type IBeaconPacket struct {
	data []byte

	UUID          uuid.UUID
	Major         uint16
	Minor         uint16
	MeasuredPower int8 // RSSI at 1 m.
}

// Format ...
func (p *IBeaconPacket) Format() Format { return FormatIBeacon }

// Bytes ...
func (p *IBeaconPacket) Bytes() []byte { return p.data }

func (p *IBeaconPacket) String() string {
	return fmt.Sprintf("iBeacon %s major %d minor %d power %d", p.UUID, p.Major, p.Minor, p.MeasuredPower)
}
