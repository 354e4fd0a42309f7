package beacon

import (
	"fmt"

	"github.com/currantlabs/beacon/adv"
)

// Manufacturer interprets any advertisement whose manufacturer specific data
// starts with CompanyID. It is meant to be registered ahead of the built-ins
// to claim a vendor's payloads.
type Manufacturer struct {
	Name      string
	CompanyID uint16
}

// CouldInterpret ...
func (m Manufacturer) CouldInterpret(b []byte) bool {
	id, ok := adv.Packet(b).CompanyID()
	return ok && id == m.CompanyID
}

// Interpret ...
func (m Manufacturer) Interpret(b []byte) Packet {
	md := adv.Packet(b).ManufacturerData()
	return &ManufacturerPacket{
		data:      b,
		Name:      m.Name,
		CompanyID: m.CompanyID,
		Data:      md[2:],
	}
}

// ManufacturerPacket carries the vendor bytes following the company identifier.
type ManufacturerPacket struct {
	data []byte

	Name      string
	CompanyID uint16
	Data      []byte
}

// Format ...
func (p *ManufacturerPacket) Format() Format { return FormatManufacturer }

// Bytes ...
func (p *ManufacturerPacket) Bytes() []byte { return p.data }

func (p *ManufacturerPacket) String() string {
	return fmt.Sprintf("%s (0x%04X) [% X]", p.Name, p.CompanyID, p.Data)
}
