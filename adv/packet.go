package adv

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/currantlabs/beacon/uuid"
)

// ErrNotFit is returned when a field would make the packet exceed MaxEIRPacketLength.
var ErrNotFit = errors.New("field doesn't fit in the packet")

// ServiceData ...
type ServiceData struct {
	UUID uuid.UUID
	Data []byte
}

// Field is a single AD structure.
type Field struct {
	Type byte
	Data []byte
}

// Packet is an utility to craft or parse advertisment packets.
// Refer to Supplement to Bluetooth Core Specification | CSSv6, Part A
type Packet []byte

// Fields returns the well-formed AD structures of the packet in order.
// Parsing stops at a zero length (the non-significant part) or at the
// first structure that runs past the end of the packet.
func (p Packet) Fields() []Field {
	var f []Field
	b := p
	for len(b) >= 2 {
		l := int(b[0])
		if l == 0 || len(b) < 1+l {
			break
		}
		f = append(f, Field{Type: b[1], Data: b[2 : 1+l]})
		b = b[1+l:]
	}
	return f
}

// Field returns the field data (excluding the initial length and typ byte).
// It returns nil, if the specified field is not found.
func (p Packet) Field(typ byte) []byte {
	for _, f := range p.Fields() {
		if f.Type == typ {
			return f.Data
		}
	}
	return nil
}

// Flags ...
func (p Packet) Flags() (byte, bool) {
	b := p.Field(Flags)
	if len(b) < 1 {
		return 0, false
	}
	return b[0], true
}

// LocalName returns the complete local name, falling back to the shortened one.
func (p Packet) LocalName() string {
	if b := p.Field(CompleteName); b != nil {
		return string(b)
	}
	return string(p.Field(ShortName))
}

// TxPower ...
func (p Packet) TxPower() (int, bool) {
	b := p.Field(TxPower)
	if len(b) < 1 {
		return 0, false
	}
	return int(int8(b[0])), true
}

// UUIDs returns the advertised service UUIDs, complete and incomplete lists alike.
func (p Packet) UUIDs() []uuid.UUID {
	var u []uuid.UUID
	for _, f := range p.Fields() {
		switch f.Type {
		case SomeUUID16, AllUUID16:
			u = uuidList(u, f.Data, 2)
		case SomeUUID32, AllUUID32:
			u = uuidList(u, f.Data, 4)
		case SomeUUID128, AllUUID128:
			u = uuidList(u, f.Data, 16)
		}
	}
	return u
}

// ServiceData returns every service data field of the packet.
func (p Packet) ServiceData() []ServiceData {
	var s []ServiceData
	for _, f := range p.Fields() {
		switch f.Type {
		case ServiceData16:
			s = serviceDataList(s, f.Data, 2)
		case ServiceData32:
			s = serviceDataList(s, f.Data, 4)
		case ServiceData128:
			s = serviceDataList(s, f.Data, 16)
		}
	}
	return s
}

// ServiceDataFor returns the data of the first service data field for u.
func (p Packet) ServiceDataFor(u uuid.UUID) ([]byte, bool) {
	for _, sd := range p.ServiceData() {
		if sd.UUID.Equal(u) {
			return sd.Data, true
		}
	}
	return nil, false
}

// ManufacturerData ...
func (p Packet) ManufacturerData() []byte {
	return p.Field(ManufacturerData)
}

// CompanyID returns the company identifier leading the manufacturer data.
func (p Packet) CompanyID() (uint16, bool) {
	md := p.ManufacturerData()
	if len(md) < 2 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(md), true
}

// AppendField appends p BLE advertising packet field.
func (p Packet) AppendField(typ byte, b []byte) Packet {
	p = append(p, byte(len(b)+1))
	p = append(p, typ)
	return append(p, b...)
}

// AppendFlags appends p flag field to the packet.
func (p Packet) AppendFlags(f byte) Packet {
	return p.AppendField(Flags, []byte{f})
}

// AppendCompleteName appends a complete name field to the packet.
func (p Packet) AppendCompleteName(n string) Packet {
	return p.AppendField(CompleteName, []byte(n))
}

// AppendManufacturerData appends a manufacturer data field to the packet.
func (p Packet) AppendManufacturerData(id uint16, b []byte) Packet {
	d := append([]byte{uint8(id), uint8(id >> 8)}, b...)
	return p.AppendField(ManufacturerData, d)
}

// AppendAllUUID appends a complete list of service UUIDs of u's width.
func (p Packet) AppendAllUUID(u uuid.UUID) Packet {
	switch u.Len() {
	case 2:
		return p.AppendField(AllUUID16, u)
	case 4:
		return p.AppendField(AllUUID32, u)
	}
	return p.AppendField(AllUUID128, u)
}

// AppendServiceData appends a service data field keyed by u.
func (p Packet) AppendServiceData(u uuid.UUID, b []byte) Packet {
	typ := byte(ServiceData128)
	switch u.Len() {
	case 2:
		typ = ServiceData16
	case 4:
		typ = ServiceData32
	}
	return p.AppendField(typ, append(append([]byte{}, u...), b...))
}

// Len returns the length of the packet.
func (p Packet) Len() int {
	return len(p)
}

// Utility function for creating a list of uuids.
func uuidList(u []uuid.UUID, d []byte, w int) []uuid.UUID {
	for len(d) >= w {
		u = append(u, uuid.UUID(d[:w]))
		d = d[w:]
	}
	return u
}

func serviceDataList(sd []ServiceData, d []byte, w int) []ServiceData {
	if len(d) < w {
		return sd
	}
	s := ServiceData{UUID: uuid.UUID(d[:w]), Data: make([]byte, len(d)-w)}
	copy(s.Data, d[w:])
	return append(sd, s)
}

func fit(p Packet) (Packet, error) {
	if p.Len() > MaxEIRPacketLength {
		return nil, ErrNotFit
	}
	return p, nil
}

// IBeaconFromData returns an iBeacon advertisement with specified manufacturer data.
func IBeaconFromData(md []byte) (Packet, error) {
	if len(md) != IBeaconDataLen {
		return nil, errors.Errorf("iBeacon data must be %d bytes, got %d", IBeaconDataLen, len(md))
	}
	p := Packet(make([]byte, 0, MaxEIRPacketLength))
	p = p.AppendFlags(FlagGeneralDiscoverable | FlagLEOnly)
	p = p.AppendManufacturerData(CompanyApple, md)
	return fit(p)
}

// IBeacon returns an iBeacon advertisement with specified parameters.
func IBeacon(u uuid.UUID, major, minor uint16, pwr int8) (Packet, error) {
	if u.Len() != 16 {
		return nil, errors.Errorf("iBeacon proximity UUID must be 16 bytes, got %d", u.Len())
	}
	md := make([]byte, IBeaconDataLen)
	md[0] = IBeaconType                        // Data type: iBeacon
	md[1] = IBeaconLength                      // Data length: 21 bytes
	copy(md[2:], uuid.Reverse(u))              // Big endian
	binary.BigEndian.PutUint16(md[18:], major) // Big endian
	binary.BigEndian.PutUint16(md[20:], minor) // Big endian
	md[22] = uint8(pwr)                        // Measured Tx Power
	return IBeaconFromData(md)
}

// EddystoneFrame returns an Eddystone advertisement carrying frame as its service data.
func EddystoneFrame(frame []byte) (Packet, error) {
	if len(frame) == 0 {
		return nil, errors.New("empty Eddystone frame")
	}
	p := Packet(make([]byte, 0, MaxEIRPacketLength))
	p = p.AppendFlags(FlagGeneralDiscoverable | FlagLEOnly)
	p = p.AppendAllUUID(uuid.Eddystone)
	p = p.AppendServiceData(uuid.Eddystone, frame)
	return fit(p)
}

// EddystoneUIDFrame returns an Eddystone-UID advertisement.
func EddystoneUIDFrame(namespace [10]byte, instance [6]byte, pwr int8) (Packet, error) {
	f := []byte{EddystoneUID, uint8(pwr)}
	f = append(f, namespace[:]...)
	f = append(f, instance[:]...)
	f = append(f, 0x00, 0x00) // RFU
	return EddystoneFrame(f)
}

// EddystoneURLFrame returns an Eddystone-URL advertisement for url.
func EddystoneURLFrame(url string, pwr int8) (Packet, error) {
	b, err := EncodeURL(url)
	if err != nil {
		return nil, err
	}
	return EddystoneFrame(append([]byte{EddystoneURL, uint8(pwr)}, b...))
}

// EddystoneTLMFrame returns an unencrypted Eddystone-TLM advertisement.
// Temperature is in degrees Celsius, uptime in units of 0.1 second.
func EddystoneTLMFrame(batteryMV uint16, temp float64, advCnt, uptime uint32) (Packet, error) {
	f := make([]byte, 14)
	f[0] = EddystoneTLM
	f[1] = 0x00 // Version
	binary.BigEndian.PutUint16(f[2:], batteryMV)
	binary.BigEndian.PutUint16(f[4:], uint16(int16(temp*256)))
	binary.BigEndian.PutUint32(f[6:], advCnt)
	binary.BigEndian.PutUint32(f[10:], uptime)
	return EddystoneFrame(f)
}
