package adv

// MaxEIRPacketLength is the maximum allowed AdvertisingPacket
// and ScanResponsePacket length.
const MaxEIRPacketLength = 31

// Advertising data field types
const (
	Flags            = 0x01 // Flags
	SomeUUID16       = 0x02 // Incomplete List of 16-bit Service Class UUIDs
	AllUUID16        = 0x03 // Complete List of 16-bit Service Class UUIDs
	SomeUUID32       = 0x04 // Incomplete List of 32-bit Service Class UUIDs
	AllUUID32        = 0x05 // Complete List of 32-bit Service Class UUIDs
	SomeUUID128      = 0x06 // Incomplete List of 128-bit Service Class UUIDs
	AllUUID128       = 0x07 // Complete List of 128-bit Service Class UUIDs
	ShortName        = 0x08 // Shortened Local Name
	CompleteName     = 0x09 // Complete Local Name
	TxPower          = 0x0A // Tx Power Level
	ServiceData16    = 0x16 // Service Data - 16-bit UUID
	ServiceData32    = 0x20 // Service Data - 32-bit UUID
	ServiceData128   = 0x21 // Service Data - 128-bit UUID
	ManufacturerData = 0xFF // Manufacturer Specific Data
)

// Advertising flags
const (
	FlagGeneralDiscoverable = 0x02 // LE General Discoverable Mode
	FlagLEOnly              = 0x04 // BR/EDR Not Supported
)

// Company identifiers assigned by the Bluetooth SIG.
const (
	CompanyApple     = 0x004C // Apple, Inc. (iBeacon)
	CompanyNordic    = 0x0059 // Nordic Semiconductor ASA
	CompanyRadius    = 0x0118 // Radius Networks (AltBeacon)
	CompanyEstimote  = 0x015D // Estimote, Inc.
	CompanyKontaktIO = 0x06A0 // Kontakt Micro-Location
)

var companies = map[uint16]string{
	CompanyApple:     "Apple",
	CompanyNordic:    "Nordic Semiconductor",
	CompanyRadius:    "Radius Networks",
	CompanyEstimote:  "Estimote",
	CompanyKontaktIO: "Kontakt.io",
}

// CompanyName returns the name of a beacon vendor, or "" if id is not known.
func CompanyName(id uint16) string { return companies[id] }

// iBeacon manufacturer data layout.
const (
	IBeaconType      = 0x02 // Data type: iBeacon
	IBeaconLength    = 0x15 // Data length: 21 bytes
	IBeaconDataLen   = 23   // Type, length, UUID, major, minor, power
	IBeaconTotalSize = 25   // IBeaconDataLen plus the company identifier
)

// Eddystone frame types.
const (
	EddystoneUID = 0x00 // Unique identifier
	EddystoneURL = 0x10 // Compressed URL
	EddystoneTLM = 0x20 // Telemetry
	EddystoneEID = 0x30 // Ephemeral identifier
)

// MaxEddystoneURLLength is the maximum length of the encoded URL after the scheme byte.
const MaxEddystoneURLLength = 17
