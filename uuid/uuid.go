package uuid

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// A UUID is a BLE UUID, stored in the little-endian order used on the air.
type UUID []byte

// UUID16 converts a uint16 (such as 0xFEAA) to a UUID.
func UUID16(i uint16) UUID {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, i)
	return UUID(b)
}

// Parse reads a UUID written big-endian, dashes optional: "FEAA",
// "0000FEAA" or "E2C56DB5-DFFB-48D2-B060-D0F5A71096E0".
func Parse(s string) (UUID, error) {
	b, err := hex.DecodeString(strings.ReplaceAll(s, "-", ""))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid UUID %q", s)
	}
	if err := checkLen(len(b)); err != nil {
		return nil, err
	}
	return UUID(Reverse(b)), nil
}

// MustParse is like Parse but panics on error. It is meant for package level
// UUID literals.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func checkLen(n int) error {
	switch n {
	case 2, 4, 16:
		return nil
	}
	return errors.Errorf("UUIDs must have length 2, 4 or 16, got %d", n)
}

// Len returns the length of the UUID, in bytes.
func (u UUID) Len() int { return len(u) }

// String returns the lowercase hex of u, big-endian, without dashes.
func (u UUID) String() string { return hex.EncodeToString(Reverse(u)) }

// Equal reports whether u and v are the same UUID of the same width.
func (u UUID) Equal(v UUID) bool { return bytes.Equal(u, v) }

// Contains reports whether u is one of us. A nil list contains nothing.
func Contains(us []UUID, u UUID) bool {
	for _, v := range us {
		if v.Equal(u) {
			return true
		}
	}
	return false
}

// Reverse returns a copy of b with the byte order flipped. It converts between
// the air order and the written order.
func Reverse(b []byte) []byte {
	r := make([]byte, len(b))
	for i, c := range b {
		r[len(b)-1-i] = c
	}
	return r
}

// Name returns the name of a known beacon service, or "" if u is not known.
func Name(u UUID) string {
	return known[u.String()]
}

// Service UUIDs seen in beacon advertisements.
var (
	Eddystone     = UUID16(0xFEAA)
	AltBeacon     = UUID16(0xFEAB)
	ExposureNotif = UUID16(0xFD6F)
	TxPower       = UUID16(0x1804)
	Battery       = UUID16(0x180F)
)

var known = map[string]string{
	"feaa": "Eddystone",
	"feab": "Nokia Beacon",
	"fd6f": "Exposure Notification",
	"fe9a": "Estimote",
	"febe": "Bose",
	"1800": "Generic Access",
	"1801": "Generic Attribute",
	"1804": "Tx Power",
	"180a": "Device Information",
	"180f": "Battery Service",
}
