package adv

import (
	"encoding/hex"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/currantlabs/beacon/uuid"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestFields(t *testing.T) {
	p := Packet(mustHex(t, "020106"+"0303aafe"+"05094b6f6e61"))
	want := []Field{
		{Type: Flags, Data: []byte{0x06}},
		{Type: AllUUID16, Data: []byte{0xaa, 0xfe}},
		{Type: CompleteName, Data: []byte("Kona")},
	}
	if diff := cmp.Diff(want, p.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}

	f, ok := p.Flags()
	require.True(t, ok)
	assert.Equal(t, byte(0x06), f)
	assert.Equal(t, "Kona", p.LocalName())
	assert.Equal(t, []uuid.UUID{uuid.Eddystone}, p.UUIDs())
}

func TestFieldsMalformed(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
		n    int
	}{
		{"nil", nil, 0},
		{"single byte", []byte{0x02}, 0},
		{"truncated", mustHex(t, "020106" + "05ff4c00"), 1},
		{"zero length terminates", mustHex(t, "020106" + "00" + "0303aafe"), 1},
		{"length only", mustHex(t, "0201"), 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := Packet(tc.in)
			assert.Len(t, p.Fields(), tc.n)
			assert.NotPanics(t, func() {
				p.UUIDs()
				p.ServiceData()
				p.ManufacturerData()
				p.Flags()
				p.TxPower()
			})
		})
	}
}

func TestTxPowerIsSigned(t *testing.T) {
	p := Packet{}.AppendField(TxPower, []byte{0xf4})
	pwr, ok := p.TxPower()
	require.True(t, ok)
	assert.Equal(t, -12, pwr)

	_, ok = Packet{}.TxPower()
	assert.False(t, ok)
}

func TestServiceData(t *testing.T) {
	p := Packet{}.AppendServiceData(uuid.Eddystone, []byte{0x10, 0xee, 0x03})
	sd := p.ServiceData()
	require.Len(t, sd, 1)
	assert.True(t, sd[0].UUID.Equal(uuid.Eddystone))
	assert.Equal(t, []byte{0x10, 0xee, 0x03}, sd[0].Data)

	d, ok := p.ServiceDataFor(uuid.Eddystone)
	require.True(t, ok)
	assert.Equal(t, sd[0].Data, d)

	_, ok = p.ServiceDataFor(uuid.Battery)
	assert.False(t, ok)
}

func TestIBeacon(t *testing.T) {
	u := uuid.MustParse("E2C56DB5-DFFB-48D2-B060-D0F5A71096E0")
	p, err := IBeacon(u, 1, 2, -59)
	require.NoError(t, err)
	assert.Equal(t,
		"020106"+"1aff4c000215"+"e2c56db5dffb48d2b060d0f5a71096e0"+"0001"+"0002"+"c5",
		hex.EncodeToString(p))

	id, ok := p.CompanyID()
	require.True(t, ok)
	assert.Equal(t, uint16(CompanyApple), id)
	assert.Len(t, p.ManufacturerData(), IBeaconTotalSize)

	_, err = IBeacon(uuid.Eddystone, 1, 2, -59)
	assert.Error(t, err)
	_, err = IBeaconFromData([]byte{0x02})
	assert.Error(t, err)
}

func TestEddystoneUIDFrame(t *testing.T) {
	ns := [10]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	inst := [6]byte{0xa, 0xb, 0xc, 0xd, 0xe, 0xf}
	p, err := EddystoneUIDFrame(ns, inst, -20)
	require.NoError(t, err)
	assert.Equal(t, MaxEIRPacketLength, p.Len())

	d, ok := p.ServiceDataFor(uuid.Eddystone)
	require.True(t, ok)
	require.Len(t, d, 20)
	assert.Equal(t, byte(EddystoneUID), d[0])
	assert.Equal(t, int8(-20), int8(d[1]))
	assert.Equal(t, ns[:], d[2:12])
	assert.Equal(t, inst[:], d[12:18])
}

func TestEddystoneTLMFrame(t *testing.T) {
	p, err := EddystoneTLMFrame(3000, 21.5, 100, 600)
	require.NoError(t, err)
	d, ok := p.ServiceDataFor(uuid.Eddystone)
	require.True(t, ok)
	assert.Equal(t, mustHex(t, "2000"+"0bb8"+"1580"+"00000064"+"00000258"), d)
}

func TestEddystoneFrameErrors(t *testing.T) {
	_, err := EddystoneFrame(nil)
	assert.Error(t, err)

	_, err = EddystoneFrame(make([]byte, 40))
	assert.Equal(t, ErrNotFit, err)
}

func TestCompanyName(t *testing.T) {
	assert.Equal(t, "Apple", CompanyName(CompanyApple))
	assert.Equal(t, "Nordic Semiconductor", CompanyName(CompanyNordic))
	assert.Equal(t, "Estimote", CompanyName(CompanyEstimote))
	assert.Equal(t, "", CompanyName(0xFFFF))
}
