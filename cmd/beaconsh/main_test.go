package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mgutz/logxi/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/currantlabs/beacon/capture"
	"github.com/currantlabs/beacon/config"
	"github.com/currantlabs/beacon/tracker"
)

const ibeaconHex = "0201061aff4c000215e2c56db5dffb48d2b060d0f5a71096e000010002c5"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg = config.Default()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(append([]string{"beaconsh"}, args...))
	return buf.String(), err
}

func TestParse(t *testing.T) {
	out, err := run(t, "parse", ibeaconHex, "02:01:06:05:09:4b:6f:6e:61")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ibeacon      iBeacon e2c56db5-dffb-48d2-b060-d0f5a71096e0 major 1 minor 2 power -59", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "unrecognized Name: Kona"), lines[1])

	_, err = run(t, "parse")
	assert.Equal(t, errNoPayload, err)

	_, err = run(t, "parse", "zz")
	assert.Error(t, err)
}

func TestParseNamesCompany(t *testing.T) {
	out, err := run(t, "parse", "02010605ff5900dead")
	require.NoError(t, err)
	assert.Contains(t, out, "MD: 5900DEAD (Nordic Semiconductor)")
}

func TestDebugFlag(t *testing.T) {
	t.Cleanup(func() {
		for _, l := range loggers() {
			l.SetLevel(log.LevelWarn)
		}
	})

	_, err := run(t, "--debug", "parse", ibeaconHex)
	require.NoError(t, err)
	assert.True(t, logger.IsDebug())
	assert.True(t, tracker.Logger().IsDebug())
	assert.True(t, capture.Logger().IsDebug())
}

func TestParseWithConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "beacon.yaml")
	require.NoError(t, os.WriteFile(p, []byte("interpreters:\n  - name: apple\n    company_id: 0x004C\n"), 0o644))

	out, err := run(t, "--config", p, "parse", ibeaconHex)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "manufacturer apple (0x004C)"), out)
}

func TestSmooth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, smooth(&buf, strings.NewReader("# readings\n-70\n-60\n\n-60\n"), 8))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, " -70   -70.00", lines[0])
	assert.Equal(t, " -60   -67.50", lines[1])
	assert.Equal(t, " -60   -65.62", lines[2])
	assert.Equal(t, "factor 0.25, 3 readings", lines[3])

	buf.Reset()
	assert.Error(t, smooth(&buf, strings.NewReader("-70\nloud\n"), 8))

	buf.Reset()
	require.NoError(t, smooth(&buf, strings.NewReader(""), 8))
	assert.Equal(t, "no readings\n", buf.String())
}

const textCapture = `2018-02-05T10:00:00.000Z C0:FF:EE:12:34:56 -70 ` + ibeaconHex + `
2018-02-05T10:00:00.125Z C0:FF:EE:12:34:56 -60 ` + ibeaconHex + `
2018-02-05T10:00:00.130Z 11:22:33:44:55:66 -80 0201060509 4b6f6e61
2018-02-05T10:00:00.140Z 11:22:33:44:55:66 -80 02010605094b6f6e61
`

func TestReplay(t *testing.T) {
	p := filepath.Join(t.TempDir(), "capture.txt")
	require.NoError(t, os.WriteFile(p, []byte(textCapture), 0o644))

	// The third line has five fields.
	_, err := run(t, "replay", p)
	assert.Error(t, err)

	fixed := strings.Replace(textCapture, "0201060509 4b6f6e61", "02010605094b6f6e61", 1)
	require.NoError(t, os.WriteFile(p, []byte(fixed), 0o644))
	out, err := run(t, "replay", "--summary", p)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "4 packets, 2 unrecognized, 1 beacons", lines[0])
	assert.Contains(t, lines[1], "[C0:FF:EE:12:34:56] ibeacon")
	assert.Contains(t, lines[1], "-67.50 dBm")

	out, err = run(t, "replay", p)
	require.NoError(t, err)
	assert.Contains(t, out, "10:00:00.125 [C0:FF:EE:12:34:56] ibeacon       -60 dBm  8.00 Hz ->  -67.50 dBm")

	_, err = run(t, "replay")
	assert.Equal(t, errNoFile, err)
}

type records []capture.Record

func (rs *records) Next() (capture.Record, error) {
	if len(*rs) == 0 {
		return capture.Record{}, io.EOF
	}
	r := (*rs)[0]
	*rs = (*rs)[1:]
	return r, nil
}

func TestReplayConnectable(t *testing.T) {
	b, err := decodeHex(ibeaconHex)
	require.NoError(t, err)
	at := time.Date(2018, 2, 5, 10, 0, 0, 0, time.UTC)
	src := &records{
		{Time: at, Addr: "C0:FF:EE:12:34:56", RSSI: -60, Data: b, Connectable: true},
		{Time: at.Add(time.Second), Addr: "C0:FF:EE:12:34:56", RSSI: -60, Data: b},
	}
	tr, err := tracker.New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, replay(context.Background(), &buf, src, tr, false))
	lines := strings.Split(buf.String(), "\n")
	require.True(t, len(lines) > 2, buf.String())
	assert.True(t, strings.HasSuffix(lines[0], "power -59 (connectable)"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "power -59"), lines[1])
}

func TestConvert(t *testing.T) {
	p := filepath.Join(t.TempDir(), "capture.txt")
	in := "2018-02-05T10:00:00.125Z C0:FF:EE:12:34:56 -60 " + ibeaconHex + "\n"
	require.NoError(t, os.WriteFile(p, []byte(in), 0o644))

	out, err := run(t, "convert", p)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Empty payloads survive a second conversion.
	in = "2018-02-05T10:00:00.125Z C0:FF:EE:12:34:56 -60 -\n"
	require.NoError(t, os.WriteFile(p, []byte(in), 0o644))
	out, err = run(t, "convert", p)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCraft(t *testing.T) {
	out, err := run(t, "craft", "ibeacon", "--major", "1", "--minor", "2")
	require.NoError(t, err)
	assert.Equal(t, ibeaconHex+"\n", out)

	out, err = run(t, "craft", "eddystone-url", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "0201060303aafe"+"0e16aafe10c5"+"036578616d706c6507"+"\n", out)

	out, err = run(t, "craft", "eddystone-uid", "--namespace", "00112233445566778899", "--instance", "aabbccddeeff", "--power", "-20")
	require.NoError(t, err)
	assert.Equal(t, "0201060303aafe"+"1716aafe00ec"+"00112233445566778899"+"aabbccddeeff"+"0000"+"\n", out)

	_, err = run(t, "craft", "eddystone-uid", "--namespace", "0011")
	assert.Error(t, err)

	_, err = run(t, "craft", "ibeacon", "--uuid", "nope")
	assert.Error(t, err)
}

func TestDecodeHex(t *testing.T) {
	for _, s := range []string{"0x020106", "02 01 06", "02:01:06", "02-01-06"} {
		b, err := decodeHex(s)
		require.NoError(t, err, s)
		assert.Equal(t, []byte{0x02, 0x01, 0x06}, b, s)
	}
}
