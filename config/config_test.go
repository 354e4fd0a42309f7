package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/currantlabs/beacon"
	"github.com/currantlabs/beacon/adv"
	"github.com/currantlabs/beacon/tracker"
	"github.com/currantlabs/beacon/uuid"
)

const sample = `
window: 5s
interpreters:
  - name: nordic
    company_id: 0x0059
  - name: apple
    company_id: 0x004C
    priority: prepend
  - name: estimote
    company_id: 0x015D
    priority: append
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.Window)
	assert.Equal(t, []Interpreter{
		{Name: "nordic", CompanyID: adv.CompanyNordic},
		{Name: "apple", CompanyID: adv.CompanyApple, Priority: "prepend"},
		{Name: "estimote", CompanyID: adv.CompanyEstimote, Priority: "append"},
	}, c.Interpreters)
}

func TestDefaults(t *testing.T) {
	c, err := Parse([]byte("interpreters: []\n"))
	require.NoError(t, err)
	assert.Equal(t, tracker.DefaultWindow, c.Window)
	assert.Equal(t, 2, c.Registry().Len())
}

func TestRegistryOrder(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []beacon.Interpreter{
		beacon.Manufacturer{Name: "apple", CompanyID: adv.CompanyApple},
		beacon.Manufacturer{Name: "nordic", CompanyID: adv.CompanyNordic},
		beacon.Eddystone{},
		beacon.IBeacon{},
		beacon.Manufacturer{Name: "estimote", CompanyID: adv.CompanyEstimote},
	}, c.Registry().Interpreters())

	// The prepended apple interpreter shadows the iBeacon built-in.
	ib, err := adv.IBeacon(uuid.MustParse("E2C56DB5-DFFB-48D2-B060-D0F5A71096E0"), 1, 2, -59)
	require.NoError(t, err)
	p, ok := c.Registry().Interpret(ib)
	require.True(t, ok)
	assert.Equal(t, beacon.FormatManufacturer, p.Format())
}

func TestParseErrors(t *testing.T) {
	for name, in := range map[string]string{
		"syntax":          "window: [",
		"negative window": "window: -1s",
		"missing name":    "interpreters:\n  - company_id: 1\n",
		"bad priority":    "interpreters:\n  - name: x\n    priority: first\n",
	} {
		_, err := Parse([]byte(in))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "beacon.yaml")
	require.NoError(t, os.WriteFile(p, []byte(sample), 0o644))

	c, err := Load(p)
	require.NoError(t, err)
	assert.Len(t, c.Interpreters, 3)

	tr, err := tracker.New(c.TrackerOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
