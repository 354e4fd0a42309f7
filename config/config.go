// Package config loads the beacon tool configuration.
//
//	window: 10s
//	interpreters:
//	  - name: nordic
//	    company_id: 0x0059
//	    priority: prepend
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/currantlabs/beacon"
	"github.com/currantlabs/beacon/tracker"
)

// Interpreter declares a manufacturer data interpreter.
type Interpreter struct {
	Name      string `yaml:"name"`
	CompanyID uint16 `yaml:"company_id"`
	Priority  string `yaml:"priority"` // "prepend" or "append"; defaults to prepend.
}

// Config ...
type Config struct {
	Window       time.Duration `yaml:"window"`
	Interpreters []Interpreter `yaml:"interpreters"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Window: tracker.DefaultWindow}
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't read config")
	}
	c, err := Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "can't load %s", path)
	}
	return c, nil
}

// Parse decodes and validates a YAML configuration. Omitted settings keep
// their defaults.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrap(err, "can't parse config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate ...
func (c *Config) Validate() error {
	if c.Window <= 0 {
		return errors.Errorf("window must be positive, got %s", c.Window)
	}
	for i, in := range c.Interpreters {
		if in.Name == "" {
			return errors.Errorf("interpreter %d: missing name", i)
		}
		if _, err := priority(in.Priority); err != nil {
			return errors.Wrapf(err, "interpreter %s", in.Name)
		}
	}
	return nil
}

func priority(s string) (beacon.Priority, error) {
	switch s {
	case "", "prepend":
		return beacon.Prepend, nil
	case "append":
		return beacon.Append, nil
	}
	return 0, errors.Errorf("unknown priority %q", s)
}

// Registry returns the default registry with the configured interpreters
// registered in file order.
func (c *Config) Registry() *beacon.Registry {
	r := beacon.NewDefaultRegistry()
	for _, in := range c.Interpreters {
		p, _ := priority(in.Priority)
		r.Register(beacon.Manufacturer{Name: in.Name, CompanyID: in.CompanyID}, p)
	}
	return r
}

// TrackerOptions returns the tracker options matching c.
func (c *Config) TrackerOptions() []tracker.Option {
	return []tracker.Option{
		tracker.OptWindow(c.Window),
		tracker.OptRegistry(c.Registry()),
	}
}
