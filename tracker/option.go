package tracker

import (
	"time"

	"github.com/pkg/errors"

	"github.com/currantlabs/beacon"
)

// An Option is a configuration function, which configures the tracker.
type Option func(*Tracker) error

// OptWindow sets the span of recent packets used to estimate the packet rate.
func OptWindow(d time.Duration) Option {
	return func(t *Tracker) error {
		if d <= 0 {
			return errors.Errorf("window must be positive, got %s", d)
		}
		t.window = d
		return nil
	}
}

// OptRegistry sets the registry used to recognize advertisements.
func OptRegistry(r *beacon.Registry) Option {
	return func(t *Tracker) error {
		if r == nil {
			return errors.New("nil registry")
		}
		t.registry = r
		return nil
	}
}
