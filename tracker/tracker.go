// Package tracker follows individual beacons across a stream of advertisements.
//
// Every recognized advertisement is attributed to its sender address. The
// tracker estimates how often each sender is heard and smooths its RSSI with
// a dedicated rssi.Smoother, so readings of one beacon never leak into another.
package tracker

import (
	"sort"
	"sync"
	"time"

	"github.com/mgutz/logxi/v1"

	"github.com/currantlabs/beacon"
	"github.com/currantlabs/beacon/capture"
	"github.com/currantlabs/beacon/rssi"
)

var logger = log.New("tracker")

// Logger returns the package logger, so commands can adjust its level.
func Logger() log.Logger { return logger }

// DefaultWindow is the span of recent packets used to estimate the packet rate.
const DefaultWindow = 10 * time.Second

// Observation is the outcome of one recognized advertisement.
type Observation struct {
	Addr      string
	Packet    beacon.Packet
	RSSI      int
	Frequency float64 // Packets per second within the window.
	Filtered  float64
}

// Status summarizes a tracked beacon.
type Status struct {
	Addr      string
	Format    beacon.Format
	Packet    beacon.Packet
	Packets   int // Total recognized packets.
	LastSeen  time.Time
	Frequency float64
	Filtered  float64
}

type source struct {
	packet   beacon.Packet
	count    int
	arrivals []time.Time
	smoother rssi.Smoother
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	registry *beacon.Registry
	window   time.Duration
	sources  map[string]*source
}

// New returns a tracker using the default registry and window unless overridden.
func New(opts ...Option) (*Tracker, error) {
	t := &Tracker{
		registry: beacon.NewDefaultRegistry(),
		window:   DefaultWindow,
		sources:  make(map[string]*source),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Observe attributes rec to its sender. It returns false, and keeps no state,
// if no interpreter recognizes the payload.
func (t *Tracker) Observe(rec capture.Record) (Observation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.registry.Interpret(rec.Data)
	if !ok {
		logger.Debug("unrecognized", "addr", rec.Addr, "len", len(rec.Data))
		return Observation{}, false
	}

	s, ok := t.sources[rec.Addr]
	if !ok {
		logger.Debug("new source", "addr", rec.Addr, "format", p.Format())
		s = &source{}
		t.sources[rec.Addr] = s
	}
	s.packet = p
	s.count++
	s.arrivals = append(s.arrivals, rec.Time)
	s.trim(rec.Time, t.window)

	f := frequency(s.arrivals)
	return Observation{
		Addr:      rec.Addr,
		Packet:    p,
		RSSI:      rec.RSSI,
		Frequency: f,
		Filtered:  s.smoother.Observe(rec.RSSI, f),
	}, true
}

// trim drops arrivals older than window before now.
func (s *source) trim(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	i := 0
	for i < len(s.arrivals) && s.arrivals[i].Before(cutoff) {
		i++
	}
	s.arrivals = s.arrivals[i:]
}

// frequency returns the packet rate of the arrivals in Hz: the number of
// intervals over the time they span. Fewer than two arrivals, or arrivals
// sharing a timestamp, give 0.
func frequency(ts []time.Time) float64 {
	if len(ts) < 2 {
		return 0
	}
	d := ts[len(ts)-1].Sub(ts[0]).Seconds()
	if d <= 0 {
		return 0
	}
	return float64(len(ts)-1) / d
}

// Beacons returns the status of every tracked beacon, ordered by address.
func (t *Tracker) Beacons() []Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	ss := make([]Status, 0, len(t.sources))
	for addr, s := range t.sources {
		st := Status{
			Addr:      addr,
			Format:    s.packet.Format(),
			Packet:    s.packet,
			Packets:   s.count,
			Frequency: frequency(s.arrivals),
		}
		if n := len(s.arrivals); n > 0 {
			st.LastSeen = s.arrivals[n-1]
		}
		st.Filtered, _ = s.smoother.Estimate()
		ss = append(ss, st)
	}
	sort.Slice(ss, func(i, j int) bool { return ss[i].Addr < ss[j].Addr })
	return ss
}

// Estimate returns the smoothed RSSI of addr. It returns false for unknown addresses.
func (t *Tracker) Estimate(addr string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sources[addr]
	if !ok {
		return 0, false
	}
	return s.smoother.Estimate()
}

// Forget drops all state of addr.
func (t *Tracker) Forget(addr string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sources, addr)
}

// Prune drops beacons not heard within the window before now, and returns
// how many were dropped.
func (t *Tracker) Prune(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for addr, s := range t.sources {
		s.trim(now, t.window)
		if len(s.arrivals) == 0 {
			logger.Debug("prune", "addr", addr)
			delete(t.sources, addr)
			n++
		}
	}
	return n
}

// Len returns the number of tracked beacons.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sources)
}
