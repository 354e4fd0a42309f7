// Package rssi smooths received signal strength readings.
//
// The Smoother is a single-pole auto regressive moving average filter:
//
//	estimate(t) = estimate(t-1) - c * (estimate(t-1) - rssi(t))
//
// where the coefficient c is picked from the rate at which readings arrive.
// Dense readings are damped harder; sparse readings are taken as they come.
package rssi

// Factor returns the smoothing coefficient for readings arriving at freq Hz.
//
//	freq > 7       0.25
//	6 < freq <= 7  0.50
//	5 < freq <= 6  0.75
//	otherwise      1.00
//
// Zero, negative and NaN frequencies fail every comparison and get 1.00.
func Factor(freq float64) float64 {
	switch {
	case freq > 7:
		return 0.25
	case freq > 6:
		return 0.5
	case freq > 5:
		return 0.75
	}
	return DefaultFactor
}

// DefaultFactor applies no smoothing at all.
const DefaultFactor = 1.0

// Smoother keeps the running estimate of one signal source. Use one Smoother
// per beacon; the zero value is ready to use. A Smoother is not safe for
// concurrent use.
type Smoother struct {
	initialized bool
	estimate    float64
}

// Observe records a reading and returns the updated estimate.
// The first reading is taken as the estimate unchanged.
func (s *Smoother) Observe(rssi int, freq float64) float64 {
	if !s.initialized {
		s.estimate = float64(rssi)
		s.initialized = true
		return s.estimate
	}
	s.estimate -= Factor(freq) * (s.estimate - float64(rssi))
	return s.estimate
}

// Estimate returns the current estimate. It returns false if nothing has been
// observed yet.
func (s *Smoother) Estimate() (float64, bool) {
	return s.estimate, s.initialized
}

// Reset forgets all readings.
func (s *Smoother) Reset() {
	*s = Smoother{}
}
