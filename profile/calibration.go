package profile

import "math"

// Calibration holds the raw trigger extremes recorded while the user sweeps
// the trigger during a calibration session. The bounds only ever expand
// outward between Reset and the end of the session.
type Calibration struct {
	MinRaw int16 `json:"minRaw"`
	MaxRaw int16 `json:"maxRaw"`
}

// Reset prepares for a new calibration session by setting maximally-inverted
// sentinels so the first observed sample defines both bounds.
func (c *Calibration) Reset() {
	c.MinRaw = math.MaxInt16
	c.MaxRaw = math.MinInt16
}

// Observe widens the bounds to include a raw sample.
func (c *Calibration) Observe(raw int16) {
	if raw < c.MinRaw {
		c.MinRaw = raw
	}
	if raw > c.MaxRaw {
		c.MaxRaw = raw
	}
}

// Valid reports whether the bounds describe a usable trigger range. The
// normalizer tolerates invalid bounds (it outputs zero), but callers use this
// to decide whether to persist a session's result.
func (c Calibration) Valid() bool {
	return c.MinRaw < c.MaxRaw
}
