package throttle

import "time"

// Sample is one control period's worth of pipeline output.
type Sample struct {
	Raw  int16  // smoothed raw reading
	Norm uint16 // deadband-shaped normalized throttle
	Duty uint16 // final duty cycle percent, after anti-spin limiting
}

// Released reports whether the trigger is at rest after shaping; the caller
// should command brake/drag output instead of duty.
func (s Sample) Released() bool {
	return s.Norm == 0
}

// Pipeline holds the transient state the stages need across periods: the
// previous raw sample for the averaging filter and the anti-spin limiter's
// ramp memory. One Pipeline belongs to exactly one control context.
type Pipeline struct {
	prevRaw int16
	limiter Limiter
}

// Reset clears the cross-period state. Used when entering calibration so a
// stale ramp position cannot leak into the next run.
func (p *Pipeline) Reset() {
	p.prevRaw = 0
	p.limiter.Reset()
}

// Process pulls one raw sample through every stage and returns the resulting
// Sample. When the shaped throttle is zero the limiter is still fed so its
// ramp memory stays consistent with a released trigger.
func (p *Pipeline) Process(raw int16, prm Params, now time.Time) Sample {
	smoothed := Average(p.prevRaw, raw)
	p.prevRaw = raw

	norm := Normalize(smoothed, prm.MinRaw, prm.MaxRaw, NormMax, prm.Reversed)
	shaped := AddDeadBand(norm, 0, NormMax, prm.Deadband)

	var requested uint16
	if shaped != 0 {
		requested = Curve(shaped, prm.Vertex, prm.MinSpeed, prm.MaxSpeed)
	}
	duty := p.limiter.Limit(requested, prm, now)

	return Sample{Raw: smoothed, Norm: shaped, Duty: duty}
}
