package throttle

import "time"

const (
	// AntiSpinMax is the largest configurable ramp time in milliseconds.
	AntiSpinMax = 255

	// AntiSpinStartMax and AntiSpinStartMin bound the dynamic bypass
	// threshold. A weak anti-spin setting only engages near
	// AntiSpinStartMax% duty; the strongest setting engages already at
	// AntiSpinStartMin%.
	AntiSpinStartMax = 65
	AntiSpinStartMin = 30
)

// Limiter is the anti-spin rate limiter. It caps the rate of duty cycle
// increase so that abrupt acceleration cannot break traction, while letting
// any decrease through instantly so braking is never delayed.
//
// The accumulator keeps duty at x1000 scale so that sub-percent ramp steps
// survive repeated integer division. The limiter is owned by the control
// context; nothing else may touch it.
type Limiter struct {
	lastOutputX1000 int32
	lastCall        time.Time
}

// StartThreshold returns the duty percentage below which limiting is
// bypassed, linearly interpolated from the configured ramp time: 0 ms maps
// to AntiSpinStartMax, AntiSpinMax ms maps to AntiSpinStartMin.
func StartThreshold(antiSpinMS uint16) uint16 {
	ms := int32(constrain(antiSpinMS, 0, AntiSpinMax))
	return uint16(AntiSpinStartMax - (AntiSpinStartMax-AntiSpinStartMin)*ms/AntiSpinMax)
}

// Reset clears the ramp memory and timing state.
func (l *Limiter) Reset() {
	l.lastOutputX1000 = 0
	l.lastCall = time.Time{}
}

// Output returns the limiter's current ramp position in duty percent x1000.
func (l *Limiter) Output() int32 {
	return l.lastOutputX1000
}

// Limit applies the anti-spin ramp to a requested duty cycle and returns the
// duty the motor is actually allowed this period.
func (l *Limiter) Limit(requested uint16, p Params, now time.Time) uint16 {
	var deltaUS int64
	if !l.lastCall.IsZero() {
		deltaUS = now.Sub(l.lastCall).Microseconds()
	}
	l.lastCall = now

	// Disabled: pass through, but park the ramp at the floor so a later
	// re-enable starts cleanly from minSpeed.
	if p.AntiSpinMS == 0 {
		l.lastOutputX1000 = int32(p.MinSpeed) * 1000
		return requested
	}

	start := StartThreshold(p.AntiSpinMS)

	// Below the bypass threshold there is not enough current for wheel
	// spin; track the request directly.
	if requested < start {
		l.lastOutputX1000 = int32(requested) * 1000
		return requested
	}

	requestedX1000 := int32(requested) * 1000

	// Deceleration or hold: never delayed.
	if requestedX1000 <= l.lastOutputX1000 {
		l.lastOutputX1000 = requestedX1000
		return requested
	}

	// Acceleration above the threshold: advance the ramp by at most the
	// duty span the configured ramp time allows for this time slice.
	// AntiSpinMS is defined as the time to sweep from the ramp base to
	// maxSpeed.
	base := p.MinSpeed
	if start > base {
		base = start
	}
	span := int64(p.MaxSpeed) - int64(base)
	if span < 0 {
		span = 0
	}
	maxDelta := int32(span * deltaUS / int64(p.AntiSpinMS))

	l.lastOutputX1000 += maxDelta

	// The ramp always starts from the floor, not from zero, and must stay
	// inside the speed window so the accumulator cannot drift or overflow.
	floor := int32(p.MinSpeed) * 1000
	if l.lastOutputX1000 < floor {
		l.lastOutputX1000 = floor
	}
	if l.lastOutputX1000 > requestedX1000 {
		l.lastOutputX1000 = requestedX1000
	}
	if ceil := int32(p.MaxSpeed) * 1000; l.lastOutputX1000 > ceil {
		l.lastOutputX1000 = ceil
	}

	return uint16(l.lastOutputX1000 / 1000)
}
