// Package profile holds the per-car tunable parameters and the calibrated
// trigger bounds, plus the store that owns them. All UI-side mutation goes
// through the store's setters; the control loop only ever reads copies.
package profile

import "github.com/slotware/espeed/throttle"

// Parameter defaults, matching a sensible out-of-the-box setup.
const (
	MinSpeedDefault             = 20  // [%] minimum motor speed (sensitivity)
	BrakeDefault                = 95  // [%] brake strength
	DragBrakeDefault            = 100 // [%] drag brake strength
	AntiSpinDefault             = 30  // [ms] anti-spin ramp time
	MaxSpeedDefault             = 100 // [%] maximum motor speed
	CurveInputDefault           = throttle.NormMax / 2
	CurveSpeedDiffDefault       = 50
	FreqPWMDefault              = 30 // [100*Hz] 3.0 kHz
	BrakeButtonReductionDefault = 50 // [%] brake reduction while button held
)

// Parameter limits enforced by Clamp and by the menus.
const (
	MinSpeedMax       = 90
	BrakeMax          = 100
	DragBrakeMax      = 100
	MaxSpeedMin       = 5
	MaxSpeedMax       = 100
	CurveSpeedDiffMin = 10
	CurveSpeedDiffMax = 90
	FreqPWMMin        = 10 // [100*Hz] 1.0 kHz
	FreqPWMMax        = 50 // [100*Hz] 5.0 kHz
	AntiSpinLimit     = throttle.AntiSpinMax
)

const (
	// MaxCars is the number of car profiles kept in settings.
	MaxCars = 20

	// NameLen is the fixed display length of a car name.
	NameLen = 4
)

// Profile contains all ESC behavior settings for one car/track combination.
type Profile struct {
	Number               int             `json:"number"`
	Name                 string          `json:"name"`
	MinSpeed             uint16          `json:"minSpeed"`
	Brake                uint16          `json:"brake"`
	DragBrake            uint16          `json:"dragBrake"`
	MaxSpeed             uint16          `json:"maxSpeed"`
	Vertex               throttle.Vertex `json:"throttleCurveVertex"`
	AntiSpin             uint16          `json:"antiSpin"`
	FreqPWM              uint16          `json:"freqPWM"`
	BrakeButtonReduction uint16          `json:"brakeButtonReduction"`
}

// Default returns a freshly initialized profile for the given slot.
func Default(number int) Profile {
	return Profile{
		Number:   number,
		Name:     defaultName(number),
		MinSpeed: MinSpeedDefault,
		Brake:    BrakeDefault,

		DragBrake: DragBrakeDefault,
		MaxSpeed:  MaxSpeedDefault,
		Vertex: throttle.Vertex{
			InputThrottle: CurveInputDefault,
			SpeedDiff:     CurveSpeedDiffDefault,
		},
		AntiSpin:             AntiSpinDefault,
		FreqPWM:              FreqPWMDefault,
		BrakeButtonReduction: BrakeButtonReductionDefault,
	}
}

// Clamp forces every field back inside its legal range. It keeps the
// minSpeed < maxSpeed invariant by pulling minSpeed down, never pushing
// maxSpeed up.
func (p *Profile) Clamp() {
	p.MinSpeed = clamp(p.MinSpeed, 0, MinSpeedMax)
	p.Brake = clamp(p.Brake, 0, BrakeMax)
	p.DragBrake = clamp(p.DragBrake, 0, DragBrakeMax)
	p.MaxSpeed = clamp(p.MaxSpeed, MaxSpeedMin, MaxSpeedMax)
	p.Vertex.InputThrottle = clamp(p.Vertex.InputThrottle, 1, throttle.NormMax-1)
	p.Vertex.SpeedDiff = clamp(p.Vertex.SpeedDiff, CurveSpeedDiffMin, CurveSpeedDiffMax)
	p.AntiSpin = clamp(p.AntiSpin, 0, AntiSpinLimit)
	p.FreqPWM = clamp(p.FreqPWM, FreqPWMMin, FreqPWMMax)
	p.BrakeButtonReduction = clamp(p.BrakeButtonReduction, 0, 100)

	if p.MinSpeed >= p.MaxSpeed {
		p.MinSpeed = p.MaxSpeed - 1
	}

	if len(p.Name) > NameLen {
		p.Name = p.Name[:NameLen]
	}
}

// BrakeStrength returns the effective brake percentage, reduced when the
// secondary brake button is held.
func (p Profile) BrakeStrength(buttonHeld bool) uint16 {
	if !buttonHeld {
		return p.Brake
	}
	reduced := int32(p.Brake) * int32(100-p.BrakeButtonReduction) / 100
	return uint16(reduced)
}

func defaultName(number int) string {
	// "CAR" plus the 1-based slot letter keeps it inside NameLen
	return "CR" + string([]byte{'0' + byte((number+1)/10), '0' + byte((number+1)%10)})
}

func clamp(v, min, max uint16) uint16 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
