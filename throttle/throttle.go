// Package throttle converts raw trigger sensor readings into motor duty
// cycle percentages. The stages run in a fixed order every control period:
// average -> normalize -> deadband -> curve -> anti-spin limiter.
package throttle

import "golang.org/x/exp/constraints"

const (
	// NormMax is the upper bound of the normalized throttle range.
	NormMax = 256

	// DeadbandPct is the default deadband at each end of the normalized
	// range, as a percentage of NormMax.
	DeadbandPct = 3

	// DeadbandNorm is DeadbandPct converted to normalized counts.
	DeadbandNorm = (DeadbandPct * NormMax) / 100
)

// Params carries the per-period configuration the pipeline needs. The caller
// owns it and rebuilds it from the active car profile every control period;
// the pipeline never mutates it.
type Params struct {
	MinRaw   int16
	MaxRaw   int16
	Reversed bool
	Deadband uint16

	MinSpeed   uint16
	MaxSpeed   uint16
	Vertex     Vertex
	AntiSpinMS uint16
}

// Helper function to constrain a value within min and max bounds.
func constrain[T constraints.Integer](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
