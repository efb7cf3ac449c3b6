package throttle

import "testing"

func TestNormalizeBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		raw      int16
		minIn    int16
		maxIn    int16
		reversed bool
		expected uint16
	}{
		{"AtMin", 0, 0, 4095, false, 0},
		{"AtMax", 4095, 0, 4095, false, NormMax},
		{"MidRange", 2048, 0, 4095, false, 128},
		{"BelowMinClamped", -500, 0, 4095, false, 0},
		{"AboveMaxClamped", 5000, 0, 4095, false, NormMax},
		{"NegativeBounds", -100, -100, 100, false, 0},
		{"ReversedAtMin", 0, 0, 4095, true, NormMax},
		{"ReversedAtMax", 4095, 0, 4095, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.minIn, tt.maxIn, NormMax, tt.reversed)
			if got != tt.expected {
				t.Errorf("expected=%d, got=%d", tt.expected, got)
			}
		})
	}
}

func TestNormalizeDegenerateBounds(t *testing.T) {
	// uncalibrated trigger: minIn == maxIn must not divide by zero
	for _, raw := range []int16{-100, 0, 5, 100} {
		if got := Normalize(raw, 5, 5, NormMax, false); got != 0 {
			t.Errorf("raw=%d: expected=0, got=%d", raw, got)
		}
	}
}

func TestAddDeadBandExtremes(t *testing.T) {
	const d = DeadbandNorm

	if got := AddDeadBand(0, 0, NormMax, d); got != 0 {
		t.Errorf("min input: expected=0, got=%d", got)
	}
	if got := AddDeadBand(NormMax, 0, NormMax, d); got != NormMax {
		t.Errorf("max input: expected=%d, got=%d", NormMax, got)
	}
	if got := AddDeadBand(d-1, 0, NormMax, d); got != 0 {
		t.Errorf("inside low band: expected=0, got=%d", got)
	}
	if got := AddDeadBand(NormMax-d+1, 0, NormMax, d); got != NormMax {
		t.Errorf("inside high band: expected=%d, got=%d", NormMax, got)
	}
}

func TestAddDeadBandInteriorRescale(t *testing.T) {
	// (value-d)*max/(max-2d): mid-range input stays mid-range
	if got := AddDeadBand(128, 0, 256, 8); got != 128 {
		t.Errorf("expected=128, got=%d", got)
	}
}

func TestAddDeadBandDegenerate(t *testing.T) {
	// deadband so large the interior is empty: everything collapses onto a
	// boundary, nothing panics
	for v := uint16(0); v <= NormMax; v++ {
		got := AddDeadBand(v, 0, NormMax, NormMax/2)
		if got != 0 && got != NormMax {
			t.Errorf("value=%d: expected boundary, got=%d", v, got)
		}
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		prev, curr, expected int16
	}{
		{0, 0, 0},
		{100, 200, 150},
		{-100, 100, 0},
		{3, 4, 3}, // integer truncation
		{32767, 32767, 32767},
		{-32768, -32768, -32768},
	}

	for _, tt := range tests {
		if got := Average(tt.prev, tt.curr); got != tt.expected {
			t.Errorf("Average(%d, %d): expected=%d, got=%d", tt.prev, tt.curr, tt.expected, got)
		}
	}
}
