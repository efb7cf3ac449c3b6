package throttle

import "testing"

func TestCurveZeroCutoff(t *testing.T) {
	vertices := []Vertex{
		{InputThrottle: 128, SpeedDiff: 50},
		{InputThrottle: 64, SpeedDiff: 10},
		{InputThrottle: 200, SpeedDiff: 90},
	}
	for _, v := range vertices {
		if got := Curve(0, v, 20, 100); got != 0 {
			t.Errorf("vertex=%+v: expected=0, got=%d", v, got)
		}
	}
}

func TestCurveVertexValue(t *testing.T) {
	// vertexDuty = 20 + (100-20)*50/100 = 60
	v := Vertex{InputThrottle: 128, SpeedDiff: 50}
	if got := Curve(128, v, 20, 100); got != 60 {
		t.Errorf("expected=60, got=%d", got)
	}
}

func TestCurveEndpoints(t *testing.T) {
	v := Vertex{InputThrottle: 128, SpeedDiff: 50}

	// smallest nonzero input starts near the floor
	got := Curve(1, v, 20, 100)
	if got < 20 || got > 21 {
		t.Errorf("near-zero input: expected ~minSpeed, got=%d", got)
	}

	if got := Curve(NormMax, v, 20, 100); got != 100 {
		t.Errorf("full input: expected=100, got=%d", got)
	}
}

func TestCurveMonotonic(t *testing.T) {
	vertices := []Vertex{
		{InputThrottle: 128, SpeedDiff: 50},
		{InputThrottle: 32, SpeedDiff: 10},
		{InputThrottle: 224, SpeedDiff: 90},
	}
	for _, v := range vertices {
		prev := Curve(0, v, 20, 100)
		for in := uint16(1); in <= NormMax; in++ {
			got := Curve(in, v, 20, 100)
			if got < prev {
				t.Fatalf("vertex=%+v: curve not monotonic at input=%d: %d < %d", v, in, got, prev)
			}
			if got > 100 {
				t.Fatalf("vertex=%+v: curve exceeded maxSpeed at input=%d: %d", v, in, got)
			}
			prev = got
		}
	}
}

func TestVertexDutyValue(t *testing.T) {
	tests := []struct {
		speedDiff, minSpeed, maxSpeed, expected uint16
	}{
		{50, 20, 100, 60},
		{10, 20, 100, 28},
		{90, 20, 100, 92},
		{50, 0, 100, 50},
	}
	for _, tt := range tests {
		v := Vertex{InputThrottle: 128, SpeedDiff: tt.speedDiff}
		if got := v.DutyValue(tt.minSpeed, tt.maxSpeed); got != tt.expected {
			t.Errorf("speedDiff=%d: expected=%d, got=%d", tt.speedDiff, tt.expected, got)
		}
	}
}
