package throttle

import (
	"testing"
	"time"
)

const testPeriod = 500 * time.Microsecond

func testParams(antiSpinMS uint16) Params {
	return Params{
		MinSpeed:   20,
		MaxSpeed:   100,
		AntiSpinMS: antiSpinMS,
	}
}

func TestStartThreshold(t *testing.T) {
	tests := []struct {
		antiSpinMS uint16
		expected   uint16
	}{
		{0, AntiSpinStartMax},
		{AntiSpinMax, AntiSpinStartMin},
		{128, 48}, // 65 - 35*128/255
	}
	for _, tt := range tests {
		if got := StartThreshold(tt.antiSpinMS); got != tt.expected {
			t.Errorf("antiSpin=%d: expected=%d, got=%d", tt.antiSpinMS, tt.expected, got)
		}
	}
}

func TestLimiterDisabledPassesThroughAndParksRamp(t *testing.T) {
	var l Limiter
	now := time.Now()

	p := testParams(0)
	if got := l.Limit(100, p, now); got != 100 {
		t.Errorf("expected passthrough 100, got=%d", got)
	}
	if l.Output() != int32(p.MinSpeed)*1000 {
		t.Errorf("expected ramp parked at %d, got=%d", int32(p.MinSpeed)*1000, l.Output())
	}

	// zero request behaves the same way
	if got := l.Limit(0, p, now.Add(testPeriod)); got != 0 {
		t.Errorf("expected passthrough 0, got=%d", got)
	}
}

func TestLimiterBypassBelowThreshold(t *testing.T) {
	var l Limiter
	now := time.Now()
	p := testParams(100)

	start := StartThreshold(p.AntiSpinMS)
	if got := l.Limit(start-1, p, now); got != start-1 {
		t.Errorf("expected passthrough %d, got=%d", start-1, got)
	}
	if l.Output() != int32(start-1)*1000 {
		t.Errorf("ramp memory not tracking bypass: got=%d", l.Output())
	}
}

func TestLimiterInstantDeceleration(t *testing.T) {
	var l Limiter
	now := time.Now()
	p := testParams(200)

	// ramp well above the bypass threshold first
	for i := 0; i < 300; i++ {
		now = now.Add(testPeriod)
		l.Limit(p.MaxSpeed, p, now)
	}
	start := StartThreshold(p.AntiSpinMS)
	high := l.Output()
	if high <= int32(start)*1000 {
		t.Fatalf("ramp did not clear the bypass threshold: %d", high)
	}

	// a lower request above the threshold passes through on the same call
	now = now.Add(testPeriod)
	if got := l.Limit(start+2, p, now); got != start+2 {
		t.Errorf("deceleration delayed: expected=%d, got=%d", start+2, got)
	}
	if l.Output() != int32(start+2)*1000 {
		t.Errorf("ramp memory should follow deceleration: got=%d", l.Output())
	}

	// dropping all the way to the floor is also immediate
	now = now.Add(testPeriod)
	if got := l.Limit(p.MinSpeed, p, now); got != p.MinSpeed {
		t.Errorf("full release delayed: expected=%d, got=%d", p.MinSpeed, got)
	}
}

func TestLimiterBoundedRamp(t *testing.T) {
	var l Limiter
	p := testParams(100)

	now := time.Now()
	l.Limit(0, p, now) // establish timing reference with a released trigger

	elapsed := time.Duration(0)
	var reachedAfter time.Duration
	for elapsed < time.Second {
		now = now.Add(testPeriod)
		elapsed += testPeriod
		got := l.Limit(p.MaxSpeed, p, now)
		if got > p.MaxSpeed {
			t.Fatalf("output exceeded maxSpeed: %d", got)
		}
		if got == p.MaxSpeed {
			reachedAfter = elapsed
			break
		}
	}

	if reachedAfter == 0 {
		t.Fatal("never reached maxSpeed")
	}

	// ramp time is defined over the base..max span, so full speed can never
	// arrive faster than the configured ramp time (minus one period of
	// slack)
	minExpected := time.Duration(p.AntiSpinMS)*time.Millisecond - testPeriod
	if reachedAfter < minExpected {
		t.Errorf("ramp too fast: reached maxSpeed after %v, expected >= %v", reachedAfter, minExpected)
	}
}

func TestLimiterRampStartsFromFloor(t *testing.T) {
	var l Limiter
	p := testParams(100)

	now := time.Now()
	l.Limit(0, p, now) // released: ramp memory at 0

	// first accelerating call must come out at least at minSpeed
	now = now.Add(testPeriod)
	got := l.Limit(p.MaxSpeed, p, now)
	if got < p.MinSpeed {
		t.Errorf("ramp started below minSpeed floor: got=%d", got)
	}
}

func TestLimiterHoldIsStable(t *testing.T) {
	var l Limiter
	p := testParams(50)
	now := time.Now()

	// settle at a duty above the threshold
	target := uint16(80)
	for i := 0; i < 2000; i++ {
		now = now.Add(testPeriod)
		l.Limit(target, p, now)
	}

	for i := 0; i < 10; i++ {
		now = now.Add(testPeriod)
		if got := l.Limit(target, p, now); got != target {
			t.Fatalf("hold drifted: expected=%d, got=%d", target, got)
		}
	}
}
