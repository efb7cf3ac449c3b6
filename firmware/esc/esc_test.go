package esc

import (
	"testing"
	"time"

	"github.com/slotware/espeed"
	"github.com/slotware/espeed/profile"
)

// --- fakes for the hardware collaborators ---

type fakeSensor struct {
	value int16
}

func (f *fakeSensor) ReadRaw() int16 { return f.value }

type motorCall struct {
	duty, drag uint16
}

type fakeMotor struct {
	calls []motorCall
}

func (f *fakeMotor) SetPWMDrag(duty, drag uint16) {
	f.calls = append(f.calls, motorCall{duty, drag})
}

func (f *fakeMotor) lastCall(t *testing.T) motorCall {
	t.Helper()
	if len(f.calls) == 0 {
		t.Fatal("motor never commanded")
	}
	return f.calls[len(f.calls)-1]
}

func calibratedStore(t *testing.T) *profile.Store {
	t.Helper()
	s := profile.NewStore(nil)
	s.BeginCalibration()
	s.ObserveCalibration(0)
	s.ObserveCalibration(4095)
	if err := s.EndCalibration(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func testRunner(t *testing.T, store *profile.Store, sensor *fakeSensor, motor *fakeMotor, phase espeed.Phase) *Runner {
	t.Helper()
	return New(Config{
		Store:  store,
		Sensor: sensor,
		Motor:  motor,
		Phase:  func() espeed.Phase { return phase },
	})
}

func TestStepCommandsDuty(t *testing.T) {
	store := calibratedStore(t)
	store.Update(func(p *profile.Profile) { p.AntiSpin = 0 })
	sensor := &fakeSensor{value: 2048}
	motor := &fakeMotor{}
	r := testRunner(t, store, sensor, motor, espeed.PhaseRunning)

	now := time.Now()
	r.Step(now)
	r.Step(now.Add(Period))

	got := motor.lastCall(t)
	if got.duty != 60 {
		t.Errorf("duty: expected=60, got=%d", got.duty)
	}
	if got.drag != profile.DragBrakeDefault {
		t.Errorf("drag: expected=%d, got=%d", profile.DragBrakeDefault, got.drag)
	}
}

func TestStepReleasedTriggerBrakes(t *testing.T) {
	store := calibratedStore(t)
	sensor := &fakeSensor{value: 0}
	motor := &fakeMotor{}
	r := testRunner(t, store, sensor, motor, espeed.PhaseRunning)

	r.Step(time.Now())

	got := motor.lastCall(t)
	if got.duty != 0 {
		t.Errorf("released trigger must command zero duty, got=%d", got.duty)
	}
	if got.drag != profile.BrakeDefault {
		t.Errorf("brake: expected=%d, got=%d", profile.BrakeDefault, got.drag)
	}
}

func TestStepBrakeButtonReducesBrake(t *testing.T) {
	store := calibratedStore(t)
	sensor := &fakeSensor{value: 0}
	motor := &fakeMotor{}
	r := New(Config{
		Store:       store,
		Sensor:      sensor,
		Motor:       motor,
		Phase:       func() espeed.Phase { return espeed.PhaseRunning },
		BrakeButton: func() bool { return true },
	})

	r.Step(time.Now())

	// default brake 95 reduced by 50% -> 47
	want := uint16(profile.BrakeDefault * (100 - profile.BrakeButtonReductionDefault) / 100)
	if got := motor.lastCall(t); got.drag != want {
		t.Errorf("reduced brake: expected=%d, got=%d", want, got.drag)
	}
}

func TestStepSuppressedOutsideRunning(t *testing.T) {
	store := calibratedStore(t)
	sensor := &fakeSensor{value: 2048}
	motor := &fakeMotor{}

	for _, phase := range []espeed.Phase{espeed.PhaseInit, espeed.PhaseWelcome} {
		r := testRunner(t, store, sensor, motor, phase)
		r.Step(time.Now())
		if len(motor.calls) != 0 {
			t.Errorf("phase %v: motor commanded while output suppressed", phase)
		}
		// the pipeline still runs so telemetry stays live
		if r.Latest().Norm == 0 {
			t.Errorf("phase %v: pipeline did not process sample", phase)
		}
	}
}

func TestStepCalibrationCollectsBounds(t *testing.T) {
	store := profile.NewStore(nil)
	sensor := &fakeSensor{}
	motor := &fakeMotor{}
	r := testRunner(t, store, sensor, motor, espeed.PhaseCalibration)

	store.BeginCalibration()
	now := time.Now()
	for _, raw := range []int16{500, 100, 3800, 2000} {
		sensor.value = raw
		now = now.Add(Period)
		r.Step(now)
	}
	if err := store.EndCalibration(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := store.Calibration()
	if got.MinRaw != 100 || got.MaxRaw != 3800 {
		t.Errorf("bounds: expected=(100, 3800), got=(%d, %d)", got.MinRaw, got.MaxRaw)
	}
	if len(motor.calls) != 0 {
		t.Error("motor commanded during calibration")
	}
}

func TestAntiSpinRampAcrossSteps(t *testing.T) {
	store := calibratedStore(t)
	store.Update(func(p *profile.Profile) { p.AntiSpin = 100 })
	sensor := &fakeSensor{value: 0}
	motor := &fakeMotor{}
	r := testRunner(t, store, sensor, motor, espeed.PhaseRunning)

	now := time.Now()
	r.Step(now) // released: ramp memory consistent with a released trigger

	// slam the trigger: output must climb over multiple periods, not jump
	sensor.value = 4095
	var prev uint16
	sawIntermediate := false
	for i := 0; i < 400; i++ {
		now = now.Add(Period)
		r.Step(now)
		duty := motor.lastCall(t).duty
		if duty < prev {
			t.Fatalf("ramp went backwards: %d -> %d", prev, duty)
		}
		if duty > 0 && duty < 100 {
			sawIntermediate = true
		}
		prev = duty
	}
	if !sawIntermediate {
		t.Error("duty jumped straight to full, anti-spin did not ramp")
	}
	if prev != 100 {
		t.Errorf("ramp never completed: final duty=%d", prev)
	}
}
