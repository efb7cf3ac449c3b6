// Package esc drives the periodic control context: once every Period it
// pulls one raw trigger sample through the throttle pipeline and commands
// the motor driver. It owns the pipeline state exclusively; the UI context
// only talks to it through the profile store and the phase callback.
package esc

import (
	"time"

	"github.com/slotware/espeed"
	"github.com/slotware/espeed/profile"
	"github.com/slotware/espeed/throttle"
)

// Period is the control loop period (ESC_PERIOD_US).
const Period = 500 * time.Microsecond

// TriggerSource is a blocking, bounded-latency read of the current trigger
// position. Scale and sign are sensor-dependent; the Reversed flag reconciles
// polarity.
type TriggerSource interface {
	ReadRaw() int16
}

// Motor receives the final duty cycle and drag/brake percentage. Exactly one
// of the two is non-zero per call.
type Motor interface {
	SetPWMDrag(dutyPct, dragPct uint16)
}

// Config wires the runner's collaborators.
type Config struct {
	Store    *profile.Store
	Sensor   TriggerSource
	Motor    Motor
	Reversed bool

	// Phase tells the runner whether output should be suppressed
	// (calibration/init) or emitted (running).
	Phase func() espeed.Phase

	// BrakeButton reports whether the secondary brake button is held.
	// Optional.
	BrakeButton func() bool
}

// Runner is the control context. Create one, then call Run in a dedicated
// goroutine; it never returns.
type Runner struct {
	cfg      Config
	pipeline throttle.Pipeline

	// last is the most recent sample, published for telemetry and the
	// debug command. Guarded by the store-free rule: only Step writes it,
	// readers get a copy via Latest.
	last throttle.Sample
}

func New(cfg Config) *Runner {
	return &Runner{cfg: cfg}
}

// Run executes the periodic loop. Each pass waits out the remainder of the
// period and then samples once. There is no catch-up: a late pass simply
// pushes the next deadline out, silently lowering the effective rate instead
// of bursting.
func (r *Runner) Run() {
	for {
		start := time.Now()
		r.Step(start)
		if d := Period - time.Since(start); d > 0 {
			time.Sleep(d)
		}
	}
}

// Step performs exactly one control period: read, filter, normalize, shape,
// curve, limit, emit. Split out from Run so it can be exercised without the
// timing loop.
func (r *Runner) Step(now time.Time) {
	raw := r.cfg.Sensor.ReadRaw()
	phase := r.cfg.Phase()

	if phase == espeed.PhaseCalibration {
		// calibration only collects bounds; output stays suppressed and
		// stale pipeline state must not survive into the next run
		r.cfg.Store.ObserveCalibration(raw)
		r.pipeline.Reset()
		r.last = throttle.Sample{Raw: raw}
		return
	}

	prm := r.cfg.Store.ControlParams(r.cfg.Reversed)
	s := r.pipeline.Process(raw, prm, now)
	r.last = s

	if phase != espeed.PhaseRunning {
		return
	}

	p := r.cfg.Store.Active()
	if s.Released() {
		r.cfg.Motor.SetPWMDrag(0, p.BrakeStrength(r.brakeButtonHeld()))
		return
	}
	r.cfg.Motor.SetPWMDrag(s.Duty, p.DragBrake)
}

// Latest returns the most recent pipeline sample. Readers get a copy; the
// sample fields are word-sized so a torn read is at worst one period stale.
func (r *Runner) Latest() throttle.Sample {
	return r.last
}

func (r *Runner) brakeButtonHeld() bool {
	return r.cfg.BrakeButton != nil && r.cfg.BrakeButton()
}
