//go:build tinygo

// Package device ties the firmware pieces together: it owns the top-level
// phase, implements the serial command surface, and publishes telemetry.
package device

import (
	"encoding/json"
	"errors"
	"machine"
	"time"

	"github.com/slotware/espeed"
	"github.com/slotware/espeed/firmware/esc"
	"github.com/slotware/espeed/firmware/hal"
	"github.com/slotware/espeed/firmware/halfbridge"
	"github.com/slotware/espeed/profile"
)

// Device is the running ESC. It is shared between the command loop, the menu
// and the telemetry goroutine; the control loop only sees it through the
// esc.Runner callbacks.
type Device struct {
	store  *profile.Store
	runner *esc.Runner
	bridge *halfbridge.Device

	vin     *hal.VoltageDivider
	current *hal.CurrentSense

	// phase is written by the UI context only; the control context reads it
	// through the Phase callback every period
	phase espeed.Phase

	verbose bool
}

// New assembles the device around its hardware collaborators. The runner is
// created here so the phase callback stays internal.
func New(store *profile.Store, sensor esc.TriggerSource, reversed bool, bridge *halfbridge.Device, vin *hal.VoltageDivider, current *hal.CurrentSense, brakeButton func() bool) *Device {
	d := &Device{
		store:   store,
		bridge:  bridge,
		vin:     vin,
		current: current,
		phase:   espeed.PhaseInit,
	}
	d.runner = esc.New(esc.Config{
		Store:       store,
		Sensor:      sensor,
		Motor:       bridge,
		Reversed:    reversed,
		Phase:       d.Phase,
		BrakeButton: brakeButton,
	})
	return d
}

// Runner exposes the control loop for the main goroutine to start.
func (d *Device) Runner() *esc.Runner {
	return d.runner
}

// Phase returns the current top-level state.
func (d *Device) Phase() espeed.Phase {
	return d.phase
}

// SetPhase moves the top-level state machine.
func (d *Device) SetPhase(p espeed.Phase) {
	if d.verbose {
		println("phase:", p.String())
	}
	d.phase = p
}

// SelectCar switches the active car profile. Car numbers on the wire are
// 1-based.
func (d *Device) SelectCar(n int) error {
	if err := d.store.Select(n - 1); err != nil {
		return err
	}
	d.bridge.SetFrequency(d.store.Active().FreqPWM)
	println("car:", n, d.store.Active().Name)
	return nil
}

// SetParam updates one field of the active profile. The parameter letters
// match the serial protocol.
func (d *Device) SetParam(param byte, value uint16) error {
	var apply func(*profile.Profile)
	switch param {
	case 'm':
		apply = func(p *profile.Profile) { p.MinSpeed = value }
	case 'b':
		apply = func(p *profile.Profile) { p.Brake = value }
	case 'd':
		apply = func(p *profile.Profile) { p.DragBrake = value }
	case 'x':
		apply = func(p *profile.Profile) { p.MaxSpeed = value }
	case 'i':
		apply = func(p *profile.Profile) { p.Vertex.InputThrottle = value }
	case 'c':
		apply = func(p *profile.Profile) { p.Vertex.SpeedDiff = value }
	case 'a':
		apply = func(p *profile.Profile) { p.AntiSpin = value }
	case 'f':
		apply = func(p *profile.Profile) { p.FreqPWM = value }
	case 'r':
		apply = func(p *profile.Profile) { p.BrakeButtonReduction = value }
	default:
		return errors.New("unknown parameter: " + string(param))
	}

	d.store.Update(apply)
	if param == 'f' {
		d.bridge.SetFrequency(d.store.Active().FreqPWM)
	}
	if d.verbose {
		println("set:", string(param), "=", int(d.paramValue(param)))
	}
	return nil
}

func (d *Device) paramValue(param byte) uint16 {
	p := d.store.Active()
	switch param {
	case 'm':
		return p.MinSpeed
	case 'b':
		return p.Brake
	case 'd':
		return p.DragBrake
	case 'x':
		return p.MaxSpeed
	case 'i':
		return p.Vertex.InputThrottle
	case 'c':
		return p.Vertex.SpeedDiff
	case 'a':
		return p.AntiSpin
	case 'f':
		return p.FreqPWM
	case 'r':
		return p.BrakeButtonReduction
	}
	return 0
}

// DumpProfile prints the active profile in the order the host tools expect.
func (d *Device) DumpProfile() {
	p := d.store.Active()
	println("car", p.Number+1, p.Name)
	println("  minSpeed", p.MinSpeed)
	println("  brake", p.Brake)
	println("  dragBrake", p.DragBrake)
	println("  maxSpeed", p.MaxSpeed)
	println("  curve", p.Vertex.InputThrottle, p.Vertex.SpeedDiff)
	println("  antiSpin", p.AntiSpin)
	println("  freqPWM", p.FreqPWM)
	println("  brakeButtonReduction", p.BrakeButtonReduction)
}

// Backup writes the full settings as one JSON document followed by the
// termination byte, so the host can read until EOT.
func (d *Device) Backup() error {
	blob, err := json.Marshal(d.store.Settings())
	if err != nil {
		return errors.New("backup: " + err.Error())
	}
	for _, b := range blob {
		if err := d.WriteByte(b); err != nil {
			return err
		}
	}
	return d.WriteByte(espeed.TerminationChar)
}

// StartCalibration suspends drive output and begins collecting trigger
// bounds.
func (d *Device) StartCalibration() {
	d.store.BeginCalibration()
	d.SetPhase(espeed.PhaseCalibration)
	println("calibration: sweep the trigger, then send E")
}

// EndCalibration persists the captured range and resumes running. A
// degenerate sweep keeps the previous bounds but still leaves calibration.
func (d *Device) EndCalibration() error {
	err := d.store.EndCalibration()
	d.SetPhase(espeed.PhaseRunning)
	return err
}

// Save persists all settings to flash.
func (d *Device) Save() error {
	return d.store.Save()
}

// Debug prints the current state of the control loop.
func (d *Device) Debug() {
	s := d.runner.Latest()
	println("phase:", d.phase.String())
	println("trigger:", s.Raw, "norm:", s.Norm, "duty:", s.Duty)
	println("vin_mV:", d.vin.ReadMillivolts(), "motor_mA:", d.current.ReadMilliamps())
}

// Verbose enables per-command logging.
func (d *Device) Verbose() {
	d.verbose = true
	println("verbose on")
}

// EmitTelemetry periodically prints one telemetry line while running. Meant
// to run in its own goroutine.
func (d *Device) EmitTelemetry(interval time.Duration) {
	for {
		time.Sleep(interval)
		if d.phase != espeed.PhaseRunning {
			continue
		}
		s := d.runner.Latest()
		println("T", s.Raw, s.Norm, s.Duty, d.vin.ReadMillivolts(), d.current.ReadMilliamps())
	}
}

func (d *Device) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}

func (d *Device) WriteByte(b byte) error {
	return machine.Serial.WriteByte(b)
}
