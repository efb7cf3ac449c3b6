//go:build tinygo

// Package halfbridge drives a BTN99x0 half-bridge pair: one bridge switches
// the motor supply (PWM duty = speed), the other shorts the motor for
// drag/brake during the off part of the cycle.
package halfbridge

import (
	"errors"
	"machine"
)

// PWM is the subset of machine.PWM the driver needs. Narrowed to an
// interface so the driver can be exercised off-target.
type PWM interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Set(channel uint8, value uint32)
	Top() uint32
	SetPeriod(period uint64) error
}

// Config selects the pins and the PWM peripheral driving them. Drive and
// Brake must sit on channels of the same PWM group so their duty cycles stay
// phase-aligned.
type Config struct {
	PWM     PWM
	Drive   machine.Pin // high-side bridge input
	Brake   machine.Pin // low-side bridge input (motor short)
	Inhibit machine.Pin // INH, enables both bridges
}

// Device is a configured half-bridge pair.
type Device struct {
	pwm     PWM
	drive   uint8
	brake   uint8
	inhibit machine.Pin
}

// New configures the PWM channels and the inhibit pin. The bridges start
// disabled; call Enable once the supply rail is stable.
func New(cfg Config) (*Device, error) {
	if cfg.PWM == nil {
		return nil, errors.New("halfbridge: no PWM peripheral")
	}
	err := cfg.PWM.Configure(machine.PWMConfig{Period: periodFromFreq(FreqDefault)})
	if err != nil {
		return nil, errors.New("halfbridge: PWM configure failed: " + err.Error())
	}
	drive, err := cfg.PWM.Channel(cfg.Drive)
	if err != nil {
		return nil, errors.New("halfbridge: drive channel: " + err.Error())
	}
	brake, err := cfg.PWM.Channel(cfg.Brake)
	if err != nil {
		return nil, errors.New("halfbridge: brake channel: " + err.Error())
	}

	cfg.Inhibit.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cfg.Inhibit.Low()

	d := &Device{pwm: cfg.PWM, drive: drive, brake: brake, inhibit: cfg.Inhibit}
	d.SetPWMDrag(0, 0)
	return d, nil
}

// FreqDefault is the PWM frequency in the profile's unit of 100 Hz steps:
// 30 means 3.0 kHz.
const FreqDefault = 30

func periodFromFreq(freq uint16) uint64 {
	hz := uint64(freq) * 100
	if hz == 0 {
		hz = FreqDefault * 100
	}
	return 1e9 / hz
}

// Enable switches the bridge outputs on.
func (d *Device) Enable() {
	d.inhibit.High()
}

// Disable forces both outputs off regardless of PWM state.
func (d *Device) Disable() {
	d.inhibit.Low()
}

// SetFrequency reprograms the PWM period from the profile value (10..50,
// i.e. 1.0 to 5.0 kHz). Duty settings survive the period change because Set
// works in fractions of Top.
func (d *Device) SetFrequency(freq uint16) error {
	return d.pwm.SetPeriod(periodFromFreq(freq))
}

// SetPWMDrag commands one cycle's worth of output. dutyPct drives the motor;
// dragPct shorts it during the remaining off-time. Both are percentages
// 0..100 and the drag portion is scaled into the off-time so duty+effective
// drag never overlap.
func (d *Device) SetPWMDrag(dutyPct, dragPct uint16) {
	if dutyPct > 100 {
		dutyPct = 100
	}
	if dragPct > 100 {
		dragPct = 100
	}

	top := d.pwm.Top()
	driveTicks := top * uint32(dutyPct) / 100

	// drag only acts in the off part of the cycle
	offTicks := top - driveTicks
	brakeTicks := offTicks * uint32(dragPct) / 100

	d.pwm.Set(d.drive, driveTicks)
	d.pwm.Set(d.brake, brakeTicks)
}
