//go:build tinygo

// Package hal contains the board-level hardware access: trigger sensors,
// analog measurements and the buzzer. Everything here is ESP32-specific and
// only builds under TinyGo.
package hal

import (
	"errors"
	"machine"
	"math"
)

// TLE493D I2C configuration (A3 variant).
const (
	tle493dAddr       = 0x44
	tle493dMod1Reg    = 0x11
	tle493dMod1Config = 0b11110111 // 7-byte read mode, fast mode, low power off
)

// AS5600 raw angle register.
const (
	as5600Addr         = 0x36
	as5600RawAngleReg  = 0x0C
	as5600RawAngleMask = 0x0FFF
)

// TLE493D reads the trigger position from an Infineon TLE493D-W2B6 magnetic
// sensor. The magnet sits on the trigger axle, so the field angle in the x/y
// plane tracks the trigger. Full press corresponds to the maximum reading
// (not reversed).
type TLE493D struct {
	bus *machine.I2C

	// running averages of the field components, (avg*3 + sample) / 4
	xAvg int16
	yAvg int16
}

// NewTLE493D configures the sensor for 7-byte fast reads.
func NewTLE493D(bus *machine.I2C) (*TLE493D, error) {
	err := bus.Tx(tle493dAddr, []byte{tle493dMod1Reg, tle493dMod1Config}, nil)
	if err != nil {
		return nil, errors.New("tle493d: config write failed: " + err.Error())
	}
	return &TLE493D{bus: bus}, nil
}

// ReadRaw returns the field angle in tenths of a degree (0..3599).
func (s *TLE493D) ReadRaw() int16 {
	var data [7]byte
	if err := s.bus.Tx(tle493dAddr, nil, data[:]); err != nil {
		// a failed read behaves like a stuck sensor: repeat the last
		// filtered position instead of spiking to zero
		return s.angle()
	}

	x := int16(data[0])<<4 | int16(data[4])>>4
	if x >= 2048 {
		x -= 4096
	}
	y := int16(data[1])<<4 | int16(data[4]&0x0F)
	if y >= 2048 {
		y -= 4096
	}

	s.xAvg = (s.xAvg*3 + x) / 4
	s.yAvg = (s.yAvg*3 + y) / 4

	return s.angle()
}

func (s *TLE493D) angle() int16 {
	deg := math.Atan2(float64(s.yAvg), float64(s.xAvg)) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return int16(deg * 10)
}

// AS5600 reads the raw 12-bit angle from an AS5600 magnetic encoder. These
// sensors mount so that full press is the minimum reading, so the pipeline
// runs with Reversed set.
type AS5600 struct {
	bus  *machine.I2C
	addr uint16
}

func NewAS5600(bus *machine.I2C) *AS5600 {
	return &AS5600{bus: bus, addr: as5600Addr}
}

// ReadRaw returns the raw angle, 0..4095.
func (s *AS5600) ReadRaw() int16 {
	var data [2]byte
	if err := s.bus.Tx(s.addr, []byte{as5600RawAngleReg}, data[:]); err != nil {
		return 0
	}
	return int16((uint16(data[0])<<8 | uint16(data[1])) & as5600RawAngleMask)
}

// AnalogTrigger reads a plain potentiometer trigger through the ADC.
type AnalogTrigger struct {
	adc machine.ADC
}

func NewAnalogTrigger(pin machine.Pin) *AnalogTrigger {
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return &AnalogTrigger{adc: adc}
}

// ReadRaw returns the pot position scaled to the 12-bit range of the other
// sensors.
func (s *AnalogTrigger) ReadRaw() int16 {
	return int16(s.adc.Get() >> 4)
}
