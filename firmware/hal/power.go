//go:build tinygo

package hal

import "machine"

// ADC scaling. The reference is calibrated against a known input: a 1200 mV
// source reads back as 1108, so the nominal 3300 mV range is widened
// accordingly.
const (
	adcResolutionSteps = 4095
	vinCalSet          = 1200
	vinCalRead         = 1108
	adcRangeMillivolts = (3300 * vinCalSet) / vinCalRead
)

// VIN divider resistors.
const (
	rvinLower = 2200  // [Ohm]
	rvinUpper = 10000 // [Ohm]
)

// BTN9960LV current sense: IS -> 2.2k -> GND, IS -> 2.2k -> ADC, kILIS ~8500.
// The divider halves the sense voltage, so ILOAD [mA] = V_ADC [mV] * 7.752.
const currentScaleMilli = 7752

// VoltageDivider measures a supply rail through a resistor divider.
type VoltageDivider struct {
	adc          machine.ADC
	lower, upper uint32
}

func NewVoltageDivider(pin machine.Pin, lower, upper uint32) *VoltageDivider {
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return &VoltageDivider{adc: adc, lower: lower, upper: upper}
}

// NewVinDivider returns the divider for the main supply input.
func NewVinDivider(pin machine.Pin) *VoltageDivider {
	return NewVoltageDivider(pin, rvinLower, rvinUpper)
}

// ReadMillivolts returns the voltage applied to the divider input.
func (v *VoltageDivider) ReadMillivolts() uint16 {
	raw := uint32(v.adc.Get() >> 4)
	mv := (adcRangeMillivolts * raw) / adcResolutionSteps
	mv = (mv * (v.lower + v.upper)) / v.lower
	return uint16(mv)
}

// CurrentSense measures the motor current from the half-bridge IS pin.
type CurrentSense struct {
	adc machine.ADC
}

func NewCurrentSense(pin machine.Pin) *CurrentSense {
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return &CurrentSense{adc: adc}
}

// ReadMilliamps returns the motor load current.
func (c *CurrentSense) ReadMilliamps() uint16 {
	raw := uint32(c.adc.Get() >> 4)
	mv := (adcRangeMillivolts * raw) / adcResolutionSteps
	return uint16((mv * currentScaleMilli) / 1000)
}
