//go:build tinygo

package device

import "machine"

// BoardConfig is the pin assignment for one hardware revision. The values
// live in firmware/main.go so a board respin only touches one place.
type BoardConfig struct {
	// trigger sensor bus
	SensorSDA machine.Pin
	SensorSCL machine.Pin

	// display bus
	DisplaySDA machine.Pin
	DisplaySCL machine.Pin

	// rotary encoder
	EncoderA      machine.Pin
	EncoderB      machine.Pin
	EncoderButton machine.Pin

	// half-bridge pair
	BridgeDrive   machine.Pin
	BridgeBrake   machine.Pin
	BridgeInhibit machine.Pin

	// analog measurements
	VinSense     machine.Pin
	CurrentSense machine.Pin

	BrakeButton machine.Pin
	Buzzer      machine.Pin
}
