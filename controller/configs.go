package controller

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.bug.st/serial"

	"github.com/slotware/espeed/telemetry"
)

// SerialPortNone runs the controller without a connected ESC. Chart commands
// still work, which is useful for testing the session workflow.
const SerialPortNone = "none"

var ErrNoUSBSerial = errors.New("no USB serial ports found")

// Config collects everything needed to talk to the ESC and the chart server.
type Config struct {
	SerialPort string
	BaudRate   string

	// ChartAddr is the base address of the twchart server. Empty disables
	// session recording.
	ChartAddr   string
	SessionName string
	ProbesInput string
}

// NewFromEnv builds a Config from ESPEED_* environment variables.
func NewFromEnv() (Config, error) {
	cfg := Config{
		SerialPort:  os.Getenv("ESPEED_SERIAL_PORT"),
		BaudRate:    os.Getenv("ESPEED_BAUD_RATE"),
		ChartAddr:   os.Getenv("ESPEED_CHART_ADDR"),
		SessionName: os.Getenv("ESPEED_SESSION_NAME"),
		ProbesInput: os.Getenv("ESPEED_PROBES"),
	}

	if cfg.BaudRate == "" {
		cfg.BaudRate = "115200"
	}
	if cfg.ProbesInput == "" {
		cfg.ProbesInput = telemetry.DefaultProbes
	}

	if cfg.SerialPort == "" {
		ports, err := GetSerialPorts()
		if err != nil {
			return Config{}, fmt.Errorf("error finding serial port: %w", err)
		}
		cfg.SerialPort = ports[0]
	}

	return cfg, nil
}

// GetSerialPorts lists the USB serial ports on this machine.
func GetSerialPorts() ([]string, error) {
	all, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	var ports []string
	for _, p := range all {
		if strings.Contains(strings.ToLower(p), "usb") {
			ports = append(ports, p)
		}
	}
	if len(ports) == 0 {
		return nil, ErrNoUSBSerial
	}
	return ports, nil
}
