// Package controller is the host-side counterpart of the ESC firmware. It
// owns the serial connection, forwards commands from an input stream, echoes
// device output, and records sessions on a twchart server.
package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/slotware/espeed"
	"github.com/slotware/espeed/profile"
	"github.com/slotware/espeed/telemetry"
)

// Telemetry is one decoded telemetry line from the firmware.
type Telemetry struct {
	Raw            int16
	Norm           uint16
	Duty           uint16
	VinMillivolts  uint16
	MotorMilliamps uint16
}

type Controller struct {
	cfg   Config
	port  io.ReadWriteCloser
	chart telemetryClient
}

// New opens the configured serial port. With SerialPortNone the controller
// runs detached, which still allows chart session commands.
func New(cfg Config) (*Controller, error) {
	c := &Controller{cfg: cfg, chart: noopTelemetryClient{}}

	if cfg.ChartAddr != "" {
		c.chart = telemetry.NewClient(cfg.ChartAddr)
	}

	if cfg.SerialPort == SerialPortNone {
		return c, nil
	}

	baud, err := strconv.Atoi(cfg.BaudRate)
	if err != nil {
		return nil, fmt.Errorf("invalid baud rate %q: %w", cfg.BaudRate, err)
	}

	port, err := serial.Open(cfg.SerialPort, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", cfg.SerialPort, err)
	}
	c.port = port

	return c, nil
}

func (c *Controller) Close() error {
	if c.port == nil {
		return nil
	}
	return c.port.Close()
}

// Run forwards lines from in to the ESC and device output to out, until ctx
// is canceled or in is exhausted. Lines starting with an uppercase chart
// keyword (LAP, STAGE, NOTE, DONE) go to the session recorder instead of the
// device.
func (c *Controller) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if c.cfg.SessionName != "" {
		probes, err := telemetry.ParseProbes(c.cfg.ProbesInput)
		if err != nil {
			return fmt.Errorf("error parsing probes: %w", err)
		}
		_, err = c.chart.CreateSession(ctx, c.cfg.SessionName, probes)
		if err != nil {
			return fmt.Errorf("error creating session: %w", err)
		}
		err = c.chart.SetStartTime(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("error setting start time: %w", err)
		}
	}

	done := make(chan error, 2)
	workers := 1

	go func() {
		done <- c.forwardInput(ctx, in)
	}()
	if c.port != nil {
		workers++
		go func() {
			done <- c.echoDevice(out)
		}()
	}

	select {
	case <-ctx.Done():
		c.Close()
		return nil
	case err := <-done:
		// closing the port unblocks whichever goroutine is still reading
		c.Close()
		for i := 1; i < workers; i++ {
			<-done
		}
		return err
	}
}

func (c *Controller) forwardInput(ctx context.Context, in io.Reader) error {
	laps := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "LAP":
			laps++
			if err := c.chart.AddStage(ctx, "Lap "+strconv.Itoa(laps), time.Now()); err != nil {
				return fmt.Errorf("error adding lap: %w", err)
			}
		case strings.HasPrefix(line, "STAGE "):
			if err := c.chart.AddStage(ctx, strings.TrimPrefix(line, "STAGE "), time.Now()); err != nil {
				return fmt.Errorf("error adding stage: %w", err)
			}
		case strings.HasPrefix(line, "NOTE "):
			if err := c.chart.AddEvent(ctx, strings.TrimPrefix(line, "NOTE "), time.Now()); err != nil {
				return fmt.Errorf("error adding event: %w", err)
			}
		case line == "DONE":
			if err := c.chart.Done(ctx); err != nil {
				return fmt.Errorf("error finishing session: %w", err)
			}
		default:
			if c.port == nil {
				continue
			}
			if _, err := c.port.Write([]byte(line + "\n")); err != nil {
				return fmt.Errorf("error writing serial: %w", err)
			}
		}
	}
	return scanner.Err()
}

func (c *Controller) echoDevice(out io.Writer) error {
	scanner := bufio.NewScanner(c.port)
	for scanner.Scan() {
		fmt.Fprintln(out, scanner.Text())
	}
	return scanner.Err()
}

// ParseTelemetry decodes one "T raw norm duty vin ma" line. The second return
// is false for anything that is not a telemetry line.
func ParseTelemetry(line string) (Telemetry, bool) {
	fields := strings.Fields(line)
	if len(fields) != 6 || fields[0] != string(espeed.TelemetryPrefix) {
		return Telemetry{}, false
	}

	values := make([]int64, 5)
	for i, f := range fields[1:] {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return Telemetry{}, false
		}
		values[i] = v
	}

	return Telemetry{
		Raw:            int16(values[0]),
		Norm:           uint16(values[1]),
		Duty:           uint16(values[2]),
		VinMillivolts:  uint16(values[3]),
		MotorMilliamps: uint16(values[4]),
	}, true
}

// ReadBackup requests the full settings dump over serial and decodes it. Not
// safe to call while Run owns the port.
func (c *Controller) ReadBackup(ctx context.Context) (profile.Settings, error) {
	if c.port == nil {
		return profile.Settings{}, fmt.Errorf("no serial port configured")
	}

	if _, err := c.port.Write([]byte{'B'}); err != nil {
		return profile.Settings{}, fmt.Errorf("error requesting backup: %w", err)
	}

	reader := bufio.NewReader(c.port)
	blob, err := reader.ReadBytes(espeed.TerminationChar)
	if err != nil {
		return profile.Settings{}, fmt.Errorf("error reading backup: %w", err)
	}
	blob = blob[:len(blob)-1]

	// the device may echo command output before the JSON document starts
	if i := strings.IndexByte(string(blob), '{'); i > 0 {
		blob = blob[i:]
	}

	var settings profile.Settings
	if err := json.Unmarshal(blob, &settings); err != nil {
		return profile.Settings{}, fmt.Errorf("error decoding backup: %w", err)
	}
	if ctx.Err() != nil {
		return profile.Settings{}, ctx.Err()
	}
	return settings, nil
}
