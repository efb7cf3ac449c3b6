//go:build tinygo

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/encoders"

	"github.com/slotware/espeed"
	"github.com/slotware/espeed/firmware/commands"
	"github.com/slotware/espeed/firmware/device"
	"github.com/slotware/espeed/firmware/hal"
	"github.com/slotware/espeed/firmware/halfbridge"
	"github.com/slotware/espeed/firmware/menu"
	"github.com/slotware/espeed/profile"
)

const telemetryInterval = 100 * time.Millisecond

func main() {
	board := device.BoardConfig{
		SensorSDA:     machine.GPIO21,
		SensorSCL:     machine.GPIO22,
		DisplaySDA:    machine.GPIO33,
		DisplaySCL:    machine.GPIO32,
		EncoderA:      machine.GPIO16,
		EncoderB:      machine.GPIO17,
		EncoderButton: machine.GPIO4,
		BridgeDrive:   machine.GPIO25,
		BridgeBrake:   machine.GPIO26,
		BridgeInhibit: machine.GPIO27,
		VinSense:      machine.GPIO34,
		CurrentSense:  machine.GPIO35,
		BrakeButton:   machine.GPIO13,
		Buzzer:        machine.GPIO18,
	}

	err := machine.I2C0.Configure(machine.I2CConfig{
		SDA:       board.SensorSDA,
		SCL:       board.SensorSCL,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		panic(err)
	}
	err = machine.I2C1.Configure(machine.I2CConfig{
		SDA:       board.DisplaySDA,
		SCL:       board.DisplaySCL,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		panic(err)
	}
	machine.InitADC()

	store := profile.NewStore(device.FlashPersister{})

	sensor, err := hal.NewTLE493D(machine.I2C0)
	if err != nil {
		panic(err)
	}

	bridge, err := halfbridge.New(halfbridge.Config{
		PWM:     machine.PWM0,
		Drive:   board.BridgeDrive,
		Brake:   board.BridgeBrake,
		Inhibit: board.BridgeInhibit,
	})
	if err != nil {
		panic(err)
	}
	bridge.SetFrequency(store.Active().FreqPWM)

	buzzer, err := hal.NewBuzzer(machine.PWM1, board.Buzzer, store.SoundMode)
	if err != nil {
		panic(err)
	}

	board.BrakeButton.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	brakeHeld := func() bool { return !board.BrakeButton.Get() }

	d := device.New(
		store,
		sensor,
		false,
		bridge,
		hal.NewVinDivider(board.VinSense),
		hal.NewCurrentSense(board.CurrentSense),
		brakeHeld,
	)

	screen := menu.NewScreen(machine.I2C1)
	m := menu.New(screen, menu.Items(store, menu.Actions{
		Calibrate: func() {
			buzzer.Calibration()
			screen.ShowMessage("CALIBRATE")
			d.StartCalibration()
		},
		Save: func() {
			buzzer.Key()
			if err := d.Save(); err != nil {
				println("save failed:", err.Error())
			}
		},
	}))

	enc := encoders.NewQuadratureViaInterrupt(board.EncoderA, board.EncoderB)
	enc.Configure(encoders.QuadratureConfig{Precision: 4})
	board.EncoderButton.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	go d.Runner().Run()
	go commands.Run(d)
	go d.EmitTelemetry(telemetryInterval)

	buzzer.Boot()
	screen.ShowMessage("ESPEED")
	d.SetPhase(espeed.PhaseWelcome)
	time.Sleep(2 * time.Second)

	// a trigger that was never calibrated cannot produce output, so force a
	// calibration session on first boot
	if !store.Calibration().Valid() {
		buzzer.Calibration()
		screen.ShowMessage("CALIBRATE")
		d.StartCalibration()
	} else {
		d.SetPhase(espeed.PhaseRunning)
	}
	bridge.Enable()
	m.Home()

	uiLoop(d, m, enc, board.EncoderButton, buzzer, screen, store)
}

// uiLoop polls the encoder and feeds the menu. The encoder button doubles as
// the way out of calibration.
func uiLoop(d *device.Device, m *menu.Menu, enc *encoders.QuadratureDevice, button machine.Pin, buzzer *hal.Buzzer, screen *menu.Screen, store *profile.Store) {
	lastPos := enc.Position()
	buttonWas := false
	lastActivity := time.Now()
	asleep := false

	for {
		time.Sleep(10 * time.Millisecond)

		pos := enc.Position()
		delta := int(pos - lastPos)
		lastPos = pos

		pressed := !button.Get()
		clicked := pressed && !buttonWas
		buttonWas = pressed

		if delta == 0 && !clicked {
			timeout := store.ScreensaverTimeout()
			if !asleep && timeout > 0 && time.Since(lastActivity) > time.Duration(timeout)*time.Second {
				screen.Sleep()
				asleep = true
			}
			continue
		}
		lastActivity = time.Now()

		if asleep {
			// first input only wakes the screen
			asleep = false
			m.Home()
			continue
		}

		if d.Phase() == espeed.PhaseCalibration {
			if clicked {
				if err := d.EndCalibration(); err != nil {
					println("calibration:", err.Error())
				}
				buzzer.Key()
				m.Home()
			}
			continue
		}

		if delta != 0 {
			m.HandleRotation(delta)
		}
		if clicked {
			buzzer.Key()
			m.HandleClick()
		}
	}
}
