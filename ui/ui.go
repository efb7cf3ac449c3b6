// Package ui is the desktop tuning app. It renders sliders for the active
// car's parameters and writes the matching serial commands to the controller,
// while device output streams back in through the io.Writer side.
package ui

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/slotware/espeed/controller"
	"github.com/slotware/espeed/firmware/commands"
	"github.com/slotware/espeed/profile"
)

type paramSlider struct {
	label    string
	param    byte
	min, max float64
	def      float64
}

// the sliders mirror the on-device menu
var paramSliders = []paramSlider{
	{"Min Speed", commands.ParamMinSpeed, 0, profile.MinSpeedMax, profile.MinSpeedDefault},
	{"Brake", commands.ParamBrake, 0, 100, profile.BrakeDefault},
	{"Drag Brake", commands.ParamDragBrake, 0, 100, profile.DragBrakeDefault},
	{"Max Speed", commands.ParamMaxSpeed, profile.MaxSpeedMin, 100, profile.MaxSpeedDefault},
	{"Anti-Spin", commands.ParamAntiSpin, 0, profile.AntiSpinLimit, profile.AntiSpinDefault},
	{"Curve", commands.ParamCurveSpeedDiff, profile.CurveSpeedDiffMin, profile.CurveSpeedDiffMax, profile.CurveSpeedDiffDefault},
	{"Brake Button", commands.ParamBrakeButton, 0, 100, profile.BrakeButtonReductionDefault},
}

func createSlider(cfg paramSlider, onSet func(float64)) *fyne.Container {
	valueLabel := widget.NewLabel(fmt.Sprintf("%.0f", cfg.def))

	slider := widget.NewSlider(cfg.min, cfg.max)
	slider.Step = 1
	slider.SetValue(cfg.def)
	slider.OnChanged = func(value float64) {
		valueLabel.SetText(fmt.Sprintf("%.0f", value))
	}
	slider.OnChangeEnded = onSet

	exactEntry := widget.NewEntry()
	exactEntry.OnSubmitted = func(s string) {
		exactEntry.SetText("")

		number, err := strconv.Atoi(s)
		if err != nil || float64(number) < cfg.min || float64(number) > cfg.max {
			fmt.Println("Invalid input. Please enter a number in range.")
			return
		}
		slider.SetValue(float64(number))
		onSet(float64(number))
	}

	setButton := widget.NewButton("Set", func() {
		exactEntry.OnSubmitted(exactEntry.Text)
	})

	container := container.NewVBox(
		container.NewGridWithColumns(3,
			widget.NewLabel(cfg.label),
			valueLabel,
			container.NewHBox(exactEntry, setButton),
		),
		slider,
	)

	return container
}

type TunerUI struct {
	mtx     sync.Mutex
	partial string

	logContent     *widget.Label
	telemetryLabel *widget.Label
}

func NewTunerUI() *TunerUI {
	return &TunerUI{
		logContent:     widget.NewLabel(""),
		telemetryLabel: widget.NewLabel("trigger: --  duty: --  vin: --"),
	}
}

// Write receives the controller's output stream. Telemetry lines update the
// live readout; everything else goes to the log.
func (ui *TunerUI) Write(p []byte) (int, error) {
	ui.mtx.Lock()
	ui.partial += string(p)
	var lines []string
	for {
		i := strings.IndexByte(ui.partial, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, strings.TrimRight(ui.partial[:i], "\r"))
		ui.partial = ui.partial[i+1:]
	}
	ui.mtx.Unlock()

	for _, line := range lines {
		if line == "" {
			continue
		}
		if t, ok := controller.ParseTelemetry(line); ok {
			ui.showTelemetry(t)
			continue
		}
		ui.appendLog(line)
	}
	return len(p), nil
}

func (ui *TunerUI) showTelemetry(t controller.Telemetry) {
	text := fmt.Sprintf("trigger: %d  duty: %d%%  vin: %.2fV  motor: %.1fA",
		t.Norm, t.Duty, float64(t.VinMillivolts)/1000, float64(t.MotorMilliamps)/1000)
	fyne.Do(func() {
		ui.telemetryLabel.SetText(text)
	})
}

func (ui *TunerUI) appendLog(line string) {
	fyne.Do(func() {
		ui.logContent.SetText(ui.logContent.Text + "\n" + line)
	})
}

func (ui *TunerUI) createLogAccordion() *widget.Accordion {
	logScroll := container.NewVScroll(ui.logContent)
	logScroll.SetMinSize(fyne.NewSize(300, 100))

	return widget.NewAccordion(
		widget.NewAccordionItem("Logs", logScroll),
	)
}

// Run builds the window and blocks until the app exits. Commands go out
// through w, which is connected to the controller's input.
func (ui *TunerUI) Run(ctx context.Context, w io.Writer) {
	application := app.New()
	ui.ShowWindow(ctx, application, w)
	application.Run()
}

// ShowWindow builds and shows the tuner window on an existing app, so the
// configuration window can hand off to it.
func (ui *TunerUI) ShowWindow(ctx context.Context, application fyne.App, w io.Writer) {
	window := application.NewWindow("ESC Tuner")

	currentState := stateNone

	sessionTimer := newTimer(false)
	lastEventTimer := newTimer(true)
	raceTimer := newTimer(true)

	wrapper := &controllerWrapper{writer: w, lastEventTimer: lastEventTimer}

	waitForStart := make(chan struct{})
	sessionTimer.Go(waitForStart)
	lastEventTimer.Go(waitForStart)

	waitForRace := make(chan struct{})
	raceTimer.Go(waitForRace)

	var stateButton *widget.Button
	stateButton = widget.NewButton(currentState.next().String(), func() {
		currentState++

		lastEventTimer.Set(time.Now())
		wrapper.RunStateCommand(currentState)

		if currentState == stateRace {
			raceTimer.text.Color = color.RGBA{R: 139, G: 0, B: 0, A: 255}
			raceTimer.Set(time.Now())
			close(waitForRace)
		}

		if currentState == stateRace+1 {
			raceTimer.Stop()
		}

		if currentState == stateWarmup {
			sessionTimer.Set(time.Now())
			close(waitForStart)
		}

		stateButton.SetText(currentState.next().String())
		if currentState == stateDone {
			stateButton.Disable()
		}
	})

	lapButton := widget.NewButton("Lap", func() {
		n, split := raceTimer.Lap()
		wrapper.Lap()
		ui.appendLog(fmt.Sprintf("lap %d: %s", n, split.Round(time.Millisecond)))
	})

	carNumbers := make([]string, profile.MaxCars)
	for i := range carNumbers {
		carNumbers[i] = strconv.Itoa(i + 1)
	}
	carSelect := widget.NewSelect(carNumbers, func(s string) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return
		}
		wrapper.SelectCar(n)
	})
	carSelect.SetSelectedIndex(0)

	saveButton := widget.NewButton("Save to ESC", func() {
		wrapper.Save()
	})

	sliders := container.NewVBox()
	for _, cfg := range paramSliders {
		cfg := cfg
		sliders.Add(createSlider(cfg, func(v float64) {
			wrapper.SetParam(cfg.param, v)
		}))
	}

	contentContainer := container.NewVBox(
		container.NewHBox(
			container.NewPadded(sessionTimer.text),
			container.NewPadded(lastEventTimer.text),
			layout.NewSpacer(),
			container.NewPadded(raceTimer.text),
		),
		container.NewGridWithColumns(3, stateButton, lapButton, saveButton),
		container.NewGridWithColumns(2, widget.NewLabel("Car:"), carSelect),
		ui.telemetryLabel,
		sliders,
		ui.createLogAccordion(),
	)

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	window.SetContent(container.NewVScroll(contentContainer))
	window.Resize(fyne.NewSize(420, 600))
	window.Show()
}
