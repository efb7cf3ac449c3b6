//go:build tinygo

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/tone"

	"github.com/slotware/espeed"
)

// Buzzer plays the short confirmation melodies on the piezo speaker. Which
// events are audible depends on the configured sound mode.
type Buzzer struct {
	speaker tone.Speaker
	mode    func() espeed.SoundMode
}

// NewBuzzer configures the PWM channel driving the piezo. mode is read on
// every play so settings changes take effect immediately.
func NewBuzzer(pwm tone.PWM, pin machine.Pin, mode func() espeed.SoundMode) (*Buzzer, error) {
	speaker, err := tone.New(pwm, pin)
	if err != nil {
		return nil, err
	}
	return &Buzzer{speaker: speaker, mode: mode}, nil
}

func (b *Buzzer) play(notes []tone.Note, d time.Duration) {
	for _, n := range notes {
		b.speaker.SetNote(n)
		time.Sleep(d)
	}
	b.speaker.Stop()
}

// Boot plays the power-on melody. Audible in Boot and All modes.
func (b *Buzzer) Boot() {
	if b.mode() == espeed.SoundModeOff {
		return
	}
	b.play([]tone.Note{tone.C5, tone.E5}, 120*time.Millisecond)
}

// Off plays the inverse of the boot melody when entering standby.
func (b *Buzzer) Off() {
	if b.mode() == espeed.SoundModeOff {
		return
	}
	b.play([]tone.Note{tone.E5, tone.C5}, 120*time.Millisecond)
}

// Calibration signals that calibration mode was entered.
func (b *Buzzer) Calibration() {
	if b.mode() != espeed.SoundModeAll {
		return
	}
	b.play([]tone.Note{tone.C5, tone.G5, tone.A5}, 100*time.Millisecond)
}

// Key gives a short click for menu interaction. Only in All mode.
func (b *Buzzer) Key() {
	if b.mode() != espeed.SoundModeAll {
		return
	}
	b.play([]tone.Note{tone.D6}, 30*time.Millisecond)
}
