//go:build tinygo

package halfbridge

import (
	"machine"
	"testing"
)

type fakePWM struct {
	period   uint64
	channels uint8
	levels   [2]uint32
}

func (f *fakePWM) Configure(config machine.PWMConfig) error {
	f.period = config.Period
	return nil
}

func (f *fakePWM) Channel(machine.Pin) (uint8, error) {
	ch := f.channels
	f.channels++
	return ch, nil
}

func (f *fakePWM) Set(channel uint8, value uint32) {
	f.levels[channel] = value
}

func (f *fakePWM) Top() uint32 { return 1000 }

func (f *fakePWM) SetPeriod(period uint64) error {
	f.period = period
	return nil
}

func TestPeriodFromFreq(t *testing.T) {
	tests := []struct {
		name   string
		freq   uint16
		period uint64
	}{
		{"Default3kHz", 30, 333333},
		{"Floor1kHz", 10, 1000000},
		{"Ceiling5kHz", 50, 200000},
		{"ZeroFallsBackToDefault", 0, 333333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := periodFromFreq(tt.freq); got != tt.period {
				t.Errorf("expected=%d, got=%d", tt.period, got)
			}
		})
	}
}

func TestSetFrequency(t *testing.T) {
	pwm := &fakePWM{channels: 2}
	d := &Device{pwm: pwm, drive: 0, brake: 1}

	if err := d.SetFrequency(30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pwm.period != 333333 {
		t.Errorf("period for 3.0 kHz: expected=333333, got=%d", pwm.period)
	}
}

func TestSetPWMDragScalesDragIntoOffTime(t *testing.T) {
	pwm := &fakePWM{channels: 2}
	d := &Device{pwm: pwm, drive: 0, brake: 1}

	d.SetPWMDrag(60, 100)
	if pwm.levels[0] != 600 {
		t.Errorf("drive ticks: expected=600, got=%d", pwm.levels[0])
	}
	if pwm.levels[1] != 400 {
		t.Errorf("brake ticks fill the off-time: expected=400, got=%d", pwm.levels[1])
	}

	d.SetPWMDrag(0, 50)
	if pwm.levels[0] != 0 || pwm.levels[1] != 500 {
		t.Errorf("released with half drag: expected=0/500, got=%d/%d", pwm.levels[0], pwm.levels[1])
	}
}
