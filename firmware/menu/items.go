package menu

import (
	"strconv"

	"github.com/slotware/espeed/profile"
)

// Actions are the callbacks for the two non-value menu entries.
type Actions struct {
	Calibrate func()
	Save      func()
}

// Items builds the standard tuning menu over the profile store.
func Items(store *profile.Store, actions Actions) []Item {
	get := func(f func(profile.Profile) uint16) func() uint16 {
		return func() uint16 { return f(store.Active()) }
	}
	set := func(f func(*profile.Profile, uint16)) func(uint16) {
		return func(v uint16) {
			store.Update(func(p *profile.Profile) { f(p, v) })
		}
	}

	return []Item{
		{
			Name: "SENSI", Unit: "%",
			Min: 0, Max: profile.MinSpeedMax,
			Get: get(func(p profile.Profile) uint16 { return p.MinSpeed }),
			Set: set(func(p *profile.Profile, v uint16) { p.MinSpeed = v }),
		},
		{
			Name: "BRAKE", Unit: "%",
			Min: 0, Max: 100,
			Get: get(func(p profile.Profile) uint16 { return p.Brake }),
			Set: set(func(p *profile.Profile, v uint16) { p.Brake = v }),
		},
		{
			Name: "DRAG", Unit: "%",
			Min: 0, Max: 100,
			Get: get(func(p profile.Profile) uint16 { return p.DragBrake }),
			Set: set(func(p *profile.Profile, v uint16) { p.DragBrake = v }),
		},
		{
			Name: "MAXSP", Unit: "%",
			Min: profile.MaxSpeedMin, Max: 100,
			Get: get(func(p profile.Profile) uint16 { return p.MaxSpeed }),
			Set: set(func(p *profile.Profile, v uint16) { p.MaxSpeed = v }),
		},
		{
			Name: "ANTIS", Unit: "ms",
			Min: 0, Max: profile.AntiSpinLimit,
			Get: get(func(p profile.Profile) uint16 { return p.AntiSpin }),
			Set: set(func(p *profile.Profile, v uint16) { p.AntiSpin = v }),
		},
		{
			Name: "CURVE", Unit: "%",
			Min: profile.CurveSpeedDiffMin, Max: profile.CurveSpeedDiffMax,
			Get: get(func(p profile.Profile) uint16 { return p.Vertex.SpeedDiff }),
			Set: set(func(p *profile.Profile, v uint16) { p.Vertex.SpeedDiff = v }),
		},
		{
			Name: "FREQ", Unit: "",
			Min: profile.FreqPWMMin, Max: profile.FreqPWMMax,
			Get: get(func(p profile.Profile) uint16 { return p.FreqPWM }),
			Set: set(func(p *profile.Profile, v uint16) { p.FreqPWM = v }),
		},
		{
			Name: "BBRED", Unit: "%",
			Min: 0, Max: 100,
			Get: get(func(p profile.Profile) uint16 { return p.BrakeButtonReduction }),
			Set: set(func(p *profile.Profile, v uint16) { p.BrakeButtonReduction = v }),
		},
		{
			Name: "CAR",
			Min:  1, Max: profile.MaxCars,
			Get: func() uint16 { return uint16(store.Selected() + 1) },
			Set: func(v uint16) { _ = store.Select(int(v) - 1) },
			Label: func() string {
				return strconv.Itoa(store.Selected()+1) + " " + store.Active().Name
			},
		},
		{
			Name: "SOUND",
			OnSelect: func() {
				store.SetSoundMode(store.SoundMode().Next())
			},
			Label: func() string { return store.SoundMode().String() },
		},
		{
			Name: "SCRSV", Unit: "s",
			Min: 0, Max: profile.ScreensaverTimeoutMax,
			Get: store.ScreensaverTimeout,
			Set: store.SetScreensaverTimeout,
		},
		{Name: "CAL", OnSelect: actions.Calibrate},
		{Name: "SAVE", OnSelect: actions.Save},
	}
}
