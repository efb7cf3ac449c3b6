package profile

import (
	"errors"
	"sync"

	"github.com/slotware/espeed"
	"github.com/slotware/espeed/throttle"
)

// Settings is everything persisted to non-volatile storage.
type Settings struct {
	Cars        []Profile       `json:"cars"`
	SelectedCar int             `json:"selectedCar"`
	Calibration Calibration     `json:"calibration"`
	SoundMode   espeed.SoundMode `json:"soundMode"`

	// ScreensaverTimeout is in seconds; zero disables the screensaver.
	ScreensaverTimeout uint16 `json:"screensaverTimeout"`
}

// Screensaver timeout bounds in seconds.
const (
	ScreensaverTimeoutDefault = 20
	ScreensaverTimeoutMax     = 120
)

// DefaultSettings returns a full set of default car profiles with no
// calibration recorded yet.
func DefaultSettings() Settings {
	cars := make([]Profile, MaxCars)
	for i := range cars {
		cars[i] = Default(i)
	}
	return Settings{
		Cars:               cars,
		SelectedCar:        0,
		SoundMode:          espeed.SoundModeAll,
		ScreensaverTimeout: ScreensaverTimeoutDefault,
	}
}

// Persister saves and loads settings. The firmware backs it with on-chip
// flash, the host tools with a JSON file.
type Persister interface {
	Load() (Settings, error)
	Save(Settings) error
}

// Store owns the settings shared between the UI context and the control
// context. The UI mutates through the setter methods below; the control loop
// reads a consistent copy every period via ControlParams/Active. This makes
// the cross-context data flow explicit instead of scattering raw field
// writes.
type Store struct {
	mu        sync.Mutex
	settings  Settings
	persister Persister

	// calibrating guards Observe: samples outside a session are ignored.
	calibrating bool
	session     Calibration
}

// NewStore loads settings through the persister, falling back to defaults
// when nothing valid is stored yet.
func NewStore(p Persister) *Store {
	s := &Store{persister: p}
	if p != nil {
		if loaded, err := p.Load(); err == nil && len(loaded.Cars) > 0 {
			s.settings = loaded
			s.clampAll()
			return s
		}
	}
	s.settings = DefaultSettings()
	return s
}

// Active returns a copy of the currently selected car profile.
func (s *Store) Active() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Cars[s.settings.SelectedCar]
}

// Settings returns a deep copy of the full settings, for backup dumps.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.settings
	out.Cars = append([]Profile(nil), s.settings.Cars...)
	return out
}

// Restore replaces the whole settings set, clamping every profile. Used by
// the serial restore command and the backup API.
func (s *Store) Restore(settings Settings) error {
	if len(settings.Cars) == 0 || len(settings.Cars) > MaxCars {
		return errors.New("restore: invalid car count")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.settings.Cars = append([]Profile(nil), settings.Cars...)
	s.clampAll()
	return nil
}

// Select makes another car profile active.
func (s *Store) Select(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.settings.Cars) {
		return errors.New("select: car index out of range")
	}
	s.settings.SelectedCar = i
	return nil
}

// Selected returns the active car index.
func (s *Store) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.SelectedCar
}

// Update mutates the active profile through fn while holding the store lock,
// then clamps the result.
func (s *Store) Update(fn func(*Profile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &s.settings.Cars[s.settings.SelectedCar]
	fn(p)
	p.Clamp()
}

// Copy duplicates the active profile into another slot, keeping the
// destination's number.
func (s *Store) Copy(dst int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dst < 0 || dst >= len(s.settings.Cars) {
		return errors.New("copy: car index out of range")
	}
	src := s.settings.Cars[s.settings.SelectedCar]
	src.Number = dst
	s.settings.Cars[dst] = src
	return nil
}

// Rename sets the active profile's name, truncated to NameLen.
func (s *Store) Rename(name string) {
	s.Update(func(p *Profile) {
		p.Name = name
	})
}

// SoundMode returns the configured buzzer mode.
func (s *Store) SoundMode() espeed.SoundMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.SoundMode
}

// SetSoundMode updates the buzzer mode.
func (s *Store) SetSoundMode(m espeed.SoundMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.SoundMode = m
}

// ScreensaverTimeout returns the display sleep timeout in seconds.
func (s *Store) ScreensaverTimeout() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.ScreensaverTimeout
}

// SetScreensaverTimeout updates the display sleep timeout. Zero disables the
// screensaver.
func (s *Store) SetScreensaverTimeout(seconds uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seconds > ScreensaverTimeoutMax {
		seconds = ScreensaverTimeoutMax
	}
	s.settings.ScreensaverTimeout = seconds
}

// Calibration returns the persisted trigger bounds.
func (s *Store) Calibration() Calibration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Calibration
}

// BeginCalibration starts a calibration session with sentinel bounds.
func (s *Store) BeginCalibration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calibrating = true
	s.session.Reset()
}

// ObserveCalibration feeds one raw sample into the running session. Called
// from the control context every period while calibrating.
func (s *Store) ObserveCalibration(raw int16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.calibrating {
		return
	}
	s.session.Observe(raw)
}

// EndCalibration finalizes the session. A session that never produced a
// usable range is discarded and the previous bounds stay in effect.
func (s *Store) EndCalibration() error {
	s.mu.Lock()
	if !s.calibrating {
		s.mu.Unlock()
		return errors.New("calibration: no session running")
	}
	s.calibrating = false
	if !s.session.Valid() {
		s.mu.Unlock()
		return errors.New("calibration: degenerate range, keeping previous bounds")
	}
	s.settings.Calibration = s.session
	s.mu.Unlock()
	return s.Save()
}

// Save persists the current settings.
func (s *Store) Save() error {
	if s.persister == nil {
		return nil
	}
	s.mu.Lock()
	snapshot := s.settings
	snapshot.Cars = append([]Profile(nil), s.settings.Cars...)
	s.mu.Unlock()
	return s.persister.Save(snapshot)
}

// ControlParams assembles the pipeline parameters from the active profile
// and the calibrated bounds. The control context calls this once per period.
func (s *Store) ControlParams(reversed bool) throttle.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.settings.Cars[s.settings.SelectedCar]
	return throttle.Params{
		MinRaw:     s.settings.Calibration.MinRaw,
		MaxRaw:     s.settings.Calibration.MaxRaw,
		Reversed:   reversed,
		Deadband:   throttle.DeadbandNorm,
		MinSpeed:   p.MinSpeed,
		MaxSpeed:   p.MaxSpeed,
		Vertex:     p.Vertex,
		AntiSpinMS: p.AntiSpin,
	}
}

func (s *Store) clampAll() {
	for i := range s.settings.Cars {
		s.settings.Cars[i].Number = i
		s.settings.Cars[i].Clamp()
	}
	if s.settings.SelectedCar < 0 || s.settings.SelectedCar >= len(s.settings.Cars) {
		s.settings.SelectedCar = 0
	}
	if s.settings.ScreensaverTimeout > ScreensaverTimeoutMax {
		s.settings.ScreensaverTimeout = ScreensaverTimeoutMax
	}
}
