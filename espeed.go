package espeed

const TerminationChar = 0x04 // ascii EOT (End of Transmission)

// TelemetryPrefix starts every telemetry line emitted by the firmware:
// "T <raw> <norm> <duty> <vin_mV> <motor_mA>"
const TelemetryPrefix = 'T'

// Phase is the top-level state of the ESC firmware
type Phase int

const (
	PhaseInit Phase = iota
	PhaseCalibration
	PhaseWelcome
	PhaseRunning
	PhaseFault
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "Init"
	case PhaseCalibration:
		return "Calibration"
	case PhaseWelcome:
		return "Welcome"
	case PhaseRunning:
		return "Running"
	case PhaseFault:
		return "Fault"
	default:
		return "Unknown"
	}
}

// SoundMode selects which buzzer sounds are enabled
type SoundMode int

const (
	SoundModeOff SoundMode = iota
	SoundModeBoot
	SoundModeAll
)

func (sm SoundMode) String() string {
	switch sm {
	case SoundModeOff:
		return "Off"
	case SoundModeBoot:
		return "Boot"
	case SoundModeAll:
		return "All"
	default:
		return "Unknown"
	}
}

// Next cycles through the sound modes, used by the settings menu
func (sm SoundMode) Next() SoundMode {
	if sm == SoundModeAll {
		return SoundModeOff
	}
	return sm + 1
}
