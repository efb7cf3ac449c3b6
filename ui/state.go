package ui

type state int

const (
	stateNone state = iota
	stateWarmup
	stateQualifying
	stateRace
	stateCooldown
	stateDone
)

func (s state) String() string {
	switch s {
	case stateWarmup:
		return "Warmup"
	case stateQualifying:
		return "Qualifying"
	case stateRace:
		return "Race"
	case stateCooldown:
		return "Cooldown"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

func (s state) next() state {
	if s == stateDone {
		// Done has no next State
		return stateDone
	}
	return s + 1
}

// command is the line handed to the controller when this state starts.
func (s state) command() string {
	switch s {
	case stateWarmup:
		return "STAGE Warmup"
	case stateQualifying:
		return "STAGE Qualifying"
	case stateRace:
		return "STAGE Race"
	case stateCooldown:
		return "STAGE Cooldown"
	case stateDone:
		return "DONE"
	default:
		return ""
	}
}
