package commands

import (
	"errors"
)

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is used to control the ESC over the serial link
type Controller interface {
	SelectCar(n int) error
	SetParam(param byte, value uint16) error
	DumpProfile()
	Backup() error
	StartCalibration()
	EndCalibration() error
	Save() error
	Debug()
	Verbose()

	// I/O
	ReadByte() (byte, error)
	WriteByte(byte) error
}

// Parameter letters accepted by the SetParamCommand
const (
	ParamMinSpeed       = 'm'
	ParamBrake          = 'b'
	ParamDragBrake      = 'd'
	ParamMaxSpeed       = 'x'
	ParamCurveInput     = 'i'
	ParamCurveSpeedDiff = 'c'
	ParamAntiSpin       = 'a'
	ParamFreqPWM        = 'f'
	ParamBrakeButton    = 'r'
)

var (
	SelectCarCommand = &Command{
		Flag:      'N',
		InputSize: 2,
		Run: func(c Controller, input []byte) error {
			n, err := digits(input)
			if err != nil {
				return err
			}
			return c.SelectCar(int(n))
		},
		Description: "Select the active car profile. Input: two digits, 01-20.",
	}
	SetParamCommand = &Command{
		Flag:      'S',
		InputSize: 4,
		Run: func(c Controller, input []byte) error {
			v, err := digits(input[1:])
			if err != nil {
				return err
			}
			return c.SetParam(input[0], v)
		},
		Description: "Set a parameter on the active profile. Input: parameter letter " +
			"(m=minSpeed, b=brake, d=dragBrake, x=maxSpeed, i=curveInput, c=curveSpeedDiff, " +
			"a=antiSpin, f=freqPWM, r=brakeButtonReduction), then three digits.",
	}
	DumpProfileCommand = &Command{
		Flag:      'G',
		InputSize: 0,
		Run: func(c Controller, input []byte) error {
			c.DumpProfile()
			return nil
		},
		Description: "Print the active car profile.",
	}
	BackupCommand = &Command{
		Flag:      'B',
		InputSize: 0,
		Run: func(c Controller, input []byte) error {
			return c.Backup()
		},
		Description: "Write all settings as JSON, terminated with EOT. Used by the backup tool.",
	}
	StartCalibrationCommand = &Command{
		Flag:      'C',
		InputSize: 0,
		Run: func(c Controller, input []byte) error {
			c.StartCalibration()
			return nil
		},
		Description: "Enter trigger calibration. Sweep the trigger over its full range.",
	}
	EndCalibrationCommand = &Command{
		Flag:      'E',
		InputSize: 0,
		Run: func(c Controller, input []byte) error {
			return c.EndCalibration()
		},
		Description: "Leave trigger calibration and persist the captured range.",
	}
	SaveCommand = &Command{
		Flag:      'W',
		InputSize: 0,
		Run: func(c Controller, input []byte) error {
			return c.Save()
		},
		Description: "Persist all settings to flash.",
	}
	DebugCommand = &Command{
		Flag:      'D',
		InputSize: 0,
		Run: func(c Controller, input []byte) error {
			c.Debug()
			return nil
		},
		Description: "Print the current state.",
	}
	VerboseCommand = &Command{
		Flag:      'V',
		InputSize: 0,
		Run: func(c Controller, input []byte) error {
			c.Verbose()
			return nil
		},
		Description: "Enable verbose output.",
	}
	HelpCommand = &Command{
		Flag:        'H',
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, input []byte) error {
			println("Available Commands:")
			for _, cmd := range commands {
				println(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

// digits parses a fixed-width decimal number
func digits(in []byte) (uint16, error) {
	var v uint16
	for _, b := range in {
		if b < '0' || b > '9' {
			return 0, errors.New("invalid input: " + string(in))
		}
		v = v*10 + uint16(b-'0')
	}
	return v, nil
}

var commands = []*Command{
	SelectCarCommand,
	SetParamCommand,
	DumpProfileCommand,
	BackupCommand,
	StartCalibrationCommand,
	EndCalibrationCommand,
	SaveCommand,
	DebugCommand,
	VerboseCommand,
}

func Run(c Controller) {
	cmdMap := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}

	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}

	for {
		cmdIn, err := c.ReadByte()
		if err != nil {
			continue
		}

		cmd, ok := cmdMap[cmdIn]
		if !ok {
			continue
		}

		in := make([]byte, cmd.InputSize)
		for i := 0; i < int(cmd.InputSize); {
			b, err := c.ReadByte()
			if err != nil {
				continue
			}

			in[i] = b
			i++
		}

		err = cmd.Run(c, in)
		if err != nil {
			println("error:", err.Error())
		}
	}
}
