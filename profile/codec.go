package profile

import (
	"encoding/binary"
	"errors"

	"github.com/slotware/espeed"
)

// Binary layout for on-flash storage. Fixed-size records keep the codec free
// of reflection so it stays cheap on the microcontroller.
const (
	codecMagic   = 0x45535044 // "ESPD"
	codecVersion = 1

	carRecordSize = NameLen + 10*2
	headerSize    = 4 + 1 + 1 + 2 + 2 + 2 + 1 + 2

	// EncodedSize is the total size of an encoded Settings blob.
	EncodedSize = headerSize + MaxCars*carRecordSize
)

// MarshalBinary encodes settings into the fixed on-flash layout. Settings
// with fewer than MaxCars profiles are padded with defaults.
func (s Settings) MarshalBinary() ([]byte, error) {
	if len(s.Cars) > MaxCars {
		return nil, errors.New("codec: too many car profiles")
	}

	buf := make([]byte, EncodedSize)
	binary.LittleEndian.PutUint32(buf[0:], codecMagic)
	buf[4] = codecVersion
	buf[5] = byte(len(s.Cars))
	binary.LittleEndian.PutUint16(buf[6:], uint16(s.SelectedCar))
	binary.LittleEndian.PutUint16(buf[8:], uint16(s.Calibration.MinRaw))
	binary.LittleEndian.PutUint16(buf[10:], uint16(s.Calibration.MaxRaw))
	buf[12] = byte(s.SoundMode)
	binary.LittleEndian.PutUint16(buf[13:], s.ScreensaverTimeout)

	off := headerSize
	for i := 0; i < MaxCars; i++ {
		p := Default(i)
		if i < len(s.Cars) {
			p = s.Cars[i]
		}
		encodeCar(buf[off:off+carRecordSize], p)
		off += carRecordSize
	}
	return buf, nil
}

// UnmarshalBinary decodes a blob previously produced by MarshalBinary.
func (s *Settings) UnmarshalBinary(buf []byte) error {
	if len(buf) < EncodedSize {
		return errors.New("codec: short settings blob")
	}
	if binary.LittleEndian.Uint32(buf[0:]) != codecMagic {
		return errors.New("codec: bad magic")
	}
	if buf[4] != codecVersion {
		return errors.New("codec: unsupported version")
	}

	count := int(buf[5])
	if count == 0 || count > MaxCars {
		return errors.New("codec: invalid car count")
	}

	s.SelectedCar = int(binary.LittleEndian.Uint16(buf[6:]))
	s.Calibration.MinRaw = int16(binary.LittleEndian.Uint16(buf[8:]))
	s.Calibration.MaxRaw = int16(binary.LittleEndian.Uint16(buf[10:]))
	s.SoundMode = espeed.SoundMode(buf[12])
	s.ScreensaverTimeout = binary.LittleEndian.Uint16(buf[13:])

	s.Cars = make([]Profile, count)
	off := headerSize
	for i := 0; i < count; i++ {
		s.Cars[i] = decodeCar(buf[off:off+carRecordSize], i)
		off += carRecordSize
	}
	if s.SelectedCar < 0 || s.SelectedCar >= count {
		s.SelectedCar = 0
	}
	return nil
}

func encodeCar(rec []byte, p Profile) {
	var name [NameLen]byte
	copy(name[:], p.Name)
	copy(rec[0:NameLen], name[:])

	le := binary.LittleEndian
	le.PutUint16(rec[4:], uint16(p.Number))
	le.PutUint16(rec[6:], p.MinSpeed)
	le.PutUint16(rec[8:], p.Brake)
	le.PutUint16(rec[10:], p.DragBrake)
	le.PutUint16(rec[12:], p.MaxSpeed)
	le.PutUint16(rec[14:], p.Vertex.InputThrottle)
	le.PutUint16(rec[16:], p.Vertex.SpeedDiff)
	le.PutUint16(rec[18:], p.AntiSpin)
	le.PutUint16(rec[20:], p.FreqPWM)
	le.PutUint16(rec[22:], p.BrakeButtonReduction)
}

func decodeCar(rec []byte, number int) Profile {
	le := binary.LittleEndian

	name := rec[0:NameLen]
	end := len(name)
	for end > 0 && name[end-1] == 0 {
		end--
	}

	p := Profile{
		Number:               number,
		Name:                 string(name[:end]),
		MinSpeed:             le.Uint16(rec[6:]),
		Brake:                le.Uint16(rec[8:]),
		DragBrake:            le.Uint16(rec[10:]),
		MaxSpeed:             le.Uint16(rec[12:]),
		AntiSpin:             le.Uint16(rec[18:]),
		FreqPWM:              le.Uint16(rec[20:]),
		BrakeButtonReduction: le.Uint16(rec[22:]),
	}
	p.Vertex.InputThrottle = le.Uint16(rec[14:])
	p.Vertex.SpeedDiff = le.Uint16(rec[16:])
	p.Clamp()
	return p
}
