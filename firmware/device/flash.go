//go:build tinygo

package device

import (
	"errors"
	"machine"

	"github.com/slotware/espeed/profile"
)

// FlashPersister stores settings in the on-chip flash data area using the
// fixed binary layout from the profile package.
type FlashPersister struct{}

func (FlashPersister) Load() (profile.Settings, error) {
	buf := make([]byte, profile.EncodedSize)
	if _, err := machine.Flash.ReadAt(buf, 0); err != nil {
		return profile.Settings{}, errors.New("flash read: " + err.Error())
	}

	var s profile.Settings
	if err := s.UnmarshalBinary(buf); err != nil {
		return profile.Settings{}, err
	}
	return s, nil
}

func (FlashPersister) Save(s profile.Settings) error {
	blob, err := s.MarshalBinary()
	if err != nil {
		return err
	}

	if err := machine.Flash.EraseBlocks(0, 1); err != nil {
		return errors.New("flash erase: " + err.Error())
	}
	if _, err := machine.Flash.WriteAt(blob, 0); err != nil {
		return errors.New("flash write: " + err.Error())
	}
	return nil
}
