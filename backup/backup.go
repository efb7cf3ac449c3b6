// Package backup is a small babyapi service that stores ESC settings
// snapshots, so a wiped or replaced controller can be restored from the last
// known-good state.
package backup

import (
	"time"

	"github.com/calvinmclean/babyapi"

	"github.com/slotware/espeed/profile"
)

// Backup is one stored settings snapshot.
type Backup struct {
	babyapi.DefaultResource

	Label    string           `json:"label"`
	SavedAt  time.Time        `json:"savedAt"`
	Settings profile.Settings `json:"settings"`
}

// NewAPI creates the CRUD API for backups.
func NewAPI() *babyapi.API[*Backup] {
	return babyapi.NewAPI("Backups", "/backups", func() *Backup { return &Backup{} })
}
