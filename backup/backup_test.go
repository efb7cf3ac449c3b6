package backup

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/slotware/espeed/profile"
)

func TestBackupJSON(t *testing.T) {
	settings := profile.DefaultSettings()
	settings.Cars[3].Name = "GT40"
	settings.Calibration = profile.Calibration{MinRaw: 12, MaxRaw: 4012}

	b := &Backup{
		Label:    "before finals",
		SavedAt:  time.Date(2026, 8, 28, 19, 30, 0, 0, time.UTC),
		Settings: settings,
	}

	blob, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out Backup
	if err := json.Unmarshal(blob, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Label != "before finals" {
		t.Errorf("label: expected=%q, got=%q", "before finals", out.Label)
	}
	if out.Settings.Cars[3].Name != "GT40" {
		t.Errorf("car name: expected=GT40, got=%q", out.Settings.Cars[3].Name)
	}
	if out.Settings.Calibration.MaxRaw != 4012 {
		t.Errorf("calibration: %+v", out.Settings.Calibration)
	}
}

func TestNewAPI(t *testing.T) {
	api := NewAPI()
	if api == nil {
		t.Fatal("expected API")
	}
}
