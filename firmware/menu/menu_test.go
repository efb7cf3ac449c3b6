package menu

import (
	"testing"

	"github.com/slotware/espeed/profile"
)

type fakeDisplay struct {
	name    string
	value   string
	editing bool
	renders int
}

func (f *fakeDisplay) ShowItem(name, value string, editing bool) {
	f.name = name
	f.value = value
	f.editing = editing
	f.renders++
}

func testMenu(t *testing.T) (*Menu, *profile.Store, *fakeDisplay, *Actions) {
	t.Helper()
	store := profile.NewStore(nil)
	display := &fakeDisplay{}
	actions := &Actions{Calibrate: func() {}, Save: func() {}}
	m := New(display, Items(store, *actions))
	return m, store, display, actions
}

func TestMenuScrollsWithWraparound(t *testing.T) {
	m, _, display, _ := testMenu(t)

	if display.name != "SENSI" {
		t.Fatalf("first item: expected=SENSI, got=%s", display.name)
	}

	m.HandleRotation(1)
	if display.name != "BRAKE" {
		t.Errorf("expected=BRAKE, got=%s", display.name)
	}

	m.HandleRotation(-2)
	if display.name != "SAVE" {
		t.Errorf("backward wraparound: expected=SAVE, got=%s", display.name)
	}

	m.HandleRotation(1)
	if display.name != "SENSI" {
		t.Errorf("forward wraparound: expected=SENSI, got=%s", display.name)
	}
}

func TestMenuEditsValueWithinRange(t *testing.T) {
	m, store, display, _ := testMenu(t)

	// SENSI edits the active profile's minSpeed
	m.HandleClick()
	if m.State() != ValueSelection {
		t.Fatal("click did not enter value selection")
	}
	if !display.editing {
		t.Error("display not told about editing state")
	}

	m.HandleRotation(5)
	if got := store.Active().MinSpeed; got != profile.MinSpeedDefault+5 {
		t.Errorf("minSpeed: expected=%d, got=%d", profile.MinSpeedDefault+5, got)
	}

	// clamp at the top of the range
	m.HandleRotation(1000)
	if got := store.Active().MinSpeed; got != profile.MinSpeedMax {
		t.Errorf("minSpeed ceiling: expected=%d, got=%d", profile.MinSpeedMax, got)
	}

	// second click leaves editing, scrolling resumes
	m.HandleClick()
	if m.State() != ItemSelection {
		t.Error("click did not leave value selection")
	}
	m.HandleRotation(1)
	if display.name != "BRAKE" {
		t.Errorf("expected=BRAKE, got=%s", display.name)
	}
}

func TestMenuActionItemFiresOnClick(t *testing.T) {
	store := profile.NewStore(nil)
	display := &fakeDisplay{}
	saved := false
	m := New(display, Items(store, Actions{
		Calibrate: func() {},
		Save:      func() { saved = true },
	}))

	// scroll backward to SAVE, the last item
	m.HandleRotation(-1)
	if display.name != "SAVE" {
		t.Fatalf("expected=SAVE, got=%s", display.name)
	}

	m.HandleClick()
	if !saved {
		t.Error("save action did not fire")
	}
	if m.State() != ItemSelection {
		t.Error("action item must not enter value selection")
	}
}

func TestMenuCarItemShowsName(t *testing.T) {
	m, store, display, _ := testMenu(t)

	// scroll to the CAR item
	for display.name != "CAR" {
		m.HandleRotation(1)
	}

	m.HandleClick()
	m.HandleRotation(2)

	if got := store.Selected(); got != 2 {
		t.Errorf("selected car: expected=2, got=%d", got)
	}
	want := "3 " + store.Active().Name
	if display.value != want {
		t.Errorf("car label: expected=%q, got=%q", want, display.value)
	}
}

func TestMenuScreensaverItemEditsTimeout(t *testing.T) {
	m, store, display, _ := testMenu(t)

	for display.name != "SCRSV" {
		m.HandleRotation(1)
	}

	m.HandleClick()
	m.HandleRotation(10)
	if got := store.ScreensaverTimeout(); got != profile.ScreensaverTimeoutDefault+10 {
		t.Errorf("timeout: expected=%d, got=%d", profile.ScreensaverTimeoutDefault+10, got)
	}

	m.HandleRotation(1000)
	if got := store.ScreensaverTimeout(); got != profile.ScreensaverTimeoutMax {
		t.Errorf("timeout ceiling: expected=%d, got=%d", profile.ScreensaverTimeoutMax, got)
	}

	// zero disables the screensaver and must be reachable
	m.HandleRotation(-1000)
	if got := store.ScreensaverTimeout(); got != 0 {
		t.Errorf("timeout floor: expected=0, got=%d", got)
	}
}

func TestMenuHomeResets(t *testing.T) {
	m, _, display, _ := testMenu(t)

	m.HandleRotation(3)
	m.HandleClick()
	m.Home()

	if display.name != "SENSI" || m.State() != ItemSelection {
		t.Errorf("home: expected SENSI/selection, got %s/%v", display.name, m.State())
	}
}
