// Package menu implements the on-device tuning menu driven by the rotary
// encoder. The state machine is hardware-free; rendering goes through the
// Display interface so the logic runs in tests without an OLED attached.
package menu

import "strconv"

// Display renders the currently visible item. editing is true while the
// encoder adjusts the value instead of scrolling the list.
type Display interface {
	ShowItem(name, value string, editing bool)
}

// Item is one menu entry. Value items carry Get/Set and a range; action
// items (calibration, save) set OnSelect instead.
type Item struct {
	Name string
	Unit string

	Min, Max uint16
	Get      func() uint16
	Set      func(uint16)

	// OnSelect runs when the encoder button is pressed on an action item.
	// When set, Get/Set are ignored.
	OnSelect func()

	// Label overrides the numeric value display, e.g. the car name.
	Label func() string
}

// State of the encoder interaction.
type State int

const (
	ItemSelection State = iota
	ValueSelection
)

type Menu struct {
	items   []Item
	index   int
	state   State
	display Display
}

func New(display Display, items []Item) *Menu {
	m := &Menu{items: items, display: display}
	m.render()
	return m
}

func (m *Menu) State() State { return m.state }

// Current returns the visible item.
func (m *Menu) Current() Item { return m.items[m.index] }

// HandleRotation processes encoder movement. In item selection it scrolls
// the list with wraparound; in value selection it adjusts the value within
// the item's range.
func (m *Menu) HandleRotation(delta int) {
	if delta == 0 {
		return
	}

	switch m.state {
	case ItemSelection:
		m.index = (m.index + delta) % len(m.items)
		if m.index < 0 {
			m.index += len(m.items)
		}
	case ValueSelection:
		item := m.items[m.index]
		v := int(item.Get()) + delta
		if v < int(item.Min) {
			v = int(item.Min)
		}
		if v > int(item.Max) {
			v = int(item.Max)
		}
		item.Set(uint16(v))
	}
	m.render()
}

// HandleClick processes the encoder button. Action items fire immediately;
// value items toggle between selection and editing.
func (m *Menu) HandleClick() {
	item := m.items[m.index]
	if item.OnSelect != nil {
		item.OnSelect()
		m.render()
		return
	}

	if m.state == ItemSelection {
		m.state = ValueSelection
	} else {
		m.state = ItemSelection
	}
	m.render()
}

// Home resets the menu to the first item in selection mode.
func (m *Menu) Home() {
	m.index = 0
	m.state = ItemSelection
	m.render()
}

func (m *Menu) render() {
	item := m.items[m.index]
	m.display.ShowItem(item.Name, m.valueString(item), m.state == ValueSelection)
}

func (m *Menu) valueString(item Item) string {
	if item.Label != nil {
		return item.Label()
	}
	if item.Get == nil {
		return ""
	}
	return strconv.Itoa(int(item.Get())) + item.Unit
}
