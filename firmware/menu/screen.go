//go:build tinygo

package menu

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

var white = color.RGBA{255, 255, 255, 255}

// Screen renders the menu on the 128x64 SSD1306 OLED.
type Screen struct {
	display ssd1306.Device
}

// NewScreen configures the OLED on the given I2C bus.
func NewScreen(bus drivers.I2C) *Screen {
	display := ssd1306.NewI2C(bus)
	display.Configure(ssd1306.Config{
		Width:   128,
		Height:  64,
		Address: ssd1306.Address_128_32,
	})
	display.ClearDisplay()
	return &Screen{display: display}
}

// ShowItem implements Display. The item name goes on the top line, the value
// below; an editing marker shows which of the two the encoder adjusts.
func (s *Screen) ShowItem(name, value string, editing bool) {
	s.display.ClearBuffer()

	marker := ">"
	if editing {
		marker = "*"
	}
	tinyfont.WriteLine(&s.display, &freemono.Bold9pt7b, 0, 14, marker+name, white)
	tinyfont.WriteLine(&s.display, &freemono.Regular12pt7b, 10, 44, value, white)

	s.display.Display()
}

// ShowMessage fills the screen with a single centered-ish line, used for the
// welcome banner and calibration prompt.
func (s *Screen) ShowMessage(text string) {
	s.display.ClearBuffer()
	tinyfont.WriteLine(&s.display, &freemono.Bold9pt7b, 0, 30, text, white)
	s.display.Display()
}

// Sleep blanks the display for the screensaver.
func (s *Screen) Sleep() {
	s.display.ClearDisplay()
}
