package ui

import (
	"fmt"
	"io"
	"time"
)

type controllerWrapper struct {
	writer         io.Writer
	lastEventTimer *timer
}

func (c *controllerWrapper) SetParam(param byte, value float64) {
	c.lastEventTimer.Set(time.Now())
	fmt.Fprintf(c.writer, "S%c%03.0f\n", param, value)
}

func (c *controllerWrapper) SelectCar(n int) {
	c.lastEventTimer.Set(time.Now())
	fmt.Fprintf(c.writer, "N%02d\n", n)
}

func (c *controllerWrapper) Save() {
	fmt.Fprintf(c.writer, "W\n")
}

func (c *controllerWrapper) Lap() {
	fmt.Fprintf(c.writer, "LAP\n")
}

func (c *controllerWrapper) RunStateCommand(s state) {
	stateCommand := s.command()
	if stateCommand != "" {
		fmt.Fprintf(c.writer, "%s\n", stateCommand)
	}
}
