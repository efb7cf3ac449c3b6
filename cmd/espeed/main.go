package main

import (
	"context"
	"flag"
	"io"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/slotware/espeed/controller"
	"github.com/slotware/espeed/ui"
)

func main() {
	var sessionName, probesInput string
	flag.StringVar(&sessionName, "session", "", "Session name for the chart server")
	flag.StringVar(&probesInput, "probes", "", "Set probe mapping in format \"1=Name,2=Name,...\". Default is 1=Trigger,2=Duty")
	flag.Parse()

	if os.Getenv("ENABLE_UI") == "true" {
		runUI()
		return
	}

	runCLI(sessionName, probesInput)
}

func runUI() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application := app.New()
	tuner := ui.NewTunerUI()

	cfg := &controller.Config{}
	configWindow := ui.NewConfigWindow(application)
	configWindow.OnSubmit = func() {
		go func() {
			c, err := controller.New(*cfg)
			if err != nil {
				panic(err)
			}
			defer c.Close()

			r, w := io.Pipe()

			// read from Stdin also
			go func() {
				defer w.Close()
				io.Copy(w, os.Stdin)
			}()

			tuner.ShowWindow(ctx, application, w)

			err = c.Run(ctx, r, io.MultiWriter(os.Stdout, tuner))
			if err != nil {
				panic(err)
			}
		}()
	}
	configWindow.Show(cfg)

	application.Run()
	cancel()
}

func runCLI(sessionName, probesInput string) {
	cfg, err := controller.NewFromEnv()
	if err != nil {
		panic(err)
	}
	if sessionName != "" {
		cfg.SessionName = sessionName
	}
	if probesInput != "" {
		cfg.ProbesInput = probesInput
	}

	c, err := controller.New(cfg)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	err = c.Run(context.Background(), os.Stdin, os.Stdout)
	if err != nil {
		panic(err)
	}
}
