package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/slotware/espeed/backup"
	"github.com/slotware/espeed/controller"
)

func main() {
	var snapshot bool
	var addr, label string
	flag.BoolVar(&snapshot, "snapshot", false, "Read settings from the connected ESC and upload them")
	flag.StringVar(&addr, "addr", "http://localhost:8080", "Backup server address")
	flag.StringVar(&label, "label", "", "Label for the snapshot")
	flag.Parse()

	if snapshot {
		if err := takeSnapshot(addr, label); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	// default: run the backup server and CLI
	backup.NewAPI().RunCLI()
}

func takeSnapshot(addr, label string) error {
	cfg, err := controller.NewFromEnv()
	if err != nil {
		return err
	}

	c, err := controller.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := context.Background()
	settings, err := c.ReadBackup(ctx)
	if err != nil {
		return err
	}

	id, err := backup.NewClient(addr).Upload(ctx, label, settings)
	if err != nil {
		return err
	}

	fmt.Println("uploaded backup:", id)
	return nil
}
