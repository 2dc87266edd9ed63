package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/kaelstrom/pocketcore/core"
	"github.com/kaelstrom/pocketcore/render"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "pocketcore"
	app.Description = "A Game Boy (DMG) emulator core with a terminal frontend"
	app.Usage = "pocketcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without the terminal renderer",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("pocketcore exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	emu, err := core.NewWithFile(romPath)
	if err != nil {
		return err
	}

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}

		for i := 0; i < frames; i++ {
			emu.RunUntilFrame()
		}

		slog.Info("headless run completed", "frames", frames, "instructions", emu.GetInstructionCount())
		return nil
	}

	renderer, err := render.NewTerminalRenderer(emu)
	if err != nil {
		return err
	}
	return renderer.Run()
}
