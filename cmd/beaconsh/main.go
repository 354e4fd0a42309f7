package main

import (
	"fmt"
	"os"

	"github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/currantlabs/beacon/capture"
	"github.com/currantlabs/beacon/config"
	"github.com/currantlabs/beacon/tracker"
)

var logger = log.New("beaconsh")

// cfg is loaded once by setup, before any command runs.
var cfg = config.Default()

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "beaconsh: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "beaconsh"
	app.Usage = "Classify beacon advertisements and smooth their RSSI"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{flgConfig, flgDebug}
	app.Before = setup

	app.Commands = []cli.Command{
		{
			Name:      "parse",
			Aliases:   []string{"p"},
			Usage:     "Classify hex encoded advertising payloads",
			ArgsUsage: "<hex>...",
			Action:    cmdParse,
		},
		{
			Name:      "smooth",
			Aliases:   []string{"s"},
			Usage:     "Smooth RSSI readings, one integer per line",
			ArgsUsage: "[file]",
			Action:    cmdSmooth,
			Flags:     []cli.Flag{flgFreq},
		},
		{
			Name:      "replay",
			Aliases:   []string{"r"},
			Usage:     "Replay a pcap, pcapng or text capture through the tracker",
			ArgsUsage: "<file>",
			Action:    cmdReplay,
			Flags:     []cli.Flag{flgWindow, flgSummary},
		},
		{
			Name:      "convert",
			Usage:     "Convert a capture to the text format",
			ArgsUsage: "<file>",
			Action:    cmdConvert,
		},
		{
			Name:  "craft",
			Usage: "Print the hex payload of a beacon advertisement",
			Subcommands: []cli.Command{
				{
					Name:   "ibeacon",
					Usage:  "iBeacon",
					Action: cmdCraftIBeacon,
					Flags:  []cli.Flag{flgUUID, flgMajor, flgMinor, flgPower},
				},
				{
					Name:   "eddystone-uid",
					Usage:  "Eddystone-UID",
					Action: cmdCraftEddystoneUID,
					Flags:  []cli.Flag{flgNamespace, flgInstance, flgPower},
				},
				{
					Name:      "eddystone-url",
					Usage:     "Eddystone-URL",
					ArgsUsage: "<url>",
					Action:    cmdCraftEddystoneURL,
					Flags:     []cli.Flag{flgPower},
				},
			},
		},
	}
	return app
}

// loggers returns the loggers of every package the commands drive.
func loggers() []log.Logger {
	return []log.Logger{logger, tracker.Logger(), capture.Logger()}
}

func setup(c *cli.Context) error {
	if c.GlobalBool("debug") {
		for _, l := range loggers() {
			l.SetLevel(log.LevelDebug)
		}
	}
	if p := c.GlobalString("config"); p != "" {
		loaded, err := config.Load(p)
		if err != nil {
			return errors.Wrap(err, "can't setup")
		}
		cfg = loaded
		logger.Debug("config loaded", "path", p, "interpreters", len(cfg.Interpreters))
	}
	return nil
}
