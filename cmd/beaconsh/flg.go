package main

import "github.com/urfave/cli"

var (
	flgConfig    = cli.StringFlag{Name: "config, c", Usage: "YAML configuration file"}
	flgDebug     = cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"}
	flgFreq      = cli.Float64Flag{Name: "freq, f", Value: 1, Usage: "Packet rate in Hz the readings arrive at"}
	flgWindow    = cli.DurationFlag{Name: "window, w", Usage: "Packet rate window (overrides the config)"}
	flgSummary   = cli.BoolFlag{Name: "summary", Usage: "Only print the final state of each beacon"}
	flgUUID      = cli.StringFlag{Name: "uuid, u", Value: "E2C56DB5-DFFB-48D2-B060-D0F5A71096E0", Usage: "Proximity UUID"}
	flgMajor     = cli.UintFlag{Name: "major", Usage: "Major"}
	flgMinor     = cli.UintFlag{Name: "minor", Usage: "Minor"}
	flgPower     = cli.IntFlag{Name: "power, p", Value: -59, Usage: "Measured power (iBeacon, at 1m) or TX power (Eddystone, at 0m)"}
	flgNamespace = cli.StringFlag{Name: "namespace, n", Usage: "10 byte namespace in hex"}
	flgInstance  = cli.StringFlag{Name: "instance, i", Usage: "6 byte instance in hex"}
)
