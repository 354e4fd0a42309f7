package main

import (
	"github.com/urfave/cli"
)

func cmdParse(c *cli.Context) error {
	if c.NArg() == 0 {
		return errNoPayload
	}
	r := cfg.Registry()
	for _, s := range c.Args() {
		b, err := decodeHex(s)
		if err != nil {
			return err
		}
		describe(c.App.Writer, r, b)
	}
	return nil
}
