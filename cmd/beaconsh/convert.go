package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/currantlabs/beacon/capture"
)

func cmdConvert(c *cli.Context) error {
	if c.NArg() == 0 {
		return errNoFile
	}
	f, err := capture.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()
	return convert(c.App.Writer, f)
}

func convert(w io.Writer, src capture.Source) error {
	for {
		rec, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(w, capture.FormatLine(rec))
	}
}
