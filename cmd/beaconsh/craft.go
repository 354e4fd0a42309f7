package main

import (
	"fmt"

	guuid "github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/currantlabs/beacon/adv"
	"github.com/currantlabs/beacon/uuid"
)

func cmdCraftIBeacon(c *cli.Context) error {
	u, err := guuid.Parse(c.String("uuid"))
	if err != nil {
		return errors.Wrap(err, "invalid proximity UUID")
	}
	p, err := adv.IBeacon(uuid.UUID(uuid.Reverse(u[:])), uint16(c.Uint("major")), uint16(c.Uint("minor")), int8(c.Int("power")))
	if err != nil {
		return err
	}
	return printPacket(c, p)
}

func cmdCraftEddystoneUID(c *cli.Context) error {
	var ns [10]byte
	var inst [6]byte
	if err := decodeFixed(ns[:], c.String("namespace")); err != nil {
		return errors.Wrap(err, "namespace")
	}
	if err := decodeFixed(inst[:], c.String("instance")); err != nil {
		return errors.Wrap(err, "instance")
	}
	p, err := adv.EddystoneUIDFrame(ns, inst, int8(c.Int("power")))
	if err != nil {
		return err
	}
	return printPacket(c, p)
}

func cmdCraftEddystoneURL(c *cli.Context) error {
	if c.NArg() == 0 {
		return errNoURL
	}
	p, err := adv.EddystoneURLFrame(c.Args().First(), int8(c.Int("power")))
	if err != nil {
		return err
	}
	return printPacket(c, p)
}

func decodeFixed(dst []byte, s string) error {
	if s == "" {
		return nil
	}
	b, err := decodeHex(s)
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return errors.Errorf("want %d bytes, got %d", len(dst), len(b))
	}
	copy(dst, b)
	return nil
}

func printPacket(c *cli.Context, p adv.Packet) error {
	_, err := fmt.Fprintf(c.App.Writer, "%x\n", []byte(p))
	return err
}
