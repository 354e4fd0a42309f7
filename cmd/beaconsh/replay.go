package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/net/context"

	"github.com/currantlabs/beacon/capture"
	"github.com/currantlabs/beacon/tracker"
)

func cmdReplay(c *cli.Context) error {
	if c.NArg() == 0 {
		return errNoFile
	}
	f, err := capture.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	opts := cfg.TrackerOptions()
	if d := c.Duration("window"); d != 0 {
		opts = append(opts, tracker.OptWindow(d))
	}
	tr, err := tracker.New(opts...)
	if err != nil {
		return errors.Wrap(err, "can't create tracker")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = withSigHandler(ctx, cancel)
	return chkErr(replay(ctx, c.App.Writer, f, tr, c.Bool("summary")))
}

func replay(ctx context.Context, w io.Writer, src capture.Source, tr *tracker.Tracker, summary bool) error {
	var total, unknown int
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		total++
		o, ok := tr.Observe(rec)
		if !ok {
			unknown++
			continue
		}
		if !summary {
			conn := ""
			if rec.Connectable {
				conn = " (connectable)"
			}
			fmt.Fprintf(w, "%s [%s] %-12s %4d dBm %5.2f Hz -> %7.2f dBm  %s%s\n",
				rec.Time.Format("15:04:05.000"), o.Addr, o.Packet.Format(),
				o.RSSI, o.Frequency, o.Filtered, packetString(o.Packet), conn)
		}
	}
	logger.Info("replay done", "packets", total, "unrecognized", unknown, "beacons", tr.Len())

	fmt.Fprintf(w, "%d packets, %d unrecognized, %d beacons\n", total, unknown, tr.Len())
	for _, s := range tr.Beacons() {
		fmt.Fprintf(w, "[%s] %-12s %5d pkts %5.2f Hz %7.2f dBm  %s\n",
			s.Addr, s.Format, s.Packets, s.Frequency, s.Filtered, packetString(s.Packet))
	}
	return nil
}
