package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"gonum.org/v1/gonum/stat"

	"github.com/currantlabs/beacon/rssi"
)

func cmdSmooth(c *cli.Context) error {
	in := io.Reader(os.Stdin)
	if c.NArg() > 0 {
		f, err := os.Open(c.Args().First())
		if err != nil {
			return errors.Wrap(err, "can't open readings")
		}
		defer f.Close()
		in = f
	}
	return smooth(c.App.Writer, in, c.Float64("freq"))
}

func smooth(w io.Writer, in io.Reader, freq float64) error {
	var (
		s        rssi.Smoother
		raw      []float64
		filtered []float64
	)
	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		l := strings.TrimSpace(sc.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		v, err := strconv.Atoi(l)
		if err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
		e := s.Observe(v, freq)
		raw = append(raw, float64(v))
		filtered = append(filtered, e)
		fmt.Fprintf(w, "%4d %8.2f\n", v, e)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(raw) == 0 {
		fmt.Fprintln(w, "no readings")
		return nil
	}
	rm, rsd := stat.MeanStdDev(raw, nil)
	fm, fsd := stat.MeanStdDev(filtered, nil)
	fmt.Fprintf(w, "factor %.2f, %d readings\n", rssi.Factor(freq), len(raw))
	fmt.Fprintf(w, "raw      mean %8.2f sd %6.2f\n", rm, rsd)
	fmt.Fprintf(w, "filtered mean %8.2f sd %6.2f\n", fm, fsd)
	return nil
}
