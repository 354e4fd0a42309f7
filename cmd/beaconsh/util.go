package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/currantlabs/beacon"
	"github.com/currantlabs/beacon/adv"
	"github.com/currantlabs/beacon/uuid"
)

var (
	errNoPayload = errors.New("no payload given")
	errNoFile    = errors.New("no capture file given")
	errNoURL     = errors.New("no URL given")
)

// withSigHandler cancels ctx on SIGINT or SIGTERM.
func withSigHandler(ctx context.Context, cancel func()) context.Context {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
	return ctx
}

func chkErr(err error) error {
	switch errors.Cause(err) {
	case context.DeadlineExceeded:
		return nil
	case context.Canceled:
		fmt.Printf("\n(Canceled)\n")
		return nil
	}
	return err
}

// decodeHex accepts payloads as printed by common tools: optional 0x prefix,
// bytes optionally separated by spaces, colons or dashes.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid payload %q", s)
	}
	return b, nil
}

// describe writes one line about b: its packet if recognized, its AD
// structures otherwise.
func describe(w io.Writer, r *beacon.Registry, b []byte) {
	if p, ok := r.Interpret(b); ok {
		fmt.Fprintf(w, "%-12s %s\n", p.Format(), packetString(p))
		return
	}
	fmt.Fprintf(w, "%-12s", "unrecognized")
	p := adv.Packet(b)
	if n := p.LocalName(); n != "" {
		fmt.Fprintf(w, " Name: %s", n)
	}
	for _, u := range p.UUIDs() {
		if n := uuid.Name(u); n != "" {
			fmt.Fprintf(w, " Svc: %s (%s)", u, n)
		} else {
			fmt.Fprintf(w, " Svc: %s", u)
		}
	}
	if md := p.ManufacturerData(); len(md) > 0 {
		fmt.Fprintf(w, " MD: %X", md)
		if id, ok := p.CompanyID(); ok && adv.CompanyName(id) != "" {
			fmt.Fprintf(w, " (%s)", adv.CompanyName(id))
		}
	}
	fmt.Fprintf(w, " [% X]\n", b)
}

func packetString(p beacon.Packet) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%X", p.Bytes())
}
