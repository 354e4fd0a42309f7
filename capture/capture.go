// Package capture replays recorded advertisements.
//
// Two formats are understood: pcap / pcapng files of HCI traffic (as saved by
// Wireshark or btmon) and a plain text format with one advertisement per line:
//
//	2018-02-05T10:00:00.000Z C0:FF:EE:12:34:56 -71 0201061aff4c00...
//
// An empty payload is written as "-". Lines starting with # and blank lines
// are ignored.
package capture

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"time"

	"github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
)

var logger = log.New("capture")

// Logger returns the package logger.
func Logger() log.Logger { return logger }

// Record is one received advertisement.
type Record struct {
	Time time.Time
	Addr string
	RSSI int
	Data []byte

	// Connectable is only known for HCI captures; text captures leave it false.
	Connectable bool
}

// Source yields records in capture order. Next returns io.EOF after the last record.
type Source interface {
	Next() (Record, error)
}

// File is a Source reading from a file on disk.
type File struct {
	Source
	f *os.File
}

// Close closes the underlying file.
func (f *File) Close() error { return f.f.Close() }

var (
	pcapMagic = [][]byte{
		{0xa1, 0xb2, 0xc3, 0xd4}, // microsecond, big endian
		{0xd4, 0xc3, 0xb2, 0xa1}, // microsecond, little endian
		{0xa1, 0xb2, 0x3c, 0x4d}, // nanosecond, big endian
		{0x4d, 0x3c, 0xb2, 0xa1}, // nanosecond, little endian
	}
	pcapngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}
)

// Open opens a capture file, telling pcap, pcapng and text captures apart by
// their first bytes.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't open capture")
	}
	s, err := NewSource(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "can't read capture %s", path)
	}
	return &File{Source: s, f: f}, nil
}

// NewSource returns a Source for r, detecting its format.
func NewSource(r io.Reader) (Source, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if bytes.Equal(head, pcapngMagic) {
		return NewPcapngSource(br)
	}
	for _, m := range pcapMagic {
		if bytes.Equal(head, m) {
			return NewPcapSource(br)
		}
	}
	return NewTextSource(br), nil
}
