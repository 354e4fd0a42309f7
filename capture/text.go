package capture

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// TextSource reads the line oriented text format.
type TextSource struct {
	sc   *bufio.Scanner
	line int
}

// NewTextSource reads text records from r.
func NewTextSource(r io.Reader) *TextSource {
	return &TextSource{sc: bufio.NewScanner(r)}
}

// Next ...
func (s *TextSource) Next() (Record, error) {
	for s.sc.Scan() {
		s.line++
		l := strings.TrimSpace(s.sc.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		r, err := ParseLine(l)
		if err != nil {
			return Record{}, errors.Wrapf(err, "line %d", s.line)
		}
		return r, nil
	}
	if err := s.sc.Err(); err != nil {
		return Record{}, err
	}
	return Record{}, io.EOF
}

// ParseLine parses a single "time address rssi payload" line.
func ParseLine(l string) (Record, error) {
	f := strings.Fields(l)
	if len(f) != 4 {
		return Record{}, errors.Errorf("want 4 fields, got %d", len(f))
	}
	t, err := time.Parse(time.RFC3339Nano, f[0])
	if err != nil {
		return Record{}, errors.Wrap(err, "bad time")
	}
	rssi, err := strconv.Atoi(f[2])
	if err != nil {
		return Record{}, errors.Wrap(err, "bad rssi")
	}
	data := []byte{}
	if f[3] != noPayload {
		if data, err = hex.DecodeString(f[3]); err != nil {
			return Record{}, errors.Wrap(err, "bad payload")
		}
	}
	return Record{Time: t, Addr: strings.ToUpper(f[1]), RSSI: rssi, Data: data}, nil
}

// noPayload stands in for an empty payload so every line keeps four fields.
const noPayload = "-"

// FormatLine renders r in the text format.
func FormatLine(r Record) string {
	data := noPayload
	if len(r.Data) > 0 {
		data = hex.EncodeToString(r.Data)
	}
	return fmt.Sprintf("%s %s %d %s", r.Time.UTC().Format(time.RFC3339Nano), r.Addr, r.RSSI, data)
}
