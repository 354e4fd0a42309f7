package adv

import (
	"strings"

	"github.com/pkg/errors"
)

var urlSchemes = []string{
	0x00: "http://www.",
	0x01: "https://www.",
	0x02: "http://",
	0x03: "https://",
}

var urlExpansions = []string{
	0x00: ".com/",
	0x01: ".org/",
	0x02: ".edu/",
	0x03: ".net/",
	0x04: ".info/",
	0x05: ".biz/",
	0x06: ".gov/",
	0x07: ".com",
	0x08: ".org",
	0x09: ".edu",
	0x0a: ".net",
	0x0b: ".info",
	0x0c: ".biz",
	0x0d: ".gov",
}

// EncodeURL compresses url into the Eddystone-URL scheme byte and encoded body.
func EncodeURL(url string) ([]byte, error) {
	scheme := -1
	// Longest prefixes first so "http://www." wins over "http://".
	for _, i := range []int{0x00, 0x01, 0x02, 0x03} {
		if strings.HasPrefix(url, urlSchemes[i]) {
			scheme = i
			break
		}
	}
	if scheme < 0 {
		return nil, errors.Errorf("unsupported URL scheme in %q", url)
	}
	b := []byte{byte(scheme)}
	rest := url[len(urlSchemes[scheme]):]
	for len(rest) > 0 {
		code := -1
		for i, e := range urlExpansions {
			if strings.HasPrefix(rest, e) && (code < 0 || len(e) > len(urlExpansions[code])) {
				code = i
			}
		}
		if code >= 0 {
			b = append(b, byte(code))
			rest = rest[len(urlExpansions[code]):]
			continue
		}
		c := rest[0]
		if c <= 0x20 || c >= 0x7F {
			return nil, errors.Errorf("invalid URL character %#x", c)
		}
		b = append(b, c)
		rest = rest[1:]
	}
	if len(b)-1 > MaxEddystoneURLLength {
		return nil, errors.Wrapf(ErrNotFit, "encoded URL is %d bytes", len(b)-1)
	}
	return b, nil
}

// DecodeURL expands an Eddystone-URL scheme byte and encoded body.
func DecodeURL(b []byte) (string, error) {
	if len(b) == 0 {
		return "", errors.New("empty URL")
	}
	if int(b[0]) >= len(urlSchemes) {
		return "", errors.Errorf("unknown URL scheme %#x", b[0])
	}
	var s strings.Builder
	s.WriteString(urlSchemes[b[0]])
	for _, c := range b[1:] {
		switch {
		case int(c) < len(urlExpansions):
			s.WriteString(urlExpansions[c])
		case c > 0x20 && c < 0x7F:
			s.WriteByte(c)
		default:
			return "", errors.Errorf("invalid URL byte %#x", c)
		}
	}
	return s.String(), nil
}
