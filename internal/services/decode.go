package services

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/desertthunder/stationer/internal/shared"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// lookupEncoding resolves a WHATWG encoding label such as "windows-1251" or "koi8-r".
func lookupEncoding(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("%w: unknown encoding %q: %w", shared.ErrInvalidConfig, label, err)
	}
	return enc, nil
}

// NameDecoder repairs station names whose UTF-8 bytes were decoded with a legacy code page.
//
// Decode re-encodes the text into the code page and reads the resulting bytes as UTF-8.
// The zero value and a nil *NameDecoder leave names unchanged.
type NameDecoder struct {
	enc encoding.Encoding
}

// NewNameDecoder returns a decoder for the given code page label. An empty label disables the repair.
func NewNameDecoder(codepage string) (*NameDecoder, error) {
	if strings.TrimSpace(codepage) == "" {
		return &NameDecoder{}, nil
	}

	enc, err := lookupEncoding(codepage)
	if err != nil {
		return nil, err
	}
	return &NameDecoder{enc: enc}, nil
}

// Decode returns the repaired name.
//
// Names that cannot be represented in the code page, or whose bytes are not valid UTF-8,
// are returned unchanged.
func (d *NameDecoder) Decode(s string) string {
	if d == nil || d.enc == nil {
		return s
	}

	raw, err := d.enc.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(raw) {
		return s
	}
	return raw
}

// decodeBody wraps r so that it yields UTF-8 text from a body in the given charset.
// An empty charset returns r unchanged.
func decodeBody(r io.Reader, charset string) (io.Reader, error) {
	if strings.TrimSpace(charset) == "" {
		return r, nil
	}

	enc, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(r), nil
}
