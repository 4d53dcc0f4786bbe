// package models defines the data model for the station catalog reconciler
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxNameLength is the number of characters of a station name kept by the local store.
const MaxNameLength = 15

// Category codes used by the local store.
const (
	CategoryFavourite = 2
	CategoryNormal    = 3
)

// Broadcast band limits, inclusive.
const (
	BandLow  Frequency = 875
	BandHigh Frequency = 1080
)

var ErrInvalidFrequency = errors.New("invalid frequency")

// Frequency is a broadcast frequency counted in tenths of a MHz (98.5 MHz == 985).
type Frequency int

// FrequencyFromTenths converts the store's integer encoding into a [Frequency].
func FrequencyFromTenths(tenths int) Frequency { return Frequency(tenths) }

// Tenths returns the integer encoding written to the local store.
func (f Frequency) Tenths() int { return int(f) }

// MHz returns the frequency in megahertz.
func (f Frequency) MHz() float64 { return float64(f) / 10 }

// InBand reports whether f lies within [BandLow, BandHigh].
func (f Frequency) InBand() bool { return f >= BandLow && f <= BandHigh }

// String renders the frequency with one decimal place, e.g. "98.5".
func (f Frequency) String() string {
	sign := ""
	n := int(f)
	if n < 0 {
		sign, n = "-", -n
	}
	return fmt.Sprintf("%s%d.%d", sign, n/10, n%10)
}

// ParseFrequency parses a decimal frequency in MHz.
//
// Both "." and "," are accepted as the decimal separator. Digits beyond the first fractional
// digit are dropped, so 98.55 truncates toward zero to 98.5.
func ParseFrequency(s string) (Frequency, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if raw == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidFrequency)
	}

	whole, frac, _ := strings.Cut(raw, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}

	mhz, err := strconv.Atoi(whole)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidFrequency, s, err)
	}

	tenth := 0
	if frac != "" {
		tenth = int(frac[0] - '0')
	}

	return Frequency(mhz*10 + tenth), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Station is one broadcast entry.
//
// URL, HasRDS, Capacity and Tower are only populated on stations read from the reference
// source and are never persisted.
type Station struct {
	Frequency Frequency
	Name      string
	URL       string
	HasRDS    bool
	Capacity  float64 // Transmitter power in kW
	Tower     string
}

// StoredName returns the name as the local store keeps it.
func (s Station) StoredName() string {
	return Truncate(s.Name, MaxNameLength)
}

// Truncate returns the first maxLen characters of name, or name itself if it is shorter.
func Truncate(name string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	n := 0
	for i := range name {
		if n == maxLen {
			return name[:i]
		}
		n++
	}
	return name
}
