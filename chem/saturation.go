package chem

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Saturation is the binary saturation state derived from a degree of unsaturation.
type Saturation int8

const (
	Saturated   Saturation = 0
	Unsaturated Saturation = 1
)

// Saturable is implemented by anything that can report a degree of unsaturation.
type Saturable interface {
	Unsaturated() uint64
}

// IsSaturated returns true if s reports no unsaturation.
func IsSaturated(s Saturable) bool {
	return s.Unsaturated() == 0
}

// SaturationOf classifies s.
func SaturationOf(s Saturable) Saturation {
	if IsSaturated(s) {
		return Saturated
	}
	return Unsaturated
}

// String returns the compact form, "S" or "U".
func (s Saturation) String() string {
	if s == Saturated {
		return "S"
	}
	return "U"
}

// Long returns the verbose form, "Saturated" or "Unsaturated".
func (s Saturation) Long() string {
	if s == Saturated {
		return "Saturated"
	}
	return "Unsaturated"
}

// Format supports %s, %v and %q, where the '+' flag (e.g. %+v) selects the verbose form.
func (s Saturation) Format(f fmt.State, verb rune) {
	str := s.String()
	if f.Flag('+') {
		str = s.Long()
	}
	switch verb {
	case 'q':
		fmt.Fprintf(f, "%q", str)
	case 'd':
		fmt.Fprintf(f, "%d", int8(s))
	default:
		io.WriteString(f, str)
	}
}

func (s Saturation) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts both the compact and the verbose form.
func (s *Saturation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "S", "Saturated":
		*s = Saturated
	case "U", "Unsaturated":
		*s = Unsaturated
	default:
		return errors.Errorf("bad saturation %q", text)
	}
	return nil
}
