package libchem

import (
	"math"
	"strconv"
	"strings"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/pkg/errors"
)

// Cu is the "c:u" shorthand used in fatty-acid nomenclature: a carbon number and an unsaturation count.
type Cu struct {
	C uint64 // carbon number
	U uint64 // unsaturation (double bond) count
}

// CuFromPair forms a Cu from a (c, u) pair.
func CuFromPair(c, u uint64) Cu {
	return Cu{C: c, U: u}
}

// Pair returns (c, u).
func (cu Cu) Pair() (c, u uint64) {
	return cu.C, cu.U
}

// H returns the implied hydrogen count, 2c - 2u.
//
// A Cu with U > C (or one whose hydrogen count does not fit in a uint64) has no valid hydrogen count, and
// an error wrapping chem.ErrHydrogenRange is returned.
func (cu Cu) H() (uint64, error) {
	if cu.U > cu.C {
		return 0, errors.Wrapf(chem.ErrHydrogenRange, "CU %v: unsaturation exceeds carbon number", cu)
	}
	half := cu.C - cu.U
	if half > math.MaxUint64/2 {
		return 0, errors.Wrapf(chem.ErrHydrogenRange, "CU %v: hydrogen count overflows", cu)
	}
	return 2 * half, nil
}

// ECN returns the equivalent carbon number, c - 2u.
func (cu Cu) ECN() int64 {
	return int64(cu.C) - 2*int64(cu.U)
}

// Counter returns {C: c, H: h} rendered against the given table (nil selects the standard table).
// Fails exactly when H() fails.
func (cu Cu) Counter(table chem.SpeciesTable) (Counter, error) {
	h, err := cu.H()
	if err != nil {
		return Counter{}, err
	}
	acc := NewAccumulator(table)
	acc.Add(chem.Carbon, cu.C)
	acc.Add(chem.Hydrogen, h)
	return acc.Counter(), nil
}

// CuFromCounter reads a Cu from a counter: c = count(C), u = c - count(H)/2.
//
// This is a lossy inverse of Cu.Counter(): it ignores all other species, truncates an odd hydrogen count,
// and floors u at 0 for counters with more hydrogen than a saturated chain (e.g. alkanes).
func CuFromCounter(counter Counter) Cu {
	c := counter.Count(chem.Carbon)
	h := counter.Count(chem.Hydrogen)
	return Cu{
		C: c,
		U: SaturatingSub(c, h/2),
	}
}

// String returns "c:u".
func (cu Cu) String() string {
	var scrap [48]byte
	return string(cu.AppendText(scrap[:0]))
}

func (cu Cu) AppendText(dst []byte) []byte {
	dst = strconv.AppendUint(dst, cu.C, 10)
	dst = append(dst, ':')
	dst = strconv.AppendUint(dst, cu.U, 10)
	return dst
}

// ParseCu parses the "c:u" form.
func ParseCu(str string) (Cu, error) {
	cStr, uStr, found := strings.Cut(str, ":")
	if !found {
		return Cu{}, errors.Wrapf(chem.ErrMalformedCu, "%q: missing ':'", str)
	}
	c, err := strconv.ParseUint(cStr, 10, 64)
	if err != nil {
		return Cu{}, errors.Wrapf(chem.ErrMalformedCu, "%q: bad carbon number", str)
	}
	u, err := strconv.ParseUint(uStr, 10, 64)
	if err != nil {
		return Cu{}, errors.Wrapf(chem.ErrMalformedCu, "%q: bad unsaturation", str)
	}
	return Cu{C: c, U: u}, nil
}

func (cu Cu) MarshalText() ([]byte, error) {
	return cu.AppendText(nil), nil
}

func (cu *Cu) UnmarshalText(text []byte) error {
	parsed, err := ParseCu(string(text))
	if err != nil {
		return err
	}
	*cu = parsed
	return nil
}

// Compare orders by carbon number, then unsaturation.
func (cu Cu) Compare(other Cu) int {
	switch {
	case cu.C < other.C:
		return -1
	case cu.C > other.C:
		return 1
	case cu.U < other.U:
		return -1
	case cu.U > other.U:
		return 1
	}
	return 0
}
