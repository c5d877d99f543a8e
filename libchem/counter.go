package libchem

import (
	"iter"
	"math"
	"math/bits"
	"slices"
	"strconv"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem/elements"
)

// Entry is a species and its (positive) count within a Counter.
type Entry struct {
	Species chem.Species
	Count   uint64
}

// Counter is an immutable multiset of atoms, i.e. a chemical formula.
//
// Entries are kept in canonical species order (see chem.Species.Compare) and no entry has a zero count.
// A Counter remembers the SpeciesTable it was built against, which is used for rendering and weight.
// Equality, ordering and Key() depend only on the entries.
//
// The zero Counter is the empty formula against the standard table.
type Counter struct {
	table   chem.SpeciesTable
	entries []Entry
}

// SaturatingAdd returns a + b, capped at math.MaxUint64.
func SaturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

// SaturatingSub returns a - b, floored at 0.
func SaturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// Table returns the SpeciesTable this counter renders and weighs against.
func (c Counter) Table() chem.SpeciesTable {
	if c.table == nil {
		return elements.Standard
	}
	return c.table
}

// Len returns the number of distinct species in this counter.
func (c Counter) Len() int {
	return len(c.entries)
}

func (c Counter) IsEmpty() bool {
	return len(c.entries) == 0
}

// Count returns how many atoms of the given species this counter has (0 if absent).
func (c Counter) Count(sp chem.Species) uint64 {
	i, found := slices.BinarySearchFunc(c.entries, sp, func(e Entry, target chem.Species) int {
		return e.Species.Compare(target)
	})
	if !found {
		return 0
	}
	return c.entries[i].Count
}

// All iterates over (species, count) in canonical species order.
func (c Counter) All() iter.Seq2[chem.Species, uint64] {
	return func(yield func(chem.Species, uint64) bool) {
		for _, e := range c.entries {
			if !yield(e.Species, e.Count) {
				return
			}
		}
	}
}

// Entries returns a copy of this counter's entries in canonical species order.
func (c Counter) Entries() []Entry {
	return slices.Clone(c.entries)
}

// Atoms returns the total number of atoms (saturating).
func (c Counter) Atoms() uint64 {
	total := uint64(0)
	for _, e := range c.entries {
		total = SaturatingAdd(total, e.Count)
	}
	return total
}

// Weight returns the sum of relative atomic mass × count over all entries.
func (c Counter) Weight() float64 {
	T := c.Table()
	weight := 0.0
	for _, e := range c.entries {
		weight += T.RelativeAtomicMass(e.Species) * float64(e.Count)
	}
	return weight
}

// AppendFormula appends the canonical formula to the given buffer: each symbol in species order followed
// by its count when the count is greater than 1.
func (c Counter) AppendFormula(dst []byte) []byte {
	T := c.Table()
	for _, e := range c.entries {
		dst = append(dst, T.Symbol(e.Species)...)
		if e.Count > 1 {
			dst = strconv.AppendUint(dst, e.Count, 10)
		}
	}
	return dst
}

// String returns the canonical formula, e.g. "H6C2O" for ethanol.
func (c Counter) String() string {
	var scrap [64]byte
	return string(c.AppendFormula(scrap[:0]))
}

// Equal returns true if both counters have the same entries.
func (c Counter) Equal(other Counter) bool {
	return slices.Equal(c.entries, other.entries)
}

// Compare orders counters entry by entry (species first, then count); a counter that is a prefix of
// another sorts first.
func (c Counter) Compare(other Counter) int {
	return slices.CompareFunc(c.entries, other.entries, func(a, b Entry) int {
		if d := a.Species.Compare(b.Species); d != 0 {
			return d
		}
		switch {
		case a.Count < b.Count:
			return -1
		case a.Count > b.Count:
			return 1
		}
		return 0
	})
}

// Key returns a canonical binary key for this counter, suitable as a map or database key.
// Two counters have the same Key iff they are Equal.
func (c Counter) Key() string {
	return string(c.AppendBinary(nil))
}

// Unsaturated returns the degree of unsaturation of the whole molecule: count(C) + 1 - count(H)/2,
// floored at 0.  Alkanes (CnH2n+2) are 0, each double bond or ring adds 1.
// A counter without carbon is always saturated.
//
// This differs by one from the acyl chain convention of Cu, where CnH2n is the saturated chain.
func (c Counter) Unsaturated() uint64 {
	numC := c.Count(chem.Carbon)
	if numC == 0 {
		return 0
	}
	return SaturatingSub(SaturatingAdd(numC, 1), c.Count(chem.Hydrogen)/2)
}

func (c Counter) Saturated() bool {
	return chem.IsSaturated(c)
}

func (c Counter) Saturation() chem.Saturation {
	return chem.SaturationOf(c)
}

// Merge returns the saturating sum of the given counters, rendered against the first counter's table.
func Merge(counters ...Counter) Counter {
	var table chem.SpeciesTable
	if len(counters) > 0 {
		table = counters[0].table
	}
	acc := NewAccumulator(table)
	for _, c := range counters {
		acc.Merge(c)
	}
	return acc.Counter()
}
