// Package elements provides SpeciesTable implementations: the standard element table and tables loaded
// from YAML.
package elements

import (
	"slices"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/pkg/errors"
)

// Element is one row of a species table.
type Element struct {
	Species chem.Species
	Symbol  string
	Mass    float64 // relative atomic mass
}

// Table is an immutable chem.SpeciesTable.
type Table struct {
	bySymbol  map[string]Element
	bySpecies map[chem.Species]Element
}

// NewTable builds a Table from the given elements.
// Symbols must match the formula grammar (an uppercase letter followed by lowercase letters) and both
// symbols and species must be unique.
func NewTable(elems ...Element) (*Table, error) {
	T := &Table{
		bySymbol:  make(map[string]Element, len(elems)),
		bySpecies: make(map[chem.Species]Element, len(elems)),
	}
	for _, e := range elems {
		if !isSymbol(e.Symbol) {
			return nil, errors.Errorf("bad element symbol %q", e.Symbol)
		}
		if e.Species.IsZero() {
			return nil, errors.Errorf("element %q has no atomic number", e.Symbol)
		}
		if e.Mass <= 0 {
			return nil, errors.Errorf("element %q has a non-positive mass", e.Symbol)
		}
		if _, dupe := T.bySymbol[e.Symbol]; dupe {
			return nil, errors.Errorf("duplicate element symbol %q", e.Symbol)
		}
		if _, dupe := T.bySpecies[e.Species]; dupe {
			return nil, errors.Errorf("duplicate species for element %q", e.Symbol)
		}
		T.bySymbol[e.Symbol] = e
		T.bySpecies[e.Species] = e
	}
	return T, nil
}

func isSymbol(str string) bool {
	if len(str) == 0 || str[0] < 'A' || str[0] > 'Z' {
		return false
	}
	for i := 1; i < len(str); i++ {
		if str[i] < 'a' || str[i] > 'z' {
			return false
		}
	}
	return true
}

func (T *Table) Lookup(symbol string) (chem.Species, error) {
	e, ok := T.bySymbol[symbol]
	if !ok {
		return chem.Species{}, errors.Wrapf(chem.ErrUnknownSpecies, "symbol %q", symbol)
	}
	return e.Species, nil
}

// Symbol returns "?" for a species not in this table.
func (T *Table) Symbol(sp chem.Species) string {
	if e, ok := T.bySpecies[sp]; ok {
		return e.Symbol
	}
	return "?"
}

// RelativeAtomicMass returns 0 for a species not in this table.
func (T *Table) RelativeAtomicMass(sp chem.Species) float64 {
	return T.bySpecies[sp].Mass
}

// Len returns the number of elements in this table.
func (T *Table) Len() int {
	return len(T.bySymbol)
}

// Elements returns the elements of this table in canonical species order.
func (T *Table) Elements() []Element {
	elems := make([]Element, 0, len(T.bySpecies))
	for _, e := range T.bySpecies {
		elems = append(elems, e)
	}
	slices.SortFunc(elems, func(a, b Element) int {
		return a.Species.Compare(b.Species)
	})
	return elems
}

// Standard is the standard table: abridged IUPAC standard atomic weights plus deuterium and tritium.
var Standard = mustTable(standardElements)

func mustTable(elems []Element) *Table {
	T, err := NewTable(elems...)
	if err != nil {
		panic(err)
	}
	return T
}

func el(Z uint8, symbol string, mass float64) Element {
	return Element{
		Species: chem.Species{Number: Z},
		Symbol:  symbol,
		Mass:    mass,
	}
}

var standardElements = []Element{
	el(1, "H", 1.008),
	{Species: chem.Species{Number: 1, Isotope: 2}, Symbol: "D", Mass: 2.014102},
	{Species: chem.Species{Number: 1, Isotope: 3}, Symbol: "T", Mass: 3.016049},
	el(2, "He", 4.0026),
	el(3, "Li", 6.94),
	el(4, "Be", 9.0122),
	el(5, "B", 10.81),
	el(6, "C", 12.011),
	el(7, "N", 14.007),
	el(8, "O", 15.999),
	el(9, "F", 18.998),
	el(10, "Ne", 20.180),
	el(11, "Na", 22.990),
	el(12, "Mg", 24.305),
	el(13, "Al", 26.982),
	el(14, "Si", 28.085),
	el(15, "P", 30.974),
	el(16, "S", 32.06),
	el(17, "Cl", 35.45),
	el(18, "Ar", 39.95),
	el(19, "K", 39.098),
	el(20, "Ca", 40.078),
	el(21, "Sc", 44.956),
	el(22, "Ti", 47.867),
	el(23, "V", 50.942),
	el(24, "Cr", 51.996),
	el(25, "Mn", 54.938),
	el(26, "Fe", 55.845),
	el(27, "Co", 58.933),
	el(28, "Ni", 58.693),
	el(29, "Cu", 63.546),
	el(30, "Zn", 65.38),
	el(31, "Ga", 69.723),
	el(32, "Ge", 72.630),
	el(33, "As", 74.922),
	el(34, "Se", 78.971),
	el(35, "Br", 79.904),
	el(36, "Kr", 83.798),
	el(37, "Rb", 85.468),
	el(38, "Sr", 87.62),
	el(39, "Y", 88.906),
	el(40, "Zr", 91.224),
	el(41, "Nb", 92.906),
	el(42, "Mo", 95.95),
	el(44, "Ru", 101.07),
	el(45, "Rh", 102.91),
	el(46, "Pd", 106.42),
	el(47, "Ag", 107.87),
	el(48, "Cd", 112.41),
	el(49, "In", 114.82),
	el(50, "Sn", 118.71),
	el(51, "Sb", 121.76),
	el(52, "Te", 127.60),
	el(53, "I", 126.90),
	el(54, "Xe", 131.29),
	el(55, "Cs", 132.91),
	el(56, "Ba", 137.33),
	el(78, "Pt", 195.08),
	el(79, "Au", 196.97),
	el(80, "Hg", 200.59),
	el(82, "Pb", 207.2),
	el(83, "Bi", 208.98),
}
