package chem

// Species identifies an atomic element, optionally a specific isotope of it.
//
// Species values are comparable and serve as map keys.  Symbols and relative atomic masses are not part
// of the identity; they are supplied by the SpeciesTable a species was looked up in.
type Species struct {
	Number  uint8  // atomic number (1..118)
	Isotope uint16 // mass number; 0 denotes the element at natural abundance
}

// Well-known species used by derived properties (CU index, saturation, reference molecules).
var (
	Hydrogen = Species{Number: 1}
	Carbon   = Species{Number: 6}
	Oxygen   = Species{Number: 8}
)

// Compare defines the canonical species order: ascending atomic number, then ascending mass number.
//
// Every ordered view of atoms (formula rendering, counter iteration, encodings) uses this order.
func (sp Species) Compare(other Species) int {
	if d := int(sp.Number) - int(other.Number); d != 0 {
		return d
	}
	return int(sp.Isotope) - int(other.Isotope)
}

// IsZero returns true if sp is not a valid species.
func (sp Species) IsZero() bool {
	return sp.Number == 0
}

// SpeciesTable maps element symbols to species and reports per-species reference data.
type SpeciesTable interface {

	// Lookup returns the species for the given symbol (e.g. "C", "Na", "D").
	// Returns an error wrapping ErrUnknownSpecies if the symbol is not in this table.
	Lookup(symbol string) (Species, error)

	// Symbol returns the symbol for the given species, used when rendering formulas.
	Symbol(sp Species) string

	// RelativeAtomicMass returns the relative atomic mass (standard atomic weight) of the given species.
	RelativeAtomicMass(sp Species) float64
}
