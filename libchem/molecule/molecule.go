package molecule

import (
	"iter"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem"
)

// Bond is a bond order: 1 for a single bond, 2 for a double bond, and so on.
type Bond uint8

const (
	Single Bond = 1
	Double Bond = 2
	Triple Bond = 3
)

// Molecule is a graph of atoms (nodes labelled by species) joined by bonds (edges weighted by bond order).
//
// Valences are not checked as a molecule is built.
type Molecule struct {
	Graph[chem.Species, Bond]
}

// New returns an empty Molecule.
func New() *Molecule {
	return &Molecule{}
}

// Hydrogens iterates over the hydrogen atoms of this molecule.
func (M *Molecule) Hydrogens() iter.Seq[NodeIndex] {
	return M.Atoms(chem.Hydrogen)
}

// Carbons iterates over the carbon atoms of this molecule.
func (M *Molecule) Carbons() iter.Seq[NodeIndex] {
	return M.Atoms(chem.Carbon)
}

// Atoms iterates over the atoms of the given species.
func (M *Molecule) Atoms(sp chem.Species) iter.Seq[NodeIndex] {
	return M.NodesWhere(func(label chem.Species) bool {
		return label == sp
	})
}

// Valence returns the sum of the bond orders incident to the given atom.
func (M *Molecule) Valence(n NodeIndex) uint {
	valence := uint(0)
	for _, bond := range M.Neighbors(n) {
		valence += uint(bond)
	}
	return valence
}

// Counter returns the molecular formula of this molecule, rendered against the given table (nil selects
// the standard table).
func (M *Molecule) Counter(table chem.SpeciesTable) libchem.Counter {
	acc := libchem.NewAccumulator(table)
	for _, sp := range M.nodes {
		acc.Add(sp, 1)
	}
	return acc.Counter()
}

// IsIsomorphicSubgraph returns true if M matches an induced subgraph of other, with atoms matched by
// species and bonds matched by order.
func (M *Molecule) IsIsomorphicSubgraph(other *Molecule) bool {
	if !M.fitsWithin(other) {
		return false
	}
	return IsIsomorphicSubgraphMatching(&M.Graph, &other.Graph, speciesEqual, bondEqual)
}

// IsIsomorphic returns true if M and other are the same structure.
func (M *Molecule) IsIsomorphic(other *Molecule) bool {
	if M.NodeCount() != other.NodeCount() || !M.fitsWithin(other) {
		return false
	}
	return IsIsomorphicMatching(&M.Graph, &other.Graph, speciesEqual, bondEqual)
}

// fitsWithin is a quick necessary condition for a match: other has at least as many atoms of each species.
func (M *Molecule) fitsWithin(other *Molecule) bool {
	need := M.speciesCounts()
	for _, sp := range other.nodes {
		if n, ok := need[sp]; ok {
			need[sp] = n - 1
		}
	}
	for _, n := range need {
		if n > 0 {
			return false
		}
	}
	return true
}

func (M *Molecule) speciesCounts() map[chem.Species]int {
	counts := make(map[chem.Species]int, 4)
	for _, sp := range M.nodes {
		counts[sp]++
	}
	return counts
}

func speciesEqual(a, b chem.Species) bool {
	return a == b
}

func bondEqual(a, b Bond) bool {
	return a == b
}
