package molecule

import (
	"slices"

	"github.com/2x3systems/chem2x3/chem"
)

// alkane builds the linear alkane with n carbons (CnH2n+2): a chain of single bonds with each carbon
// filled out with hydrogens to a valence of 4.  Returns nil for n < 1.
func alkane(n int) *Molecule {
	if n < 1 {
		return nil
	}
	return buildChain(n, 0)
}

// alkene builds the linear 1-alkene with n carbons (CnH2n): as alkane, except the first two carbons of the
// chain share a double bond.  Returns nil for n < 2.
func alkene(n int) *Molecule {
	if n < 2 {
		return nil
	}
	return buildChain(n, 1)
}

// buildChain adds n carbons and then their hydrogens; bonds are added chain first, then C-H bonds in
// carbon order.  The first numDouble chain bonds are double bonds.
func buildChain(n, numDouble int) *Molecule {
	M := New()

	carbons := make([]NodeIndex, n)
	for i := range carbons {
		carbons[i] = M.AddNode(chem.Carbon)
	}

	chain := make([]Bond, n)
	for i := 0; i < n-1; i++ {
		bond := Single
		if i < numDouble {
			bond = Double
		}
		chain[i] = bond
	}

	var hydrogens []int
	totalH := 0
	for i := range carbons {
		used := 0
		if i > 0 {
			used += int(chain[i-1])
		}
		if i < n-1 {
			used += int(chain[i])
		}
		hydrogens = append(hydrogens, 4-used)
		totalH += 4 - used
	}

	H := make([]NodeIndex, totalH)
	for i := range H {
		H[i] = M.AddNode(chem.Hydrogen)
	}

	for i := 0; i < n-1; i++ {
		M.AddEdge(carbons[i], carbons[i+1], chain[i])
	}
	hi := 0
	for i, numH := range hydrogens {
		for j := 0; j < numH; j++ {
			M.AddEdge(H[hi], carbons[i], Single)
			hi++
		}
	}

	return M
}

// Methane (CH4)
func Methane() *Molecule { return alkane(1) }

// Ethane (C2H6)
func Ethane() *Molecule { return alkane(2) }

// Propane (C3H8)
func Propane() *Molecule { return alkane(3) }

// Ethene (C2H4)
func Ethene() *Molecule { return alkene(2) }

// Propene (C3H6)
func Propene() *Molecule { return alkene(3) }

// Butene (C4H8)
func Butene() *Molecule { return alkene(4) }

// Pentene (C5H10)
func Pentene() *Molecule { return alkene(5) }

var sReferences = map[string]func() *Molecule{
	"methane": Methane,
	"ethane":  Ethane,
	"propane": Propane,
	"ethene":  Ethene,
	"propene": Propene,
	"butene":  Butene,
	"pentene": Pentene,
}

// Reference builds the named molecule from the reference library (e.g. "ethene").
func Reference(name string) (*Molecule, bool) {
	build, ok := sReferences[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// ReferenceNames returns the names accepted by Reference, sorted.
func ReferenceNames() []string {
	names := make([]string, 0, len(sReferences))
	for name := range sReferences {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
