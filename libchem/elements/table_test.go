package elements_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem/elements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardLookup(t *testing.T) {
	T := elements.Standard

	C, err := T.Lookup("C")
	require.NoError(t, err)
	assert.Equal(t, chem.Carbon, C)
	assert.Equal(t, "C", T.Symbol(C))
	assert.InDelta(t, 12.011, T.RelativeAtomicMass(C), 1e-9)

	D, err := T.Lookup("D")
	require.NoError(t, err)
	assert.Equal(t, chem.Species{Number: 1, Isotope: 2}, D)

	Na, err := T.Lookup("Na")
	require.NoError(t, err)
	assert.Equal(t, uint8(11), Na.Number)

	_, err = T.Lookup("Xx")
	assert.ErrorIs(t, err, chem.ErrUnknownSpecies)

	assert.Equal(t, "?", T.Symbol(chem.Species{Number: 117}))
	assert.Zero(t, T.RelativeAtomicMass(chem.Species{Number: 117}))
}

func TestStandardOrder(t *testing.T) {
	elems := elements.Standard.Elements()
	require.Equal(t, elements.Standard.Len(), len(elems))
	assert.Equal(t, "H", elems[0].Symbol)
	assert.Equal(t, "D", elems[1].Symbol)
	assert.Equal(t, "T", elems[2].Symbol)
	for i := 1; i < len(elems); i++ {
		assert.Negative(t, elems[i-1].Species.Compare(elems[i].Species))
	}
}

func TestNewTableRejects(t *testing.T) {
	C := elements.Element{Species: chem.Carbon, Symbol: "C", Mass: 12}

	_, err := elements.NewTable(C, elements.Element{Species: chem.Oxygen, Symbol: "C", Mass: 16})
	assert.Error(t, err, "duplicate symbol")

	_, err = elements.NewTable(C, elements.Element{Species: chem.Carbon, Symbol: "Cx", Mass: 12})
	assert.Error(t, err, "duplicate species")

	_, err = elements.NewTable(elements.Element{Species: chem.Carbon, Symbol: "c", Mass: 12})
	assert.Error(t, err, "lowercase symbol")

	_, err = elements.NewTable(elements.Element{Species: chem.Carbon, Symbol: "C1", Mass: 12})
	assert.Error(t, err, "digit in symbol")

	_, err = elements.NewTable(elements.Element{Symbol: "Q", Mass: 1})
	assert.Error(t, err, "no atomic number")

	_, err = elements.NewTable(elements.Element{Species: chem.Carbon, Symbol: "C"})
	assert.Error(t, err, "no mass")
}

const labelledTable = `
elements:
  - symbol: H
    number: 1
    mass: 1.008
  - symbol: C
    number: 6
    mass: 12.011
  - symbol: Cx
    number: 6
    isotope: 13
    mass: 13.00335
`

func TestLoadYAML(t *testing.T) {
	T, err := elements.LoadYAML(strings.NewReader(labelledTable))
	require.NoError(t, err)
	assert.Equal(t, 3, T.Len())

	C13, err := T.Lookup("Cx")
	require.NoError(t, err)
	assert.Equal(t, chem.Species{Number: 6, Isotope: 13}, C13)
	assert.InDelta(t, 13.00335, T.RelativeAtomicMass(C13), 1e-9)

	var buf bytes.Buffer
	require.NoError(t, T.WriteYAML(&buf))

	T2, err := elements.LoadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, T.Elements(), T2.Elements())
}

func TestLoadYAMLErrors(t *testing.T) {
	_, err := elements.LoadYAML(strings.NewReader("elements: []\n"))
	assert.Error(t, err)

	_, err = elements.LoadYAML(strings.NewReader("elements:\n  - symbol: C\n    weight: 12\n"))
	assert.Error(t, err, "unknown field")

	_, err = elements.LoadYAML(strings.NewReader("elements:\n  - symbol: C\n    number: 6\n"))
	assert.Error(t, err, "missing mass")
}
