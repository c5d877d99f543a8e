package libchem_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuRoundTrip(t *testing.T) {
	oleic := libchem.Cu{C: 18, U: 1}

	h, err := oleic.H()
	require.NoError(t, err)
	assert.Equal(t, uint64(34), h)
	assert.Equal(t, "18:1", oleic.String())

	c, err := oleic.Counter(nil)
	require.NoError(t, err)
	assert.Equal(t, "H34C18", c.String())
	assert.Equal(t, uint64(18), c.Count(chem.Carbon))
	assert.Equal(t, uint64(34), c.Count(chem.Hydrogen))

	assert.Equal(t, oleic, libchem.CuFromCounter(c))
}

func TestCuHydrogenRange(t *testing.T) {
	_, err := libchem.Cu{C: 2, U: 3}.H()
	assert.ErrorIs(t, err, chem.ErrHydrogenRange)

	_, err = libchem.Cu{C: 2, U: 3}.Counter(nil)
	assert.ErrorIs(t, err, chem.ErrHydrogenRange)

	_, err = libchem.Cu{C: math.MaxUint64, U: 0}.H()
	assert.ErrorIs(t, err, chem.ErrHydrogenRange)

	h, err := libchem.Cu{C: 3, U: 3}.H()
	require.NoError(t, err)
	assert.Zero(t, h)

	c, err := libchem.Cu{C: 3, U: 3}.Counter(nil)
	require.NoError(t, err)
	assert.Equal(t, "C3", c.String(), "zero hydrogens leave no entry")
}

func TestCuFromCounterIsLossy(t *testing.T) {
	// odd hydrogen counts truncate
	assert.Equal(t, libchem.Cu{C: 2, U: 0}, libchem.CuFromCounter(libchem.MustParseFormula("C2H5")))

	// alkanes carry more hydrogen than a chain; u floors at 0
	assert.Equal(t, libchem.Cu{C: 2, U: 0}, libchem.CuFromCounter(libchem.MustParseFormula("C2H6")))
	assert.Equal(t, libchem.Cu{C: 0, U: 0}, libchem.CuFromCounter(libchem.MustParseFormula("H2O")))

	// other species are ignored
	assert.Equal(t, libchem.Cu{C: 16, U: 0}, libchem.CuFromCounter(libchem.MustParseFormula("C16H32O2")))
}

func TestCuPairAndECN(t *testing.T) {
	cu := libchem.CuFromPair(20, 4)
	c, u := cu.Pair()
	assert.Equal(t, uint64(20), c)
	assert.Equal(t, uint64(4), u)
	assert.Equal(t, int64(12), cu.ECN())
	assert.Equal(t, int64(-2), libchem.Cu{C: 2, U: 2}.ECN())
}

func TestParseCu(t *testing.T) {
	cu, err := libchem.ParseCu("22:6")
	require.NoError(t, err)
	assert.Equal(t, libchem.Cu{C: 22, U: 6}, cu)

	for _, bad := range []string{"", "22", "22:", ":6", "a:1", "1:-1", "1:2:3"} {
		_, err = libchem.ParseCu(bad)
		assert.ErrorIs(t, err, chem.ErrMalformedCu, bad)
	}
}

func TestCuCompare(t *testing.T) {
	assert.Negative(t, libchem.Cu{C: 16, U: 0}.Compare(libchem.Cu{C: 18, U: 0}))
	assert.Negative(t, libchem.Cu{C: 18, U: 1}.Compare(libchem.Cu{C: 18, U: 2}))
	assert.Zero(t, libchem.Cu{C: 18, U: 1}.Compare(libchem.Cu{C: 18, U: 1}))
	assert.Positive(t, libchem.Cu{C: 20, U: 0}.Compare(libchem.Cu{C: 18, U: 3}))
}

func TestCuJSON(t *testing.T) {
	type chain struct {
		Name string     `json:"name"`
		Cu   libchem.Cu `json:"cu"`
	}
	buf, err := json.Marshal(chain{Name: "linoleic", Cu: libchem.Cu{C: 18, U: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"linoleic","cu":"18:2"}`, string(buf))

	var got chain
	require.NoError(t, json.Unmarshal(buf, &got))
	assert.Equal(t, libchem.Cu{C: 18, U: 2}, got.Cu)
}

func TestCounterSaturation(t *testing.T) {
	ethane := libchem.MustParseFormula("C2H6")
	assert.Equal(t, uint64(0), ethane.Unsaturated())
	assert.True(t, ethane.Saturated())
	assert.Equal(t, chem.Saturated, ethane.Saturation())

	ethene := libchem.MustParseFormula("C2H4")
	assert.Equal(t, uint64(1), ethene.Unsaturated())
	assert.False(t, ethene.Saturated())
	assert.Equal(t, chem.Unsaturated, chem.SaturationOf(ethene))

	// a Counter is usable wherever a chem.Saturable is expected
	var s chem.Saturable = libchem.MustParseFormula("C18H32")
	assert.Equal(t, uint64(3), s.Unsaturated())
	assert.Equal(t, chem.Unsaturated, chem.SaturationOf(s))

	// the CU of the same formula counts chain unsaturation, one less
	assert.Equal(t, uint64(2), libchem.CuFromCounter(libchem.MustParseFormula("C18H32")).U)

	for formula, expected := range map[string]uint64{
		"CH4":    0,
		"C3H8":   0,
		"C6H6":   4,
		"C2H2":   2,
		"H2O":    0,
		"C2H5OH": 0,
		"C60":    61,
		"":       0,
	} {
		c, err := libchem.ParseFormula(nil, formula)
		require.NoError(t, err)
		assert.Equal(t, expected, c.Unsaturated(), formula)
	}
}
