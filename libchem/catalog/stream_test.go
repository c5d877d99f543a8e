package catalog_test

import (
	"testing"

	"github.com/2x3systems/chem2x3/libchem"
	"github.com/2x3systems/chem2x3/libchem/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, formulas ...string) []libchem.Counter {
	out := make([]libchem.Counter, len(formulas))
	for i, f := range formulas {
		c, err := libchem.ParseFormula(nil, f)
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func strs(counters []libchem.Counter) []string {
	out := make([]string, len(counters))
	for i, c := range counters {
		out[i] = c.String()
	}
	return out
}

func TestDropDupes(t *testing.T) {
	dd := catalog.NewDropDupes(catalog.DropDupeOpts{PoolSz: 8})
	assert.True(t, dd.TryAdd(libchem.MustParseFormula("C2H5OH")))
	assert.False(t, dd.TryAdd(libchem.MustParseFormula("H6C2O")))
	for _, f := range formulas {
		assert.True(t, dd.TryAdd(libchem.MustParseFormula(f)), f)
	}
	for _, f := range formulas {
		assert.False(t, dd.TryAdd(libchem.MustParseFormula(f)), f)
	}
}

func TestStreams(t *testing.T) {
	in := parseAll(t, "CH4", "C2H4", "H4C", "CH2CH2", "C3H6", "H2O")

	out := catalog.StreamFormulas(in...).DropDupes().Collect()
	assert.Equal(t, []string{"H4C", "H4C2", "H6C3", "H2O"}, strs(out))

	unsat := catalog.StreamFormulas(in...).
		DropDupes().
		Filter(func(c libchem.Counter) bool { return !c.Saturated() }).
		PullAll()
	assert.Equal(t, 2, unsat)

	cat, err := catalog.Open(catalog.Opts{})
	require.NoError(t, err)
	defer cat.Close()

	added := catalog.StreamFormulas(in...).AddTo(cat).Collect()
	assert.Equal(t, []string{"H4C", "H4C2", "H6C3", "H2O"}, strs(added))
	assert.EqualValues(t, 4, cat.NumFormulas())

	assert.Equal(t, 0, catalog.StreamFormulas(in...).AddTo(cat).PullAll())

	selected := catalog.SelectFromCatalog(cat, catalog.DefaultSelector).Collect()
	assert.Equal(t, []string{"H2O", "H4C", "H4C2", "H6C3"}, strs(selected))
}
