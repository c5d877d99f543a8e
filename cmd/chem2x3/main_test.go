package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	return runWithFlags(t, nil, args...)
}

func runWithFlags(t *testing.T, goFlags *flag.FlagSet, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(goFlags)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	pathname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(pathname, []byte(content), 0600))
	return pathname
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Catalog.Path)
	assert.False(t, cfg.Catalog.ReadOnly)

	configPath := writeFile(t, "chem2x3.yaml", `
catalog:
  path: /tmp/formulas
log:
  verbosity: 2
`)
	cfg, err = LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/formulas", cfg.Catalog.Path)
	assert.Equal(t, 2, cfg.Log.Verbosity)

	t.Setenv("CHEM2X3_CATALOG_PATH", "/var/formulas")
	t.Setenv("CHEM2X3_CATALOG_READONLY", "true")
	cfg, err = LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/var/formulas", cfg.Catalog.Path)
	assert.True(t, cfg.Catalog.ReadOnly)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigSpeciesTable(t *testing.T) {
	cfg := &Config{}
	table, err := cfg.SpeciesTable()
	require.NoError(t, err)
	sp, err := table.Lookup("C")
	require.NoError(t, err)
	assert.Equal(t, chem.Carbon, sp)

	cfg.Elements.File = writeFile(t, "elements.yaml", `
elements:
  - symbol: H
    number: 1
    mass: 1
  - symbol: C
    number: 6
    mass: 12
`)
	table, err = cfg.SpeciesTable()
	require.NoError(t, err)
	assert.Equal(t, 12.0, table.RelativeAtomicMass(chem.Carbon))
	_, err = table.Lookup("O")
	assert.ErrorIs(t, err, chem.ErrUnknownSpecies)

	cfg.Elements.File = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.SpeciesTable()
	assert.Error(t, err)
}

func TestParseCmd(t *testing.T) {
	out, err := run(t, "parse", "C2H5OH", "C2H4")
	require.NoError(t, err)
	assert.Equal(t, "H6C2O\t46.069\tSaturated\t2:0\nH4C2\t28.054\tUnsaturated\t2:0\n", out)

	out, err = run(t, "parse", "--unique", "C2H4", "CH2CH2", "H4C2", "CH4")
	require.NoError(t, err)
	assert.Equal(t, "H4C2\t28.054\tUnsaturated\t2:0\nH4C\t16.043\tSaturated\t1:0\n", out)

	_, err = run(t, "parse", "C2H5Xx")
	assert.ErrorIs(t, err, chem.ErrUnknownSpecies)
}

func TestCuCmd(t *testing.T) {
	out, err := run(t, "cu", "18:1")
	require.NoError(t, err)
	assert.Equal(t, "18:1\tH34C18\tECN=16\n", out)

	_, err = run(t, "cu", "1:2")
	assert.ErrorIs(t, err, chem.ErrHydrogenRange)

	_, err = run(t, "cu", "18")
	assert.ErrorIs(t, err, chem.ErrMalformedCu)
}

func TestMatchCmd(t *testing.T) {
	out, err := run(t, "match", "ethene", "ethene")
	require.NoError(t, err)
	assert.Equal(t, "subgraph:   true\nisomorphic: true\n", out)

	out, err = run(t, "match", "ethene", "ethane")
	require.NoError(t, err)
	assert.Equal(t, "subgraph:   false\nisomorphic: false\n", out)

	_, err = run(t, "match", "ethene", "benzene")
	assert.Error(t, err)
}

func TestCatalogCmd(t *testing.T) {
	configPath := writeFile(t, "chem2x3.yaml", "catalog:\n  path: "+filepath.Join(t.TempDir(), "catalog")+"\n")

	out, err := run(t, "--config", configPath, "catalog", "add", "CH4", "C2H4", "H4C2", "C18H32O2")
	require.NoError(t, err)
	assert.Equal(t, "H4C\tadded\nH4C2\tadded\nH4C2\texists\nH32C18O2\tadded\n", out)

	out, err = run(t, "--config", configPath, "catalog", "list")
	require.NoError(t, err)
	assert.Equal(t, "H4C\tS\nH4C2\tU\nH32C18O2\tU\n", out)

	out, err = run(t, "--config", configPath, "catalog", "list", "--saturation", "U", "--max-c", "10")
	require.NoError(t, err)
	assert.Equal(t, "H4C2\tU\n", out)

	_, err = run(t, "--config", configPath, "catalog", "list", "--saturation", "X")
	assert.Error(t, err)
}

func TestVerbosityFromConfig(t *testing.T) {
	configPath := writeFile(t, "chem2x3.yaml", "log:\n  verbosity: 3\n")

	for _, tc := range []struct {
		args     []string
		expected int
	}{
		{nil, 3},
		{[]string{"--v=0"}, 0},
		{[]string{"-v", "1"}, 1},
	} {
		fset := flag.NewFlagSet("", flag.ContinueOnError)
		v := fset.Int("v", 0, "log level")

		args := append([]string{"--config", configPath}, tc.args...)
		args = append(args, "match", "ethene", "ethene")
		_, err := runWithFlags(t, fset, args...)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, *v, "%v", tc.args)
	}
}

func TestCatalogAddReadOnly(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog")
	configPath := writeFile(t, "chem2x3.yaml", "catalog:\n  path: "+dbPath+"\n")
	_, err := run(t, "--config", configPath, "catalog", "add", "CH4")
	require.NoError(t, err)

	t.Setenv("CHEM2X3_CATALOG_READONLY", "true")
	out, err := run(t, "--config", configPath, "catalog", "add", "CH4")
	assert.ErrorIs(t, err, chem.ErrCatalogReadOnly)
	assert.NotContains(t, out, "exists")
}

func TestPyCmd(t *testing.T) {
	script := writeFile(t, "ok.py", "import chem\nassert chem.parse('CH3CH3') == 'H6C2'\n")
	_, err := run(t, "py", script)
	require.NoError(t, err)

	script = writeFile(t, "bad.py", "import chem\nchem.parse('C0')\n")
	_, err = run(t, "py", script)
	assert.Error(t, err)
}
