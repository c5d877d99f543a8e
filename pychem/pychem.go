// Package pychem registers the "chem" gpython module, exposing formula parsing, saturation
// classification, CU indices, reference molecule matching and formula catalogs to Python scripts.
package pychem

import (
	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem"
	"github.com/2x3systems/chem2x3/libchem/catalog"
	"github.com/2x3systems/chem2x3/libchem/molecule"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyCatalogType = py.NewType("Catalog", "a set of canonical formulas backed by badger")
)

func argString(args py.Tuple, format string, extra ...*py.Object) (string, error) {
	var obj py.Object
	results := append([]*py.Object{&obj}, extra...)
	if err := py.ParseTuple(args, format, results...); err != nil {
		return "", err
	}
	return string(obj.(py.String)), nil
}

func truthy(obj py.Object) bool {
	switch v := obj.(type) {
	case py.Bool:
		return bool(v)
	case py.Int:
		return v != 0
	case nil, py.NoneType:
		return false
	}
	return true
}

func pyBool(b bool) py.Object {
	if b {
		return py.True
	}
	return py.False
}

func parseArg(args py.Tuple) (libchem.Counter, error) {
	formula, err := argString(args, "s")
	if err != nil {
		return libchem.Counter{}, err
	}
	return parseFormula(formula)
}

func parseFormula(formula string) (libchem.Counter, error) {
	c, err := libchem.ParseFormula(nil, formula)
	if err != nil {
		return c, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return c, nil
}

// Arg 1 (str): formula
func py_Parse(module py.Object, args py.Tuple) (py.Object, error) {
	c, err := parseArg(args)
	if err != nil {
		return nil, err
	}
	return py.String(c.String()), nil
}

// Arg 1 (str): formula
func py_Weight(module py.Object, args py.Tuple) (py.Object, error) {
	c, err := parseArg(args)
	if err != nil {
		return nil, err
	}
	return py.Float(c.Weight()), nil
}

// Arg 1 (str): formula
// Arg 2 (bool, optional): verbose
func py_Saturation(module py.Object, args py.Tuple) (py.Object, error) {
	var verbose py.Object = py.False
	formula, err := argString(args, "s|O", &verbose)
	if err != nil {
		return nil, err
	}
	c, err := parseFormula(formula)
	if err != nil {
		return nil, err
	}
	if truthy(verbose) {
		return py.String(c.Saturation().Long()), nil
	}
	return py.String(c.Saturation().String()), nil
}

// Arg 1 (str): formula
func py_Cu(module py.Object, args py.Tuple) (py.Object, error) {
	c, err := parseArg(args)
	if err != nil {
		return nil, err
	}
	return py.String(libchem.CuFromCounter(c).String()), nil
}

// Arg 1 (str): CU index "c:u"
func py_Formula(module py.Object, args py.Tuple) (py.Object, error) {
	text, err := argString(args, "s")
	if err != nil {
		return nil, err
	}
	cu, err := libchem.ParseCu(text)
	if err == nil {
		var c libchem.Counter
		if c, err = cu.Counter(nil); err == nil {
			return py.String(c.String()), nil
		}
	}
	return nil, py.ExceptionNewf(py.ValueError, "%v", err)
}

func referencePair(args py.Tuple) (A, B *molecule.Molecule, err error) {
	var nameB py.Object
	nameA, err := argString(args, "ss", &nameB)
	if err != nil {
		return
	}
	for _, name := range []string{nameA, string(nameB.(py.String))} {
		M, ok := molecule.Reference(name)
		if !ok {
			return nil, nil, py.ExceptionNewf(py.ValueError, "unknown reference molecule %q", name)
		}
		if A == nil {
			A = M
		} else {
			B = M
		}
	}
	return
}

// Arg 1 (str): reference molecule name
// Arg 2 (str): reference molecule name
func py_Isomorphic(module py.Object, args py.Tuple) (py.Object, error) {
	A, B, err := referencePair(args)
	if err != nil {
		return nil, err
	}
	return pyBool(A.IsIsomorphic(B)), nil
}

// Arg 1 (str): reference molecule name (pattern)
// Arg 2 (str): reference molecule name (target)
func py_Subgraph(module py.Object, args py.Tuple) (py.Object, error) {
	A, B, err := referencePair(args)
	if err != nil {
		return nil, err
	}
	return pyBool(A.IsIsomorphicSubgraph(B)), nil
}

func py_References(module py.Object, args py.Tuple) (py.Object, error) {
	names := molecule.ReferenceNames()
	items := make([]py.Object, len(names))
	for i, name := range names {
		items[i] = py.String(name)
	}
	return py.NewListFromItems(items), nil
}

type pyCatalog struct {
	*catalog.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

// Arg 1 (str, optional): db path; in-memory if omitted or empty
func py_OpenCatalog(module py.Object, args py.Tuple) (py.Object, error) {
	var pathObj py.Object = py.String("")
	if err := py.ParseTuple(args, "|s", &pathObj); err != nil {
		return nil, err
	}
	cat, err := catalog.Open(catalog.Opts{
		DbPathName: string(pathObj.(py.String)),
	})
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pyCatalog{cat}, nil
}

func py_Catalog_Add(self py.Object, args py.Tuple) (py.Object, error) {
	c, err := parseArg(args)
	if err != nil {
		return nil, err
	}
	added, err := self.(pyCatalog).Add(c)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pyBool(added), nil
}

func py_Catalog_Has(self py.Object, args py.Tuple) (py.Object, error) {
	c, err := parseArg(args)
	if err != nil {
		return nil, err
	}
	return pyBool(self.(pyCatalog).Has(c)), nil
}

func py_Catalog_NumFormulas(self py.Object, args py.Tuple) (py.Object, error) {
	return py.Int(self.(pyCatalog).NumFormulas()), nil
}

// Arg 1 (str, optional): "S" or "U" to select by saturation
func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	var satObj py.Object = py.String("")
	if err := py.ParseTuple(args, "|s", &satObj); err != nil {
		return nil, err
	}
	var sel catalog.Selector
	if satText := string(satObj.(py.String)); satText != "" {
		var sat chem.Saturation
		if err := sat.UnmarshalText([]byte(satText)); err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		sel.Saturation = &sat
	}

	stream := catalog.SelectFromCatalog(self.(pyCatalog).Catalog, sel)
	var items []py.Object
	for _, c := range stream.Collect() {
		items = append(items, py.String(c.String()))
	}
	if err := stream.Err(); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.NewListFromItems(items), nil
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	if err := self.(pyCatalog).Close(); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.None, nil
}

func init() {

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["add"] = py.MustNewMethod("add", py_Catalog_Add, 0, "adds a formula if absent, returning True if it was added")
		pyCatalogType.Dict["has"] = py.MustNewMethod("has", py_Catalog_Has, 0, "")
		pyCatalogType.Dict["count"] = py.MustNewMethod("count", py_Catalog_NumFormulas, 0, "")
		pyCatalogType.Dict["select"] = py.MustNewMethod("select", py_Catalog_Select, 0, "lists stored formulas, optionally by saturation")
		pyCatalogType.Dict["close"] = py.MustNewMethod("close", py_Catalog_Close, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("parse", py_Parse, 0, "returns the canonical form of a formula"),
			py.MustNewMethod("weight", py_Weight, 0, "returns the molecular weight of a formula"),
			py.MustNewMethod("saturation", py_Saturation, 0, "classifies a formula as S/U (or Saturated/Unsaturated if verbose)"),
			py.MustNewMethod("cu", py_Cu, 0, "returns the CU index of a formula"),
			py.MustNewMethod("formula", py_Formula, 0, "returns the hydrocarbon formula of a CU index"),
			py.MustNewMethod("isomorphic", py_Isomorphic, 0, "tests two reference molecules for isomorphism"),
			py.MustNewMethod("subgraph", py_Subgraph, 0, "tests if a reference molecule is an induced subgraph of another"),
			py.MustNewMethod("references", py_References, 0, "lists the reference molecule names"),
			py.MustNewMethod("open_catalog", py_OpenCatalog, 0, "opens a formula catalog (in-memory if no path is given)"),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "chem",
				Doc:  "chemical formula gpython module",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
