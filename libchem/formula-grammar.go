package libchem

import (
	"strconv"
	"sync"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem/elements"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// FormulaExpr is a formula as written: a run of terms with no separators, e.g. "C2H5OH".
type FormulaExpr struct {
	Terms []*Term `@@*`
}

// Term is an element symbol followed by an optional count ("" implies 1).
type Term struct {
	Pos    lexer.Position
	Symbol string `@Symbol`
	Count  string `@Count?`
}

var sFormulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Symbol", `[A-Z][a-z]*`},
	{"Count", `[0-9]+`},
})

var sFormulaParser = sync.OnceValue(func() *participle.Parser[FormulaExpr] {
	return participle.MustBuild[FormulaExpr](
		participle.Lexer(sFormulaLexer),
	)
})

// ParseFormulaExpr parses the formula grammar without resolving symbols.
func ParseFormulaExpr(formula string) (*FormulaExpr, error) {
	if len(formula) == 0 {
		return &FormulaExpr{}, nil
	}
	expr, err := sFormulaParser().ParseString("", formula)
	if err != nil {
		return nil, errors.Wrapf(chem.ErrMalformedFormula, "%q: %v", formula, err)
	}
	return expr, nil
}

// ParseFormula parses the given formula into a Counter, resolving symbols with the given table (nil
// selects the standard table).
//
// Repeated symbols accumulate, so "C2H5OH" yields {H:6, C:2, O:1}.  Errors wrap chem.ErrMalformedFormula,
// chem.ErrUnknownSpecies or chem.ErrMalformedCount and report the byte offset of the offending term.
func ParseFormula(table chem.SpeciesTable, formula string) (Counter, error) {
	if table == nil {
		table = elements.Standard
	}

	expr, err := ParseFormulaExpr(formula)
	if err != nil {
		return Counter{}, err
	}

	acc := NewAccumulator(table)
	for _, term := range expr.Terms {
		sp, err := table.Lookup(term.Symbol)
		if err != nil {
			return Counter{}, errors.Wrapf(err, "at offset %d", term.Pos.Offset)
		}

		count := uint64(1)
		if len(term.Count) > 0 {
			count, err = strconv.ParseUint(term.Count, 10, 64)
			if err != nil || count == 0 {
				return Counter{}, errors.Wrapf(chem.ErrMalformedCount, "%q at offset %d", term.Count, term.Pos.Offset+len(term.Symbol))
			}
		}

		acc.Add(sp, count)
	}

	return acc.Counter(), nil
}

// MustParseFormula is ParseFormula against the standard table that panics on error.
func MustParseFormula(formula string) Counter {
	c, err := ParseFormula(nil, formula)
	if err != nil {
		panic(err)
	}
	return c
}
