package libchem

import (
	"context"
	"runtime"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
)

// ParseAll parses the given formulas concurrently, returning counters in input order.
//
// The first failure (or ctx cancellation) aborts the batch; the error names the one-based index of the
// formula that failed.
func ParseAll(ctx context.Context, table chem.SpeciesTable, formulas []string) ([]Counter, error) {
	out := make([]Counter, len(formulas))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))

	for i, formula := range formulas {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := ParseFormula(table, formula)
			if err != nil {
				return errors.Wrapf(err, "formula #%d", i+1)
			}
			out[i] = c
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	klog.V(2).Infof("parsed %d formulas", len(formulas))
	return out, nil
}
