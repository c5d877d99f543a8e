package main

import (
	"fmt"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem"
	"github.com/2x3systems/chem2x3/libchem/catalog"
	"github.com/2x3systems/chem2x3/libchem/molecule"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

func (a *app) newParseCmd() *cobra.Command {
	var unique bool
	cmd := &cobra.Command{
		Use:   "parse FORMULA...",
		Short: "Prints the canonical formula, weight, saturation and CU index of each formula",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.cfg.SpeciesTable()
			if err != nil {
				return err
			}
			counters, err := libchem.ParseAll(cmd.Context(), table, args)
			if err != nil {
				return err
			}
			if unique {
				counters = catalog.StreamFormulas(counters...).DropDupes().Collect()
			}
			out := cmd.OutOrStdout()
			for _, c := range counters {
				fmt.Fprintf(out, "%v\t%.3f\t%+v\t%v\n", c, c.Weight(), c.Saturation(), libchem.CuFromCounter(c))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&unique, "unique", false, "print each distinct formula once")
	return cmd
}

func (a *app) newCuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cu C:U...",
		Short: "Prints the hydrocarbon formula of each CU index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.cfg.SpeciesTable()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, arg := range args {
				cu, err := libchem.ParseCu(arg)
				if err != nil {
					return err
				}
				c, err := cu.Counter(table)
				if err != nil {
					return errors.Wrapf(err, "CU %v", cu)
				}
				fmt.Fprintf(out, "%v\t%v\tECN=%d\n", cu, c, cu.ECN())
			}
			return nil
		},
	}
}

func (a *app) newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match PATTERN TARGET",
		Short: "Tests whether one reference molecule is an induced subgraph of (or isomorphic to) another",
		Long:  "Reference molecules: methane, ethane, propane, ethene, propene, butene, pentene.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var M [2]*molecule.Molecule
			for i, name := range args {
				var ok bool
				if M[i], ok = molecule.Reference(name); !ok {
					return errors.Errorf("unknown reference molecule %q (have %v)", name, molecule.ReferenceNames())
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "subgraph:   %v\n", M[0].IsIsomorphicSubgraph(M[1]))
			fmt.Fprintf(out, "isomorphic: %v\n", M[0].IsIsomorphic(M[1]))
			return nil
		},
	}
}

func (a *app) openCatalog() (*catalog.Catalog, chem.SpeciesTable, error) {
	table, err := a.cfg.SpeciesTable()
	if err != nil {
		return nil, nil, err
	}
	if a.cfg.Catalog.Path == "" {
		klog.Warning("catalog.path is not set; using an in-memory catalog")
	}
	cat, err := catalog.Open(a.cfg.CatalogOpts(table))
	return cat, table, err
}

func (a *app) newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manages the formula catalog (see catalog.path)",
	}

	addCmd := &cobra.Command{
		Use:   "add FORMULA...",
		Short: "Adds formulas to the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, table, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer cat.Close()

			counters, err := libchem.ParseAll(cmd.Context(), table, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range counters {
				added, err := cat.Add(c)
				if err != nil {
					return err
				}
				status := "exists"
				if added {
					status = "added"
				}
				fmt.Fprintf(out, "%v\t%s\n", c, status)
			}
			return cat.Close()
		},
	}

	var (
		satText    string
		minCarbons uint64
		maxCarbons uint64
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists catalog formulas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := catalog.Selector{
				MinCarbons: minCarbons,
				MaxCarbons: maxCarbons,
			}
			if satText != "" {
				var sat chem.Saturation
				if err := sat.UnmarshalText([]byte(satText)); err != nil {
					return err
				}
				sel.Saturation = &sat
			}

			cat, _, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer cat.Close()

			onHit := make(chan libchem.Counter, 4)
			errs := make(chan error, 1)
			go func() {
				errs <- cat.Select(sel, onHit)
				close(onHit)
			}()

			out := cmd.OutOrStdout()
			for c := range onHit {
				fmt.Fprintf(out, "%v\t%v\n", c, c.Saturation())
			}
			return <-errs
		},
	}
	listCmd.Flags().StringVar(&satText, "saturation", "", "only list formulas with this saturation (S or U)")
	listCmd.Flags().Uint64Var(&minCarbons, "min-c", 0, "minimum carbon count")
	listCmd.Flags().Uint64Var(&maxCarbons, "max-c", 0, "maximum carbon count (0 for no limit)")

	catalogCmd.AddCommand(addCmd, listCmd)
	return catalogCmd
}

func (a *app) newPyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "py [SCRIPT]",
		Short: "Runs a gpython script (or a REPL) with the chem module available",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			return runGPython(pathname, cmd.ErrOrStderr())
		},
	}
}
