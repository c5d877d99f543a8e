package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	root := newRootCmd(fset)
	err := root.ExecuteContext(context.Background())

	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

type app struct {
	configPath string
	cfg        *Config
}

func newRootCmd(klogFlags *flag.FlagSet) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "chem2x3",
		Short:         "Chemical formula toolkit: parse, classify, index, match and catalog formulas",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			if klogFlags != nil && cfg.Log.Verbosity > 0 && !cmd.Flags().Changed("v") {
				klogFlags.Set("v", strconv.Itoa(cfg.Log.Verbosity))
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	if klogFlags != nil {
		root.PersistentFlags().AddGoFlagSet(klogFlags)
	}

	root.AddCommand(
		a.newParseCmd(),
		a.newCuCmd(),
		a.newMatchCmd(),
		a.newCatalogCmd(),
		a.newPyCmd(),
	)
	return root
}
