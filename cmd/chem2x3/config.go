package main

import (
	"os"
	"strings"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem/catalog"
	"github.com/2x3systems/chem2x3/libchem/elements"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// envPrefix prefixes every environment override, e.g. CHEM2X3_CATALOG_PATH.
const envPrefix = "CHEM2X3"

type Config struct {
	Catalog struct {
		Path     string `mapstructure:"path"`
		ReadOnly bool   `mapstructure:"readonly"`
	} `mapstructure:"catalog"`

	Elements struct {
		File string `mapstructure:"file"`
	} `mapstructure:"elements"`

	Log struct {
		Verbosity int `mapstructure:"verbosity"`
	} `mapstructure:"log"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// env overrides only bind to known keys, so every key gets a default
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.readonly", false)
	v.SetDefault("elements.file", "")
	v.SetDefault("log.verbosity", 0)
	return v
}

// LoadConfig merges the optional YAML file at configPath with CHEM2X3_* environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %q", configPath)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	if cfg.Log.Verbosity < 0 {
		return nil, errors.Errorf("log.verbosity must be >= 0 (got %d)", cfg.Log.Verbosity)
	}
	return cfg, nil
}

// SpeciesTable returns the configured species table, falling back to the standard elements.
func (cfg *Config) SpeciesTable() (chem.SpeciesTable, error) {
	if cfg.Elements.File == "" {
		return elements.Standard, nil
	}
	f, err := os.Open(cfg.Elements.File)
	if err != nil {
		return nil, errors.Wrap(err, "opening elements file")
	}
	defer f.Close()

	table, err := elements.LoadYAML(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading elements file %q", cfg.Elements.File)
	}
	return table, nil
}

func (cfg *Config) CatalogOpts(table chem.SpeciesTable) catalog.Opts {
	return catalog.Opts{
		DbPathName: cfg.Catalog.Path,
		ReadOnly:   cfg.Catalog.ReadOnly,
		Table:      table,
	}
}
