package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/cmmoran/creatorgen/pkg/generator"
)

const configKey = "creator"

var optionKeys = map[string]string{
	"input-directory":  "in_dir",
	"output-directory": "out_dir",
	"stand-in":         "stand_in",
	"marker-namespace": "marker_namespace",
	"marker-name":      "marker_name",
	"extension":        "extension",
	"workers":          "workers",
	"manifest":         "manifest_file",
	"exclude-dirs":     "exclude_dirs",
}

// addOptionFlags registers the generator flags on c.
func addOptionFlags(c *cobra.Command) {
	d := cfg.NewOptions()
	f := c.Flags()
	f.StringP("input-directory", "i", d.InDir, "directory scanned for C# sources")
	f.StringP("output-directory", "o", d.OutDir, "directory receiving generated units")
	f.String("stand-in", d.StandIn, "stand-in for reference-typed dependencies (moq, fakeiteasy)")
	f.String("marker-namespace", d.MarkerNamespace, "namespace of the marker attribute")
	f.String("marker-name", d.MarkerName, "type name of the marker attribute")
	f.String("extension", d.Extension, "extension of generated units")
	f.IntP("workers", "w", d.Workers, "maximum number of units evaluated concurrently")
	f.String("manifest", d.ManifestFile, "manifest file, relative to the output directory unless absolute")
	f.StringSlice("exclude-dirs", d.ExcludeDirs, "directory names skipped while scanning")
}

// loadOptions binds the flags of the running command to their creator.*
// keys and builds normalized Options from flags, env and config files.
func loadOptions(c *cobra.Command) (*cfg.Options, error) {
	for flag, key := range optionKeys {
		if err := viper.BindPFlag(configKey+"."+key, c.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind --%s: %w", flag, err)
		}
	}

	conf := struct {
		Creator *cfg.Options `mapstructure:"creator"`
	}{Creator: cfg.NewOptions()}
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("read %s configuration: %w", configKey, err)
	}
	if err := conf.Creator.Normalize(); err != nil {
		return nil, err
	}
	return conf.Creator, nil
}
