package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

var defaultExclude = []string{".git"}

// BindFlags registers every option on fs.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Lang, "lang", "l", LangJava, "source language (java, go)")
	fs.StringVarP(&cfg.Format, "format", "f", "pdf", "output format: a Graphviz -T format, dot or yaml")
	fs.BoolVar(&cfg.View, "view", false, "open the rendered diagram")
	fs.IntVarP(&cfg.Workers, "workers", "w", 0, "files parsed concurrently (0: number of CPUs)")
	fs.StringSliceVar(&cfg.Exclude, "exclude", slices.Clone(defaultExclude), "directory names to skip")
	fs.StringVar(&cfg.DotPath, "dot-path", "dot", "Graphviz dot binary")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML config file (default <root>/"+DefaultConfigFile+")")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "debug logging")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")
}

// Complete takes the two positional arguments, applies the config file to
// every flag not set on the command line, and validates the result.
func Complete(fs *pflag.FlagSet, cfg *Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <root-dir> <output-base>, got %d argument(s)", len(args))
	}
	cfg.Root = args[0]
	cfg.OutputBase = args[1]
	if strings.TrimSpace(cfg.Root) == "" {
		return fmt.Errorf("root directory is required")
	}
	if strings.TrimSpace(cfg.OutputBase) == "" {
		return fmt.Errorf("output base name is required")
	}

	path, explicit := cfg.ConfigFile, cfg.ConfigFile != ""
	if !explicit {
		path = filepath.Join(cfg.Root, DefaultConfigFile)
	}
	fc, err := loadFileConfig(path, explicit)
	if err != nil {
		return err
	}
	applyFileConfig(fs, cfg, fc)

	switch cfg.Lang {
	case LangJava, LangGo:
	default:
		return fmt.Errorf("--lang must be %q or %q, got %q", LangJava, LangGo, cfg.Lang)
	}
	if strings.TrimSpace(cfg.Format) == "" {
		return fmt.Errorf("--format is required")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}
	return nil
}

func applyFileConfig(fs *pflag.FlagSet, cfg *Config, fc fileConfig) {
	if fc.Lang != nil && !fs.Changed("lang") {
		cfg.Lang = *fc.Lang
	}
	if fc.Format != nil && !fs.Changed("format") {
		cfg.Format = *fc.Format
	}
	if fc.View != nil && !fs.Changed("view") {
		cfg.View = *fc.View
	}
	if fc.Workers != nil && !fs.Changed("workers") {
		cfg.Workers = *fc.Workers
	}
	if fc.Exclude != nil && !fs.Changed("exclude") {
		cfg.Exclude = *fc.Exclude
	}
	if fc.DotPath != nil && !fs.Changed("dot-path") {
		cfg.DotPath = *fc.DotPath
	}
}
