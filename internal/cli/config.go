package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-uml/internal/generator"
)

// DefaultConfigFile is looked up in the scan root when --config is not given.
const DefaultConfigFile = ".gen-uml.yaml"

// Languages with a declaration source.
const (
	LangJava = "java"
	LangGo   = "go"
)

// Config stores CLI options for a single generation run.
type Config struct {
	Root        string
	OutputBase  string
	Lang        string
	Format      string
	View        bool
	Workers     int
	Exclude     []string
	DotPath     string
	ConfigFile  string
	Verbose     bool
	ShowVersion bool
}

// RendererConfig returns the part of the config the renderer needs.
func (c *Config) RendererConfig() generator.Config {
	return generator.Config{
		Format:  c.Format,
		DotPath: c.DotPath,
		View:    c.View,
	}
}

// fileConfig mirrors the YAML config file. Nil fields are unset.
type fileConfig struct {
	Lang    *string   `yaml:"lang"`
	Format  *string   `yaml:"format"`
	View    *bool     `yaml:"view"`
	Workers *int      `yaml:"workers"`
	Exclude *[]string `yaml:"exclude"`
	DotPath *string   `yaml:"dot_path"`
}

// loadFileConfig reads the YAML config. A missing file is an error only when
// the path was given explicitly.
func loadFileConfig(path string, explicit bool) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return fc, nil
}
