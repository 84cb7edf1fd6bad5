package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the command line flags. Flags given explicitly win
// over the file; the file wins over built-in defaults.
type fileConfig struct {
	Format     string `yaml:"format"`
	Width      int    `yaml:"width"`
	TOC        bool   `yaml:"toc"`
	TOCLevel   int    `yaml:"tocLevel"`
	HeadingIDs bool   `yaml:"headingIDs"`
	LooseLists bool   `yaml:"looseLists"`
	MaxDepth   int    `yaml:"maxDepth"`
	Standalone bool   `yaml:"standalone"`
	Title      string `yaml:"title"`
	Output     string `yaml:"output"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(normalizePath(path))
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func applyFileConfig(flags *pflag.FlagSet, cfg fileConfig, opts *cliOptions) {
	if !flags.Changed("format") && cfg.Format != "" {
		opts.formatName = cfg.Format
	}
	if !flags.Changed("width") && cfg.Width > 0 {
		opts.width = cfg.Width
	}
	if !flags.Changed("toc") && cfg.TOC {
		opts.toc = true
	}
	if !flags.Changed("toc-level") && cfg.TOCLevel > 0 {
		opts.tocLevel = cfg.TOCLevel
	}
	if !flags.Changed("heading-ids") && cfg.HeadingIDs {
		opts.headingIDs = true
	}
	if !flags.Changed("loose-lists") && cfg.LooseLists {
		opts.looseLists = true
	}
	if !flags.Changed("max-depth") && cfg.MaxDepth > 0 {
		opts.maxDepth = cfg.MaxDepth
	}
	if !flags.Changed("standalone") && cfg.Standalone {
		opts.standalone = true
	}
	if !flags.Changed("title") && cfg.Title != "" {
		opts.title = cfg.Title
	}
	if !flags.Changed("output") && cfg.Output != "" {
		opts.output = cfg.Output
	}
}
