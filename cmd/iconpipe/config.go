package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/iconpipe/copypasta"
	"github.com/hazyhaar/iconpipe/idgen"
)

// config is the full iconpipe configuration. Flags beat file values,
// file values beat environment fallbacks.
type config struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	OutputFile string `yaml:"output_file"`
	Strategy   string `yaml:"strategy"`
	StripPath  string `yaml:"strip_path"`
	Annotation string `yaml:"annotation"`

	// IDGen names the asset-ID policy: basename | path | kebab.
	IDGen string `yaml:"id_gen"`
	// IDPrefix is prepended to every generated ID when set.
	IDPrefix string `yaml:"id_prefix"`
	// CopypastaGen names the snippet policy:
	// helper:<name> | symbol-ref:<name> | symbol-use.
	CopypastaGen string `yaml:"copypasta_gen"`

	// Validate enables the diagnostic pass; Strict turns its findings
	// into build failures.
	Validate bool `yaml:"validate"`
	Strict   bool `yaml:"strict"`

	// MaxFileKB caps a single input read.
	MaxFileKB int `yaml:"max_file_kb"`
	// ParseCacheSize bounds the shared parse cache (0 disables).
	ParseCacheSize int `yaml:"parse_cache_size"`

	Cache cacheConfig `yaml:"cache"`
	Watch watchConfig `yaml:"watch"`
}

// cacheConfig controls skip-unchanged behaviour between invocations.
type cacheConfig struct {
	// Path of the SQLite build cache. Empty disables caching.
	Path string `yaml:"path"`
	// History is how many builds `-history` prints.
	History int `yaml:"history"`
}

// watchConfig tunes -watch mode.
type watchConfig struct {
	Interval time.Duration `yaml:"interval"`
	Debounce time.Duration `yaml:"debounce"`
}

func defaultConfig() *config {
	return &config{
		Strategy:       "inline",
		IDGen:          "basename",
		CopypastaGen:   "helper:svg-jar",
		ParseCacheSize: 512,
		Cache:          cacheConfig{History: 10},
		Watch: watchConfig{
			Interval: 2 * time.Second,
			Debounce: 500 * time.Millisecond,
		},
	}
}

// loadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults untouched.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if _, err := c.idGen(); err != nil {
		return err
	}
	if _, err := c.copypastaGen(); err != nil {
		return err
	}
	return nil
}

// idGen resolves the named asset-ID policy.
func (c *config) idGen() (idgen.Generator, error) {
	var gen idgen.Generator
	switch c.IDGen {
	case "", "basename":
		gen = idgen.Basename()
	case "path":
		gen = idgen.PathID("-")
	case "kebab":
		gen = idgen.Kebab()
	default:
		return nil, fmt.Errorf("unknown id_gen %q (use basename, path or kebab)", c.IDGen)
	}
	if c.IDPrefix != "" {
		gen = idgen.Prefixed(c.IDPrefix, gen)
	}
	return gen, nil
}

// copypastaGen resolves the named snippet policy.
func (c *config) copypastaGen() (copypasta.Generator, error) {
	name, arg, _ := strings.Cut(c.CopypastaGen, ":")
	switch name {
	case "", "helper":
		if arg == "" {
			arg = "svg-jar"
		}
		return copypasta.HelperTag(arg), nil
	case "symbol-ref":
		if arg == "" {
			arg = "svg-jar"
		}
		return copypasta.SymbolRef(arg), nil
	case "symbol-use":
		return copypasta.SymbolUse(), nil
	default:
		return nil, fmt.Errorf("unknown copypasta_gen %q (use helper:<name>, symbol-ref:<name> or symbol-use)", c.CopypastaGen)
	}
}

// env returns the value of key, or fallback when unset.
func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
