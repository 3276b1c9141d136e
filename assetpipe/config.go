package assetpipe

import (
	"log/slog"

	"github.com/hazyhaar/iconpipe/copypasta"
	"github.com/hazyhaar/iconpipe/fsguard"
	"github.com/hazyhaar/iconpipe/idgen"
)

// Config configures an icon pipeline.
type Config struct {
	// InputDir is the root of the optimized icon tree. Its __original__
	// subtree holds pre-optimization counterparts.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives the manifest file.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OutputFile is the manifest name inside OutputDir
	// (default: "<strategy>.json").
	OutputFile string `json:"output_file" yaml:"output_file"`

	// Strategy labels every manifest entry (default: "inline").
	Strategy string `json:"strategy" yaml:"strategy"`

	// StripPath is a prefix removed from relative paths before ID
	// generation.
	StripPath string `json:"strip_path" yaml:"strip_path"`

	// Annotation names the build in logs. No behavioral effect.
	Annotation string `json:"annotation" yaml:"annotation"`

	// MaxFileSize caps a single input read
	// (default: fsguard.MaxAssetBytes).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// ParseCache bounds the shared parse cache. 0 disables caching.
	ParseCache int `json:"parse_cache" yaml:"parse_cache"`

	// IDGen derives asset IDs (default: idgen.Default).
	IDGen idgen.Generator `json:"-" yaml:"-"`

	// CopypastaGen renders usage snippets (default: copypasta.Default).
	CopypastaGen copypasta.Generator `json:"-" yaml:"-"`

	// Validate, when set, runs between normalization and the join
	// stage. Its error aborts the build.
	Validate ValidateFunc `json:"-" yaml:"-"`

	// Writer persists the manifest. Required for Run, unused by Build.
	Writer ManifestWriter `json:"-" yaml:"-"`

	// Logger for stage diagnostics.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Strategy == "" {
		c.Strategy = "inline"
	}
	if c.OutputFile == "" {
		c.OutputFile = c.Strategy + ".json"
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = fsguard.MaxAssetBytes
	}
	if c.IDGen == nil {
		c.IDGen = idgen.Default
	}
	if c.CopypastaGen == nil {
		c.CopypastaGen = copypasta.Default
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
