// Package assetpipe turns a tree of optimized SVG icons into an
// ordered viewer manifest.
//
// The pipeline is a fixed sequence of order-preserving transforms:
//
//   - select: keep regular files outside the __original__ subtree
//   - load: read contents, dropping unreadable or empty entries
//   - normalize: parse each SVG and derive its asset ID
//   - validate: optional diagnostic hook
//   - join: attach the raw __original__ counterpart when present
//   - map: produce one ViewerItem per asset
//
// A build either yields the complete manifest or fails; there is no
// partial output.
//
// Usage:
//
//	pipe := assetpipe.New(assetpipe.Config{
//		InputDir:  "icons",
//		OutputDir: "dist",
//		Writer:    &manifest.FileWriter{},
//	})
//	err := pipe.Run(ctx)
package assetpipe

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/hazyhaar/iconpipe/svgdata"
)

// OriginalDir is the subtree of the input root holding pre-optimization
// counterparts of the icons. It never contributes manifest entries of
// its own.
const OriginalDir = "__original__"

// Pipeline is the manifest build engine.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
	parse  func([]byte) (*svgdata.SVG, error)
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	p := &Pipeline{
		cfg:    cfg,
		logger: cfg.Logger,
		parse:  svgdata.Parse,
	}
	if cfg.ParseCache > 0 {
		if cache, err := svgdata.NewCache(cfg.ParseCache); err == nil {
			p.parse = cache.Parse
		}
	}
	return p
}

// OutputPath returns the manifest location derived from the
// configuration.
func (p *Pipeline) OutputPath() string {
	return filepath.Join(p.cfg.OutputDir, p.cfg.OutputFile)
}

// Build runs every stage except the final write and returns the ordered
// manifest items. Order follows the lexical walk of the input tree.
func (p *Pipeline) Build(ctx context.Context) ([]ViewerItem, error) {
	paths, err := p.listTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("assetpipe: list %s: %w", p.cfg.InputDir, err)
	}
	return p.BuildPaths(ctx, paths)
}

// BuildPaths is Build over an explicit listing of paths (files and
// directories intermixed), for hosts that track the input tree
// themselves. Output order follows the listing order.
func (p *Pipeline) BuildPaths(ctx context.Context, paths []string) ([]ViewerItem, error) {
	if p.cfg.InputDir == "" {
		return nil, fmt.Errorf("assetpipe: input dir not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files := p.selectFiles(paths)
	entries := p.loadEntries(files)
	assets, err := p.normalize(entries)
	if err != nil {
		return nil, err
	}

	if p.cfg.Validate != nil {
		if err := p.cfg.Validate(assets, p.cfg.Strategy); err != nil {
			return nil, fmt.Errorf("assetpipe: validate: %w", err)
		}
	}

	assets = p.joinOriginals(assets)
	items := p.mapItems(assets)

	p.logger.Debug("build complete",
		"listed", len(paths),
		"assets", len(items),
		"strategy", p.cfg.Strategy)
	return items, nil
}

// Run builds the manifest and writes it to the configured output path.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.cfg.Writer == nil {
		return fmt.Errorf("assetpipe: no manifest writer configured")
	}
	items, err := p.Build(ctx)
	if err != nil {
		return err
	}
	out := p.OutputPath()
	if err := p.cfg.Writer.WriteManifest(out, items); err != nil {
		return fmt.Errorf("assetpipe: write %s: %w", out, err)
	}

	attrs := []any{"path", out, "assets", len(items), "strategy", p.cfg.Strategy}
	if p.cfg.Annotation != "" {
		attrs = append(attrs, "annotation", p.cfg.Annotation)
	}
	p.logger.Info("manifest written", attrs...)
	return nil
}

// listTree walks the input tree in lexical order and returns the paths
// of candidate icon files. The top-level __original__ subtree is
// skipped here; selectFiles excludes it again for listings supplied by
// BuildPaths callers.
func (p *Pipeline) listTree(ctx context.Context) ([]string, error) {
	originalRoot := filepath.Join(p.cfg.InputDir, OriginalDir)
	var paths []string
	err := filepath.WalkDir(p.cfg.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			if path == originalRoot {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".svg" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
