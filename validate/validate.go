// Package validate provides the diagnostic pass wired between an icon
// pipeline's normalization and join stages: duplicate ID detection,
// missing viewBox checks, and an active-content scan backed by an SVG
// sanitizer allowlist.
//
// The pass never rewrites an asset. In the default mode every finding
// is a warning; Strict mode turns any finding into a build failure.
package validate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/iconpipe/assetpipe"
)

// Options configures the checks.
type Options struct {
	// Strict fails the build on any finding instead of just warning.
	Strict bool

	// Logger receives one warning per finding (default: slog.Default()).
	Logger *slog.Logger
}

// Assets returns a ValidateFunc running every check against a build's
// normalized assets.
func Assets(opts Options) assetpipe.ValidateFunc {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	policy := svgPolicy()
	return func(assets []assetpipe.Asset, strategy string) error {
		findings := 0
		findings += checkDuplicateIDs(opts.Logger, assets)
		findings += checkViewBox(opts.Logger, assets, strategy)
		findings += checkActiveContent(opts.Logger, policy, assets)
		if opts.Strict && findings > 0 {
			return fmt.Errorf("validate: %d finding(s) for strategy %q", findings, strategy)
		}
		return nil
	}
}

// checkDuplicateIDs warns once per group of assets whose paths collapse
// to the same ID. The snippet generator assumes IDs are unique, so a
// collision means one icon shadows another.
func checkDuplicateIDs(logger *slog.Logger, assets []assetpipe.Asset) int {
	byID := make(map[string][]string, len(assets))
	for _, a := range assets {
		byID[a.ID] = append(byID[a.ID], a.RelativePath)
	}
	findings := 0
	for _, a := range assets {
		paths := byID[a.ID]
		if len(paths) < 2 || paths[0] != a.RelativePath {
			continue
		}
		logger.Warn("duplicate asset ID", "id", a.ID, "paths", strings.Join(paths, ", "))
		findings++
	}
	return findings
}

// checkViewBox warns when an icon declares no viewBox. Symbol sprites
// cannot scale without one, so those builds get the louder message.
func checkViewBox(logger *slog.Logger, assets []assetpipe.Asset, strategy string) int {
	findings := 0
	for _, a := range assets {
		if _, ok := a.SvgData.Attrs.Get("viewBox"); ok {
			continue
		}
		findings++
		if strategy == "symbol" {
			logger.Warn("icon has no viewBox and will not scale as a symbol", "path", a.RelativePath)
		} else {
			logger.Warn("icon has no viewBox", "path", a.RelativePath)
		}
	}
	return findings
}
