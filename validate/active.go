package validate

import (
	"log/slog"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hazyhaar/iconpipe/assetpipe"
)

var (
	eventHandlerPattern = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)
	scriptURLPattern    = regexp.MustCompile(`(?i)javascript:`)
	openTagPattern      = regexp.MustCompile(`<[a-zA-Z]`)
)

// checkActiveContent flags markup a sanitizer would alter: inline event
// handlers, javascript: URLs, and elements outside the static SVG
// vocabulary (script, foreignObject). It is a coarse scan; nothing is
// rewritten.
func checkActiveContent(logger *slog.Logger, policy *bluemonday.Policy, assets []assetpipe.Asset) int {
	findings := 0
	for _, a := range assets {
		switch {
		case eventHandlerPattern.MatchString(a.OptimizedSvg):
			logger.Warn("icon contains an inline event handler", "path", a.RelativePath)
			findings++
		case scriptURLPattern.MatchString(a.OptimizedSvg):
			logger.Warn("icon contains a javascript: URL", "path", a.RelativePath)
			findings++
		default:
			if tagCount(policy.Sanitize(a.OptimizedSvg)) != tagCount(a.OptimizedSvg) {
				logger.Warn("icon contains elements outside the SVG allowlist", "path", a.RelativePath)
				findings++
			}
		}
	}
	return findings
}

// tagCount counts element open tags; the sanitizer keeps that count
// stable for clean markup even though it drops attributes and
// normalizes case.
func tagCount(markup string) int {
	return len(openTagPattern.FindAllStringIndex(markup, -1))
}

// svgElements is the static SVG vocabulary: structure, shapes, text,
// paint servers, filters, and SMIL animation.
var svgElements = []string{
	// structure
	"svg", "g", "defs", "symbol", "use", "a", "switch", "marker",
	"mask", "pattern", "clipPath", "view", "missing-glyph",
	// shapes
	"path", "rect", "circle", "ellipse", "line", "polyline", "polygon",
	// text
	"text", "tspan", "textPath",
	// paint servers
	"linearGradient", "radialGradient", "stop",
	// descriptive and misc
	"title", "desc", "metadata", "style", "image",
	// filter primitives
	"filter", "feBlend", "feColorMatrix", "feComponentTransfer",
	"feComposite", "feConvolveMatrix", "feDiffuseLighting",
	"feDisplacementMap", "feDistantLight", "feDropShadow", "feFlood",
	"feFuncA", "feFuncB", "feFuncG", "feFuncR", "feGaussianBlur",
	"feImage", "feMerge", "feMergeNode", "feMorphology", "feOffset",
	"fePointLight", "feSpecularLighting", "feSpotLight", "feTile",
	"feTurbulence",
	// animation
	"animate", "animateMotion", "animateTransform", "set", "mpath",
}

// svgAttrs is the static SVG attribute vocabulary: geometry, paint,
// references, and SMIL timing. Event handlers are deliberately absent.
var svgAttrs = []string{
	"id", "class", "style", "xmlns", "xmlns:xlink", "version",
	"viewBox", "preserveAspectRatio", "width", "height",
	"x", "y", "x1", "y1", "x2", "y2", "cx", "cy", "r", "rx", "ry",
	"dx", "dy", "d", "points", "pathLength", "transform",
	"fill", "fill-opacity", "fill-rule", "stroke", "stroke-width",
	"stroke-linecap", "stroke-linejoin", "stroke-miterlimit",
	"stroke-dasharray", "stroke-dashoffset", "stroke-opacity",
	"opacity", "color", "clip-path", "clip-rule", "mask", "filter",
	"href", "xlink:href", "offset", "stop-color", "stop-opacity",
	"gradientUnits", "gradientTransform", "spreadMethod",
	"patternUnits", "patternTransform", "maskUnits", "clipPathUnits",
	"markerWidth", "markerHeight", "refX", "refY", "orient", "markerUnits",
	"font-size", "font-family", "font-weight", "text-anchor",
	"stdDeviation", "in", "in2", "result", "mode", "operator", "type",
	"values", "attributeName", "begin", "dur", "from", "to", "repeatCount",
	"aria-hidden", "role", "focusable",
}

// svgPolicy allows the static SVG vocabulary. Attribute-less elements
// stay allowed (bluemonday otherwise drops an element whose every
// attribute was stripped), so tagCount only moves when an element
// itself is outside the allowlist.
func svgPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(svgElements...)
	p.AllowNoAttrs().OnElements(svgElements...)
	p.AllowAttrs(svgAttrs...).Globally()
	return p
}
