// Package copypasta renders ready-to-paste usage snippets, shown next
// to each icon in a manifest viewer.
//
// Like idgen, the snippet scheme is a pluggable startup-time decision:
// a Generator is a pure function from asset ID to snippet, and the
// pipeline embeds its output verbatim in the manifest.
package copypasta

// Generator renders the usage snippet for an asset ID.
type Generator func(id string) string

// HelperTag returns a Generator producing template helper invocations,
// the form used when icons are inlined: HelperTag("svg-jar") renders
// {{svg-jar "alarm"}} for the ID "alarm".
func HelperTag(helper string) Generator {
	return func(id string) string {
		return "{{" + helper + ` "` + id + `"}}`
	}
}

// SymbolRef is HelperTag for sprite symbols: the ID is referenced with
// a leading #, as in {{svg-jar "#alarm"}}.
func SymbolRef(helper string) Generator {
	return func(id string) string {
		return "{{" + helper + ` "#` + id + `"}}`
	}
}

// SymbolUse returns a Generator producing plain SVG markup referencing
// a sprite symbol, for hosts without a template helper.
func SymbolUse() Generator {
	return func(id string) string {
		return `<svg><use xlink:href="#` + id + `"></use></svg>`
	}
}

// Default matches the most common host setup: the svg-jar helper with
// inline IDs.
var Default Generator = HelperTag("svg-jar")
