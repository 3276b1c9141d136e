// Package idgen provides pluggable asset-ID derivation for icon
// pipelines.
//
// Every pipeline constructor accepts a Generator, making the naming
// scheme a startup-time decision rather than a compile-time one. All
// generators receive slash-separated paths relative to the input root,
// already stripped of any configured prefix, and must be deterministic:
// the manifest is only reproducible if the same path always yields the
// same ID.
package idgen

import "strings"

// Generator derives an asset ID from a relative path.
type Generator func(path string) string

// Basename returns a Generator that uses the final path segment with
// the .svg extension removed: "social/twitter.svg" becomes "twitter".
// Distinct paths sharing a file name collapse to one ID.
func Basename() Generator {
	return func(path string) string {
		if i := strings.LastIndexByte(path, '/'); i >= 0 {
			path = path[i+1:]
		}
		return trimSVGExt(path)
	}
}

// PathID returns a Generator that keeps the whole relative path,
// extension removed, with separators joined by sep:
// "social/twitter.svg" with sep "-" becomes "social-twitter".
// Unlike Basename it never collapses distinct paths.
func PathID(sep string) Generator {
	return func(path string) string {
		return strings.Join(strings.Split(trimSVGExt(path), "/"), sep)
	}
}

// Kebab returns a Generator that lowercases the stripped file name and
// collapses every run of non-alphanumeric characters to a single
// hyphen: "Arrow Up.svg" becomes "arrow-up".
func Kebab() Generator {
	base := Basename()
	return func(path string) string {
		var sb strings.Builder
		hyphen := false
		for _, r := range strings.ToLower(base(path)) {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				if hyphen && sb.Len() > 0 {
					sb.WriteByte('-')
				}
				hyphen = false
				sb.WriteRune(r)
			default:
				hyphen = true
			}
		}
		return sb.String()
	}
}

// Prefixed wraps a Generator and prepends a fixed prefix to every ID.
// Useful for sprite-scoped identifiers (e.g. "icon-").
func Prefixed(prefix string, gen Generator) Generator {
	return func(path string) string {
		return prefix + gen(path)
	}
}

// Default is the conventional scheme: the bare file name.
var Default Generator = Basename()

func trimSVGExt(name string) string {
	return strings.TrimSuffix(name, ".svg")
}
