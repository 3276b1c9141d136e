// Package svgdata parses SVG markup and exposes the pieces an icon
// manifest needs: the <svg> element's attributes in source order, its
// inner markup, and the natural size derived from width/height/viewBox.
//
// Parsing uses the HTML5 parser in foreign-content mode, which is what
// browsers and icon toolchains do in practice: case-sensitive SVG names
// (viewBox, linearGradient) are restored and entity handling is lenient.
// A document with no <svg> element at all is the only parse failure.
package svgdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoSVG is returned when the markup contains no <svg> element.
var ErrNoSVG = errors.New("svgdata: no <svg> element found")

// Attr is a single attribute of the <svg> element. Namespaced attributes
// keep their prefix in Name (e.g. "xmlns:xlink", "xlink:href").
type Attr struct {
	Name  string
	Value string
}

// Attrs holds the <svg> element's attributes in source order. Order is
// preserved through JSON marshaling so manifests are byte-reproducible.
type Attrs []Attr

// Get returns the value of the named attribute.
func (a Attrs) Get(name string) (string, bool) {
	for _, at := range a {
		if at.Name == name {
			return at.Value, true
		}
	}
	return "", false
}

// MarshalJSON renders the attributes as a JSON object in source order.
func (a Attrs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, at := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, at.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, at.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeJSONString encodes s without HTML escaping, so attribute values
// like URLs with & survive verbatim.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline; drop it.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// SVG is one parsed SVG document.
type SVG struct {
	Content string `json:"content"`
	Attrs   Attrs  `json:"attrs"`
}

// Parse extracts the first <svg> element from markup. The returned
// Content holds the element's inner markup re-serialized by the parser,
// and Attrs the element's own attributes in source order.
func Parse(markup []byte) (*SVG, error) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("svgdata: parse: %w", err)
	}
	node := findSVG(doc)
	if node == nil {
		return nil, ErrNoSVG
	}

	attrs := make(Attrs, 0, len(node.Attr))
	for _, a := range node.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, Attr{Name: name, Value: a.Val})
	}

	content, err := innerMarkup(node)
	if err != nil {
		return nil, fmt.Errorf("svgdata: render: %w", err)
	}
	return &SVG{Content: content, Attrs: attrs}, nil
}

// findSVG returns the first <svg> element in document order.
func findSVG(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Svg {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if svg := findSVG(c); svg != nil {
			return svg
		}
	}
	return nil
}

// innerMarkup serializes the children of n back to markup.
func innerMarkup(n *html.Node) (string, error) {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
