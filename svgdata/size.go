package svgdata

import (
	"strconv"
	"strings"
)

// Size is the natural size of an SVG in CSS pixels. A nil dimension
// means the document does not declare it in a usable form.
type Size struct {
	Width  *float64
	Height *float64
}

// Size derives the natural size of the document: explicit width/height
// attributes win, then the third and fourth viewBox fields.
func (s *SVG) Size() Size {
	var vbWidth, vbHeight string
	if vb, ok := s.Attrs.Get("viewBox"); ok {
		fields := strings.Fields(vb)
		if len(fields) > 2 {
			vbWidth = fields[2]
		}
		if len(fields) > 3 {
			vbHeight = fields[3]
		}
	}
	w, _ := s.Attrs.Get("width")
	h, _ := s.Attrs.Get("height")
	return Size{
		Width:  firstNumber(w, vbWidth),
		Height: firstNumber(h, vbHeight),
	}
}

// firstNumber returns the first candidate with a parseable numeric prefix.
func firstNumber(candidates ...string) *float64 {
	for _, c := range candidates {
		if f, ok := ParseNumber(c); ok {
			return &f
		}
	}
	return nil
}

// ParseNumber parses the longest leading decimal number in s, the way
// CSS and SVG dimension attributes are coerced: "20px" yields 20,
// ".5em" yields 0.5. Reports false when no leading number exists.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	i, end := 0, 0
	seenDigit := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		seenDigit = true
		end = i
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			seenDigit = true
			end = i
		}
	}
	if !seenDigit {
		return 0, false
	}
	// Optional exponent, only when followed by at least one digit.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expEnd := j
		for expEnd < len(s) && s[expEnd] >= '0' && s[expEnd] <= '9' {
			expEnd++
		}
		if expEnd > j {
			end = expEnd
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
