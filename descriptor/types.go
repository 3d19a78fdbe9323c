// Package descriptor implements the CSS shorthand grammar for font selection
// descriptors (font-style, font-weight, font-stretch) and the closed-range
// semantics used to decide whether a registered face can serve a request.
// Variable fonts declare ranges ("100 900", "oblique 0deg 20deg"), so every
// descriptor normalizes to a closed numeric range and matching is containment,
// not equality.
package descriptor

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Range is a closed numeric interval [Lo, Hi].
// Single-value shorthand collapses to Lo == Hi. Two-value shorthand is taken
// verbatim: an inverted pair (Lo > Hi) is legal and simply contains nothing.
type Range struct {
	Lo float64
	Hi float64
}

// Contains reports whether r fully covers o on both sides. This is the only
// numeric predicate used for weight, stretch and oblique-angle matching: a
// face's declared capability range must cover the requested range.
func (r Range) Contains(o Range) bool {
	return r.Lo <= o.Lo && r.Hi >= o.Hi
}

func (r Range) String() string {
	if r.Lo == r.Hi {
		return fmt.Sprintf("[%g]", r.Lo)
	}
	return fmt.Sprintf("[%g %g]", r.Lo, r.Hi)
}

// single returns the degenerate range for a single-value shorthand.
func single(v float64) Range {
	return Range{Lo: v, Hi: v}
}

// Slant is the keyword part of a font-style descriptor.
type Slant int

const (
	SlantNormal Slant = iota
	SlantItalic
	SlantOblique
)

// String returns the CSS keyword for the slant.
func (s Slant) String() string {
	switch s {
	case SlantItalic:
		return "italic"
	case SlantOblique:
		return "oblique"
	default:
		return "normal"
	}
}

// Style is a parsed font-style descriptor. Angle is meaningful only for
// SlantOblique; a bare "oblique" defaults to [14, 14] degrees with AngleGiven
// left false, so the matcher can tell an explicit angle request from the
// default.
type Style struct {
	Slant      Slant
	Angle      Range
	AngleGiven bool
}

func (s Style) String() string {
	if s.Slant != SlantOblique {
		return s.Slant.String()
	}
	return s.Slant.String() + " " + s.Angle.String()
}

// Descriptor carries raw, unparsed shorthand values of a font request.
// An empty field means "don't care" and is never compared during matching;
// in particular it is not the same thing as "normal".
type Descriptor struct {
	Style   string
	Weight  string
	Stretch string
}

// IsZero reports whether no descriptor field is set (family-only request).
func (d Descriptor) IsZero() bool {
	return d.Style == "" && d.Weight == "" && d.Stretch == ""
}

func (d Descriptor) String() string {
	var parts []string
	if d.Style != "" {
		parts = append(parts, "style="+d.Style)
	}
	if d.Weight != "" {
		parts = append(parts, "weight="+d.Weight)
	}
	if d.Stretch != "" {
		parts = append(parts, "stretch="+d.Stretch)
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Query is the parsed form of a font request. Family is already normalized.
// Nil pointers mean the corresponding field was absent from the request.
type Query struct {
	Family  string
	Style   *Style
	Weight  *Range
	Stretch *Range
}

// NormalizeFamily canonicalizes a family name for comparison: surrounding
// whitespace is trimmed, the name is Unicode case-folded, and one pair of
// surrounding quotes (double or single, as CSS allows both) is stripped with
// a final trim. Total, no failure mode. Two family names refer to the same
// family iff their normalized forms are identical.
func NormalizeFamily(name string) string {
	s := cases.Fold().String(strings.TrimSpace(name))
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
