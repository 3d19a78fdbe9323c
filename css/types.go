// Package css extracts font face declarations from stylesheets. It is the
// intake path feeding the face registry: the presentation layer hands over
// stylesheet text, this package turns every @font-face block into a
// registrable face record. Selector rules are not this package's business
// and are skipped.
package css

import (
	"regexp"
	"strings"

	"fontset/face"
)

// urlExtractPattern matches url() references in raw CSS value strings such
// as @font-face src. Handles url("path"), url('path') and url(path).
var urlExtractPattern = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"]*))\s*\)`)

// FontFace is a parsed @font-face declaration. All values are kept in their
// raw shorthand form; the descriptor grammar is applied later, at match time.
type FontFace struct {
	Family  string // font-family, unquoted
	Src     string // src value as written (may hold several url() refs)
	Style   string // font-style
	Weight  string // font-weight
	Stretch string // font-stretch

	// Structural fields. When any of these deviates from its default the
	// face is registrable but never matchable.
	AscentOverride  string // ascent-override
	DescentOverride string // descent-override
	FeatureSettings string // font-feature-settings
	LineGapOverride string // line-gap-override
	UnicodeRange    string // unicode-range
}

// SourceURL returns the first url() reference of the src value, or "".
func (ff FontFace) SourceURL() string {
	sub := urlExtractPattern.FindStringSubmatch(ff.Src)
	if sub == nil {
		return ""
	}
	url := sub[1]
	if url == "" {
		url = sub[2]
	}
	return strings.TrimSpace(url)
}

// Face converts the declaration into a registrable face record.
func (ff FontFace) Face() face.Face {
	return face.Face{
		Family:          ff.Family,
		Source:          ff.SourceURL(),
		Style:           ff.Style,
		Weight:          ff.Weight,
		Stretch:         ff.Stretch,
		AscentOverride:  ff.AscentOverride,
		DescentOverride: ff.DescentOverride,
		FeatureSettings: ff.FeatureSettings,
		LineGapOverride: ff.LineGapOverride,
		UnicodeRange:    ff.UnicodeRange,
	}
}

// Stylesheet holds what the intake cares about, in source order.
type Stylesheet struct {
	FontFaces []FontFace // @font-face declarations with a non-empty family
	Imports   []string   // @import URLs, for the caller to fetch and parse in turn
	Warnings  []string   // non-fatal oddities encountered while parsing
}

// Faces converts all declarations into registrable face records.
func (s *Stylesheet) Faces() []face.Face {
	faces := make([]face.Face, 0, len(s.FontFaces))
	for _, ff := range s.FontFaces {
		faces = append(faces, ff.Face())
	}
	return faces
}
