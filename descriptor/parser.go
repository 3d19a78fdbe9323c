package descriptor

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
)

// Descriptor grammar bounds. Weight and stretch are the CSS font descriptor
// limits, oblique angles are capped at vertical.
const (
	weightMin  = 1
	weightMax  = 1000
	stretchMin = 1
	stretchMax = 200
	angleMin   = -90
	angleMax   = 90

	// Angle applied to a bare "oblique" with no angle given.
	obliqueDefaultDeg = 14.0
)

var weightKeywords = map[string]float64{
	"normal": 400,
	"bold":   700,
}

// stretchKeywords maps the nine named widths to their percentages.
var stretchKeywords = map[string]float64{
	"ultra-condensed": 50,
	"extra-condensed": 62.5,
	"condensed":       75,
	"semi-condensed":  87.5,
	"normal":          100,
	"semi-expanded":   112.5,
	"expanded":        125,
	"extra-expanded":  150,
	"ultra-expanded":  200,
}

// anglePattern is the accepted oblique angle literal. Deliberately stricter
// than the full CSS dimension grammar: no leading '+', no bare '.5', no
// exponent.
var anglePattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?deg$`)

// token is one non-whitespace CSS token of a shorthand value, lower-cased
// since the whole grammar is case-insensitive.
type token struct {
	tt   css.TokenType
	data string
}

// tokenize splits a shorthand value into CSS tokens, dropping whitespace and
// comments. The CSS lexer classifies each token (number vs. dimension vs.
// percentage vs. ident) which drives the numeric-first dispatch below: a
// purely numeric token never reaches the keyword tables.
func tokenize(field Field, raw string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(strings.TrimSpace(raw)))
	var toks []token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, grammarErr(field, raw, "malformed value: %v", err)
			}
			return toks, nil
		case css.WhitespaceToken, css.CommentToken:
			// token separators
		default:
			toks = append(toks, token{tt: tt, data: strings.ToLower(string(data))})
		}
	}
}

// ParseStyle parses a font-style shorthand: "normal", "italic", or "oblique"
// optionally followed by one or two angles such as "oblique -20deg 20deg".
// Two angles are taken in the given order; callers supply ordered pairs and
// an inverted pair is a valid range that matches nothing.
func ParseStyle(raw string) (Style, error) {
	toks, err := tokenize(FieldStyle, raw)
	if err != nil {
		return Style{}, err
	}
	if len(toks) == 0 {
		return Style{}, grammarErr(FieldStyle, raw, "empty value")
	}
	if toks[0].tt != css.IdentToken {
		return Style{}, grammarErr(FieldStyle, raw, "expected normal, italic or oblique, got %q", toks[0].data)
	}

	switch toks[0].data {
	case "normal", "italic":
		if len(toks) > 1 {
			return Style{}, grammarErr(FieldStyle, raw, "unexpected %q after %q", toks[1].data, toks[0].data)
		}
		st := Style{Slant: SlantNormal}
		if toks[0].data == "italic" {
			st.Slant = SlantItalic
		}
		return st, nil

	case "oblique":
		st := Style{Slant: SlantOblique, Angle: single(obliqueDefaultDeg)}
		switch rest := toks[1:]; len(rest) {
		case 0:
			return st, nil
		case 1:
			a, err := parseAngle(raw, rest[0])
			if err != nil {
				return Style{}, err
			}
			st.Angle, st.AngleGiven = single(a), true
			return st, nil
		case 2:
			lo, err := parseAngle(raw, rest[0])
			if err != nil {
				return Style{}, err
			}
			hi, err := parseAngle(raw, rest[1])
			if err != nil {
				return Style{}, err
			}
			st.Angle, st.AngleGiven = Range{Lo: lo, Hi: hi}, true
			return st, nil
		default:
			return Style{}, grammarErr(FieldStyle, raw, "oblique takes at most 2 angles, got %d", len(rest))
		}

	default:
		return Style{}, grammarErr(FieldStyle, raw, "expected normal, italic or oblique, got %q", toks[0].data)
	}
}

// parseAngle validates and converts one oblique angle token.
func parseAngle(raw string, t token) (float64, error) {
	if t.tt != css.DimensionToken || !anglePattern.MatchString(t.data) {
		return 0, grammarErr(FieldStyle, raw, "bad oblique angle %q", t.data)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(t.data, "deg"), 64)
	if err != nil {
		return 0, grammarErr(FieldStyle, raw, "bad oblique angle %q", t.data)
	}
	if v < angleMin || v > angleMax {
		return 0, grammarErr(FieldStyle, raw, "oblique angle %gdeg outside [%ddeg, %ddeg]", v, angleMin, angleMax)
	}
	return v, nil
}

// ParseWeight parses a font-weight shorthand: one or two values, each a
// number in [1, 1000] or one of the keywords "normal" (400) and "bold" (700).
// One value yields a degenerate range, two values a range taken verbatim.
func ParseWeight(raw string) (Range, error) {
	return parseNumericPair(FieldWeight, raw)
}

// ParseStretch parses a font-stretch shorthand: one or two values, each a
// percentage in [1%, 200%] or one of the nine named widths
// ("ultra-condensed" through "ultra-expanded").
func ParseStretch(raw string) (Range, error) {
	return parseNumericPair(FieldStretch, raw)
}

// parseNumericPair is the shared 1-or-2-token shape of weight and stretch.
func parseNumericPair(field Field, raw string) (Range, error) {
	toks, err := tokenize(field, raw)
	if err != nil {
		return Range{}, err
	}
	if len(toks) < 1 || len(toks) > 2 {
		return Range{}, grammarErr(field, raw, "expected 1 or 2 values, got %d", len(toks))
	}

	var vals [2]float64
	for i, t := range toks {
		v, err := parseNumericToken(field, raw, t)
		if err != nil {
			return Range{}, err
		}
		vals[i] = v
	}
	if len(toks) == 1 {
		return single(vals[0]), nil
	}
	return Range{Lo: vals[0], Hi: vals[1]}, nil
}

// parseNumericToken resolves one weight or stretch token. Numeric tokens are
// taken on the numeric path unconditionally; the keyword tables are consulted
// only for ident tokens, so "700" can never collide with a keyword.
func parseNumericToken(field Field, raw string, t token) (float64, error) {
	switch {
	case field == FieldWeight && t.tt == css.NumberToken:
		v, err := strconv.ParseFloat(t.data, 64)
		if err != nil {
			return 0, grammarErr(field, raw, "bad number %q", t.data)
		}
		if v < weightMin || v > weightMax {
			return 0, grammarErr(field, raw, "weight %g outside [%d, %d]", v, weightMin, weightMax)
		}
		return v, nil

	case field == FieldStretch && t.tt == css.PercentageToken:
		v, err := strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 64)
		if err != nil {
			return 0, grammarErr(field, raw, "bad percentage %q", t.data)
		}
		if v < stretchMin || v > stretchMax {
			return 0, grammarErr(field, raw, "stretch %g%% outside [%d%%, %d%%]", v, stretchMin, stretchMax)
		}
		return v, nil

	case t.tt == css.IdentToken:
		table := weightKeywords
		if field == FieldStretch {
			table = stretchKeywords
		}
		if v, ok := table[t.data]; ok {
			return v, nil
		}
		return 0, grammarErr(field, raw, "unknown keyword %q", t.data)

	default:
		return 0, grammarErr(field, raw, "unexpected value %q", t.data)
	}
}

// ParseQuery normalizes the family name and parses every descriptor field
// present in d. Grammar failures across fields are aggregated; on any failure
// the zero Query is returned together with the combined error.
func ParseQuery(family string, d Descriptor) (Query, error) {
	q := Query{Family: NormalizeFamily(family)}
	var errs error
	if d.Style != "" {
		if st, err := ParseStyle(d.Style); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			q.Style = &st
		}
	}
	if d.Weight != "" {
		if r, err := ParseWeight(d.Weight); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			q.Weight = &r
		}
	}
	if d.Stretch != "" {
		if r, err := ParseStretch(d.Stretch); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			q.Stretch = &r
		}
	}
	if errs != nil {
		return Query{}, errs
	}
	return q, nil
}
