package css_test

import (
	"testing"

	"fontset/css"
)

func TestParserFontFace(t *testing.T) {
	input := []byte(`
@font-face {
  font-family: "Font Awesome";
  src: url("fa-solid-900.woff2") format("woff2");
  font-weight: 900;
  font-style: normal;
}

p { font-family: "Font Awesome"; }
`)

	sheet := css.NewParser(nil).Parse(input, "test")

	if len(sheet.FontFaces) != 1 {
		t.Fatalf("expected 1 font-face, got %d", len(sheet.FontFaces))
	}
	ff := sheet.FontFaces[0]
	if ff.Family != "Font Awesome" {
		t.Errorf("family = %q", ff.Family)
	}
	if ff.Weight != "900" {
		t.Errorf("weight = %q", ff.Weight)
	}
	if ff.Style != "normal" {
		t.Errorf("style = %q", ff.Style)
	}
	if got := ff.SourceURL(); got != "fa-solid-900.woff2" {
		t.Errorf("SourceURL() = %q", got)
	}
}

func TestParserVariableFontFace(t *testing.T) {
	input := []byte(`
@font-face {
  font-family: 'Roboto Flex';
  src: url(roboto-flex.woff2);
  font-weight: 100 1000;
  font-stretch: 25% 151%;
  font-style: oblique 0deg 10deg;
}
`)

	sheet := css.NewParser(nil).Parse(input)

	if len(sheet.FontFaces) != 1 {
		t.Fatalf("expected 1 font-face, got %d", len(sheet.FontFaces))
	}
	ff := sheet.FontFaces[0]
	if ff.Family != "Roboto Flex" {
		t.Errorf("family = %q", ff.Family)
	}
	if ff.Weight != "100 1000" {
		t.Errorf("weight = %q", ff.Weight)
	}
	if ff.Stretch != "25% 151%" {
		t.Errorf("stretch = %q", ff.Stretch)
	}
	if ff.Style != "oblique 0deg 10deg" {
		t.Errorf("style = %q", ff.Style)
	}
	if got := ff.SourceURL(); got != "roboto-flex.woff2" {
		t.Errorf("SourceURL() = %q", got)
	}
}

func TestParserStructuralFields(t *testing.T) {
	input := []byte(`
@font-face {
  font-family: Subsetted;
  src: url("subset.woff2");
  unicode-range: U+0000-00FF;
  ascent-override: 90%;
}
`)

	sheet := css.NewParser(nil).Parse(input)

	if len(sheet.FontFaces) != 1 {
		t.Fatalf("expected 1 font-face, got %d", len(sheet.FontFaces))
	}
	ff := sheet.FontFaces[0]
	if ff.UnicodeRange != "U+0000-00FF" {
		t.Errorf("unicode-range = %q", ff.UnicodeRange)
	}
	if ff.AscentOverride != "90%" {
		t.Errorf("ascent-override = %q", ff.AscentOverride)
	}

	f := ff.Face()
	if f.Eligible() {
		t.Error("face with custom unicode-range and ascent-override must not be eligible")
	}
}

func TestParserImportsAndSkips(t *testing.T) {
	input := []byte(`
@import url("fonts.css");
@import "more.css";
@media screen { p { color: red; } }
@charset "UTF-8";
h1.title::before { content: "x"; }
`)

	sheet := css.NewParser(nil).Parse(input)

	if len(sheet.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d: %v", len(sheet.Imports), sheet.Imports)
	}
	if sheet.Imports[0] != "fonts.css" || sheet.Imports[1] != "more.css" {
		t.Errorf("imports = %v", sheet.Imports)
	}
	if len(sheet.FontFaces) != 0 {
		t.Errorf("expected no font-faces, got %d", len(sheet.FontFaces))
	}
}

func TestParserFontFaceWithoutFamily(t *testing.T) {
	input := []byte(`@font-face { src: url("x.woff2"); }`)

	sheet := css.NewParser(nil).Parse(input)

	if len(sheet.FontFaces) != 0 {
		t.Errorf("family-less @font-face must be dropped, got %d", len(sheet.FontFaces))
	}
	if len(sheet.Warnings) != 1 {
		t.Errorf("expected a warning, got %v", sheet.Warnings)
	}
}

func TestStylesheetFacesOrder(t *testing.T) {
	input := []byte(`
@font-face { font-family: A; src: url(a.woff2); }
@font-face { font-family: B; src: url(b.woff2); }
`)

	faces := css.NewParser(nil).Parse(input).Faces()

	if len(faces) != 2 {
		t.Fatalf("expected 2 faces, got %d", len(faces))
	}
	if faces[0].Family != "A" || faces[1].Family != "B" {
		t.Errorf("source order not preserved: %+v", faces)
	}
}
