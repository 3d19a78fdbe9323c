package face_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fontset/face"
)

// ttfHeader is the minimal sfnt signature the sniffer recognizes.
var ttfHeader = append([]byte{0x00, 0x01, 0x00, 0x00, 0x00}, make([]byte, 64)...)

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	l := face.NewFileLoader(nil)

	fontPath := filepath.Join(dir, "x.ttf")
	if err := os.WriteFile(fontPath, ttfHeader, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := l.Load(ctx, face.Face{Family: "X", Source: fontPath}); err != nil {
		t.Errorf("Load of a ttf source failed: %v", err)
	}

	textPath := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(textPath, []byte("not a font at all, just text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := l.Load(ctx, face.Face{Family: "X", Source: textPath}); err == nil {
		t.Error("Load of a non-font source must fail")
	}

	if err := l.Load(ctx, face.Face{Family: "X", Source: filepath.Join(dir, "missing.woff2")}); err == nil {
		t.Error("Load of a missing source must fail")
	}

	if err := l.Load(ctx, face.Face{Family: "X"}); err == nil {
		t.Error("Load without a source must fail")
	}
}
