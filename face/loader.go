package face

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
)

// sniffLen is how much of the file header filetype needs to classify it.
const sniffLen = 261

// FileLoader loads faces whose Source is a path on disk. The only inspection
// performed is a magic-byte sniff to verify the source is a font container
// (ttf/otf/woff/woff2); the face data is not parsed.
type FileLoader struct {
	log *zap.Logger
}

// NewFileLoader creates a loader. A nil logger is replaced with a nop one.
func NewFileLoader(log *zap.Logger) *FileLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileLoader{log: log.Named("face-loader")}
}

// Load opens the face source and verifies it looks like a font.
func (l *FileLoader) Load(ctx context.Context, f Face) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.Source == "" {
		return fmt.Errorf("face %q has no source", f.Family)
	}

	in, err := os.Open(f.Source)
	if err != nil {
		return fmt.Errorf("unable to open face source '%s': %w", f.Source, err)
	}
	defer in.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("unable to read face source '%s': %w", f.Source, err)
	}
	head = head[:n]

	if !filetype.IsFont(head) {
		kind, _ := filetype.Match(head)
		return fmt.Errorf("face source '%s' is not a font (detected %q)", f.Source, kind.Extension)
	}

	l.log.Debug("Face source loaded",
		zap.String("family", f.Family),
		zap.String("source", f.Source),
		zap.Int("header", n))
	return nil
}
