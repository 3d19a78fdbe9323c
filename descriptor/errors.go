package descriptor

import "fmt"

// Field identifies which descriptor a grammar error refers to.
type Field int

const (
	FieldStyle Field = iota
	FieldWeight
	FieldStretch
)

// String returns the CSS property-ish name of the field.
func (f Field) String() string {
	switch f {
	case FieldWeight:
		return "weight"
	case FieldStretch:
		return "stretch"
	default:
		return "style"
	}
}

// GrammarError reports a shorthand value that does not conform to its
// descriptor grammar. It always carries the offending raw string and the
// field being parsed; no partial result accompanies it.
type GrammarError struct {
	Field  Field
	Raw    string
	Reason string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("font %s descriptor %q: %s", e.Field, e.Raw, e.Reason)
}

func grammarErr(field Field, raw, format string, args ...any) error {
	return &GrammarError{Field: field, Raw: raw, Reason: fmt.Sprintf(format, args...)}
}
