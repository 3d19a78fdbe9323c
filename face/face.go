// Package face models the registered font face records the resolver matches
// against, and the registry that owns them. The registry is an external
// collaborator as far as matching is concerned: the match engine only ever
// sees an ordered snapshot of faces and never mutates them.
package face

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Default sentinels for the structural eligibility fields. A face whose
// structural fields deviate from these is a partially-customized resource and
// never participates in descriptor matching.
const (
	DefaultAscentOverride  = "normal"
	DefaultDescentOverride = "normal"
	DefaultFeatureSettings = "normal"
	DefaultLineGapOverride = "normal"
	DefaultUnicodeRange    = "U+0-10FFFF"
)

// Status tracks the load state of a registered face.
type Status int

const (
	StatusUnloaded Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

// ParseStatus converts a stored status name back to its value.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "unloaded":
		return StatusUnloaded, nil
	case "loading":
		return StatusLoading, nil
	case "loaded":
		return StatusLoaded, nil
	case "failed":
		return StatusFailed, nil
	}
	return StatusUnloaded, fmt.Errorf("unknown face status %q", s)
}

// Face is one registered font face. Style, Weight and Stretch hold the same
// shorthand grammar as request descriptors; an empty field means the face
// never declared it and is treated as "normal" when checked. The face bytes
// themselves are never inspected here - Source is an opaque reference for the
// load mechanism.
type Face struct {
	ID     uuid.UUID
	Family string
	Source string

	Style   string
	Weight  string
	Stretch string

	// Structural eligibility fields, see Eligible.
	AscentOverride  string
	DescentOverride string
	FeatureSettings string
	LineGapOverride string
	UnicodeRange    string

	Status Status
}

// Eligible reports whether every structural field still equals its default
// sentinel (empty counts as default, meaning the field was never set). Only
// eligible faces may satisfy a descriptor match.
func (f *Face) Eligible() bool {
	def := func(v, d string) bool { return v == "" || v == d }
	return def(f.AscentOverride, DefaultAscentOverride) &&
		def(f.DescentOverride, DefaultDescentOverride) &&
		def(f.FeatureSettings, DefaultFeatureSettings) &&
		def(f.LineGapOverride, DefaultLineGapOverride) &&
		def(f.UnicodeRange, DefaultUnicodeRange)
}

// Set is the registry contract the resolver consumes: an ordered
// point-in-time snapshot of registered faces, registration of a new face,
// and a status update hook for the load step. Iteration order of Snapshot is
// significant - the resolver is a first-match search.
type Set interface {
	Snapshot(ctx context.Context) ([]Face, error)
	Add(ctx context.Context, f Face) (Face, error)
	SetStatus(ctx context.Context, id uuid.UUID, st Status) error
}

// Loader performs the asynchronous-from-the-core's-point-of-view load of a
// registered face. Cancellation and timeouts belong to the loader, not to
// the matching core.
type Loader interface {
	Load(ctx context.Context, f Face) error
}

// NopLoader succeeds without doing anything. Useful in tests and whenever
// registration alone is wanted.
type NopLoader struct{}

func (NopLoader) Load(context.Context, Face) error { return nil }

// MemorySet is an insertion-ordered in-memory Set, safe for concurrent use.
type MemorySet struct {
	mu    sync.Mutex
	faces []Face
}

// NewMemorySet returns an empty set pre-populated with the given faces in
// order. Faces supplied without an ID get one assigned.
func NewMemorySet(faces ...Face) *MemorySet {
	s := &MemorySet{}
	for _, f := range faces {
		if f.ID == uuid.Nil {
			f.ID = uuid.Must(uuid.NewV7())
		}
		s.faces = append(s.faces, f)
	}
	return s
}

// Snapshot returns the current faces in registration order.
func (s *MemorySet) Snapshot(context.Context) ([]Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Face, len(s.faces))
	copy(out, s.faces)
	return out, nil
}

// Add registers a face, assigning it an ID if it has none.
func (s *MemorySet) Add(_ context.Context, f Face) (Face, error) {
	if f.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return Face{}, fmt.Errorf("unable to assign face id: %w", err)
		}
		f.ID = id
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faces = append(s.faces, f)
	return f, nil
}

// SetStatus updates the load status of a registered face.
func (s *MemorySet) SetStatus(_ context.Context, id uuid.UUID, st Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.faces {
		if s.faces[i].ID == id {
			s.faces[i].Status = st
			return nil
		}
	}
	return fmt.Errorf("face %s not registered", id)
}
