// Package resolver answers the question "is a face satisfying this request
// already registered?". It composes the descriptor grammar with a first-match
// scan over a registry snapshot, and on a miss can delegate
// registration-and-load to the registry collaborators.
package resolver

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fontset/descriptor"
	"fontset/face"
)

// NotFoundError distinguishes "nothing matches" from grammar failures. Find
// reports absence as a nil face; only Require converts absence into this
// error, carrying the original request for diagnostics.
type NotFoundError struct {
	Family     string
	Descriptor descriptor.Descriptor
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no registered face matches family %q with descriptor %s", e.Family, e.Descriptor)
}

// Match scans faces in the given order and returns the first one satisfying
// the query, or nil if none does. Iteration order is caller-determined and
// significant: this is a first-match search, not a best-match one.
//
// A registered face whose own shorthand fails to parse aborts the scan with
// the grammar error. A non-parseable registered face is a programming defect
// elsewhere and must surface, not be skipped.
func Match(q descriptor.Query, faces []face.Face) (*face.Face, error) {
	for i := range faces {
		ok, err := matches(q, &faces[i])
		if err != nil {
			return nil, err
		}
		if ok {
			return &faces[i], nil
		}
	}
	return nil, nil
}

func matches(q descriptor.Query, f *face.Face) (bool, error) {
	if descriptor.NormalizeFamily(f.Family) != q.Family {
		return false, nil
	}
	if !f.Eligible() {
		return false, nil
	}

	// A descriptor absent from the query is never compared. A face that
	// never declared a descriptor is checked as "normal".
	if q.Style != nil {
		fs, err := descriptor.ParseStyle(effective(f.Style))
		if err != nil {
			return false, fmt.Errorf("registered face %q: %w", f.Family, err)
		}
		if fs.Slant != q.Style.Slant {
			return false, nil
		}
		// Bare "oblique" requests carry only the defaulted angle and accept
		// any oblique face; an explicit angle must be covered by the face.
		if q.Style.Slant == descriptor.SlantOblique && q.Style.AngleGiven && !fs.Angle.Contains(q.Style.Angle) {
			return false, nil
		}
	}
	if q.Weight != nil {
		fw, err := descriptor.ParseWeight(effective(f.Weight))
		if err != nil {
			return false, fmt.Errorf("registered face %q: %w", f.Family, err)
		}
		if !fw.Contains(*q.Weight) {
			return false, nil
		}
	}
	if q.Stretch != nil {
		fs, err := descriptor.ParseStretch(effective(f.Stretch))
		if err != nil {
			return false, fmt.Errorf("registered face %q: %w", f.Family, err)
		}
		if !fs.Contains(*q.Stretch) {
			return false, nil
		}
	}
	return true, nil
}

func effective(shorthand string) string {
	if shorthand == "" {
		return "normal"
	}
	return shorthand
}

// Resolver is the façade presentation callers use. Requests come in as raw
// shorthand strings; callers never see the parsed representation.
type Resolver struct {
	set    face.Set
	loader face.Loader
	log    *zap.Logger
}

// New creates a resolver over the given registry. A nil loader disables
// actual loading (registration still happens), a nil logger logs nothing.
func New(set face.Set, loader face.Loader, log *zap.Logger) *Resolver {
	if loader == nil {
		loader = face.NopLoader{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{set: set, loader: loader, log: log.Named("resolver")}
}

// Find resolves the request against the registry's current snapshot. A nil
// face with a nil error means nothing matches - an expected outcome, not a
// failure. Find never mutates the registry.
func (r *Resolver) Find(ctx context.Context, family string, d descriptor.Descriptor) (*face.Face, error) {
	q, err := descriptor.ParseQuery(family, d)
	if err != nil {
		return nil, err
	}
	faces, err := r.set.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to snapshot face set: %w", err)
	}
	m, err := Match(q, faces)
	if err != nil {
		return nil, err
	}
	r.log.Debug("Resolved font request",
		zap.String("family", q.Family),
		zap.String("descriptor", d.String()),
		zap.Int("candidates", len(faces)),
		zap.Bool("matched", m != nil))
	return m, nil
}

// Require is Find for callers that consider absence an error.
func (r *Resolver) Require(ctx context.Context, family string, d descriptor.Descriptor) (*face.Face, error) {
	m, err := r.Find(ctx, family, d)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &NotFoundError{Family: family, Descriptor: d}
	}
	return m, nil
}

// FindOrLoad returns an existing match, or registers a new face built from
// family/source/descriptor and loads it. Idempotent with respect to requests
// that match an already-registered face at call time. Two concurrent calls
// that both miss may both register - deduplication of in-flight loads is the
// registry's policy, not the resolver's.
func (r *Resolver) FindOrLoad(ctx context.Context, family, source string, d descriptor.Descriptor) (*face.Face, error) {
	m, err := r.Find(ctx, family, d)
	if err != nil {
		return nil, err
	}
	if m != nil {
		return m, nil
	}

	f, err := r.set.Add(ctx, face.Face{
		Family:  family,
		Source:  source,
		Style:   d.Style,
		Weight:  d.Weight,
		Stretch: d.Stretch,
		Status:  face.StatusLoading,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to register face %q: %w", family, err)
	}
	r.log.Debug("Registered new face",
		zap.String("family", family),
		zap.String("source", source),
		zap.String("id", f.ID.String()))

	if err := r.loader.Load(ctx, f); err != nil {
		err = fmt.Errorf("unable to load face %q: %w", family, err)
		if er := r.set.SetStatus(ctx, f.ID, face.StatusFailed); er != nil {
			err = multierr.Append(err, er)
		}
		return nil, err
	}
	if err := r.set.SetStatus(ctx, f.ID, face.StatusLoaded); err != nil {
		return nil, err
	}
	f.Status = face.StatusLoaded
	return &f, nil
}
