package face_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"fontset/face"
)

func TestEligible(t *testing.T) {
	f := face.Face{Family: "X"}
	if !f.Eligible() {
		t.Error("face with unset structural fields must be eligible")
	}

	f = face.Face{
		Family:          "X",
		AscentOverride:  face.DefaultAscentOverride,
		DescentOverride: face.DefaultDescentOverride,
		FeatureSettings: face.DefaultFeatureSettings,
		LineGapOverride: face.DefaultLineGapOverride,
		UnicodeRange:    face.DefaultUnicodeRange,
	}
	if !f.Eligible() {
		t.Error("face with explicit default structural fields must be eligible")
	}

	for _, mutate := range []func(*face.Face){
		func(f *face.Face) { f.AscentOverride = "90%" },
		func(f *face.Face) { f.DescentOverride = "10%" },
		func(f *face.Face) { f.FeatureSettings = `"liga" 0` },
		func(f *face.Face) { f.LineGapOverride = "0%" },
		func(f *face.Face) { f.UnicodeRange = "U+0000-00FF" },
	} {
		g := face.Face{Family: "X"}
		mutate(&g)
		if g.Eligible() {
			t.Errorf("face %+v must not be eligible", g)
		}
	}
}

func TestMemorySetOrderAndStatus(t *testing.T) {
	ctx := context.Background()
	set := face.NewMemorySet()

	a, err := set.Add(ctx, face.Face{Family: "A"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("Add must assign an ID")
	}
	b, err := set.Add(ctx, face.Face{Family: "B"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := set.SetStatus(ctx, b.ID, face.StatusLoaded); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := set.SetStatus(ctx, uuid.Must(uuid.NewV7()), face.StatusLoaded); err == nil {
		t.Error("SetStatus on unknown id must fail")
	}

	faces, err := set.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(faces) != 2 || faces[0].Family != "A" || faces[1].Family != "B" {
		t.Fatalf("unexpected snapshot: %+v", faces)
	}
	if faces[1].Status != face.StatusLoaded {
		t.Errorf("status update lost: %+v", faces[1])
	}

	// Snapshot is a copy, mutating it must not leak into the set.
	faces[0].Family = "mutated"
	again, _ := set.Snapshot(ctx)
	if again[0].Family != "A" {
		t.Error("snapshot aliases internal state")
	}
}

func TestMemorySetConcurrent(t *testing.T) {
	ctx := context.Background()
	set := face.NewMemorySet()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := set.Add(ctx, face.Face{Family: "X"}); err != nil {
				t.Errorf("Add: %v", err)
			}
			if _, err := set.Snapshot(ctx); err != nil {
				t.Errorf("Snapshot: %v", err)
			}
		}()
	}
	wg.Wait()

	faces, _ := set.Snapshot(ctx)
	if len(faces) != 16 {
		t.Errorf("expected 16 faces, got %d", len(faces))
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, st := range []face.Status{face.StatusUnloaded, face.StatusLoading, face.StatusLoaded, face.StatusFailed} {
		got, err := face.ParseStatus(st.String())
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", st, err)
		}
		if got != st {
			t.Errorf("ParseStatus(%q) = %v", st, got)
		}
	}
	if _, err := face.ParseStatus("borked"); err == nil {
		t.Error("expected error for unknown status")
	}
}
