package evalcsg

import (
	"testing"

	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/geom"
)

func square2(x0, y0, x1, y1 float64) []geom.Point2 {
	return []geom.Point2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestFilterThinArtifactsDropsNearDuplicateOuterContour(t *testing.T) {
	d := dxfdata.New()
	d.AddPath(square2(0, 0, 1, 1), true, false)
	// A near-identical outer contour, offset by less than dedupEps.
	d.AddPath(square2(0, 0, 1+dedupEps/10, 1+dedupEps/10), true, false)

	out := FilterThinArtifacts(d)
	if len(out.Paths) != 1 {
		t.Fatalf("len(out.Paths) = %d, want 1", len(out.Paths))
	}
}

func TestFilterThinArtifactsKeepsDistinctOuterContours(t *testing.T) {
	d := dxfdata.New()
	d.AddPath(square2(0, 0, 1, 1), true, false)
	d.AddPath(square2(5, 5, 6, 6), true, false)

	out := FilterThinArtifacts(d)
	if len(out.Paths) != 2 {
		t.Fatalf("len(out.Paths) = %d, want 2", len(out.Paths))
	}
}

func TestFilterThinArtifactsTreatsInnerAndOuterSeparately(t *testing.T) {
	d := dxfdata.New()
	d.AddPath(square2(0, 0, 1, 1), true, false) // outer
	d.AddPath(square2(0, 0, 1, 1), true, true)  // inner, identical bounding box

	out := FilterThinArtifacts(d)
	if len(out.Paths) != 2 {
		t.Fatalf("len(out.Paths) = %d, want 2 (outer and inner contours never dedup against each other)", len(out.Paths))
	}
}

func TestFilterThinArtifactsLeavesInputUnmodified(t *testing.T) {
	d := dxfdata.New()
	d.AddPath(square2(0, 0, 1, 1), true, false)
	d.AddPath(square2(0, 0, 1, 1), true, false)

	FilterThinArtifacts(d)
	if len(d.Paths) != 2 {
		t.Fatalf("input DxfData was mutated: len(d.Paths) = %d, want 2", len(d.Paths))
	}
}

func TestFilterThinArtifactsEmptyInput(t *testing.T) {
	d := dxfdata.New()
	out := FilterThinArtifacts(d)
	if !out.IsEmpty() {
		t.Fatalf("expected empty output for empty input")
	}
}
