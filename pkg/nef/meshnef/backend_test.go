package meshnef

import (
	"math"
	"testing"

	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/geom"
)

func TestIsSimple3AcceptsClosedBox(t *testing.T) {
	b := NewWithResolution(24)
	box := b.NewBox3(geom.Point3{}, geom.Point3{X: 1, Y: 1, Z: 1})
	if !b.IsSimple3(box) {
		t.Fatalf("expected a marching-cubes box tessellation to be a simple 2-manifold")
	}
}

func TestConvexHull3OfBoxCornersIsTheirBoundingBox(t *testing.T) {
	b := NewWithResolution(24)
	corners := []geom.Point3{
		{X: -1, Y: -2, Z: -3}, {X: 4, Y: 5, Z: 6},
		{X: 0, Y: 0, Z: 0},
	}
	hull := b.ConvexHull3(corners)
	bb := asSDF(hull).BoundingBox()

	if math.Abs(bb.Min.X-(-1)) > 1e-9 || math.Abs(bb.Max.X-4) > 1e-9 {
		t.Fatalf("hull X bounds = [%v,%v], want [-1,4]", bb.Min.X, bb.Max.X)
	}
	if math.Abs(bb.Min.Y-(-2)) > 1e-9 || math.Abs(bb.Max.Y-5) > 1e-9 {
		t.Fatalf("hull Y bounds = [%v,%v], want [-2,5]", bb.Min.Y, bb.Max.Y)
	}
	if math.Abs(bb.Min.Z-(-3)) > 1e-9 || math.Abs(bb.Max.Z-6) > 1e-9 {
		t.Fatalf("hull Z bounds = [%v,%v], want [-3,6]", bb.Min.Z, bb.Max.Z)
	}
}

func TestConvexHull3OfNoPointsReturnsEmptyHandle(t *testing.T) {
	b := NewWithResolution(24)
	hull := b.ConvexHull3(nil)
	if _, ok := hull.(*sdfHandle); !ok {
		t.Fatalf("expected ConvexHull3(nil) to still return an *sdfHandle")
	}
}

func TestDxfTesselateUnitSquareProducesTwoUpwardTriangles(t *testing.T) {
	b := NewWithResolution(24)
	d := dxfdata.New()
	d.AddPath([]geom.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, true, false)

	tris := b.DxfTesselate(d, 0, true, false, 2.5)
	if len(tris) != 2 {
		t.Fatalf("len(tris) = %d, want 2", len(tris))
	}
	var area float64
	for _, tri := range tris {
		if tri[0].Z != 2.5 || tri[1].Z != 2.5 || tri[2].Z != 2.5 {
			t.Fatalf("expected every vertex at z=2.5, got %+v", tri)
		}
		n := geom.Cross(tri[1].Sub(tri[0]), tri[2].Sub(tri[0]))
		if n.Z <= 0 {
			t.Fatalf("expected upNormals=true to produce a +Z-facing triangle, got normal %+v", n)
		}
		area += n.Z / 2
	}
	if math.Abs(area-1.0) > 1e-9 {
		t.Fatalf("total triangulated area = %v, want 1.0", area)
	}
}

func TestDxfTesselateWithHoleSubtractsInnerPath(t *testing.T) {
	b := NewWithResolution(24)
	d := dxfdata.New()
	d.AddPath([]geom.Point2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, true, false)
	d.AddPath([]geom.Point2{{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}, {X: 1.5, Y: 1.5}, {X: 0.5, Y: 1.5}}, true, true)

	tris := b.DxfTesselate(d, 0, true, true, 0)
	var area float64
	for _, tri := range tris {
		n := geom.Cross(tri[1].Sub(tri[0]), tri[2].Sub(tri[0]))
		area += n.Z / 2
	}
	want := 4.0 - 1.0
	if math.Abs(area-want) > 1e-6 {
		t.Fatalf("area with hole subtracted = %v, want %v", area, want)
	}
}

func TestDxfTesselateSkipsOpenPaths(t *testing.T) {
	b := NewWithResolution(24)
	d := dxfdata.New()
	d.AddPath([]geom.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}}, false, false)

	tris := b.DxfTesselate(d, 0, true, false, 0)
	if len(tris) != 0 {
		t.Fatalf("expected open paths to be skipped, got %d triangles", len(tris))
	}
}

func TestCanonicalWindingFlipsOuterPathWoundClockwise(t *testing.T) {
	d := dxfdata.New()
	// Clockwise winding for an outer boundary (negative signed area).
	d.AddPath([]geom.Point2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}, true, false)
	path := d.Paths[0]

	got := canonicalWinding(d, path)
	if signedArea2(d.PathPoints(got)) <= 0 {
		t.Fatalf("expected canonicalWinding to flip a clockwise outer path to positive area")
	}
}

func TestCanonicalWindingFlipsInnerPathWoundCounterclockwise(t *testing.T) {
	d := dxfdata.New()
	// Counterclockwise winding for an inner (hole) boundary — the wrong
	// way for its role.
	d.AddPath([]geom.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, true, true)
	path := d.Paths[0]

	got := canonicalWinding(d, path)
	if signedArea2(d.PathPoints(got)) >= 0 {
		t.Fatalf("expected canonicalWinding to flip a counterclockwise inner path to negative area")
	}
}

func TestCanonicalWindingLeavesCorrectlyWoundPathUnchanged(t *testing.T) {
	d := dxfdata.New()
	d.AddPath([]geom.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, true, false)
	path := d.Paths[0]

	got := canonicalWinding(d, path)
	orig := d.PathPoints(path)
	gotPts := d.PathPoints(got)
	for i := range orig {
		if gotPts[i] != orig[i] {
			t.Fatalf("canonicalWinding reordered an already-correct outer path")
		}
	}
}
