package evalcsg

import (
	"math"
	"testing"

	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/polyset"
	"github.com/chazu/polyeval/pkg/scenenode"
)

// TestRotateExtrudeOpenCylinder covers rotating the open segment
// (1,0)->(1,1) with fragments=8: it must produce an open-topped cylinder
// of radius 1, height 1, as 16 triangles with no caps.
func TestRotateExtrudeOpenCylinder(t *testing.T) {
	profile := []geom.Point2{{X: 1, Y: 0}, {X: 1, Y: 1}}
	ps := polyset.New(0)
	rotateExtrudePath(ps, profile, false, scenenode.FragmentParams{Fn: 8})

	if got := ps.TriangleCount(); got != 16 {
		t.Fatalf("triangle count = %d, want 16", got)
	}
}

// TestRotateExtrudeRotationalSymmetry covers the rotational-symmetry
// property: rotate_extrude(profile, fragments=N) must produce exactly
// N-fold rotational symmetry, verified by rotating every output vertex
// by one angular step and checking that the result keeps its radius and
// is itself an output vertex.
func TestRotateExtrudeRotationalSymmetry(t *testing.T) {
	profile := []geom.Point2{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 1}}
	const fragments = 6

	ps := polyset.New(0)
	rotateExtrudePath(ps, profile, true, scenenode.FragmentParams{Fn: fragments})

	var verts []geom.Point3
	for _, poly := range ps.Polygons {
		verts = append(verts, poly...)
	}

	step := 2 * math.Pi / fragments
	for _, p := range verts {
		r := math.Hypot(p.X, p.Y)
		rotated := geom.Point3{
			X: p.X*math.Cos(step) - p.Y*math.Sin(step),
			Y: p.X*math.Sin(step) + p.Y*math.Cos(step),
			Z: p.Z,
		}
		if math.Abs(math.Hypot(rotated.X, rotated.Y)-r) > 1e-9 {
			t.Fatalf("rotating a vertex by 2pi/N changed its radius")
		}
		found := false
		for _, q := range verts {
			if math.Abs(q.X-rotated.X) < 1e-9 && math.Abs(q.Y-rotated.Y) < 1e-9 && q.Z == rotated.Z {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("rotating vertex %+v by 2pi/N gives %+v, which is not an output vertex", p, rotated)
		}
	}
}
