// Package polyset defines PolySet, the triangle-soup output type produced
// by every evaluator in this core: an ordered list of polygons, each an
// ordered list of 3D points, carrying a convexity hint that is advisory
// for downstream rendering and otherwise opaque to this package.
package polyset

import "github.com/chazu/polyeval/pkg/geom"

// PolySet is an ordered sequence of polygons. Every polygon produced by
// this core's extrusion evaluators is a triangle; the projection
// evaluator's non-cut ("shadow") mode is the one path that may emit
// planar n-gons in the z=0 plane instead.
type PolySet struct {
	Polygons  [][]geom.Point3
	Convexity int
}

// New returns an empty PolySet with the given convexity hint.
func New(convexity int) *PolySet {
	return &PolySet{Convexity: convexity}
}

// AppendPolygon appends a polygon given as an ordered vertex list.
func (ps *PolySet) AppendPolygon(vertices ...geom.Point3) {
	poly := make([]geom.Point3, len(vertices))
	copy(poly, vertices)
	ps.Polygons = append(ps.Polygons, poly)
}

// AppendTriangle appends a single triangle in the given winding order.
func (ps *PolySet) AppendTriangle(a, b, c geom.Point3) {
	ps.AppendPolygon(a, b, c)
}

// PrependTriangle appends a triangle with vertices in reverse order,
// used by add_slice to flip the winding of outer-wall triangles so their
// normal points outward without recomputing it.
func (ps *PolySet) PrependTriangle(a, b, c geom.Point3) {
	ps.AppendPolygon(c, b, a)
}

// IsEmpty reports whether the PolySet has no polygons.
func (ps *PolySet) IsEmpty() bool {
	return ps == nil || len(ps.Polygons) == 0
}

// TriangleCount returns the number of 3-vertex polygons. It does not
// verify that every polygon is a triangle.
func (ps *PolySet) TriangleCount() int {
	n := 0
	for _, p := range ps.Polygons {
		if len(p) == 3 {
			n++
		}
	}
	return n
}

// Normal computes the unit outward normal of a triangle from its vertices
// in winding order, for triangle-orientation checks.
func Normal(a, b, c geom.Point3) geom.Vec3 {
	return geom.Cross(b.Sub(a), c.Sub(a)).Normalize()
}

// SignedVolume returns six times the signed volume contributed by a single
// triangle relative to the origin (the standard divergence-theorem term
// used to sum a closed mesh's volume). Callers sum this over every
// triangle and divide by six.
func SignedVolume(a, b, c geom.Point3) float64 {
	return a.X*(b.Y*c.Z-b.Z*c.Y) -
		a.Y*(b.X*c.Z-b.Z*c.X) +
		a.Z*(b.X*c.Y-b.Y*c.X)
}

// Volume sums SignedVolume over every triangle in the PolySet. Non-triangle
// polygons (only emitted by non-cut projection, which lies in z=0 and so
// contributes no volume) are ignored.
func (ps *PolySet) Volume() float64 {
	var sum float64
	for _, p := range ps.Polygons {
		if len(p) != 3 {
			continue
		}
		sum += SignedVolume(p[0], p[1], p[2])
	}
	return sum / 6.0
}

// HasDegenerateTriangle reports whether any triangle in the PolySet has two
// bit-exact coincident vertices, or three collinear vertices within relTol
// relative tolerance.
func (ps *PolySet) HasDegenerateTriangle(relTol float64) bool {
	for _, p := range ps.Polygons {
		if len(p) != 3 {
			continue
		}
		a, b, c := p[0], p[1], p[2]
		if a == b || b == c || a == c {
			return true
		}
		n := geom.Cross(b.Sub(a), c.Sub(a))
		area2 := n.X*n.X + n.Y*n.Y + n.Z*n.Z
		scale := b.Sub(a).X*b.Sub(a).X + b.Sub(a).Y*b.Sub(a).Y + b.Sub(a).Z*b.Sub(a).Z
		if scale > 0 && area2 < relTol*relTol*scale*scale {
			return true
		}
	}
	return false
}
