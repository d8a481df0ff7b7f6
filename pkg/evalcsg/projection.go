// Package evalcsg implements the PolySet evaluators: projection, linear
// extrusion, rotate extrusion, and the render/advanced-CSG pass-through,
// plus the add_slice side-wall stitcher they share.
package evalcsg

import (
	"math"

	"github.com/chazu/polyeval/pkg/flatten"
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/nef"
	"github.com/chazu/polyeval/pkg/polyset"
	"github.com/chazu/polyeval/pkg/scenenode"
)

// DegenerateEps is the absolute tolerance the non-cut projection mode
// uses to detect degenerate triangles, distinct from the bit-exact test
// rotate-extrude uses.
const DegenerateEps = 1e-6

// slabEps is the half-thickness of the thin-slab fallback used when a
// true zero-thickness plane cut fails.
const slabEps = 0.001

// Projection evaluates a projection node: given the already-evaluated 3D
// solids of its non-background children, it returns a PolySet in the
// z=0 plane, or nil if the result is empty.
func Projection(backend nef.Backend, children []*nef.Solid, params scenenode.ProjectionParams) *polyset.PolySet {
	sum := nef.EmptySolid(backend, nef.Dim3)
	for _, c := range children {
		sum.UnionInPlace(c)
	}
	if sum.IsEmpty() {
		return nil
	}

	if !sum.IsSimple() && !params.CutMode {
		nef.Logger.Printf("projection: non-manifold input in shadow mode, returning empty result")
		return polyset.New(params.Convexity)
	}

	var result2D *nef.Solid
	if params.CutMode {
		result2D = projectCut(backend, sum)
		if result2D == nil {
			return nil
		}
	} else {
		result2D = projectShadow(backend, sum)
	}

	ps := result2D.ToPolySet2(params.Convexity)
	return ps
}

// projectCut computes the cut-mode result: a scoped, recoverable-failure
// plane intersection at z=0, falling back to a thin-slab intersection if
// the exact plane cut fails, then flattening the result to a 2D solid.
func projectCut(backend nef.Backend, sum *nef.Solid) *nef.Solid {
	release := nef.AcquireScopedPolicy(backend, nef.ThrowRecoverable)
	defer release()

	cut, err := sum.PlaneIntersectZ0()
	if err != nil {
		nef.Logger.Printf("projection: plane intersection failed: %v; trying thin-slab fallback", err)
		cut, err = sum.SlabIntersect(slabEps)
		if err != nil {
			nef.Logger.Printf("projection: thin-slab fallback also failed: %v", err)
			return nil
		}
	}

	return flatten.Run(cut)
}

// projectShadow computes the non-cut ("shadow") mode result: every
// triangle of the tessellated solid contributes its own contour to a 2D
// union, skipping any triangle whose projection is degenerate.
func projectShadow(backend nef.Backend, sum *nef.Solid) *nef.Solid {
	ps3 := sum.ToPolySet(0)
	accumulator := nef.EmptySolid(backend, nef.Dim2)
	if ps3 == nil {
		return accumulator
	}

	for _, poly := range ps3.Polygons {
		if len(poly) < 3 {
			continue
		}
		contour, ok := shadowContour(poly)
		if !ok {
			continue
		}
		h := backend.NewContour2(contour)
		accumulator.UnionInPlace(nef.FromHandle(backend, nef.Dim2, h))
	}
	return accumulator
}

// shadowContour finds a polygon's minimum-x vertex, measures the polar
// angles of its two incident edges, skips degenerate polygons (edges too
// short or too nearly parallel to disambiguate orientation), and
// reverses the point list when the leading edge's angle exceeds the
// trailing edge's, keeping the projected contour's winding consistent.
func shadowContour(poly []geom.Point3) ([]geom.Point2, bool) {
	n := len(poly)
	minIdx := 0
	for i := 1; i < n; i++ {
		if poly[i].X < poly[minIdx].X {
			minIdx = i
		}
	}
	prev := poly[(minIdx-1+n)%n]
	curr := poly[minIdx]
	next := poly[(minIdx+1)%n]

	aEdge := next.Sub(curr)
	bEdge := prev.Sub(curr)
	aLen := math.Hypot(aEdge.X, aEdge.Y)
	bLen := math.Hypot(bEdge.X, bEdge.Y)
	if aLen < DegenerateEps || bLen < DegenerateEps {
		return nil, false
	}

	at := math.Atan2(aEdge.Y, aEdge.X)
	bt := math.Atan2(bEdge.Y, bEdge.X)
	if math.Abs(at-bt) < DegenerateEps {
		return nil, false
	}

	points := make([]geom.Point2, n)
	for i, p := range poly {
		points[i] = p.XY()
	}
	if at > bt {
		reversePoint2(points)
	}
	return points, true
}

func reversePoint2(pts []geom.Point2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
