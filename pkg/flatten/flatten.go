// Package flatten implements the flattener visitor: it walks the shells
// of a 3D Solid and accumulates the 2D projection of its upward-facing
// half-facets into a 2D Solid, treating a facet's first cycle as its
// outer boundary and every subsequent cycle as a hole.
package flatten

import (
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/nef"
)

// Run visits every half-facet of solid and returns the accumulated 2D
// Solid. solid must be a Dim3 solid produced by a plane or slab
// intersection; solid.Backend() supplies the Nef2 primitives the
// accumulator is built from.
func Run(solid *nef.Solid) *nef.Solid {
	backend := solid.Backend()
	accumulator := nef.EmptySolid(backend, nef.Dim2)

	solid.WalkShells(func(f nef.HalfFacet) {
		visitFacet(backend, accumulator, f)
	})

	if nef.DebugSVG != nil && !accumulator.IsEmpty() {
		nef.DebugSVG(accumulator.ToDxf())
	}

	return accumulator
}

// visitFacet is the half-facet callback: vertex, half-edge, s-half-edge,
// s-half-loop and s-face callbacks would all be no-ops for this visitor,
// so this function is the entire visitor.
func visitFacet(backend nef.Backend, accumulator *nef.Solid, f nef.HalfFacet) {
	if !f.OrthogonalDirection().ApproxEqual(geom.Up) {
		return
	}

	for i, cycle := range f.Cycles() {
		if len(cycle) < 3 {
			continue // trivial cycle
		}
		contour := canonicalContour(cycle, i > 0)
		h := backend.NewContour2(toPoint2(contour))
		next := nef.FromHandle(backend, nef.Dim2, h)

		if i == 0 {
			accumulator.UnionInPlace(next)
		} else {
			accumulator.IntersectInPlace(next)
		}
	}
}

func toPoint2(pts []geom.Point3) []geom.Point2 {
	out := make([]geom.Point2, len(pts))
	for i, p := range pts {
		out[i] = p.XY()
	}
	return out
}

// canonicalContour enforces a canonical orientation to avoid Nef2 mark
// non-determinism: outer contours (isHole false) are wound CCW, holes
// are wound CW.
func canonicalContour(cycle []geom.Point3, isHole bool) []geom.Point3 {
	ccw := signedArea(cycle) > 0
	if ccw == isHole {
		return reverse(cycle)
	}
	return cycle
}

func signedArea(pts []geom.Point3) float64 {
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func reverse(pts []geom.Point3) []geom.Point3 {
	out := make([]geom.Point3, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
