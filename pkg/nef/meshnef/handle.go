// Package meshnef implements pkg/nef.Backend on top of three real
// third-party libraries: github.com/deadsy/sdfx for 3D SDF-based
// primitives, booleans and marching-cubes tessellation; github.com/
// ctessum/go.clipper for 2D polygon Boolean operations (Nef2); and
// github.com/ByteArena/poly2tri-go for 2D constrained-Delaunay
// triangulation. It stands in for an opaque, exact-arithmetic
// GeometryBackend: geometry here is triangle-soup approximate rather
// than exact-rational, a tradeoff documented in DESIGN.md.
package meshnef

import (
	"github.com/chazu/polyeval/pkg/nef"
	"github.com/ctessum/go.clipper"
	"github.com/deadsy/sdfx/sdf"
)

// snapEps is the tolerance within which a marching-cubes triangle normal
// is snapped to an exact axis-aligned unit vector before being compared
// against geom.Up. An exact-arithmetic backend computes (0,0,1) exactly
// for a planar cross-section; a marching-cubes reconstruction only
// approximates it, so this backend recovers the exactness the
// flattener's orthogonal-direction test requires.
const snapEps = 1e-6

// clipperScale converts between this package's float64 coordinates and
// go.clipper's fixed-point CInt space, which requires integer input.
const clipperScale = 1e6

// sdfHandle wraps a 3D SDF as a nef.Handle.
type sdfHandle struct {
	s sdf.SDF3
}

func (h *sdfHandle) Dim() nef.Dim { return nef.Dim3 }

// contour2Handle wraps a set of 2D polygon paths (outer + holes already
// resolved by clipper's non-zero fill) as a nef.Handle.
type contour2Handle struct {
	paths clipper.Paths
}

func (h *contour2Handle) Dim() nef.Dim { return nef.Dim2 }

func asSDF(h nef.Handle) sdf.SDF3 {
	return h.(*sdfHandle).s
}

func asPaths(h nef.Handle) clipper.Paths {
	return h.(*contour2Handle).paths
}
