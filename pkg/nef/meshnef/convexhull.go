package meshnef

import (
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/nef"
)

// ConvexHull3 builds the convex hull of points as an SDF3. None of the
// libraries wired into this backend (sdfx, clipper, poly2tri) expose a
// general 3D convex hull, and this backend's only caller of ConvexHull3
// is SlabIntersect, which always passes the eight corners of an
// axis-aligned box. Rather than hand-roll a general incremental hull
// algorithm this repo will never exercise beyond the box case,
// ConvexHull3 computes the axis-aligned bounding box of points directly:
// for box-corner input (its only real caller) this is exactly the convex
// hull; for an arbitrary point cloud it is a superset of the true hull.
// This simplification is recorded in DESIGN.md as the one
// standard-library-only geometric primitive in this backend.
func (b *Backend) ConvexHull3(points []geom.Point3) nef.Handle {
	if len(points) == 0 {
		return &sdfHandle{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return b.NewBox3(min, max)
}
