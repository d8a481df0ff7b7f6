package meshnef

import (
	"math"

	"github.com/chazu/polyeval/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
)

// triFacet implements nef.HalfFacet for a single marching-cubes triangle:
// a trivial facet with exactly one cycle (its own three vertices) and no
// holes.
type triFacet struct {
	tri *sdf.Triangle3
}

// OrthogonalDirection returns the triangle's face normal, snapped to an
// exact axis-aligned unit vector when it is within snapEps of one. See
// the snapEps doc comment for why this snapping is necessary.
func (f *triFacet) OrthogonalDirection() geom.Vec3 {
	n := f.tri.Normal()
	v := geom.Vec3{X: n.X, Y: n.Y, Z: n.Z}
	return snapAxis(v)
}

func snapAxis(v geom.Vec3) geom.Vec3 {
	for _, axis := range []geom.Vec3{geom.Up, geom.Down, {X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		if math.Abs(v.X-axis.X) < snapEps && math.Abs(v.Y-axis.Y) < snapEps && math.Abs(v.Z-axis.Z) < snapEps {
			return axis
		}
	}
	return v
}

func (f *triFacet) Cycles() [][]geom.Point3 {
	return [][]geom.Point3{{
		fromV3(f.tri[0]),
		fromV3(f.tri[1]),
		fromV3(f.tri[2]),
	}}
}
