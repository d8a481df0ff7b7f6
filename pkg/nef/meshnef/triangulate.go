package meshnef

import (
	"github.com/ByteArena/poly2tri-go"
	"github.com/chazu/polyeval/pkg/geom"
)

// triangulatePath runs a constrained Delaunay triangulation over a single
// closed polygon, the shared building block behind DxfTesselate and the
// Nef2-to-PolySet conversion.
func triangulatePath(poly []geom.Point2) [][3]geom.Point2 {
	if len(poly) < 3 {
		return nil
	}
	points := make([]*poly2tri.Point, len(poly))
	for i, p := range poly {
		points[i] = poly2tri.NewPoint(p.X, p.Y)
	}
	sweep := poly2tri.NewSweepContext(points, false)
	sweep.Triangulate()

	out := make([][3]geom.Point2, 0, len(poly)-2)
	for _, tri := range sweep.GetTriangles() {
		out = append(out, [3]geom.Point2{
			{X: tri.GetPoint(0).X, Y: tri.GetPoint(0).Y},
			{X: tri.GetPoint(1).X, Y: tri.GetPoint(1).Y},
			{X: tri.GetPoint(2).X, Y: tri.GetPoint(2).Y},
		})
	}
	return out
}

// dxfTesselate triangulates a single 2D polygon at the given z height,
// with the triangle winding chosen so its normal points in +Z
// (upNormals) or -Z.
func dxfTesselate(poly []geom.Point2, z float64, upNormals bool) [][3]geom.Point3 {
	tris := triangulatePath(poly)
	out := make([][3]geom.Point3, 0, len(tris))
	for _, t := range tris {
		a := geom.Point3{X: t[0].X, Y: t[0].Y, Z: z}
		b := geom.Point3{X: t[1].X, Y: t[1].Y, Z: z}
		c := geom.Point3{X: t[2].X, Y: t[2].Y, Z: z}
		if upNormals {
			out = append(out, [3]geom.Point3{a, b, c})
		} else {
			out = append(out, [3]geom.Point3{c, b, a})
		}
	}
	return out
}
