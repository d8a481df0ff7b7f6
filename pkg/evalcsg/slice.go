package evalcsg

import (
	"math"

	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/polyset"
)

// rotateXY rotates a 2D point by angle radians about the origin.
func rotateXY(p geom.Point2, angle float64) geom.Point2 {
	s, c := math.Sin(angle), math.Cos(angle)
	return geom.Point2{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// addSlice is the side-wall stitcher: given two consecutive contour
// transforms (rotation rot1->rot2, height h1->h2) and a closed path, it
// appends a correctly oriented ribbon of triangles to ps.
func addSlice(ps *polyset.PolySet, dxf *dxfdata.DxfData, path dxfdata.Path, rot1, rot2, h1, h2 float64) {
	pts := dxf.PathPoints(path)
	n := len(pts)
	if n < 2 {
		return
	}

	// Walk every path clockwise, so that the append/prepend rule below
	// turns outer-wall normals away from the region and hole-wall normals
	// into the hole, whichever way the path was wound on input.
	var area2 float64
	for i, p := range pts {
		q := pts[(i+1)%n]
		area2 += p.X*q.Y - q.X*p.Y
	}
	if area2 > 0 {
		reversePoint2(pts)
	}

	splitFirst := math.Sin(rot2-rot1) >= 0.0

	for k := 0; k < n; k++ {
		j := (k + 1) % n
		k1 := to3(rotateXY(pts[k], rot1), h1)
		j1 := to3(rotateXY(pts[j], rot1), h1)
		k2 := to3(rotateXY(pts[k], rot2), h2)
		j2 := to3(rotateXY(pts[j], rot2), h2)

		var t1a, t1b, t1c geom.Point3
		var t2a, t2b, t2c geom.Point3
		if splitFirst {
			t1a, t1b, t1c = k1, j1, j2
			t2a, t2b, t2c = k2, k1, j2
		} else {
			t1a, t1b, t1c = k1, j1, k2
			t2a, t2b, t2c = j2, k2, j1
		}

		if path.IsInner {
			ps.AppendTriangle(t1a, t1b, t1c)
			ps.AppendTriangle(t2a, t2b, t2c)
		} else {
			ps.PrependTriangle(t1a, t1b, t1c)
			ps.PrependTriangle(t2a, t2b, t2c)
		}
	}
}

func to3(p geom.Point2, z float64) geom.Point3 {
	return geom.Point3{X: p.X, Y: p.Y, Z: z}
}
