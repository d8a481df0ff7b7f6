package evalcsg

import (
	"math"

	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/dxfio"
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/nef"
	"github.com/chazu/polyeval/pkg/polyset"
	"github.com/chazu/polyeval/pkg/scenenode"
)

// RotateExtrude evaluates a rotate-extrude node: it lathes every path of
// at least two points of the source DxfData 360 degrees around the Y
// axis (a closed path including its closing edge, an open path without
// it), producing a triangle-soup surface with no caps.
func RotateExtrude(backend nef.Backend, children []*nef.Solid, params scenenode.RotateExtrudeParams) (*polyset.PolySet, error) {
	dxf, err := rotateExtrudeSource(backend, children, params)
	if err != nil {
		return nil, err
	}
	if dxf.IsEmpty() {
		return nil, nil
	}

	ps := polyset.New(params.Convexity)
	for _, path := range dxf.Paths {
		if len(path.Indices) < 2 {
			continue
		}
		profile := dxf.PathPoints(path)
		rotateExtrudePath(ps, profile, !path.Open(), params.Fragments)
	}
	return ps, nil
}

func rotateExtrudeSource(backend nef.Backend, children []*nef.Solid, params scenenode.RotateExtrudeParams) (*dxfdata.DxfData, error) {
	if params.Filename != "" {
		return dxfio.Load(dxfio.Params{
			Filename:  params.Filename,
			Layername: params.Layername,
			OriginX:   params.OriginX,
			OriginY:   params.OriginY,
			Scale:     params.Scale,
			Fragments: params.Fragments,
		})
	}
	sum := nef.EmptySolid(backend, nef.Dim2)
	for _, c := range children {
		sum.UnionInPlace(c)
	}
	if sum.IsEmpty() {
		return dxfdata.New(), nil
	}
	return sum.ToDxf(), nil
}

// rotateExtrudePath derives the fragment count from the profile's max
// radius, builds a dense fragments x point_count grid of 3D points, and
// emits two triangles per quad: the first only if the two angular samples
// of profile point k differ, the second only if the two angular samples
// of profile point k+1 differ, both compared bit-exactly.
func rotateExtrudePath(ps *polyset.PolySet, profile []geom.Point2, closed bool, fp scenenode.FragmentParams) {
	if len(profile) < 2 {
		return
	}

	maxX := profile[0].X
	for _, p := range profile[1:] {
		if p.X > maxX {
			maxX = p.X
		}
	}
	fragments := scenenode.Fragments(maxX, fp)
	count := len(profile)

	grid := make([][]geom.Point3, fragments)
	for j := 0; j < fragments; j++ {
		a := (2*math.Pi*float64(j))/float64(fragments) - math.Pi/2
		row := make([]geom.Point3, count)
		for k, p := range profile {
			row[k] = geom.Point3{X: p.X * math.Sin(a), Y: p.X * math.Cos(a), Z: p.Y}
		}
		grid[j] = row
	}

	edges := count
	if !closed {
		edges = count - 1
	}

	for j := 0; j < fragments; j++ {
		j1 := (j + 1) % fragments
		for k := 0; k < edges; k++ {
			k1 := (k + 1) % count
			a := grid[j][k]
			b := grid[j1][k]
			c := grid[j][k1]
			d := grid[j1][k1]

			if !geom.PointEqualExact(a, b) {
				ps.AppendTriangle(a, b, c)
			}
			if !geom.PointEqualExact(c, d) {
				ps.AppendTriangle(c, b, d)
			}
		}
	}
}
