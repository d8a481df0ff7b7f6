package evalcsg

import (
	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/dxfio"
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/nef"
	"github.com/chazu/polyeval/pkg/polyset"
	"github.com/chazu/polyeval/pkg/scenenode"
)

// LinearExtrude evaluates a linear-extrude node: given either the 2D
// Solid union of its inline children, or a DXF file source, it returns a
// closed triangulated PolySet.
func LinearExtrude(backend nef.Backend, children []*nef.Solid, params scenenode.LinearExtrudeParams) (*polyset.PolySet, error) {
	dxf, err := linearExtrudeSource(backend, children, params)
	if err != nil {
		return nil, err
	}
	if dxf.IsEmpty() {
		return nil, nil
	}

	var h1, h2 float64
	if params.Center {
		h1, h2 = -params.Height/2, params.Height/2
	} else {
		h1, h2 = 0, params.Height
	}

	warnOpenPaths(dxf, params)

	ps := polyset.New(params.Convexity)

	bottomTwist, topTwist := 0.0, 0.0
	if params.HasTwist {
		topTwist = params.Twist
	}
	for _, t := range backend.DxfTesselate(dxf, bottomTwist, false, true, h1) {
		ps.AppendTriangle(t[0], t[1], t[2])
	}
	for _, t := range backend.DxfTesselate(dxf, topTwist, true, true, h2) {
		ps.AppendTriangle(t[0], t[1], t[2])
	}

	slices := params.Slices
	if slices < 1 {
		slices = 1
	}

	if params.HasTwist {
		for j := 0; j < slices; j++ {
			t1 := params.Twist * float64(j) / float64(slices)
			t2 := params.Twist * float64(j+1) / float64(slices)
			g1 := h1 + (h2-h1)*float64(j)/float64(slices)
			g2 := h1 + (h2-h1)*float64(j+1)/float64(slices)
			for _, path := range dxf.Paths {
				if path.Open() {
					continue
				}
				addSlice(ps, dxf, path, degToRad(t1), degToRad(t2), g1, g2)
			}
		}
	} else {
		for _, path := range dxf.Paths {
			if !path.IsClosed {
				continue
			}
			addSlice(ps, dxf, path, 0, 0, h1, h2)
		}
	}

	return ps, nil
}

func degToRad(deg float64) float64 {
	return deg * 3.141592653589793 / 180.0
}

// linearExtrudeSource unions inline children, or loads from a DXF file.
func linearExtrudeSource(backend nef.Backend, children []*nef.Solid, params scenenode.LinearExtrudeParams) (*dxfdata.DxfData, error) {
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

// warnOpenPaths warns about every open path (one whose endpoints are not
// extruded into a wall), with its endpoints converted back to user
// coordinates (point/scale + origin), the inverse of the transform
// dxfio.Load applies.
func warnOpenPaths(dxf *dxfdata.DxfData, params scenenode.LinearExtrudeParams) {
	scale := params.Scale
	if scale == 0 {
		scale = 1
	}
	for _, path := range dxf.Paths {
		if !path.Open() {
			continue
		}
		pts := dxf.PathPoints(path)
		if len(pts) == 0 {
			continue
		}
		start := toUserCoords(pts[0], params.OriginX, params.OriginY, scale)
		end := toUserCoords(pts[len(pts)-1], params.OriginX, params.OriginY, scale)
		nef.Logger.Printf("linear_extrude: open path from (%.4f,%.4f) to (%.4f,%.4f) is not extruded as a wall", start.X, start.Y, end.X, end.Y)
	}
}

func toUserCoords(p geom.Point2, originX, originY, scale float64) geom.Point2 {
	return geom.Point2{X: p.X/scale + originX, Y: p.Y/scale + originY}
}
