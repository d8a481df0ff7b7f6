// Package dxfio loads a DxfData from a DXF file using github.com/yofu/dxf.
// It implements the (filename, layername, origin, scale, fn, fs, fa)
// source selection used by the linear- and rotate-extrusion evaluators
// when a node names a file instead of inline 2D children.
package dxfio

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/scenenode"
)

// Params bundles the file-source parameters a linear- or rotate-extrude
// node carries.
type Params struct {
	Filename  string
	Layername string
	OriginX   float64
	OriginY   float64
	Scale     float64
	Fragments scenenode.FragmentParams
}

// circleSegments is how many line segments approximate a DXF circle
// entity, sized the same way scenenode.Fragments sizes rotate-extrude's
// angular sampling.
func circleSegments(radius float64, fp scenenode.FragmentParams) int {
	return scenenode.Fragments(radius, fp)
}

// Load reads filename, keeps entities on layername (or every layer if
// layername is empty), applies (origin, scale), and returns the resulting
// DxfData. Coordinates are read in file units, offset by -origin and then
// multiplied by scale, the inverse of the user-coordinate conversion the
// linear-extrusion evaluator's open-path warning applies.
func Load(p Params) (*dxfdata.DxfData, error) {
	drawing, err := dxf.Open(p.Filename)
	if err != nil {
		return nil, fmt.Errorf("dxfio: open %q: %w", p.Filename, err)
	}

	toPoint := func(x, y float64) geom.Point2 {
		return geom.Point2{X: (x - p.OriginX) * p.Scale, Y: (y - p.OriginY) * p.Scale}
	}

	d := dxfdata.New()
	for _, e := range drawing.Entities() {
		if p.Layername != "" && e.Layer().Name() != p.Layername {
			continue
		}
		switch ent := e.(type) {
		case *entity.Line:
			d.AddPath([]geom.Point2{
				toPoint(ent.Start[0], ent.Start[1]),
				toPoint(ent.End[0], ent.End[1]),
			}, false, false)

		case *entity.LwPolyline:
			pts := make([]geom.Point2, len(ent.Vertices))
			for i, v := range ent.Vertices {
				pts[i] = toPoint(v[0], v[1])
			}
			d.AddPath(pts, ent.Closed, false)

		case *entity.Circle:
			n := circleSegments(ent.Radius*p.Scale, p.Fragments)
			pts := make([]geom.Point2, n)
			for i := 0; i < n; i++ {
				a := 2 * math.Pi * float64(i) / float64(n)
				pts[i] = toPoint(ent.Center[0]+ent.Radius*math.Cos(a), ent.Center[1]+ent.Radius*math.Sin(a))
			}
			d.AddPath(pts, true, false)
		}
	}
	return d, nil
}
