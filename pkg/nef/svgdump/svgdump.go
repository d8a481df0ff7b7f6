// Package svgdump renders a debug SVG trace of a 2D Nef accumulator's
// state. The flattener calls Write through the nef.DebugSVG hook when a
// caller has installed one, so debug tracing costs nothing when no hook
// is set.
package svgdump

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/polyeval/pkg/dxfdata"
)

// Scale maps DxfData's floating-point coordinate space into SVG pixels.
const Scale = 20

// Margin is the border, in pixels, added around the drawn extent.
const Margin = 40

// Write renders every closed path of d as an SVG polygon, filling outer
// paths gray and inner (hole) paths white so the accumulator's positive
// and negative regions are visually distinguishable, and every open path
// as an unfilled polyline, into w. Paths of fewer than two points are
// skipped.
func Write(w io.Writer, d *dxfdata.DxfData, width, height int) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, path := range d.Paths {
		pts := d.PathPoints(path)
		if len(pts) < 2 {
			continue
		}
		xs := make([]int, len(pts))
		ys := make([]int, len(pts))
		for i, p := range pts {
			xs[i] = int(p.X*Scale) + Margin
			ys[i] = height - (int(p.Y*Scale) + Margin)
		}
		style := "fill:lightgray;stroke:black;stroke-width:1"
		if path.IsInner {
			style = "fill:white;stroke:red;stroke-width:1"
		}
		if path.IsClosed {
			canvas.Polygon(xs, ys, style)
		} else {
			canvas.Polyline(xs, ys, "fill:none;stroke:blue;stroke-width:1")
		}
	}

	canvas.End()
}
