// Package dxfdata defines DxfData, the 2D intermediate representation that
// flows between the projection evaluator, the extrusion evaluators, and
// pkg/dxfio. It mirrors the flattened-outline shape of a .dxf drawing
// without depending on any particular file format.
package dxfdata

import "github.com/chazu/polyeval/pkg/geom"

// Path is an ordered list of indices into a DxfData's Points slice,
// describing one contour. IsClosed marks a path whose last point connects
// back to its first; IsInner marks a hole boundary within its containing
// outer path.
type Path struct {
	Indices  []int
	IsClosed bool
	IsInner  bool
}

// DxfData is a set of 2D points and the paths built from them.
type DxfData struct {
	Points []geom.Point2
	Paths  []Path
}

// New returns an empty DxfData.
func New() *DxfData {
	return &DxfData{}
}

// AddPoint appends p and returns its index.
func (d *DxfData) AddPoint(p geom.Point2) int {
	d.Points = append(d.Points, p)
	return len(d.Points) - 1
}

// AddPath appends a path built from the given points, adding each point to
// the shared point list in order.
func (d *DxfData) AddPath(points []geom.Point2, closed, inner bool) {
	indices := make([]int, len(points))
	for i, p := range points {
		indices[i] = d.AddPoint(p)
	}
	d.Paths = append(d.Paths, Path{Indices: indices, IsClosed: closed, IsInner: inner})
}

// PathPoints resolves a path's indices back to points, in order.
func (d *DxfData) PathPoints(p Path) []geom.Point2 {
	pts := make([]geom.Point2, len(p.Indices))
	for i, idx := range p.Indices {
		pts[i] = d.Points[idx]
	}
	return pts
}

// IsEmpty reports whether d has no paths.
func (d *DxfData) IsEmpty() bool {
	return d == nil || len(d.Paths) == 0
}

// Reversed returns a copy of the path with its point order reversed,
// leaving IsClosed and IsInner unchanged. Used to flip a contour whose
// winding runs the wrong way for its role (outer boundary vs. hole).
func (p Path) Reversed() Path {
	rev := make([]int, len(p.Indices))
	for i, idx := range p.Indices {
		rev[len(p.Indices)-1-i] = idx
	}
	return Path{Indices: rev, IsClosed: p.IsClosed, IsInner: p.IsInner}
}

// Open reports whether the path is not closed, i.e. IsClosed is false; the
// point coordinates are not inspected. Open paths are warned about, not
// extruded as walls, by the linear-extrusion evaluator.
func (p Path) Open() bool {
	return !p.IsClosed
}
