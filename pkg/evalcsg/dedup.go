package evalcsg

import (
	"github.com/dhconnelly/rtreego"

	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/geom"
)

// dedupEps is the bounding-box tolerance below which two projected
// contours are considered the same thin-polyhedron artifact.
const dedupEps = 1e-4

// contourBox adapts a path's bounding box to rtreego.Spatial so it can be
// indexed and queried for near-duplicates.
type contourBox struct {
	rect  rtreego.Rect
	index int
}

func (c *contourBox) Bounds() rtreego.Rect { return c.rect }

// FilterThinArtifacts drops contours from d whose bounding box, inflated
// by dedupEps, overlaps the inflated bounding box of an earlier kept
// contour of matching orientation (IsInner), catching the near-duplicate
// degenerate slivers a thin-slab plane-intersection fallback can
// introduce. d is left unmodified: an empty d is returned as is, any
// other d yields a new DxfData.
func FilterThinArtifacts(d *dxfdata.DxfData) *dxfdata.DxfData {
	if d.IsEmpty() {
		return d
	}

	tree := rtreego.NewTree(2, 4, 16)
	kept := make([]bool, len(d.Paths))

	for i, path := range d.Paths {
		box, ok := boundingRect(d.PathPoints(path))
		if !ok {
			continue
		}
		hits := tree.SearchIntersect(box)
		duplicate := false
		for _, hit := range hits {
			other := hit.(*contourBox)
			if d.Paths[other.index].IsInner == path.IsInner {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		kept[i] = true
		tree.Insert(&contourBox{rect: box, index: i})
	}

	out := dxfdata.New()
	for i, path := range d.Paths {
		if !kept[i] {
			continue
		}
		out.AddPath(d.PathPoints(path), path.IsClosed, path.IsInner)
	}
	return out
}

func boundingRect(pts []geom.Point2) (rtreego.Rect, bool) {
	if len(pts) == 0 {
		return rtreego.Rect{}, false
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	lengths := []float64{maxX - minX + dedupEps, maxY - minY + dedupEps}
	rect, err := rtreego.NewRect(rtreego.Point{minX - dedupEps/2, minY - dedupEps/2}, lengths)
	if err != nil {
		return rtreego.Rect{}, false
	}
	return rect, true
}
