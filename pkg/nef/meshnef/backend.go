package meshnef

import (
	"fmt"
	"math"

	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/nef"
	"github.com/chazu/polyeval/pkg/polyset"
	"github.com/ctessum/go.clipper"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var _ nef.Backend = (*Backend)(nil)

// defaultMeshCells controls marching-cubes tessellation resolution.
const defaultMeshCells = 200

// Backend is the meshnef concrete GeometryBackend.
type Backend struct {
	meshCells int
	policy    nef.FailurePolicy
}

// New returns a Backend with the default tessellation resolution.
func New() *Backend {
	return &Backend{meshCells: defaultMeshCells}
}

// NewWithResolution returns a Backend tessellating at the given marching
// cubes cell count, for tests that want a coarser/faster mesh.
func NewWithResolution(cells int) *Backend {
	return &Backend{meshCells: cells}
}

// FailurePolicy returns the currently installed failure policy.
func (b *Backend) FailurePolicy() nef.FailurePolicy { return b.policy }

// SetFailurePolicy installs policy, the primitive nef.AcquireScopedPolicy
// wraps with guaranteed restoration.
func (b *Backend) SetFailurePolicy(p nef.FailurePolicy) { b.policy = p }

// --- Nef3 ---

// NewBox3 builds an axis-aligned box with the given corners, translated
// from sdf.Box3D's center-origin convention.
func (b *Backend) NewBox3(min, max geom.Point3) nef.Handle {
	dx, dy, dz := max.X-min.X, max.Y-min.Y, max.Z-min.Z
	box, err := sdf.Box3D(v3.Vec{X: dx, Y: dy, Z: dz}, 0)
	if err != nil {
		panic(fmt.Sprintf("meshnef: Box3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{X: min.X + dx/2, Y: min.Y + dy/2, Z: min.Z + dz/2})
	return &sdfHandle{s: sdf.Transform3D(box, m)}
}

func (b *Backend) Union3(a, other nef.Handle) nef.Handle {
	return &sdfHandle{s: sdf.Union3D(asSDF(a), asSDF(other))}
}

func (b *Backend) Intersect3(a, other nef.Handle) nef.Handle {
	return &sdfHandle{s: sdf.Intersect3D(asSDF(a), asSDF(other))}
}

func (b *Backend) Difference3(a, other nef.Handle) nef.Handle {
	return &sdfHandle{s: sdf.Difference3D(asSDF(a), asSDF(other))}
}

func (b *Backend) Copy3(a nef.Handle) nef.Handle {
	// SDF3 values are immutable function objects; sharing is safe.
	return &sdfHandle{s: asSDF(a)}
}

// IsSimple3 checks manifoldness of the marching-cubes tessellation of a by
// counting triangle-edge adjacency: every edge of a closed 2-manifold
// surface borders exactly two triangles.
func (b *Backend) IsSimple3(a nef.Handle) bool {
	tris := b.tessellate(asSDF(a))
	edgeCount := make(map[edgeKey]int, len(tris)*3)
	for _, t := range tris {
		for i := 0; i < 3; i++ {
			edgeCount[makeEdgeKey(fromV3(t[i]), fromV3(t[(i+1)%3]))]++
		}
	}
	for _, c := range edgeCount {
		if c != 2 {
			return false
		}
	}
	return true
}

type edgeKey struct{ ax, ay, az, bx, by, bz int64 }

const edgeQuantum = 1e-5

func quantize(v float64) int64 {
	return int64(math.Round(v / edgeQuantum))
}

// makeEdgeKey builds an order-independent key for the undirected edge a-b
// so that two triangles sharing the edge in opposite winding still hash
// to the same bucket.
func makeEdgeKey(a, b geom.Point3) edgeKey {
	k1 := edgeKey{quantize(a.X), quantize(a.Y), quantize(a.Z), quantize(b.X), quantize(b.Y), quantize(b.Z)}
	k2 := edgeKey{quantize(b.X), quantize(b.Y), quantize(b.Z), quantize(a.X), quantize(a.Y), quantize(a.Z)}
	if k1.ax < k2.ax || (k1.ax == k2.ax && (k1.ay < k2.ay || (k1.ay == k2.ay && k1.az <= k2.az))) {
		return k1
	}
	return k2
}

// PlaneIntersectZ0 approximates an exact-arithmetic plane intersection by
// intersecting a with an infinitesimally thin slab straddling z=0,
// delegating to SlabIntersect with a very small epsilon. A true exact
// backend performs this as an actual planar cut; the marching-cubes
// approximation used here cannot represent an infinitely-thin result, so
// it is modeled as the slab's degenerate limit and documented as such in
// DESIGN.md.
func (b *Backend) PlaneIntersectZ0(a nef.Handle) (nef.Handle, error) {
	return b.SlabIntersect(a, 1e-9)
}

// SlabIntersect intersects a with the box
// [-1e8,1e8] x [-1e8,1e8] x [-eps,eps], built via ConvexHull3 of the
// slab's eight corners.
func (b *Backend) SlabIntersect(a nef.Handle, eps float64) (nef.Handle, error) {
	if b.policy == nef.ThrowRecoverable {
		bb := asSDF(a).BoundingBox()
		if bb.Max.Z < -eps || bb.Min.Z > eps {
			return nil, fmt.Errorf("meshnef: solid does not intersect slab [-%.g,%.g]", eps, eps)
		}
	}
	corners := slabCorners(eps)
	hull := b.ConvexHull3(corners)
	return &sdfHandle{s: sdf.Intersect3D(asSDF(a), asSDF(hull))}, nil
}

func slabCorners(eps float64) []geom.Point3 {
	const big = 1e8
	var pts []geom.Point3
	for _, x := range []float64{-big, big} {
		for _, y := range []float64{-big, big} {
			for _, z := range []float64{-eps, eps} {
				pts = append(pts, geom.Point3{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}

func (b *Backend) tessellate(s sdf.SDF3) []*sdf.Triangle3 {
	renderer := render.NewMarchingCubesUniform(b.meshCells)
	return render.ToTriangles(s, renderer)
}

// WalkShells replaces the backend-defined shell/half-facet visitor with a
// plain iteration over marching-cubes triangles: every triangle is
// treated as its own trivial, single-cycle half-facet.
func (b *Backend) WalkShells(a nef.Handle, visit func(nef.HalfFacet)) {
	for _, t := range b.tessellate(asSDF(a)) {
		visit(&triFacet{tri: t})
	}
}

func (b *Backend) ToPolySet3(a nef.Handle, convexity int) *polyset.PolySet {
	ps := polyset.New(convexity)
	for _, t := range b.tessellate(asSDF(a)) {
		ps.AppendTriangle(fromV3(t[0]), fromV3(t[1]), fromV3(t[2]))
	}
	return ps
}

// --- Nef2 ---

func toClipperPath(points []geom.Point2) clipper.Path {
	path := make(clipper.Path, len(points))
	for i, p := range points {
		path[i] = &clipper.IntPoint{
			X: clipper.CInt(math.Round(p.X * clipperScale)),
			Y: clipper.CInt(math.Round(p.Y * clipperScale)),
		}
	}
	return path
}

func fromClipperPath(path clipper.Path) []geom.Point2 {
	pts := make([]geom.Point2, len(path))
	for i, ip := range path {
		pts[i] = geom.Point2{X: float64(ip.X) / clipperScale, Y: float64(ip.Y) / clipperScale}
	}
	return pts
}

// NewContour2 builds a 2D Nef handle from a single contour, with
// boundary=INCLUDED implemented as clipper's non-zero fill rule.
func (b *Backend) NewContour2(points []geom.Point2) nef.Handle {
	return &contour2Handle{paths: clipper.Paths{toClipperPath(points)}}
}

func (b *Backend) clip(a, other nef.Handle, ct clipper.ClipType) nef.Handle {
	c := clipper.NewClipper(clipper.IoStrictlySimple)
	c.AddPaths(asPaths(a), clipper.PtSubject, true)
	c.AddPaths(asPaths(other), clipper.PtClip, true)
	solution, ok := c.Execute1(ct, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return &contour2Handle{}
	}
	return &contour2Handle{paths: solution}
}

func (b *Backend) Union2(a, other nef.Handle) nef.Handle {
	return b.clip(a, other, clipper.CtUnion)
}

func (b *Backend) Intersect2(a, other nef.Handle) nef.Handle {
	return b.clip(a, other, clipper.CtIntersection)
}

func (b *Backend) Copy2(a nef.Handle) nef.Handle {
	src := asPaths(a)
	dup := make(clipper.Paths, len(src))
	copy(dup, src)
	return &contour2Handle{paths: dup}
}

// ToPolySet2 triangulates every path via poly2tri and returns the
// resulting flat z=0 triangles, treating even-indexed nesting depth
// (outer boundaries) and odd-indexed nesting depth (holes) via clipper's
// own PftNonZero resolution rather than re-deriving nesting here.
func (b *Backend) ToPolySet2(a nef.Handle, convexity int) *polyset.PolySet {
	ps := polyset.New(convexity)
	for _, path := range asPaths(a) {
		tris := triangulatePath(fromClipperPath(path))
		for _, t := range tris {
			ps.AppendTriangle(
				geom.Point3{X: t[0].X, Y: t[0].Y},
				geom.Point3{X: t[1].X, Y: t[1].Y},
				geom.Point3{X: t[2].X, Y: t[2].Y},
			)
		}
	}
	return ps
}

func (b *Backend) ToDxf(a nef.Handle) *dxfdata.DxfData {
	d := dxfdata.New()
	for _, path := range asPaths(a) {
		d.AddPath(fromClipperPath(path), true, false)
	}
	return d
}

func fromV3(v v3.Vec) geom.Point3 {
	return geom.Point3{X: v.X, Y: v.Y, Z: v.Z}
}

// DxfTesselate triangulates every closed outer path, rotated about the
// origin by rotationDeg, and (when includeHoles) subtracts every closed
// inner path first via clipper's difference operation before
// triangulating the remainder.
func (b *Backend) DxfTesselate(dxf *dxfdata.DxfData, rotationDeg float64, upNormals, includeHoles bool, z float64) [][3]geom.Point3 {
	rad := rotationDeg * math.Pi / 180.0
	rotate := func(p geom.Point2) geom.Point2 {
		return geom.Point2{
			X: p.X*math.Cos(rad) - p.Y*math.Sin(rad),
			Y: p.X*math.Sin(rad) + p.Y*math.Cos(rad),
		}
	}

	var outers, inners clipper.Paths
	for _, path := range dxf.Paths {
		if path.Open() {
			continue
		}
		pts := dxf.PathPoints(canonicalWinding(dxf, path))
		rotated := make([]geom.Point2, len(pts))
		for i, p := range pts {
			rotated[i] = rotate(p)
		}
		if path.IsInner {
			inners = append(inners, toClipperPath(rotated))
		} else {
			outers = append(outers, toClipperPath(rotated))
		}
	}

	regions := outers
	if includeHoles && len(inners) > 0 {
		c := clipper.NewClipper(clipper.IoStrictlySimple)
		c.AddPaths(outers, clipper.PtSubject, true)
		c.AddPaths(inners, clipper.PtClip, true)
		if solution, ok := c.Execute1(clipper.CtDifference, clipper.PftNonZero, clipper.PftNonZero); ok {
			regions = solution
		}
	}

	var out [][3]geom.Point3
	for _, path := range regions {
		for _, t := range dxfTesselate(fromClipperPath(path), z, upNormals) {
			out = append(out, t)
		}
	}
	return out
}

// canonicalWinding returns path, or path.Reversed() if its point order
// runs the wrong way for its role: outer boundaries wind
// counterclockwise (positive signed area), inner boundaries (holes)
// wind clockwise (negative signed area). Clipper's non-zero fill rule
// tolerates either winding, but a consistent orientation keeps outer and
// inner paths from canceling out when an upstream union produces mixed
// winding.
func canonicalWinding(dxf *dxfdata.DxfData, path dxfdata.Path) dxfdata.Path {
	area := signedArea2(dxf.PathPoints(path))
	wantPositive := !path.IsInner
	if (area >= 0) == wantPositive {
		return path
	}
	return path.Reversed()
}

func signedArea2(pts []geom.Point2) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}
