// Package nef declares the GeometryBackend abstraction: an opaque, exact
// Boolean engine over 2D and 3D Nef polyhedra. This package holds only
// the interface and the small ownership/lifecycle wrapper (Solid) built
// on top of it; concrete implementations live in sibling packages
// (pkg/nef/meshnef, pkg/nef/manifold3).
package nef

import (
	"fmt"
	"log"

	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/polyset"
)

// Logger is the package-level logger every evaluator and backend writes
// warnings through. Replaceable by an embedder; defaults to log.Default().
var Logger = log.Default()

// DebugSVG, when non-nil, is invoked by the flattener with the 2D
// accumulator's DxfData after every Run that leaves the accumulator
// non-empty, letting a caller dump an SVG
// trace of the accumulated shadow via pkg/nef/svgdump.Write. Left nil,
// tracing costs nothing.
var DebugSVG func(*dxfdata.DxfData)

// Dim is the dimensionality tag carried by a Solid.
type Dim int

const (
	Dim2 Dim = 2
	Dim3 Dim = 3
)

// HalfFacet is a single upward- or downward-facing side of a facet in a
// Nef3 polyhedron, as exposed to the flattener's visitor. Cycles returns
// the facet's boundary cycles in walker order: the first cycle is the
// outer boundary, subsequent cycles (if any) are holes. Trivial
// (non-shalfedge) cycles are not returned at all.
type HalfFacet interface {
	OrthogonalDirection() geom.Vec3
	Cycles() [][]geom.Point3
}

// Handle is an opaque backend-owned payload, reference-counted internally
// by the concrete backend. Solid never inspects it directly.
type Handle interface {
	// Dim reports whether this handle carries a 2D or 3D Nef polyhedron.
	Dim() Dim
}

// Backend is the GeometryBackend interface: exact Boolean operations
// over Nef2/Nef3 polyhedra, a convex-hull primitive for the thin-slab
// fallback, a shell walker standing in for the visitor pattern, and the
// scoped failure-policy switch.
type Backend interface {
	// --- Nef3 ---
	NewBox3(min, max geom.Point3) Handle
	Union3(a, b Handle) Handle
	Intersect3(a, b Handle) Handle

	// Difference3 returns a minus b. Every concrete backend needs it to
	// build fixtures such as a box with a hole cut out of it, so it is exposed here as a derived convenience the same way
	// a ∪= b and a ∩= (complement b) would be on an exact backend.
	Difference3(a, b Handle) Handle

	Copy3(a Handle) Handle
	IsSimple3(a Handle) bool

	// PlaneIntersectZ0 intersects a with the plane z=0, PLANE_ONLY. It
	// returns an error (rather than panicking) when the backend's
	// geometric kernel fails.
	PlaneIntersectZ0(a Handle) (Handle, error)

	// SlabIntersect intersects a with the thin slab [-1e8,1e8]^2 x
	// [-eps,eps], built via ConvexHull3 of the slab's eight corners. This
	// is the fallback path taken when a true zero-thickness plane cut
	// fails.
	SlabIntersect(a Handle, eps float64) (Handle, error)

	// ConvexHull3 builds the convex hull of a point set as a 3D handle.
	ConvexHull3(points []geom.Point3) Handle

	// WalkShells visits every half-facet of every shell of every volume
	// of a, replacing the backend-defined visitor pattern with an
	// explicit callback.
	WalkShells(a Handle, visit func(HalfFacet))

	ToPolySet3(a Handle, convexity int) *polyset.PolySet

	// --- Nef2 ---
	NewContour2(points []geom.Point2) Handle
	Union2(a, b Handle) Handle
	Intersect2(a, b Handle) Handle
	Copy2(a Handle) Handle
	ToPolySet2(a Handle, convexity int) *polyset.PolySet
	ToDxf(a Handle) *dxfdata.DxfData

	// DxfTesselate returns a planar triangulation of dxf's closed
	// paths, rotated by rotationDeg about the Z axis and placed at height
	// z, with holes cut when includeHoles is true and triangle winding
	// chosen so normals face +Z (upNormals) or -Z.
	DxfTesselate(dxf *dxfdata.DxfData, rotationDeg float64, upNormals, includeHoles bool, z float64) [][3]geom.Point3

	// --- Scoped failure policy ---
	FailurePolicy() FailurePolicy
	SetFailurePolicy(FailurePolicy)
}

// FailurePolicy models the backend's global error-behavior switch: either
// it aborts the process on a geometric-kernel error, or it raises a
// recoverable failure the caller can catch. Cut-mode projection installs
// ThrowRecoverable for the duration of its call so it can fall back to a
// thin-slab intersection on failure.
type FailurePolicy int

const (
	AbortOnFailure FailurePolicy = iota
	ThrowRecoverable
)

// AcquireScopedPolicy installs policy on backend and returns a release
// function that restores whatever policy was in effect before the call.
// Callers must defer the returned function immediately, guaranteeing
// restoration on every exit path including panics and early returns.
func AcquireScopedPolicy(backend Backend, policy FailurePolicy) func() {
	previous := backend.FailurePolicy()
	backend.SetFailurePolicy(policy)
	return func() {
		backend.SetFailurePolicy(previous)
	}
}

// Solid wraps a backend Handle with a dimensionality tag, an empty flag,
// and copy-on-first-assign / union-in-place-thereafter Boolean
// composition.
type Solid struct {
	backend Backend
	dim     Dim
	handle  Handle
	empty   bool
	owned   bool // true once this Solid has taken exclusive ownership of handle
}

// EmptySolid returns an empty solid of the given dimensionality; unioning
// anything into it yields that thing unchanged.
func EmptySolid(backend Backend, dim Dim) *Solid {
	return &Solid{backend: backend, dim: dim, empty: true}
}

// FromHandle wraps an existing, non-empty handle.
func FromHandle(backend Backend, dim Dim, h Handle) *Solid {
	return &Solid{backend: backend, dim: dim, handle: h, owned: true}
}

// IsEmpty reports whether s carries no geometry.
func (s *Solid) IsEmpty() bool {
	return s == nil || s.empty
}

// Dim reports the solid's dimensionality.
func (s *Solid) Dim() Dim {
	return s.dim
}

// Handle returns the wrapped backend handle. Panics if the solid is empty;
// callers must check IsEmpty first.
func (s *Solid) Handle() Handle {
	if s.empty {
		panic("nef: Handle called on empty Solid")
	}
	return s.handle
}

// copyOnFirstAssign deep-clones the handle the first time this Solid takes
// ownership of a value it did not itself produce, so later in-place
// Booleans never mutate a payload another Solid still references.
func (s *Solid) copyOnFirstAssign() {
	if s.owned || s.empty {
		return
	}
	switch s.dim {
	case Dim3:
		s.handle = s.backend.Copy3(s.handle)
	case Dim2:
		s.handle = s.backend.Copy2(s.handle)
	}
	s.owned = true
}

// UnionInPlace unions other into s. If s was empty, s simply takes other's
// handle (copy-on-first-assign).
func (s *Solid) UnionInPlace(other *Solid) {
	if other.IsEmpty() {
		return
	}
	if s.empty {
		s.handle = other.handle
		s.empty = false
		s.owned = false
		s.copyOnFirstAssign()
		return
	}
	s.copyOnFirstAssign()
	switch s.dim {
	case Dim3:
		s.handle = s.backend.Union3(s.handle, other.handle)
	case Dim2:
		s.handle = s.backend.Union2(s.handle, other.handle)
	}
}

// IntersectInPlace intersects s with other, used by the flattener to
// subtract holes from an accumulator.
func (s *Solid) IntersectInPlace(other *Solid) {
	if s.empty || other.IsEmpty() {
		s.empty = true
		s.handle = nil
		return
	}
	s.copyOnFirstAssign()
	switch s.dim {
	case Dim3:
		s.handle = s.backend.Intersect3(s.handle, other.handle)
	case Dim2:
		s.handle = s.backend.Intersect2(s.handle, other.handle)
	}
}

// IsSimple reports whether a 3D solid is a 2-manifold. Only meaningful for
// Dim3 solids.
func (s *Solid) IsSimple() bool {
	if s.empty || s.dim != Dim3 {
		return true
	}
	return s.backend.IsSimple3(s.handle)
}

// ToPolySet converts a 3D solid to a PolySet, or nil if empty.
func (s *Solid) ToPolySet(convexity int) *polyset.PolySet {
	if s.IsEmpty() {
		return nil
	}
	if s.dim != Dim3 {
		panic("nef: ToPolySet called on a non-3D Solid")
	}
	return s.backend.ToPolySet3(s.handle, convexity)
}

// ToPolySet2 converts a 2D solid to its z=0 PolySet triangulation, or nil
// if empty.
func (s *Solid) ToPolySet2(convexity int) *polyset.PolySet {
	if s.IsEmpty() {
		return nil
	}
	if s.dim != Dim2 {
		panic("nef: ToPolySet2 called on a non-2D Solid")
	}
	return s.backend.ToPolySet2(s.handle, convexity)
}

// ToDxf converts a 2D solid to a DxfData, or an empty DxfData if empty.
func (s *Solid) ToDxf() *dxfdata.DxfData {
	if s.IsEmpty() {
		return dxfdata.New()
	}
	if s.dim != Dim2 {
		panic("nef: ToDxf called on a non-2D Solid")
	}
	return s.backend.ToDxf(s.handle)
}

// WalkShells visits every half-facet of s, a no-op if s is empty. Only
// meaningful for Dim3 solids.
func (s *Solid) WalkShells(visit func(HalfFacet)) {
	if s.empty || s.dim != Dim3 {
		return
	}
	s.backend.WalkShells(s.handle, visit)
}

// PlaneIntersectZ0 intersects s with the z=0 plane, returning the errors
// the backend produced wrapped with context.
func (s *Solid) PlaneIntersectZ0() (*Solid, error) {
	h, err := s.backend.PlaneIntersectZ0(s.handle)
	if err != nil {
		return nil, fmt.Errorf("nef: plane intersection failed: %w", err)
	}
	return FromHandle(s.backend, Dim3, h), nil
}

// SlabIntersect intersects s with the thin-slab fallback used when a
// true zero-thickness plane cut fails.
func (s *Solid) SlabIntersect(eps float64) (*Solid, error) {
	h, err := s.backend.SlabIntersect(s.handle, eps)
	if err != nil {
		return nil, fmt.Errorf("nef: slab intersection failed: %w", err)
	}
	return FromHandle(s.backend, Dim3, h), nil
}

// Backend exposes the underlying backend, for callers (evaluators) that
// need to construct new solids of the same kind, e.g. via NewContour2.
func (s *Solid) Backend() Backend {
	return s.backend
}
