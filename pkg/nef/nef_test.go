package nef_test

import (
	"testing"

	"github.com/chazu/polyeval/pkg/dxfdata"
	"github.com/chazu/polyeval/pkg/geom"
	"github.com/chazu/polyeval/pkg/nef"
	"github.com/chazu/polyeval/pkg/polyset"
)

// tagHandle is a minimal nef.Handle carrying an identifying tag, so tests
// can tell which underlying value a Solid ends up wrapping without a real
// geometric backend.
type tagHandle struct {
	dim nef.Dim
	tag string
}

func (h *tagHandle) Dim() nef.Dim { return h.dim }

var _ nef.Backend = (*countingBackend)(nil)

// countingBackend implements nef.Backend with tagHandle values, recording
// every Copy2/Copy3/Union2/Union3/Intersect2/Intersect3 call so tests can
// assert exactly when a copy or a mutation happened.
type countingBackend struct {
	copy2, copy3           int
	union2, union3         int
	intersect2, intersect3 int
	policy                 nef.FailurePolicy
}

func (b *countingBackend) NewBox3(min, max geom.Point3) nef.Handle {
	return &tagHandle{dim: nef.Dim3, tag: "box"}
}
func (b *countingBackend) Union3(a, other nef.Handle) nef.Handle {
	b.union3++
	return &tagHandle{dim: nef.Dim3, tag: a.(*tagHandle).tag + "+" + other.(*tagHandle).tag}
}
func (b *countingBackend) Intersect3(a, other nef.Handle) nef.Handle {
	b.intersect3++
	return &tagHandle{dim: nef.Dim3, tag: a.(*tagHandle).tag + "&" + other.(*tagHandle).tag}
}
func (b *countingBackend) Difference3(a, other nef.Handle) nef.Handle {
	return &tagHandle{dim: nef.Dim3, tag: a.(*tagHandle).tag + "-" + other.(*tagHandle).tag}
}
func (b *countingBackend) Copy3(a nef.Handle) nef.Handle {
	b.copy3++
	return &tagHandle{dim: nef.Dim3, tag: a.(*tagHandle).tag + "'"}
}
func (b *countingBackend) IsSimple3(a nef.Handle) bool { return true }
func (b *countingBackend) PlaneIntersectZ0(a nef.Handle) (nef.Handle, error) {
	return &tagHandle{dim: nef.Dim3, tag: a.(*tagHandle).tag + "|z0"}, nil
}
func (b *countingBackend) SlabIntersect(a nef.Handle, eps float64) (nef.Handle, error) {
	return &tagHandle{dim: nef.Dim3, tag: a.(*tagHandle).tag + "|slab"}, nil
}
func (b *countingBackend) ConvexHull3(points []geom.Point3) nef.Handle {
	return &tagHandle{dim: nef.Dim3, tag: "hull"}
}
func (b *countingBackend) WalkShells(a nef.Handle, visit func(nef.HalfFacet)) {}
func (b *countingBackend) ToPolySet3(a nef.Handle, convexity int) *polyset.PolySet {
	return polyset.New(convexity)
}
func (b *countingBackend) NewContour2(points []geom.Point2) nef.Handle {
	return &tagHandle{dim: nef.Dim2, tag: "contour"}
}
func (b *countingBackend) Union2(a, other nef.Handle) nef.Handle {
	b.union2++
	return &tagHandle{dim: nef.Dim2, tag: a.(*tagHandle).tag + "+" + other.(*tagHandle).tag}
}
func (b *countingBackend) Intersect2(a, other nef.Handle) nef.Handle {
	b.intersect2++
	return &tagHandle{dim: nef.Dim2, tag: a.(*tagHandle).tag + "&" + other.(*tagHandle).tag}
}
func (b *countingBackend) Copy2(a nef.Handle) nef.Handle {
	b.copy2++
	return &tagHandle{dim: nef.Dim2, tag: a.(*tagHandle).tag + "'"}
}
func (b *countingBackend) ToPolySet2(a nef.Handle, convexity int) *polyset.PolySet {
	return polyset.New(convexity)
}
func (b *countingBackend) ToDxf(a nef.Handle) *dxfdata.DxfData { return dxfdata.New() }
func (b *countingBackend) DxfTesselate(dxf *dxfdata.DxfData, rotationDeg float64, upNormals, includeHoles bool, z float64) [][3]geom.Point3 {
	return nil
}
func (b *countingBackend) FailurePolicy() nef.FailurePolicy     { return b.policy }
func (b *countingBackend) SetFailurePolicy(p nef.FailurePolicy) { b.policy = p }

func tag(h nef.Handle) string { return h.(*tagHandle).tag }

// TestEmptySolidUnionInPlaceCopiesAbsorbedHandle covers absorbing another
// Solid's handle into an initially-empty accumulator: the accumulator
// takes ownership immediately, which means it must clone the handle right
// away rather than share it, so the source Solid's own handle is never
// later touched by the accumulator's in-place mutations.
func TestEmptySolidUnionInPlaceCopiesAbsorbedHandle(t *testing.T) {
	b := &countingBackend{}
	empty := nef.EmptySolid(b, nef.Dim2)
	shared := nef.FromHandle(b, nef.Dim2, &tagHandle{dim: nef.Dim2, tag: "a"})

	empty.UnionInPlace(shared)

	if empty.IsEmpty() {
		t.Fatalf("expected solid to become non-empty after union")
	}
	if b.copy2 != 1 {
		t.Fatalf("copy2 calls = %d, want exactly 1 (absorption takes ownership immediately)", b.copy2)
	}
	if empty.Handle() == shared.Handle() {
		t.Fatalf("accumulator must not alias the source Solid's own handle")
	}
	if tag(shared.Handle()) != "a" {
		t.Fatalf("source Solid's handle was mutated: got tag %q", tag(shared.Handle()))
	}
}

// TestUnionInPlaceOnAlreadyOwnedHandleDoesNotCopyAgain covers the
// steady-state path: a Solid that already owns its handle (built via
// FromHandle, or having already absorbed one other Solid) must not pay
// for another copy on every subsequent in-place union.
func TestUnionInPlaceOnAlreadyOwnedHandleDoesNotCopyAgain(t *testing.T) {
	b := &countingBackend{}
	acc := nef.FromHandle(b, nef.Dim2, &tagHandle{dim: nef.Dim2, tag: "a"})
	other := nef.FromHandle(b, nef.Dim2, &tagHandle{dim: nef.Dim2, tag: "b"})

	acc.UnionInPlace(other)
	if b.copy2 != 0 {
		t.Fatalf("copy2 calls = %d, want 0 when the accumulator already owns its handle", b.copy2)
	}
	if b.union2 != 1 {
		t.Fatalf("union2 calls = %d, want 1", b.union2)
	}
	if tag(other.Handle()) != "b" {
		t.Fatalf("other Solid's handle was mutated: got tag %q", tag(other.Handle()))
	}

	acc.UnionInPlace(other)
	if b.copy2 != 0 {
		t.Fatalf("copy2 calls after a second union = %d, want still 0", b.copy2)
	}
	if b.union2 != 2 {
		t.Fatalf("union2 calls after a second union = %d, want 2", b.union2)
	}
}

func TestIntersectInPlaceWithEmptyProducesEmpty(t *testing.T) {
	b := &countingBackend{}
	acc := nef.FromHandle(b, nef.Dim2, &tagHandle{dim: nef.Dim2, tag: "a"})
	empty := nef.EmptySolid(b, nef.Dim2)

	acc.IntersectInPlace(empty)

	if !acc.IsEmpty() {
		t.Fatalf("expected intersection with an empty solid to be empty")
	}
}

func TestUnionInPlaceIgnoresEmptyOther(t *testing.T) {
	b := &countingBackend{}
	acc := nef.FromHandle(b, nef.Dim2, &tagHandle{dim: nef.Dim2, tag: "a"})
	empty := nef.EmptySolid(b, nef.Dim2)

	acc.UnionInPlace(empty)

	if tag(acc.Handle()) != "a" {
		t.Fatalf("unioning in an empty solid should leave the accumulator unchanged, got %q", tag(acc.Handle()))
	}
	if b.union2 != 0 {
		t.Fatalf("union2 calls = %d, want 0", b.union2)
	}
}

func TestHandlePanicsOnEmptySolid(t *testing.T) {
	b := &countingBackend{}
	empty := nef.EmptySolid(b, nef.Dim2)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Handle() to panic on an empty Solid")
		}
	}()
	empty.Handle()
}

func TestAcquireScopedPolicyRestoresOnRelease(t *testing.T) {
	b := &countingBackend{}
	b.SetFailurePolicy(nef.AbortOnFailure)

	release := nef.AcquireScopedPolicy(b, nef.ThrowRecoverable)
	if got := b.FailurePolicy(); got != nef.ThrowRecoverable {
		t.Fatalf("policy while held = %v, want ThrowRecoverable", got)
	}
	release()
	if got := b.FailurePolicy(); got != nef.AbortOnFailure {
		t.Fatalf("policy after release = %v, want AbortOnFailure", got)
	}
}
