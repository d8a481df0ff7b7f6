//go:build manifold

// Package manifold3 implements an optional, CGo-backed 3D booleans and
// tessellation engine for pkg/nef/meshnef, using the Manifold C library.
// It is built only with -tags=manifold; without the tag, manifold3_stub.go
// provides a New() that reports the backend is unavailable.
package manifold3

/*
#cgo LDFLAGS: -lmanifold -lmanifoldc
#include <manifoldc.h>
#include <stdlib.h>
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/chazu/polyeval/pkg/geom"
)

// Solid wraps a *C.ManifoldManifold, freed by a finalizer when it
// becomes unreachable.
type Solid struct {
	m *C.ManifoldManifold
}

func wrap(m *C.ManifoldManifold) *Solid {
	s := &Solid{m: m}
	runtime.SetFinalizer(s, func(s *Solid) {
		if s.m != nil {
			C.manifold_delete_manifold(s.m)
		}
	})
	return s
}

// Engine is the manifold3 3D booleans/tessellation engine. It is used
// directly; meshnef.Backend has no hook that delegates to it.
type Engine struct{}

// New returns a manifold-backed Engine; in this -tags=manifold build it
// never returns an error. The stub build's New always errors.
func New() (*Engine, error) {
	return &Engine{}, nil
}

// Box returns a solid box with the given corners.
func (e *Engine) Box(min, max geom.Point3) *Solid {
	m := C.manifold_cube(nil, C.double(max.X-min.X), C.double(max.Y-min.Y), C.double(max.Z-min.Z), 1)
	return wrap(translate(m, min.X, min.Y, min.Z))
}

func translate(m *C.ManifoldManifold, x, y, z float64) *C.ManifoldManifold {
	return C.manifold_translate(nil, m, C.double(x), C.double(y), C.double(z))
}

func (e *Engine) Union(a, b *Solid) *Solid {
	return wrap(C.manifold_union(nil, a.m, b.m))
}

func (e *Engine) Difference(a, b *Solid) *Solid {
	return wrap(C.manifold_difference(nil, a.m, b.m))
}

func (e *Engine) Intersection(a, b *Solid) *Solid {
	return wrap(C.manifold_intersection(nil, a.m, b.m))
}

// IsSimple reports whether the solid manifold is a valid 2-manifold, per
// the native library's own status check.
func (e *Engine) IsSimple(s *Solid) bool {
	return C.manifold_status(s.m) == C.MANIFOLD_NO_ERROR
}

// Triangle is a single output triangle with per-vertex positions and
// normals.
type Triangle struct {
	Vertices [3]geom.Point3
	Normals  [3]geom.Vec3
}

// ToTriangles extracts the manifold's mesh as a triangle-with-normals
// list, falling back to per-vertex averaged normals via computeFlatNormals
// when the native mesh does not carry vertex normal properties.
func (e *Engine) ToTriangles(s *Solid) []Triangle {
	meshGL := C.manifold_get_meshgl(nil, s.m)
	defer C.manifold_delete_meshgl(meshGL)

	numProp := int(C.manifold_meshgl_num_prop(meshGL))
	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))

	vertProps := make([]float64, numVert*numProp)
	vertBuf := (*C.double)(unsafe.Pointer(&vertProps[0]))
	C.manifold_meshgl_vert_properties(vertBuf, meshGL)

	triVerts := make([]uint32, numTri*3)
	triBuf := (*C.uint32_t)(unsafe.Pointer(&triVerts[0]))
	C.manifold_meshgl_tri_verts(triBuf, meshGL)

	hasNormals := numProp >= 6

	positions := make([]geom.Point3, numVert)
	normals := make([]geom.Vec3, numVert)
	for i := 0; i < numVert; i++ {
		off := i * numProp
		positions[i] = geom.Point3{X: vertProps[off], Y: vertProps[off+1], Z: vertProps[off+2]}
		if hasNormals {
			normals[i] = geom.Vec3{X: vertProps[off+3], Y: vertProps[off+4], Z: vertProps[off+5]}
		}
	}
	if !hasNormals {
		normals = computeFlatNormals(positions, triVerts)
	}

	tris := make([]Triangle, numTri)
	for i := 0; i < numTri; i++ {
		for j := 0; j < 3; j++ {
			idx := triVerts[i*3+j]
			tris[i].Vertices[j] = positions[idx]
			tris[i].Normals[j] = normals[idx]
		}
	}
	return tris
}

// computeFlatNormals averages the cross-product normal of every triangle
// touching a vertex, used when the native mesh carries no vertex-normal
// properties.
func computeFlatNormals(positions []geom.Point3, triVerts []uint32) []geom.Vec3 {
	normals := make([]geom.Vec3, len(positions))
	for i := 0; i < len(triVerts); i += 3 {
		a, b, c := positions[triVerts[i]], positions[triVerts[i+1]], positions[triVerts[i+2]]
		n := geom.Cross(b.Sub(a), c.Sub(a))
		for _, idx := range triVerts[i : i+3] {
			normals[idx].X += n.X
			normals[idx].Y += n.Y
			normals[idx].Z += n.Z
		}
	}
	for i, n := range normals {
		normals[i] = n.Normalize()
	}
	return normals
}
