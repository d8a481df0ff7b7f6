//go:build !manifold

package manifold3

import (
	"errors"

	"github.com/chazu/polyeval/pkg/geom"
)

// Solid is an unused placeholder in the stub build.
type Solid struct{}

// Engine is an unused placeholder in the stub build.
type Engine struct{}

// Triangle is an unused placeholder in the stub build.
type Triangle struct {
	Vertices [3]geom.Point3
	Normals  [3]geom.Vec3
}

// New reports that the manifold engine was not compiled in. Build with
// -tags=manifold to enable it.
func New() (*Engine, error) {
	return nil, errors.New("manifold engine not available: build with -tags=manifold")
}
