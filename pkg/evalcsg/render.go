package evalcsg

import (
	"github.com/chazu/polyeval/pkg/nef"
	"github.com/chazu/polyeval/pkg/polyset"
	"github.com/chazu/polyeval/pkg/scenenode"
)

// Render evaluates a render or advanced-CSG node: union the children
// into a Solid, warn if the 3D result is not a 2-manifold (but still
// attempt conversion, unlike shadow-mode projection), convert to
// PolySet, and return nil on empty.
func Render(children []*nef.Solid, params scenenode.RenderParams) *polyset.PolySet {
	if len(children) == 0 {
		return nil
	}
	sum := nef.EmptySolid(children[0].Backend(), children[0].Dim())
	for _, c := range children {
		sum.UnionInPlace(c)
	}
	if sum.IsEmpty() {
		return nil
	}

	if sum.Dim() == nef.Dim3 && !sum.IsSimple() {
		nef.Logger.Printf("render: input is not a 2-manifold, converting anyway")
	}

	if sum.Dim() == nef.Dim3 {
		return sum.ToPolySet(params.Convexity)
	}
	return sum.ToPolySet2(params.Convexity)
}
