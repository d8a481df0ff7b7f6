// Package scenenode defines the minimal node parameter surface this
// evaluation core consumes. Scene-graph traversal and its node types are
// an external collaborator: it filters out background children and
// evaluates each remaining child down to a *nef.Solid before an
// evaluator in pkg/evalcsg ever sees it, so this package only names the
// per-node parameters each evaluator reads, plus get_fragments_from_r,
// the facet-count heuristic treated here as a pure function of a radius
// and the fn/fs/fa tunables.
package scenenode

import "math"

// FragmentParams bundles OpenSCAD's classic $fn/$fs/$fa facet-count
// tunables, carried on projection/extrusion nodes.
type FragmentParams struct {
	Fn float64 // if > 0, used directly as the fragment count
	Fs float64 // minimum fragment size
	Fa float64 // minimum fragment angle, degrees
}

// Fragments implements get_fragments_from_r, the facet-count heuristic
// derived from a radius and the fn/fs/fa tunables. This mirrors the
// well-known OpenSCAD formula: an explicit $fn overrides everything;
// otherwise the fragment count is the larger of the angle-limited and
// size-limited counts, clamped to a sane minimum.
func Fragments(r float64, p FragmentParams) int {
	if r < grOne {
		return 3
	}
	if p.Fn >= 3 {
		return int(p.Fn)
	}
	fa := p.Fa
	if fa <= 0 {
		fa = 12
	}
	fs := p.Fs
	if fs <= 0 {
		fs = 2
	}
	byAngle := int(math.Ceil(360.0 / fa))
	bySize := int(math.Ceil(2 * math.Pi * r / fs))
	n := byAngle
	if bySize > n {
		n = bySize
	}
	if n < 5 {
		n = 5
	}
	return n
}

const grOne = 1e-9

// ProjectionParams carries the parameters a projection node exposes.
type ProjectionParams struct {
	Convexity int
	CutMode   bool
}

// LinearExtrudeParams carries the parameters a linear-extrude node
// exposes.
type LinearExtrudeParams struct {
	Convexity int
	Height    float64
	Center    bool
	Twist     float64
	Slices    int
	HasTwist  bool
	Filename  string
	Layername string
	OriginX   float64
	OriginY   float64
	Scale     float64
	Fragments FragmentParams
}

// RotateExtrudeParams carries the parameters a rotate-extrude node
// exposes.
type RotateExtrudeParams struct {
	Convexity int
	Filename  string
	Layername string
	OriginX   float64
	OriginY   float64
	Scale     float64
	Fragments FragmentParams
}

// RenderParams carries the parameters a render/advanced-CSG node exposes.
type RenderParams struct {
	Convexity int
}
