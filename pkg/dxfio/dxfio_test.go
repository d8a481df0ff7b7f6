package dxfio

import (
	"testing"

	"github.com/chazu/polyeval/pkg/scenenode"
)

func TestCircleSegmentsDelegatesToFragments(t *testing.T) {
	fp := scenenode.FragmentParams{Fn: 16}
	if got, want := circleSegments(5, fp), scenenode.Fragments(5, fp); got != want {
		t.Fatalf("circleSegments = %d, want %d (must match scenenode.Fragments exactly)", got, want)
	}
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	_, err := Load(Params{Filename: "/nonexistent/does-not-exist.dxf"})
	if err == nil {
		t.Fatalf("expected an error for a missing DXF file")
	}
}
