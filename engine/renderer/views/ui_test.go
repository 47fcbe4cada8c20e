package views

import (
	"testing"

	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
)

// S4: orthographic UI view after a resize to 1600x900 must equal
// ortho(0, 1600, 900, 0, -100, 100).
func TestUIViewResizeMatchesOrthographicProjection(t *testing.T) {
	v := NewUIView()
	v.OnResize(1600, 900)

	want := mathpkg.NewMat4Orthographic(0, 1600, 900, 0, -100, 100)
	if v.Projection != want {
		t.Fatalf("UI projection after resize = %v, want %v", v.Projection.Data, want.Data)
	}
	if v.ViewMatrix != mathpkg.NewMat4Identity() {
		t.Fatalf("UI view matrix must stay identity")
	}
}

func TestUIViewResizeNoopOnSameExtent(t *testing.T) {
	v := NewUIView()
	v.OnResize(800, 600)
	first := v.Projection
	v.OnResize(800, 600)
	if v.Projection != first {
		t.Fatalf("resize with unchanged extent must not recompute the projection")
	}
}
