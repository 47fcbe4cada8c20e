package views

import (
	"testing"

	"github.com/spaghettifunk/luthadel/engine/renderer/components"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"

	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
)

func TestPerspectiveViewResizeMatchesDefaultProjection(t *testing.T) {
	cam := components.NewCamera()
	v := NewPerspectiveView("world", cam)

	v.OnResize(1600, 900)

	want := mathpkg.NewMat4Perspective(mathpkg.DegToRad(45.0), float32(1600)/float32(900), 0.1, 1000.0)
	if v.Projection != want {
		t.Fatalf("perspective projection after resize = %v, want %v", v.Projection.Data, want.Data)
	}
}

func TestPerspectiveViewResizeNoopOnSameExtent(t *testing.T) {
	cam := components.NewCamera()
	v := NewPerspectiveView("world", cam)
	v.OnResize(800, 600)
	first := v.Projection

	v.OnResize(800, 600)
	if v.Projection != first {
		t.Fatalf("resize with unchanged extent must not recompute the projection")
	}
}

func TestPerspectiveViewResizeIgnoresZeroExtent(t *testing.T) {
	cam := components.NewCamera()
	v := NewPerspectiveView("world", cam)
	v.OnResize(0, 0)
	if v.Width != 0 || v.Height != 0 {
		t.Fatalf("a zero-sized resize must be ignored")
	}
}

// Calling GetVisibleRenderData twice for the same frame number must return
// the memoized slice rather than rebuilding it from the mesh list.
func TestPerspectiveViewMemoizesVisibleRenderDataPerFrame(t *testing.T) {
	cam := components.NewCamera()
	v := NewPerspectiveView("world", cam)

	meshes := []*metadata.Mesh{
		{
			UniqueID:   1,
			Transform:  mathpkg.TransformCreate(),
			Geometries: []*metadata.Geometry{{ID: 1}},
		},
	}

	first := v.GetVisibleRenderData(7, meshes)
	if len(first) != 1 {
		t.Fatalf("expected one flattened draw item, got %d", len(first))
	}

	// Mutate the mesh list after the first call; a cache hit for the same
	// frame number must ignore the mutation and return the same slice.
	meshes = append(meshes, &metadata.Mesh{
		UniqueID:   2,
		Transform:  mathpkg.TransformCreate(),
		Geometries: []*metadata.Geometry{{ID: 2}},
	})
	second := v.GetVisibleRenderData(7, meshes)
	if len(second) != 1 {
		t.Fatalf("expected the memoized (stale) one-item result, got %d items", len(second))
	}

	third := v.GetVisibleRenderData(8, meshes)
	if len(third) != 2 {
		t.Fatalf("expected a rebuilt two-item result for a new frame number, got %d", len(third))
	}
}
