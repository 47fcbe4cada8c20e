package views

import (
	"testing"

	"github.com/spaghettifunk/luthadel/engine/renderer/components"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"

	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
)

func transparentMaterial() *metadata.Material {
	return &metadata.Material{
		DiffuseMap: metadata.TextureMap{
			Texture: &metadata.Texture{Flags: metadata.TextureFlagBits(metadata.TextureFlagHasTransparency)},
		},
	}
}

func opaqueMaterial() *metadata.Material {
	return &metadata.Material{
		DiffuseMap: metadata.TextureMap{Texture: &metadata.Texture{}},
	}
}

func meshAt(id uint32, x float32, mat *metadata.Material) *metadata.Mesh {
	tr := mathpkg.TransformFromPosition(mathpkg.NewVec3(x, 0, 0))
	return &metadata.Mesh{
		UniqueID:  id,
		Transform: tr,
		Geometries: []*metadata.Geometry{
			{ID: id, Material: mat},
		},
	}
}

// S3: two transparent cubes at x=-1 and x=+3, camera at x=0. The farther
// one (x=+3) must draw first.
func TestWorldViewTransparentSortIsFarthestFirst(t *testing.T) {
	cam := components.NewCamera()
	cam.SetPosition(mathpkg.NewVec3Zero())
	w := NewWorldView(cam)

	meshes := []*metadata.Mesh{
		meshAt(1, -1, transparentMaterial()),
		meshAt(2, 3, transparentMaterial()),
	}

	_, transparent := w.VisibleSplit(1, meshes)
	if len(transparent) != 2 {
		t.Fatalf("expected both transparent meshes in the transparent list, got %d", len(transparent))
	}
	if transparent[0].UniqueID != 2 || transparent[1].UniqueID != 1 {
		t.Fatalf("draw order = [%d, %d], want far-first [2, 1]", transparent[0].UniqueID, transparent[1].UniqueID)
	}
}

func TestWorldViewPartitionsOpaqueAndTransparent(t *testing.T) {
	cam := components.NewCamera()
	w := NewWorldView(cam)

	meshes := []*metadata.Mesh{
		meshAt(1, 0, opaqueMaterial()),
		meshAt(2, 1, transparentMaterial()),
	}

	opaque, transparent := w.VisibleSplit(1, meshes)
	if len(opaque) != 1 || opaque[0].UniqueID != 1 {
		t.Fatalf("expected mesh 1 in the opaque list, got %+v", opaque)
	}
	if len(transparent) != 1 || transparent[0].UniqueID != 2 {
		t.Fatalf("expected mesh 2 in the transparent list, got %+v", transparent)
	}
}

func TestWorldViewVisibleSplitMemoizesPerFrame(t *testing.T) {
	cam := components.NewCamera()
	w := NewWorldView(cam)

	meshes := []*metadata.Mesh{meshAt(1, 0, opaqueMaterial())}
	opaque1, _ := w.VisibleSplit(5, meshes)

	// A second call for the same frame, with a different mesh list, must
	// return the cached split rather than rebuilding it.
	opaque2, _ := w.VisibleSplit(5, nil)
	if len(opaque2) != len(opaque1) {
		t.Fatalf("expected the memoized split to be reused for the same frame number")
	}

	opaque3, _ := w.VisibleSplit(6, nil)
	if len(opaque3) != 0 {
		t.Fatalf("a new frame number must rebuild from the (now empty) mesh list")
	}
}
