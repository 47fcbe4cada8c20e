package views

import (
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"

	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
)

// UIView is the screen-space viewpoint a UI render module draws from: an
// orthographic projection over the surface extent and an identity view
// matrix, since UI geometry is already specified in screen space.
//
// Grounded on original_source/include/renderer/views/render_view_ui.hpp and
// engine/systems/renderview.go's uiOnBuildPacket.
type UIView struct {
	Name     string
	NearClip float32
	FarClip  float32
	Width    uint32
	Height   uint32

	Projection mathpkg.Mat4
	ViewMatrix mathpkg.Mat4
}

// NewUIView constructs a UI view with an identity view matrix; only the
// projection changes as the surface resizes.
func NewUIView() *UIView {
	return &UIView{
		Name:       "ui",
		NearClip:   -100.0,
		FarClip:    100.0,
		ViewMatrix: mathpkg.NewMat4Identity(),
	}
}

// OnResize recomputes the orthographic projection for the new surface
// extent; a no-op if the extent hasn't actually changed.
func (v *UIView) OnResize(width, height uint32) {
	if width == 0 || height == 0 || (width == v.Width && height == v.Height) {
		return
	}
	v.Width, v.Height = width, height
	v.Projection = mathpkg.NewMat4Orthographic(0, float32(width), float32(height), 0, v.NearClip, v.FarClip)
}

// BuildPacket assembles the RenderViewPacket a UI render module consumes
// from a flat list of screen-space meshes plus any standalone text draws.
func (v *UIView) BuildPacket(meshes []*metadata.Mesh, texts []*metadata.UIText) *metadata.RenderViewPacket {
	geometries := make([]*metadata.GeometryRenderData, 0, len(meshes))
	for _, m := range meshes {
		model := m.Transform.GetWorld()
		for _, g := range m.Geometries {
			geometries = append(geometries, &metadata.GeometryRenderData{Model: model, Geometry: g, UniqueID: m.UniqueID})
		}
	}
	return &metadata.RenderViewPacket{
		ViewMatrix:       v.ViewMatrix,
		ProjectionMatrix: v.Projection,
		GeometryCount:    uint32(len(geometries)),
		Geometries:       geometries,
		ExtendedData: &metadata.UIPacketData{
			MeshData: &metadata.MeshPacketData{MeshCount: uint32(len(meshes)), Meshes: meshes},
			Texts:    texts,
		},
	}
}
