package views

import (
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"

	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
)

// DirectionalShadowView is the viewpoint a directional shadow render module
// draws from: an orthographic projection sized to the shadow cascade's
// extent. Unlike PerspectiveView/WorldView it has no camera of its own —
// its view matrix comes from the Light Registry's directional light (see
// lighting.DirectionalLight.LightSpaceMatrix), which already combines
// projection and view for a given cascade.
//
// Grounded on original_source/include/renderer/modules/render_module_shadowmap_directional.hpp.
type DirectionalShadowView struct {
	Extent   float32
	NearClip float32
	FarClip  float32
	Width    uint32
	Height   uint32
}

func NewDirectionalShadowView(extent, nearClip, farClip float32) *DirectionalShadowView {
	return &DirectionalShadowView{Extent: extent, NearClip: nearClip, FarClip: farClip}
}

// OnResize records the shadowmap target's extent; the projection itself is
// owned by the Light Registry (it depends on shadow-specific near/far and
// extent settings, not the window surface), so this only tracks the value
// used for visibility-list memoization keys.
func (v *DirectionalShadowView) OnResize(width, height uint32) {
	v.Width, v.Height = width, height
}

// VisibleRenderData flattens every mesh (no opaque/transparent split —
// shadow casters are drawn depth-only regardless of material
// transparency), matching the original's shadow pass behavior.
func VisibleRenderData(meshes []*metadata.Mesh) []*metadata.GeometryRenderData {
	out := make([]*metadata.GeometryRenderData, 0, len(meshes))
	for _, m := range meshes {
		model := m.Transform.GetWorld()
		for _, g := range m.Geometries {
			out = append(out, &metadata.GeometryRenderData{Model: model, Geometry: g, UniqueID: m.UniqueID})
		}
	}
	return out
}

var _ = mathpkg.Vec3{}
