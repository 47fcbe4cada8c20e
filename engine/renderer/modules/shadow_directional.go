package modules

import (
	"github.com/spaghettifunk/luthadel/engine/core"
	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
	"github.com/spaghettifunk/luthadel/engine/renderer/lighting"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/views"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// ShadowmapDirectionalModule renders one depth-only cascade per target in
// its pass, one cascade per directional-light shadow slice. Each cascade
// is its own begin/end pass bracket with its own light-space
// view-projection matrix, so it does not go through the single-target
// runPass helper directly — it calls it once per cascade target index.
//
// Not present in the teacher (render.go never wires a shadow pass); built
// fresh against original_source/include/renderer/modules/render_module_shadowmap_directional.hpp
// and lighting.DirectionalLight.LightSpaceMatrix.
type ShadowmapDirectionalModule struct {
	base
	binding *PassBinding
	view    *views.DirectionalShadowView
	camera  *views.PerspectiveView

	uLightSpace uint16
	uModel      uint16
}

func NewShadowmapDirectionalModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass, view *views.DirectionalShadowView, camera *views.PerspectiveView) *ShadowmapDirectionalModule {
	return &ShadowmapDirectionalModule{
		base:        base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding:     NewPassBinding(shader, pass),
		view:        view,
		camera:      camera,
		uLightSpace: shaderSystem.GetUniformIndex(shader, "light_space"),
		uModel:      shaderSystem.GetUniformIndex(shader, "model"),
	}
}

func (m *ShadowmapDirectionalModule) Name() string { return "shadowmap_directional" }

func (m *ShadowmapDirectionalModule) BuildPacket(meshes []*metadata.Mesh) []*metadata.GeometryRenderData {
	return views.VisibleRenderData(meshes)
}

// Render draws every cascade of light's shadow map, one render-pass
// bracket per cascade target. light may be nil (no directional light in
// the scene), in which case the pass is skipped entirely — there is
// nothing to transition or bind.
func (m *ShadowmapDirectionalModule) Render(packetAny interface{}, light *lighting.DirectionalLight, frameNumber uint64) error {
	if light == nil || !light.ShadowsEnabled {
		return nil
	}
	geometries, ok := packetAny.([]*metadata.GeometryRenderData)
	if !ok {
		return nil
	}

	extent := m.view.Width
	if extent == 0 {
		extent = uint32(m.view.Extent)
	}
	rect := mathpkg.NewVec4Create(0, 0, float32(extent), float32(extent))

	cascades := light.NumShadowCascades()
	for cascade := uint32(0); cascade < cascades; cascade++ {
		lightSpace := light.LightSpaceMatrix(cascade, m.camera.Camera.Position)

		// Each cascade owns defaultFramesInFlight consecutive targets
		// within the pass, so the slot actually drawn to also rotates
		// with the frame-in-flight index rather than staying pinned to
		// cascade*1.
		targetIndex := uint64(cascade)*defaultFramesInFlight + frameNumber%defaultFramesInFlight

		applyGlobals := func() error {
			m.binding.Pass.SetViewport(rect)
			m.binding.Pass.SetScissor(rect)
			return m.shaderSystem.SetUniformByIndex(m.uLightSpace, lightSpace)
		}
		onRender := func() error {
			for _, item := range geometries {
				if item.Geometry == nil {
					continue
				}
				if err := m.shaderSystem.SetUniformByIndex(m.uModel, item.Model); err != nil {
					core.LogError("shadowmap directional module: %v", err)
					continue
				}
				m.rendererSystem.DrawGeometry(item)
			}
			return nil
		}

		// Each cascade's light-space matrix is itself a "global" that
		// must be reapplied on every bracket, not just once per engine
		// frame -- force the per-frame apply_globals dedupe in runPass
		// to run again for this cascade's bracket.
		m.binding.Shader.RenderFrameNumber = ^uint64(0)

		err := runPass(&m.base, m.binding, targetIndex, frameNumber, nil, applyGlobals, onRender)
		m.binding.Pass.ResetViewport()
		m.binding.Pass.ResetScissor()
		if err != nil {
			return err
		}
	}
	return nil
}
