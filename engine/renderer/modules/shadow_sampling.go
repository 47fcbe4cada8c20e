package modules

import (
	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// ShadowmapSamplingModule is a full-screen pass that samples the
// directional and point shadow atlases produced by
// ShadowmapDirectionalModule/ShadowmapPointModule against the scene's
// depth buffer, writing a single-channel shadow factor texture the world
// module's lighting math can sample cheaply instead of re-sampling every
// cascade/face per lit fragment.
//
// Grounded on original_source/include/renderer/modules/render_module_shadowmap_sampling.hpp;
// not present in the teacher.
type ShadowmapSamplingModule struct {
	base
	binding *PassBinding

	uProjection            uint16
	uView                  uint16
	uProjectionInv         uint16
	uViewInv               uint16
	uDirectionalLightSpace uint16
	uDepthTexture          uint16
	uDirectionalShadowMap  uint16
	uPointShadowMap        uint16
}

func NewShadowmapSamplingModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass) *ShadowmapSamplingModule {
	return &ShadowmapSamplingModule{
		base:                   base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding:                NewPassBinding(shader, pass),
		uProjection:            shaderSystem.GetUniformIndex(shader, "projection"),
		uView:                  shaderSystem.GetUniformIndex(shader, "view"),
		uProjectionInv:         shaderSystem.GetUniformIndex(shader, "projection_inv"),
		uViewInv:               shaderSystem.GetUniformIndex(shader, "view_inv"),
		uDirectionalLightSpace: shaderSystem.GetUniformIndex(shader, "directional_light_space"),
		uDepthTexture:          shaderSystem.GetUniformIndex(shader, "depth_texture"),
		uDirectionalShadowMap:  shaderSystem.GetUniformIndex(shader, "directional_shadow_map"),
		uPointShadowMap:        shaderSystem.GetUniformIndex(shader, "point_shadow_map"),
	}
}

func (m *ShadowmapSamplingModule) Name() string { return "shadowmap_sampling" }

// Binding exposes this module's (shader, pass) so the orchestrator wiring
// can resolve target indices and read back the resolved shadow factor.
func (m *ShadowmapSamplingModule) Binding() *PassBinding { return m.binding }

// SamplingInput bundles the shadow-producing module outputs this full-screen
// pass reads: the camera matrices needed to reconstruct world position from
// depth, the scene depth buffer, and the shadow atlases to project it
// against.
type SamplingInput struct {
	Projection            mathpkg.Mat4
	View                  mathpkg.Mat4
	DirectionalLightSpace mathpkg.Mat4
	DepthTexture          *metadata.Texture
	DirectionalShadowMap  *metadata.Texture
	PointShadowMap        *metadata.Texture
}

func (m *ShadowmapSamplingModule) BuildPacket() interface{} { return nil }

// Render draws the full-screen triangle/quad that resolves shadow
// coverage. geometry is the screen-space quad/triangle the caller supplies
// (owned by the post-processing infrastructure, since every full-screen
// pass in this pipeline draws the same primitive).
func (m *ShadowmapSamplingModule) Render(fullscreenQuad *metadata.GeometryRenderData, input *SamplingInput, targetIndex uint64, frameNumber uint64) error {
	if fullscreenQuad == nil || input == nil {
		return nil
	}

	applyGlobals := func() error {
		if err := m.shaderSystem.SetUniformByIndex(m.uProjection, input.Projection); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uView, input.View); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uProjectionInv, input.Projection.Inverse()); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uViewInv, input.View.Inverse()); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uDirectionalLightSpace, input.DirectionalLightSpace); err != nil {
			return err
		}
		if err := m.shaderSystem.SetSamplerByIndex(m.uDepthTexture, input.DepthTexture); err != nil {
			return err
		}
		if err := m.shaderSystem.SetSamplerByIndex(m.uDirectionalShadowMap, input.DirectionalShadowMap); err != nil {
			return err
		}
		return m.shaderSystem.SetSamplerByIndex(m.uPointShadowMap, input.PointShadowMap)
	}
	onRender := func() error {
		m.rendererSystem.DrawGeometry(fullscreenQuad)
		return nil
	}

	return runPass(&m.base, m.binding, targetIndex, frameNumber, nil, applyGlobals, onRender)
}
