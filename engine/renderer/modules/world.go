package modules

import (
	"github.com/spaghettifunk/luthadel/engine/core"
	"github.com/spaghettifunk/luthadel/engine/renderer/lighting"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/views"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// WorldModule draws the opaque-then-transparent scene geometry for a
// WorldView, applying material diffuse/specular/normal maps per instance
// and the Light Registry's directional/point light data per frame.
//
// Grounded on engine/systems/renderview.go's worldOnRenderView and
// original_source/include/renderer/modules/render_module_world.hpp.
type WorldModule struct {
	base
	binding *PassBinding
	view    *views.WorldView
	lights  *lighting.System

	uMaterial metadata.MaterialShaderUniformLocations

	// Light Registry and post-pass-sourced global uniforms, resolved once
	// here rather than added to MaterialShaderUniformLocations, which
	// models the material shader's per-instance surface contract, not the
	// world shader's lighting globals.
	uDirLight         uint16
	uPointLights      uint16
	uNumPointLights   uint16
	uSSAOTexture      uint16
	uShadowMapTexture uint16

	renderMode uint32
}

// NewWorldModule resolves the world shader's uniform indices once and
// binds the module to its pass and view.
func NewWorldModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass, view *views.WorldView, lights *lighting.System) *WorldModule {
	pb := NewPassBinding(shader, pass)
	m := &WorldModule{
		base:    base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding: pb,
		view:    view,
		lights:  lights,
	}
	m.uMaterial = metadata.MaterialShaderUniformLocations{
		Projection:      shaderSystem.GetUniformIndex(shader, "projection"),
		View:            shaderSystem.GetUniformIndex(shader, "view"),
		AmbientColour:   shaderSystem.GetUniformIndex(shader, "ambient_colour"),
		ViewPosition:    shaderSystem.GetUniformIndex(shader, "view_position"),
		Shininess:       shaderSystem.GetUniformIndex(shader, "shininess"),
		DiffuseColour:   shaderSystem.GetUniformIndex(shader, "diffuse_colour"),
		DiffuseTexture:  shaderSystem.GetUniformIndex(shader, "diffuse_texture"),
		SpecularTexture: shaderSystem.GetUniformIndex(shader, "specular_texture"),
		NormalTexture:   shaderSystem.GetUniformIndex(shader, "normal_texture"),
		Model:           shaderSystem.GetUniformIndex(shader, "model"),
		RenderMode:      shaderSystem.GetUniformIndex(shader, "render_mode"),
	}
	m.uDirLight = shaderSystem.GetUniformIndex(shader, "dir_light")
	m.uPointLights = shaderSystem.GetUniformIndex(shader, "point_lights")
	m.uNumPointLights = shaderSystem.GetUniformIndex(shader, "num_point_lights")
	m.uSSAOTexture = shaderSystem.GetUniformIndex(shader, "ssao_texture")
	m.uShadowMapTexture = shaderSystem.GetUniformIndex(shader, "shadowmap_sampled_texture")
	return m
}

// SetRenderMode selects the debug view mode (default/lighting/normals)
// applied as the world shader's render_mode global on the next Render
// call.
func (m *WorldModule) SetRenderMode(mode metadata.RendererDebugViewMode) {
	m.renderMode = uint32(mode)
}

// SSAOInput bundles the upstream modules' resolved textures this module
// samples as globals: SSAO's blurred occlusion factor and the shadow
// sampling pass's resolved shadow factor.
type SSAOInput struct {
	SSAOTexture      *metadata.Texture
	ShadowMapTexture *metadata.Texture
}

func (m *WorldModule) Name() string { return "world" }

// Binding exposes this module's (shader, pass) so the orchestrator wiring
// can resolve target indices and read back the lit scene attachment.
func (m *WorldModule) Binding() *PassBinding { return m.binding }

// BuildPacket delegates straight to the WorldView; the packet is the unit
// of data this module's Render consumes.
func (m *WorldModule) BuildPacket(frameNumber uint64, meshes []*metadata.Mesh) *metadata.RenderViewPacket {
	return m.view.BuildPacket(frameNumber, meshes)
}

// Render runs the world pass: global uniforms (projection/view/ambient/
// view position/render mode/lights/SSAO & shadow textures) applied once
// per frame by index only, then one instance bind + local draw per
// geometry, opaque items first, transparent items back-to-front.
func (m *WorldModule) Render(packetAny interface{}, ssao *SSAOInput, targetIndex uint64, frameNumber uint64) error {
	packet, ok := packetAny.(*metadata.RenderViewPacket)
	if !ok || packet == nil {
		return nil
	}

	applyGlobals := func() error {
		if err := m.shaderSystem.SetUniformByIndex(m.uMaterial.Projection, packet.ProjectionMatrix); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uMaterial.View, packet.ViewMatrix); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uMaterial.AmbientColour, packet.AmbientColour); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uMaterial.ViewPosition, packet.ViewPosition); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uMaterial.RenderMode, m.renderMode); err != nil {
			return err
		}
		if m.lights != nil {
			if dirData := m.lights.DirectionalData(); dirData != nil {
				if err := m.shaderSystem.SetUniformByIndex(m.uDirLight, *dirData); err != nil {
					core.LogError("world module: failed to set directional light uniform: %v", err)
				}
			}
			points := m.lights.PointData()
			if err := m.shaderSystem.SetUniformByIndex(m.uPointLights, points); err != nil {
				core.LogError("world module: failed to set point light uniform: %v", err)
			}
			if err := m.shaderSystem.SetUniformByIndex(m.uNumPointLights, uint32(len(points))); err != nil {
				core.LogError("world module: failed to set point light count uniform: %v", err)
			}
		}
		if ssao != nil {
			if err := m.shaderSystem.SetSamplerByIndex(m.uSSAOTexture, ssao.SSAOTexture); err != nil {
				core.LogError("world module: failed to set ssao_texture sampler: %v", err)
			}
			if err := m.shaderSystem.SetSamplerByIndex(m.uShadowMapTexture, ssao.ShadowMapTexture); err != nil {
				core.LogError("world module: failed to set shadowmap_sampled_texture sampler: %v", err)
			}
		}
		return nil
	}

	onRender := func() error {
		for _, item := range packet.Geometries {
			if item.Geometry == nil || item.Geometry.Material == nil {
				continue
			}
			mat := item.Geometry.Material
			needsUpdate := mat.RenderFrameNumber != uint32(frameNumber)

			if !m.shaderSystem.BindInstance(mat.InstanceID) {
				core.LogError("world module: failed to bind instance for material '%s'", mat.Name)
				continue
			}
			if err := m.shaderSystem.SetUniformByIndex(m.uMaterial.DiffuseColour, mat.DiffuseColour); err != nil {
				core.LogError("world module: %v", err)
			}
			if err := m.shaderSystem.SetUniformByIndex(m.uMaterial.Shininess, mat.Shininess); err != nil {
				core.LogError("world module: %v", err)
			}
			if err := m.shaderSystem.SetSamplerByIndex(m.uMaterial.DiffuseTexture, mat.DiffuseMap.Texture); err != nil {
				core.LogError("world module: %v", err)
			}
			if err := m.shaderSystem.SetSamplerByIndex(m.uMaterial.SpecularTexture, mat.SpecularMap.Texture); err != nil {
				core.LogError("world module: %v", err)
			}
			if err := m.shaderSystem.SetSamplerByIndex(m.uMaterial.NormalTexture, mat.NormalMap.Texture); err != nil {
				core.LogError("world module: %v", err)
			}
			if err := m.shaderSystem.ApplyInstance(needsUpdate); err != nil {
				core.LogError("world module: apply_instance failed for material '%s': %v", mat.Name, err)
			}
			mat.RenderFrameNumber = uint32(frameNumber)

			if err := m.shaderSystem.SetUniformByIndex(m.uMaterial.Model, item.Model); err != nil {
				core.LogError("world module: %v", err)
				continue
			}
			m.rendererSystem.DrawGeometry(item)
		}
		return nil
	}

	return runPass(&m.base, m.binding, targetIndex, frameNumber, nil, applyGlobals, onRender)
}
