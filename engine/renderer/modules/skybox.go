package modules

import (
	"github.com/spaghettifunk/luthadel/engine/core"
	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/views"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// SkyboxModule draws a single cubemap behind the world geometry. It has no
// per-geometry material loop: a skybox is one draw call bound to its own
// instance.
//
// Grounded on engine/systems/renderview.go's skyboxOnRenderView.
type SkyboxModule struct {
	base
	binding *PassBinding
	view    *views.SkyboxView

	uProjection uint16
	uView       uint16
	uCubemap    uint16
}

func NewSkyboxModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass, view *views.SkyboxView) *SkyboxModule {
	return &SkyboxModule{
		base:        base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding:     NewPassBinding(shader, pass),
		view:        view,
		uProjection: shaderSystem.GetUniformIndex(shader, "projection"),
		uView:       shaderSystem.GetUniformIndex(shader, "view"),
		uCubemap:    shaderSystem.GetUniformIndex(shader, "cube_texture"),
	}
}

func (m *SkyboxModule) Name() string { return "skybox" }

// Binding exposes this module's (shader, pass) so the orchestrator wiring
// can resolve target indices.
func (m *SkyboxModule) Binding() *PassBinding { return m.binding }

func (m *SkyboxModule) BuildPacket(skybox *metadata.Skybox) *metadata.RenderViewPacket {
	return m.view.BuildPacket(skybox)
}

func (m *SkyboxModule) Render(packetAny interface{}, targetIndex uint64, frameNumber uint64) error {
	packet, ok := packetAny.(*metadata.RenderViewPacket)
	if !ok || packet == nil {
		return nil
	}
	data, ok := packet.ExtendedData.(*metadata.SkyboxPacketData)
	if !ok || data.Skybox == nil {
		return nil
	}
	skybox := data.Skybox

	applyGlobals := func() error {
		// Strip translation: the skybox must never appear to move with the
		// camera.
		view := packet.ViewMatrix
		view.Data[12], view.Data[13], view.Data[14] = 0, 0, 0
		if err := m.shaderSystem.SetUniformByIndex(m.uProjection, packet.ProjectionMatrix); err != nil {
			return err
		}
		return m.shaderSystem.SetUniformByIndex(m.uView, view)
	}

	onRender := func() error {
		needsUpdate := skybox.RenderFrameNumber != frameNumber
		if !m.shaderSystem.BindInstance(skybox.InstanceID) {
			core.LogError("skybox module: failed to bind instance")
			return nil
		}
		var cubemap *metadata.Texture
		if skybox.Cubemap != nil {
			cubemap = skybox.Cubemap.Texture
		}
		if err := m.shaderSystem.SetSamplerByIndex(m.uCubemap, cubemap); err != nil {
			core.LogError("skybox module: %v", err)
		}
		if err := m.shaderSystem.ApplyInstance(needsUpdate); err != nil {
			core.LogError("skybox module: apply_instance failed: %v", err)
		}
		skybox.RenderFrameNumber = frameNumber

		if skybox.Geometry != nil {
			m.rendererSystem.DrawGeometry(&metadata.GeometryRenderData{
				Model:    mathpkg.NewMat4Identity(),
				Geometry: skybox.Geometry,
			})
		}
		return nil
	}

	return runPass(&m.base, m.binding, targetIndex, frameNumber, nil, applyGlobals, onRender)
}
