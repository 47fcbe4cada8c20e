package modules

import (
	"github.com/spaghettifunk/luthadel/engine/core"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/views"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// UIModule draws screen-space UI geometry and bitmap/system text over
// whatever the world/skybox modules have already written to the window
// target.
//
// Grounded on engine/systems/renderview.go's uiOnRenderView.
type UIModule struct {
	base
	binding *PassBinding
	view    *views.UIView

	uUI metadata.UIShaderUniformLocations
}

func NewUIModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass, view *views.UIView) *UIModule {
	pb := NewPassBinding(shader, pass)
	m := &UIModule{
		base:    base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding: pb,
		view:    view,
	}
	m.uUI = metadata.UIShaderUniformLocations{
		Projection:     shaderSystem.GetUniformIndex(shader, "projection"),
		View:           shaderSystem.GetUniformIndex(shader, "view"),
		DiffuseColour:  shaderSystem.GetUniformIndex(shader, "diffuse_colour"),
		DiffuseTexture: shaderSystem.GetUniformIndex(shader, "diffuse_texture"),
		Model:          shaderSystem.GetUniformIndex(shader, "model"),
	}
	return m
}

func (m *UIModule) Name() string { return "ui" }

// Binding exposes this module's (shader, pass) so the orchestrator wiring
// can resolve target indices.
func (m *UIModule) Binding() *PassBinding { return m.binding }

func (m *UIModule) BuildPacket(meshes []*metadata.Mesh, texts []*metadata.UIText) *metadata.RenderViewPacket {
	return m.view.BuildPacket(meshes, texts)
}

func (m *UIModule) Render(packetAny interface{}, targetIndex uint64, frameNumber uint64) error {
	packet, ok := packetAny.(*metadata.RenderViewPacket)
	if !ok || packet == nil {
		return nil
	}

	applyGlobals := func() error {
		if err := m.shaderSystem.SetUniformByIndex(m.uUI.Projection, packet.ProjectionMatrix); err != nil {
			return err
		}
		return m.shaderSystem.SetUniformByIndex(m.uUI.View, packet.ViewMatrix)
	}

	onRender := func() error {
		for _, item := range packet.Geometries {
			if item.Geometry == nil || item.Geometry.Material == nil {
				continue
			}
			mat := item.Geometry.Material
			needsUpdate := mat.RenderFrameNumber != uint32(frameNumber)

			if !m.shaderSystem.BindInstance(mat.InstanceID) {
				core.LogError("ui module: failed to bind instance for material '%s'", mat.Name)
				continue
			}
			if err := m.shaderSystem.SetUniformByIndex(m.uUI.DiffuseColour, mat.DiffuseColour); err != nil {
				core.LogError("ui module: %v", err)
			}
			if err := m.shaderSystem.SetSamplerByIndex(m.uUI.DiffuseTexture, mat.DiffuseMap.Texture); err != nil {
				core.LogError("ui module: %v", err)
			}
			if err := m.shaderSystem.ApplyInstance(needsUpdate); err != nil {
				core.LogError("ui module: apply_instance failed for material '%s': %v", mat.Name, err)
			}
			mat.RenderFrameNumber = uint32(frameNumber)

			if err := m.shaderSystem.SetUniformByIndex(m.uUI.Model, item.Model); err != nil {
				core.LogError("ui module: %v", err)
				continue
			}
			m.rendererSystem.DrawGeometry(item)
		}

		if data, ok := packet.ExtendedData.(*metadata.UIPacketData); ok {
			for _, text := range data.Texts {
				if text == nil {
					continue
				}
				needsUpdate := text.RenderFrameNumber != frameNumber
				if !m.shaderSystem.BindInstance(text.InstanceID) {
					core.LogError("ui module: failed to bind instance for text '%s'", text.Text)
					continue
				}
				if err := m.shaderSystem.ApplyInstance(needsUpdate); err != nil {
					core.LogError("ui module: apply_instance failed for text draw: %v", err)
				}
				text.RenderFrameNumber = frameNumber
			}
		}
		return nil
	}

	return runPass(&m.base, m.binding, targetIndex, frameNumber, nil, applyGlobals, onRender)
}
