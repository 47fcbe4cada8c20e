package modules

import (
	"github.com/spaghettifunk/luthadel/engine/core"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/views"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// DepthPrepassModule renders opaque geometry depth-only, before the world
// module's lit pass, so later passes (SSAO, the lit pass itself) can
// reject occluded fragments early. Not present in the teacher; built fresh
// per the depth/smoothness pipeline original_source's
// render_module_depth_prepass.hpp describes.
type DepthPrepassModule struct {
	base
	binding *PassBinding
	view    *views.WorldView

	uProjection uint16
	uView       uint16
	uModel      uint16
	uSmoothness uint16

	// instances maps a material's ID to the instance resources this
	// module's own shader acquired for it. The depth prepass shader is a
	// distinct shader from the material (world) shader, so it needs its
	// own instance allocation per material rather than reusing
	// Material.InstanceID.
	instances map[uint32]uint32

	// instanceFrames tracks the frame number this module last applied
	// instance uniforms for a material. Material.RenderFrameNumber can't
	// be reused here: it's stamped by the world module for its own
	// (different) shader instance, and sharing it would make this
	// module's apply_instance wrongly skip a dirty update.
	instanceFrames map[uint32]uint32
}

func NewDepthPrepassModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass, view *views.WorldView) *DepthPrepassModule {
	return &DepthPrepassModule{
		base:           base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding:        NewPassBinding(shader, pass),
		view:           view,
		uProjection:    shaderSystem.GetUniformIndex(shader, "projection"),
		uView:          shaderSystem.GetUniformIndex(shader, "view"),
		uModel:         shaderSystem.GetUniformIndex(shader, "model"),
		uSmoothness:    shaderSystem.GetUniformIndex(shader, "smoothness"),
		instances:      make(map[uint32]uint32),
		instanceFrames: make(map[uint32]uint32),
	}
}

// instanceFor returns the g-pass instance id for mat, lazily acquiring
// shader instance resources the first time this material is seen.
func (m *DepthPrepassModule) instanceFor(mat *metadata.Material) (uint32, bool) {
	if id, ok := m.instances[mat.ID]; ok {
		return id, true
	}
	id, err := m.rendererSystem.ShaderAcquireInstanceResources(m.binding.Shader, nil)
	if err != nil {
		core.LogError("depth prepass module: failed to acquire instance resources for material '%s': %v", mat.Name, err)
		return 0, false
	}
	m.instances[mat.ID] = id
	return id, true
}

func (m *DepthPrepassModule) Name() string { return "depth_prepass" }

// Binding exposes this module's (shader, pass) so the orchestrator wiring
// can resolve target indices and read back the depth attachment.
func (m *DepthPrepassModule) Binding() *PassBinding { return m.binding }

// BuildPacket reuses the world view's opaque-only split; transparent
// geometry never participates in a depth prepass.
func (m *DepthPrepassModule) BuildPacket(frameNumber uint64, meshes []*metadata.Mesh) []*metadata.GeometryRenderData {
	opaque, _ := m.view.VisibleSplit(frameNumber, meshes)
	return opaque
}

func (m *DepthPrepassModule) Render(packetAny interface{}, targetIndex uint64, frameNumber uint64) error {
	opaque, ok := packetAny.([]*metadata.GeometryRenderData)
	if !ok {
		return nil
	}

	applyGlobals := func() error {
		if err := m.shaderSystem.SetUniformByIndex(m.uProjection, m.view.Projection); err != nil {
			return err
		}
		return m.shaderSystem.SetUniformByIndex(m.uView, m.view.ViewMatrix())
	}

	onRender := func() error {
		for _, item := range opaque {
			if item.Geometry == nil || item.Geometry.Material == nil {
				continue
			}
			mat := item.Geometry.Material

			instanceID, ok := m.instanceFor(mat)
			if !ok {
				continue
			}
			needsUpdate := m.instanceFrames[mat.ID] != uint32(frameNumber)
			if !m.shaderSystem.BindInstance(instanceID) {
				core.LogError("depth prepass module: failed to bind instance for material '%s'", mat.Name)
				continue
			}
			if err := m.shaderSystem.SetUniformByIndex(m.uSmoothness, mat.Smoothness); err != nil {
				core.LogError("depth prepass module: %v", err)
			}
			if err := m.shaderSystem.ApplyInstance(needsUpdate); err != nil {
				core.LogError("depth prepass module: apply_instance failed for material '%s': %v", mat.Name, err)
			}
			m.instanceFrames[mat.ID] = uint32(frameNumber)

			if err := m.shaderSystem.SetUniformByIndex(m.uModel, item.Model); err != nil {
				core.LogError("depth prepass module: %v", err)
				continue
			}
			m.rendererSystem.DrawGeometry(item)
		}
		return nil
	}

	return runPass(&m.base, m.binding, targetIndex, frameNumber, nil, applyGlobals, onRender)
}
