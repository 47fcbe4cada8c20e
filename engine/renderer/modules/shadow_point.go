package modules

import (
	"github.com/spaghettifunk/luthadel/engine/core"
	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
	"github.com/spaghettifunk/luthadel/engine/renderer/lighting"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/views"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// Point-light cube shadow atlas layout: every light's six cube faces are
// packed row-major into a single 2D texture, tileSize pixels square,
// facesPerRow tiles per row. Face f of light l takes tile l*6+f, so each
// light's six faces occupy consecutive tiles; with facesPerRow == 8 a
// light's faces wrap onto the next row when they pass the row's end.
const (
	pointShadowTileSize  = 1024
	pointShadowFacesPerRow = 8
)

// atlasViewport returns the scoped viewport/scissor rect for lightIndex's
// face within the shared atlas texture, per the row-major packing above.
func atlasViewport(lightIndex, face int) mathpkg.Vec4 {
	tile := lightIndex*6 + face
	col := tile % pointShadowFacesPerRow
	row := tile / pointShadowFacesPerRow
	return mathpkg.NewVec4Create(
		float32(col*pointShadowTileSize),
		float32(row*pointShadowTileSize),
		pointShadowTileSize,
		pointShadowTileSize,
	)
}

// ShadowmapPointModule renders the six cube faces of a point light's
// shadow atlas. It only re-renders a light whose RecalculateShadowmap flag
// is set (cleared once this module has drawn all six faces for it) —
// static point lights don't pay a per-frame shadow cost.
//
// Built fresh, not ported from the original: DESIGN.md's resolved open
// question notes the teacher never had a working point-light shadow path,
// so this is grounded directly on lighting.PointLight.LightSpaceMatrices
// and original_source/include/renderer/modules/render_module_shadowmap_point.hpp's
// six-face iteration.
type ShadowmapPointModule struct {
	base
	binding *PassBinding

	uLightSpace uint16
	uModel      uint16
	uLightPos   uint16
	uFarPlane   uint16
}

func NewShadowmapPointModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass) *ShadowmapPointModule {
	return &ShadowmapPointModule{
		base:        base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding:     NewPassBinding(shader, pass),
		uLightSpace: shaderSystem.GetUniformIndex(shader, "light_space"),
		uModel:      shaderSystem.GetUniformIndex(shader, "model"),
		uLightPos:   shaderSystem.GetUniformIndex(shader, "light_position"),
		uFarPlane:   shaderSystem.GetUniformIndex(shader, "far_plane"),
	}
}

func (m *ShadowmapPointModule) Name() string { return "shadowmap_point" }

func (m *ShadowmapPointModule) BuildPacket(meshes []*metadata.Mesh) []*metadata.GeometryRenderData {
	return views.VisibleRenderData(meshes)
}

// Render redraws every face of every point light that requested a
// recalculation this frame, clearing the flag once all six faces have
// been drawn.
func (m *ShadowmapPointModule) Render(packetAny interface{}, lights []*lighting.PointLight, frameNumber uint64) error {
	geometries, ok := packetAny.([]*metadata.GeometryRenderData)
	if !ok {
		return nil
	}

	for lightIndex, light := range lights {
		if light == nil || !light.ShadowsEnabled || !light.RecalculateShadowmap {
			continue
		}
		matrices := light.LightSpaceMatrices()
		for face := 0; face < 6; face++ {
			lightSpace := matrices[face]
			lightPos := light.Data.Position
			rect := atlasViewport(lightIndex, face)

			applyGlobals := func() error {
				m.binding.Pass.SetViewport(rect)
				m.binding.Pass.SetScissor(rect)
				if err := m.shaderSystem.SetUniformByIndex(m.uLightSpace, lightSpace); err != nil {
					return err
				}
				if err := m.shaderSystem.SetUniformByIndex(m.uLightPos, lightPos); err != nil {
					return err
				}
				return m.shaderSystem.SetUniformByIndex(m.uFarPlane, float32(100.0))
			}
			onRender := func() error {
				for _, item := range geometries {
					if item.Geometry == nil {
						continue
					}
					if err := m.shaderSystem.SetUniformByIndex(m.uModel, item.Model); err != nil {
						core.LogError("shadowmap point module: %v", err)
						continue
					}
					m.rendererSystem.DrawGeometry(item)
				}
				return nil
			}

			// Every face's light-space matrix and atlas viewport differ,
			// so force apply_globals to run for every bracket rather than
			// once per engine frame (see shadow_directional.go).
			m.binding.Shader.RenderFrameNumber = ^uint64(0)

			err := runPass(&m.base, m.binding, uint64(face), frameNumber, nil, applyGlobals, onRender)
			m.binding.Pass.ResetViewport()
			m.binding.Pass.ResetScissor()
			if err != nil {
				return err
			}
		}
		light.RecalculateShadowmap = false
	}
	return nil
}
