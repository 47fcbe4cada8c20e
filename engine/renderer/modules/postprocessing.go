package modules

import (
	"github.com/spaghettifunk/luthadel/engine/core"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// PostProcessingEffect names one full-screen effect variant a
// PostProcessingModule instance runs. Screen-space reflections and
// volumetric lighting are both full-screen passes that differ only in
// which input textures and uniforms they bind, so they share one module
// type parameterized by kind rather than three near-identical structs.
//
// Grounded on original_source/include/renderer/modules/render_module_post_processing.hpp,
// render_module_ssr.hpp and render_module_volumetrics.hpp, collapsed into
// one generalized Go type per the "keep HOW, generalize WHAT" approach.
type PostProcessingEffect int

const (
	PostProcessingEffectTonemap PostProcessingEffect = iota
	PostProcessingEffectSSR
	PostProcessingEffectVolumetrics
)

// PostProcessingModule is a full-screen pass binding an arbitrary set of
// named input textures, used for tonemapping/SSR/volumetric resolves. The
// concrete uniforms needed vary per effect kind, so this module resolves
// uniform indices for every name in uniformNames once at construction and
// exposes them by name for callers driving Render.
type PostProcessingModule struct {
	base
	binding *PassBinding
	effect  PostProcessingEffect
}

// NewPostProcessingModule resolves uniformNames once against shader and
// binds the module to pass.
func NewPostProcessingModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass, effect PostProcessingEffect, uniformNames ...string) *PostProcessingModule {
	pb := NewPassBinding(shader, pass)
	pb.resolveUniforms(shaderSystem, uniformNames...)
	return &PostProcessingModule{
		base:    base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding: pb,
		effect:  effect,
	}
}

func (m *PostProcessingModule) Name() string {
	switch m.effect {
	case PostProcessingEffectSSR:
		return "post_processing_ssr"
	case PostProcessingEffectVolumetrics:
		return "post_processing_volumetrics"
	default:
		return "post_processing_tonemap"
	}
}

func (m *PostProcessingModule) BuildPacket() interface{} { return nil }

// Binding exposes this module's (shader, pass) so the orchestrator wiring
// can resolve target indices and chain this effect's output into the next.
func (m *PostProcessingModule) Binding() *PassBinding { return m.binding }

// Inputs is the set of textures and scalar uniforms a Render call binds,
// looked up by the names resolved at construction. A name missing from
// Uniforms (never resolved, or not present on this shader) is skipped with
// a logged error rather than aborting the whole pass, matching the other
// modules' per-item failure isolation.
type Inputs struct {
	Textures map[string]*metadata.Texture
	Scalars  map[string]interface{}
}

func (m *PostProcessingModule) Render(fullscreenQuad *metadata.GeometryRenderData, inputs *Inputs, targetIndex uint64, frameNumber uint64) error {
	if fullscreenQuad == nil {
		return nil
	}

	onRender := func() error {
		if inputs != nil {
			for name, tex := range inputs.Textures {
				if idx, ok := m.binding.Uniforms[name]; ok {
					if err := m.shaderSystem.SetSamplerByIndex(idx, tex); err != nil {
						core.LogError("%s module: failed to set sampler '%s': %v", m.Name(), name, err)
					}
				}
			}
			for name, value := range inputs.Scalars {
				if idx, ok := m.binding.Uniforms[name]; ok {
					if err := m.shaderSystem.SetUniformByIndex(idx, value); err != nil {
						core.LogError("%s module: failed to set uniform '%s': %v", m.Name(), name, err)
					}
				}
			}
		}
		m.rendererSystem.DrawGeometry(fullscreenQuad)
		return nil
	}

	return runPass(&m.base, m.binding, targetIndex, frameNumber, nil, nil, onRender)
}
