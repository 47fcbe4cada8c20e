package modules

import (
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/views"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// BlurModule is a two-pass (horizontal then vertical) separable Gaussian
// blur over a single-channel input texture, used to smooth the AO
// module's raw occlusion output before it reaches the lighting pass. It
// runs at half the surface's resolution (views.BlurView tracks
// max(1, extent/2) on resize), the standard AO-smoothing cost tradeoff.
//
// Grounded on original_source/include/renderer/modules/render_module_blur.hpp;
// not present in the teacher.
type BlurModule struct {
	base
	binding *PassBinding
	view    *views.BlurView

	uInputTexture uint16
	uHorizontal   uint16
	uTexelSize    uint16
}

func NewBlurModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass, view *views.BlurView) *BlurModule {
	return &BlurModule{
		base:          base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding:       NewPassBinding(shader, pass),
		view:          view,
		uInputTexture: shaderSystem.GetUniformIndex(shader, "input_texture"),
		uHorizontal:   shaderSystem.GetUniformIndex(shader, "horizontal"),
		uTexelSize:    shaderSystem.GetUniformIndex(shader, "texel_size"),
	}
}

func (m *BlurModule) Name() string { return "blur" }

// Binding exposes this module's (shader, pass) so the orchestrator wiring
// can resolve target indices and chain its own output into its second pass.
func (m *BlurModule) Binding() *PassBinding { return m.binding }

func (m *BlurModule) BuildPacket() interface{} { return nil }

// Render draws one blur direction's full-screen pass. Callers run this
// module twice per frame — once with horizontal=true sampling the AO
// module's output, once with horizontal=false sampling the first pass's
// result — chaining the two render targets themselves. texel_size is
// derived from the tracked half-resolution BlurView rather than passed in,
// so it always matches the target extent the last resize settled on.
func (m *BlurModule) Render(fullscreenQuad *metadata.GeometryRenderData, input *metadata.Texture, horizontal bool, targetIndex uint64, frameNumber uint64) error {
	if fullscreenQuad == nil {
		return nil
	}

	// horizontal/input_texture/texel_size vary between this module's two
	// invocations within the same frame, so they're set in onRender (which
	// always runs) rather than applyGlobals (which the shared per-pass
	// contract only runs once per shader per frame).
	onRender := func() error {
		if err := m.shaderSystem.SetSamplerByIndex(m.uInputTexture, input); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uHorizontal, horizontal); err != nil {
			return err
		}
		texelWidth, texelHeight := float32(0), float32(0)
		if m.view != nil {
			texelWidth, texelHeight = m.view.TexelSize()
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uTexelSize, [2]float32{texelWidth, texelHeight}); err != nil {
			return err
		}
		m.rendererSystem.DrawGeometry(fullscreenQuad)
		return nil
	}

	return runPass(&m.base, m.binding, targetIndex, frameNumber, nil, nil, onRender)
}
