package modules

import (
	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/views"
	"github.com/spaghettifunk/luthadel/engine/systems"
	"golang.org/x/exp/rand"
)

const (
	aoKernelSize = 20
	// aoNoiseTileExtent must match views.aoNoiseTileExtent — the noise
	// texture this module binds is aoNoiseTileExtent x aoNoiseTileExtent
	// texels, tiled across the screen by the AOView's noise_scale uniform.
	aoNoiseTileExtent = 4
)

// fixedNoiseTile is the AO module's tangent-space rotation-vector tile:
// aoNoiseTileExtent*aoNoiseTileExtent fixed (not per-run-random) 3-channel
// samples with Z held at zero, since the noise only rotates the kernel
// around the surface normal. Baked in at build time rather than generated
// from a runtime RNG so the noise texture's contents are reproducible
// across runs and don't depend on platform.GetAbsoluteTime() having been
// read yet.
var fixedNoiseTile = [aoNoiseTileExtent * aoNoiseTileExtent]mathpkg.Vec3{
	mathpkg.NewVec3(-0.936, 0.348, 0), mathpkg.NewVec3(0.171, -0.816, 0),
	mathpkg.NewVec3(0.573, 0.694, 0), mathpkg.NewVec3(-0.292, -0.436, 0),
	mathpkg.NewVec3(0.816, -0.171, 0), mathpkg.NewVec3(-0.694, 0.573, 0),
	mathpkg.NewVec3(0.436, -0.292, 0), mathpkg.NewVec3(-0.348, -0.936, 0),
	mathpkg.NewVec3(0.917, 0.398, 0), mathpkg.NewVec3(-0.573, -0.694, 0),
	mathpkg.NewVec3(0.292, 0.436, 0), mathpkg.NewVec3(-0.816, 0.171, 0),
	mathpkg.NewVec3(0.694, -0.573, 0), mathpkg.NewVec3(-0.436, 0.292, 0),
	mathpkg.NewVec3(0.348, 0.936, 0), mathpkg.NewVec3(-0.917, -0.398, 0),
}

// AOModule is a full-screen pass computing screen-space ambient occlusion
// from the depth-prepass buffer: a hemisphere sample kernel perturbed by a
// small tiling noise texture, biased towards the surface normal.
//
// Grounded on original_source/include/renderer/modules/render_module_ao.hpp;
// not present in the teacher. The noise tile is fixed (see fixedNoiseTile);
// only the hemisphere kernel is generated at construction, with
// golang.org/x/exp/rand (already the engine's random source, see
// engine/math/functions.go) matching Learn OpenGL's classic SSAO
// kernel-generation recipe the original followed.
type AOModule struct {
	base
	binding *PassBinding
	view    *views.AOView

	kernel []mathpkg.Vec3
	noise  []mathpkg.Vec3

	uProjection uint16
	uKernel     uint16
	uDepthMap   uint16
	uNoiseMap   uint16
	uNoiseScale uint16
	uRadius     uint16
	uBias       uint16
}

// NewAOModule builds the module and its sample kernel. seed lets tests pin
// the kernel deterministically; production callers pass a value derived
// from platform.GetAbsoluteTime() the way engine/math does.
func NewAOModule(shaderSystem *systems.ShaderSystem, rendererSystem *systems.RendererSystem, shader *metadata.Shader, pass *metadata.RenderPass, view *views.AOView, seed uint64) *AOModule {
	m := &AOModule{
		base:        base{shaderSystem: shaderSystem, rendererSystem: rendererSystem},
		binding:     NewPassBinding(shader, pass),
		view:        view,
		uProjection: shaderSystem.GetUniformIndex(shader, "projection"),
		uKernel:     shaderSystem.GetUniformIndex(shader, "samples"),
		uDepthMap:   shaderSystem.GetUniformIndex(shader, "depth_texture"),
		uNoiseMap:   shaderSystem.GetUniformIndex(shader, "noise_texture"),
		uNoiseScale: shaderSystem.GetUniformIndex(shader, "noise_scale"),
		uRadius:     shaderSystem.GetUniformIndex(shader, "radius"),
		uBias:       shaderSystem.GetUniformIndex(shader, "bias"),
	}
	m.kernel = generateHemisphereKernel(seed, aoKernelSize)
	m.noise = fixedNoiseTile[:]
	return m
}

// generateHemisphereKernel produces count unit-hemisphere sample vectors
// (positive Z, tangent space) scaled so samples cluster closer to the
// origin — the same accelerating interpolation Learn OpenGL's SSAO
// tutorial uses to concentrate detail near the surface.
func generateHemisphereKernel(seed uint64, count int) []mathpkg.Vec3 {
	src := rand.New(rand.NewSource(seed))
	out := make([]mathpkg.Vec3, count)
	for i := 0; i < count; i++ {
		sample := mathpkg.NewVec3(
			float32(src.Float64())*2-1,
			float32(src.Float64())*2-1,
			float32(src.Float64()),
		).Normalize()
		sample = sample.MulScalar(float32(src.Float64()))

		scale := float32(i) / float32(count)
		scale = 0.1 + 0.9*scale*scale
		out[i] = sample.MulScalar(scale)
	}
	return out
}

func (m *AOModule) Name() string { return "ao" }

// Binding exposes this module's (shader, pass) so the orchestrator wiring
// can resolve target indices and read back the raw occlusion attachment.
func (m *AOModule) Binding() *PassBinding { return m.binding }

func (m *AOModule) BuildPacket() interface{} { return nil }

// NoiseTile returns the fixed tangent-space rotation-vector tile bound to
// noise_texture, exposed so the caller owning the noise texture resource
// can upload it once at initialization.
func (m *AOModule) NoiseTile() []mathpkg.Vec3 { return m.noise }

// Render draws the full-screen AO resolve pass. fullscreenQuad, depthMap
// and noiseMap are owned by the post-processing infrastructure that wires
// this module's pass to the depth-prepass output.
func (m *AOModule) Render(fullscreenQuad *metadata.GeometryRenderData, projection mathpkg.Mat4, depthMap, noiseMap *metadata.Texture, radius, bias float32, targetIndex uint64, frameNumber uint64) error {
	if fullscreenQuad == nil {
		return nil
	}

	applyGlobals := func() error {
		if err := m.shaderSystem.SetUniformByIndex(m.uProjection, projection); err != nil {
			return err
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uKernel, m.kernel); err != nil {
			return err
		}
		if err := m.shaderSystem.SetSamplerByIndex(m.uDepthMap, depthMap); err != nil {
			return err
		}
		if err := m.shaderSystem.SetSamplerByIndex(m.uNoiseMap, noiseMap); err != nil {
			return err
		}
		if m.view != nil {
			if err := m.shaderSystem.SetUniformByIndex(m.uNoiseScale, m.view.NoiseScale); err != nil {
				return err
			}
		}
		if err := m.shaderSystem.SetUniformByIndex(m.uRadius, radius); err != nil {
			return err
		}
		return m.shaderSystem.SetUniformByIndex(m.uBias, bias)
	}
	onRender := func() error {
		m.rendererSystem.DrawGeometry(fullscreenQuad)
		return nil
	}

	return runPass(&m.base, m.binding, targetIndex, frameNumber, nil, applyGlobals, onRender)
}
