// Package modules implements the Render Module component of the render
// graph: the stages that bind a shader, stage global/instance/local
// uniforms, and issue draw calls for one or more render passes.
//
// Grounded on engine/systems/renderview.go's per-kind render dispatch
// (worldOnRenderView/uiOnRenderView/skyboxOnRenderView), generalized into
// standalone types implementing a single shared per-pass contract, and on
// original_source/include/renderer/modules/*.hpp for the module kinds the
// teacher never implemented (depth prepass, shadow mapping, SSAO, blur,
// post-processing).
package modules

import (
	"fmt"

	"github.com/spaghettifunk/luthadel/engine/core"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// RenderModule is a renderable stage: it binds a shader, sets
// global/instance/local uniforms, and issues draw calls for one or more
// render passes. Each concrete module's BuildPacket/Render pair takes the
// scene data specific to its view (world meshes, UI text, a skybox
// resource, ...), so the shared contract here is deliberately narrow —
// just what the Frame Orchestrator needs to log and order modules. The
// orchestrator calls each module's own typed BuildPacket/Render directly;
// it is configured with a fixed, compile-time pipeline of concrete module
// types rather than a dynamically dispatched list.
type RenderModule interface {
	// Name identifies the module for ordering diagnostics and logging.
	Name() string
}

// PassBinding is the (shader, pass) configuration a module renders
// through, plus the uniform-name-to-index sub-map resolved once at module
// init. Lookup by string must not occur per-frame; draw-path code reads
// Uniforms[name] once during setup and keeps the integer index.
type PassBinding struct {
	Shader   *metadata.Shader
	Pass     *metadata.RenderPass
	Uniforms map[string]uint16
}

// NewPassBinding resolves shader and pass handles into a PassBinding.
// Grounded on the open question resolution in DESIGN.md: the default
// instance name for a pass binding equals the shader's own name, fixing
// the teacher's RenderModule::PassConfig(shader, pass) self-delegation
// (original_source delegated to itself with (shader, shader, pass)).
func NewPassBinding(shader *metadata.Shader, pass *metadata.RenderPass) *PassBinding {
	return &PassBinding{
		Shader:   shader,
		Pass:     pass,
		Uniforms: make(map[string]uint16),
	}
}

// TargetIndexFor resolves the pass target this binding's shader draws into
// for (frameNumber, windowAttachmentIndex), per targetIndexFor's invariant.
// Exported so the Frame Orchestrator's stage-registration wiring (outside
// this package) can resolve a module's target and read back its output
// attachments without duplicating the window-vs-offscreen distinction.
func (pb *PassBinding) TargetIndexFor(frameNumber, windowAttachmentIndex uint64) uint64 {
	return targetIndexFor(pb.Pass, frameNumber, windowAttachmentIndex, defaultFramesInFlight)
}

// AttachmentTexture returns the texture bound to attachmentIndex of the
// pass target at targetIndex, or nil if either index is out of range —
// callers wiring one module's output into another's input treat a nil
// texture the same as "not yet configured" rather than panicking.
func (pb *PassBinding) AttachmentTexture(targetIndex uint64, attachmentIndex int) *metadata.Texture {
	if int(targetIndex) >= len(pb.Pass.Targets) {
		return nil
	}
	target := pb.Pass.Targets[targetIndex]
	if attachmentIndex >= len(target.Attachments) {
		return nil
	}
	return target.Attachments[attachmentIndex].Texture
}

// setupUniformIndex resolves a uniform name to its index exactly once,
// storing it under pb.Uniforms[name] for later index-only lookups.
func (pb *PassBinding) setupUniformIndex(shaderSystem *systems.ShaderSystem, name string) {
	pb.Uniforms[name] = shaderSystem.GetUniformIndex(pb.Shader, name)
}

// resolveUniforms resolves every name in names against pb.Shader, once.
func (pb *PassBinding) resolveUniforms(shaderSystem *systems.ShaderSystem, names ...string) {
	for _, n := range names {
		pb.setupUniformIndex(shaderSystem, n)
	}
}

// base holds the collaborators every RenderModule needs: the shader and
// renderer systems it drives passes through. Embedded by every concrete
// module rather than duplicated.
type base struct {
	shaderSystem   *systems.ShaderSystem
	rendererSystem *systems.RendererSystem
}

// defaultFramesInFlight is the engine-wide frame-in-flight count
// (vulkan.Swapchain's MaxFramesInFlight default), used by offscreen
// modules that multiplex several logical targets (shadow cascades, cube
// faces) across frames-in-flight slots within a single pass's Targets
// slice.
const defaultFramesInFlight = 2

// targetIndexFor returns the swapchain image index for window-bound
// passes (RenderTargetCount equal to the swapchain image count) or the
// frame-in-flight slot for offscreen passes, per RenderPass's invariant
// that target count equals one or the other.
func targetIndexFor(pass *metadata.RenderPass, frameNumber, windowAttachmentIndex uint64, framesInFlight uint64) uint64 {
	if uint64(len(pass.Targets)) > framesInFlight {
		return windowAttachmentIndex
	}
	return frameNumber % framesInFlight
}

// runPass executes the shared six-step per-pass contract (§4.3):
//  1. transition any owned render-target maps for this frame number
//  2. begin the pass
//  3. use the shader
//  4. if frameNumber != shader's recorded rendered frame, apply globals
//     once and record the frame number (global-uniform idempotence)
//  5. invoke onRender, the module's own per-geometry/per-instance work
//  6. end the pass
//
// A ShaderApplyFailed-class error from applyGlobals or onRender is logged
// and the current draw item is skipped rather than propagated; only a
// failure to begin/use/end the pass itself is returned, matching §7's
// "draw-time failures are isolated per geometry" policy.
func runPass(
	b *base,
	pb *PassBinding,
	targetIndex uint64,
	frameNumber uint64,
	transitionMaps []*metadata.TextureMap,
	applyGlobals func() error,
	onRender func() error,
) error {
	for _, m := range transitionMaps {
		if m != nil && m.Texture != nil {
			m.Texture.TransitionRenderTarget(frameNumber)
		}
	}

	if int(targetIndex) >= len(pb.Pass.Targets) {
		return fmt.Errorf("render module: pass '%s' has no target at index %d", pb.Pass.Name, targetIndex)
	}
	target := pb.Pass.Targets[targetIndex]

	if err := pb.Pass.Begin(targetIndex); err != nil {
		return err
	}
	if err := b.rendererSystem.RenderPassBegin(pb.Pass, target); err != nil {
		_ = pb.Pass.End()
		return err
	}

	if err := b.shaderSystem.UseShader(pb.Shader.Name); err != nil {
		_ = b.rendererSystem.RenderPassEnd(pb.Pass)
		_ = pb.Pass.End()
		return err
	}

	if frameNumber != pb.Shader.RenderFrameNumber {
		if applyGlobals != nil {
			if err := applyGlobals(); err != nil {
				core.LogError("render module: apply_globals failed for shader '%s': %v", pb.Shader.Name, err)
			}
		}
		if err := b.shaderSystem.ApplyGlobal(); err != nil {
			core.LogError("render module: shader.apply_global failed for shader '%s': %v", pb.Shader.Name, err)
		}
		pb.Shader.RenderFrameNumber = frameNumber
	}

	if onRender != nil {
		if err := onRender(); err != nil {
			core.LogError("render module: on_render failed for pass '%s': %v", pb.Pass.Name, err)
		}
	}

	if err := b.rendererSystem.RenderPassEnd(pb.Pass); err != nil {
		_ = pb.Pass.End()
		return err
	}
	return pb.Pass.End()
}
