// Package rendergraph wires the concrete Render Modules
// (engine/renderer/modules) into a SystemManager's Orchestrator as a fixed,
// ordered pipeline of Stages. It is a separate package from engine/systems
// because engine/renderer/modules itself imports engine/systems for its
// ShaderSystem/RendererSystem collaborators — importing modules back from
// systems would be a cycle.
//
// Grounded on spec.md §4.1's mandated static order — shadow passes, depth
// prepass, AO, blur, world, skybox, volumetrics/SSR, post, UI — and on
// engine/renderer/orchestrator/orchestrator_test.go's fakeBackend/
// countingStage pattern for what a Stage closure needs to close over.
// Shadow sampling resolves the depth-prepass buffer against both shadow
// atlases, so it is registered between depth prepass and AO even though the
// spec's prose groups it with "shadow passes".
package rendergraph

import (
	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/modules"
	"github.com/spaghettifunk/luthadel/engine/renderer/orchestrator"
	"github.com/spaghettifunk/luthadel/engine/renderer/views"
	"github.com/spaghettifunk/luthadel/engine/systems"
)

// SceneSource supplies the per-frame scene data the render graph's modules
// read. The application owns mesh/skybox/text lifetime; the render graph
// only reads through this interface once per frame, the same division of
// responsibility RenderModule's own doc comment describes ("per-frame data
// comes via the packet").
type SceneSource interface {
	Meshes(frameNumber uint64) []*metadata.Mesh
	Skybox() *metadata.Skybox
	UITexts() []*metadata.UIText
}

// Modules bundles one instance of each concrete render module kind, already
// constructed against its own shader/pass/view — shader and pass creation
// is asset-loading's job (engine/renderer/graph/config.go,
// engine/assets/loaders/shader.go), not the render graph's. A nil field
// means that stage is skipped: an application that never calls
// light.EnableShadows, for instance, can leave the shadow modules unset.
type Modules struct {
	ShadowDirectional *modules.ShadowmapDirectionalModule
	ShadowPoint       *modules.ShadowmapPointModule
	DepthPrepass      *modules.DepthPrepassModule
	ShadowSampling    *modules.ShadowmapSamplingModule
	AO                *modules.AOModule
	Blur              *modules.BlurModule
	World             *modules.WorldModule
	Skybox            *modules.SkyboxModule
	Volumetrics       *modules.PostProcessingModule
	SSR               *modules.PostProcessingModule
	Tonemap           *modules.PostProcessingModule
	UI                *modules.UIModule

	// Camera is the scene camera driving World/DepthPrepass/ShadowSampling's
	// view and projection — the same camera the caller passed to
	// views.NewWorldView and the depth prepass's view.
	Camera *views.PerspectiveView

	// Views lists every Render View that must recompute on resize; forwarded
	// to the SystemManager via SetResizables so the Orchestrator's settled
	// resize reaches them.
	Views []systems.Resizable

	// FullscreenQuad is the screen-space primitive every full-screen pass
	// (shadow sampling, AO, blur, post-processing) draws; owned by the
	// caller's geometry system rather than any one module, since they all
	// draw the same one.
	FullscreenQuad *metadata.GeometryRenderData

	// NoiseTexture holds AO.NoiseTile()'s fixed samples, uploaded once by the
	// caller at initialization; AO's noise_texture sampler binds it.
	NoiseTexture *metadata.Texture
	AORadius     float32
	AOBias       float32
}

// Configure registers mods' non-nil modules as Orchestrator stages on sm, in
// the static order spec.md §4.1 mandates, and points sm's resize fan-out at
// mods.Views. Callers should call this exactly once per
// SystemManager — a second call would register a second full pipeline.
func Configure(sm *systems.SystemManager, mods *Modules, scene SceneSource) {
	sm.SetResizables(mods.Views...)

	if mods.AORadius == 0 {
		mods.AORadius = 0.5
	}

	lights := sm.LightSystem
	o := sm.Orchestrator

	if mods.ShadowDirectional != nil {
		o.Use(orchestrator.NewStage(mods.ShadowDirectional.Name(), func(frameNumber, _ uint64) error {
			if lights == nil {
				return nil
			}
			packet := mods.ShadowDirectional.BuildPacket(scene.Meshes(frameNumber))
			return mods.ShadowDirectional.Render(packet, lights.Directional(), frameNumber)
		}))
	}

	if mods.ShadowPoint != nil {
		o.Use(orchestrator.NewStage(mods.ShadowPoint.Name(), func(frameNumber, _ uint64) error {
			if lights == nil {
				return nil
			}
			packet := mods.ShadowPoint.BuildPacket(scene.Meshes(frameNumber))
			return mods.ShadowPoint.Render(packet, lights.Points(), frameNumber)
		}))
	}

	if mods.DepthPrepass != nil {
		o.Use(orchestrator.NewStage(mods.DepthPrepass.Name(), func(frameNumber, windowAttachmentIndex uint64) error {
			packet := mods.DepthPrepass.BuildPacket(frameNumber, scene.Meshes(frameNumber))
			targetIndex := mods.DepthPrepass.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
			return mods.DepthPrepass.Render(packet, targetIndex, frameNumber)
		}))
	}

	if mods.ShadowSampling != nil {
		o.Use(orchestrator.NewStage(mods.ShadowSampling.Name(), func(frameNumber, windowAttachmentIndex uint64) error {
			targetIndex := mods.ShadowSampling.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
			input := &modules.SamplingInput{}
			if mods.Camera != nil {
				input.Projection = mods.Camera.Projection
				input.View = mods.Camera.ViewMatrix()
			}
			if lights != nil {
				if dir := lights.Directional(); dir != nil && mods.Camera != nil {
					input.DirectionalLightSpace = dir.LightSpaceMatrix(0, mods.Camera.ViewPosition())
				}
			}
			if mods.DepthPrepass != nil {
				depthTarget := mods.DepthPrepass.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
				input.DepthTexture = mods.DepthPrepass.Binding().AttachmentTexture(depthTarget, 0)
			}
			if mods.ShadowDirectional != nil {
				input.DirectionalShadowMap = mods.ShadowDirectional.Binding().AttachmentTexture(0, 0)
			}
			if mods.ShadowPoint != nil {
				input.PointShadowMap = mods.ShadowPoint.Binding().AttachmentTexture(0, 0)
			}
			return mods.ShadowSampling.Render(mods.FullscreenQuad, input, targetIndex, frameNumber)
		}))
	}

	if mods.AO != nil {
		o.Use(orchestrator.NewStage(mods.AO.Name(), func(frameNumber, windowAttachmentIndex uint64) error {
			targetIndex := mods.AO.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
			var depthTex *metadata.Texture
			if mods.DepthPrepass != nil {
				depthTarget := mods.DepthPrepass.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
				depthTex = mods.DepthPrepass.Binding().AttachmentTexture(depthTarget, 0)
			}
			var projection mathpkg.Mat4
			if mods.Camera != nil {
				projection = mods.Camera.Projection
			}
			return mods.AO.Render(mods.FullscreenQuad, projection, depthTex, mods.NoiseTexture, mods.AORadius, mods.AOBias, targetIndex, frameNumber)
		}))
	}

	if mods.Blur != nil {
		o.Use(orchestrator.NewStage(mods.Blur.Name(), func(frameNumber, windowAttachmentIndex uint64) error {
			targetIndex := mods.Blur.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
			var aoTex *metadata.Texture
			if mods.AO != nil {
				aoTarget := mods.AO.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
				aoTex = mods.AO.Binding().AttachmentTexture(aoTarget, 0)
			}
			if err := mods.Blur.Render(mods.FullscreenQuad, aoTex, true, targetIndex, frameNumber); err != nil {
				return err
			}
			firstPassTex := mods.Blur.Binding().AttachmentTexture(targetIndex, 0)
			return mods.Blur.Render(mods.FullscreenQuad, firstPassTex, false, targetIndex, frameNumber)
		}))
	}

	if mods.World != nil {
		o.Use(orchestrator.NewStage(mods.World.Name(), func(frameNumber, windowAttachmentIndex uint64) error {
			packet := mods.World.BuildPacket(frameNumber, scene.Meshes(frameNumber))
			targetIndex := mods.World.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
			var ssao *modules.SSAOInput
			if mods.Blur != nil || mods.ShadowSampling != nil {
				ssao = &modules.SSAOInput{}
				if mods.Blur != nil {
					blurTarget := mods.Blur.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
					ssao.SSAOTexture = mods.Blur.Binding().AttachmentTexture(blurTarget, 0)
				}
				if mods.ShadowSampling != nil {
					shadowTarget := mods.ShadowSampling.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
					ssao.ShadowMapTexture = mods.ShadowSampling.Binding().AttachmentTexture(shadowTarget, 0)
				}
			}
			return mods.World.Render(packet, ssao, targetIndex, frameNumber)
		}))
	}

	if mods.Skybox != nil {
		o.Use(orchestrator.NewStage(mods.Skybox.Name(), func(frameNumber, windowAttachmentIndex uint64) error {
			skybox := scene.Skybox()
			if skybox == nil {
				return nil
			}
			packet := mods.Skybox.BuildPacket(skybox)
			targetIndex := mods.Skybox.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
			return mods.Skybox.Render(packet, targetIndex, frameNumber)
		}))
	}

	registerPostProcessing := func(m *modules.PostProcessingModule) {
		if m == nil {
			return
		}
		o.Use(orchestrator.NewStage(m.Name(), func(frameNumber, windowAttachmentIndex uint64) error {
			targetIndex := m.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
			inputs := &modules.Inputs{Textures: map[string]*metadata.Texture{}, Scalars: map[string]interface{}{}}
			if mods.World != nil {
				sceneTarget := mods.World.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
				inputs.Textures["scene_texture"] = mods.World.Binding().AttachmentTexture(sceneTarget, 0)
			}
			return m.Render(mods.FullscreenQuad, inputs, targetIndex, frameNumber)
		}))
	}
	registerPostProcessing(mods.Volumetrics)
	registerPostProcessing(mods.SSR)
	registerPostProcessing(mods.Tonemap)

	if mods.UI != nil {
		o.Use(orchestrator.NewStage(mods.UI.Name(), func(frameNumber, windowAttachmentIndex uint64) error {
			packet := mods.UI.BuildPacket(scene.Meshes(frameNumber), scene.UITexts())
			targetIndex := mods.UI.Binding().TargetIndexFor(frameNumber, windowAttachmentIndex)
			return mods.UI.Render(packet, targetIndex, frameNumber)
		}))
	}
}
