package systems

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spaghettifunk/luthadel/engine/assets"
	"github.com/spaghettifunk/luthadel/engine/platform"
	"github.com/spaghettifunk/luthadel/engine/renderer/lighting"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/orchestrator"
)

// maxRegisteredPointLights bounds the Light Registry every SystemManager
// constructs, matching lighting.System's fixed-capacity design.
const maxRegisteredPointLights = 1024

type SystemManager struct {
	CameraSystem     *CameraSystem
	GeometrySystem   *GeometrySystem
	JobSystem        *JobSystem
	MaterialSystem   *MaterialSystem
	MeshLoaderSystem *MeshLoaderSystem
	RenderViewSystem *RenderViewSystem
	ShaderSystem     *ShaderSystem
	TextureSystem    *TextureSystem
	ResourceSystem   *ResourceSystem
	RendererSystem   *RendererSystem

	// LightSystem is the Light Registry (engine/renderer/lighting) the
	// shadow and world render modules read each frame.
	LightSystem *lighting.System

	// Orchestrator drives the per-frame render-module pipeline (see
	// engine/renderer/orchestrator and engine/renderer/modules). Call
	// engine/rendergraph.Configure once with the application's constructed
	// modules to register them as stages, then call SystemManager.RenderFrame
	// once per tick instead of the legacy RenderViewSystem-driven DrawFrame.
	Orchestrator *orchestrator.Orchestrator

	resizables []Resizable
}

// Resizable is implemented by every Render View (views.PerspectiveView,
// views.AOView, views.BlurView, ...). Defined here rather than alongside
// the render modules that construct them: engine/renderer/modules already
// imports this package for its ShaderSystem/RendererSystem collaborators, so
// a views/modules type here would be an import cycle. A structural
// interface needs no such reference.
type Resizable interface {
	OnResize(width, height uint32)
}

// SetResizables registers the Render Views a settled resize should reach;
// called once by whatever wires the render graph together
// (engine/rendergraph.Configure), since SystemManager itself has no
// reference to concrete view types.
func (sm *SystemManager) SetResizables(views ...Resizable) {
	sm.resizables = views
}

// handleResize is the Orchestrator's OnResizeFunc: it forwards a settled
// resize to every registered Render View so their tracked
// projections/extents recompute before the next RenderFrame.
func (sm *SystemManager) handleResize(width, height uint32) {
	for _, r := range sm.resizables {
		if r != nil {
			r.OnResize(width, height)
		}
	}
}

var (
	MaxNumberOfWorkers int = runtime.NumCPU()
)

func NewSystemManager(appName string, width, height uint32, platform *platform.Platform) (*SystemManager, error) {
	am, err := assets.NewAssetManager()
	if err != nil {
		return nil, err
	}

	renderer, err := NewRendererSystem(appName, width, height, platform, am)
	if err != nil {
		return nil, err
	}

	js, err := NewJobSystem(MaxNumberOfWorkers, 25)
	if err != nil {
		return nil, err
	}

	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 61,
	})
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	rs, err := NewResourceSystem(&ResourceSystemConfig{
		MaxLoaderCount: 32,
		AssetBasePath:  fmt.Sprintf("%s/assets", wd),
	})
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 65536,
	}, js, rs, renderer)
	if err != nil {
		return nil, err
	}
	ssys, err := NewShaderSystem(&ShaderSystemConfig{
		MaxShaderCount:      1024,
		MaxUniformCount:     uint8(128),
		MaxGlobalTextures:   uint8(31),
		MaxInstanceTextures: uint8(31),
	}, ts, renderer)
	if err != nil {
		return nil, err
	}
	ms, err := NewMaterialSystem(&MaterialSystemConfig{
		MaxMaterialCount: 4096,
	}, ssys, ts, rs, renderer)
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		MaxGeometryCount: 4096,
	}, ms, renderer)
	if err != nil {
		return nil, err
	}
	mls, err := NewMeshLoaderSystem(gs, rs)
	if err != nil {
		return nil, err
	}
	rvs, err := NewRenderViewSystem(RenderViewSystemConfig{
		MaxViewCount: 251,
	}, renderer)
	if err != nil {
		return nil, err
	}
	sm := &SystemManager{
		RendererSystem:   renderer,
		CameraSystem:     cs,
		JobSystem:        js,
		TextureSystem:    ts,
		ShaderSystem:     ssys,
		MaterialSystem:   ms,
		GeometrySystem:   gs,
		MeshLoaderSystem: mls,
		ResourceSystem:   rs,
		RenderViewSystem: rvs,
		LightSystem:      lighting.NewSystem(maxRegisteredPointLights),
	}
	sm.Orchestrator = orchestrator.New(renderer, sm.handleResize)
	return sm, nil
}

func (sm *SystemManager) Initialize() error {
	if err := sm.RendererSystem.Initialize(sm.ShaderSystem, sm.RenderViewSystem); err != nil {
		return err
	}
	return nil
}

func (sm *SystemManager) DrawFrame(renderPacket *metadata.RenderPacket) error {
	if err := sm.RendererSystem.DrawFrame(renderPacket, sm.RenderViewSystem); err != nil {
		return err
	}
	return nil
}

// OnResize queues a resize with the Orchestrator's debounce logic
// (resizeSettleFrames) rather than forwarding to RendererSystem directly —
// the settled resize reaches the backend and every registered Render View
// through Orchestrator.RenderFrame's own resize handling.
func (sm *SystemManager) OnResize(width, height uint16) error {
	sm.Orchestrator.RequestResize(uint32(width), uint32(height))
	return nil
}

// RenderFrame runs one iteration of the Frame Orchestrator's per-frame
// contract against every module registered via engine/rendergraph.Configure.
func (sm *SystemManager) RenderFrame(deltaTime float64) error {
	return sm.Orchestrator.RenderFrame(deltaTime)
}

func (sm *SystemManager) RenderViewCreate(config *metadata.RenderViewConfig) error {
	if !sm.RenderViewSystem.Create(config) {
		err := fmt.Errorf("failed to create the renderview with name `%s`", config.Name)
		return err
	}
	return nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.RenderViewSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MeshLoaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.GeometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MaterialSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ResourceSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
