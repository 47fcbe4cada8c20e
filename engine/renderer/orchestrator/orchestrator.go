// Package orchestrator implements the Frame Orchestrator: the per-frame
// loop that drives a fixed, ordered pipeline of render modules against the
// Device Backend.
//
// Grounded on engine/systems/renderer.go's RendererSystem.DrawFrame, which
// already implements the begin/query-attachment/per-view/end shape this
// package generalizes into a standalone, RenderViewSystem-independent
// driver so newly built render modules (depth prepass, shadow mapping,
// AO, blur, post-processing — none of which the legacy RenderViewSystem
// knows about) can be wired into the same per-frame contract.
package orchestrator

import (
	"errors"

	"github.com/spaghettifunk/luthadel/engine/core"
)

// FrameBackend is the slice of *systems.RendererSystem the orchestrator
// depends on, narrowed to an interface so the per-frame contract can be
// driven and tested without a real Vulkan device. RendererSystem's
// BeginFrame/EndFrame/CurrentWindowAttachmentIndex/IncrementFrameNumber/
// Resized wrapper methods satisfy this directly.
type FrameBackend interface {
	IncrementFrameNumber() uint64
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	CurrentWindowAttachmentIndex() uint64
	Resized(width, height uint32) error
}

// resizeSettleFrames is the number of frames the orchestrator waits after
// a resize event before forwarding it to the backend, matching
// RendererSystem.DrawFrame's own debounce constant: resizes tend to arrive
// in a burst as the user drags a window edge, and recreating swapchain
// resources on every one of them would be wasteful and could race the
// backend's own in-flight frames.
const resizeSettleFrames = 30

// Stage is one render module's per-frame work, already bound to its
// shader/pass/view. frameNumber is the orchestrator's monotonically
// increasing frame counter; windowAttachmentIndex is the swapchain image
// acquired for this frame, valid only for window-attached passes.
type Stage interface {
	Name() string
	Run(frameNumber, windowAttachmentIndex uint64) error
}

// funcStage adapts a plain closure to Stage, the common case: nearly
// every concrete render module exposes a BuildPacket+Render pair the
// caller wires together with a one-line closure rather than a dedicated
// Stage type.
type funcStage struct {
	name string
	fn   func(frameNumber, windowAttachmentIndex uint64) error
}

// NewStage wraps fn as a named Stage.
func NewStage(name string, fn func(frameNumber, windowAttachmentIndex uint64) error) Stage {
	return &funcStage{name: name, fn: fn}
}

func (s *funcStage) Name() string { return s.name }
func (s *funcStage) Run(frameNumber, windowAttachmentIndex uint64) error {
	return s.fn(frameNumber, windowAttachmentIndex)
}

// OnResizeFunc is called once a pending resize has settled, with the
// final framebuffer extent; registered views/modules use it to recompute
// their projections.
type OnResizeFunc func(width, height uint32)

// Orchestrator runs a fixed, ordered pipeline of Stages once per frame.
type Orchestrator struct {
	renderer FrameBackend
	stages   []Stage
	onResize OnResizeFunc

	resizePending     bool
	pendingWidth      uint32
	pendingHeight     uint32
	framesSinceResize uint8
}

// New constructs an Orchestrator driving renderer. Stages are added with
// Use, in the order they should run each frame.
func New(renderer FrameBackend, onResize OnResizeFunc) *Orchestrator {
	return &Orchestrator{renderer: renderer, onResize: onResize}
}

// Use appends stage to the pipeline, to run after every previously added
// stage.
func (o *Orchestrator) Use(stage Stage) {
	o.stages = append(o.stages, stage)
}

// RequestResize records a pending resize; it takes effect once
// resizeSettleFrames frames have passed without a further resize,
// matching the legacy DrawFrame path's debounce so a dragged window edge
// doesn't thrash swapchain recreation every frame.
func (o *Orchestrator) RequestResize(width, height uint32) {
	o.pendingWidth, o.pendingHeight = width, height
	o.resizePending = true
	o.framesSinceResize = 0
}

// RenderFrame runs the per-frame contract (§4.1 of the render graph
// spec): increment the frame number, begin the backend frame, query the
// swap image index, run every registered stage in order, then end the
// frame. A core.ErrSwapchainBooting from BeginFrame is treated as "skip
// this frame, try again next time" rather than a fatal error — the
// swapchain is still coming up (e.g. right after a resize), not broken.
func (o *Orchestrator) RenderFrame(deltaTime float64) error {
	if o.resizePending {
		o.framesSinceResize++
		if o.framesSinceResize >= resizeSettleFrames {
			width, height := o.pendingWidth, o.pendingHeight
			if err := o.renderer.Resized(width, height); err != nil {
				return err
			}
			if o.onResize != nil {
				o.onResize(width, height)
			}
			o.resizePending = false
			o.framesSinceResize = 0
		} else {
			return nil
		}
	}

	frameNumber := o.renderer.IncrementFrameNumber()

	if err := o.renderer.BeginFrame(deltaTime); err != nil {
		if errors.Is(err, core.ErrSwapchainBooting) {
			core.LogInfo(err.Error())
			return nil
		}
		return err
	}

	windowAttachmentIndex := o.renderer.CurrentWindowAttachmentIndex()

	for _, stage := range o.stages {
		if err := stage.Run(frameNumber, windowAttachmentIndex); err != nil {
			core.LogError("frame orchestrator: stage '%s' failed: %v", stage.Name(), err)
			return err
		}
	}

	return o.renderer.EndFrame(deltaTime)
}
