// Package views implements the Render View component of the render graph:
// logical viewpoints that own a projection, know how to react to surface
// resizes, and hand a render module the list of geometry visible from that
// viewpoint for the current frame.
//
// Grounded on original_source/include/renderer/views/render_view_perspective.hpp
// and render_view_world.hpp, adapted from engine/systems/renderview.go's
// worldOnBuildPacket/worldOnRenderView dispatch logic into standalone,
// independently testable types rather than the teacher's single
// RenderViewSystem type-switch.
package views

import (
	"github.com/spaghettifunk/luthadel/engine/renderer/components"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"

	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
)

// PerspectiveView is a camera-driven 3D viewpoint. It is the base every
// camera-tracking view (world, depth prepass, shadow sampling) builds on:
// it owns the projection matrix and memoizes the flattened visible-geometry
// list for a frame number so that a module asking for it twice in the same
// frame (e.g. depth prepass and world both reading the same scene) does not
// redo the flattening work.
type PerspectiveView struct {
	Name     string
	Camera   *components.Camera
	FOV      float32
	NearClip float32
	FarClip  float32
	Width    uint32
	Height   uint32

	Projection        mathpkg.Mat4
	ProjectionInverse mathpkg.Mat4

	lastFrame  uint64
	haveCached bool
	cached     []*metadata.GeometryRenderData
}

// NewPerspectiveView constructs a perspective view with the engine's
// default field of view and clip planes; callers needing different values
// set FOV/NearClip/FarClip before the first OnResize.
func NewPerspectiveView(name string, camera *components.Camera) *PerspectiveView {
	return &PerspectiveView{
		Name:     name,
		Camera:   camera,
		FOV:      mathpkg.DegToRad(45.0),
		NearClip: 0.1,
		FarClip:  1000.0,
	}
}

// OnResize recomputes the projection (and its inverse, used by shadow
// sampling) when the tracked extent actually changes. A no-op otherwise, so
// repeated calls with the same extent don't thrash the cached matrices.
func (v *PerspectiveView) OnResize(width, height uint32) {
	if width == 0 || height == 0 || (width == v.Width && height == v.Height) {
		return
	}
	v.Width, v.Height = width, height
	aspect := float32(width) / float32(height)
	v.Projection = mathpkg.NewMat4Perspective(v.FOV, aspect, v.NearClip, v.FarClip)
	v.ProjectionInverse = v.Projection.Inverse()
}

// ViewMatrix returns the tracked camera's current view matrix.
func (v *PerspectiveView) ViewMatrix() mathpkg.Mat4 {
	return v.Camera.GetView()
}

// ViewPosition returns the tracked camera's world position.
func (v *PerspectiveView) ViewPosition() mathpkg.Vec3 {
	return v.Camera.GetPosition()
}

// GetVisibleRenderData flattens meshes into draw items, memoized per frame
// number: calling this more than once for the same frameNumber returns the
// same slice without re-walking the mesh list.
func (v *PerspectiveView) GetVisibleRenderData(frameNumber uint64, meshes []*metadata.Mesh) []*metadata.GeometryRenderData {
	if v.haveCached && v.lastFrame == frameNumber {
		return v.cached
	}
	out := make([]*metadata.GeometryRenderData, 0, len(meshes))
	for _, m := range meshes {
		model := m.Transform.GetWorld()
		for _, g := range m.Geometries {
			out = append(out, &metadata.GeometryRenderData{Model: model, Geometry: g, UniqueID: m.UniqueID})
		}
	}
	v.cached, v.lastFrame, v.haveCached = out, frameNumber, true
	return out
}
