package views

import (
	"sort"

	"github.com/spaghettifunk/luthadel/engine/renderer/components"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"

	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
)

// WorldView is the scene viewpoint a World render module draws from: a
// perspective view with an ambient colour, a debug render mode, and the
// opaque/transparent partitioning original_source's RenderViewWorld does in
// on_build_packet.
//
// Grounded on original_source/include/renderer/views/render_view_world.hpp
// and engine/systems/renderview.go's worldOnBuildPacket, with the
// transparent sort direction corrected: farther geometry must draw first so
// nearer transparent surfaces blend correctly over it. The teacher's version
// left this an open FIXME, sorting nearest-first.
type WorldView struct {
	*PerspectiveView

	AmbientColour mathpkg.Vec4
	RenderMode    metadata.RendererDebugViewMode

	splitFrame  uint64
	haveSplit   bool
	opaque      []*metadata.GeometryRenderData
	transparent []*metadata.GeometryRenderData
}

// NewWorldView constructs a world view tracking camera with the engine
// default ambient colour.
func NewWorldView(camera *components.Camera) *WorldView {
	return &WorldView{
		PerspectiveView: NewPerspectiveView("world", camera),
		AmbientColour:   mathpkg.NewVec4Create(0.25, 0.25, 0.25, 1.0),
	}
}

// VisibleSplit partitions the visible meshes for frameNumber into opaque
// draw items (any order) and transparent draw items sorted by descending
// distance from the camera (farthest first), memoized per frame number.
func (w *WorldView) VisibleSplit(frameNumber uint64, meshes []*metadata.Mesh) (opaque, transparent []*metadata.GeometryRenderData) {
	if w.haveSplit && w.splitFrame == frameNumber {
		return w.opaque, w.transparent
	}

	type distanced struct {
		item     *metadata.GeometryRenderData
		distance float32
	}
	var transparentDistances []distanced

	opaque = opaque[:0]
	for _, m := range meshes {
		model := m.Transform.GetWorld()
		for _, g := range m.Geometries {
			item := &metadata.GeometryRenderData{Model: model, Geometry: g, UniqueID: m.UniqueID}
			if g.Material == nil || !g.Material.DiffuseMap.Texture.HasTransparency() {
				opaque = append(opaque, item)
				continue
			}
			centerWorld := g.Center.Transform(model)
			distance := centerWorld.Distance(w.Camera.Position)
			transparentDistances = append(transparentDistances, distanced{item, distance})
		}
	}

	sort.Slice(transparentDistances, func(i, j int) bool {
		return transparentDistances[i].distance > transparentDistances[j].distance
	})
	transparent = make([]*metadata.GeometryRenderData, len(transparentDistances))
	for i, d := range transparentDistances {
		transparent[i] = d.item
	}

	w.opaque, w.transparent, w.splitFrame, w.haveSplit = opaque, transparent, frameNumber, true
	return w.opaque, w.transparent
}

// BuildPacket assembles a RenderViewPacket with the view, projection,
// position and ambient colour, and fills its geometry list from
// VisibleSplit: the opaque items first, then the transparent ones
// farthest-first.
func (w *WorldView) BuildPacket(frameNumber uint64, meshes []*metadata.Mesh) *metadata.RenderViewPacket {
	opaque, transparent := w.VisibleSplit(frameNumber, meshes)
	geometries := make([]*metadata.GeometryRenderData, 0, len(opaque)+len(transparent))
	geometries = append(geometries, opaque...)
	geometries = append(geometries, transparent...)

	return &metadata.RenderViewPacket{
		ViewMatrix:       w.ViewMatrix(),
		ProjectionMatrix: w.Projection,
		ViewPosition:     w.ViewPosition(),
		AmbientColour:    w.AmbientColour,
		GeometryCount:    uint32(len(geometries)),
		Geometries:       geometries,
	}
}
