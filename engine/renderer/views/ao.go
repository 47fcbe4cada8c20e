package views

import (
	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
)

// aoNoiseTileExtent is the fixed tiling noise texture's per-axis sample
// count (see modules.aoNoiseTileExtent); kept in sync by hand since a
// views->modules import would invert the package's layering.
const aoNoiseTileExtent = 4

// AOView tracks the screen extent an AOModule resolves into and the
// noise_scale uniform derived from it: the tiling noise texture repeats
// extent/aoNoiseTileExtent times across the screen in each axis, so the
// shader needs that ratio to tile it correctly after every resize.
//
// Grounded on original_source/include/renderer/modules/render_module_ao.hpp's
// noise_scale recomputation on swapchain resize.
type AOView struct {
	Width      uint32
	Height     uint32
	NoiseScale mathpkg.Vec2
}

func NewAOView() *AOView { return &AOView{} }

// OnResize recomputes NoiseScale when the tracked extent actually changes.
func (v *AOView) OnResize(width, height uint32) {
	if width == 0 || height == 0 || (width == v.Width && height == v.Height) {
		return
	}
	v.Width, v.Height = width, height
	v.NoiseScale = mathpkg.NewVec2(float32(width)/aoNoiseTileExtent, float32(height)/aoNoiseTileExtent)
}
