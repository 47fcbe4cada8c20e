package views

// BlurView tracks the blur module's render-target extent: half the
// screen's resolution (floored, clamped to at least one texel per axis),
// recomputed whenever the surface resizes. Blurring at half resolution is
// the standard AO-smoothing cost tradeoff the original's blur pass used.
//
// Grounded on original_source/include/renderer/modules/render_module_blur.hpp.
type BlurView struct {
	Width  uint32
	Height uint32
}

func NewBlurView() *BlurView { return &BlurView{} }

// OnResize recomputes the tracked blur target extent from the new surface
// extent: max(1, extent/2) per axis.
func (v *BlurView) OnResize(width, height uint32) {
	v.Width = halveExtent(width)
	v.Height = halveExtent(height)
}

func halveExtent(extent uint32) uint32 {
	half := extent / 2
	if half < 1 {
		return 1
	}
	return half
}

// TexelSize returns the (1/width, 1/height) texel size the blur shader
// needs to step one texel in its sampling direction.
func (v *BlurView) TexelSize() (float32, float32) {
	w, h := v.Width, v.Height
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return 1 / float32(w), 1 / float32(h)
}
