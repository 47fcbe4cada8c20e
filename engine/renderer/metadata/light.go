package metadata

import "github.com/spaghettifunk/luthadel/engine/math"

// PointLightData is the GPU-ready, 16-byte-aligned representation of a
// single point light, matching the layout a shader's point_lights array
// uniform expects.
type PointLightData struct {
	Position  math.Vec4
	Color     math.Vec4
	Constant  float32
	Linear    float32
	Quadratic float32
	// Padding keeps the struct's size a multiple of 16 bytes for std140-style
	// uniform buffer layouts.
	Padding float32
}

// DirectionalLightData is the GPU-ready representation of the single
// directional light a scene may have.
type DirectionalLightData struct {
	Direction math.Vec4
	Color     math.Vec4
}
