package views

import (
	"github.com/spaghettifunk/luthadel/engine/renderer/components"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"

	mathpkg "github.com/spaghettifunk/luthadel/engine/math"
)

// SkyboxView is the viewpoint a Skybox render module draws from: the scene
// camera's rotation with no translation concerns, since a skybox is drawn
// at infinity.
//
// Grounded on original_source/include/renderer/views/render_view_skybox.hpp
// and engine/systems/renderview.go's skyboxOnRenderViewCreate/OnBuildPacket.
type SkyboxView struct {
	Camera   *components.Camera
	FOV      float32
	NearClip float32
	FarClip  float32
	Width    uint32
	Height   uint32

	Projection mathpkg.Mat4
}

func NewSkyboxView(camera *components.Camera) *SkyboxView {
	return &SkyboxView{
		Camera:   camera,
		FOV:      mathpkg.DegToRad(45.0),
		NearClip: 0.1,
		FarClip:  1000.0,
	}
}

func (v *SkyboxView) OnResize(width, height uint32) {
	if width == 0 || height == 0 || (width == v.Width && height == v.Height) {
		return
	}
	v.Width, v.Height = width, height
	aspect := float32(width) / float32(height)
	v.Projection = mathpkg.NewMat4Perspective(v.FOV, aspect, v.NearClip, v.FarClip)
}

// BuildPacket assembles the RenderViewPacket a Skybox render module
// consumes: the camera's current view/projection plus the skybox resource
// to draw.
func (v *SkyboxView) BuildPacket(skybox *metadata.Skybox) *metadata.RenderViewPacket {
	return &metadata.RenderViewPacket{
		ViewMatrix:       v.Camera.GetView(),
		ProjectionMatrix: v.Projection,
		ExtendedData:     &metadata.SkyboxPacketData{Skybox: skybox},
	}
}
