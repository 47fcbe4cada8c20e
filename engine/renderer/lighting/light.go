// Package lighting implements the Light Registry: a fixed-capacity set of
// point lights plus at most one directional light, packing per-light
// GPU-ready data blocks for upload by the shadow and world render modules.
//
// Grounded on original_source/include/renderer/lighting/lights.hpp and
// original_source/include/systems/light_system.hpp — the C++ original's
// Light/PointLight/DirectionalLight/LightSystem types, ported to the
// instantiated-struct idiom used by the shader/render-view systems.
package lighting

import (
	"github.com/spaghettifunk/luthadel/engine/core"
	"github.com/spaghettifunk/luthadel/engine/math"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
)

// PointShadowmapSettings configures a point light's cube shadow atlas.
type PointShadowmapSettings struct {
	NearPlane     float32
	FarPlane      float32
	FOVRadians    float32
	ShadowmapSize float32
}

// DirectionalShadowmapSettings configures a directional light's cascades.
type DirectionalShadowmapSettings struct {
	NearPlane float32
	FarPlane  float32
	Extent    float32
}

// Light is the common base every light kind embeds.
type Light struct {
	Name            string
	ShadowsEnabled  bool
}

// PointLight is an omnidirectional light with optional cube shadow mapping.
// Grounded on lights.hpp's PointLight: set_position marks
// RecalculateShadowmap so the owning shadow module knows to re-render its
// six faces.
type PointLight struct {
	Light
	Data                 metadata.PointLightData
	RecalculateShadowmap bool

	shadowmapSettings PointShadowmapSettings
	// The light's position lives only in Data.Position, the GPU-facing
	// vec4 (w = 1); SetPosition writes it there.
}

func NewPointLight(name string, data metadata.PointLightData) *PointLight {
	return &PointLight{
		Light: Light{Name: name},
		Data:  data,
		shadowmapSettings: PointShadowmapSettings{
			NearPlane:     0.1,
			FarPlane:      100,
			FOVRadians:    math.DegToRad(90),
			ShadowmapSize: 1024,
		},
	}
}

// EnableShadows turns on cube shadow mapping for this point light and
// requests an initial atlas render.
func (p *PointLight) EnableShadows() {
	p.ShadowsEnabled = true
	p.RecalculateShadowmap = true
}

// SetPosition updates the light's GPU position and requests that its cube
// shadow atlas be regenerated on the next shadow pass.
func (p *PointLight) SetPosition(position math.Vec3) {
	p.Data.Position = math.NewVec4FromVec3(position, 1.0)
	p.RecalculateShadowmap = true
}

// LightSpaceMatrices returns the six view-projection matrices for the cube
// faces (+X,-X,+Y,-Y,+Z,-Z), used by the ShadowmapPoint module to render
// the atlas.
func (p *PointLight) LightSpaceMatrices() [6]math.Mat4 {
	pos := math.NewVec3FromVec4(p.Data.Position)
	proj := math.NewMat4Perspective(p.shadowmapSettings.FOVRadians, 1.0, p.shadowmapSettings.NearPlane, p.shadowmapSettings.FarPlane)

	targets := [6]math.Vec3{
		pos.Add(math.NewVec3(1, 0, 0)),
		pos.Add(math.NewVec3(-1, 0, 0)),
		pos.Add(math.NewVec3(0, 1, 0)),
		pos.Add(math.NewVec3(0, -1, 0)),
		pos.Add(math.NewVec3(0, 0, 1)),
		pos.Add(math.NewVec3(0, 0, -1)),
	}
	ups := [6]math.Vec3{
		math.NewVec3(0, -1, 0),
		math.NewVec3(0, -1, 0),
		math.NewVec3(0, 0, 1),
		math.NewVec3(0, 0, -1),
		math.NewVec3(0, -1, 0),
		math.NewVec3(0, -1, 0),
	}

	var out [6]math.Mat4
	for i := 0; i < 6; i++ {
		view := math.NewMat4LookAt(pos, targets[i], ups[i])
		out[i] = proj.Mul(view)
	}
	return out
}

// DirectionalLight is the single directional light a scene may have.
// Grounded on lights.hpp's DirectionalLight.
type DirectionalLight struct {
	Light
	Data metadata.DirectionalLightData

	shadowmapSettings   DirectionalShadowmapSettings
	numShadowCascades   uint32
}

func NewDirectionalLight(name string, data metadata.DirectionalLightData) *DirectionalLight {
	return &DirectionalLight{
		Light: Light{Name: name},
		Data:  data,
		shadowmapSettings: DirectionalShadowmapSettings{
			NearPlane: 0.1,
			FarPlane:  100,
			Extent:    50,
		},
		numShadowCascades: 1,
	}
}

func (d *DirectionalLight) EnableShadows(numShadowCascades uint32) {
	d.ShadowsEnabled = true
	d.numShadowCascades = numShadowCascades
}

func (d *DirectionalLight) NumShadowCascades() uint32 { return d.numShadowCascades }

// CameraPosition returns the position the shadow-casting camera should sit
// at, the same for every cascade: `camera.pos - normalize(light_dir) * far/2`.
func (d *DirectionalLight) CameraPosition(cameraPosition math.Vec3) math.Vec3 {
	dir := math.NewVec3FromVec4(d.Data.Direction).Normalize()
	offset := dir.MulScalar(d.shadowmapSettings.FarPlane / 2)
	return cameraPosition.Sub(offset)
}

// LightSpaceMatrix returns `proj * view` for the given cascade.
func (d *DirectionalLight) LightSpaceMatrix(rpIndex uint32, cameraPosition math.Vec3) math.Mat4 {
	e := d.shadowmapSettings.Extent
	proj := math.NewMat4Orthographic(-e, e, -e, e, d.shadowmapSettings.NearPlane, d.shadowmapSettings.FarPlane)

	dir := math.NewVec3FromVec4(d.Data.Direction).Normalize()
	up := math.NewVec3(0, 1, 0)
	// Guard against the view direction aligning with world-up.
	if abs32(dir.Dot(math.NewVec3(0, 1, 0))) > 0.99 {
		up = math.NewVec3(0, 0, 1)
	}

	eye := d.CameraPosition(cameraPosition)
	view := math.NewMat4LookAt(eye, cameraPosition, up)
	return proj.Mul(view)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// System is the Light Registry: at most one directional light, a
// fixed-capacity set of point lights. Grounded on
// original_source/include/systems/light_system.hpp's LightSystem.
type System struct {
	directional  *DirectionalLight
	point        []*PointLight
	maxPoint     int
}

// NewSystem constructs a Light Registry with room for maxPointLights point
// lights.
func NewSystem(maxPointLights int) *System {
	return &System{
		point:    make([]*PointLight, 0, maxPointLights),
		maxPoint: maxPointLights,
	}
}

// AddDirectional installs the scene's directional light, replacing any
// previous one (at most one directional light may exist).
func (s *System) AddDirectional(light *DirectionalLight) bool {
	s.directional = light
	return true
}

func (s *System) RemoveDirectional(light *DirectionalLight) {
	if s.directional == light {
		s.directional = nil
	}
}

// AddPoint registers a point light, failing once the fixed capacity is
// reached.
func (s *System) AddPoint(light *PointLight) bool {
	if len(s.point) >= s.maxPoint {
		core.LogWarn("light registry: point light capacity (%d) reached, cannot add '%s'", s.maxPoint, light.Name)
		return false
	}
	s.point = append(s.point, light)
	return true
}

func (s *System) RemovePoint(light *PointLight) {
	for i, p := range s.point {
		if p == light {
			s.point = append(s.point[:i], s.point[i+1:]...)
			return
		}
	}
}

func (s *System) Directional() *DirectionalLight { return s.directional }

func (s *System) DirectionalData() *metadata.DirectionalLightData {
	if s.directional == nil {
		return nil
	}
	return &s.directional.Data
}

func (s *System) Points() []*PointLight { return s.point }

// PointData materializes a contiguous array of PointLightData for upload;
// the shader expects the count uploaded as a separate uniform.
func (s *System) PointData() []metadata.PointLightData {
	out := make([]metadata.PointLightData, len(s.point))
	for i, p := range s.point {
		out[i] = p.Data
	}
	return out
}
