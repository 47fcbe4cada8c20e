package lighting

import (
	"testing"

	"github.com/spaghettifunk/luthadel/engine/math"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
)

func TestSystemAddPointRespectsCapacity(t *testing.T) {
	sys := NewSystem(2)

	a := NewPointLight("a", metadata.PointLightData{})
	b := NewPointLight("b", metadata.PointLightData{})
	c := NewPointLight("c", metadata.PointLightData{})

	if !sys.AddPoint(a) {
		t.Fatalf("AddPoint(a) should succeed under capacity")
	}
	if !sys.AddPoint(b) {
		t.Fatalf("AddPoint(b) should succeed up to capacity")
	}
	if sys.AddPoint(c) {
		t.Fatalf("AddPoint(c) should fail once capacity is reached")
	}
	if len(sys.Points()) != 2 {
		t.Fatalf("expected exactly 2 registered point lights, got %d", len(sys.Points()))
	}
}

func TestSystemAtMostOneDirectionalLight(t *testing.T) {
	sys := NewSystem(4)

	first := NewDirectionalLight("sun", metadata.DirectionalLightData{})
	second := NewDirectionalLight("moon", metadata.DirectionalLightData{})

	sys.AddDirectional(first)
	sys.AddDirectional(second)

	if sys.Directional() != second {
		t.Fatalf("adding a second directional light must replace the first")
	}
}

func TestPointDataMaterializesContiguousArray(t *testing.T) {
	sys := NewSystem(4)
	sys.AddPoint(NewPointLight("a", metadata.PointLightData{Position: math.NewVec4Create(1, 0, 0, 1)}))
	sys.AddPoint(NewPointLight("b", metadata.PointLightData{Position: math.NewVec4Create(2, 0, 0, 1)}))

	data := sys.PointData()
	if len(data) != 2 {
		t.Fatalf("expected 2 point light data entries, got %d", len(data))
	}
	if data[0].Position.X != 1 || data[1].Position.X != 2 {
		t.Fatalf("point light data not in registration order: %+v", data)
	}
}

func TestPointLightSetPositionRequestsShadowRecalculation(t *testing.T) {
	p := NewPointLight("a", metadata.PointLightData{})
	p.RecalculateShadowmap = false

	p.SetPosition(math.NewVec3(5, 5, 5))

	if !p.RecalculateShadowmap {
		t.Fatalf("SetPosition must request a shadow atlas recalculation")
	}
	got := math.NewVec3FromVec4(p.Data.Position)
	if got != math.NewVec3(5, 5, 5) {
		t.Fatalf("SetPosition did not update the GPU-facing position: %v", got)
	}
}

func TestDirectionalLightSpaceMatrixPicksUpVectorAwayFromLightDirection(t *testing.T) {
	// Light pointing straight down (aligned with world-up axis): the
	// matrix construction must fall back to (0,0,1) for up to avoid a
	// degenerate lookAt.
	d := NewDirectionalLight("sun", metadata.DirectionalLightData{
		Direction: math.NewVec4Create(0, -1, 0, 0),
	})

	m := d.LightSpaceMatrix(0, math.NewVec3Zero())
	if m == (math.Mat4{}) {
		t.Fatalf("expected a non-zero light space matrix")
	}
}

func TestDirectionalLightCameraPositionOffsetsAlongLightDirection(t *testing.T) {
	d := NewDirectionalLight("sun", metadata.DirectionalLightData{
		Direction: math.NewVec4Create(0, -1, 0, 0),
	})
	camPos := math.NewVec3(0, 10, 0)
	eye := d.CameraPosition(camPos)

	// eye = camPos - normalize(direction) * far/2; direction here is
	// straight down, so eye must sit above camPos.
	if eye.Y <= camPos.Y {
		t.Fatalf("expected the shadow camera to be offset opposite the light direction, got %v", eye)
	}
}
