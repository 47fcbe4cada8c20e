package components

import (
	stdmath "math"
	"testing"

	"github.com/spaghettifunk/luthadel/engine/math"
)

// angleFromUp returns the angle, in degrees, between v and world-up.
func angleFromUp(v math.Vec3) float32 {
	up := math.NewVec3Up()
	cos := v.Normalize().Dot(up)
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.RadToDeg(float32(stdmath.Acos(float64(cos))))
}

// Camera pitch must clamp so the angle between forward and world-up never
// leaves (1°, 179°); any sequence of Pitch calls, including ones that would
// overshoot straight up or down, must respect this.
func TestCameraPitchClampKeepsForwardAwayFromWorldUp(t *testing.T) {
	cam := NewCamera()

	const tolerance = 0.05 // float32 rounding around the exact 89deg clamp

	for i := 0; i < 1000; i++ {
		cam.Pitch(math.DegToRad(10))
	}
	angle := angleFromUp(cam.Forward())
	if angle <= 1-tolerance || angle >= 179+tolerance {
		t.Fatalf("pitched fully up: angle(forward, up) = %v, want in (1, 179)", angle)
	}

	for i := 0; i < 2000; i++ {
		cam.Pitch(math.DegToRad(-10))
	}
	angle = angleFromUp(cam.Forward())
	if angle <= 1-tolerance || angle >= 179+tolerance {
		t.Fatalf("pitched fully down: angle(forward, up) = %v, want in (1, 179)", angle)
	}
}

func TestCameraViewMemoizesUntilDirtied(t *testing.T) {
	cam := NewCamera()
	first := cam.GetView()
	if cam.IsDirty {
		t.Fatalf("GetView should clear the dirty flag")
	}
	second := cam.GetView()
	if first != second {
		t.Fatalf("GetView recomputed without an intervening mutation")
	}

	cam.SetPosition(math.NewVec3(1, 0, 0))
	if !cam.IsDirty {
		t.Fatalf("SetPosition must mark the camera dirty")
	}
	third := cam.GetView()
	if third == first {
		t.Fatalf("GetView did not recompute after SetPosition")
	}
}

func TestCameraMoveForwardUsesCurrentOrientation(t *testing.T) {
	cam := NewCamera()
	before := cam.GetPosition()
	cam.MoveForward(5)
	after := cam.GetPosition()
	if after == before {
		t.Fatalf("MoveForward did not change position")
	}
}
