package systems

import "testing"

// Repository refcount law: balanced acquire/release pairs leave the entry
// reusable and an unbalanced release must not destroy the live camera.
func TestCameraSystemRefcountLaw(t *testing.T) {
	sys, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: 4})
	if err != nil {
		t.Fatalf("NewCameraSystem: %v", err)
	}

	first, err := sys.Acquire("player")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	second, err := sys.Acquire("player")
	if err != nil {
		t.Fatalf("Acquire (2nd): %v", err)
	}
	if first != second {
		t.Fatalf("repeated acquire of the same name must return the same camera")
	}

	// Unbalanced release: one of the two acquires.
	sys.Release("player")
	if _, ok := sys.lookup["player"]; !ok {
		t.Fatalf("camera released while refcount > 0 must not be torn down")
	}

	// Balancing release.
	sys.Release("player")
	if _, ok := sys.lookup["player"]; ok {
		t.Fatalf("camera at refcount 0 must be removed from the lookup table")
	}

	// Re-acquiring the same name after full release creates a fresh entry.
	third, err := sys.Acquire("player")
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if third == nil {
		t.Fatalf("expected a fresh camera")
	}
}

func TestCameraSystemDefaultNeverReleased(t *testing.T) {
	sys, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: 2})
	if err != nil {
		t.Fatalf("NewCameraSystem: %v", err)
	}

	def, err := sys.Acquire("")
	if err != nil {
		t.Fatalf("Acquire(\"\"): %v", err)
	}
	if def != sys.GetDefault() {
		t.Fatalf("acquiring an empty name must return the default camera")
	}

	// Releasing the default is a documented no-op; it must remain usable.
	sys.Release("default")
	if sys.GetDefault() != def {
		t.Fatalf("releasing the default camera must not tear it down")
	}
}

func TestCameraSystemCapacityExceeded(t *testing.T) {
	sys, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: 1})
	if err != nil {
		t.Fatalf("NewCameraSystem: %v", err)
	}
	if _, err := sys.Acquire("a"); err != nil {
		t.Fatalf("Acquire(a): %v", err)
	}
	if _, err := sys.Acquire("b"); err == nil {
		t.Fatalf("expected an error once MaxCameraCount is exceeded")
	}
}
