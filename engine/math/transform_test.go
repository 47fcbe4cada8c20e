package math

import "testing"

func matClose(a, b Mat4, tol float32) bool {
	for i := range a.Data {
		d := a.Data[i] - b.Data[i]
		if d < 0 {
			d = -d
		}
		if d > tol {
			return false
		}
	}
	return true
}

func TestTransformRootWorldEqualsLocal(t *testing.T) {
	root := TransformFromPosition(NewVec3(1, 2, 3))
	if !matClose(root.GetWorld(), root.GetLocal(), 1e-5) {
		t.Fatalf("root.GetWorld() != root.GetLocal()")
	}
}

func TestTransformChainWorldIsParentWorldTimesLocal(t *testing.T) {
	a := TransformFromPosition(NewVec3(5, 0, 0))
	b := TransformFromPosition(NewVec3(0, 2, 0))
	b.Parent = a

	got := b.GetWorld()
	want := b.GetLocal().Mul(a.GetWorld())

	if !matClose(got, want, 1e-5) {
		t.Fatalf("chain world law violated: got %v want %v", got.Data, want.Data)
	}

	// The origin carried through B's world matrix must land at A's
	// translation plus B's local offset: (5,2,0).
	origin := NewVec3Zero().Transform(got)
	wantOrigin := NewVec3(5, 2, 0)
	if origin.Distance(wantOrigin) > 1e-4 {
		t.Fatalf("chained world transform placed origin at %v, want %v", origin, wantOrigin)
	}
}

func TestTransformWorldStaysFreshAfterMutation(t *testing.T) {
	a := TransformFromPosition(NewVec3Zero())
	b := TransformFromPosition(NewVec3Zero())
	b.Parent = a

	first := b.GetWorld()

	a.SetPosition(NewVec3(10, 0, 0))
	second := b.GetWorld()

	if matClose(first, second, 1e-5) {
		t.Fatalf("world() returned stale data after ancestor mutation")
	}

	want := b.GetLocal().Mul(a.GetWorld())
	if !matClose(second, want, 1e-5) {
		t.Fatalf("world() after mutation = %v, want %v", second.Data, want.Data)
	}
}

// Translate must add the argument to the current position, not double it.
// original_source's translate_by does `_position += _position`, discarding
// the argument entirely; this is the regression the port fixes (see
// DESIGN.md, "Open questions").
func TestTransformTranslateAddsArgumentNotDoublesPosition(t *testing.T) {
	tr := TransformFromPosition(NewVec3(1, 1, 1))
	tr.Translate(NewVec3(2, 3, 4))

	want := NewVec3(3, 4, 5)
	if tr.Position != want {
		t.Fatalf("Translate produced %v, want %v (position + translation)", tr.Position, want)
	}
}

func TestTransformGetLocalMemoizesUntilDirtied(t *testing.T) {
	tr := TransformFromPosition(NewVec3(1, 0, 0))
	first := tr.GetLocal()
	if tr.IsDirty {
		t.Fatalf("GetLocal should clear the dirty flag")
	}

	// Calling again without mutation must return the cached matrix.
	second := tr.GetLocal()
	if first != second {
		t.Fatalf("GetLocal recomputed without a mutation in between")
	}

	tr.SetPosition(NewVec3(5, 0, 0))
	if !tr.IsDirty {
		t.Fatalf("SetPosition must mark the transform dirty")
	}
	third := tr.GetLocal()
	if third == first {
		t.Fatalf("GetLocal did not recompute after mutation")
	}
}
