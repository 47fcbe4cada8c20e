package metadata

import "testing"

func TestTextureTransitionRenderTargetIdempotentWithinFrame(t *testing.T) {
	tex := &Texture{}

	if !tex.TransitionRenderTarget(3) {
		t.Fatalf("first transition for a frame must report a change")
	}
	if tex.TransitionRenderTarget(3) {
		t.Fatalf("repeated transition for the same frame must be a no-op")
	}
	if !tex.TransitionRenderTarget(4) {
		t.Fatalf("transition for a new frame must report a change")
	}
}

func TestPackedTextureGetAtSelectsFrameInFlightSlot(t *testing.T) {
	packed := NewPackedTexture("gbuffer", 3)
	for i := range packed.Frames {
		packed.Frames[i] = &Texture{ID: uint32(i)}
	}

	cases := []struct {
		frameNumber uint64
		wantID      uint32
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 0}, {4, 1}, {100, 1},
	}
	for _, c := range cases {
		got := packed.GetAt(c.frameNumber)
		if got.ID != c.wantID {
			t.Fatalf("GetAt(%d) = texture %d, want %d (frame %% F)", c.frameNumber, got.ID, c.wantID)
		}
	}
}

func TestPackedTextureGetAtEmptyReturnsNil(t *testing.T) {
	packed := NewPackedTexture("empty", 0)
	if packed.GetAt(0) != nil {
		t.Fatalf("GetAt on an empty packed texture must return nil")
	}
}

func TestTextureHasTransparencyFlag(t *testing.T) {
	opaque := &Texture{}
	if opaque.HasTransparency() {
		t.Fatalf("texture with no flags set must not report transparency")
	}
	transparent := &Texture{Flags: TextureFlagBits(TextureFlagHasTransparency)}
	if !transparent.HasTransparency() {
		t.Fatalf("texture with the transparency flag set must report it")
	}
}
