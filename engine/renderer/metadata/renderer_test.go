package metadata

import (
	"testing"

	"github.com/spaghettifunk/luthadel/engine/math"
)

// Render passes are not nestable: exactly one begin/end bracket may be
// open at a time.
func TestRenderPassBeginEndNotNestable(t *testing.T) {
	pass := &RenderPass{Name: "world"}
	pass.AddRenderTarget(&RenderTarget{Width: 800, Height: 600})

	if err := pass.Begin(0); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := pass.Begin(0); err == nil {
		t.Fatalf("expected an error calling Begin while a bracket is already open")
	}
	if err := pass.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if err := pass.End(); err == nil {
		t.Fatalf("expected an error calling End without a matching Begin")
	}

	// A fresh begin/end bracket after a clean End must succeed.
	if err := pass.Begin(0); err != nil {
		t.Fatalf("Begin after End: %v", err)
	}
	if err := pass.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
}

func TestRenderPassBeginRejectsOutOfRangeTarget(t *testing.T) {
	pass := &RenderPass{Name: "shadow"}
	pass.AddRenderTarget(&RenderTarget{})
	if err := pass.Begin(5); err == nil {
		t.Fatalf("expected an error for an out-of-range target index")
	}
}

func TestRenderPassViewportScissorScopedOverride(t *testing.T) {
	pass := &RenderPass{Name: "cascade0"}
	if pass.Viewport() != nil {
		t.Fatalf("fresh pass must have no viewport override")
	}

	rect := math.NewVec4Create(0, 0, 1024, 1024)
	pass.SetViewport(rect)
	if pass.Viewport() == nil || *pass.Viewport() != rect {
		t.Fatalf("SetViewport did not stick")
	}
	pass.ResetViewport()
	if pass.Viewport() != nil {
		t.Fatalf("ResetViewport must clear the override")
	}

	pass.SetScissor(rect)
	if pass.Scissor() == nil || *pass.Scissor() != rect {
		t.Fatalf("SetScissor did not stick")
	}
	pass.ResetScissor()
	if pass.Scissor() != nil {
		t.Fatalf("ResetScissor must clear the override")
	}
}

// RenderTarget invariant: all attachments share the same extent, and
// resizing a target resizes every attachment together.
func TestRenderTargetResizeAppliesToAllAttachments(t *testing.T) {
	colour := &Texture{Width: 800, Height: 600}
	depth := &Texture{Width: 800, Height: 600}
	target := &RenderTarget{
		Attachments: []*RenderTargetAttachment{
			{Texture: colour},
			{Texture: depth},
		},
		Width: 800, Height: 600,
	}

	target.Resize(1600, 900)

	if target.Width != 1600 || target.Height != 900 {
		t.Fatalf("target extent not updated")
	}
	for _, a := range target.Attachments {
		if a.Texture.Width != 1600 || a.Texture.Height != 900 {
			t.Fatalf("attachment extent not resized alongside the target: %+v", a.Texture)
		}
	}
}
