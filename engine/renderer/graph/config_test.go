package graph

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
modules = ["shadowmap_directional", "shadowmap_point", "depth_prepass", "ao", "blur", "world", "skybox", "shadowmap_sampling", "post_processing_tonemap", "ui"]

[[pass]]
name = "world"
render_area = [0, 0, 1280, 720]
clear_colour = [0, 0, 0, 1]
clear_flags = 3
render_target_count = 3

[[pass.attachment]]
type = "colour"
source = "default"
load_operation = "dont_care"
store_operation = "store"

[[pass.attachment]]
type = "depth"
source = "default"
load_operation = "dont_care"
store_operation = "dont_care"

[[view]]
name = "world_view"
kind = "world"
near_clip = 0.1
far_clip = 1000
fov_degrees = 45

[[view]]
name = "sun_shadow"
kind = "directional_shadow"
near_clip = 0.1
far_clip = 100
extent = 40
cascades = 4
`

func writeSampleConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "render_graph.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatalf("failed to write sample config: %v", err)
	}
	return path
}

func TestLoadRenderGraphConfigDecodesPassesViewsAndModules(t *testing.T) {
	path := writeSampleConfig(t)

	cfg, err := LoadRenderGraphConfig(path)
	if err != nil {
		t.Fatalf("LoadRenderGraphConfig: %v", err)
	}

	if len(cfg.Modules) != 10 {
		t.Fatalf("expected 10 ordered modules, got %d: %v", len(cfg.Modules), cfg.Modules)
	}
	if cfg.Modules[0] != "shadowmap_directional" {
		t.Fatalf("module order not preserved: %v", cfg.Modules)
	}

	if len(cfg.Passes) != 1 {
		t.Fatalf("expected 1 render pass, got %d", len(cfg.Passes))
	}
	pass := cfg.Passes[0]
	if pass.Name != "world" {
		t.Fatalf("pass name = %s, want world", pass.Name)
	}
	if pass.RenderTargetCount != 3 {
		t.Fatalf("pass render target count = %d, want 3", pass.RenderTargetCount)
	}
	if len(pass.Target.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(pass.Target.Attachments))
	}

	if len(cfg.Views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(cfg.Views))
	}
	if cfg.Views[1].Cascades != 4 {
		t.Fatalf("sun_shadow cascades = %d, want 4", cfg.Views[1].Cascades)
	}
}

func TestLoadRenderGraphConfigRejectsDuplicatePassNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render_graph.toml")
	data := `
modules = ["world"]

[[pass]]
name = "world"
render_target_count = 1

[[pass]]
name = "world"
render_target_count = 1
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadRenderGraphConfig(path); err == nil {
		t.Fatalf("expected an error for a duplicate pass name")
	}
}

func TestLoadRenderGraphConfigRejectsEmptyModuleList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render_graph.toml")
	data := `
modules = []

[[pass]]
name = "world"
render_target_count = 1
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadRenderGraphConfig(path); err == nil {
		t.Fatalf("expected an error for an empty module list")
	}
}
