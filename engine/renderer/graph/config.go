// Package graph decodes the render-graph's own configuration surface:
// render passes, render views and the module pipeline order a configured
// application wires into the Frame Orchestrator (spec.md §6). TOML
// decoding lives here, at the render-graph's config boundary, the same
// way engine/assets/loaders keeps decoding at the asset boundary and
// hands the hard core already-parsed metadata types rather than raw TOML.
package graph

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/luthadel/engine/math"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
)

// ViewConfig describes one Render View's construction parameters. Kind
// selects which concrete view type (engine/renderer/views) the caller
// constructs from it; not every field applies to every kind.
type ViewConfig struct {
	Name       string
	Kind       string
	NearClip   float32
	FarClip    float32
	Extent     float32
	FOVDegrees float32
	Cascades   uint32
}

// RenderGraphConfig is the fully decoded description of the passes,
// views and module pipeline order LoadRenderGraphConfig produces.
// Modules is the static, ordered list of module names the Frame
// Orchestrator registers stages for (spec.md §4.1's fixed pipeline
// order), not a dynamically reordered list.
type RenderGraphConfig struct {
	Passes  []*metadata.RenderPassConfig
	Views   []ViewConfig
	Modules []string
}

type tmpAttachmentConfig struct {
	Type           string `toml:"type"`
	Source         string `toml:"source"`
	LoadOperation  string `toml:"load_operation"`
	StoreOperation string `toml:"store_operation"`
	PresentAfter   bool   `toml:"present_after"`
}

type tmpPassConfig struct {
	Name              string                `toml:"name"`
	RenderArea        [4]float32            `toml:"render_area"`
	ClearColour       [4]float32            `toml:"clear_colour"`
	ClearFlags        uint32                `toml:"clear_flags"`
	Depth             float32               `toml:"depth"`
	Stencil           uint32                `toml:"stencil"`
	RenderTargetCount uint8                 `toml:"render_target_count"`
	Attachment        []tmpAttachmentConfig `toml:"attachment"`
}

type tmpViewConfig struct {
	Name       string  `toml:"name"`
	Kind       string  `toml:"kind"`
	NearClip   float32 `toml:"near_clip"`
	FarClip    float32 `toml:"far_clip"`
	Extent     float32 `toml:"extent"`
	FOVDegrees float32 `toml:"fov_degrees"`
	Cascades   uint32  `toml:"cascades"`
}

type tmpRenderGraphConfig struct {
	Pass    []tmpPassConfig `toml:"pass"`
	View    []tmpViewConfig `toml:"view"`
	Modules []string        `toml:"modules"`
}

// Validate rejects duplicate pass/view names and an empty module list —
// an orchestrator with no stages is almost certainly a misconfiguration,
// not an intentionally empty pipeline.
func (config *tmpRenderGraphConfig) Validate() error {
	passNames := make(map[string]bool, len(config.Pass))
	for _, p := range config.Pass {
		if passNames[p.Name] {
			return fmt.Errorf("duplicate render pass name found: %s", p.Name)
		}
		passNames[p.Name] = true
	}
	viewNames := make(map[string]bool, len(config.View))
	for _, v := range config.View {
		if viewNames[v.Name] {
			return fmt.Errorf("duplicate render view name found: %s", v.Name)
		}
		viewNames[v.Name] = true
	}
	if len(config.Modules) == 0 {
		return fmt.Errorf("render graph config declares no modules")
	}
	return nil
}

func attachmentTypeFromString(s string) (metadata.RenderTargetAttachmentType, error) {
	switch s {
	case "colour", "color":
		return metadata.RENDER_TARGET_ATTACHMENT_TYPE_COLOUR, nil
	case "depth":
		return metadata.RENDER_TARGET_ATTACHMENT_TYPE_DEPTH, nil
	case "stencil":
		return metadata.RENDER_TARGET_ATTACHMENT_TYPE_STENCIL, nil
	default:
		return 0, fmt.Errorf("unknown render target attachment type: %s", s)
	}
}

func attachmentSourceFromString(s string) (metadata.RenderTargetAttachmentSource, error) {
	switch s {
	case "default":
		return metadata.RENDER_TARGET_ATTACHMENT_SOURCE_DEFAULT, nil
	case "view":
		return metadata.RENDER_TARGET_ATTACHMENT_SOURCE_VIEW, nil
	default:
		return 0, fmt.Errorf("unknown render target attachment source: %s", s)
	}
}

func attachmentLoadOpFromString(s string) (metadata.RenderTargetAttachmentLoadOperation, error) {
	switch s {
	case "dont_care", "":
		return metadata.RENDER_TARGET_ATTACHMENT_LOAD_OPERATION_DONT_CARE, nil
	case "load":
		return metadata.RENDER_TARGET_ATTACHMENT_LOAD_OPERATION_LOAD, nil
	default:
		return 0, fmt.Errorf("unknown render target attachment load operation: %s", s)
	}
}

func attachmentStoreOpFromString(s string) (metadata.RenderTargetAttachmentStoreOperation, error) {
	switch s {
	case "dont_care", "":
		return metadata.RENDER_TARGET_ATTACHMENT_STORE_OPERATION_DONT_CARE, nil
	case "store":
		return metadata.RENDER_TARGET_ATTACHMENT_STORE_OPERATION_STORE, nil
	default:
		return 0, fmt.Errorf("unknown render target attachment store operation: %s", s)
	}
}

func (config *tmpPassConfig) transformToRenderPassConfig() (*metadata.RenderPassConfig, error) {
	attachments := make([]*metadata.RenderTargetAttachmentConfig, len(config.Attachment))
	for i, a := range config.Attachment {
		t, err := attachmentTypeFromString(a.Type)
		if err != nil {
			return nil, fmt.Errorf("pass '%s': %w", config.Name, err)
		}
		src, err := attachmentSourceFromString(a.Source)
		if err != nil {
			return nil, fmt.Errorf("pass '%s': %w", config.Name, err)
		}
		loadOp, err := attachmentLoadOpFromString(a.LoadOperation)
		if err != nil {
			return nil, fmt.Errorf("pass '%s': %w", config.Name, err)
		}
		storeOp, err := attachmentStoreOpFromString(a.StoreOperation)
		if err != nil {
			return nil, fmt.Errorf("pass '%s': %w", config.Name, err)
		}
		attachments[i] = &metadata.RenderTargetAttachmentConfig{
			RenderTargetAttachmentType: t,
			Source:                     src,
			LoadOperation:              loadOp,
			StoreOperation:             storeOp,
			PresentAfter:               a.PresentAfter,
		}
	}

	return &metadata.RenderPassConfig{
		Name:              config.Name,
		RenderArea:        math.NewVec4Create(config.RenderArea[0], config.RenderArea[1], config.RenderArea[2], config.RenderArea[3]),
		ClearColour:       math.NewVec4Create(config.ClearColour[0], config.ClearColour[1], config.ClearColour[2], config.ClearColour[3]),
		ClearFlags:        metadata.RenderpassClearFlag(config.ClearFlags),
		Depth:             config.Depth,
		Stencil:           config.Stencil,
		RenderTargetCount: config.RenderTargetCount,
		Target:            &metadata.RenderTargetConfig{Attachments: attachments},
	}, nil
}

func (config *tmpViewConfig) transformToViewConfig() ViewConfig {
	return ViewConfig{
		Name:       config.Name,
		Kind:       config.Kind,
		NearClip:   config.NearClip,
		FarClip:    config.FarClip,
		Extent:     config.Extent,
		FOVDegrees: config.FOVDegrees,
		Cascades:   config.Cascades,
	}
}

// LoadRenderGraphConfig reads and decodes a TOML render-graph config file
// at path, the same way engine/assets/loaders.ShaderLoader decodes a
// shader config, and returns the already-validated, renderer-native
// RenderGraphConfig an application passes to its SystemManager wiring.
func LoadRenderGraphConfig(path string) (*RenderGraphConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render graph config: %w", err)
	}

	var tmp tmpRenderGraphConfig
	if err := toml.Unmarshal(data, &tmp); err != nil {
		return nil, fmt.Errorf("render graph config '%s': %w", path, err)
	}
	if err := tmp.Validate(); err != nil {
		return nil, fmt.Errorf("render graph config '%s': %w", path, err)
	}

	passes := make([]*metadata.RenderPassConfig, len(tmp.Pass))
	for i, p := range tmp.Pass {
		rp, err := p.transformToRenderPassConfig()
		if err != nil {
			return nil, err
		}
		passes[i] = rp
	}

	views := make([]ViewConfig, len(tmp.View))
	for i, v := range tmp.View {
		views[i] = v.transformToViewConfig()
	}

	return &RenderGraphConfig{
		Passes:  passes,
		Views:   views,
		Modules: tmp.Modules,
	}, nil
}
