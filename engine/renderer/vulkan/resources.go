package vulkan

import "github.com/spaghettifunk/luthadel/engine/renderer/metadata"

// Resource-level backend operations (textures, geometry, shaders, render
// passes/targets, buffers). The device backend is treated as an external
// collaborator here: these stay no-op stubs until a real graphics backend is
// wired in, but their signatures match what the render-graph hard core
// (engine/systems) actually calls.

func (vr VulkanRenderer) WindowAttachmentIndexGet() uint64 {
	return uint64(vr.context.ImageIndex)
}

func (vr VulkanRenderer) GetWindowAttachmentCount() uint8 {
	if vr.context.Swapchain == nil {
		return 1
	}
	return uint8(len(vr.context.Swapchain.Images))
}

func (vr VulkanRenderer) TextureCreate(pixels []uint8, texture *metadata.Texture) {}

func (vr VulkanRenderer) TextureDestroy(texture *metadata.Texture) error { return nil }

func (vr VulkanRenderer) TextureCreateWriteable(texture *metadata.Texture) error { return nil }

func (vr VulkanRenderer) TextureResize(texture *metadata.Texture, new_width, new_height uint32) {}

func (vr VulkanRenderer) TextureWriteData(texture *metadata.Texture, offset, size uint32, pixels []uint8) {
}

func (vr VulkanRenderer) CreateGeometry(geometry *metadata.Geometry, vertex_size, vertex_count uint32, vertices interface{}, index_size uint32, index_count uint32, indices []uint32) error {
	return nil
}

func (vr VulkanRenderer) DestroyGeometry(geometry *metadata.Geometry) {}

func (vr VulkanRenderer) DrawGeometry(data *metadata.GeometryRenderData) {}

func (vr VulkanRenderer) RenderPassCreate(config *metadata.RenderPassConfig) (*metadata.RenderPass, error) {
	pass := &metadata.RenderPass{
		Name:              config.Name,
		RenderArea:        config.RenderArea,
		ClearColour:       config.ClearColour,
		ClearFlags:        uint8(config.ClearFlags),
		RenderTargetCount: config.RenderTargetCount,
	}
	return pass, nil
}

func (vr VulkanRenderer) RenderPassDestroy(pass *metadata.RenderPass) error { return nil }

func (vr VulkanRenderer) RenderPassBegin(pass *metadata.RenderPass, target *metadata.RenderTarget) error {
	return nil
}

func (vr VulkanRenderer) RenderPassEnd(pass *metadata.RenderPass) error {
	return nil
}

func (vr VulkanRenderer) ShaderCreate(shader *metadata.Shader, config *metadata.ShaderConfig, pass *metadata.RenderPass, stage_count uint8, stage_filenames []string, stages []metadata.ShaderStage) error {
	return nil
}

func (vr VulkanRenderer) ShaderDestroy(shader *metadata.Shader) {}

func (vr VulkanRenderer) ShaderInitialize(shader *metadata.Shader) error { return nil }

func (vr VulkanRenderer) ShaderUse(shader *metadata.Shader) error { return nil }

func (vr VulkanRenderer) ShaderBindGlobals(shader *metadata.Shader) error { return nil }

func (vr VulkanRenderer) ShaderBindInstance(shader *metadata.Shader, instance_id uint32) error {
	return nil
}

func (vr VulkanRenderer) ShaderApplyGlobals(shader *metadata.Shader) error { return nil }

func (vr VulkanRenderer) ShaderApplyInstance(shader *metadata.Shader, needs_update bool) error {
	return nil
}

func (vr VulkanRenderer) ShaderAcquireInstanceResources(shader *metadata.Shader, maps []*metadata.TextureMap) (uint32, error) {
	return 0, nil
}

func (vr VulkanRenderer) ShaderReleaseInstanceResources(shader *metadata.Shader, instance_id uint32) error {
	return nil
}

func (vr VulkanRenderer) SetUniform(shader *metadata.Shader, uniform metadata.ShaderUniform, value interface{}) error {
	return nil
}

func (vr VulkanRenderer) TextureMapAcquireResources(texture_map *metadata.TextureMap) error {
	return nil
}

func (vr VulkanRenderer) TextureMapReleaseResources(texture_map *metadata.TextureMap) {}

func (vr VulkanRenderer) RenderTargetCreate(attachment_count uint8, attachments []*metadata.RenderTargetAttachment, pass *metadata.RenderPass, width, height uint32) (*metadata.RenderTarget, error) {
	return &metadata.RenderTarget{
		AttachmentCount: attachment_count,
		Attachments:     attachments,
		Width:           width,
		Height:          height,
	}, nil
}

func (vr VulkanRenderer) RenderTargetDestroy(target *metadata.RenderTarget, freeInternalMemory bool) error {
	return nil
}

func (vr VulkanRenderer) IsMultithreaded() bool { return false }

func (vr VulkanRenderer) RenderBufferCreate(renderbufferType metadata.RenderBufferType, total_size uint64) (*metadata.RenderBuffer, error) {
	return &metadata.RenderBuffer{RenderBufferType: renderbufferType, TotalSize: total_size}, nil
}

func (vr VulkanRenderer) RenderBufferDestroy(buffer *metadata.RenderBuffer) {}

func (vr VulkanRenderer) RenderBufferBind(buffer *metadata.RenderBuffer, offset uint64) error {
	return nil
}

func (vr VulkanRenderer) RenderBufferUnbind(buffer *metadata.RenderBuffer) bool { return true }

func (vr VulkanRenderer) RenderBufferMapMemory(buffer *metadata.RenderBuffer, offset, size uint64) (interface{}, error) {
	return nil, nil
}

func (vr VulkanRenderer) RenderBufferUnmapMemory(buffer *metadata.RenderBuffer, offset, size uint64) {
}

func (vr VulkanRenderer) RenderBufferFlush(buffer *metadata.RenderBuffer, offset, size uint64) error {
	return nil
}

func (vr VulkanRenderer) RenderBufferRead(buffer *metadata.RenderBuffer, offset, size uint64) (interface{}, error) {
	return nil, nil
}

func (vr VulkanRenderer) RenderBufferResize(buffer *metadata.RenderBuffer, new_total_size uint64) error {
	return nil
}

func (vr VulkanRenderer) RenderBufferLoadRange(buffer *metadata.RenderBuffer, offset, size uint64, data interface{}) error {
	return nil
}

func (vr VulkanRenderer) RenderBufferCopyRange(source *metadata.RenderBuffer, source_offset uint64, dest *metadata.RenderBuffer, dest_offset uint64, size uint64) error {
	return nil
}

func (vr VulkanRenderer) RenderBufferDraw(buffer *metadata.RenderBuffer, offset uint64, element_count uint32, bind_only bool) error {
	return nil
}
