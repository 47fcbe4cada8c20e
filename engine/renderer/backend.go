package renderer

import "github.com/spaghettifunk/luthadel/engine/renderer/metadata"

type RendererBackend interface {
	Initialize(config *metadata.RendererBackendConfig, windowRenderTargetCount *uint8) error
	Shutdow() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	WindowAttachmentIndexGet() uint64
	GetWindowAttachmentCount() uint8
	TextureCreate(pixels []uint8, texture *metadata.Texture)
	TextureDestroy(texture *metadata.Texture) error
	TextureCreateWriteable(texture *metadata.Texture) error
	TextureResize(texture *metadata.Texture, new_width, new_height uint32)
	TextureWriteData(texture *metadata.Texture, offset, size uint32, pixels []uint8)
	CreateGeometry(geometry *metadata.Geometry, vertex_size, vertex_count uint32, vertices interface{}, index_size uint32, index_count uint32, indices []uint32) error
	DestroyGeometry(geometry *metadata.Geometry)
	DrawGeometry(data *metadata.GeometryRenderData)
	RenderPassCreate(config *metadata.RenderPassConfig) (*metadata.RenderPass, error)
	RenderPassDestroy(pass *metadata.RenderPass) error
	RenderPassBegin(pass *metadata.RenderPass, target *metadata.RenderTarget) error
	RenderPassEnd(pass *metadata.RenderPass) error
	ShaderCreate(shader *metadata.Shader, config *metadata.ShaderConfig, pass *metadata.RenderPass, stage_count uint8, stage_filenames []string, stages []metadata.ShaderStage) error
	ShaderDestroy(shader *metadata.Shader)
	ShaderInitialize(shader *metadata.Shader) error
	ShaderUse(shader *metadata.Shader) error
	ShaderBindGlobals(shader *metadata.Shader) error
	ShaderBindInstance(shader *metadata.Shader, instance_id uint32) error
	ShaderApplyGlobals(shader *metadata.Shader) error
	ShaderApplyInstance(shader *metadata.Shader, needs_update bool) error
	ShaderAcquireInstanceResources(shader *metadata.Shader, maps []*metadata.TextureMap) (uint32, error)
	ShaderReleaseInstanceResources(shader *metadata.Shader, instance_id uint32) error
	SetUniform(shader *metadata.Shader, uniform metadata.ShaderUniform, value interface{}) error
	TextureMapAcquireResources(texture_map *metadata.TextureMap) error
	TextureMapReleaseResources(texture_map *metadata.TextureMap)
	RenderTargetCreate(attachment_count uint8, attachments []*metadata.RenderTargetAttachment, pass *metadata.RenderPass, width, height uint32) (*metadata.RenderTarget, error)
	RenderTargetDestroy(target *metadata.RenderTarget, freeInternalMemory bool) error
	IsMultithreaded() bool
	RenderBufferCreate(renderbufferType metadata.RenderBufferType, total_size uint64) (*metadata.RenderBuffer, error)
	RenderBufferDestroy(buffer *metadata.RenderBuffer)
	RenderBufferBind(buffer *metadata.RenderBuffer, offset uint64) error
	RenderBufferUnbind(buffer *metadata.RenderBuffer) bool
	RenderBufferMapMemory(buffer *metadata.RenderBuffer, offset, size uint64) (interface{}, error)
	RenderBufferUnmapMemory(buffer *metadata.RenderBuffer, offset, size uint64)
	RenderBufferFlush(buffer *metadata.RenderBuffer, offset, size uint64) error
	RenderBufferRead(buffer *metadata.RenderBuffer, offset, size uint64) (interface{}, error)
	RenderBufferResize(buffer *metadata.RenderBuffer, new_total_size uint64) error
	RenderBufferLoadRange(buffer *metadata.RenderBuffer, offset, size uint64, data interface{}) error
	RenderBufferCopyRange(source *metadata.RenderBuffer, source_offset uint64, dest *metadata.RenderBuffer, dest_offset uint64, size uint64) error
	RenderBufferDraw(buffer *metadata.RenderBuffer, offset uint64, element_count uint32, bind_only bool) error
}
