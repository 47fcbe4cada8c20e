package renderer

import (
	"github.com/spaghettifunk/luthadel/engine/assets"
	"github.com/spaghettifunk/luthadel/engine/core"
	"github.com/spaghettifunk/luthadel/engine/platform"
	"github.com/spaghettifunk/luthadel/engine/renderer/metadata"
	"github.com/spaghettifunk/luthadel/engine/renderer/vulkan"
)

type RendererType uint8

const (
	Vulkan RendererType = iota
	DirectX
	Metal
	OpenGL
)

// Renderer is the process-wide backend handle the package-singleton
// repositories (texture and geometry systems) call through, using the same
// sync.Once package-state pattern those two systems use, while the
// shader/render-view systems hold their own *RendererSystem instance
// (engine/systems/renderer.go).
type Renderer struct {
	backend RendererBackend

	AppName   string
	AppWidth  uint32
	AppHeight uint32
	Platform  *platform.Platform
}

func NewRenderer(appName string, appWidth, appHeight uint32, platform *platform.Platform, am *assets.AssetManager) (*Renderer, error) {
	renderer := &Renderer{
		backend:   vulkan.New(platform, am),
		AppName:   appName,
		AppWidth:  appWidth,
		AppHeight: appHeight,
		Platform:  platform,
	}
	SetDefault(renderer)
	return renderer, nil
}

func (r *Renderer) Initialize() error {
	var windowRenderTargetCount uint8
	return r.backend.Initialize(&metadata.RendererBackendConfig{ApplicationName: r.AppName}, &windowRenderTargetCount)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdow()
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	return r.backend.BeginFrame(deltaTime)
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	return r.backend.EndFrame(deltaTime)
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) DrawFrame(renderPacket *metadata.RenderPacket) error {
	if err := r.BeginFrame(renderPacket.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := r.EndFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}

func (r *Renderer) TextureCreate(pixels []uint8, texture *metadata.Texture) {
	r.backend.TextureCreate(pixels, texture)
}

func (r *Renderer) TextureDestroy(texture *metadata.Texture) {
	if err := r.backend.TextureDestroy(texture); err != nil {
		core.LogError(err.Error())
	}
}

func (r *Renderer) TextureCreateWriteable(texture *metadata.Texture) {
	if err := r.backend.TextureCreateWriteable(texture); err != nil {
		core.LogError(err.Error())
	}
}

func (r *Renderer) TextureResize(texture *metadata.Texture, new_width, new_height uint32) {
	r.backend.TextureResize(texture, new_width, new_height)
}

func (r *Renderer) TextureWriteData(texture *metadata.Texture, offset, size uint32, pixels []uint8) {
	r.backend.TextureWriteData(texture, offset, size, pixels)
}

func (r *Renderer) CreateGeometry(geometry *metadata.Geometry, vertex_size, vertex_count uint32, vertices interface{}, index_size uint32, index_count uint32, indices []uint32) bool {
	return r.backend.CreateGeometry(geometry, vertex_size, vertex_count, vertices, index_size, index_count, indices) == nil
}

func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	r.backend.DestroyGeometry(geometry)
}

func (r *Renderer) DrawGeometry(data *metadata.GeometryRenderData) {
	r.backend.DrawGeometry(data)
}

// defaultRenderer is the process-wide renderer instance the package-singleton
// repositories (texture, geometry systems) call into, matching the
// package-singleton pattern those systems use (engine/systems/texture.go,
// engine/systems/geometry.go hold sync.Once state rather than an injected
// instance).
var defaultRenderer *Renderer

// SetDefault installs the renderer instance used by the package-level free
// functions below. Called once during application startup.
func SetDefault(r *Renderer) { defaultRenderer = r }

// TextureCreate is the package-level entry point used by the texture
// repository (engine/systems/texture.go).
func TextureCreate(pixels []uint8, texture *metadata.Texture) {
	if defaultRenderer == nil {
		return
	}
	defaultRenderer.TextureCreate(pixels, texture)
}

func TextureDestroy(texture *metadata.Texture) {
	if defaultRenderer == nil {
		return
	}
	defaultRenderer.TextureDestroy(texture)
}

func TextureCreateWriteable(texture *metadata.Texture) {
	if defaultRenderer == nil {
		return
	}
	defaultRenderer.TextureCreateWriteable(texture)
}

func TextureResize(texture *metadata.Texture, new_width, new_height uint32) {
	if defaultRenderer == nil {
		return
	}
	defaultRenderer.TextureResize(texture, new_width, new_height)
}

func TextureWriteData(texture *metadata.Texture, offset, size uint32, pixels []uint8) {
	if defaultRenderer == nil {
		return
	}
	defaultRenderer.TextureWriteData(texture, offset, size, pixels)
}

// CreateGeometry is the package-level entry point used by the geometry
// repository (engine/systems/geometry.go).
func CreateGeometry(geometry *metadata.Geometry, vertex_size, vertex_count uint32, vertices interface{}, index_size uint32, index_count uint32, indices []uint32) bool {
	if defaultRenderer == nil {
		return false
	}
	return defaultRenderer.CreateGeometry(geometry, vertex_size, vertex_count, vertices, index_size, index_count, indices)
}

func DestroyGeometry(geometry *metadata.Geometry) {
	if defaultRenderer == nil {
		return
	}
	defaultRenderer.DestroyGeometry(geometry)
}

func (r *Renderer) RenderPassCreate(config *metadata.RenderPassConfig) (*metadata.RenderPass, error) {
	return r.backend.RenderPassCreate(config)
}

func (r *Renderer) RenderPassDestroy(pass *metadata.RenderPass) {
	if err := r.backend.RenderPassDestroy(pass); err != nil {
		core.LogError(err.Error())
	}
}

func (r *Renderer) RenderPassBegin(pass *metadata.RenderPass, target *metadata.RenderTarget) bool {
	return r.backend.RenderPassBegin(pass, target) == nil
}

func (r *Renderer) RenderPassEnd(pass *metadata.RenderPass) bool {
	return r.backend.RenderPassEnd(pass) == nil
}

func (r *Renderer) ShaderCreate(shader *metadata.Shader, config *metadata.ShaderConfig, pass *metadata.RenderPass, stage_count uint8, stage_filenames []string, stages []metadata.ShaderStage) bool {
	return r.backend.ShaderCreate(shader, config, pass, stage_count, stage_filenames, stages) == nil
}

func (r *Renderer) ShaderDestroy(shader *metadata.Shader) {
	r.backend.ShaderDestroy(shader)
}

func (r *Renderer) ShaderInitialize(shader *metadata.Shader) bool {
	return r.backend.ShaderInitialize(shader) == nil
}

func (r *Renderer) ShaderUse(shader *metadata.Shader) bool {
	return r.backend.ShaderUse(shader) == nil
}

func (r *Renderer) ShaderBindGlobals(shader *metadata.Shader) bool {
	return r.backend.ShaderBindGlobals(shader) == nil
}

func (r *Renderer) ShaderBindInstance(shader *metadata.Shader, instance_id uint32) bool {
	return r.backend.ShaderBindInstance(shader, instance_id) == nil
}

func (r *Renderer) ShaderApplyGlobals(shader *metadata.Shader) bool {
	return r.backend.ShaderApplyGlobals(shader) == nil
}

func (r *Renderer) ShaderApplyInstance(shader *metadata.Shader, needs_update bool) bool {
	return r.backend.ShaderApplyInstance(shader, needs_update) == nil
}

func (r *Renderer) ShaderAcquireInstanceResources(shader *metadata.Shader, maps []*metadata.TextureMap) (out_instance_id uint32) {
	id, _ := r.backend.ShaderAcquireInstanceResources(shader, maps)
	return id
}

func (r *Renderer) ShaderReleaseInstanceResources(shader *metadata.Shader, instance_id uint32) bool {
	return r.backend.ShaderReleaseInstanceResources(shader, instance_id) == nil
}

func (r *Renderer) SetUniform(shader *metadata.Shader, uniform metadata.ShaderUniform, value interface{}) bool {
	return r.backend.SetUniform(shader, uniform, value) == nil
}

func (r *Renderer) TextureMapAcquireResources(texture_map *metadata.TextureMap) bool {
	return r.backend.TextureMapAcquireResources(texture_map) == nil
}

func (r *Renderer) TextureMapReleaseResources(texture_map *metadata.TextureMap) {
	r.backend.TextureMapReleaseResources(texture_map)
}

func (r *Renderer) RenderTargetCreate(attachment_count uint8, attachments []*metadata.RenderTargetAttachment, pass *metadata.RenderPass, width, height uint32) (out_target *metadata.RenderTarget) {
	out_target, _ = r.backend.RenderTargetCreate(attachment_count, attachments, pass, width, height)
	return out_target
}

func (r *Renderer) RenderTargetDestroy(target *metadata.RenderTarget) {
	if err := r.backend.RenderTargetDestroy(target, true); err != nil {
		core.LogError(err.Error())
	}
}

func (r *Renderer) IsMultithreaded() bool { return r.backend.IsMultithreaded() }

func (r *Renderer) RenderBufferCreate(renderbufferType metadata.RenderBufferType, total_size uint64, use_freelist bool) *metadata.RenderBuffer {
	buf, _ := r.backend.RenderBufferCreate(renderbufferType, total_size)
	return buf
}

func (r *Renderer) RenderBufferDestroy(buffer *metadata.RenderBuffer) {
	r.backend.RenderBufferDestroy(buffer)
}

func (r *Renderer) RenderBufferBind(buffer *metadata.RenderBuffer, offset uint64) bool {
	return r.backend.RenderBufferBind(buffer, offset) == nil
}

func (r *Renderer) RenderBufferUnbind(buffer *metadata.RenderBuffer) bool {
	return r.backend.RenderBufferUnbind(buffer)
}

func (r *Renderer) RenderBufferMapMemory(buffer *metadata.RenderBuffer, offset, size uint64) interface{} {
	data, _ := r.backend.RenderBufferMapMemory(buffer, offset, size)
	return data
}

func (r *Renderer) RenderBufferUnmapMemory(buffer *metadata.RenderBuffer, offset, size uint64) {
	r.backend.RenderBufferUnmapMemory(buffer, offset, size)
}

func (r *Renderer) RenderBufferFlush(buffer *metadata.RenderBuffer, offset, size uint64) bool {
	return r.backend.RenderBufferFlush(buffer, offset, size) == nil
}

func (r *Renderer) RenderBufferRead(buffer *metadata.RenderBuffer, offset, size uint64) (out_memory []interface{}) {
	data, _ := r.backend.RenderBufferRead(buffer, offset, size)
	if arr, ok := data.([]interface{}); ok {
		return arr
	}
	return nil
}

func (r *Renderer) RenderBufferResize(buffer *metadata.RenderBuffer, new_total_size uint64) bool {
	return r.backend.RenderBufferResize(buffer, new_total_size) == nil
}

func (r *Renderer) RenderBufferAllocate(buffer *metadata.RenderBuffer, size uint64) (out_offset uint64) {
	if buffer != nil {
		buffer.Buffer = make([]interface{}, size)
	}
	return 0
}

func (r *Renderer) RenderBufferFree(buffer *metadata.RenderBuffer, size, offset uint64) bool {
	if buffer == nil {
		return false
	}
	if offset+size > uint64(len(buffer.Buffer)) {
		size = uint64(len(buffer.Buffer)) - offset
	}
	for i := offset; i < offset+size; i++ {
		buffer.Buffer[i] = nil
	}
	return true
}

func (r *Renderer) RenderBufferLoadRange(buffer *metadata.RenderBuffer, offset, size uint64, data interface{}) bool {
	return r.backend.RenderBufferLoadRange(buffer, offset, size, data) == nil
}

func (r *Renderer) RenderBufferCopyRange(source *metadata.RenderBuffer, source_offset uint64, dest *metadata.RenderBuffer, dest_offset uint64, size uint64) bool {
	return r.backend.RenderBufferCopyRange(source, source_offset, dest, dest_offset, size) == nil
}

func (r *Renderer) RenderBufferDraw(buffer *metadata.RenderBuffer, offset uint64, element_count uint32, bind_only bool) bool {
	return r.backend.RenderBufferDraw(buffer, offset, element_count, bind_only) == nil
}
