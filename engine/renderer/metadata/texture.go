package metadata

/** @brief The texture system configuration */
type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

const (
	/** @brief The default texture name. */
	DEFAULT_TEXTURE_NAME string = "default"
	/** @brief The default diffuse texture name. */
	DEFAULT_DIFFUSE_TEXTURE_NAME string = "default_DIFF"
	/** @brief The default specular texture name. */
	DEFAULT_SPECULAR_TEXTURE_NAME string = "default_SPEC"
	/** @brief The default normal texture name. */
	DEFAULT_NORMAL_TEXTURE_NAME string = "default_NORM"
)

/** @brief The maximum length of a texture name. */
const TextureNameMaxLength int = 512

/** @brief Represents the kind of a texture. */
type TextureType int

const (
	/** @brief A standard two-dimensional texture. */
	TextureType2d TextureType = iota
	/** @brief A cube texture, used for cubemaps. */
	TextureTypeCube
	/** @brief A texture that is the colour/depth attachment of a render target. */
	TextureTypeRenderTarget
	/** @brief An F-ary texture, one instance per frame in flight; see PackedTexture below. */
	TextureTypePacked
)

type TextureFlag int

const (
	/** @brief Indicates if the texture has transparency. */
	TextureFlagHasTransparency TextureFlag = 0x1
	/** @brief Indicates if the texture can be written (rendered) to. */
	TextureFlagIsWriteable TextureFlag = 0x2
	/** @brief Indicates if the texture was created via wrapping vs traditional creation. */
	TextureFlagIsWrapped TextureFlag = 0x4
	/** @brief Indicates if the texture has mipmaps generated. */
	TextureFlagIsMipmapped TextureFlag = 0x8
)

/** @brief Holds bit flags for textures. */
type TextureFlagBits uint8

/**
 * @brief Represents a texture: a backend image object with the attributes
 * width, height, channel count, mip/transparency/writable flags, and kind.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uint32
	/** @brief The texture kind. */
	TextureType TextureType
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The texture Name. */
	Name string
	/** @brief The raw texture data (pixels). */
	InternalData interface{}

	// renderTargetFrame tracks the frame number this render-target texture
	// was last transitioned for, making TransitionRenderTarget idempotent
	// within a frame.
	renderTargetFrame uint64
	hasTransitioned   bool
}

// IsWriteable reports whether this texture's flags mark it as a render
// target / writable attachment.
func (t *Texture) IsWriteable() bool {
	return t.Flags&TextureFlagBits(TextureFlagIsWriteable) != 0
}

// HasTransparency reports whether this texture's flags mark it as
// containing transparent texels.
func (t *Texture) HasTransparency() bool {
	return t.Flags&TextureFlagBits(TextureFlagHasTransparency) != 0
}

// TransitionRenderTarget marks a render-target texture as ready to be
// sampled for frameNo. Idempotent within a frame: calling it more than once
// for the same frameNo is a no-op.
func (t *Texture) TransitionRenderTarget(frameNo uint64) bool {
	if t.hasTransitioned && t.renderTargetFrame == frameNo {
		return false
	}
	t.renderTargetFrame = frameNo
	t.hasTransitioned = true
	return true
}

// PackedTexture wraps one texture per frame-in-flight: an F-ary array of
// textures indexed by frame_number mod F.
type PackedTexture struct {
	Name   string
	Frames []*Texture
}

// NewPackedTexture allocates a packed texture with room for framesInFlight
// per-frame textures; callers fill in Frames[i] via the backend.
func NewPackedTexture(name string, framesInFlight int) *PackedTexture {
	return &PackedTexture{
		Name:   name,
		Frames: make([]*Texture, framesInFlight),
	}
}

// GetAt selects the active per-frame texture for frameIndex mod F.
func (p *PackedTexture) GetAt(frameIndex uint64) *Texture {
	if len(p.Frames) == 0 {
		return nil
	}
	return p.Frames[int(frameIndex)%len(p.Frames)]
}

/** @brief A collection of texture uses */
type TextureUse int

const (
	/** @brief An unknown use. This is default, but should never actually be used. */
	TextureUseUnknown TextureUse = 0x00
	/** @brief The texture is used as a diffuse map. */
	TextureUseMapDiffuse TextureUse = 0x01
	/** @brief The texture is used as a specular map. */
	TextureUseMapSpecular TextureUse = 0x02
	/** @brief The texture is used as a normal map. */
	TextureUseMapNormal TextureUse = 0x03
	/** @brief The texture is used as a cube map. */
	TextureUseMapCubemap TextureUse = 0x04
	/** @brief The texture is sampled from a prior pass's render target. */
	TextureUseMapRenderTarget TextureUse = 0x05
)

/** @brief Supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering. */
	TextureFilterModeLinear TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
	TextureRepeatClampToBorder  TextureRepeat = 0x4
)

/**
 * @brief A structure which binds a texture to sampler settings: use tag,
 * min/mag filters, and U/V/W repeat modes.
 */
type TextureMap struct {
	/** @brief A pointer to a Texture. */
	Texture *Texture
	/** @brief The Use of the texture */
	Use TextureUse
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilter
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	RepeatU TextureRepeat
	/** @brief The repeat mode on the V axis (or Y, or T) */
	RepeatV TextureRepeat
	/** @brief The repeat mode on the W axis (or Z, or U) */
	RepeatW TextureRepeat
	/** @brief A pointer to internal, render API-specific data. Typically the internal sampler. */
	InternalData interface{}
}
