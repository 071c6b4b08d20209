package opengl

import (
	"image"
	"log/slog"

	"github.com/go-gl/gl/v4.3-core/gl"

	"orrery/rendering/textures"
)

// Texture is an uploaded 2D RGBA texture
type Texture struct {
	ID     uint32
	Width  int32
	Height int32
}

// UploadTexture copies img into a new texture with linear filtering and no
// mipmaps
func UploadTexture(img *image.RGBA) *Texture {
	t := &Texture{
		Width:  int32(img.Rect.Dx()),
		Height: int32(img.Rect.Dy()),
	}

	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, t.Width, t.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// Bind binds the texture on unit 0
func (t *Texture) Bind() {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// TextureCache uploads each image id once. Ids that failed to load stay
// missing and are not retried.
type TextureCache struct {
	source textures.Source
	log    *slog.Logger
	loaded map[string]*Texture
	failed map[string]error
}

func NewTextureCache(src textures.Source, logger *slog.Logger) *TextureCache {
	return &TextureCache{
		source: src,
		log:    logger,
		loaded: make(map[string]*Texture),
		failed: make(map[string]error),
	}
}

// Load decodes and uploads id unless it was seen before
func (c *TextureCache) Load(id string) error {
	if _, ok := c.loaded[id]; ok {
		return nil
	}
	if err, ok := c.failed[id]; ok {
		return err
	}
	img, err := c.source.Load(id)
	if err != nil {
		c.failed[id] = err
		return err
	}
	c.loaded[id] = UploadTexture(img)
	c.log.Debug("texture uploaded", "id", id, "width", img.Rect.Dx(), "height", img.Rect.Dy())
	return nil
}

// Get returns the texture for id, nil when it never loaded
func (c *TextureCache) Get(id string) *Texture {
	return c.loaded[id]
}

// Release deletes every uploaded texture
func (c *TextureCache) Release() {
	for id, t := range c.loaded {
		t.Delete()
		delete(c.loaded, id)
	}
}
