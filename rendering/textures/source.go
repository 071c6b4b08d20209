package textures

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrNotFound = errors.New("texture not found")

// Source resolves a texture id to decoded pixels. Rows are top to bottom,
// which is the order GL expects for the sphere texture coordinates.
type Source interface {
	Load(id string) (*image.RGBA, error)
}

// Extensions tried in order for each id
var Extensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp"}

// DirSource loads <id>.<ext> files from a file system
type DirSource struct {
	FS fs.FS
}

// NewDirSource reads textures from a directory on disk
func NewDirSource(dir string) *DirSource {
	return &DirSource{FS: os.DirFS(dir)}
}

// Load decodes the first file matching id and converts it to RGBA
func (d *DirSource) Load(id string) (*image.RGBA, error) {
	if !fs.ValidPath(id) {
		return nil, fmt.Errorf("invalid texture id %q", id)
	}
	for _, ext := range Extensions {
		f, err := d.FS.Open(id + ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open texture %s: %w", id+ext, err)
		}

		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode texture %s: %w", id+ext, err)
		}
		return ToRGBA(img), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ToRGBA returns img as a zero-origin RGBA, copying when needed
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
