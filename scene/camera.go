package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a fixed look-at camera
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
}

// View returns the world-to-view matrix
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection is a perspective projection whose aspect ratio follows the
// surface size. Field of view and clip planes never change.
type Projection struct {
	FovY float32 // degrees
	Near float32
	Far  float32

	width, height int
	matrix        mgl32.Mat4
}

// NewProjection returns a projection for a 1x1 surface until the first Resize
func NewProjection(fovY, near, far float32) *Projection {
	p := &Projection{FovY: fovY, Near: near, Far: far}
	p.Resize(1, 1)
	return p
}

// Resize recomputes the matrix for a surface of w x h pixels. Dimensions
// below one pixel are clamped so a collapsed surface never divides by zero.
// It reports whether the size actually changed.
func (p *Projection) Resize(w, h int) bool {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	changed := w != p.width || h != p.height
	p.width, p.height = w, h
	p.matrix = mgl32.Perspective(mgl32.DegToRad(p.FovY), p.Aspect(), p.Near, p.Far)
	return changed
}

// Aspect is width over height of the current surface
func (p *Projection) Aspect() float32 {
	return float32(p.width) / float32(p.height)
}

// Size returns the clamped surface size last passed to Resize
func (p *Projection) Size() (int, int) {
	return p.width, p.height
}

// Matrix returns the current projection matrix
func (p *Projection) Matrix() mgl32.Mat4 {
	return p.matrix
}

// NormalMatrix is the inverse-transpose of a model-view matrix, used to
// carry normals into view space under non-uniform scaling
func NormalMatrix(modelView mgl32.Mat4) mgl32.Mat4 {
	return modelView.Inv().Transpose()
}
