package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawKind says which drawable a DrawCall targets
type DrawKind int

const (
	DrawBackground DrawKind = iota
	DrawSphere
	DrawRing
	DrawMarker
	DrawDecoration
	DrawPhong
	DrawWater
)

func (k DrawKind) String() string {
	switch k {
	case DrawBackground:
		return "background"
	case DrawSphere:
		return "sphere"
	case DrawRing:
		return "ring"
	case DrawMarker:
		return "marker"
	case DrawDecoration:
		return "decoration"
	case DrawPhong:
		return "phong"
	case DrawWater:
		return "water"
	}
	return fmt.Sprintf("DrawKind(%d)", int(k))
}

// DrawCall is one entry of a frame's draw list. Which of the optional
// fields matter depends on Kind.
type DrawCall struct {
	Kind    DrawKind
	Name    string
	Texture string

	Model mgl32.Mat4
	MVP   mgl32.Mat4

	// DepthTest false draws the call with the depth test disabled
	DepthTest bool
	// Blend wraps the draw in src-alpha / one-minus-src-alpha blending
	Blend bool
	Color mgl32.Vec4

	// Lighting inputs, all in view space
	ModelView    mgl32.Mat4
	NormalMatrix mgl32.Mat4
	LightPos     mgl32.Vec3
	CameraPos    mgl32.Vec3

	// Time is the wave clock in seconds
	Time float32
}
