package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"orrery/core"
)

// Demo is a single sphere close up: the Phong-lit moon or the water-covered
// neptune. The model is fixed, only the clock moves.
type Demo struct {
	Kind       DrawKind
	Name       string
	Texture    string
	Camera     Camera
	Projection *Projection
	Model      mgl32.Mat4

	// Light is in world space and moved into view space per frame
	Light mgl32.Vec3

	// Now feeds the wave clock; replaced in tests
	Now func() time.Time
}

var (
	demoEye   = mgl32.Vec3{2, 5, 2}
	demoLight = mgl32.Vec3{5, 8, 5}
)

func newDemo(kind DrawKind, name, texture string) *Demo {
	return &Demo{
		Kind:       kind,
		Name:       name,
		Texture:    texture,
		Camera:     Camera{Eye: demoEye, Up: DefaultUp},
		Projection: NewProjection(DefaultFovY, DefaultNear, DefaultFar),
		Model: mgl32.HomogRotate3DY(mgl32.DegToRad(40)).
			Mul4(mgl32.Scale3D(1.5, 1.5, 1.5)),
		Light: demoLight,
		Now:   time.Now,
	}
}

// NewMoonDemo lights a textured moon with the Phong program
func NewMoonDemo() *Demo {
	return newDemo(DrawPhong, "Moon", "moon_texture")
}

// NewNeptuneDemo covers neptune with animated water
func NewNeptuneDemo() *Demo {
	return newDemo(DrawWater, "Neptune", "neptune_texture")
}

func (d *Demo) Resize(w, h int) {
	d.Projection.Resize(w, h)
}

// Frame computes the single draw call for the demo
func (d *Demo) Frame() DrawCall {
	view := d.Camera.View()
	mv := view.Mul4(d.Model)
	light := view.Mul4x1(d.Light.Vec4(1)).Vec3()

	return DrawCall{
		Kind:         d.Kind,
		Name:         d.Name,
		Texture:      d.Texture,
		Model:        d.Model,
		MVP:          d.Projection.Matrix().Mul4(mv),
		DepthTest:    true,
		ModelView:    mv,
		NormalMatrix: NormalMatrix(mv),
		LightPos:     light,
		// the eye sits at the view-space origin
		CameraPos: mgl32.Vec3{},
		Time:      core.WaveTime(d.Now()),
	}
}
