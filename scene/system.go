package scene

import (
	"fmt"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"orrery/core"
)

// Texture ids used by the solar system besides the per-body ones
const (
	BackgroundTexture = "galaxy_texture"
	DrifterTexture    = "hole_texture"
)

// Default camera and clip planes for the solar system view. The far plane
// has to reach the drifter at z=-70 seen from z=70.
var (
	DefaultEye = mgl32.Vec3{2, 20, 70}
	DefaultUp  = mgl32.Vec3{0, 1, 0}
)

const (
	DefaultFovY float32 = 45
	DefaultNear float32 = 1
	DefaultFar  float32 = 200

	// InitialSelection points at earth
	InitialSelection = 2
)

var markerColor = mgl32.Vec4{1, 1, 1, 0.3}

// SolarSystem composes the orrery into an ordered draw list each frame.
// Frame and Advance must be called from the render goroutine. Selection
// and the pause flag may be changed from anywhere.
type SolarSystem struct {
	System     *core.System
	Selection  *core.Selection
	Camera     Camera
	Projection *Projection

	animator core.Animator
	drifter  *core.Drifter
	paused   atomic.Bool

	calls []DrawCall
}

// NewSolarSystem wraps sys with the default camera and an earth selection
func NewSolarSystem(sys *core.System) (*SolarSystem, error) {
	initial := InitialSelection
	if initial >= sys.SelectableCount() {
		initial = 0
	}
	sel, err := core.NewSelection(sys.SelectableCount(), initial)
	if err != nil {
		return nil, fmt.Errorf("failed to create selection: %w", err)
	}

	return &SolarSystem{
		System:     sys,
		Selection:  sel,
		Camera:     Camera{Eye: DefaultEye, Up: DefaultUp},
		Projection: NewProjection(DefaultFovY, DefaultNear, DefaultFar),
		drifter:    core.NewDrifter(),
		calls:      make([]DrawCall, 0, len(sys.Bodies)+3),
	}, nil
}

// Resize follows the surface size
func (s *SolarSystem) Resize(w, h int) {
	s.Projection.Resize(w, h)
}

// SetPaused freezes or resumes the animation
func (s *SolarSystem) SetPaused(p bool) {
	s.paused.Store(p)
}

func (s *SolarSystem) Paused() bool {
	return s.paused.Load()
}

// Drifter exposes the decorative drifter
func (s *SolarSystem) Drifter() *core.Drifter {
	return s.drifter
}

// Frames counts animation steps taken so far
func (s *SolarSystem) Frames() uint64 {
	return s.animator.Frames()
}

// Selected returns the currently selected body
func (s *SolarSystem) Selected() *core.CelestialBody {
	b, err := s.System.Selectable(s.Selection.Current())
	if err != nil {
		return nil
	}
	return b
}

// MarkerModel places the selection marker around b: twice the body's scale,
// lifted by a quarter of its scale. The moon is small and close to earth,
// so it gets a fixed scale and no lift.
func (s *SolarSystem) MarkerModel(b *core.CelestialBody) mgl32.Mat4 {
	pos := s.System.Position(b)
	scale := 2 * b.Scale
	if b.Kind == core.Moon {
		scale = 0.6
	} else {
		pos[1] += b.Scale / 4
	}
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// DrifterModel places the decorative quad at the drifter's position
func (s *SolarSystem) DrifterModel() mgl32.Mat4 {
	p := s.drifter.Pos
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(35))).
		Mul4(mgl32.Scale3D(4, 4, 4))
}

// Frame returns the draw list for the current state: background, every
// body in system order, the selection marker, then the drifter. Opaque
// calls come before translucent ones. The slice is reused by the next call.
func (s *SolarSystem) Frame() []DrawCall {
	vp := s.Projection.Matrix().Mul4(s.Camera.View())
	calls := s.calls[:0]

	bg := mgl32.Scale3D(20, 40, 1)
	calls = append(calls, DrawCall{
		Kind:    DrawBackground,
		Name:    "background",
		Texture: BackgroundTexture,
		Model:   bg,
		MVP:     vp.Mul4(bg),
	})

	for _, b := range s.System.Bodies {
		kind := DrawSphere
		if b.Kind == core.Ring {
			kind = DrawRing
		}
		m := s.System.Model(b)
		calls = append(calls, DrawCall{
			Kind:      kind,
			Name:      b.Name,
			Texture:   b.Texture,
			Model:     m,
			MVP:       vp.Mul4(m),
			DepthTest: true,
		})
	}

	if sel := s.Selected(); sel != nil {
		m := s.MarkerModel(sel)
		calls = append(calls, DrawCall{
			Kind:      DrawMarker,
			Name:      sel.Name,
			Model:     m,
			MVP:       vp.Mul4(m),
			DepthTest: true,
			Blend:     true,
			Color:     markerColor,
		})
	}

	dm := s.DrifterModel()
	calls = append(calls, DrawCall{
		Kind:      DrawDecoration,
		Name:      "drifter",
		Texture:   DrifterTexture,
		Model:     dm,
		MVP:       vp.Mul4(dm),
		DepthTest: true,
		Blend:     true,
	})

	s.calls = calls
	return calls
}

// Advance steps the animation by one frame unless paused
func (s *SolarSystem) Advance() {
	if s.paused.Load() {
		return
	}
	s.animator.Step(s.System)
	s.drifter.Step()
}

// Textures lists every texture id the frame can reference
func (s *SolarSystem) Textures() []string {
	return append([]string{BackgroundTexture}, append(s.System.Textures(), DrifterTexture)...)
}
