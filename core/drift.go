package core

import "github.com/go-gl/mathgl/mgl32"

// Drifter moves a decorative object in a straight line and snaps it back to
// Reset once it passes Bound on the x axis, which makes a looping parallax
// effect behind the orrery.
type Drifter struct {
	Pos      mgl32.Vec3
	Velocity mgl32.Vec3 // units per frame
	Bound    float32
	Reset    mgl32.Vec3
}

// NewDrifter returns the drifter used behind the solar system
func NewDrifter() *Drifter {
	return &Drifter{
		Pos:      mgl32.Vec3{-30, 0, -70},
		Velocity: mgl32.Vec3{0.05, 0.01, 0},
		Bound:    30,
		Reset:    mgl32.Vec3{-40, -5, -70},
	}
}

// Step advances one frame
func (d *Drifter) Step() {
	d.Pos = d.Pos.Add(d.Velocity)
	if d.Pos.X() > d.Bound {
		d.Pos = d.Reset
	}
}
