package core

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// BodyKind distinguishes how a body is positioned and drawn
type BodyKind int

const (
	Star BodyKind = iota
	Planet
	Moon
	Ring
)

func (k BodyKind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	case Moon:
		return "moon"
	case Ring:
		return "ring"
	}
	return fmt.Sprintf("BodyKind(%d)", int(k))
}

// CelestialBody is one entry of the orrery. Only OrbitAngle and SpinAngle
// change after creation; both are in degrees and kept in [0, 360).
type CelestialBody struct {
	Name string
	Kind BodyKind

	// Parent names the body this one orbits; empty means the origin
	Parent string

	OrbitRadius float32 // world units
	OrbitAngle  float32 // degrees
	OrbitSpeed  float32 // degrees per frame, signed

	SpinAngle float32    // degrees
	SpinSpeed float32    // degrees per frame, signed
	SpinAxis  mgl32.Vec3 // rotation axis for the spin, need not be normalized

	Scale   float32
	Texture string // image id handed to the texture source

	// Bob lifts the body along y by OrbitRadius*sin(OrbitAngle), which tilts
	// the orbit plane. Used by the moon.
	Bob bool

	// Selectable bodies take part in the selection cycle
	Selectable bool
}

// WrapDegrees folds an angle into [0, 360)
func WrapDegrees(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// OrbitOffset returns the body's displacement from its parent for its
// current orbit angle
func (b *CelestialBody) OrbitOffset() mgl32.Vec3 {
	if b.OrbitRadius == 0 {
		return mgl32.Vec3{}
	}
	rad := mgl32.DegToRad(WrapDegrees(b.OrbitAngle))
	c, s := math32.Cos(rad), math32.Sin(rad)

	off := mgl32.Vec3{b.OrbitRadius * c, 0, b.OrbitRadius * s}
	if b.Bob {
		off[1] = b.OrbitRadius * s
	}
	return off
}

// Spin returns the rotation matrix for the body's current spin angle
func (b *CelestialBody) Spin() mgl32.Mat4 {
	axis := b.SpinAxis
	if axis.Len() == 0 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.HomogRotate3D(mgl32.DegToRad(WrapDegrees(b.SpinAngle)), axis.Normalize())
}
