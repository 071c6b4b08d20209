package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray returns the world-space ray under pixel (x, y) of the current surface,
// with y growing downwards as window coordinates do
func (s *SolarSystem) Ray(x, y float64) (origin, dir mgl32.Vec3) {
	w, h := s.Projection.Size()

	// Convert screen coordinates to NDC
	nx := (2.0*float32(x))/float32(w) - 1.0
	ny := 1.0 - (2.0*float32(y))/float32(h)

	invViewProj := s.Projection.Matrix().Mul4(s.Camera.View()).Inv()
	nearWorld := invViewProj.Mul4x1(mgl32.Vec4{nx, ny, -1, 1})
	farWorld := invViewProj.Mul4x1(mgl32.Vec4{nx, ny, 1, 1})

	// Perspective divide
	near := nearWorld.Vec3().Mul(1 / nearWorld.W())
	far := farWorld.Vec3().Mul(1 / farWorld.W())
	return near, far.Sub(near).Normalize()
}

// Pick returns the selection index of the nearest selectable body under
// pixel (x, y). Bodies are treated as spheres of radius Scale.
func (s *SolarSystem) Pick(x, y float64) (int, bool) {
	origin, dir := s.Ray(x, y)

	best, bestT := -1, float32(math32.MaxFloat32)
	for i := 0; i < s.System.SelectableCount(); i++ {
		b, err := s.System.Selectable(i)
		if err != nil {
			continue
		}
		t, hit := raySphereIntersect(origin, dir, s.System.Position(b), b.Scale)
		if hit && t < bestT {
			best, bestT = i, t
		}
	}
	return best, best >= 0
}

// raySphereIntersect returns the distance along dir to the closest
// non-negative intersection with the sphere
func raySphereIntersect(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	b := 2.0 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - 4*a*c

	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math32.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2.0 * a)
	t1 := (-b + sqrtD) / (2.0 * a)

	// Use the closer positive intersection
	t := t0
	if t < 0 {
		t = t1
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}
