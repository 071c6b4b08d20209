package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// project returns the pixel a world point lands on
func project(s *SolarSystem, p mgl32.Vec3) (float64, float64) {
	w, h := s.Projection.Size()
	clip := s.Projection.Matrix().Mul4(s.Camera.View()).Mul4x1(p.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return float64((ndc.X() + 1) / 2 * float32(w)), float64((1 - ndc.Y()) / 2 * float32(h))
}

func TestRaySphereIntersect(t *testing.T) {
	tests := []struct {
		name   string
		origin mgl32.Vec3
		dir    mgl32.Vec3
		hit    bool
		t      float32
	}{
		{"head on", mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1}, true, 9},
		{"miss", mgl32.Vec3{0, 5, 10}, mgl32.Vec3{0, 0, -1}, false, 0},
		{"behind", mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 1}, false, 0},
		{"inside", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, true, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, hit := raySphereIntersect(tc.origin, tc.dir, mgl32.Vec3{}, 1)
			assert.Equal(t, tc.hit, hit)
			if tc.hit {
				assert.InDelta(t, tc.t, d, 1e-4)
			}
		})
	}
}

func TestPickProjectedBodies(t *testing.T) {
	s := newTestSystem(t)

	for _, name := range []string{"Mercury", "Earth", "Moon", "Jupiter", "Neptune"} {
		t.Run(name, func(t *testing.T) {
			b, ok := s.System.Body(name)
			require.True(t, ok)
			x, y := project(s, s.System.Position(b))

			idx, ok := s.Pick(x, y)
			require.True(t, ok)
			picked, err := s.System.Selectable(idx)
			require.NoError(t, err)
			assert.Equal(t, name, picked.Name)
		})
	}
}

func TestPickMisses(t *testing.T) {
	s := newTestSystem(t)

	// the sun is not selectable
	x, y := project(s, mgl32.Vec3{})
	_, ok := s.Pick(x, y)
	assert.False(t, ok)

	_, ok = s.Pick(1, 1)
	assert.False(t, ok)
}

func TestRayPassesThroughTarget(t *testing.T) {
	s := newTestSystem(t)
	x, y := project(s, mgl32.Vec3{})
	origin, dir := s.Ray(x, y)

	// the ray from the middle of the sun points from the eye at the origin
	want := mgl32.Vec3{}.Sub(s.Camera.Eye).Normalize()
	assert.True(t, dir.ApproxEqualThreshold(want, 1e-3), "%v vs %v", dir, want)
	assert.InDelta(t, 1.0, dir.Len(), 1e-5)
	assert.Less(t, origin.Sub(s.Camera.Eye).Len(), float32(1.5))
}
