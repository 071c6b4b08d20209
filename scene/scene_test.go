package scene

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orrery/core"
)

func newTestSystem(t *testing.T) *SolarSystem {
	t.Helper()
	s, err := NewSolarSystem(core.DefaultSystem())
	require.NoError(t, err)
	s.Resize(800, 600)
	return s
}

func TestProjectionAspectOnly(t *testing.T) {
	a := NewProjection(DefaultFovY, DefaultNear, DefaultFar)
	b := NewProjection(DefaultFovY, DefaultNear, DefaultFar)
	a.Resize(800, 600)
	b.Resize(400, 300)
	assert.True(t, a.Matrix().ApproxEqual(b.Matrix()))

	b.Resize(600, 800)
	assert.False(t, a.Matrix().ApproxEqual(b.Matrix()))
}

func TestProjectionClampsZeroSize(t *testing.T) {
	p := NewProjection(DefaultFovY, DefaultNear, DefaultFar)
	p.Resize(640, 0)
	w, h := p.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, float32(640), p.Aspect())

	for _, v := range p.Matrix() {
		assert.False(t, math32.IsNaN(v) || math32.IsInf(v, 0), "matrix is not finite")
	}

	assert.False(t, p.Resize(640, -3), "clamped size is unchanged")
	assert.True(t, p.Resize(0, 0))
	assert.Equal(t, float32(1), p.Aspect())
}

func TestFrameOrder(t *testing.T) {
	s := newTestSystem(t)
	calls := s.Frame()

	var names []string
	for _, c := range calls {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"background", "Sun", "Mercury", "Venus", "Earth", "Moon", "Mars",
		"Jupiter", "Saturn", "Saturn Ring", "Uranus", "Neptune", "Earth", "drifter",
	}, names)

	assert.Equal(t, DrawBackground, calls[0].Kind)
	assert.False(t, calls[0].DepthTest)
	assert.Equal(t, DrawRing, calls[9].Kind)
	assert.Equal(t, DrawMarker, calls[12].Kind)
	assert.Equal(t, DrawDecoration, calls[13].Kind)

	// once a translucent call appears every later one is translucent too
	seenBlend := false
	for _, c := range calls {
		if seenBlend {
			assert.True(t, c.Blend, c.Name)
		}
		seenBlend = seenBlend || c.Blend
	}
}

func TestFrameMatrices(t *testing.T) {
	s := newTestSystem(t)
	vp := s.Projection.Matrix().Mul4(s.Camera.View())

	for _, c := range s.Frame() {
		assert.True(t, c.MVP.ApproxEqualThreshold(vp.Mul4(c.Model), 1e-5), c.Name)
	}

	sun := s.Frame()[1]
	assert.True(t, sun.Model.ApproxEqual(mgl32.Ident4()))
}

func TestMarkerFollowsSelection(t *testing.T) {
	s := newTestSystem(t)
	s.Advance()

	marker := func() DrawCall {
		calls := s.Frame()
		return calls[len(calls)-2]
	}

	earth, _ := s.System.Body("Earth")
	m := marker()
	assert.Equal(t, "Earth", m.Name)
	pos := m.Model.Col(3).Vec3()
	want := s.System.Position(earth)
	assert.InDelta(t, want.X(), pos.X(), 1e-5)
	assert.InDelta(t, want.Y()+earth.Scale/4, pos.Y(), 1e-5)
	assert.InDelta(t, want.Z(), pos.Z(), 1e-5)
	assert.InDelta(t, 2*earth.Scale, m.Model.At(0, 0), 1e-5)
	assert.Equal(t, float32(0.3), m.Color.W())

	s.Selection.SelectNext()
	moon, _ := s.System.Body("Moon")
	m = marker()
	assert.Equal(t, "Moon", m.Name)
	pos = m.Model.Col(3).Vec3()
	want = s.System.Position(moon)
	assert.InDelta(t, want.Y(), pos.Y(), 1e-5)
	assert.InDelta(t, 0.6, m.Model.At(0, 0), 1e-5)
}

func TestAdvanceAndPause(t *testing.T) {
	s := newTestSystem(t)
	mercury, _ := s.System.Body("Mercury")
	startX := s.Drifter().Pos.X()

	s.Advance()
	assert.InDelta(t, 1.2, mercury.OrbitAngle, 1e-6)
	assert.Equal(t, uint64(1), s.Frames())

	s.SetPaused(true)
	assert.True(t, s.Paused())
	for i := 0; i < 10; i++ {
		s.Advance()
	}
	assert.InDelta(t, 1.2, mercury.OrbitAngle, 1e-6)
	assert.InDelta(t, startX+0.05, s.Drifter().Pos.X(), 1e-5)

	s.SetPaused(false)
	s.Advance()
	assert.InDelta(t, 2.4, mercury.OrbitAngle, 1e-5)
}

func TestSolarSystemTextures(t *testing.T) {
	s := newTestSystem(t)
	ids := s.Textures()
	assert.Equal(t, BackgroundTexture, ids[0])
	assert.Equal(t, DrifterTexture, ids[len(ids)-1])
	assert.Len(t, ids, 12)
}

func TestDemoFrame(t *testing.T) {
	d := NewNeptuneDemo()
	d.Now = func() time.Time { return time.UnixMilli(1_700_000_012_345) }
	d.Resize(800, 600)

	c := d.Frame()
	assert.Equal(t, DrawWater, c.Kind)
	assert.InDelta(t, 12.345, c.Time, 1e-4)
	assert.True(t, c.MVP.ApproxEqualThreshold(d.Projection.Matrix().Mul4(c.ModelView), 1e-5))

	// normal matrix undoes the uniform scale of the model
	n := c.NormalMatrix.Mul4(c.ModelView.Transpose())
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, n.At(i, i), 1e-4)
	}

	moon := NewMoonDemo()
	mc := moon.Frame()
	assert.Equal(t, DrawPhong, mc.Kind)
	assert.Equal(t, "moon_texture", mc.Texture)
	assert.Equal(t, mgl32.Vec3{}, mc.CameraPos)
	light := moon.Camera.View().Mul4x1(demoLight.Vec4(1)).Vec3()
	assert.True(t, light.ApproxEqual(mc.LightPos))
}
