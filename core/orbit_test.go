package core

import (
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimatorStep(t *testing.T) {
	s := DefaultSystem()
	var a Animator

	a.Step(s)
	mercury, _ := s.Body("Mercury")
	venus, _ := s.Body("Venus")
	sun, _ := s.Body("Sun")
	assert.InDelta(t, 1.2, mercury.OrbitAngle, 1e-6)
	assert.InDelta(t, 0.5, mercury.SpinAngle, 1e-6)
	assert.InDelta(t, 359.5, venus.SpinAngle, 1e-4)
	neptune, _ := s.Body("Neptune")
	assert.InDelta(t, 0.5, neptune.SpinAngle, 1e-6, "neptune spins with the other planets")
	assert.Zero(t, sun.OrbitAngle)
	assert.Equal(t, uint64(1), a.Frames())

	for i := 0; i < 299; i++ {
		a.Step(s)
	}
	// 300 frames * 1.2 = 360 -> back to the start
	assert.InDelta(t, 0, mgl32.Abs(mercury.OrbitAngle-180)-180, 0.05)
	for _, b := range s.Bodies {
		assert.True(t, b.OrbitAngle >= 0 && b.OrbitAngle < 360, b.Name)
		assert.True(t, b.SpinAngle >= 0 && b.SpinAngle < 360, b.Name)
	}
}

func TestSelectionCycle(t *testing.T) {
	const n = 9
	for start := 0; start < n; start++ {
		sel, err := NewSelection(n, start)
		require.NoError(t, err)

		sel.SelectNext()
		assert.Equal(t, start, sel.SelectPrevious(), "next then previous from %d", start)

		sel.SelectPrevious()
		assert.Equal(t, start, sel.SelectNext(), "previous then next from %d", start)

		for i := 0; i < n; i++ {
			sel.SelectNext()
		}
		assert.Equal(t, start, sel.Current(), "N nexts from %d", start)
	}
}

func TestSelectionWraps(t *testing.T) {
	sel, err := NewSelection(9, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, sel.SelectPrevious())
	assert.Equal(t, 0, sel.SelectNext())

	_, err = sel.Set(8)
	require.NoError(t, err)
	assert.Equal(t, 0, sel.SelectNext())

	_, err = sel.Set(9)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 0, sel.Current())
}

func TestNewSelectionRejects(t *testing.T) {
	_, err := NewSelection(0, 0)
	assert.Error(t, err)
	_, err = NewSelection(3, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSelectionConcurrentWriters(t *testing.T) {
	sel, err := NewSelection(9, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 900; i++ {
				sel.SelectNext()
			}
		}()
	}
	wg.Wait()
	// 7200 steps is a multiple of 9
	assert.Equal(t, 2, sel.Current())
}

func TestDrifterResets(t *testing.T) {
	d := NewDrifter()
	start := d.Pos

	d.Step()
	assert.InDelta(t, start.X()+0.05, d.Pos.X(), 1e-5)
	assert.InDelta(t, start.Y()+0.01, d.Pos.Y(), 1e-5)

	for i := 0; i < 2000 && d.Pos.X() > -39; i++ {
		d.Step()
	}
	assert.Equal(t, d.Reset, d.Pos)
	assert.Equal(t, float32(-70), d.Pos.Z())
}

func TestWaveHeightDeterministic(t *testing.T) {
	points := [][3]float32{
		{0, 0, 0},
		{0.3, 0.7, 12.5},
		{-0.9, 0.1, 99.999},
	}
	for _, p := range points {
		first := WaveHeight(p[0], p[1], p[2])
		for i := 0; i < 100; i++ {
			assert.Equal(t, first, WaveHeight(p[0], p[1], p[2]))
		}
		assert.LessOrEqual(t, mgl32.Abs(first), float32(0.05+0.04+0.03))
	}
}

func TestWaveHeightTerms(t *testing.T) {
	// at the origin and t=0 only the cosine term contributes
	assert.InDelta(t, 0.04, WaveHeight(0, 0, 0), 1e-6)
}

func TestWaveTime(t *testing.T) {
	base := time.UnixMilli(1_700_000_012_345)
	assert.InDelta(t, 12.345, WaveTime(base), 1e-4)
	assert.Equal(t, WaveTime(base), WaveTime(base.Add(WavePeriod)))
	assert.Less(t, WaveTime(base.Add(87_654*time.Millisecond)), float32(100))
}

func TestWaveGLSL(t *testing.T) {
	assert.Equal(t, "sin(p.x * 10.0 + t * 2.0) * 0.05", WaterWaves[0].GLSL("p", "t"))
	assert.Equal(t, "cos(p.z * 12.0 + t * 1.7) * 0.04", WaterWaves[1].GLSL("p", "t"))
	assert.Equal(t, "sin((p.x + p.z) * 15.0 + t * 2.5) * 0.03", WaterWaves[2].GLSL("p", "t"))
}
