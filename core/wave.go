package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chewxy/math32"
)

// WaveAxis picks which coordinate drives a travelling wave
type WaveAxis int

const (
	AlongX WaveAxis = iota
	AlongZ
	AlongXZ
)

// Wave is one travelling wave term: amplitude * f(coord*frequency + t*speed)
type Wave struct {
	Axis      WaveAxis
	Cosine    bool
	Frequency float32
	Speed     float32
	Amplitude float32
}

// WaterWaves are the three terms displacing the water sphere. The GLSL of
// the wave shader is generated from this table.
var WaterWaves = [3]Wave{
	{Axis: AlongX, Frequency: 10, Speed: 2, Amplitude: 0.05},
	{Axis: AlongZ, Cosine: true, Frequency: 12, Speed: 1.7, Amplitude: 0.04},
	{Axis: AlongXZ, Frequency: 15, Speed: 2.5, Amplitude: 0.03},
}

// WavePeriod is where the shader clock wraps. sin/cos are continuous, so the
// wrap only shifts the phase.
const WavePeriod = 100 * time.Second

func (w Wave) coord(x, z float32) float32 {
	switch w.Axis {
	case AlongZ:
		return z
	case AlongXZ:
		return x + z
	}
	return x
}

// Eval returns the wave's height contribution at (x, z) and time t seconds
func (w Wave) Eval(x, z, t float32) float32 {
	arg := w.coord(x, z)*w.Frequency + t*w.Speed
	if w.Cosine {
		return math32.Cos(arg) * w.Amplitude
	}
	return math32.Sin(arg) * w.Amplitude
}

// GLSL renders the term as a GLSL expression over the named vec4 position
// and float time
func (w Wave) GLSL(pos, t string) string {
	var coord string
	switch w.Axis {
	case AlongZ:
		coord = pos + ".z"
	case AlongXZ:
		coord = "(" + pos + ".x + " + pos + ".z)"
	default:
		coord = pos + ".x"
	}
	fn := "sin"
	if w.Cosine {
		fn = "cos"
	}
	return fmt.Sprintf("%s(%s * %s + %s * %s) * %s",
		fn, coord, glslFloat(w.Frequency), t, glslFloat(w.Speed), glslFloat(w.Amplitude))
}

// WaveHeight sums WaterWaves at (x, z) for time t. Pure and deterministic,
// it mirrors what the wave vertex shader computes.
func WaveHeight(x, z, t float32) float32 {
	var h float32
	for _, w := range WaterWaves {
		h += w.Eval(x, z, t)
	}
	return h
}

// WaveTime converts a wall clock reading into the shader's time uniform:
// milliseconds modulo WavePeriod, in seconds
func WaveTime(now time.Time) float32 {
	ms := now.UnixMilli() % WavePeriod.Milliseconds()
	if ms < 0 {
		ms += WavePeriod.Milliseconds()
	}
	return float32(ms) / 1000
}

func glslFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
