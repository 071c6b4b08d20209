package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orrery/core"
)

func TestTraceSampling(t *testing.T) {
	samples, err := trace(core.DefaultSystem(), 10, 5, []string{"Earth", "Moon"})
	require.NoError(t, err)
	require.Len(t, samples, 6) // frames 0, 5, 10 for two bodies

	assert.Equal(t, uint64(0), samples[0].Frame)
	assert.Equal(t, "Earth", samples[0].Body)
	assert.Equal(t, [3]float32{8, 0, 0}, samples[0].Pos)
	assert.Equal(t, [3]float32{9.5, 0, 0}, samples[1].Pos)

	assert.Equal(t, uint64(10), samples[4].Frame)
	assert.InDelta(t, 6.0, samples[4].Orbit, 1e-4)
}

func TestTraceAllBodies(t *testing.T) {
	samples, err := trace(core.DefaultSystem(), 0, 1, nil)
	require.NoError(t, err)
	assert.Len(t, samples, 11)
}

func TestTraceRejects(t *testing.T) {
	_, err := trace(core.DefaultSystem(), 10, 0, nil)
	assert.Error(t, err)

	_, err = trace(core.DefaultSystem(), 10, 1, []string{"Pluto"})
	assert.Error(t, err)
}
