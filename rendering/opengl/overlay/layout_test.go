package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionStripHighlightsSelected(t *testing.T) {
	rects := SelectionStrip(9, 2, false, 1280, 720)
	require.Len(t, rects, 10)

	panel := rects[0]
	assert.Equal(t, panelColor, panel.Color)
	assert.InDelta(t, 1280/2, panel.X+panel.W/2, 1e-3, "panel is centred")
	assert.InDelta(t, 720-margin, panel.Y+panel.H, 1e-3)

	for i, c := range rects[1:] {
		if i == 2 {
			assert.Equal(t, selectedColor, c.Color)
		} else {
			assert.Equal(t, cellColor, c.Color, "cell %d", i)
		}
		assert.Equal(t, float32(cellSize), c.W)
		assert.True(t, inside(c, panel), "cell %d outside panel", i)
	}
	assert.Less(t, rects[1].X, rects[2].X)
}

func TestSelectionStripPaused(t *testing.T) {
	running := SelectionStrip(3, 0, false, 800, 600)
	paused := SelectionStrip(3, 0, true, 800, 600)
	require.Len(t, paused, len(running)+2)
	assert.Equal(t, running, paused[:len(running)])

	for _, bar := range paused[len(running):] {
		assert.Equal(t, pauseColor, bar.Color)
		assert.Equal(t, float32(margin), bar.Y)
	}
}

func TestSelectionStripShrinksOnNarrowScreens(t *testing.T) {
	rects := SelectionStrip(9, 8, false, 200, 100)
	require.Len(t, rects, 10)

	panel := rects[0]
	assert.GreaterOrEqual(t, panel.X, float32(0))
	assert.LessOrEqual(t, panel.X+panel.W, float32(200))
	assert.Less(t, rects[1].W, float32(cellSize))
	assert.Equal(t, selectedColor, rects[9].Color)
}

func TestSelectionStripEmpty(t *testing.T) {
	assert.Empty(t, SelectionStrip(0, 0, false, 800, 600))
	assert.Len(t, SelectionStrip(0, 0, true, 800, 600), 2)
}

func inside(r, outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.W <= outer.X+outer.W+1e-3 && r.Y+r.H <= outer.Y+outer.H+1e-3
}
