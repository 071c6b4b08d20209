package overlay

// Rect is a filled screen rectangle in pixels, origin top left
type Rect struct {
	X, Y, W, H float32
	Color      [4]float32
}

// Strip geometry in pixels
const (
	cellSize = 28
	cellGap  = 6
	padding  = 8
	margin   = 16
	minCell  = 2

	pauseBarWidth  = 8
	pauseBarHeight = 28
	pauseBarGap    = 6
)

var (
	panelColor    = [4]float32{0, 0, 0, 0.5}
	cellColor     = [4]float32{1, 1, 1, 0.25}
	selectedColor = [4]float32{1, 0.85, 0.3, 0.9}
	pauseColor    = [4]float32{1, 1, 1, 0.8}
)

// SelectionStrip lays out the selection HUD: a panel centred at the bottom
// of the screen holding one cell per selectable body, with the selected
// cell highlighted, plus two pause bars in the top left corner while the
// animation is paused. Cells shrink to keep the strip on narrow screens.
func SelectionStrip(n, selected int, paused bool, screenW, screenH int) []Rect {
	var rects []Rect

	if n > 0 {
		cell := float32(cellSize)
		avail := float32(screenW) - 2*margin - 2*padding - float32(n-1)*cellGap
		if fit := avail / float32(n); fit < cell {
			cell = fit
		}
		if cell < minCell {
			cell = minCell
		}

		panelW := float32(n)*cell + float32(n-1)*cellGap + 2*padding
		panelH := cell + 2*padding
		x := (float32(screenW) - panelW) / 2
		y := float32(screenH) - margin - panelH

		rects = append(rects, Rect{X: x, Y: y, W: panelW, H: panelH, Color: panelColor})
		for i := 0; i < n; i++ {
			c := cellColor
			if i == selected {
				c = selectedColor
			}
			rects = append(rects, Rect{
				X:     x + padding + float32(i)*(cell+cellGap),
				Y:     y + padding,
				W:     cell,
				H:     cell,
				Color: c,
			})
		}
	}

	if paused {
		rects = append(rects,
			Rect{X: margin, Y: margin, W: pauseBarWidth, H: pauseBarHeight, Color: pauseColor},
			Rect{X: margin + pauseBarWidth + pauseBarGap, Y: margin, W: pauseBarWidth, H: pauseBarHeight, Color: pauseColor},
		)
	}
	return rects
}
