package overlay

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"orrery/rendering/opengl/shaders"
)

// HUD draws colored rectangles over the scene
type HUD struct {
	program *shaders.Program
	vao     uint32
}

// NewHUD compiles the rectangle program. It needs a current GL context.
func NewHUD() (*HUD, error) {
	p, err := shaders.Compile(shaders.OverlayRect)
	if err != nil {
		return nil, err
	}

	h := &HUD{program: p}
	// Core profile refuses to draw without a bound VAO, even an empty one
	gl.GenVertexArrays(1, &h.vao)
	return h, nil
}

// Draw fills rects in order on a screen of the given size, blended and
// without depth testing. GL state is restored afterwards.
func (h *HUD) Draw(rects []Rect, screenW, screenH int) {
	if len(rects) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	h.program.Use()
	gl.BindVertexArray(h.vao)
	gl.Uniform2f(h.program.Uniform(shaders.ScreenSize), float32(screenW), float32(screenH))

	for _, r := range rects {
		gl.Uniform2f(h.program.Uniform(shaders.Offset), r.X, r.Y)
		gl.Uniform2f(h.program.Uniform(shaders.RectSize), r.W, r.H)
		gl.Uniform4f(h.program.Uniform(shaders.Color), r.Color[0], r.Color[1], r.Color[2], r.Color[3])
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Delete releases the program and VAO
func (h *HUD) Delete() {
	h.program.Delete()
	if h.vao != 0 {
		gl.DeleteVertexArrays(1, &h.vao)
		h.vao = 0
	}
}
