package shaders

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// Variant selects one of the fixed vertex/fragment pairs
type Variant int

const (
	UnlitTextured Variant = iota
	UnlitColored
	PhongTextured
	AnimatedWave
	OverlayRect
)

// Variants lists every program variant
var Variants = []Variant{UnlitTextured, UnlitColored, PhongTextured, AnimatedWave, OverlayRect}

func (v Variant) String() string {
	switch v {
	case UnlitTextured:
		return "unlit-textured"
	case UnlitColored:
		return "unlit-colored"
	case PhongTextured:
		return "phong-textured"
	case AnimatedWave:
		return "animated-wave"
	case OverlayRect:
		return "overlay-rect"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Semantic attribute and uniform names. Drawables look locations up by
// these names; the GLSL identifiers behind them are private to the package.
const (
	Position  = "position"
	Normal    = "normal"
	TexCoord  = "texCoord"
	MVP       = "mvpMatrix"
	NormalMat = "normalMatrix"
	ModelView = "modelViewMatrix"
	LightPos  = "lightPos"
	CameraPos = "cameraPos"
	Texture   = "texture"
	Color     = "color"
	Time      = "time"

	// Screen-space rectangles, in pixels with the origin top left
	Offset     = "offset"
	RectSize   = "size"
	ScreenSize = "screenSize"
)

// Program is a linked GL program with its semantic locations resolved
type Program struct {
	Variant Variant
	ID      uint32

	attribs  map[string]uint32
	uniforms map[string]int32
}

// Compile builds the program for v. Compile and link failures come back as
// *CompileError; an attribute or uniform the variant declares but GL does
// not report is also an error.
func Compile(v Variant) (*Program, error) {
	src, ok := sources[v]
	if !ok {
		return nil, fmt.Errorf("unknown shader variant %d", int(v))
	}

	vertShader, err := compileShader(v, src.vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(v, src.fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragShader)

	id, err := linkProgram(v, vertShader, fragShader)
	if err != nil {
		return nil, err
	}

	p := &Program{
		Variant:  v,
		ID:       id,
		attribs:  make(map[string]uint32, len(src.attribs)),
		uniforms: make(map[string]int32, len(src.uniforms)),
	}
	for _, name := range src.attribs {
		loc := gl.GetAttribLocation(id, gl.Str(attribIdent(name)+"\x00"))
		if loc < 0 {
			p.Delete()
			return nil, fmt.Errorf("%s: attribute %q not active", v, name)
		}
		p.attribs[name] = uint32(loc)
	}
	for _, name := range src.uniforms {
		loc := gl.GetUniformLocation(id, gl.Str(uniformIdent(name)+"\x00"))
		if loc < 0 {
			p.Delete()
			return nil, fmt.Errorf("%s: uniform %q not active", v, name)
		}
		p.uniforms[name] = loc
	}
	return p, nil
}

// Use makes the program current
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Attrib returns the location of a semantic attribute
func (p *Program) Attrib(name string) (uint32, bool) {
	loc, ok := p.attribs[name]
	return loc, ok
}

// Uniform returns the location of a semantic uniform, -1 if the variant
// does not declare it. GL ignores uploads to -1.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// Delete releases the GL program
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
