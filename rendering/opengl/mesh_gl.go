package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"

	"orrery/core"
	"orrery/rendering/opengl/shaders"
)

// GPUMesh is a mesh uploaded to vertex buffers. Attribute pointers are set
// per draw because each program resolves its own locations.
type GPUMesh struct {
	vao       uint32
	ebo       uint32
	buffers   [3]uint32 // position, normal, texCoord
	sizes     [3]int32  // components per vertex, 0 when absent
	count     int32
	primitive core.Primitive
}

var meshAttribs = [3]string{shaders.Position, shaders.Normal, shaders.TexCoord}

// UploadMesh validates m and copies it into GL buffers
func UploadMesh(m *core.Mesh) (*GPUMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("mesh upload: %w", err)
	}

	g := &GPUMesh{
		count:     int32(m.ElementCount()),
		primitive: m.Primitive,
	}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	data := [3][]float32{m.Positions, m.Normals, m.TexCoords}
	comps := [3]int32{3, 3, 2}
	for i, d := range data {
		if len(d) == 0 {
			continue
		}
		gl.GenBuffers(1, &g.buffers[i])
		gl.BindBuffer(gl.ARRAY_BUFFER, g.buffers[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(d)*4, gl.Ptr(d), gl.STATIC_DRAW)
		g.sizes[i] = comps[i]
	}

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*2, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return g, nil
}

// Draw issues the draw for the attributes the program declares and the
// mesh carries. Attributes are enabled for the draw only.
func (g *GPUMesh) Draw(p *shaders.Program) {
	if g.count == 0 {
		return
	}
	gl.BindVertexArray(g.vao)

	var enabled [3]uint32
	n := 0
	for i, name := range meshAttribs {
		loc, ok := p.Attrib(name)
		if !ok || g.sizes[i] == 0 {
			continue
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, g.buffers[i])
		gl.VertexAttribPointerWithOffset(loc, g.sizes[i], gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(loc)
		enabled[n] = loc
		n++
	}

	if g.primitive == core.Triangles {
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.count, gl.UNSIGNED_SHORT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, g.count)
	}

	for _, loc := range enabled[:n] {
		gl.DisableVertexAttribArray(loc)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Delete frees the buffers and vertex array
func (g *GPUMesh) Delete() {
	for i := range g.buffers {
		if g.buffers[i] != 0 {
			gl.DeleteBuffers(1, &g.buffers[i])
			g.buffers[i] = 0
		}
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}
