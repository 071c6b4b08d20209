package core

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Primitive selects how a mesh's vertices are assembled into triangles
type Primitive int

const (
	// TriangleStrip meshes are drawn without an index buffer
	TriangleStrip Primitive = iota
	// Triangles meshes are drawn as an indexed triangle list
	Triangles
)

func (p Primitive) String() string {
	switch p {
	case TriangleStrip:
		return "triangle-strip"
	case Triangles:
		return "triangles"
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// Mesh holds the CPU side of a piece of geometry. Normals and TexCoords are
// optional, but when present they describe the same vertices as Positions.
// A Mesh is built once at surface creation and never modified afterwards.
type Mesh struct {
	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex
	TexCoords []float32 // 2 per vertex
	Indices   []uint16
	Primitive Primitive
}

// VertexCount returns the number of vertices described by Positions
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// ElementCount returns how many elements a draw call has to issue
func (m *Mesh) ElementCount() int {
	if m.Primitive == Triangles {
		return len(m.Indices)
	}
	return m.VertexCount()
}

// Validate checks the parallel-array invariants before the mesh is uploaded
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(m.Positions))
	}
	n := m.VertexCount()
	if m.Normals != nil && len(m.Normals) != n*3 {
		return fmt.Errorf("normals describe %d vertices, positions %d", len(m.Normals)/3, n)
	}
	if m.TexCoords != nil && len(m.TexCoords) != n*2 {
		return fmt.Errorf("texcoords describe %d vertices, positions %d", len(m.TexCoords)/2, n)
	}
	if m.Primitive == Triangles {
		if len(m.Indices)%3 != 0 {
			return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
		}
		for i, idx := range m.Indices {
			if int(idx) >= n {
				return fmt.Errorf("index %d references vertex %d of %d", i, idx, n)
			}
		}
	}
	return nil
}

// BuildRing generates a flat annulus in the XY plane as a triangle strip of
// alternating inner/outer vertices. The strip closes on itself, so it holds
// 2*(segments+1) vertices. Inner >= outer radius yields a degenerate ring.
func BuildRing(innerRadius, outerRadius float32, segments int) *Mesh {
	m := &Mesh{Primitive: TriangleStrip}
	if segments < 1 {
		return m
	}

	n := 2 * (segments + 1)
	m.Positions = make([]float32, 0, n*3)
	m.Normals = make([]float32, 0, n*3)
	m.TexCoords = make([]float32, 0, n*2)

	for k := 0; k <= segments; k++ {
		u := float32(k) / float32(segments)
		angle := u * 2 * math32.Pi
		c, s := math32.Cos(angle), math32.Sin(angle)

		m.Positions = append(m.Positions,
			c*innerRadius, s*innerRadius, 0,
			c*outerRadius, s*outerRadius, 0)
		m.Normals = append(m.Normals, 0, 0, 1, 0, 0, 1)
		m.TexCoords = append(m.TexCoords, u, 0, u, 1)
	}
	return m
}

// BuildQuad returns the [-1,1] plane at z=0 used for the background and
// decorative billboards. Texture rows are stored top-down, hence the flipped v.
func BuildQuad() *Mesh {
	return &Mesh{
		Positions: []float32{
			-1, -1, 0,
			1, -1, 0,
			-1, 1, 0,
			1, 1, 0,
		},
		Normals: []float32{
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
		},
		TexCoords: []float32{
			0, 1,
			1, 1,
			0, 0,
			1, 0,
		},
		Primitive: TriangleStrip,
	}
}

// BuildCube returns the unit cube used for the selection marker:
// 8 shared corners and 12 indexed triangles
func BuildCube() *Mesh {
	return &Mesh{
		Positions: []float32{
			-0.5, 0.5, 0.5,
			-0.5, -0.5, 0.5,
			0.5, -0.5, 0.5,
			0.5, 0.5, 0.5,

			-0.5, 0.5, -0.5,
			-0.5, -0.5, -0.5,
			0.5, -0.5, -0.5,
			0.5, 0.5, -0.5,
		},
		Indices: []uint16{
			0, 1, 2, 0, 2, 3, // front
			4, 5, 6, 4, 6, 7, // back
			0, 3, 7, 0, 7, 4, // top
			1, 2, 6, 1, 6, 5, // bottom
			0, 1, 5, 0, 5, 4, // left
			3, 2, 6, 3, 6, 7, // right
		},
		Primitive: Triangles,
	}
}
