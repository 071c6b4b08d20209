package core

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSphere(t *testing.T) {
	tests := []struct {
		name           string
		stacks, slices int
	}{
		{"minimal", 1, 1},
		{"coarse", 3, 4},
		{"default", 30, 30},
		{"water", 60, 60},
		{"uneven", 7, 13},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := BuildSphere(tc.stacks, tc.slices, 1)
			require.NoError(t, m.Validate())
			assert.Equal(t, TriangleStrip, m.Primitive)
			assert.Nil(t, m.Indices)

			want := 2 * tc.stacks * (tc.slices + 1)
			assert.Equal(t, want, m.VertexCount())
			assert.Equal(t, want*3, len(m.Normals))
			assert.Equal(t, want*2, len(m.TexCoords))

			for v := 0; v < want; v++ {
				nx, ny, nz := m.Normals[v*3], m.Normals[v*3+1], m.Normals[v*3+2]
				assert.InDelta(t, 1.0, math32.Sqrt(nx*nx+ny*ny+nz*nz), 1e-5, "normal %d", v)

				u, tv := m.TexCoords[v*2], m.TexCoords[v*2+1]
				assert.True(t, u >= 0 && u <= 1, "u out of range at %d: %f", v, u)
				assert.True(t, tv >= 0 && tv <= 1, "v out of range at %d: %f", v, tv)
			}
		})
	}
}

func TestBuildSphereRadius(t *testing.T) {
	m := BuildSphere(8, 8, 2.5)
	for v := 0; v < m.VertexCount(); v++ {
		x, y, z := m.Positions[v*3], m.Positions[v*3+1], m.Positions[v*3+2]
		assert.InDelta(t, 2.5, math32.Sqrt(x*x+y*y+z*z), 1e-5)
	}
}

func TestBuildSphereTexCoordLayout(t *testing.T) {
	m := BuildSphere(2, 4, 1)

	// first pair: band 0, longitude 0
	assert.Equal(t, []float32{0, 1, 0, 0.5}, m.TexCoords[0:4])
	// last pair of band 0 closes the seam at u=1
	last := (2*(4+1) - 2) * 2
	assert.Equal(t, []float32{1, 1, 1, 0.5}, m.TexCoords[last:last+4])
	// band 1 starts at v = 1 - 1/2
	band1 := 2 * (4 + 1) * 2
	assert.Equal(t, []float32{0, 0.5, 0, 0}, m.TexCoords[band1:band1+4])
}

func TestBuildSphereDegenerate(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		m := BuildSphere(dims[0], dims[1], 1)
		assert.Equal(t, 0, m.VertexCount())
		assert.NoError(t, m.Validate())
	}
}

func TestBuildRing(t *testing.T) {
	m := BuildRing(3.5, 5, 64)
	require.NoError(t, m.Validate())
	assert.Equal(t, 2*(64+1), m.VertexCount())

	for v := 0; v < m.VertexCount(); v++ {
		x, y, z := m.Positions[v*3], m.Positions[v*3+1], m.Positions[v*3+2]
		d := math32.Sqrt(x*x + y*y)
		assert.GreaterOrEqual(t, d, float32(3.5)-1e-4)
		assert.LessOrEqual(t, d, float32(5)+1e-4)
		assert.Zero(t, z)
	}

	// strip alternates inner, outer
	assert.InDelta(t, 3.5, m.Positions[0], 1e-6)
	assert.InDelta(t, 5.0, m.Positions[3], 1e-6)
}

func TestBuildRingDegenerate(t *testing.T) {
	assert.Equal(t, 0, BuildRing(1, 2, 0).VertexCount())

	inverted := BuildRing(5, 3.5, 8)
	assert.Equal(t, 18, inverted.VertexCount())
	assert.NoError(t, inverted.Validate())
}

func TestBuildQuad(t *testing.T) {
	m := BuildQuad()
	require.NoError(t, m.Validate())
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, TriangleStrip, m.Primitive)
	assert.Equal(t, 4, m.ElementCount())
}

func TestBuildCube(t *testing.T) {
	m := BuildCube()
	require.NoError(t, m.Validate())
	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, 36, len(m.Indices))
	assert.Equal(t, 36, m.ElementCount())
	assert.Equal(t, Triangles, m.Primitive)

	used := make(map[uint16]bool)
	for _, idx := range m.Indices {
		used[idx] = true
	}
	assert.Len(t, used, 8)
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name string
		mesh Mesh
		ok   bool
	}{
		{"empty", Mesh{}, true},
		{"ragged positions", Mesh{Positions: []float32{0, 0}}, false},
		{"short normals", Mesh{Positions: []float32{0, 0, 0, 1, 1, 1}, Normals: []float32{0, 0, 1}}, false},
		{"short texcoords", Mesh{Positions: []float32{0, 0, 0}, TexCoords: []float32{0}}, false},
		{"index past end", Mesh{Positions: []float32{0, 0, 0, 1, 1, 1, 2, 2, 2}, Indices: []uint16{0, 1, 3}, Primitive: Triangles}, false},
		{"partial triangle", Mesh{Positions: []float32{0, 0, 0, 1, 1, 1}, Indices: []uint16{0, 1}, Primitive: Triangles}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.mesh.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
