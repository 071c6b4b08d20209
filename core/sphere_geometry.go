package core

import (
	"github.com/chewxy/math32"
)

// BuildSphere generates a UV sphere laid out for triangle-strip drawing.
// Each latitude band i emits, for every longitude step j in [0, slices],
// the vertex on the band's lower edge followed by the one on its upper edge,
// giving 2*stacks*(slices+1) vertices and no index buffer. The seam and the
// poles are duplicated rather than welded.
//
// Latitude runs from -pi/2 to pi/2 along the z axis.
func BuildSphere(stacks, slices int, radius float32) *Mesh {
	m := &Mesh{Primitive: TriangleStrip}
	if stacks < 1 || slices < 1 {
		return m
	}

	n := 2 * stacks * (slices + 1)
	m.Positions = make([]float32, 0, n*3)
	m.Normals = make([]float32, 0, n*3)
	m.TexCoords = make([]float32, 0, n*2)

	for i := 0; i < stacks; i++ {
		lat0 := math32.Pi * (-0.5 + float32(i)/float32(stacks))
		sin0, cos0 := math32.Sin(lat0), math32.Cos(lat0)

		lat1 := math32.Pi * (-0.5 + float32(i+1)/float32(stacks))
		sin1, cos1 := math32.Sin(lat1), math32.Cos(lat1)

		v0 := 1 - float32(i)/float32(stacks)
		v1 := 1 - float32(i+1)/float32(stacks)

		for j := 0; j <= slices; j++ {
			u := float32(j) / float32(slices)
			lng := 2 * math32.Pi * u
			x, y := math32.Cos(lng), math32.Sin(lng)

			// Lower edge of the band
			m.Positions = append(m.Positions, x*cos0*radius, y*cos0*radius, sin0*radius)
			m.Normals = append(m.Normals, x*cos0, y*cos0, sin0)
			m.TexCoords = append(m.TexCoords, u, v0)

			// Upper edge
			m.Positions = append(m.Positions, x*cos1*radius, y*cos1*radius, sin1*radius)
			m.Normals = append(m.Normals, x*cos1, y*cos1, sin1)
			m.TexCoords = append(m.TexCoords, u, v1)
		}
	}

	return m
}
