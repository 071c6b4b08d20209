package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orrery/core"
	"orrery/rendering/opengl/shaders"
	"orrery/scene"
)

func TestEveryDrawKindHasRequirement(t *testing.T) {
	for k := scene.DrawBackground; k <= scene.DrawWater; k++ {
		req, ok := requirements[k]
		require.True(t, ok, "no requirement for %s", k)
		_, ok = meshBuilders[req.mesh]
		assert.True(t, ok, "%s needs unknown mesh %q", k, req.mesh)
	}
}

func TestMeshBuildersValidate(t *testing.T) {
	for name, build := range meshBuilders {
		t.Run(name, func(t *testing.T) {
			m := build()
			require.NoError(t, m.Validate())
			assert.Positive(t, m.VertexCount())
		})
	}
	assert.Equal(t, 2*60*61, meshBuilders[meshWaterSphere]().VertexCount())
}

func TestRequirementsMatchProgramInputs(t *testing.T) {
	for k, req := range requirements {
		attribs, uniforms := shaders.Declared(req.variant)
		mesh := meshBuilders[req.mesh]()

		// every attribute the program reads must be present in the mesh
		for _, a := range attribs {
			switch a {
			case shaders.Normal:
				assert.NotEmpty(t, mesh.Normals, "%s: mesh %s has no normals", k, req.mesh)
			case shaders.TexCoord:
				assert.NotEmpty(t, mesh.TexCoords, "%s: mesh %s has no texcoords", k, req.mesh)
			}
		}
		assert.Equal(t, req.textured, contains(uniforms, shaders.Texture), k.String())
	}
}

func TestMarkerUsesIndexedCube(t *testing.T) {
	req := requirements[scene.DrawMarker]
	assert.Equal(t, shaders.UnlitColored, req.variant)
	assert.Equal(t, core.Triangles, meshBuilders[req.mesh]().Primitive)
}

func TestSystemKindsCoverFrame(t *testing.T) {
	s, err := scene.NewSolarSystem(core.DefaultSystem())
	require.NoError(t, err)
	for _, c := range s.Frame() {
		assert.Contains(t, systemKinds, c.Kind)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
