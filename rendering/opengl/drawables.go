package opengl

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"orrery/rendering/opengl/shaders"
)

// withBlend runs draw with src-alpha / one-minus-src-alpha blending and
// turns blending back off afterwards
func withBlend(draw func()) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	draw()
	gl.Disable(gl.BLEND)
}

// TexturedDrawable draws a mesh with the unlit textured program. It backs
// the body spheres, saturn's ring, the background and the drifter quad.
type TexturedDrawable struct {
	program *shaders.Program
	mesh    *GPUMesh
}

func NewTexturedDrawable(p *shaders.Program, mesh *GPUMesh) *TexturedDrawable {
	return &TexturedDrawable{program: p, mesh: mesh}
}

func (d *TexturedDrawable) Draw(mvp mgl32.Mat4, tex *Texture, blend bool) {
	draw := func() {
		d.program.Use()
		tex.Bind()
		gl.Uniform1i(d.program.Uniform(shaders.Texture), 0)
		gl.UniformMatrix4fv(d.program.Uniform(shaders.MVP), 1, false, &mvp[0])
		d.mesh.Draw(d.program)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	if blend {
		withBlend(draw)
		return
	}
	draw()
}

// TranslucentCube is the selection marker: a flat colored cube
type TranslucentCube struct {
	program *shaders.Program
	mesh    *GPUMesh
}

func NewTranslucentCube(p *shaders.Program, mesh *GPUMesh) *TranslucentCube {
	return &TranslucentCube{program: p, mesh: mesh}
}

func (d *TranslucentCube) Draw(mvp mgl32.Mat4, color mgl32.Vec4) {
	withBlend(func() {
		d.program.Use()
		gl.UniformMatrix4fv(d.program.Uniform(shaders.MVP), 1, false, &mvp[0])
		gl.Uniform4fv(d.program.Uniform(shaders.Color), 1, &color[0])
		d.mesh.Draw(d.program)
	})
}

// PhongSphere is a textured sphere lit in view space
type PhongSphere struct {
	program *shaders.Program
	mesh    *GPUMesh
}

func NewPhongSphere(p *shaders.Program, mesh *GPUMesh) *PhongSphere {
	return &PhongSphere{program: p, mesh: mesh}
}

func (d *PhongSphere) Draw(mvp, modelView, normalMatrix mgl32.Mat4, lightPos, cameraPos mgl32.Vec3, tex *Texture) {
	p := d.program
	p.Use()
	tex.Bind()
	gl.Uniform1i(p.Uniform(shaders.Texture), 0)
	gl.UniformMatrix4fv(p.Uniform(shaders.MVP), 1, false, &mvp[0])
	gl.UniformMatrix4fv(p.Uniform(shaders.ModelView), 1, false, &modelView[0])
	gl.UniformMatrix4fv(p.Uniform(shaders.NormalMat), 1, false, &normalMatrix[0])
	gl.Uniform3fv(p.Uniform(shaders.LightPos), 1, &lightPos[0])
	gl.Uniform3fv(p.Uniform(shaders.CameraPos), 1, &cameraPos[0])
	d.mesh.Draw(p)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// WaterSphere is an untextured sphere displaced by travelling waves
type WaterSphere struct {
	program *shaders.Program
	mesh    *GPUMesh
}

func NewWaterSphere(p *shaders.Program, mesh *GPUMesh) *WaterSphere {
	return &WaterSphere{program: p, mesh: mesh}
}

// Draw renders the water at wave time seconds
func (d *WaterSphere) Draw(mvp mgl32.Mat4, seconds float32) {
	d.program.Use()
	gl.UniformMatrix4fv(d.program.Uniform(shaders.MVP), 1, false, &mvp[0])
	gl.Uniform1f(d.program.Uniform(shaders.Time), seconds)
	d.mesh.Draw(d.program)
}
