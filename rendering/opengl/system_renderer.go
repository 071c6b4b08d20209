package opengl

import (
	"log/slog"
	"time"

	"github.com/go-gl/gl/v4.3-core/gl"

	"orrery/metrics"
	"orrery/rendering/opengl/overlay"
	"orrery/rendering/opengl/shaders"
	"orrery/rendering/textures"
	"orrery/scene"
)

var systemKinds = []scene.DrawKind{
	scene.DrawBackground,
	scene.DrawSphere,
	scene.DrawRing,
	scene.DrawMarker,
	scene.DrawDecoration,
}

// SystemRenderer draws the solar system scene and the selection HUD, and
// advances the animation once per frame
type SystemRenderer struct {
	scene   *scene.SolarSystem
	res     *resources
	metrics *metrics.Collector

	textured *TexturedDrawable
	sphere   *TexturedDrawable
	ring     *TexturedDrawable
	marker   *TranslucentCube
	hud      *overlay.HUD
}

func NewSystemRenderer(s *scene.SolarSystem, src textures.Source, logger *slog.Logger, m *metrics.Collector) *SystemRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "renderer", "scene", "system")
	return &SystemRenderer{
		scene:   s,
		res:     newResources(NewTextureCache(src, logger), logger, m),
		metrics: m,
	}
}

func (r *SystemRenderer) OnSurfaceCreated() error {
	gl.ClearColor(0, 0, 0, 1)
	gl.Enable(gl.DEPTH_TEST)

	if err := r.res.setup(systemKinds, r.scene.Textures()); err != nil {
		return err
	}

	unlit := r.res.programs[requirements[scene.DrawSphere].variant]
	if unlit != nil {
		if q := r.res.meshes[meshQuad]; q != nil {
			r.textured = NewTexturedDrawable(unlit, q)
		}
		if s := r.res.meshes[meshSphere]; s != nil {
			r.sphere = NewTexturedDrawable(unlit, s)
		}
		if g := r.res.meshes[meshRing]; g != nil {
			r.ring = NewTexturedDrawable(unlit, g)
		}
	}
	if r.res.ready(scene.DrawMarker) {
		r.marker = NewTranslucentCube(r.res.programs[requirements[scene.DrawMarker].variant], r.res.meshes[meshCube])
	}

	// The scene is usable without the HUD
	hud, err := overlay.NewHUD()
	if err != nil {
		r.res.fail("overlay", shaders.OverlayRect.String(), err)
	} else {
		r.hud = hud
	}
	return nil
}

func (r *SystemRenderer) OnSurfaceResized(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.scene.Resize(width, height)
}

func (r *SystemRenderer) OnDrawFrame() {
	start := time.Now()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	calls := r.scene.Frame()
	drawn := 0
	for i := range calls {
		if r.draw(&calls[i]) {
			drawn++
		}
	}

	if r.hud != nil {
		w, h := r.scene.Projection.Size()
		r.hud.Draw(overlay.SelectionStrip(
			r.scene.System.SelectableCount(), r.scene.Selection.Current(), r.scene.Paused(), w, h), w, h)
	}

	r.scene.Advance()
	r.metrics.RecordFrame(time.Since(start), drawn)
}

func (r *SystemRenderer) draw(c *scene.DrawCall) bool {
	if !c.DepthTest {
		gl.Disable(gl.DEPTH_TEST)
		defer gl.Enable(gl.DEPTH_TEST)
	}

	switch c.Kind {
	case scene.DrawMarker:
		if r.marker == nil {
			r.res.skip(c, "marker program unavailable")
			return false
		}
		r.marker.Draw(c.MVP, c.Color)
		return true
	case scene.DrawBackground, scene.DrawDecoration, scene.DrawSphere, scene.DrawRing:
		d := r.drawableFor(c.Kind)
		if d == nil {
			r.res.skip(c, "drawable unavailable")
			return false
		}
		tex := r.res.texture(c)
		if tex == nil {
			return false
		}
		d.Draw(c.MVP, tex, c.Blend)
		return true
	}
	r.res.skip(c, "not part of the system scene")
	return false
}

func (r *SystemRenderer) drawableFor(k scene.DrawKind) *TexturedDrawable {
	switch k {
	case scene.DrawSphere:
		return r.sphere
	case scene.DrawRing:
		return r.ring
	}
	return r.textured
}

func (r *SystemRenderer) Release() {
	if r.hud != nil {
		r.hud.Delete()
		r.hud = nil
	}
	r.res.release()
}
