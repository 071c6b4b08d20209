package opengl

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-gl/gl/v4.3-core/gl"

	"orrery/metrics"
	"orrery/rendering/textures"
	"orrery/scene"
)

// DemoRenderer draws one of the close-up demo spheres
type DemoRenderer struct {
	demo    *scene.Demo
	res     *resources
	metrics *metrics.Collector

	phong *PhongSphere
	water *WaterSphere
}

// NewMoonRenderer shows the Phong-lit moon
func NewMoonRenderer(src textures.Source, logger *slog.Logger, m *metrics.Collector) *DemoRenderer {
	return newDemoRenderer(scene.NewMoonDemo(), src, logger, m)
}

// NewNeptuneRenderer shows the water-covered neptune
func NewNeptuneRenderer(src textures.Source, logger *slog.Logger, m *metrics.Collector) *DemoRenderer {
	return newDemoRenderer(scene.NewNeptuneDemo(), src, logger, m)
}

func newDemoRenderer(d *scene.Demo, src textures.Source, logger *slog.Logger, m *metrics.Collector) *DemoRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "renderer", "scene", d.Name)
	return &DemoRenderer{
		demo:    d,
		res:     newResources(NewTextureCache(src, logger), logger, m),
		metrics: m,
	}
}

func (r *DemoRenderer) OnSurfaceCreated() error {
	gl.ClearColor(0, 0, 0, 1)
	gl.Enable(gl.DEPTH_TEST)

	var texIDs []string
	if requirements[r.demo.Kind].textured {
		texIDs = []string{r.demo.Texture}
	}
	if err := r.res.setup([]scene.DrawKind{r.demo.Kind}, texIDs); err != nil {
		return err
	}

	req := requirements[r.demo.Kind]
	p, mesh := r.res.programs[req.variant], r.res.meshes[req.mesh]
	switch r.demo.Kind {
	case scene.DrawPhong:
		r.phong = NewPhongSphere(p, mesh)
	case scene.DrawWater:
		r.water = NewWaterSphere(p, mesh)
	default:
		return errors.New("demo kind has no drawable")
	}
	return nil
}

func (r *DemoRenderer) OnSurfaceResized(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.demo.Resize(width, height)
}

func (r *DemoRenderer) OnDrawFrame() {
	start := time.Now()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	c := r.demo.Frame()
	drawn := 0
	switch {
	case r.phong != nil:
		if tex := r.res.texture(&c); tex != nil {
			r.phong.Draw(c.MVP, c.ModelView, c.NormalMatrix, c.LightPos, c.CameraPos, tex)
			drawn++
		}
	case r.water != nil:
		r.water.Draw(c.MVP, c.Time)
		drawn++
	}
	r.metrics.RecordFrame(time.Since(start), drawn)
}

func (r *DemoRenderer) Release() {
	r.res.release()
}
