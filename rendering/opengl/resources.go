package opengl

import (
	"errors"
	"fmt"
	"log/slog"

	"orrery/core"
	"orrery/metrics"
	"orrery/rendering/opengl/shaders"
	"orrery/scene"
)

// Mesh names shared by the renderers
const (
	meshSphere      = "sphere"
	meshWaterSphere = "water-sphere"
	meshRing        = "ring"
	meshQuad        = "quad"
	meshCube        = "cube"
)

// Surface is driven by the Host: created once with a current context,
// resized on framebuffer changes, drawn every frame, released at shutdown
type Surface interface {
	OnSurfaceCreated() error
	OnSurfaceResized(width, height int)
	OnDrawFrame()
	Release()
}

// requirement is what a draw kind needs before it can be drawn
type requirement struct {
	variant  shaders.Variant
	mesh     string
	textured bool
}

var requirements = map[scene.DrawKind]requirement{
	scene.DrawBackground: {shaders.UnlitTextured, meshQuad, true},
	scene.DrawSphere:     {shaders.UnlitTextured, meshSphere, true},
	scene.DrawRing:       {shaders.UnlitTextured, meshRing, true},
	scene.DrawMarker:     {shaders.UnlitColored, meshCube, false},
	scene.DrawDecoration: {shaders.UnlitTextured, meshQuad, true},
	scene.DrawPhong:      {shaders.PhongTextured, meshSphere, true},
	scene.DrawWater:      {shaders.AnimatedWave, meshWaterSphere, false},
}

// meshBuilders makes the CPU side of every named mesh
var meshBuilders = map[string]func() *core.Mesh{
	meshSphere:      func() *core.Mesh { return core.BuildSphere(30, 30, 1) },
	meshWaterSphere: func() *core.Mesh { return core.BuildSphere(60, 60, 1) },
	meshRing:        func() *core.Mesh { return core.BuildRing(3.5, 5, 64) },
	meshQuad:        core.BuildQuad,
	meshCube:        core.BuildCube,
}

// resources owns the GL objects of one renderer and remembers what failed
// so a broken drawable is skipped, and reported, only once
type resources struct {
	log      *slog.Logger
	metrics  *metrics.Collector
	programs map[shaders.Variant]*shaders.Program
	meshes   map[string]*GPUMesh
	textures *TextureCache
	reported map[string]bool
}

func newResources(tc *TextureCache, logger *slog.Logger, m *metrics.Collector) *resources {
	return &resources{
		log:      logger,
		metrics:  m,
		programs: make(map[shaders.Variant]*shaders.Program),
		meshes:   make(map[string]*GPUMesh),
		textures: tc,
		reported: make(map[string]bool),
	}
}

// setup compiles the programs and uploads the meshes and textures the given
// kinds need. Individual failures are logged and counted; the error is only
// returned when none of the kinds can be drawn.
func (r *resources) setup(kinds []scene.DrawKind, textureIDs []string) error {
	var errs []error
	for _, k := range kinds {
		req := requirements[k]
		if _, done := r.programs[req.variant]; !done {
			p, err := shaders.Compile(req.variant)
			if err != nil {
				r.fail("shader", req.variant.String(), err)
				errs = append(errs, err)
				r.programs[req.variant] = nil
			} else {
				r.programs[req.variant] = p
				r.log.Info("shader program compiled", "variant", req.variant)
			}
		}
		if _, done := r.meshes[req.mesh]; !done {
			g, err := UploadMesh(meshBuilders[req.mesh]())
			if err != nil {
				r.fail("mesh", req.mesh, err)
				errs = append(errs, err)
			}
			r.meshes[req.mesh] = g
		}
	}

	for _, id := range textureIDs {
		if err := r.textures.Load(id); err != nil {
			r.fail("texture", id, err)
		}
	}

	for _, k := range kinds {
		if r.ready(k) {
			return nil
		}
	}
	return fmt.Errorf("nothing can be drawn: %w", errors.Join(errs...))
}

func (r *resources) fail(component, name string, err error) {
	r.log.Error("setup failed", "component", component, "name", name, "err", err)
	r.metrics.RecordSetupFailure(component)
}

// ready reports whether program and mesh for k exist
func (r *resources) ready(k scene.DrawKind) bool {
	req, ok := requirements[k]
	if !ok {
		return false
	}
	return r.programs[req.variant] != nil && r.meshes[req.mesh] != nil
}

// texture returns the texture a call needs, or nil after reporting once
func (r *resources) texture(c *scene.DrawCall) *Texture {
	if t := r.textures.Get(c.Texture); t != nil {
		return t
	}
	r.skip(c, "texture "+c.Texture+" missing")
	return nil
}

// skip logs the first time a call is dropped
func (r *resources) skip(c *scene.DrawCall, reason string) {
	r.metrics.RecordSkippedDraw(c.Kind.String())
	key := c.Kind.String() + "/" + c.Name
	if r.reported[key] {
		return
	}
	r.reported[key] = true
	r.log.Warn("skipping draw", "kind", c.Kind, "name", c.Name, "reason", reason)
}

func (r *resources) release() {
	for v, p := range r.programs {
		if p != nil {
			p.Delete()
		}
		delete(r.programs, v)
	}
	for name, m := range r.meshes {
		if m != nil {
			m.Delete()
		}
		delete(r.meshes, name)
	}
	r.textures.Release()
}
