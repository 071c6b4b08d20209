package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// System is the ordered set of bodies. Order is draw order, and a parent
// always precedes the bodies that orbit it.
type System struct {
	Bodies []*CelestialBody

	byName     map[string]*CelestialBody
	selectable []*CelestialBody
}

// NewSystem copies the given bodies into a System after checking names and
// parent references
func NewSystem(bodies []CelestialBody) (*System, error) {
	s := &System{
		Bodies: make([]*CelestialBody, 0, len(bodies)),
		byName: make(map[string]*CelestialBody, len(bodies)),
	}

	for i := range bodies {
		b := bodies[i]
		if b.Name == "" {
			return nil, fmt.Errorf("body %d has no name", i)
		}
		if _, dup := s.byName[b.Name]; dup {
			return nil, fmt.Errorf("duplicate body %q", b.Name)
		}
		if b.Parent != "" {
			if _, ok := s.byName[b.Parent]; !ok {
				return nil, fmt.Errorf("body %q: parent %q must be listed before it", b.Name, b.Parent)
			}
		}
		b.OrbitAngle = WrapDegrees(b.OrbitAngle)
		b.SpinAngle = WrapDegrees(b.SpinAngle)

		s.Bodies = append(s.Bodies, &b)
		s.byName[b.Name] = &b
		if b.Selectable {
			s.selectable = append(s.selectable, &b)
		}
	}
	return s, nil
}

// Body looks a body up by name
func (s *System) Body(name string) (*CelestialBody, bool) {
	b, ok := s.byName[name]
	return b, ok
}

// Position returns the body's current world position. Children are placed
// relative to their parent's current position, so the moon follows earth.
func (s *System) Position(b *CelestialBody) mgl32.Vec3 {
	var origin mgl32.Vec3
	if b.Parent != "" {
		if p, ok := s.byName[b.Parent]; ok {
			origin = s.Position(p)
		}
	}
	return origin.Add(b.OrbitOffset())
}

// Model composes translate * spin * scale for the body's current state
func (s *System) Model(b *CelestialBody) mgl32.Mat4 {
	pos := s.Position(b)
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(b.Spin()).
		Mul4(mgl32.Scale3D(b.Scale, b.Scale, b.Scale))
}

// SelectableCount is the number of bodies in the selection cycle
func (s *System) SelectableCount() int {
	return len(s.selectable)
}

// Selectable returns the i-th body of the selection cycle
func (s *System) Selectable(i int) (*CelestialBody, error) {
	if i < 0 || i >= len(s.selectable) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.selectable))
	}
	return s.selectable[i], nil
}

// SelectableNames lists the selection cycle in order
func (s *System) SelectableNames() []string {
	names := make([]string, len(s.selectable))
	for i, b := range s.selectable {
		names[i] = b.Name
	}
	return names
}

// Textures returns each distinct texture id once, in draw order
func (s *System) Textures() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, b := range s.Bodies {
		if b.Texture == "" || seen[b.Texture] {
			continue
		}
		seen[b.Texture] = true
		ids = append(ids, b.Texture)
	}
	return ids
}

// DefaultBodies is the orrery as drawn by the solar system scene:
// sun, the eight planets with the moon after earth and saturn's ring after
// saturn. Speeds are per frame.
func DefaultBodies() []CelestialBody {
	up := mgl32.Vec3{0, 1, 0}
	return []CelestialBody{
		{Name: "Sun", Kind: Star, Scale: 1, SpinAxis: up, Texture: "sun_texture"},
		{Name: "Mercury", Kind: Planet, OrbitRadius: 3, OrbitSpeed: 1.2, SpinSpeed: 0.5, SpinAxis: up, Scale: 0.5, Texture: "mercury_texture", Selectable: true},
		{Name: "Venus", Kind: Planet, OrbitRadius: 5, OrbitSpeed: 0.9, SpinSpeed: -0.5, SpinAxis: up, Scale: 0.7, Texture: "venus_texture", Selectable: true},
		{Name: "Earth", Kind: Planet, OrbitRadius: 8, OrbitSpeed: 0.6, SpinSpeed: 0.5, SpinAxis: up, Scale: 0.8, Texture: "earth_texture", Selectable: true},
		{Name: "Moon", Kind: Moon, Parent: "Earth", OrbitRadius: 1.5, OrbitSpeed: 1.5, SpinSpeed: 0.5, SpinAxis: up, Scale: 0.3, Texture: "moon_texture", Bob: true, Selectable: true},
		{Name: "Mars", Kind: Planet, OrbitRadius: 12, OrbitSpeed: 0.5, SpinSpeed: 0.5, SpinAxis: up, Scale: 0.6, Texture: "mars_texture", Selectable: true},
		{Name: "Jupiter", Kind: Planet, OrbitRadius: 15, OrbitSpeed: 0.2, SpinSpeed: 0.5, SpinAxis: up, Scale: 1.5, Texture: "jupiter_texture", Selectable: true},
		{Name: "Saturn", Kind: Planet, OrbitRadius: 20, OrbitSpeed: 0.1, SpinSpeed: 0.5, SpinAxis: mgl32.Vec3{-0.3, 1, 0}, Scale: 1.3, Texture: "saturn_texture", Selectable: true},
		{Name: "Saturn Ring", Kind: Ring, Parent: "Saturn", SpinSpeed: 0.5, SpinAxis: mgl32.Vec3{0, 0, 1}, Scale: 0.5, Texture: "saturn_texture"},
		{Name: "Uranus", Kind: Planet, OrbitRadius: 25, OrbitSpeed: 0.07, SpinSpeed: 0.5, SpinAxis: up, Scale: 1.1, Texture: "uranus_texture", Selectable: true},
		// Neptune turns at the common planet rate rather than holding a fixed angle
		{Name: "Neptune", Kind: Planet, OrbitRadius: 28, OrbitSpeed: 0.1, SpinSpeed: 0.5, SpinAxis: up, Scale: 0.5, Texture: "neptune_texture", Selectable: true},
	}
}

// DefaultSystem builds a System from DefaultBodies
func DefaultSystem() *System {
	s, err := NewSystem(DefaultBodies())
	if err != nil {
		panic(err)
	}
	return s
}
