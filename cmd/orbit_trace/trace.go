package main

import (
	"fmt"

	"orrery/core"
)

// Sample is one body's state at one frame
type Sample struct {
	Frame uint64     `yaml:"frame"`
	Body  string     `yaml:"body"`
	Pos   [3]float32 `yaml:"pos,flow"`
	Orbit float32    `yaml:"orbit"`
	Spin  float32    `yaml:"spin"`
}

// trace steps sys for frames frames and samples the named bodies (all when
// names is empty) every `every` frames, starting with frame 0
func trace(sys *core.System, frames, every int, names []string) ([]Sample, error) {
	if every < 1 {
		return nil, fmt.Errorf("sample interval must be positive, got %d", every)
	}

	bodies := sys.Bodies
	if len(names) > 0 {
		bodies = make([]*core.CelestialBody, 0, len(names))
		for _, n := range names {
			b, ok := sys.Body(n)
			if !ok {
				return nil, fmt.Errorf("unknown body %q", n)
			}
			bodies = append(bodies, b)
		}
	}

	var anim core.Animator
	var samples []Sample
	for f := 0; f <= frames; f++ {
		if f%every == 0 {
			for _, b := range bodies {
				p := sys.Position(b)
				samples = append(samples, Sample{
					Frame: anim.Frames(),
					Body:  b.Name,
					Pos:   [3]float32{p.X(), p.Y(), p.Z()},
					Orbit: b.OrbitAngle,
					Spin:  b.SpinAngle,
				})
			}
		}
		if f < frames {
			anim.Step(sys)
		}
	}
	return samples, nil
}
