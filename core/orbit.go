package core

// Animator advances every body by its fixed per-frame increments. Speed is
// tied to the frame rate: one Step is one frame, whatever its duration.
type Animator struct {
	frames uint64
}

// Step moves every orbit and spin angle forward by one frame
func (a *Animator) Step(s *System) {
	for _, b := range s.Bodies {
		b.OrbitAngle = WrapDegrees(b.OrbitAngle + b.OrbitSpeed)
		b.SpinAngle = WrapDegrees(b.SpinAngle + b.SpinSpeed)
	}
	a.frames++
}

// Frames reports how many steps have been taken
func (a *Animator) Frames() uint64 {
	return a.frames
}
