package camera

import (
	"fmt"
	"math"

	"github.com/caspark/pixelperfect/internal/viewport"
)

// Alignment selects the grid the camera offset snaps to.
type Alignment int

const (
	// AlignWorld snaps the camera to whole virtual pixels. Sprites keep
	// their exact shape but camera motion steps in virtual-pixel units.
	AlignWorld Alignment = iota
	// AlignScreen snaps the camera to whole device pixels. Motion is
	// smoother at high scale factors; the leftover sub-virtual-pixel
	// remainder is what the sampling bias compensates for.
	AlignScreen
)

func (a Alignment) String() string {
	switch a {
	case AlignWorld:
		return "world"
	case AlignScreen:
		return "screen"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// ParseAlignment maps a configuration string to an alignment policy.
func ParseAlignment(name string) (Alignment, error) {
	switch name {
	case "world":
		return AlignWorld, nil
	case "screen":
		return AlignScreen, nil
	default:
		return AlignWorld, fmt.Errorf("unknown alignment: %q (want world or screen)", name)
	}
}

// State is the camera for one viewport. Ideal is the continuous position
// the simulation moves; Aligned is the snapped position the renderer
// draws with, derived from Ideal by Align every frame. Both are in
// virtual pixels.
type State struct {
	Ideal    viewport.Point
	Aligned  viewport.Point
	Angle    float64
	Freelook bool
}

// Rig holds the camera motion tunables. Speed is in virtual pixels per
// input unit and deliberately independent of the scale factor, so panning
// feels the same at every zoom. OrbitRadius is in virtual pixels at scale
// one and shrinks with the scale factor to keep the on-screen sweep
// constant.
type Rig struct {
	Speed        float64
	OrbitRadius  float64
	OrbitAngular float64 // radians per second
}

// NewRig creates a Rig with the demo defaults.
func NewRig() *Rig {
	return &Rig{
		Speed:        0.3,
		OrbitRadius:  50.0,
		OrbitAngular: math.Pi / 4,
	}
}

// Advance moves the camera by one simulation step. With freelook on, the
// ideal offset follows the input delta; otherwise the camera orbits the
// origin. The input delta must already be sanitized: callers clamp or
// drop non-finite values at the boundary, they never reach State. The
// scale must come from a valid geometry.
func (r *Rig) Advance(s *State, input viewport.Point, dt, scale float64) {
	if s.Freelook {
		s.Ideal = s.Ideal.Add(input.Mul(r.Speed))
		return
	}

	d := viewport.Pt(1, 1).Mul(r.OrbitRadius / scale)
	s.Ideal = d.Rotate(s.Angle).Sub(d)
	s.Angle += r.OrbitAngular * dt
}

// Align derives the aligned offset from the ideal one. After it returns,
// the aligned offset never strays from the ideal one by a full virtual
// pixel on either axis.
func (s *State) Align(scale float64, mode Alignment) {
	switch mode {
	case AlignScreen:
		s.Aligned = s.Ideal.Mul(scale).Round().Div(scale)
	default:
		s.Aligned = s.Ideal.Round()
	}
}

// Reset recenters the camera. Angle and freelook keep their values, so a
// reset during an orbit resumes from the same phase.
func (s *State) Reset() {
	s.Ideal = viewport.Point{}
	s.Aligned = viewport.Point{}
}
