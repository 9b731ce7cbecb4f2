package director

import (
	"fmt"
	"math"

	"github.com/caspark/pixelperfect/internal/viewport"
)

// Director builds camera scripts for capture runs
type Director struct {
	OrbitRadius float64 // On-screen sweep in virtual pixels at scale one
	StepsPerRev int     // Waypoints per revolution
}

// NewDirector creates a new Director with default settings
func NewDirector() *Director {
	return &Director{
		OrbitRadius: 50.0,
		StepsPerRev: 16,
	}
}

// GenerateOrbit creates a script that circles the camera around the
// origin, closing the loop on the last waypoint
func (d *Director) GenerateOrbit(scale, duration float64, revolutions int) (*Script, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("orbit needs a positive scale, have %v", scale)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("orbit needs a positive duration, have %v", duration)
	}
	if revolutions < 1 {
		revolutions = 1
	}

	// The sweep shrinks with the scale factor, same as the live orbit
	disp := viewport.Pt(1, 1).Mul(d.OrbitRadius / scale)
	steps := d.StepsPerRev * revolutions

	waypoints := make([]Waypoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(revolutions) * float64(i) / float64(steps)
		pos := disp.Rotate(angle).Sub(disp)
		waypoints = append(waypoints, Waypoint{
			Time:  duration * float64(i) / float64(steps),
			Focus: fmt.Sprintf("orbit_%d", i),
			X:     pos.X,
			Y:     pos.Y,
		})
	}

	return &Script{
		Version:   "1.0",
		Name:      "orbit",
		Duration:  duration,
		Waypoints: waypoints,
	}, nil
}

// GeneratePan creates a straight camera move between two offsets
func (d *Director) GeneratePan(from, to viewport.Point, duration float64) (*Script, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("pan needs a positive duration, have %v", duration)
	}

	return &Script{
		Version:  "1.0",
		Name:     "pan",
		Duration: duration,
		Waypoints: []Waypoint{
			{Time: 0, Focus: "start", X: from.X, Y: from.Y},
			{Time: duration, Focus: "end", X: to.X, Y: to.Y},
		},
	}, nil
}
