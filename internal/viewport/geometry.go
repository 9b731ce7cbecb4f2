package viewport

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScale reports a scale factor that cannot produce a canvas.
var ErrInvalidScale = errors.New("viewport: scale must be positive and finite")

// Mode selects how the virtual canvas covers the window surface.
type Mode int

const (
	// Trim shrinks the canvas to whole virtual pixels and centers it,
	// letterboxing the remainder.
	Trim Mode = iota
	// Overscan grows the canvas by one virtual pixel per axis so the
	// surface is always covered; the excess row and column are clipped
	// at the window seam.
	Overscan
)

func (m Mode) String() string {
	switch m {
	case Trim:
		return "trim"
	case Overscan:
		return "overscan"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a configuration string to a sizing mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "trim":
		return Trim, nil
	case "overscan":
		return Overscan, nil
	default:
		return Trim, fmt.Errorf("unknown sizing mode: %q (want trim or overscan)", name)
	}
}

// Geometry is the placement of a virtual canvas on a window surface.
// Window, Leftover and Offset are in device pixels; Canvas is in virtual
// pixels. All of them hold whole numbers except Leftover, which holds the
// sub-scale remainder in [0, Scale) per axis.
type Geometry struct {
	Window   Point
	Scale    float64
	Mode     Mode
	Canvas   Point
	Leftover Point
	Offset   Point
}

// Compute sizes a canvas for the given window surface and scale factor.
//
// A window with a zero component yields a zero canvas component in either
// mode; callers treat an empty canvas as nothing to render rather than an
// error. Scale must be positive and finite.
func Compute(window Point, scale float64, mode Mode) (Geometry, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return Geometry{}, ErrInvalidScale
	}
	if window.X < 0 {
		window.X = 0
	}
	if window.Y < 0 {
		window.Y = 0
	}

	g := Geometry{Window: window, Scale: scale, Mode: mode}
	g.Leftover = Point{math.Mod(window.X, scale), math.Mod(window.Y, scale)}
	// The quotient is a whole number up to float noise; Floor settles it.
	g.Canvas = window.Sub(g.Leftover).Div(scale).Floor()

	if mode == Overscan {
		// One extra virtual pixel per axis absorbs the letterbox band.
		// The canvas stays pinned to the top-left corner.
		if window.X > 0 {
			g.Canvas.X++
		}
		if window.Y > 0 {
			g.Canvas.Y++
		}
		return g, nil
	}

	g.Offset = window.Sub(g.Canvas.Mul(scale)).Div(2).Floor()
	return g, nil
}

// SameInputs reports whether the geometry was computed from the given
// window, scale and mode. The engine uses it to recompute geometry and
// reallocate the canvas only when one of them actually changed.
func (g Geometry) SameInputs(window Point, scale float64, mode Mode) bool {
	return g.Window == window && g.Scale == scale && g.Mode == mode
}

// Empty reports whether the canvas has no drawable area.
func (g Geometry) Empty() bool {
	return g.Canvas.X < 1 || g.Canvas.Y < 1
}
