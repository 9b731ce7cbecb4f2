package blit

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/caspark/pixelperfect/internal/viewport"
)

// Filter selects the upscale kernel.
type Filter int

const (
	// Nearest keeps hard pixel edges; the only correct choice for pixel
	// art once the canvas is aligned.
	Nearest Filter = iota
	// Smooth is a Catmull-Rom upscale, kept around for side-by-side
	// comparison captures.
	Smooth
)

func (f Filter) String() string {
	switch f {
	case Nearest:
		return "nearest"
	case Smooth:
		return "smooth"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter maps a configuration string to a filter.
func ParseFilter(name string) (Filter, error) {
	switch name {
	case "nearest":
		return Nearest, nil
	case "smooth":
		return Smooth, nil
	default:
		return Nearest, &UnknownFilterError{Name: name}
	}
}

// UnknownFilterError reports a filter name with no kernel behind it.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return "blit: unknown filter: " + e.Name
}

// Options steer one composition pass.
type Options struct {
	Filter  Filter
	Bias    viewport.Point // sampling bias from the camera, [0,1) per axis
	UseBias bool
	Curtain color.RGBA // letterbox fill
}

// Compose draws the canvas onto the window surface through the given
// geometry: curtain fill first, then the scaled canvas at the letterbox
// offset. An empty geometry paints only the curtain. In overscan the
// canvas footprint runs past the window edge and is clipped at the seam.
//
// The bias arrives in the bottom-up convention the camera emits; the
// composite works in top-down rows, so the Y component is mirrored back
// before it shifts the sampling.
func Compose(dst *image.RGBA, canvas *image.RGBA, g viewport.Geometry, opts Options) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: opts.Curtain}, image.Point{}, draw.Src)

	if g.Empty() || canvas == nil {
		return
	}

	tx := g.Offset.X
	ty := g.Offset.Y
	if opts.UseBias {
		tx -= opts.Bias.X
		ty -= frac(-opts.Bias.Y)
	}

	var kernel draw.Interpolator = draw.NearestNeighbor
	if opts.Filter == Smooth {
		kernel = draw.CatmullRom
	}

	s2d := f64.Aff3{
		g.Scale, 0, tx,
		0, g.Scale, ty,
	}
	kernel.Transform(dst, s2d, canvas, canvas.Bounds(), draw.Src, nil)
}

// frac returns the fractional part of v normalized into [0, 1).
func frac(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		f = 0
	}
	return f
}
