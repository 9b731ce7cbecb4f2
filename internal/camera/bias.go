package camera

import (
	"math"

	"github.com/caspark/pixelperfect/internal/viewport"
)

// SamplingBias converts the sub-pixel camera remainder into a sampling
// bias for the upscale stage. The residual between the ideal and aligned
// offsets is taken in device pixels and reduced to its fractional part,
// so both components always land in [0, 1) for finite inputs.
//
// The Y component is mirrored: the bias is expressed for a bottom-up
// render target, the convention GPU blits use. Consumers working with
// top-down rows (the software compositor does) un-mirror it on their
// side.
func SamplingBias(ideal, aligned viewport.Point, scale float64) viewport.Point {
	r := ideal.Sub(aligned).Mul(scale)
	return viewport.Point{X: frac(r.X), Y: frac(-r.Y)}
}

// frac returns the fractional part of v normalized into [0, 1).
func frac(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		// Rounding can land exactly on 1 for values just under a whole
		// number; fold it back to keep the half-open range.
		f = 0
	}
	return f
}
