package camera

import (
	"math"
	"testing"

	"github.com/caspark/pixelperfect/internal/viewport"
)

func TestSamplingBiasKnownValues(t *testing.T) {
	tests := []struct {
		ideal   viewport.Point
		aligned viewport.Point
		scale   float64
		want    viewport.Point
	}{
		// residual (0.6, 0.6): Y mirrored to 0.4
		{viewport.Pt(0.3, 0.3), viewport.Pt(0, 0), 2, viewport.Pt(0.6, 0.4)},
		// zero residual biases nothing
		{viewport.Pt(5, -7), viewport.Pt(5, -7), 3, viewport.Pt(0, 0)},
		// residual (-1.2, -1.2): fractional parts 0.8 and 0.2
		{viewport.Pt(10.6, 10.6), viewport.Pt(11, 11), 3, viewport.Pt(0.8, 0.2)},
		// whole-pixel residual reduces to zero
		{viewport.Pt(2, 2), viewport.Pt(1, 1), 4, viewport.Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got := SamplingBias(tt.ideal, tt.aligned, tt.scale)
			if math.Abs(got.X-tt.want.X) > 0.0001 || math.Abs(got.Y-tt.want.Y) > 0.0001 {
				t.Errorf("Expected bias %v for ideal %v aligned %v scale %v, got %v",
					tt.want, tt.ideal, tt.aligned, tt.scale, got)
			}
		})
	}
}

func TestSamplingBiasRange(t *testing.T) {
	ideals := []viewport.Point{
		viewport.Pt(0, 0), viewport.Pt(0.1, -0.1), viewport.Pt(-123.456, 789.012),
		viewport.Pt(0.499999, -0.499999), viewport.Pt(1e9, -1e9),
		viewport.Pt(-1e-15, 1e-15),
	}
	scales := []float64{1, 2, 3, 3.5, 7.25}

	for _, ideal := range ideals {
		for _, scale := range scales {
			for _, mode := range []Alignment{AlignWorld, AlignScreen} {
				s := &State{Ideal: ideal}
				s.Align(scale, mode)

				b := SamplingBias(s.Ideal, s.Aligned, scale)
				if b.X < 0 || b.X >= 1 || b.Y < 0 || b.Y >= 1 {
					t.Errorf("Bias %v out of [0, 1) for ideal %v (%v, scale %v)", b, ideal, mode, scale)
				}
			}
		}
	}
}

func TestSamplingBiasScreenAlignment(t *testing.T) {
	// Screen alignment leaves a residual strictly below one device pixel,
	// so the bias equals the fractional remainder directly.
	s := &State{Ideal: viewport.Pt(10.6, 0)}
	s.Align(3, AlignScreen)

	b := SamplingBias(s.Ideal, s.Aligned, 3)
	residual := (s.Ideal.X - s.Aligned.X) * 3
	want := residual - math.Floor(residual)
	if math.Abs(b.X-want) > 0.0001 {
		t.Errorf("Expected bias X %v, got %v", want, b.X)
	}
}
