package viewport

import (
	"math"
	"testing"
)

func TestScreenToCanvasSnap(t *testing.T) {
	g, err := Compute(Pt(1000, 700), 3, Trim)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	tests := []struct {
		pointer Point
		snapped Point
	}{
		{Pt(0, 0), Pt(0, 0)},
		{Pt(2.9, 2.9), Pt(0, 0)},
		{Pt(3, 3), Pt(1, 1)},
		{Pt(500.9, 350.2), Pt(166, 116)},
		{Pt(998.9, 698.9), Pt(332, 232)},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got := g.ScreenToCanvas(tt.pointer, true)
			if got != tt.snapped {
				t.Errorf("Expected %v for pointer %v, got %v", tt.snapped, tt.pointer, got)
			}
		})
	}
}

func TestScreenToCanvasLetterbox(t *testing.T) {
	// Window 800x600 at scale 3 letterboxes one device pixel on the left
	g, err := Compute(Pt(800, 600), 3, Trim)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if g.Offset != Pt(1, 0) {
		t.Fatalf("Expected offset (1, 0), got %v", g.Offset)
	}

	got := g.ScreenToCanvas(Pt(1, 0), true)
	if got != Pt(0, 0) {
		t.Errorf("Expected canvas origin under the letterbox edge, got %v", got)
	}

	// Inside the letterbox band the canvas coordinate goes negative
	raw := g.ScreenToCanvas(Pt(0.5, 0), false)
	if raw.X >= 0 {
		t.Errorf("Expected negative canvas X inside the letterbox band, got %v", raw.X)
	}
}

func TestMapperRoundTrip(t *testing.T) {
	geometries := []struct {
		window Point
		scale  float64
		mode   Mode
	}{
		{Pt(1000, 700), 3, Trim},
		{Pt(800, 600), 3, Trim},
		{Pt(1000, 700), 3.5, Overscan},
		{Pt(1366, 768), 2, Trim},
	}
	points := []Point{
		Pt(0, 0), Pt(12.5, 40.25), Pt(333, 233), Pt(500.9, 350.2), Pt(-3, 7),
	}

	for _, gg := range geometries {
		g, err := Compute(gg.window, gg.scale, gg.mode)
		if err != nil {
			t.Fatalf("Compute returned error: %v", err)
		}
		for _, p := range points {
			back := g.CanvasToScreen(g.ScreenToCanvas(p, false))
			if !closeTo(back, p, 0.0001) {
				t.Errorf("Round trip moved %v to %v (window %v, scale %v)", p, back, gg.window, gg.scale)
			}
		}
	}
}

func TestWorldMapping(t *testing.T) {
	g, err := Compute(Pt(1000, 700), 3, Trim)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	// The mapper accepts whichever camera offset the caller is using
	cameras := []Point{Pt(0, 0), Pt(3, -2), Pt(3.25, -1.75)}
	pointer := Pt(500.9, 350.2)

	for _, cam := range cameras {
		world := g.ScreenToWorld(pointer, cam, false)
		expected := g.ScreenToCanvas(pointer, false).Add(cam)
		if !closeTo(world, expected, 0.0001) {
			t.Errorf("Expected world %v for camera %v, got %v", expected, cam, world)
		}

		back := g.WorldToScreen(world, cam)
		if !closeTo(back, pointer, 0.0001) {
			t.Errorf("World round trip moved %v to %v for camera %v", pointer, back, cam)
		}
	}
}

// closeTo compares points within a tolerance per axis
func closeTo(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}
