package director

import (
	"github.com/caspark/pixelperfect/internal/viewport"
)

// PositionAt computes the camera offset a script calls for at the
// given time. Between waypoints the motion is eased so the camera
// settles softly instead of snapping
func PositionAt(waypoints []Waypoint, currentTime float64) viewport.Point {
	if len(waypoints) == 0 {
		return viewport.Point{}
	}

	// Before the first waypoint hold position
	if currentTime <= waypoints[0].Time {
		return viewport.Pt(waypoints[0].X, waypoints[0].Y)
	}

	// After the last waypoint hold position
	last := waypoints[len(waypoints)-1]
	if currentTime >= last.Time {
		return viewport.Pt(last.X, last.Y)
	}

	// Find the surrounding pair and ease between them
	for i := 0; i < len(waypoints)-1; i++ {
		w1 := waypoints[i]
		w2 := waypoints[i+1]

		if currentTime >= w1.Time && currentTime <= w2.Time {
			timeDelta := w2.Time - w1.Time
			if timeDelta < 0.001 {
				return viewport.Pt(w2.X, w2.Y)
			}

			t := (currentTime - w1.Time) / timeDelta
			t = easeInOutCubic(t)

			return viewport.Pt(w1.X, w1.Y).Lerp(viewport.Pt(w2.X, w2.Y), t)
		}
	}

	return viewport.Pt(last.X, last.Y)
}

// easeInOutCubic provides smooth acceleration and deceleration
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

// pow is a simple integer power function
func pow(base, exp float64) float64 {
	result := 1.0
	for i := 0; i < int(exp); i++ {
		result *= base
	}
	return result
}
