package analyzer

import (
	"fmt"
	"image"
	"math"
)

// SeamMetric checks the run-length structure a nearest-neighbor upscale
// must produce: at scale s, every device row and column repeats its
// virtual source floor(s) or ceil(s) times, so an interior run shorter
// than floor(s) is a seam. For whole-number scales the check tightens to
// exact multiples. The first and last run per axis are skipped, they are
// legitimately truncated by letterboxing and overscan clipping.
type SeamMetric struct {
	Scale float64

	frames   int
	findings []Finding
}

// NewSeamMetric creates a seam check for the given scale factor
func NewSeamMetric(scale float64) *SeamMetric {
	return &SeamMetric{Scale: scale}
}

func (m *SeamMetric) Name() string { return "seams" }

// Inspect checks one frame
func (m *SeamMetric) Inspect(frame *image.RGBA) error {
	if m.Scale <= 0 {
		return fmt.Errorf("seam metric needs a positive scale, have %v", m.Scale)
	}

	bad := CountInvalidRuns(ColumnRuns(frame), m.Scale) +
		CountInvalidRuns(RowRuns(frame), m.Scale)
	if bad > 0 {
		m.findings = append(m.findings, Finding{Frame: m.frames, Kind: "seam", Count: bad})
	}

	m.frames++
	return nil
}

func (m *SeamMetric) Report() Report {
	return Report{Frames: m.frames, Findings: m.findings}
}

// ColumnRuns measures how many times each device column repeats before
// the next distinct one, left to right.
func ColumnRuns(img *image.RGBA) []int {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	runs := []int{}
	run := 1
	for x := b.Min.X + 1; x < b.Max.X; x++ {
		if columnsEqual(img, x-1, x) {
			run++
		} else {
			runs = append(runs, run)
			run = 1
		}
	}
	return append(runs, run)
}

// RowRuns measures how many times each device row repeats before the
// next distinct one, top to bottom.
func RowRuns(img *image.RGBA) []int {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	runs := []int{}
	run := 1
	for y := b.Min.Y + 1; y < b.Max.Y; y++ {
		if rowsEqual(img, y-1, y) {
			run++
		} else {
			runs = append(runs, run)
			run = 1
		}
	}
	return append(runs, run)
}

// CountInvalidRuns counts interior runs that no uniform upscale at the
// given scale could have produced. Identical neighboring virtual pixels
// merge runs, so only too-short runs (and, for whole scales, non-multiples)
// count as artifacts.
func CountInvalidRuns(runs []int, scale float64) int {
	if len(runs) <= 2 {
		return 0
	}

	floor := int(math.Floor(scale))
	whole := scale == math.Trunc(scale)

	bad := 0
	for _, r := range runs[1 : len(runs)-1] {
		if whole {
			if r%floor != 0 {
				bad++
			}
		} else if r < floor {
			bad++
		}
	}
	return bad
}

func columnsEqual(img *image.RGBA, xa, xb int) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if img.RGBAAt(xa, y) != img.RGBAAt(xb, y) {
			return false
		}
	}
	return true
}

func rowsEqual(img *image.RGBA, ya, yb int) bool {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		if img.RGBAAt(x, ya) != img.RGBAAt(x, yb) {
			return false
		}
	}
	return true
}
