package analyzer

import (
	"fmt"
	"image"
)

// ShimmerMetric counts pixels that change between consecutive frames.
// Over a capture of a static scene any change is pixel crawl; over a
// moving scene the counts are informational. Changes above Threshold
// become findings.
type ShimmerMetric struct {
	Threshold int

	prev     *image.RGBA
	frames   int
	findings []Finding
}

// NewShimmerMetric creates a shimmer check that flags any change at all
func NewShimmerMetric() *ShimmerMetric {
	return &ShimmerMetric{}
}

func (m *ShimmerMetric) Name() string { return "shimmer" }

// Inspect compares one frame against the previous one
func (m *ShimmerMetric) Inspect(frame *image.RGBA) error {
	if m.prev != nil {
		n, err := DiffFrames(m.prev, frame)
		if err != nil {
			return err
		}
		if n > m.Threshold {
			m.findings = append(m.findings, Finding{Frame: m.frames, Kind: "shimmer", Count: n})
		}
	}

	// Frame buffers are pooled upstream, keep a private copy
	m.prev = cloneRGBA(frame)
	m.frames++
	return nil
}

func (m *ShimmerMetric) Report() Report {
	return Report{Frames: m.frames, Findings: m.findings}
}

// DiffFrames counts pixels that differ between two equally sized frames
func DiffFrames(a, b *image.RGBA) (int, error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return 0, fmt.Errorf("frame size changed: %v vs %v", a.Bounds().Size(), b.Bounds().Size())
	}

	ab := a.Bounds()
	bb := b.Bounds()
	changed := 0
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			if a.RGBAAt(ab.Min.X+x, ab.Min.Y+y) != b.RGBAAt(bb.Min.X+x, bb.Min.Y+y) {
				changed++
			}
		}
	}
	return changed, nil
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}
