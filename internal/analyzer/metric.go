package analyzer

import "image"

// Finding represents one artifact located in a frame stream
type Finding struct {
	Frame int
	Kind  string // "seam", "shimmer"
	Count int
}

// Report summarizes what a metric saw over a whole frame stream
type Report struct {
	Frames   int
	Findings []Finding
}

// Clean reports whether the stream passed without findings
func (r Report) Clean() bool {
	return len(r.Findings) == 0
}

// Metric is the interface for frame inspection strategies. Frames are
// fed in capture order; Report summarizes after the last one.
type Metric interface {
	Name() string
	Inspect(frame *image.RGBA) error
	Report() Report
}
