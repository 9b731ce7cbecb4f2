package analyzer

import "fmt"

// NewMetric creates a metric based on the specified variant
func NewMetric(variant string, scale float64) (Metric, error) {
	switch variant {
	case "seams", "":
		return NewSeamMetric(scale), nil
	case "shimmer":
		return NewShimmerMetric(), nil
	case "ghosting":
		return nil, fmt.Errorf("ghosting metric not yet implemented")
	default:
		return nil, fmt.Errorf("unknown metric variant: %s", variant)
	}
}
