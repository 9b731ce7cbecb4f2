package director

// Script represents a reproducible camera take for a capture run
type Script struct {
	Version   string     `yaml:"version"`
	Name      string     `yaml:"name"`
	Duration  float64    `yaml:"duration"` // Total duration in seconds
	Waypoints []Waypoint `yaml:"waypoints"`
	Events    []Event    `yaml:"events,omitempty"`
}

// Waypoint represents a camera offset at a specific time
type Waypoint struct {
	Time  float64 `yaml:"time"`  // Time offset in seconds
	Focus string  `yaml:"focus"` // Description of what the camera looks at
	X     float64 `yaml:"x"`     // Ideal camera offset in virtual pixels
	Y     float64 `yaml:"y"`
}

// Event switches one runtime toggle at a specific time
type Event struct {
	Time   float64 `yaml:"time"`
	Toggle string  `yaml:"toggle"` // "sizing", "alignment", "filter", "compensate", "freelook", "snap", "center", "cursor"
	Value  string  `yaml:"value"`
}
