package director

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// WriteScript writes a script to a YAML file
func WriteScript(script *Script, path string) error {
	data, err := yaml.Marshal(script)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScript reads a script from a YAML file. Waypoints and events are
// sorted by time so hand-edited files play back in order
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}

	sort.SliceStable(script.Waypoints, func(i, j int) bool {
		return script.Waypoints[i].Time < script.Waypoints[j].Time
	})
	sort.SliceStable(script.Events, func(i, j int) bool {
		return script.Events[i].Time < script.Events[j].Time
	})

	return &script, nil
}
