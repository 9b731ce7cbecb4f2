package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// GenerateScriptPath creates a timestamped script filename inside dir
func GenerateScriptPath(dir, name string) string {
	if dir == "" {
		dir = "scripts"
	}
	if name == "" {
		name = "script"
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", name, timestamp))
}

// FindLatestScript finds the most recent script file in dir
func FindLatestScript(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read scripts directory: %w", err)
	}

	var scripts []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			scripts = append(scripts, filepath.Join(dir, entry.Name()))
		}
	}

	if len(scripts) == 0 {
		return "", fmt.Errorf("no script files found in %s", dir)
	}

	// Sort by modification time (newest first)
	sort.Slice(scripts, func(i, j int) bool {
		infoI, _ := os.Stat(scripts[i])
		infoJ, _ := os.Stat(scripts[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return scripts[0], nil
}
