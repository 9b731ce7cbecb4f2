package engine

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/caspark/pixelperfect/internal/analyzer"
)

// Verify прогоняет нумерованные кадры захваченной сессии через метрику
// артефактов и печатает итог.
func Verify(dir, metricName string, scale float64) (analyzer.Report, error) {
	metric, err := analyzer.NewMetric(metricName, scale)
	if err != nil {
		return analyzer.Report{}, err
	}

	var frames []string
	for i := 0; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%d.png", i))
		if _, err := os.Stat(path); err != nil {
			break
		}
		frames = append(frames, path)
	}
	if len(frames) == 0 {
		return analyzer.Report{}, fmt.Errorf("в папке %s нет нумерованных кадров", dir)
	}

	fmt.Printf("[*] Проверка %d кадров метрикой %q...\n", len(frames), metric.Name())
	for _, path := range frames {
		img, err := loadPNG(path)
		if err != nil {
			return analyzer.Report{}, fmt.Errorf("кадр %s: %w", path, err)
		}
		if err := metric.Inspect(img); err != nil {
			return analyzer.Report{}, err
		}
	}

	report := metric.Report()
	if report.Clean() {
		fmt.Printf("[+++] Артефактов не найдено (%d кадров)\n", report.Frames)
	} else {
		fmt.Printf("[!] Найдено проблемных кадров: %d\n", len(report.Findings))
		for _, f := range report.Findings {
			fmt.Printf("[!]   кадр %d: %s x%d\n", f.Frame, f.Kind, f.Count)
		}
	}
	return report, nil
}

// FindLatestSession возвращает папку кадров самой свежей сессии под root.
func FindLatestSession(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", err
	}

	var best string
	var bestStamp int64 = -1
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		stamp, err := strconv.ParseInt(e.Name(), 10, 64)
		if err != nil {
			continue
		}
		if stamp > bestStamp {
			bestStamp = stamp
			best = filepath.Join(root, e.Name(), "frames")
		}
	}

	if best == "" {
		return "", fmt.Errorf("в папке %s нет сессий захвата", root)
	}
	return best, nil
}

func loadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	return rgba, nil
}
