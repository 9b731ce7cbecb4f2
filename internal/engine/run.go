package engine

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/caspark/pixelperfect/internal/director"
	"github.com/caspark/pixelperfect/internal/system"
	"github.com/caspark/pixelperfect/internal/video"
)

// Run прогоняет демо-сцену без окна: симулируемые часы, камера по
// сценарию или по встроенной орбите, захват кадров на диск и сборка
// ролика, если задан выходной файл.
func (e *Engine) Run(ctx context.Context) error {
	startTime := time.Now()

	fps := e.cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	dt := 1.0 / float64(fps)
	total := int(math.Round(e.cfg.Duration * float64(fps)))
	if total < 1 {
		total = 1
	}

	// Сценарий камеры: явный файл, иначе встроенная орбита
	var waypoints []director.Waypoint
	var events []director.Event
	if e.cfg.ScriptPath != "" {
		script, err := director.ReadScript(e.cfg.ScriptPath)
		if err != nil {
			return fmt.Errorf("ошибка чтения сценария: %v", err)
		}
		fmt.Printf("[*] Сценарий: %s (%s)\n", e.cfg.ScriptPath, script.Name)
		waypoints = script.Waypoints
		events = script.Events
		if script.Duration > 0 {
			total = int(math.Round(script.Duration * float64(fps)))
		}
	}

	fmt.Println("--- [PIXELPERFECT: HEADLESS RUN] ---")
	fmt.Printf("[*] Окно: %dx%d | Масштаб: %.2f | Холст: %s\n",
		e.cfg.WindowWidth, e.cfg.WindowHeight, e.cfg.Scale, e.toggles.Sizing)
	fmt.Printf("[*] Выравнивание: %s | Компенсация: %v | Фильтр: %v\n",
		e.toggles.Alignment, e.toggles.Compensate, e.toggles.Filter)
	fmt.Printf("[*] Кадров: %d @ %d FPS\n", total, fps)
	fmt.Println("------------------------------------")

	if waypoints != nil {
		// Сценарий двигает Ideal напрямую, поэтому камера работает в
		// режиме свободного полета с нулевым вводом
		t := e.toggles
		t.Freelook = true
		e.toggles = t
	}

	if free, err := system.DiskFree(e.cfg.CaptureRoot); err == nil && free < 1<<30 {
		log.Printf("[!] Мало места на диске: %.2f ГБ свободно", float64(free)/(1<<30))
	}
	if err := e.StartCapture(); err != nil {
		log.Printf("[!] Захват недоступен, кадры не будут сохранены: %v", err)
	} else {
		fmt.Printf("[*] Кадры пишутся в %s\n", e.session.Dir())
	}

	renderStart := time.Now()
	nextEvent := 0
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now := float64(i) * dt
		for nextEvent < len(events) && events[nextEvent].Time <= now {
			if err := e.ApplyEvent(events[nextEvent]); err != nil {
				log.Printf("[!] Событие на %.2fs пропущено: %v", events[nextEvent].Time, err)
			}
			nextEvent++
		}

		if waypoints != nil {
			e.cam.Ideal = director.PositionAt(waypoints, now)
		}

		frame, err := e.Step(Input{}, dt)
		if err != nil {
			return err
		}

		if e.writer != nil {
			if err := e.CaptureFrame(frame); err != nil {
				log.Printf("[!] Кадр %d не отправлен писателю: %v", i, err)
				e.Release(frame)
			}
		} else {
			e.Release(frame)
		}

		if (i+1)%fps == 0 {
			fmt.Printf("[>] Кадры: %d/%d\n", i+1, total)
		}
	}
	renderTime := time.Since(renderStart)

	summary, err := e.StopCapture()
	if err != nil {
		log.Printf("[!] Ошибка записи кадров: %v", err)
	}
	if summary.Frames > 0 {
		fmt.Printf("[*] Сессия завершена: %d кадров в %s\n", summary.Frames, summary.Dir)
	}

	if e.cfg.OutputVideo != "" && summary.Frames > 0 {
		fmt.Println("[*] Сборка видео из кадров...")
		encoder := e.cfg.Encoder
		if encoder == "" {
			encoder = system.GetBestH264Encoder()
			fmt.Printf("[*] Энкодер: %s\n", encoder)
		}
		asm := &video.FFmpegAssembler{}
		if err := asm.Assemble(ctx, summary.Dir, e.cfg.OutputVideo, video.Options{
			FPS:     fps,
			Encoder: encoder,
			Quality: e.cfg.Quality,
		}); err != nil {
			return fmt.Errorf("ошибка сборки видео: %v", err)
		}
		if dur, derr := system.GetVideoDuration(e.cfg.OutputVideo); derr == nil {
			fmt.Printf("[+++] Готово: %s (%.2fs)\n", e.cfg.OutputVideo, dur)
		} else {
			fmt.Printf("[+++] Готово: %s\n", e.cfg.OutputVideo)
		}
	}

	if e.cfg.ShowStats {
		totalTime := time.Since(startTime)
		effFPS := float64(total) / totalTime.Seconds()
		report := fmt.Sprintf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Build: %s\n"+
				"Total Time: %.2fs\n"+
				"Rendering: %.2fs\n"+
				"Effective FPS: %.2f\n"+
				"Process RSS: %.1f MB\n"+
				"----------------------------\n",
			e.cfg.BuildVersion, totalTime.Seconds(), renderTime.Seconds(), effFPS,
			float64(system.ProcessRSS())/(1<<20),
		)
		fmt.Print(report)
	}

	return nil
}
