package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/caspark/pixelperfect/internal/config"
	"github.com/caspark/pixelperfect/internal/director"
	"github.com/caspark/pixelperfect/internal/engine"
	"github.com/caspark/pixelperfect/internal/source"
	"github.com/caspark/pixelperfect/internal/system"
)

var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	widthPtr := flag.Int("width", 1360, "Ширина окна в пикселях")
	heightPtr := flag.Int("height", 760, "Высота окна в пикселях")
	scalePtr := flag.Float64("scale", 2.0, "Масштаб: пикселей устройства на виртуальный пиксель")
	sizingPtr := flag.String("sizing", "trim", "Режим холста: trim, overscan")
	alignPtr := flag.String("align", "world", "Выравнивание камеры: world, screen")
	filterPtr := flag.String("filter", "nearest", "Фильтр композиции: nearest, smooth")
	compensatePtr := flag.Bool("compensate", true, "Субпиксельная компенсация выборки")
	freelookPtr := flag.Bool("freelook", false, "Свободная камера вместо орбиты")
	snapPtr := flag.Bool("snap", true, "Привязка указателя к виртуальному пикселю")
	centerPtr := flag.Bool("center", false, "Начало координат в центре холста")
	cursorPtr := flag.Bool("cursor", true, "Рисовать указатель на сцене")
	durationPtr := flag.Float64("duration", 8.0, "Длительность прогона в секундах")
	fpsPtr := flag.Int("fps", 60, "Частота кадров симуляции")
	scriptPtr := flag.String("script", "", "YAML-сценарий камеры (если пусто, встроенная орбита)")
	genScriptPtr := flag.Bool("gen-script", false, "Сгенерировать орбитальный сценарий и выйти")
	revolutionsPtr := flag.Int("revolutions", 1, "Обороты орбиты для генератора сценария")
	artworkPtr := flag.String("artwork", "", "Изображение или PDF для панели на сцене (по умолчанию: самый свежий файл в input/)")
	qrPtr := flag.String("qr", "https://github.com/caspark/pixelperfect", "Содержимое QR-плашки на сцене")
	capturePtr := flag.String("capture", "capture", "Корневая папка сессий захвата")
	queuePtr := flag.Int("queue", 8, "Глубина очереди писателя кадров")
	outputPtr := flag.String("output", "", "Собрать mp4 из захваченных кадров (путь к файлу)")
	encoderPtr := flag.String("encoder", "", "Энкодер h264 (пусто - автоопределение)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF, VideoToolbox: битрейт = Q*100кбит/с)")
	verifyPtr := flag.String("verify", "", "Проверить кадры на артефакты: папка кадров или latest")
	metricPtr := flag.String("metric", "seams", "Метрика проверки: seams, shimmer")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	cfg := &config.Config{
		WindowWidth:  *widthPtr,
		WindowHeight: *heightPtr,
		Scale:        *scalePtr,
		Sizing:       *sizingPtr,
		Alignment:    *alignPtr,
		Filter:       *filterPtr,
		Compensate:   *compensatePtr,
		Freelook:     *freelookPtr,
		SnapPointer:  *snapPtr,
		CenterCamera: *centerPtr,
		ShowCursor:   *cursorPtr,
		Duration:     *durationPtr,
		FPS:          *fpsPtr,
		Revolutions:  *revolutionsPtr,
		ScriptPath:   *scriptPtr,
		ArtworkPath:  *artworkPtr,
		QRContent:    *qrPtr,
		CaptureRoot:  *capturePtr,
		QueueDepth:   *queuePtr,
		OutputVideo:  *outputPtr,
		Encoder:      *encoderPtr,
		Quality:      *qualityPtr,
		VerifyDir:    *verifyPtr,
		Metric:       *metricPtr,
		ShowStats:    *statsPtr,
		BuildVersion: buildVersion,
	}

	// Режим проверки: гоняем сохраненные кадры через метрику и выходим
	if cfg.VerifyDir != "" {
		dir := cfg.VerifyDir
		if dir == "latest" {
			latest, err := engine.FindLatestSession(cfg.CaptureRoot)
			if err != nil {
				log.Fatalf("[-] Ошибка: %v", err)
			}
			dir = latest
		}
		report, err := engine.Verify(dir, cfg.Metric, cfg.Scale)
		if err != nil {
			log.Fatalf("[-] Ошибка проверки: %v", err)
		}
		if !report.Clean() {
			os.Exit(1)
		}
		return
	}

	// Режим генерации сценария
	if *genScriptPtr {
		d := director.NewDirector()
		script, err := d.GenerateOrbit(cfg.Scale, cfg.Duration, cfg.Revolutions)
		if err != nil {
			log.Fatalf("[-] Ошибка генерации сценария: %v", err)
		}
		outPath := director.GenerateScriptPath("scripts", "orbit")
		os.MkdirAll(filepath.Dir(outPath), 0755)
		if err := director.WriteScript(script, outPath); err != nil {
			log.Fatalf("[-] Ошибка записи сценария: %v", err)
		}
		fmt.Printf("[+++] Успех! Сценарий сохранен: %s\n", outPath)
		return
	}

	os.MkdirAll("input", 0755)
	os.MkdirAll(cfg.CaptureRoot, 0755)

	// Иллюстрация для сцены: явный путь или самый свежий файл в input/
	var artwork *image.RGBA
	artworkPath := cfg.ArtworkPath
	if artworkPath == "" {
		if latest, err := system.FindLatestArtwork("input"); err == nil {
			artworkPath = latest
			fmt.Printf("[*] Выбрана иллюстрация: %s\n", artworkPath)
		}
	}
	if artworkPath != "" {
		art, err := source.Open(artworkPath)
		if err != nil {
			log.Fatalf("[-] Ошибка открытия иллюстрации: %v", err)
		}
		img, err := art.Load(0, 96)
		art.Close()
		if err != nil {
			log.Fatalf("[-] Ошибка загрузки иллюстрации: %v", err)
		}
		artwork = img
	}

	// Автовыбор энкодера и качества, если просят собирать видео
	if cfg.OutputVideo != "" && cfg.Encoder == "" {
		cfg.Encoder = system.GetBestH264Encoder()
		if cfg.Encoder != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.Encoder)
		}
	}
	if cfg.OutputVideo != "" && cfg.Quality == 0 {
		switch cfg.Encoder {
		case "h264_videotoolbox":
			cfg.Quality = 75 // Хорошее качество для VideoToolbox
		case "h264_nvenc":
			cfg.Quality = 28 // Эквивалент CRF для NVENC
		default:
			cfg.Quality = 23 // Стандартный CRF для x264
		}
	}

	system.LogSystemInfo(cfg.CaptureRoot)

	e, err := engine.New(cfg, artwork)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := e.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка прогона: %v", err)
	}
}
