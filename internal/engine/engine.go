package engine

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/caspark/pixelperfect/internal/blit"
	"github.com/caspark/pixelperfect/internal/camera"
	"github.com/caspark/pixelperfect/internal/capture"
	"github.com/caspark/pixelperfect/internal/config"
	"github.com/caspark/pixelperfect/internal/director"
	"github.com/caspark/pixelperfect/internal/scene"
	"github.com/caspark/pixelperfect/internal/system"
	"github.com/caspark/pixelperfect/internal/viewport"
)

// Input это снимок ввода на один кадр: дельта свободной камеры и
// положение указателя в координатах окна.
type Input struct {
	Move    viewport.Point
	Pointer viewport.Point
}

// Engine владеет всем состоянием конвейера: камерой, геометрией холста,
// пулом буферов и сессией захвата. Глобальных переменных нет, каждое окно
// может держать свой Engine.
type Engine struct {
	cfg     *config.Config
	toggles config.Toggles

	rig  *camera.Rig
	cam  camera.State
	geom viewport.Geometry

	pool  *system.ImagePool
	world *scene.Scene

	canvas *image.RGBA
	clock  float64

	session *capture.Session
	writer  *capture.Writer

	curtain color.RGBA
}

// New собирает движок из конфигурации. Строковые режимы разбираются здесь
// один раз; дальше по конвейеру ходят только закрытые перечисления.
// artwork может быть nil.
func New(cfg *config.Config, artwork *image.RGBA) (*Engine, error) {
	toggles, err := parseToggles(cfg)
	if err != nil {
		return nil, err
	}

	world, err := scene.NewScene(cfg.QRContent)
	if err != nil {
		return nil, err
	}
	world.Artwork = artwork

	e := &Engine{
		cfg:     cfg,
		toggles: toggles,
		rig:     camera.NewRig(),
		pool:    system.NewImagePool(),
		world:   world,
		curtain: color.RGBA{R: 24, G: 24, B: 28, A: 255},
	}
	e.cam.Freelook = toggles.Freelook
	return e, nil
}

func parseToggles(cfg *config.Config) (config.Toggles, error) {
	sizing, err := viewport.ParseMode(cfg.Sizing)
	if err != nil {
		return config.Toggles{}, err
	}
	alignment, err := camera.ParseAlignment(cfg.Alignment)
	if err != nil {
		return config.Toggles{}, err
	}
	filter, err := blit.ParseFilter(cfg.Filter)
	if err != nil {
		return config.Toggles{}, err
	}
	return config.Toggles{
		Sizing:       sizing,
		Alignment:    alignment,
		Filter:       filter,
		Compensate:   cfg.Compensate,
		Freelook:     cfg.Freelook,
		SnapPointer:  cfg.SnapPointer,
		CenterCamera: cfg.CenterCamera,
		ShowCursor:   cfg.ShowCursor,
	}, nil
}

// Toggles возвращает текущий набор переключателей.
func (e *Engine) Toggles() config.Toggles { return e.toggles }

// SetToggles подменяет набор переключателей; следующий Step его увидит.
func (e *Engine) SetToggles(t config.Toggles) { e.toggles = t }

// Camera возвращает копию состояния камеры.
func (e *Engine) Camera() camera.State { return e.cam }

// Geometry возвращает геометрию, рассчитанную последним Step.
func (e *Engine) Geometry() viewport.Geometry { return e.geom }

// Step продвигает симуляцию на dt секунд и компонует кадр окна. Буфер
// кадра берется из пула; когда кадр больше не нужен, вызывающий обязан
// вернуть его через Release (или передать владение через CaptureFrame).
func (e *Engine) Step(in Input, dt float64) (*image.RGBA, error) {
	t := e.toggles // один снимок настроек на весь кадр

	// NaN и Inf из слоя ввода гасим на границе, до камеры они не доходят
	in.Move = sanitize(in.Move)
	in.Pointer = sanitize(in.Pointer)

	e.cam.Freelook = t.Freelook
	e.rig.Advance(&e.cam, in.Move, dt, e.cfg.Scale)

	window := viewport.Pt(float64(e.cfg.WindowWidth), float64(e.cfg.WindowHeight))
	if !e.geom.SameInputs(window, e.cfg.Scale, t.Sizing) {
		g, err := viewport.Compute(window, e.cfg.Scale, t.Sizing)
		if err != nil {
			return nil, err
		}
		e.geom = g
		e.canvas = nil
		if !g.Empty() {
			e.canvas = image.NewRGBA(image.Rect(0, 0, int(g.Canvas.X), int(g.Canvas.Y)))
		}
	}

	e.cam.Align(e.cfg.Scale, t.Alignment)

	offset := e.cam.Aligned
	if t.CenterCamera {
		offset = offset.Sub(e.geom.Canvas.Div(2).Floor())
	}
	bias := camera.SamplingBias(e.cam.Ideal, e.cam.Aligned, e.cfg.Scale)

	if e.canvas != nil {
		e.world.Render(e.canvas, scene.Frame{
			Time:       e.clock,
			Camera:     offset,
			Pointer:    e.geom.ScreenToCanvas(in.Pointer, t.SnapPointer),
			RawPointer: e.geom.ScreenToCanvas(in.Pointer, false),
			Scale:      e.cfg.Scale,
			ShowCursor: t.ShowCursor,
		})
	}

	out := e.pool.Get(image.Rect(0, 0, e.cfg.WindowWidth, e.cfg.WindowHeight))
	blit.Compose(out, e.canvas, e.geom, blit.Options{
		Filter:  t.Filter,
		Bias:    bias,
		UseBias: t.Compensate,
		Curtain: e.curtain,
	})

	e.clock += dt
	return out, nil
}

// Release возвращает буфер кадра в пул.
func (e *Engine) Release(img *image.RGBA) {
	e.pool.Put(img)
}

// StartCapture открывает сессию захвата и асинхронный писатель поверх нее.
// Повторный вызов при активной сессии ничего не делает.
func (e *Engine) StartCapture() error {
	if e.session != nil {
		return nil
	}
	s, err := capture.Begin(e.cfg.CaptureRoot)
	if err != nil {
		return err
	}
	depth := e.cfg.QueueDepth
	if depth < 1 {
		depth = 8
	}
	e.session = s
	e.writer = capture.NewWriter(s, depth, func(img image.Image) {
		if rgba, ok := img.(*image.RGBA); ok {
			e.pool.Put(rgba)
		}
	})
	return nil
}

// CaptureFrame отправляет кадр писателю. Владение буфером переходит к
// нему: после записи буфер сам вернется в пул.
func (e *Engine) CaptureFrame(img *image.RGBA) error {
	if e.writer == nil {
		return capture.ErrNotActive
	}
	return e.writer.Enqueue(img)
}

// StopCapture дописывает очередь, завершает сессию и возвращает сводку
// вместе с первой ошибкой записи, если она была.
func (e *Engine) StopCapture() (capture.Summary, error) {
	if e.session == nil {
		return capture.Summary{}, nil
	}
	err := e.writer.Close()
	summary := e.session.End()
	e.session = nil
	e.writer = nil
	return summary, err
}

// ApplyEvent применяет событие сценария к переключателям.
func (e *Engine) ApplyEvent(ev director.Event) error {
	t := e.toggles
	switch ev.Toggle {
	case "sizing":
		m, err := viewport.ParseMode(ev.Value)
		if err != nil {
			return err
		}
		t.Sizing = m
	case "alignment":
		a, err := camera.ParseAlignment(ev.Value)
		if err != nil {
			return err
		}
		t.Alignment = a
	case "filter":
		f, err := blit.ParseFilter(ev.Value)
		if err != nil {
			return err
		}
		t.Filter = f
	case "compensate":
		t.Compensate = parseBool(ev.Value)
	case "freelook":
		t.Freelook = parseBool(ev.Value)
	case "snap":
		t.SnapPointer = parseBool(ev.Value)
	case "center":
		t.CenterCamera = parseBool(ev.Value)
	case "cursor":
		t.ShowCursor = parseBool(ev.Value)
	default:
		return fmt.Errorf("неизвестный переключатель: %s", ev.Toggle)
	}
	e.toggles = t
	return nil
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func sanitize(p viewport.Point) viewport.Point {
	if !p.Finite() {
		return viewport.Point{}
	}
	return p
}
