package scene

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/caspark/pixelperfect/internal/viewport"
)

// Scene is the demo world, drawn in virtual pixels: a color grid, three
// wandering circles, a field of sprite stamps, a QR plaque and an
// optional artwork panel. Single-pixel features are deliberate, they
// make resampling artifacts visible at a glance.
type Scene struct {
	Sprite  *image.RGBA // stamped across the pattern field
	QR      *image.RGBA // one module per virtual pixel
	Artwork *image.RGBA // optional panel from an artwork source
}

// Frame carries the per-frame inputs the scene draws from. Rendering is
// deterministic for identical frames.
type Frame struct {
	Time       float64
	Camera     viewport.Point // active camera offset, virtual px
	Pointer    viewport.Point // pointer in canvas space, snapped or raw
	RawPointer viewport.Point // pointer in canvas space, never snapped
	Scale      float64
	ShowCursor bool
}

var background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// NewScene builds the demo content; url ends up in the QR plaque.
func NewScene(url string) (*Scene, error) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("scene: building QR plaque: %w", err)
	}

	// A negative size renders one QR module per pixel
	qrImg := q.Image(-1)
	b := qrImg.Bounds()
	qr := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(qr, qr.Bounds(), qrImg, b.Min, draw.Src)

	return &Scene{Sprite: defaultSprite(), QR: qr}, nil
}

// Render draws one frame of the demo world into the canvas. Everything
// is positioned in world space and shifted by the camera offset.
func (s *Scene) Render(canvas *image.RGBA, f Frame) {
	Clear(canvas, background)

	cam := f.Camera

	// Color grid of single-pixel dots in the world's top-left corner
	for gy := 0; gy < 10; gy++ {
		for gx := 0; gx < 10; gx++ {
			c := color.RGBA{R: uint8(25 * gx), G: uint8(25 * gy), B: 160, A: 255}
			p := viewport.Pt(float64(gx*2), float64(gy*2)).Sub(cam)
			SetPixel(canvas, int(math.Floor(p.X)), int(math.Floor(p.Y)), c)
		}
	}

	// Wandering circles
	FillCircle(canvas, viewport.Pt(65+math.Cos(f.Time)*20, 42).Sub(cam), 10,
		color.RGBA{R: 60, G: 180, B: 75, A: 255})
	FillCircle(canvas, viewport.Pt(110, 48+math.Sin(f.Time)*14).Sub(cam), 7,
		color.RGBA{R: 0, G: 110, B: 200, A: 255})
	FillCircle(canvas, viewport.Pt(150+math.Cos(f.Time*0.7)*12, 30+math.Sin(f.Time*0.7)*12).Sub(cam), 5,
		color.RGBA{R: 255, G: 140, B: 0, A: 255})

	// A one-pixel horizontal line shows vertical crawl immediately
	lineY := int(math.Floor(70 - cam.Y))
	for x := 0; x < 180; x++ {
		SetPixel(canvas, int(math.Floor(float64(x)-cam.X)), lineY,
			color.RGBA{R: 90, G: 90, B: 90, A: 255})
	}

	// Sprite field: columns vary the translate pattern, rows mix in
	// pulsing scale and rotation
	if s.Sprite != nil {
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				pos := viewport.Pt(float64(20+col*40), float64(90+row*44))
				switch col {
				case 1:
					pos.X += math.Cos(f.Time) * 8
				case 2:
					pos.Y += math.Sin(f.Time) * 8
				case 3:
					pos.X += math.Cos(f.Time) * 8
					pos.Y += math.Sin(f.Time) * 8
				}
				scale := 1.0
				if row == 1 || row == 3 {
					scale = 1.5 + 0.5*math.Sin(f.Time)
				}
				angle := 0.0
				if row >= 2 {
					angle = f.Time
				}
				Stamp(canvas, s.Sprite, pos.Sub(cam), scale, angle)
			}
		}
	}

	if s.QR != nil {
		Stamp(canvas, s.QR, viewport.Pt(200, 16).Sub(cam), 1, 0)
	}
	if s.Artwork != nil {
		Stamp(canvas, s.Artwork, viewport.Pt(200, 70).Sub(cam), 1, 0)
	}

	if f.ShowCursor {
		s.drawCursor(canvas, f)
	}
}

// drawCursor draws a crosshair on the pointed-at pixel and a raw-position
// marker that stays four device pixels wide at any scale.
func (s *Scene) drawCursor(canvas *image.RGBA, f Frame) {
	red := color.RGBA{R: 220, G: 40, B: 40, A: 140}

	// The half-pixel nudge centers the crosshair on the pixel itself
	cx := int(math.Floor(f.Pointer.X + 0.5))
	cy := int(math.Floor(f.Pointer.Y + 0.5))
	for d := -4; d <= 4; d++ {
		BlendPixel(canvas, cx+d, cy, red)
		if d != 0 {
			BlendPixel(canvas, cx, cy+d, red)
		}
	}

	if f.Scale > 0 {
		side := 4 / f.Scale
		FillRect(canvas,
			int(math.Floor(f.RawPointer.X-side/2)),
			int(math.Floor(f.RawPointer.Y-side/2)),
			int(math.Ceil(side)), int(math.Ceil(side)),
			color.RGBA{R: 40, G: 40, B: 220, A: 180})
	}
}

// defaultSprite builds the builtin stamp: a ringed disc with one marker
// pixel so rotation reads clearly.
func defaultSprite() *image.RGBA {
	const n = 12
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	body := color.RGBA{R: 230, G: 170, B: 40, A: 255}
	edge := color.RGBA{R: 120, G: 70, B: 10, A: 255}

	c := float64(n) / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx := float64(x) + 0.5 - c
			dy := float64(y) + 0.5 - c
			d := math.Hypot(dx, dy)
			switch {
			case d <= c-2.5:
				img.SetRGBA(x, y, body)
			case d <= c-0.5:
				img.SetRGBA(x, y, edge)
			}
		}
	}
	img.SetRGBA(8, 4, color.RGBA{R: 20, G: 20, B: 20, A: 255})
	return img
}
