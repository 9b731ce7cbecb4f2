package scene

import (
	"image"
	"image/color"
	"math"

	"github.com/caspark/pixelperfect/internal/viewport"
)

// Clear floods the whole canvas with one color.
func Clear(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// SetPixel writes one opaque pixel, ignoring positions off the canvas.
func SetPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	img.SetRGBA(x, y, c)
}

// BlendPixel draws one pixel with source-over alpha.
func BlendPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	if c.A == 255 {
		img.SetRGBA(x, y, c)
		return
	}
	if c.A == 0 {
		return
	}
	dst := img.RGBAAt(x, y)
	a := uint32(c.A)
	inv := 255 - a
	img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(c.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(c.B)*a + uint32(dst.B)*inv) / 255),
		A: 255,
	})
}

// FillRect fills a whole-pixel rectangle, blending when the color has
// alpha.
func FillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			BlendPixel(img, x+dx, y+dy, c)
		}
	}
}

// FillCircle fills a circle around a continuous center point. Pixels
// whose centers fall inside the radius are set.
func FillCircle(img *image.RGBA, center viewport.Point, r float64, c color.RGBA) {
	minX := int(math.Floor(center.X - r))
	maxX := int(math.Ceil(center.X + r))
	minY := int(math.Floor(center.Y - r))
	maxY := int(math.Ceil(center.Y + r))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - center.X
			dy := float64(y) + 0.5 - center.Y
			if dx*dx+dy*dy <= r*r {
				BlendPixel(img, x, y, c)
			}
		}
	}
}

// Stamp draws a sprite at pos (its top-left corner) with uniform scale
// and rotation around the sprite center, sampling nearest-neighbor so
// the result stays blocky. Zero rotation and unit scale reduce to a
// plain copy.
func Stamp(img *image.RGBA, sprite *image.RGBA, pos viewport.Point, scale, angle float64) {
	if sprite == nil || scale <= 0 {
		return
	}

	sb := sprite.Bounds()
	sw := float64(sb.Dx())
	sh := float64(sb.Dy())
	center := pos.Add(viewport.Pt(sw*scale/2, sh*scale/2))

	// Conservative destination bounds around the rotated footprint
	half := math.Hypot(sw, sh) * scale / 2
	minX := int(math.Floor(center.X - half))
	maxX := int(math.Ceil(center.X + half))
	minY := int(math.Floor(center.Y - half))
	maxY := int(math.Ceil(center.Y + half))

	sin, cos := math.Sincos(-angle)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			// Inverse-map the destination pixel center into sprite space
			dx := float64(x) + 0.5 - center.X
			dy := float64(y) + 0.5 - center.Y
			sx := (dx*cos - dy*sin) / scale
			sy := (dx*sin + dy*cos) / scale
			u := int(math.Floor(sx + sw/2))
			v := int(math.Floor(sy + sh/2))
			if u < 0 || u >= sb.Dx() || v < 0 || v >= sb.Dy() {
				continue
			}
			BlendPixel(img, x, y, sprite.RGBAAt(sb.Min.X+u, sb.Min.Y+v))
		}
	}
}
