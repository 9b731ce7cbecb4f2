package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 13), G: uint8(y * 7), B: 90, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestImageArtworkSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.png")
	writeTestPNG(t, path, 20, 10)

	art, err := NewImageArtwork(path)
	if err != nil {
		t.Fatalf("NewImageArtwork failed: %v", err)
	}
	defer art.Close()

	if art.Count() != 1 {
		t.Fatalf("Expected 1 image, got %d", art.Count())
	}

	w, h, err := art.Dimensions(0)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if w != 20 || h != 10 {
		t.Errorf("Expected 20x10, got %vx%v", w, h)
	}
}

func TestImageArtworkDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "b.png"), 4, 4)
	writeTestPNG(t, filepath.Join(dir, "a.png"), 4, 4)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	art, err := NewImageArtwork(dir)
	if err != nil {
		t.Fatalf("NewImageArtwork failed: %v", err)
	}
	defer art.Close()

	if art.Count() != 2 {
		t.Errorf("Expected 2 images, got %d", art.Count())
	}
}

func TestImageArtworkLoadKeepsPixels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.png")
	writeTestPNG(t, path, 8, 6)

	art, err := NewImageArtwork(path)
	if err != nil {
		t.Fatalf("NewImageArtwork failed: %v", err)
	}
	defer art.Close()

	// Under the size cap the image passes through untouched
	img, err := art.Load(0, 32)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Fatalf("Expected 8x6, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	got := img.RGBAAt(3, 2)
	want := color.RGBA{R: 3 * 13, G: 2 * 7, B: 90, A: 255}
	if got != want {
		t.Errorf("Expected pixel %v at (3,2), got %v", want, got)
	}
}

func TestImageArtworkLoadScalesDown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.png")
	writeTestPNG(t, path, 64, 16)

	art, err := NewImageArtwork(path)
	if err != nil {
		t.Fatalf("NewImageArtwork failed: %v", err)
	}
	defer art.Close()

	img, err := art.Load(0, 32)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// The longer side lands on the cap, the shorter keeps the aspect
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 8 {
		t.Errorf("Expected 32x8, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestOpenDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.png")
	writeTestPNG(t, path, 4, 4)

	art, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer art.Close()

	if _, ok := art.(*ImageArtwork); !ok {
		t.Errorf("Expected *ImageArtwork for png, got %T", art)
	}

	if _, err := Open(filepath.Join(dir, "clip.mov")); err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
}
