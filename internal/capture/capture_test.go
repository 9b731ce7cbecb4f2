package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	root := t.TempDir()

	s, err := Begin(root)
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.SaveFrame(testFrame(4, 3, uint8(i*40))); err != nil {
			t.Fatalf("SaveFrame %d returned error: %v", i, err)
		}
	}

	// Frames land as 0.png, 1.png, 2.png in the session directory
	for i := 0; i < 3; i++ {
		path := filepath.Join(s.Dir(), fmt.Sprintf("%d.png", i))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected frame file %s: %v", path, err)
		}
	}

	sum := s.End()
	if sum.Frames != 3 {
		t.Errorf("Expected summary of 3 frames, got %d", sum.Frames)
	}
	if sum.Dir != s.Dir() {
		t.Errorf("Expected summary dir %s, got %s", s.Dir(), sum.Dir)
	}

	// Ending again is a no-op
	if again := s.End(); again != (Summary{}) {
		t.Errorf("Expected zero summary from a second End, got %+v", again)
	}
}

func TestSaveFrameInactive(t *testing.T) {
	var nilSession *Session
	if err := nilSession.SaveFrame(testFrame(2, 2, 0)); !errors.Is(err, ErrNotActive) {
		t.Errorf("Expected ErrNotActive on nil session, got %v", err)
	}

	var zero Session
	if err := zero.SaveFrame(testFrame(2, 2, 0)); !errors.Is(err, ErrNotActive) {
		t.Errorf("Expected ErrNotActive on zero session, got %v", err)
	}

	root := t.TempDir()
	s, err := Begin(root)
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	s.End()
	if err := s.SaveFrame(testFrame(2, 2, 0)); !errors.Is(err, ErrNotActive) {
		t.Errorf("Expected ErrNotActive after End, got %v", err)
	}

	// No file may appear from the rejected save
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no frame files, found %d", len(entries))
	}
}

func TestWriteFailureKeepsIndex(t *testing.T) {
	s, err := Begin(t.TempDir())
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}

	if err := s.SaveFrame(testFrame(4, 4, 10)); err != nil {
		t.Fatalf("SaveFrame 0 returned error: %v", err)
	}

	// Block the next frame path with a directory so the create fails
	blocked := filepath.Join(s.Dir(), "1.png")
	if err := os.Mkdir(blocked, 0755); err != nil {
		t.Fatalf("Mkdir returned error: %v", err)
	}

	err = s.SaveFrame(testFrame(4, 4, 20))
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("Expected a WriteError, got %v", err)
	}
	if werr.Frame != 1 {
		t.Errorf("Expected the failure on frame 1, got %d", werr.Frame)
	}
	if s.Frames() != 1 {
		t.Errorf("Expected frame count to stay at 1 after the failure, got %d", s.Frames())
	}

	// Frame 0 is untouched by the failed write
	if _, err := os.Stat(filepath.Join(s.Dir(), "0.png")); err != nil {
		t.Errorf("Expected frame 0 to survive: %v", err)
	}

	// The session is still active and retries the same number
	if err := os.Remove(blocked); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := s.SaveFrame(testFrame(4, 4, 20)); err != nil {
		t.Fatalf("Expected the retry to succeed, got %v", err)
	}

	sum := s.End()
	if sum.Frames != 2 {
		t.Errorf("Expected 2 frames in the summary, got %d", sum.Frames)
	}
}

func TestSavedFramePixelsExact(t *testing.T) {
	s, err := Begin(t.TempDir())
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}

	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	colors := []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255},
		{10, 20, 30, 255}, {200, 100, 50, 255}, {0, 0, 0, 255},
	}
	for i, c := range colors {
		src.SetRGBA(i%3, i/3, c)
	}

	if err := s.SaveFrame(src); err != nil {
		t.Fatalf("SaveFrame returned error: %v", err)
	}

	f, err := os.Open(filepath.Join(s.Dir(), "0.png"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	for i, c := range colors {
		r, g, b, a := decoded.At(i%3, i/3).RGBA()
		if uint8(r>>8) != c.R || uint8(g>>8) != c.G || uint8(b>>8) != c.B || uint8(a>>8) != c.A {
			t.Errorf("Pixel %d changed across the save: expected %v, got (%d, %d, %d, %d)",
				i, c, r>>8, g>>8, b>>8, a>>8)
		}
	}
}

func TestBeginUnwritableRoot(t *testing.T) {
	// A plain file where the root should be makes MkdirAll fail
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	_, err := Begin(blocked)
	var ierr *InitError
	if !errors.As(err, &ierr) {
		t.Fatalf("Expected an InitError, got %v", err)
	}
	t.Logf("Init failure surfaced as: %v", ierr)
}

// testFrame builds a small solid frame with a marker shade
func testFrame(w, h int, shade uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: shade, G: shade, B: 128, A: 255})
		}
	}
	return img
}
