package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestImagePoolReuse(t *testing.T) {
	pool := NewImagePool()
	rect := image.Rect(0, 0, 333, 233)

	img := pool.Get(rect)
	if img.Bounds() != rect {
		t.Fatalf("Expected bounds %v, got %v", rect, img.Bounds())
	}

	pool.Put(img)
	again := pool.Get(rect)
	if again.Bounds() != rect {
		t.Errorf("Expected pooled buffer with bounds %v, got %v", rect, again.Bounds())
	}

	// A different size gets its own buffers
	other := pool.Get(image.Rect(0, 0, 10, 10))
	if other.Bounds() == rect {
		t.Error("Expected a differently sized buffer for a different rect")
	}
}

func TestImagePoolPutNil(t *testing.T) {
	pool := NewImagePool()
	pool.Put(nil) // must not panic

	// Putting a buffer the pool never created is accepted silently
	pool.Put(image.NewRGBA(image.Rect(0, 0, 4, 4)))
}

func TestFindLatestArtwork(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "old.png")
	if err := os.WriteFile(old, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatalf("Chtimes returned error: %v", err)
	}

	fresh := filepath.Join(dir, "fresh.pdf")
	if err := os.WriteFile(fresh, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	// Non-artwork files are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	found, err := FindLatestArtwork(dir)
	if err != nil {
		t.Fatalf("FindLatestArtwork returned error: %v", err)
	}
	if found != fresh {
		t.Errorf("Expected %s, got %s", fresh, found)
	}
}

func TestFindLatestArtworkEmpty(t *testing.T) {
	if _, err := FindLatestArtwork(t.TempDir()); err == nil {
		t.Error("Expected an error for a directory without artwork")
	}
}

func TestDiskFree(t *testing.T) {
	free, err := DiskFree(".")
	if err != nil {
		t.Fatalf("DiskFree returned error: %v", err)
	}
	if free == 0 {
		t.Error("Expected a non-zero free space figure")
	}
	t.Logf("Free disk space: %.1f GB", float64(free)/(1<<30))
}
