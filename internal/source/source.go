package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

type Artwork interface {
	Count() int
	Dimensions(index int) (width, height float64, err error)
	Load(index int, maxSize int) (*image.RGBA, error)
	Close() error
}

func Open(path string) (Artwork, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDFArtwork(path)
	case ".png", ".jpg", ".jpeg":
		return NewImageArtwork(path)
	default:
		return nil, fmt.Errorf("unsupported artwork format: %s", path)
	}
}

type PDFArtwork struct {
	doc  *fitz.Document
	path string
}

func NewPDFArtwork(path string) (*PDFArtwork, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFArtwork{doc: doc, path: path}, nil
}

func (p *PDFArtwork) Count() int {
	return p.doc.NumPage()
}

func (p *PDFArtwork) Dimensions(index int) (float64, float64, error) {
	rect, err := p.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (p *PDFArtwork) Load(index int, maxSize int) (*image.RGBA, error) {
	w, h, err := p.Dimensions(index)
	if err != nil {
		return nil, err
	}

	// Page bounds come back in points at 72 dpi, so render at the dpi
	// that lands the longer side near the requested size
	dpi := 72.0
	if maxSize > 0 {
		longer := w
		if h > longer {
			longer = h
		}
		if longer > 0 {
			dpi = 72.0 * float64(maxSize) / longer
		}
	}

	workerDoc, err := fitz.New(p.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()

	img, err := workerDoc.ImageDPI(index, dpi)
	if err != nil {
		return nil, err
	}
	return fit(img, maxSize), nil
}

func (p *PDFArtwork) Close() error {
	return p.doc.Close()
}
