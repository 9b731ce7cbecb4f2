package system

import (
	"image"
	"sync"
)

// ImagePool переиспользует буферы кадров (*image.RGBA), чтобы рендер-цикл
// не нагружал Garbage Collector аллокацией холста и окна на каждом кадре.
// Буферы группируются по размеру.
type ImagePool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

func NewImagePool() *ImagePool {
	return &ImagePool{
		pools: make(map[string]*sync.Pool),
	}
}

// Get возвращает буфер нужного размера из пула или создает новый,
// если подходящего по размеру нет.
func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	key := rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

// Put возвращает буфер в пул. Содержимое не очищается: кадр полностью
// перерисовывается перед следующим использованием.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
