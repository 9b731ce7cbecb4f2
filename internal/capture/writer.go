package capture

import (
	"errors"
	"image"

	"golang.org/x/sync/errgroup"
)

// ErrWriterClosed reports a frame enqueued after Close.
var ErrWriterClosed = errors.New("capture: writer is closed")

// Writer feeds a session through a bounded queue so the render loop does
// not block on the disk. A single consumer goroutine keeps the frame
// order. Ownership of an enqueued image transfers to the writer; the
// release callback gets each image back once its write finished, which
// is how pooled buffers return to their pool.
//
// Enqueue and Close belong to the goroutine driving the render loop.
type Writer struct {
	queue   chan image.Image
	g       errgroup.Group
	session *Session
	release func(image.Image)
	closed  bool
}

// NewWriter starts an asynchronous writer over an active session with
// the given queue depth. release may be nil.
func NewWriter(s *Session, depth int, release func(image.Image)) *Writer {
	if depth < 1 {
		depth = 1
	}
	w := &Writer{
		queue:   make(chan image.Image, depth),
		session: s,
		release: release,
	}
	w.g.Go(w.drain)
	return w
}

// drain is the consumer loop. A failed frame does not stop the stream:
// the session reuses its number for the next image, and the first error
// is kept for Close to report.
func (w *Writer) drain() error {
	var first error
	for img := range w.queue {
		if err := w.session.SaveFrame(img); err != nil && first == nil {
			first = err
		}
		if w.release != nil {
			w.release(img)
		}
	}
	return first
}

// Enqueue hands a frame to the writer, blocking while the queue is full.
// The caller must not touch the image afterwards.
func (w *Writer) Enqueue(img image.Image) error {
	if w.closed {
		return ErrWriterClosed
	}
	w.queue <- img
	return nil
}

// Close drains the queue and reports the first write error. Queued
// frames are written, not discarded, so toggling capture off right
// after a burst still lands every frame on disk.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.queue)
	return w.g.Wait()
}
