package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrNotActive reports a frame save attempted outside an active session.
var ErrNotActive = errors.New("capture: session is not active")

// InitError reports a session that could not create its frame directory.
// No session becomes active when it is returned.
type InitError struct {
	Dir string
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("capture: creating %s: %v", e.Dir, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// WriteError reports a frame that could not be encoded or written. The
// session stays active and the frame number is not consumed.
type WriteError struct {
	Frame uint64
	Path  string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("capture: frame %d to %s: %v", e.Frame, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Session writes numbered PNG frames into a timestamped directory. The
// zero value is inactive; Begin returns an active session. A session is
// driven by one goroutine at a time, but independent sessions write to
// distinct directories and may run concurrently.
type Session struct {
	dir    string
	frame  uint64
	active bool
}

// Begin opens a capture session under root, creating
// <root>/<millisecond epoch>/frames/ up front so an unwritable location
// surfaces here instead of at the first frame. An empty root defaults to
// "capture".
func Begin(root string) (*Session, error) {
	if root == "" {
		root = "capture"
	}
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	dir := filepath.Join(root, stamp, "frames")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &InitError{Dir: dir, Err: err}
	}
	return &Session{dir: dir, active: true}, nil
}

// Dir returns the directory frames are written into.
func (s *Session) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Frames returns how many frames have been written so far.
func (s *Session) Frames() uint64 {
	if s == nil {
		return 0
	}
	return s.frame
}

// SaveFrame encodes img as PNG into <dir>/<frame>.png, blocking until
// the file is closed. The frame number advances only on success, so a
// failed frame is retried under the same number by the next call. Saving
// on an inactive session returns ErrNotActive and touches nothing.
func (s *Session) SaveFrame(img image.Image) error {
	if s == nil || !s.active {
		return ErrNotActive
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%d.png", s.frame))
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Frame: s.frame, Path: path, Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return &WriteError{Frame: s.frame, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Frame: s.frame, Path: path, Err: err}
	}

	s.frame++
	return nil
}

// Summary is what a finished session reports.
type Summary struct {
	Frames uint64
	Dir    string
}

// End deactivates the session and reports what it wrote. Ending an
// inactive session again is a no-op and returns the zero summary.
func (s *Session) End() Summary {
	if s == nil || !s.active {
		return Summary{}
	}
	s.active = false
	return Summary{Frames: s.frame, Dir: s.dir}
}
