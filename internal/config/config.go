package config

import (
	"github.com/caspark/pixelperfect/internal/blit"
	"github.com/caspark/pixelperfect/internal/camera"
	"github.com/caspark/pixelperfect/internal/viewport"
)

type Config struct {
	WindowWidth  int
	WindowHeight int
	Scale        float64

	Sizing    string
	Alignment string
	Filter    string

	Compensate   bool
	Freelook     bool
	SnapPointer  bool
	CenterCamera bool
	ShowCursor   bool

	Duration    float64
	FPS         int
	Revolutions int
	ScriptPath  string

	ArtworkPath string
	QRContent   string

	CaptureRoot string
	QueueDepth  int
	OutputVideo string
	Encoder     string
	Quality     int

	VerifyDir string
	Metric    string

	ShowStats    bool
	BuildVersion string
}

type Toggles struct {
	Sizing       viewport.Mode
	Alignment    camera.Alignment
	Filter       blit.Filter
	Compensate   bool
	Freelook     bool
	SnapPointer  bool
	CenterCamera bool
	ShowCursor   bool
}
