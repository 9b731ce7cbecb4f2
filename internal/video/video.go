package video

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

// Options управляет сборкой захваченных кадров в ролик
type Options struct {
	FPS     int
	Encoder string
	Quality int
}

type Assembler interface {
	Assemble(ctx context.Context, framesDir, outPath string, opts Options) error
}

type FFmpegAssembler struct{}

// Assemble склеивает нумерованные кадры <framesDir>/%d.png в mp4
func (a *FFmpegAssembler) Assemble(ctx context.Context, framesDir, outPath string, opts Options) error {
	args := a.buildFFmpegArgs(framesDir, outPath, opts)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg assembly error: %v, output: %s", err, string(out))
	}
	return nil
}

func (a *FFmpegAssembler) buildFFmpegArgs(framesDir, outPath string, opts Options) []string {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	encoder := opts.Encoder
	if encoder == "" {
		encoder = "libx264"
	}
	quality := opts.Quality
	if quality <= 0 {
		quality = 23
	}

	args := []string{
		"-y",
		"-framerate", fmt.Sprintf("%d", fps),
		"-start_number", "0",
		"-i", filepath.Join(framesDir, "%d.png"),
		"-c:v", encoder,
	}

	// Качество в зависимости от энкодера
	switch encoder {
	case "h264_videotoolbox":
		bitrate := quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	args = append(args, "-pix_fmt", "yuv420p", outPath)
	return args
}
