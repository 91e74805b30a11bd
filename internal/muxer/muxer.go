package muxer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"vimdl/internal/logging"
	"vimdl/internal/services"
)

// Muxer combines one audio and one video file into a single container.
type Muxer interface {
	Mux(ctx context.Context, audioPath, videoPath, outputPath string) error
}

// Error reports a failed mux invocation.
type Error struct {
	Output string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("mux %s: %v", e.Output, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{services.ErrExternalTool, e.Err}
}

type commandRunner func(ctx context.Context, name string, args ...string) error

// FFmpeg stream-copies both inputs into the output with ffmpeg.
type FFmpeg struct {
	binary    string
	overwrite bool
	logger    *slog.Logger
	run       commandRunner
}

// NewFFmpeg constructs an ffmpeg muxer. An empty binary resolves "ffmpeg"
// from PATH.
func NewFFmpeg(binary string, overwrite bool, logger *slog.Logger) *FFmpeg {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{
		binary:    binary,
		overwrite: overwrite,
		logger:    logging.NewComponentLogger(logger, "muxer"),
		run:       defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (m *FFmpeg) WithCommandRunner(r commandRunner) {
	if m != nil && r != nil {
		m.run = r
	}
}

// Mux runs ffmpeg once. Both inputs must exist. A failed run removes any
// output ffmpeg left behind unless the file predates the call.
func (m *FFmpeg) Mux(ctx context.Context, audioPath, videoPath, outputPath string) error {
	if strings.TrimSpace(outputPath) == "" {
		return &Error{Output: outputPath, Err: errors.New("output path is required")}
	}
	for _, input := range []string{audioPath, videoPath} {
		if _, err := os.Stat(input); err != nil {
			return &Error{Output: outputPath, Err: fmt.Errorf("input not found %q: %w", input, err)}
		}
	}

	_, statErr := os.Stat(outputPath)
	preexisting := statErr == nil
	if preexisting && !m.overwrite {
		return &Error{Output: outputPath, Err: fmt.Errorf("output exists: %w", fs.ErrExist)}
	}

	args := m.buildArgs(audioPath, videoPath, outputPath)
	m.logger.Debug("executing ffmpeg",
		logging.String("binary", m.binary),
		logging.String("args", strings.Join(args, " ")),
	)
	if err := m.run(ctx, m.binary, args...); err != nil {
		if !preexisting {
			_ = os.Remove(outputPath)
		}
		return &Error{Output: outputPath, Err: err}
	}

	m.logger.Info("tracks muxed",
		logging.String(logging.FieldEventType, "mux_complete"),
		logging.Output(outputPath),
	)
	return nil
}

func (m *FFmpeg) buildArgs(audioPath, videoPath, outputPath string) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if m.overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	return append(args,
		"-i", audioPath,
		"-i", videoPath,
		"-c", "copy",
		outputPath,
	)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
