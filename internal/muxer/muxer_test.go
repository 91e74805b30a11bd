package muxer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"vimdl/internal/logging"
	"vimdl/internal/services"
	"vimdl/internal/testsupport"
)

type recordedCall struct {
	name string
	args []string
}

func setupInputs(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	audio := filepath.Join(dir, "run.audio.tmp")
	video := filepath.Join(dir, "run.video.tmp")
	testsupport.WriteFile(t, audio, 32)
	testsupport.WriteFile(t, video, 64)
	return audio, video, filepath.Join(dir, "out.mp4")
}

func TestMuxBuildsStreamCopyCommand(t *testing.T) {
	audio, video, output := setupInputs(t)

	var calls []recordedCall
	m := NewFFmpeg("/opt/ffmpeg/bin/ffmpeg", false, logging.NewNop())
	m.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		calls = append(calls, recordedCall{name: name, args: args})
		return os.WriteFile(output, []byte("muxed"), 0o644)
	})

	if err := m.Mux(context.Background(), audio, video, output); err != nil {
		t.Fatalf("Mux returned error: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected one ffmpeg invocation, got %d", len(calls))
	}
	want := []string{"-hide_banner", "-loglevel", "error", "-n", "-i", audio, "-i", video, "-c", "copy", output}
	if calls[0].name != "/opt/ffmpeg/bin/ffmpeg" || !slices.Equal(calls[0].args, want) {
		t.Fatalf("unexpected command: %s %v", calls[0].name, calls[0].args)
	}
}

func TestMuxOverwriteFlag(t *testing.T) {
	audio, video, output := setupInputs(t)
	testsupport.WriteFile(t, output, 8)

	var args []string
	m := NewFFmpeg("", true, logging.NewNop())
	m.WithCommandRunner(func(_ context.Context, name string, a ...string) error {
		if name != "ffmpeg" {
			t.Fatalf("expected default binary, got %s", name)
		}
		args = a
		return nil
	})
	if err := m.Mux(context.Background(), audio, video, output); err != nil {
		t.Fatalf("Mux returned error: %v", err)
	}
	if !slices.Contains(args, "-y") || slices.Contains(args, "-n") {
		t.Fatalf("expected -y without -n, got %v", args)
	}
}

func TestMuxRefusesExistingOutputWithoutOverwrite(t *testing.T) {
	audio, video, output := setupInputs(t)
	testsupport.WriteFile(t, output, 8)

	m := NewFFmpeg("ffmpeg", false, logging.NewNop())
	m.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatalf("ffmpeg should not run")
		return nil
	})
	err := m.Mux(context.Background(), audio, video, output)
	var muxErr *Error
	if !errors.As(err, &muxErr) {
		t.Fatalf("expected muxer Error, got %v", err)
	}
	if _, statErr := os.Stat(output); statErr != nil {
		t.Fatalf("existing output should be left alone: %v", statErr)
	}
}

func TestMuxFailureWrapsExternalToolMarker(t *testing.T) {
	audio, video, output := setupInputs(t)

	m := NewFFmpeg("ffmpeg", false, logging.NewNop())
	m.WithCommandRunner(func(context.Context, string, ...string) error {
		if err := os.WriteFile(output, []byte("partial"), 0o644); err != nil {
			t.Fatalf("write partial output: %v", err)
		}
		return errors.New("exit status 1: invalid data")
	})

	err := m.Mux(context.Background(), audio, video, output)
	var muxErr *Error
	if !errors.As(err, &muxErr) || muxErr.Output != output {
		t.Fatalf("expected muxer Error for %s, got %v", output, err)
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker")
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Fatalf("partial output should be removed")
	}
}

func TestMuxMissingInput(t *testing.T) {
	audio, _, output := setupInputs(t)

	m := NewFFmpeg("ffmpeg", false, logging.NewNop())
	m.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatalf("ffmpeg should not run")
		return nil
	})
	err := m.Mux(context.Background(), audio, filepath.Join(t.TempDir(), "missing.tmp"), output)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
