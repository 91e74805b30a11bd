package deps

import (
	"strings"

	"vimdl/internal/config"
)

const defaultFFmpeg = "ffmpeg"

// FFmpegRequirement describes the muxer binary. An empty binary falls back
// to ffmpeg on PATH.
func FFmpegRequirement(binary string) Requirement {
	cmd := strings.TrimSpace(binary)
	if cmd == "" {
		cmd = defaultFFmpeg
	}
	return Requirement{
		Name:        "FFmpeg",
		Command:     cmd,
		Description: "Muxes the downloaded audio and video tracks",
	}
}

// CheckFFmpeg reports whether the configured muxer binary can be executed.
func CheckFFmpeg(binary string) Status {
	return Check(FFmpegRequirement(binary))
}

// Requirements lists the external binaries a download needs under cfg.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{FFmpegRequirement(cfg.Muxer.FFmpegBinary)}
}
