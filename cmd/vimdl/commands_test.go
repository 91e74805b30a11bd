package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vimdl/internal/testsupport"
)

func fixture() testsupport.Fixture {
	audioLow := testsupport.NewFixtureTrack("a-low", 8, 4, 10)
	audioLow.Bitrate = 64_000
	audioHigh := testsupport.NewFixtureTrack("a-high", 8, 4, 100, 200, 150)
	audioHigh.Bitrate = 128_000
	video := testsupport.NewFixtureTrack("v-1080", 16, 8, 500, 500)
	video.Height, video.Width, video.Bitrate = 1080, 1920, 4_500_000
	return testsupport.Fixture{
		ClipID: "clip-7",
		Audio:  []testsupport.FixtureTrack{audioLow, audioHigh},
		Video:  []testsupport.FixtureTrack{video},
	}
}

func TestDownloadCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	srv := testsupport.NewManifestServer(t, fixture())
	output := filepath.Join(env.baseDir, "clip.mp4")

	out, _, err := runCLI(t, []string{"download", "-p", srv.ManifestURL(), "-f", output}, env.configPath)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	requireContains(t, out, "Downloaded: "+output)

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "muxed" {
		t.Fatalf("expected stub ffmpeg output, got %q", data)
	}
	entries, err := os.ReadDir(env.cfg.Paths.WorkDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temporary file left behind: %s", entry.Name())
		}
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "completed")
	requireContains(t, out, "clip-7")
}

func TestDownloadCommandRequiresFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"download", "-f", "out.mp4"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "playlist-url") {
		t.Fatalf("expected missing playlist-url error, got %v", err)
	}
}

func TestDownloadCommandMissingFFmpeg(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Muxer.FFmpegBinary = filepath.Join(env.baseDir, "no-such-ffmpeg")
	writeTestConfig(t, env.configPath, env.cfg)
	srv := testsupport.NewManifestServer(t, fixture())

	_, _, err := runCLI(t, []string{"download", "-p", srv.ManifestURL(), "-f", filepath.Join(env.baseDir, "x.mp4")}, env.configPath)
	if err == nil {
		t.Fatalf("expected preflight failure")
	}
	if srv.Hits(testsupport.ManifestPath) != 0 {
		t.Fatalf("manifest should not be fetched when ffmpeg is missing")
	}
}

func TestDownloadCommandNoFullHDRendition(t *testing.T) {
	env := setupCLITestEnv(t)
	fx := fixture()
	fx.Video[0].Height = 720
	srv := testsupport.NewManifestServer(t, fx)

	_, _, err := runCLI(t, []string{"download", "-p", srv.ManifestURL(), "-f", filepath.Join(env.baseDir, "x.mp4")}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "no video rendition") {
		t.Fatalf("expected rendition error, got %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "invalid")
}

func TestRenditionsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	srv := testsupport.NewManifestServer(t, fixture())

	out, _, err := runCLI(t, []string{"renditions", "-p", srv.ManifestURL()}, env.configPath)
	if err != nil {
		t.Fatalf("renditions: %v", err)
	}
	requireContains(t, out, "Clip clip-7")
	requireContains(t, out, "a-high")
	requireContains(t, out, "128,000")
	requireContains(t, out, "1920x1080")

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "a-low") && strings.Contains(line, "*") {
			t.Fatalf("lower bitrate audio should not be marked: %s", line)
		}
		if strings.Contains(line, "a-high") && !strings.Contains(line, "*") {
			t.Fatalf("selected audio should be marked: %s", line)
		}
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No downloads recorded")
}

func TestDoctorCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "yes")

	env.cfg.Muxer.FFmpegBinary = "clearly-not-present-ffmpeg"
	writeTestConfig(t, env.configPath, env.cfg)
	out, _, err = runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatalf("expected doctor to fail when ffmpeg is missing")
	}
	requireContains(t, out, "not found")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Config path: "+env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatalf("expected refusal to overwrite existing config")
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate sample config: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestDownloadCommandWithoutHistory(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	srv := testsupport.NewManifestServer(t, fixture())
	output := filepath.Join(env.baseDir, "clip.mp4")

	if _, _, err := runCLI(t, []string{"download", "-p", srv.ManifestURL(), "-f", output}, env.configPath); err != nil {
		t.Fatalf("download: %v", err)
	}
	if _, err := os.Stat(env.cfg.HistoryPath()); !os.IsNotExist(err) {
		t.Fatalf("history database should not be created when disabled, stat err=%v", err)
	}
}
