package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vimdl/internal/config"
)

func TestCheckDirectoryOK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectory("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if result.FreeBytes == 0 {
		t.Fatalf("expected free space to be reported, got detail %q", result.Detail)
	}
	if !strings.Contains(result.Detail, "free") {
		t.Fatalf("expected free space in detail, got %q", result.Detail)
	}
}

func TestCheckDirectoryNotExist(t *testing.T) {
	result := CheckDirectory("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryNotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectory("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAllSkipsDisabledFeatures(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "missing")
	cfg.History.Enabled = false
	cfg.Logging.File = false

	results := RunAll(&cfg)
	if len(results) != 1 || results[0].Name != "Work directory" || !results[0].Passed {
		t.Fatalf("expected only a passing work directory check, got %+v", results)
	}

	cfg.History.Enabled = true
	cfg.Logging.File = true
	results = RunAll(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected three checks, got %d", len(results))
	}
	if results[2].Passed {
		t.Fatalf("missing log directory should fail")
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}
