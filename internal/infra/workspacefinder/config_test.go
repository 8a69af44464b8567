package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/diatonic/internal/domain"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")

	// Partial config (no paths)
	writeConfig(t, root, "diatonic:\n  defaults:\n    direction: desc\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Defaults.Direction != domain.Descending {
		t.Fatalf("expected direction=desc, got=%s", cfg.Defaults.Direction)
	}
	if cfg.Defaults.Format != domain.FormatPretty {
		t.Fatalf("expected default format=pretty, got=%s", cfg.Defaults.Format)
	}
	if cfg.Paths.SheetsDir != "sheets" {
		t.Fatalf("expected sheets dir=sheets, got=%s", cfg.Paths.SheetsDir)
	}
	if cfg.Paths.RunsDir != "runs" {
		t.Fatalf("expected runs dir=runs, got=%s", cfg.Paths.RunsDir)
	}
}

func TestLoadConfig_Full(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
diatonic:
  defaults:
    direction: asc
    format: json
  paths:
    sheets_dir: drills
    runs_dir: out/runs
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Defaults.Format != domain.FormatJSON {
		t.Fatalf("expected json, got %s", cfg.Defaults.Format)
	}
	if cfg.Paths.SheetsDir != "drills" || cfg.Paths.RunsDir != "out/runs" {
		t.Fatalf("unexpected paths: %+v", cfg.Paths)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"direction": "diatonic:\n  defaults:\n    direction: sideways\n",
		"format":    "diatonic:\n  defaults:\n    format: xml\n",
		"yaml":      "diatonic: [\n",
	}
	for name, content := range cases {
		root := t.TempDir()
		writeConfig(t, root, content)

		_, err := LoadConfig(root)
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Errorf("%s: expected invalid_config, got %v", name, err)
		}
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected defaults alongside the error, got %+v", cfg)
	}
}
