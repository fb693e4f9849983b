package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Segmentation.Threshold != 20 {
		t.Errorf("default threshold: got %v, want 20", cfg.Segmentation.Threshold)
	}
	if cfg.Segmentation.Mode != "fixed" {
		t.Errorf("default mode: got %q, want fixed", cfg.Segmentation.Mode)
	}
	if cfg.Output.Path != "segmented.png" {
		t.Errorf("default output: got %q, want segmented.png", cfg.Output.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Segmentation.Threshold != 20 {
		t.Errorf("threshold: got %v, want default 20", cfg.Segmentation.Threshold)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
segmentation:
  threshold: 12.5
  mode: adaptive
  seeds:
    - {x: 4, y: 7}
    - {x: 10, y: 3}
preprocess:
  crop: {x1: 2, y1: 1, x2: 8, y2: 7}
  scale: 0.5
  blurSigma: 1.2
output:
  path: out.jpg
  stats: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Segmentation.Threshold != 12.5 {
		t.Errorf("threshold: got %v, want 12.5", cfg.Segmentation.Threshold)
	}
	if cfg.Segmentation.Mode != "adaptive" {
		t.Errorf("mode: got %q, want adaptive", cfg.Segmentation.Mode)
	}
	if len(cfg.Segmentation.Seeds) != 2 || cfg.Segmentation.Seeds[1] != (Seed{X: 10, Y: 3}) {
		t.Errorf("seeds: got %+v", cfg.Segmentation.Seeds)
	}
	if cfg.Preprocess.Scale != 0.5 || cfg.Preprocess.BlurSigma != 1.2 {
		t.Errorf("preprocess: got %+v", cfg.Preprocess)
	}
	if cfg.Preprocess.Crop == nil || *cfg.Preprocess.Crop != (Crop{X1: 2, Y1: 1, X2: 8, Y2: 7}) {
		t.Errorf("crop: got %+v", cfg.Preprocess.Crop)
	}
	if cfg.Output.Path != "out.jpg" || !cfg.Output.Stats {
		t.Errorf("output: got %+v", cfg.Output)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
segmentation:
  threshold: 7
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Segmentation.Threshold != 7 {
		t.Errorf("threshold: got %v, want 7", cfg.Segmentation.Threshold)
	}
	if cfg.Segmentation.Mode != "fixed" {
		t.Errorf("mode should fall back to default, got %q", cfg.Segmentation.Mode)
	}
	if cfg.Output.Path != "segmented.png" {
		t.Errorf("output path should fall back to default, got %q", cfg.Output.Path)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative threshold", "segmentation:\n  threshold: -3\n"},
		{"bad mode", "segmentation:\n  mode: fuzzy\n"},
		{"inverted crop", "preprocess:\n  crop: {x1: 5, y1: 0, x2: 2, y2: 4}\n"},
		{"negative scale", "preprocess:\n  scale: -1\n"},
		{"negative blur", "preprocess:\n  blurSigma: -2\n"},
		{"empty output", "output:\n  path: \"\"\n"},
		{"malformed yaml", "segmentation: [not a map\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("explicitly named missing file should fail")
	}
}
