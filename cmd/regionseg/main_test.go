package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeRunImage(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{120, 120, 120, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func writeRunConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	return img
}

func TestRun_ThresholdFromConfig(t *testing.T) {
	imgPath := writeRunImage(t, 6, 6)
	cfgPath := writeRunConfig(t, "segmentation:\n  threshold: 10\n")
	outPath := filepath.Join(t.TempDir(), "out.png")

	if err := run([]string{"-config", cfgPath, "-out", outPath, imgPath}); err != nil {
		t.Fatalf("run with config-supplied threshold failed: %v", err)
	}

	out := decodePNG(t, outPath)
	if out.Bounds().Dx() != 6 || out.Bounds().Dy() != 6 {
		t.Errorf("output size: got %dx%d, want 6x6", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestRun_RequiresThresholdWithoutConfig(t *testing.T) {
	imgPath := writeRunImage(t, 4, 4)

	if err := run([]string{imgPath}); err == nil {
		t.Error("run without a threshold or config file should fail")
	}
}

func TestRun_CropFromConfig(t *testing.T) {
	imgPath := writeRunImage(t, 10, 8)
	cfgPath := writeRunConfig(t, `
segmentation:
  threshold: 10
preprocess:
  crop: {x1: 2, y1: 1, x2: 8, y2: 7}
`)
	outPath := filepath.Join(t.TempDir(), "out.png")

	if err := run([]string{"-config", cfgPath, "-out", outPath, imgPath}); err != nil {
		t.Fatalf("run with config-supplied crop failed: %v", err)
	}

	// The colorized map has the cropped dimensions.
	out := decodePNG(t, outPath)
	if out.Bounds().Dx() != 6 || out.Bounds().Dy() != 6 {
		t.Errorf("output size: got %dx%d, want 6x6", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestRun_RectFlagOverridesConfigCrop(t *testing.T) {
	imgPath := writeRunImage(t, 10, 8)
	cfgPath := writeRunConfig(t, `
segmentation:
  threshold: 10
preprocess:
  crop: {x1: 2, y1: 1, x2: 8, y2: 7}
`)
	outPath := filepath.Join(t.TempDir(), "out.png")

	if err := run([]string{"-config", cfgPath, "-rect", "0,0,4,4", "-out", outPath, imgPath}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out := decodePNG(t, outPath)
	if out.Bounds().Dx() != 4 || out.Bounds().Dy() != 4 {
		t.Errorf("output size: got %dx%d, want 4x4 from the -rect flag", out.Bounds().Dx(), out.Bounds().Dy())
	}
}
