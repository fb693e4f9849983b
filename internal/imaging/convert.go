package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/pixelgrove/region-tools/internal/segment"
)

// jpegQuality is the encoder quality for .jpg/.jpeg output.
const jpegQuality = 95

// GridFromImage converts an image into the core's PixelGrid. Samples are
// reduced to 8-bit channels; image pixel (ix, iy) lands at grid row iy,
// column ix. Empty images are rejected.
func GridFromImage(img image.Image) (*segment.PixelGrid, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	grid, err := segment.NewPixelGrid(height, width)
	if err != nil {
		return nil, fmt.Errorf("image unusable as grid: %w", err)
	}

	for iy := 0; iy < height; iy++ {
		for ix := 0; ix < width; ix++ {
			r, g, b, _ := img.At(bounds.Min.X+ix, bounds.Min.Y+iy).RGBA()
			grid.SetPixel(iy, ix, segment.Pixel{int(r >> 8), int(g >> 8), int(b >> 8)})
		}
	}
	return grid, nil
}

// SaveImage writes an image to path, choosing the encoder from the file
// extension (".png", ".jpg"/".jpeg").
func SaveImage(path string, img image.Image) error {
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(jpegQuality)
	default:
		return fmt.Errorf("unsupported output extension %q: use .png, .jpg or .jpeg", filepath.Ext(path))
	}

	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodeBase64PNG packages an image as a base64 PNG string for transport in
// tool results.
func EncodeBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
