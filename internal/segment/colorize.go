package segment

import (
	"image"
	"image/color"
)

// RegionColor maps a label to its visualization color. Label 0 (unassigned)
// is white; label n>0 maps to (35n mod 256, 90n mod 256, 30n mod 256).
// Wrap-around is intentional: colors may repeat for large region counts.
// This is a debugging visualization, not a stable color identity.
func RegionColor(label int) color.RGBA {
	if label == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBA{
		R: uint8(35 * label),
		G: uint8(90 * label),
		B: uint8(30 * label),
		A: 255,
	}
}

// Colorize renders a label map as an RGBA image. Row x, column y in the map
// becomes image pixel (y, x). Pure presentation; not part of the algorithm's
// correctness surface.
func Colorize(labels *LabelMap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, labels.Width(), labels.Height()))
	for x := 0; x < labels.Height(); x++ {
		for y := 0; y < labels.Width(); y++ {
			img.SetRGBA(y, x, RegionColor(labels.Get(x, y)))
		}
	}
	return img
}
