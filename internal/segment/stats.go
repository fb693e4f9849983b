package segment

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// RegionStat summarizes one region in a finished label map.
type RegionStat struct {
	// Label is the region id.
	Label int `json:"label"`

	// Pixels is the number of cells carrying the label.
	Pixels int `json:"pixels"`

	// MinX, MinY, MaxX, MaxY bound the region (inclusive, matrix
	// coordinates: x is the row, y is the column).
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`

	// MeanColor is the per-channel mean of the region's pixels.
	MeanColor [3]float64 `json:"mean_color"`

	// MeanColorHex is the mean color as "#RRGGBB", assuming 8-bit channels.
	MeanColorHex string `json:"mean_color_hex"`

	// MeanBrightness is the mean of the per-pixel channel means.
	MeanBrightness float64 `json:"mean_brightness"`
}

// StatsResult carries per-region summaries plus run totals.
type StatsResult struct {
	// Regions holds one entry per surviving region, ordered by label.
	Regions []RegionStat `json:"regions"`

	// LabeledPixels is the number of assigned cells.
	LabeledPixels int `json:"labeled_pixels"`

	// TotalPixels is the grid size.
	TotalPixels int `json:"total_pixels"`

	// Complete reports whether every pixel was assigned.
	Complete bool `json:"complete"`
}

// Stats summarizes every region in a finished label map. Read-only pass over
// the grid and map; the dimensions must match.
func Stats(grid *PixelGrid, labels *LabelMap) (*StatsResult, error) {
	if grid.Height() != labels.Height() || grid.Width() != labels.Width() {
		return nil, fmt.Errorf("grid %dx%d and label map %dx%d differ in size",
			grid.Height(), grid.Width(), labels.Height(), labels.Width())
	}

	type acc struct {
		stat       RegionStat
		sum        [3]float64
		brightness []float64
	}
	byLabel := make(map[int]*acc)

	for x := 0; x < grid.Height(); x++ {
		for y := 0; y < grid.Width(); y++ {
			label := labels.Get(x, y)
			if label == 0 {
				continue
			}
			a, ok := byLabel[label]
			if !ok {
				a = &acc{stat: RegionStat{Label: label, MinX: x, MinY: y, MaxX: x, MaxY: y}}
				byLabel[label] = a
			}
			p := grid.At(x, y)
			a.stat.Pixels++
			for c := 0; c < 3; c++ {
				a.sum[c] += float64(p[c])
			}
			a.brightness = append(a.brightness, p.Brightness())
			if x < a.stat.MinX {
				a.stat.MinX = x
			}
			if x > a.stat.MaxX {
				a.stat.MaxX = x
			}
			if y < a.stat.MinY {
				a.stat.MinY = y
			}
			if y > a.stat.MaxY {
				a.stat.MaxY = y
			}
		}
	}

	regions := make([]RegionStat, 0, len(byLabel))
	for _, a := range byLabel {
		n := float64(a.stat.Pixels)
		for c := 0; c < 3; c++ {
			a.stat.MeanColor[c] = a.sum[c] / n
		}
		a.stat.MeanBrightness = stat.Mean(a.brightness, nil)
		a.stat.MeanColorHex = colorful.Color{
			R: clamp01(a.stat.MeanColor[0] / 255.0),
			G: clamp01(a.stat.MeanColor[1] / 255.0),
			B: clamp01(a.stat.MeanColor[2] / 255.0),
		}.Hex()
		regions = append(regions, a.stat)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Label < regions[j].Label })

	total := grid.Height() * grid.Width()
	return &StatsResult{
		Regions:       regions,
		LabeledPixels: labels.CountLabeled(),
		TotalPixels:   total,
		Complete:      labels.CountLabeled() == total,
	}, nil
}

// clamp01 constrains a value to [0, 1] for color conversion. Samples from
// sources deeper than 8 bits can exceed the nominal range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
