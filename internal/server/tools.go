package server

// Tool is an MCP tool definition.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// thresholdProperty is the similarity-threshold schema fragment.
func thresholdProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Similarity threshold (Euclidean color distance); also the adaptive floor",
	}
}

// seedsProperty is the seed-list schema fragment. Coordinates use the
// core's matrix convention: x is the row, y the column.
func seedsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Seed coordinates (x = row, y = column) to grow regions from",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x": map[string]interface{}{"type": "integer", "description": "Row (0-based)"},
				"y": map[string]interface{}{"type": "integer", "description": "Column (0-based)"},
			},
			"required": []string{"x", "y"},
		},
	}
}

// preprocessProperties are the optional preprocessing schema fragments
// shared by the segmentation tools.
func preprocessProperties() map[string]interface{} {
	return map[string]interface{}{
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional resize factor applied before segmentation (0 or 1 = off)",
		},
		"blur_sigma": map[string]interface{}{
			"type":        "number",
			"description": "Optional Gaussian blur radius applied before segmentation (0 = off)",
		},
	}
}

// GetToolDefinitions returns all available tools.
func GetToolDefinitions() []Tool {
	segmentProps := map[string]interface{}{
		"path":      pathProperty(),
		"threshold": thresholdProperty(),
	}
	for k, v := range preprocessProperties() {
		segmentProps[k] = v
	}

	seededProps := map[string]interface{}{
		"path":      pathProperty(),
		"threshold": thresholdProperty(),
		"seeds":     seedsProperty(),
	}
	for k, v := range preprocessProperties() {
		seededProps[k] = v
	}

	statsProps := map[string]interface{}{
		"path":      pathProperty(),
		"threshold": thresholdProperty(),
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"fixed", "adaptive"},
			"description": "Similarity rule: fixed (distance to region seed) or adaptive (running-mean threshold)",
		},
		"seeds": seedsProperty(),
	}

	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image into the server cache and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file without caching its pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "segment_exhaustive",
			Description: "Segment an image by fixed-threshold region growing with every pixel as an " +
				"implicit seed. Returns region counts and the colorized label map as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": segmentProps,
				"required":   []string{"path", "threshold"},
			},
		},
		{
			Name: "segment_seeded",
			Description: "Segment an image by adaptive-threshold region growing from the given seeds. " +
				"Undersized regions are reclaimed; the run is bounded by an iteration cap and may " +
				"return a valid partial labeling (complete=false).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": seededProps,
				"required":   []string{"path", "threshold", "seeds"},
			},
		},
		{
			Name: "region_stats",
			Description: "Segment an image and return per-region statistics: pixel count, bounding box, " +
				"mean color and mean brightness.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": statsProps,
				"required":   []string{"path", "threshold", "mode"},
			},
		},
	}
}
