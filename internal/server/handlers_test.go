package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestImage creates a PNG split into a dark left half and a bright
// right half, and returns its path.
func writeTestImage(t *testing.T, width, height int, left, right color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
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

// callTool runs a tools/call request and decodes the JSON document inside
// the MCP content block into out.
func callTool(t *testing.T, s *Server, name string, args interface{}, out interface{}) *MCPResponse {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil || out == nil {
		return resp
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	text := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
	return resp
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	path := writeTestImage(t, 12, 8, color.RGBA{40, 40, 40, 255}, color.RGBA{40, 40, 40, 255})

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	resp := callTool(t, s, "image_load", map[string]string{"path": path}, &info)
	if resp.Error != nil {
		t.Fatalf("image_load failed: %+v", resp.Error)
	}
	if info.Width != 12 || info.Height != 8 || info.Format != "png" {
		t.Errorf("info: got %+v", info)
	}
}

func TestHandleToolsCall_ImageLoad_MissingFile(t *testing.T) {
	s := New()
	resp := callTool(t, s, "image_load",
		map[string]string{"path": filepath.Join(t.TempDir(), "absent.png")}, nil)

	if resp.Error == nil {
		t.Fatal("expected an error for a missing file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_SegmentExhaustive(t *testing.T) {
	s := New()
	// Two clearly separated halves: distance 200 with threshold 10 gives
	// exactly two regions.
	path := writeTestImage(t, 8, 8,
		color.RGBA{10, 10, 10, 255}, color.RGBA{210, 10, 10, 255})

	var result SegmentResult
	resp := callTool(t, s, "segment_exhaustive", map[string]interface{}{
		"path":      path,
		"threshold": 10,
	}, &result)
	if resp.Error != nil {
		t.Fatalf("segment_exhaustive failed: %+v", resp.Error)
	}

	if result.Regions != 2 {
		t.Errorf("regions: got %d, want 2", result.Regions)
	}
	if !result.Complete || result.LabeledPixels != 64 {
		t.Errorf("completeness: labeled %d, complete %v", result.LabeledPixels, result.Complete)
	}
	if result.MimeType != "image/png" || result.ImageBase64 == "" {
		t.Error("result missing colorized image payload")
	}
}

func TestHandleToolsCall_SegmentSeeded(t *testing.T) {
	s := New()
	path := writeTestImage(t, 10, 10,
		color.RGBA{100, 100, 100, 255}, color.RGBA{100, 100, 100, 255})

	var result SegmentResult
	resp := callTool(t, s, "segment_seeded", map[string]interface{}{
		"path":      path,
		"threshold": 5,
		"seeds":     []map[string]int{{"x": 4, "y": 4}},
	}, &result)
	if resp.Error != nil {
		t.Fatalf("segment_seeded failed: %+v", resp.Error)
	}

	if result.Regions != 1 {
		t.Errorf("regions: got %d, want 1", result.Regions)
	}
	if !result.Complete {
		t.Error("uniform image with one seed should label every pixel")
	}
}

func TestHandleToolsCall_SegmentSeeded_RequiresSeeds(t *testing.T) {
	s := New()
	path := writeTestImage(t, 4, 4, color.RGBA{9, 9, 9, 255}, color.RGBA{9, 9, 9, 255})

	resp := callTool(t, s, "segment_seeded", map[string]interface{}{
		"path":      path,
		"threshold": 5,
	}, nil)
	if resp.Error == nil {
		t.Error("segment_seeded without seeds should fail")
	}
}

func TestHandleToolsCall_RegionStats(t *testing.T) {
	s := New()
	path := writeTestImage(t, 8, 4,
		color.RGBA{10, 10, 10, 255}, color.RGBA{210, 10, 10, 255})

	var result struct {
		Regions []struct {
			Label  int `json:"label"`
			Pixels int `json:"pixels"`
		} `json:"regions"`
		Complete bool `json:"complete"`
	}
	resp := callTool(t, s, "region_stats", map[string]interface{}{
		"path":      path,
		"threshold": 10,
		"mode":      "fixed",
	}, &result)
	if resp.Error != nil {
		t.Fatalf("region_stats failed: %+v", resp.Error)
	}

	if len(result.Regions) != 2 {
		t.Fatalf("regions: got %d, want 2", len(result.Regions))
	}
	if result.Regions[0].Pixels != 16 || result.Regions[1].Pixels != 16 {
		t.Errorf("region sizes: got %d and %d, want 16 each",
			result.Regions[0].Pixels, result.Regions[1].Pixels)
	}
	if !result.Complete {
		t.Error("exhaustive stats should report complete")
	}
}

func TestHandleToolsCall_RegionStats_BadMode(t *testing.T) {
	s := New()
	path := writeTestImage(t, 4, 4, color.RGBA{9, 9, 9, 255}, color.RGBA{9, 9, 9, 255})

	resp := callTool(t, s, "region_stats", map[string]interface{}{
		"path":      path,
		"threshold": 10,
		"mode":      "fuzzy",
	}, nil)
	if resp.Error == nil {
		t.Error("unknown mode should fail")
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := New()
	resp := callTool(t, s, "no_such_tool", map[string]string{}, nil)

	if resp.Error == nil {
		t.Fatal("unknown tool should return an error")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})

	if resp == nil || resp.Error == nil {
		t.Fatal("invalid params should return an error")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("error code: got %d, want -32602", resp.Error.Code)
	}
}
