package server

import (
	"encoding/json"
	"fmt"

	"github.com/pixelgrove/region-tools/internal/imaging"
	"github.com/pixelgrove/region-tools/internal/segment"
)

// ToolCallParams are the parameters of a tools/call request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g. "segment_exhaustive").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall executes the named tool and wraps the result in MCP's
// content format. Tool failures become JSON-RPC errors with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches to the tool handlers.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "segment_exhaustive":
		return s.handleSegmentExhaustive(args)
	case "segment_seeded":
		return s.handleSegmentSeeded(args)
	case "region_stats":
		return s.handleRegionStats(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON renders a tool result as pretty-printed JSON. On marshal
// failure it returns an empty string rather than panicking.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image information tools ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if _, err := s.cache.Load(a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(a.Path)
	if err != nil {
		return nil, err
	}
	return map[string]int{"width": info.Width, "height": info.Height}, nil
}

// === Segmentation tools ===

// seedArg is a seed coordinate in the core's matrix convention.
type seedArg struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type segmentArgs struct {
	Path      string    `json:"path"`
	Threshold float64   `json:"threshold"`
	Seeds     []seedArg `json:"seeds,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Scale     float64   `json:"scale,omitempty"`
	BlurSigma float64   `json:"blur_sigma,omitempty"`
}

// SegmentResult is the response payload of the segmentation tools.
type SegmentResult struct {
	// Width and Height of the segmented (possibly preprocessed) image.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Regions is the number of surviving regions.
	Regions int `json:"regions"`

	// Iterations is the number of traversal steps the run took.
	Iterations int `json:"iterations"`

	// LabeledPixels out of TotalPixels were assigned a region. Complete is
	// their equality; a seeded run that hit the iteration cap or skipped
	// background pixels reports false.
	LabeledPixels int  `json:"labeled_pixels"`
	TotalPixels   int  `json:"total_pixels"`
	Complete      bool `json:"complete"`

	// ImageBase64 is the colorized label map as base64 PNG.
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleSegmentExhaustive(args json.RawMessage) (interface{}, error) {
	var a segmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	grower, _, err := s.segment(a, segment.ModeFixed, false)
	if err != nil {
		return nil, err
	}
	return s.segmentResult(grower)
}

func (s *Server) handleSegmentSeeded(args json.RawMessage) (interface{}, error) {
	var a segmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Seeds) == 0 {
		return nil, fmt.Errorf("segment_seeded requires at least one seed")
	}

	grower, _, err := s.segment(a, segment.ModeAdaptive, true)
	if err != nil {
		return nil, err
	}
	return s.segmentResult(grower)
}

func (s *Server) handleRegionStats(args json.RawMessage) (interface{}, error) {
	var a segmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var mode segment.Mode
	var seeded bool
	switch a.Mode {
	case "fixed":
		mode = segment.ModeFixed
	case "adaptive":
		mode = segment.ModeAdaptive
		seeded = true
		if len(a.Seeds) == 0 {
			return nil, fmt.Errorf("adaptive region_stats requires seeds")
		}
	default:
		return nil, fmt.Errorf("unknown mode %q: use \"fixed\" or \"adaptive\"", a.Mode)
	}

	grower, grid, err := s.segment(a, mode, seeded)
	if err != nil {
		return nil, err
	}
	return segment.Stats(grid, grower.Labels())
}

// segment runs the shared load-prepare-grow pipeline for the segmentation
// tools.
func (s *Server) segment(a segmentArgs, mode segment.Mode, seeded bool) (*segment.Grower, *segment.PixelGrid, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}

	img, err = imaging.Prepare(img, imaging.PrepareOptions{
		Scale:     a.Scale,
		BlurSigma: a.BlurSigma,
	})
	if err != nil {
		return nil, nil, err
	}

	grid, err := imaging.GridFromImage(img)
	if err != nil {
		return nil, nil, err
	}

	grower, err := segment.NewGrower(grid, a.Threshold, mode)
	if err != nil {
		return nil, nil, err
	}

	if seeded {
		seeds := make([]segment.Seed, len(a.Seeds))
		for i, sd := range a.Seeds {
			seeds[i] = segment.Seed{X: sd.X, Y: sd.Y}
		}
		if _, err := grower.GrowFromSeeds(seeds); err != nil {
			return nil, nil, err
		}
	} else {
		grower.GrowAll()
	}

	return grower, grid, nil
}

// segmentResult packages a finished run, colorizing the label map.
func (s *Server) segmentResult(grower *segment.Grower) (*SegmentResult, error) {
	labels := grower.Labels()
	encoded, err := imaging.EncodeBase64PNG(segment.Colorize(labels))
	if err != nil {
		return nil, err
	}

	return &SegmentResult{
		Width:         labels.Width(),
		Height:        labels.Height(),
		Regions:       grower.Regions(),
		Iterations:    grower.Iterations(),
		LabeledPixels: labels.CountLabeled(),
		TotalPixels:   labels.Width() * labels.Height(),
		Complete:      grower.Complete(),
		ImageBase64:   encoded,
		MimeType:      "image/png",
	}, nil
}
