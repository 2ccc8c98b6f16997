package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/swatchkit/internal/components"
	"github.com/ironsheep/swatchkit/internal/imaging"
	"github.com/ironsheep/swatchkit/internal/logger"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "color_parse", "image_palette").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// argsError marks arguments that could not be decoded or are out of range.
// It is reported to the client as invalid params rather than as a tool
// failure.
type argsError struct {
	err error
}

func (e *argsError) Error() string { return "invalid arguments: " + e.err.Error() }
func (e *argsError) Unwrap() error { return e.err }

func invalidArgs(format string, a ...interface{}) error {
	return &argsError{err: fmt.Errorf(format, a...)}
}

var errUnknownTool = errors.New("unknown tool")

// decodeArgs unmarshals tool arguments. Missing arguments decode as an empty
// object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &argsError{err: err}
	}
	return nil
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Unknown tools and malformed arguments return -32602. Any other tool error
// returns -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	logger.ToolCall(params.Name, "id", req.ID)
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("Tool failed", "tool", params.Name, "error", err)

		var ae *argsError
		if errors.Is(err, errUnknownTool) || errors.As(err, &ae) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.log.Debug("Tool done", "tool", params.Name, "elapsed", time.Since(start))

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

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Decodes arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate components/imaging/reconcile function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Color Components
	case "color_parse":
		return s.handleColorParse(args)
	case "color_convert":
		return s.handleColorConvert(args)
	case "color_adjust_brightness":
		return s.handleColorAdjustBrightness(args)
	case "color_compare":
		return s.handleColorCompare(args)

	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_evict":
		return s.handleImageEvict(args)

	// Pixel Colors
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)
	case "image_compare_regions":
		return s.handleImageCompareRegions(args)

	// Derived Colors
	case "image_analyze":
		return s.handleImageAnalyze(ctx, args)
	case "image_average_color":
		return s.handleImageAverageColor(ctx, args)
	case "image_palette":
		return s.handleImagePalette(ctx, args)
	case "image_most_intense_color":
		return s.handleImageMostIntenseColor(ctx, args)
	case "image_tint":
		return s.handleImageTint(args)

	// Reconciliation
	case "reconcile_rows":
		return s.handleReconcileRows(args)
	case "reconcile_sections":
		return s.handleReconcileSections(args)

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to a pretty-printed JSON string. Tool
// results are plain structs, so marshaling does not fail in practice; an
// error yields the empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (a imagePathArgs) validate() error {
	if a.Path == "" {
		return invalidArgs("path is required")
	}
	return nil
}

// imageRegionArgs is the argument shape shared by the analysis tools.
type imageRegionArgs struct {
	Path   string          `json:"path"`
	Region *imaging.Region `json:"region,omitempty"`
}

func (a imageRegionArgs) validate() error {
	return imagePathArgs{Path: a.Path}.validate()
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageEvictResult struct {
	Path             string `json:"path"`
	Evicted          bool   `json:"evicted"`
	SummariesDropped int    `json:"summaries_dropped"`
}

func (s *Server) handleImageEvict(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	// Count before the cache eviction, whose observer drops the same entries.
	dropped := s.analyzer.Evict(a.Path)
	evicted := s.cache.Evict(a.Path)
	return &imageEvictResult{Path: a.Path, Evicted: evicted, SummariesDropped: dropped}, nil
}

// === Pixel Color Handlers ===

type imageCropArgs struct {
	Path string `json:"path"`
	imaging.Region
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.Crop(img, &a.Region)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(cropped, a.Scale)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string                 `json:"path"`
	Points []imaging.LabeledPoint `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 {
		return nil, invalidArgs("points must not be empty")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColorsMulti(img, a.Points)
}

type imageDominantColorsArgs struct {
	Path   string          `json:"path"`
	Count  int             `json:"count"`
	Region *imaging.Region `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	if a.Count < 0 {
		return nil, invalidArgs("count must be positive, got %d", a.Count)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(img, a.Count, a.Region)
}

type imageCompareRegionsArgs struct {
	Path    string         `json:"path"`
	Region1 imaging.Region `json:"region1"`
	Region2 imaging.Region `json:"region2"`
}

func (s *Server) handleImageCompareRegions(args json.RawMessage) (interface{}, error) {
	var a imageCompareRegionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CompareRegions(img, a.Region1, a.Region2)
}

// === Derived Color Handlers ===

func (s *Server) handleImageAnalyze(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRegionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return s.analyzer.Analyze(ctx, a.Path, a.Region)
}

func (s *Server) handleImageAverageColor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRegionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return s.analyzer.AverageColor(ctx, a.Path, a.Region)
}

type imagePaletteResult struct {
	Colors []imaging.PaletteColor `json:"colors"`
}

func (s *Server) handleImagePalette(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRegionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	palette, err := s.analyzer.Palette(ctx, a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	if palette == nil {
		palette = []imaging.PaletteColor{}
	}
	return &imagePaletteResult{Colors: palette}, nil
}

type imageMostIntenseResult struct {
	Found bool                 `json:"found"`
	Color *imaging.ColorResult `json:"color,omitempty"`
}

func (s *Server) handleImageMostIntenseColor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRegionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	c, found, err := s.analyzer.MostIntenseColor(ctx, a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	return &imageMostIntenseResult{Found: found, Color: c}, nil
}

type imageTintArgs struct {
	Path   string          `json:"path"`
	Color  string          `json:"color"`
	Mode   string          `json:"mode"`
	Region *imaging.Region `json:"region,omitempty"`
	Scale  float64         `json:"scale"`
}

type imageTintResult struct {
	*imaging.EncodedImage
	Mode  string `json:"mode"`
	Color string `json:"color"`
}

func (s *Server) handleImageTint(args json.RawMessage) (interface{}, error) {
	var a imageTintArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	tint, err := components.ParseHex(a.Color)
	if err != nil {
		return nil, &argsError{err: err}
	}
	mode, err := imaging.ParseTintMode(a.Mode)
	if err != nil {
		return nil, &argsError{err: err}
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	img, err = imaging.Crop(img, a.Region)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(imaging.Tint(img, tint, mode), a.Scale)
	if err != nil {
		return nil, err
	}
	return &imageTintResult{
		EncodedImage: encoded,
		Mode:         mode.String(),
		Color:        "#" + tint.HexString(true),
	}, nil
}
