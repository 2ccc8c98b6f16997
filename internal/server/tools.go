package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": intProperty("Left edge X coordinate (0-based)"),
			"y1": intProperty("Top edge Y coordinate (0-based)"),
			"x2": intProperty("Right edge X coordinate (exclusive)"),
			"y2": intProperty("Bottom edge Y coordinate (exclusive)"),
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// analysisSchema is the input of the tools served by the analysis cache.
func analysisSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path":   pathProperty(),
			"region": regionProperty("Optional region to analyze. If omitted, analyzes entire image."),
		},
		"required": []string{"path"},
	}
}

func itemListProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Identity of the row. Rows with equal ids are the same row.",
				},
				"version": intProperty("Content version. A changed version reloads the row."),
			},
			"required": []string{"id"},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Color Components
		{
			Name:        "color_parse",
			Description: "Parse a hex color (#RRGGBB or #RRGGBBAA) and describe it in every color model: 8-bit RGBA, normalized RGBA, HSBA and greyscale, with brightness and dark/clear flags.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": map[string]interface{}{
						"type":        "string",
						"description": "Hex color, with or without '#' or '0x' prefix",
					},
				},
				"required": []string{"hex"},
			},
		},
		{
			Name:        "color_convert",
			Description: "Convert color components between models (rgb, hsb, bw) and storages (uint8 0-255, float 0-1). With exact=true, a conversion to uint8 fails instead of rounding.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"model": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rgb", "hsb", "bw"},
						"description": "Model of the input values",
					},
					"storage": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"uint8", "float"},
						"description": "Storage of the input values. Default float",
						"default":     "float",
					},
					"values": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Channel values in model order, optionally followed by alpha (opaque if omitted). Hue is normalized: a full turn is 1 (or 255).",
					},
					"to_model": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rgb", "hsb", "bw"},
						"description": "Target model. Defaults to the input model",
					},
					"to_storage": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"uint8", "float"},
						"description": "Target storage. Defaults to the input storage",
					},
					"exact": map[string]interface{}{
						"type":        "boolean",
						"description": "Only return uint8 components that represent the color exactly",
						"default":     false,
					},
				},
				"required": []string{"model", "values"},
			},
		},
		{
			Name:        "color_adjust_brightness",
			Description: "Shift the brightness of a color by a normalized amount, both per RGB primary and on the HSB brightness channel. Results are clamped to the valid range.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color to adjust",
					},
					"percent": map[string]interface{}{
						"type":        "number",
						"description": "Amount to add on the 0-1 scale (e.g., 0.1 brightens by a tenth, -0.25 darkens by a quarter)",
					},
				},
				"required": []string{"color", "percent"},
			},
		},
		{
			Name:        "color_compare",
			Description: "Compare two hex colors: perceptual distance (CIE76 and CIEDE2000), brightness difference and WCAG contrast ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"first": map[string]interface{}{
						"type":        "string",
						"description": "First hex color",
					},
					"second": map[string]interface{}{
						"type":        "string",
						"description": "Second hex color",
					},
				},
				"required": []string{"first", "second"},
			},
		},

		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and pixel layout. The decoded image is cached for subsequent operations.",
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
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_evict",
			Description: "Drop an image and its cached analysis results, so the next call reads the file from disk again. Use after the file has changed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Pixel Colors
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1":   intProperty("Left edge X coordinate (0-based)"),
					"y1":   intProperty("Top edge Y coordinate (0-based)"),
					"x2":   intProperty("Right edge X coordinate (exclusive)"),
					"y2":   intProperty("Bottom edge Y coordinate (exclusive)"),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a specific pixel coordinate, in hex, RGB, RGBA and HSB, with its brightness and dark/clear flags.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x":    intProperty("X coordinate (0-based)"),
					"y":    intProperty("Y coordinate (0-based)"),
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple points in a single call. Useful for comparing colors across different parts of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Array of points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "integer"},
								"y": map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{
									"type":        "string",
									"description": "Optional label for this point",
								},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Find the most common colors in an image or region. Channels are quantized to steps of 16 and transparent pixels are ignored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
					"region": regionProperty("Optional region to analyze. If omitted, analyzes entire image."),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_compare_regions",
			Description: "Compare two regions of an image pixel by pixel using perceptual color distance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty(),
					"region1": regionProperty("First region"),
					"region2": regionProperty("Second region"),
				},
				"required": []string{"path", "region1", "region2"},
			},
		},

		// Derived Colors
		{
			Name:        "image_analyze",
			Description: "Compute the average color, palette and most intense color of an image or region in one call. Results are cached until the image is evicted.",
			InputSchema: analysisSchema(),
		},
		{
			Name:        "image_average_color",
			Description: "Get the average color of an image or region. Each pixel is weighted by its alpha, so transparent areas do not darken the result.",
			InputSchema: analysisSchema(),
		},
		{
			Name:        "image_palette",
			Description: "Get the main colors of an image or region, merging perceptually similar colors, most common first.",
			InputSchema: analysisSchema(),
		},
		{
			Name:        "image_most_intense_color",
			Description: "Find the most vivid color of an image or region: the visible pixel with the highest saturation times brightness.",
			InputSchema: analysisSchema(),
		},
		{
			Name:        "image_tint",
			Description: "Tint an image with a color and return it as base64-encoded PNG. 'template' paints the color through the image's alpha (icon tinting); 'multiply' keeps the image's shading.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Hex tint color",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"template", "multiply"},
						"description": "Tint mode. Default template",
						"default":     "template",
					},
					"region": regionProperty("Optional region to tint. If omitted, tints entire image."),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for the output. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "color"},
			},
		},

		// Reconciliation
		{
			Name:        "reconcile_rows",
			Description: "Compute the minimal two-phase update that turns an old list of rows into a new one: deletions and insertions first, then moves and reloads. Returns the plan and the batches a list view would receive.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"old":     itemListProperty("Rows currently displayed"),
					"new":     itemListProperty("Rows to display"),
					"section": intProperty("Section index the rows belong to. Default 0"),
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Reload retained rows whose version changed. Default true",
						"default":     true,
					},
					"animated": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply the updates with animation",
						"default":     false,
					},
				},
				"required": []string{"old", "new"},
			},
		},
		{
			Name:        "reconcile_sections",
			Description: "Compute the two-phase update between two sectioned lists. Sections whose version changed are reloaded whole; other retained sections get a row-level diff.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"old": map[string]interface{}{
						"type":        "array",
						"description": "Sections currently displayed",
						"items":       sectionSchema(),
					},
					"new": map[string]interface{}{
						"type":        "array",
						"description": "Sections to display",
						"items":       sectionSchema(),
					},
					"animated": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply the updates with animation",
						"default":     false,
					},
				},
				"required": []string{"old", "new"},
			},
		},
	}
}

func sectionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": map[string]interface{}{
				"type":        "string",
				"description": "Identity of the section",
			},
			"version": intProperty("Content version. A changed version reloads the whole section."),
			"rows":    itemListProperty("Rows of the section"),
		},
		"required": []string{"id"},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
