// Package server implements the MCP (Model Context Protocol) server for the
// swatch toolkit.
//
// The server exposes color conversion, image color analysis, template
// tinting and list reconciliation as MCP tools over JSON-RPC 2.0.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Messages whose method starts with "notifications/" are accepted and never
// answered.
//
// # Available Tools
//
// Color:
//   - color_parse: Parse a hex string into every color model
//   - color_convert: Convert components between models and storage types
//   - color_adjust_brightness: Brighten or darken in RGB and HSB
//   - color_compare: Contrast, brightness and perceptual distance
//
// Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_evict: Drop an image and its cached summaries
//
// Pixels and Regions:
//   - image_crop: Extract rectangular region as PNG
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//   - image_dominant_colors: Extract color clusters
//   - image_compare_regions: Compare two regions
//
// Analysis (cached per image and region):
//   - image_analyze: Average, palette and most intense color at once
//   - image_average_color
//   - image_palette
//   - image_most_intense_color
//
// Tinting:
//   - image_tint: Recolor an image in template or multiply mode
//
// Reconciliation:
//   - reconcile_rows: Plan and apply a row update for one section
//   - reconcile_sections: Plan and apply a sectioned update
//
// # Caching
//
// Decoded images are cached by path for the lifetime of the process. Analysis
// summaries live in a bounded LRU keyed by path and region, and are dropped
// whenever their image leaves the image cache.
//
// # Error Handling
//
//   - -32700: the line is not valid JSON
//   - -32601: unknown method
//   - -32602: unknown tool or invalid arguments
//   - -32000: the tool ran and failed (missing file, region out of bounds)
package server
