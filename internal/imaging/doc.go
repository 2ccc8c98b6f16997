// Package imaging provides the image side of the color toolkit: loading,
// sampling, analysis and tinting.
//
// Every color this package reports is expressed through the component model
// of package components (see ColorResult), so a pixel read from a PNG and a
// color parsed from a hex string describe themselves the same way.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Derived Colors
//
// Average color, palette and most intense color are costly to compute, so an
// Analyzer keeps them in a bounded LRU table keyed by image path and region.
// The table is an explicit object owned by the caller rather than state
// attached to images, and it is invalidated whenever the ImageCache evicts
// the image it was computed from.
//
// # Thread Safety
//
// ImageCache and Analyzer are safe for concurrent use. The remaining
// functions are stateless.
package imaging
