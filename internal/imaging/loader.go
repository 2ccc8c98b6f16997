package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sort"
	"sync"

	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// decoded is a cached image together with the format name reported by the
// decoder that read it.
type decoded struct {
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of decoded images keyed by file path.
//
// Once an image is loaded, subsequent Load() calls for the same path return the
// cached copy without disk I/O. The same image value is returned every time, so
// the cache also gives an image a stable identity that derived results (see
// Analyzer) can be keyed on.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
// Both also drop the analysis results of registered observers, so a reloaded
// file is never described by results computed from its previous contents.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/swatch.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache.Evict("/path/to/swatch.png")
type ImageCache struct {
	mu        sync.RWMutex
	images    map[string]decoded
	observers []func(path string)
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]decoded),
	}
}

// OnEvict registers fn to be called with the path of every evicted image. A
// Clear() reports the empty path, meaning "everything".
func (c *ImageCache) OnEvict(fn func(path string)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, GIF, TIFF and WebP.
//
// Returns:
//   - image.Image: The decoded image.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The image is cached using the exact path string provided. Different paths to
// the same file result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	d, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

func (c *ImageCache) load(path string) (decoded, error) {
	c.mu.RLock()
	d, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return d, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return decoded{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return decoded{}, fmt.Errorf("failed to decode image: %w", err)
	}
	d = decoded{img: img, format: format}

	c.mu.Lock()
	c.images[path] = d
	c.mu.Unlock()

	return d, nil
}

// Paths returns the paths currently held by the cache, sorted.
func (c *ImageCache) Paths() []string {
	c.mu.RLock()
	paths := make([]string, 0, len(c.images))
	for p := range c.images {
		paths = append(paths, p)
	}
	c.mu.RUnlock()

	sort.Strings(paths)
	return paths
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]decoded)
	observers := c.observers
	c.mu.Unlock()

	for _, fn := range observers {
		fn("")
	}
}

// Evict removes a specific image from the cache by its path. It reports
// whether the path was cached.
//
// After eviction, the next Load() call for this path will read from disk.
func (c *ImageCache) Evict(path string) bool {
	c.mu.Lock()
	_, ok := c.images[path]
	delete(c.images, path)
	observers := c.observers
	c.mu.Unlock()

	for _, fn := range observers {
		fn(path)
	}
	return ok
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the name of the decoder that read the file: "png", "jpeg",
	// "gif", "tiff" or "webp".
	Format string `json:"format"`

	// ColorModel names the pixel layout: "rgb", "gray", "paletted", "ycbcr"
	// or "cmyk".
	ColorModel string `json:"color_model"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the pixel layout can carry transparency.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// The format comes from content sniffing by the registered decoders, not from
// the file extension. Paletted images report HasAlpha when any palette entry
// is not fully opaque.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	d, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	model, depth, alpha := describeLayout(d.img)
	bounds := d.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        d.format,
		ColorModel:    model,
		ColorDepth:    depth,
		HasAlpha:      alpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

func describeLayout(img image.Image) (model, depth string, alpha bool) {
	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA:
		return "rgb", "8-bit", true
	case *image.RGBA64, *image.NRGBA64:
		return "rgb", "16-bit", true
	case *image.Gray:
		return "gray", "8-bit", false
	case *image.Gray16:
		return "gray", "16-bit", false
	case *image.Alpha:
		return "gray", "8-bit", true
	case *image.Alpha16:
		return "gray", "16-bit", true
	case *image.Paletted:
		for _, entry := range m.Palette {
			if _, _, _, a := entry.RGBA(); a != 0xffff {
				return "paletted", "8-bit", true
			}
		}
		return "paletted", "8-bit", false
	case *image.YCbCr:
		return "ycbcr", "8-bit", false
	case *image.NYCbCrA:
		return "ycbcr", "8-bit", true
	case *image.CMYK:
		return "cmyk", "8-bit", false
	}
	return "rgb", "8-bit", true
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
