package imaging

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/swatchkit/internal/components"
)

// Default analysis settings.
const (
	DefaultAnalysisCacheSize = 64
	DefaultSampleSize        = 128
	DefaultPaletteSize       = 8

	// paletteThreshold is the CIE-Lab distance below which two colors join
	// the same palette entry.
	paletteThreshold = 0.15
)

// PaletteColor is one entry of an image palette.
type PaletteColor struct {
	Color      ColorResult `json:"color"`
	Percentage float64     `json:"percentage"` // 0-100 of the non-transparent pixels
}

// Summary holds the derived colors of one image or region.
//
// Average is alpha-weighted: transparent pixels do not pull it toward black.
// MostIntense is the pixel with the largest saturation × brightness; it is
// nil, like Palette is empty, when every pixel is transparent.
type Summary struct {
	Path        string           `json:"path"`
	Region      *Region          `json:"region,omitempty"`
	Sampled     DimensionsResult `json:"sampled"`
	Average     ColorResult      `json:"average"`
	Palette     []PaletteColor   `json:"palette"`
	MostIntense *ColorResult     `json:"most_intense,omitempty"`
}

// summaryKey identifies a cached Summary. The zero Region stands for the
// whole image.
type summaryKey struct {
	path   string
	region Region
}

// Analyzer computes and caches Summaries of images held by an ImageCache.
//
// Results live in a bounded LRU side table keyed by path and region. Entries
// for a path are dropped when the ImageCache evicts that path, and on Purge.
// Analyzer is safe for concurrent use. A Summary computed while its path is
// being evicted is returned to the caller but not cached.
type Analyzer struct {
	images      *ImageCache
	results     *lru.Cache
	sampleSize  int
	paletteSize int

	mu          sync.Mutex
	epoch       uint64            // bumped by Purge
	generations map[string]uint64 // bumped by Evict, per path
}

// generation identifies the cache state of one path. A Summary may only be
// stored under the generation it was computed in.
type generation struct {
	epoch uint64
	path  uint64
}

// NewAnalyzer returns an Analyzer over images.
//
// Parameters:
//   - images: Source of decoded images. Its evictions invalidate results.
//   - cacheSize: Number of Summaries kept.
//   - sampleSize: Images are downsampled to fit a sampleSize square before
//     analysis. Zero or less analyzes every pixel.
//   - paletteSize: Maximum number of palette entries.
func NewAnalyzer(images *ImageCache, cacheSize, sampleSize, paletteSize int) (*Analyzer, error) {
	results, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis cache: %w", err)
	}
	if paletteSize < 1 {
		return nil, fmt.Errorf("palette size must be positive, got %d", paletteSize)
	}

	a := &Analyzer{
		images:      images,
		results:     results,
		sampleSize:  sampleSize,
		paletteSize: paletteSize,
		generations: make(map[string]uint64),
	}
	images.OnEvict(a.invalidate)
	return a, nil
}

// Analyze returns the Summary of the image at path, restricted to region when
// it is non-nil. Cached results are returned without touching pixels.
func (a *Analyzer) Analyze(ctx context.Context, path string, region *Region) (*Summary, error) {
	key := summaryKey{path: path}
	if region != nil {
		key.region = *region
	}
	if v, ok := a.results.Get(key); ok {
		return v.(*Summary), nil
	}

	gen := a.generation(path)
	img, err := a.images.Load(path)
	if err != nil {
		return nil, err
	}
	img, err = Crop(img, region)
	if err != nil {
		return nil, err
	}

	summary, err := a.summarize(ctx, img)
	if err != nil {
		return nil, err
	}
	summary.Path = path
	if region != nil {
		r := *region
		summary.Region = &r
	}

	a.store(key, summary, gen)
	return summary, nil
}

func (a *Analyzer) generation(path string) generation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return generation{epoch: a.epoch, path: a.generations[path]}
}

// store caches summary unless key.path was evicted or the cache purged since
// gen was taken, and reports whether it did.
func (a *Analyzer) store(key summaryKey, summary *Summary, gen generation) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != (generation{epoch: a.epoch, path: a.generations[key.path]}) {
		return false
	}
	a.results.Add(key, summary)
	return true
}

// AverageColor returns the alpha-weighted mean color of the image.
func (a *Analyzer) AverageColor(ctx context.Context, path string, region *Region) (*ColorResult, error) {
	s, err := a.Analyze(ctx, path, region)
	if err != nil {
		return nil, err
	}
	return &s.Average, nil
}

// Palette returns the main colors of the image, most common first.
func (a *Analyzer) Palette(ctx context.Context, path string, region *Region) ([]PaletteColor, error) {
	s, err := a.Analyze(ctx, path, region)
	if err != nil {
		return nil, err
	}
	return s.Palette, nil
}

// MostIntenseColor returns the most saturated bright color of the image, and
// false when the image has no visible pixel.
func (a *Analyzer) MostIntenseColor(ctx context.Context, path string, region *Region) (*ColorResult, bool, error) {
	s, err := a.Analyze(ctx, path, region)
	if err != nil {
		return nil, false, err
	}
	return s.MostIntense, s.MostIntense != nil, nil
}

// Evict drops every cached Summary of path and reports how many there were.
func (a *Analyzer) Evict(path string) int {
	a.mu.Lock()
	a.generations[path]++
	a.mu.Unlock()

	n := 0
	for _, k := range a.results.Keys() {
		if key := k.(summaryKey); key.path == path {
			a.results.Remove(key)
			n++
		}
	}
	return n
}

// Purge drops every cached Summary.
func (a *Analyzer) Purge() {
	a.mu.Lock()
	a.epoch++
	a.mu.Unlock()
	a.results.Purge()
}

// Len returns the number of cached Summaries.
func (a *Analyzer) Len() int {
	return a.results.Len()
}

func (a *Analyzer) invalidate(path string) {
	if path == "" {
		a.Purge()
		return
	}
	a.Evict(path)
}

// sample reduces img to at most sampleSize pixels on its longer side. The
// result always has bounds starting at (0,0).
func (a *Analyzer) sample(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if a.sampleSize > 0 && (b.Dx() > a.sampleSize || b.Dy() > a.sampleSize) {
		return imaging.Fit(img, a.sampleSize, a.sampleSize, imaging.Box)
	}
	return imaging.Clone(img)
}

// summarize runs the average, palette and intensity passes concurrently over
// a downsampled copy of img.
func (a *Analyzer) summarize(ctx context.Context, img image.Image) (*Summary, error) {
	pixels := a.sample(img)
	s := &Summary{
		Sampled: DimensionsResult{Width: pixels.Rect.Dx(), Height: pixels.Rect.Dy()},
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		avg, err := averageColor(ctx, pixels)
		if err != nil {
			return err
		}
		s.Average = DescribeColor(avg)
		return nil
	})
	g.Go(func() error {
		palette, err := buildPalette(ctx, pixels, a.paletteSize)
		s.Palette = palette
		return err
	})
	g.Go(func() error {
		c, ok, err := mostIntense(ctx, pixels)
		if ok {
			described := DescribeColor(c)
			s.MostIntense = &described
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}
	return s, nil
}

// eachPixel calls fn for every pixel of img in row order, checking ctx once
// per row.
func eachPixel(ctx context.Context, img *image.NRGBA, fn func(c components.RGBA[uint8])) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			fn(components.RGBA[uint8]{Red: row[i], Green: row[i+1], Blue: row[i+2], Alpha: row[i+3]})
		}
	}
	return nil
}

func averageColor(ctx context.Context, img *image.NRGBA) (components.RGBA[uint8], error) {
	var r, g, b, alpha float64
	n := 0
	err := eachPixel(ctx, img, func(c components.RGBA[uint8]) {
		a := c.Alpha01()
		r += float64(c.Red) * a
		g += float64(c.Green) * a
		b += float64(c.Blue) * a
		alpha += a
		n++
	})
	if err != nil || alpha == 0 {
		return components.RGBA[uint8]{}, err
	}

	avg := components.RGBA[float64]{
		Red:   r / alpha / 255,
		Green: g / alpha / 255,
		Blue:  b / alpha / 255,
		Alpha: alpha / float64(n),
	}
	return components.ConvertRGBA[uint8](avg), nil
}

func mostIntense(ctx context.Context, img *image.NRGBA) (components.RGBA[uint8], bool, error) {
	var best components.RGBA[uint8]
	bestScore, found := -1.0, false
	err := eachPixel(ctx, img, func(c components.RGBA[uint8]) {
		if c.IsClearColor() {
			return
		}
		hsb := components.HSBFromRGB(components.ConvertRGB[float64](c.Opaque()))
		if score := hsb.Saturation * hsb.Brightness; score > bestScore {
			best, bestScore, found = c, score, true
		}
	})
	return best, found, err
}

// cluster is a palette entry under construction.
type cluster struct {
	seed    colorful.Color
	r, g, b float64
	pixels  int
}

// buildPalette groups the visible colors of img by perceptual distance.
//
// Distinct colors are visited from most to least frequent. Each joins the
// first cluster whose seed lies within paletteThreshold in CIE-Lab, or seeds a
// new one. A cluster reports the pixel-weighted mean of its members.
func buildPalette(ctx context.Context, img *image.NRGBA, size int) ([]PaletteColor, error) {
	counts := make(map[components.RGB[uint8]]int)
	total := 0
	err := eachPixel(ctx, img, func(c components.RGBA[uint8]) {
		if c.IsClearColor() {
			return
		}
		counts[c.Opaque()]++
		total++
	})
	if err != nil || total == 0 {
		return nil, err
	}

	type entry struct {
		rgb components.RGB[uint8]
		n   int
	}
	distinct := make([]entry, 0, len(counts))
	for rgb, n := range counts {
		distinct = append(distinct, entry{rgb, n})
	}
	slices.SortFunc(distinct, func(x, y entry) int {
		if c := cmp.Compare(y.n, x.n); c != 0 {
			return c
		}
		return cmp.Compare(x.rgb.Hex(), y.rgb.Hex())
	})

	var clusters []*cluster
	for _, e := range distinct {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		col := colorful.Color{R: float64(e.rgb.Red) / 255, G: float64(e.rgb.Green) / 255, B: float64(e.rgb.Blue) / 255}

		var home *cluster
		for _, c := range clusters {
			if c.seed.DistanceLab(col) < paletteThreshold {
				home = c
				break
			}
		}
		if home == nil {
			home = &cluster{seed: col}
			clusters = append(clusters, home)
		}
		home.r += float64(e.rgb.Red) * float64(e.n)
		home.g += float64(e.rgb.Green) * float64(e.n)
		home.b += float64(e.rgb.Blue) * float64(e.n)
		home.pixels += e.n
	}

	slices.SortStableFunc(clusters, func(x, y *cluster) int { return cmp.Compare(y.pixels, x.pixels) })
	if len(clusters) > size {
		clusters = clusters[:size]
	}

	palette := make([]PaletteColor, len(clusters))
	for i, c := range clusters {
		n := float64(c.pixels)
		mean := components.RGB[float64]{Red: c.r / n / 255, Green: c.g / n / 255, Blue: c.b / n / 255}
		palette[i] = PaletteColor{
			Color:      DescribeColor(components.ConvertRGB[uint8](mean).WithAlpha(255)),
			Percentage: n / float64(total) * 100,
		}
	}
	return palette, nil
}
