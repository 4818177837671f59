package film

import (
	"fmt"

	"github.com/df07/kdpath/pkg/core"
)

type pixel struct {
	sum    core.Spectrum
	weight float32
}

// Film accumulates filtered sample contributions over a fixed-resolution
// image. Tile writes touch disjoint pixel ranges so Film needs no locking
// as long as each worker is given a distinct tile.
type Film struct {
	width, height int
	filter        Filter
	pixels        []pixel
}

// NewFilm creates an empty film of the given resolution. Returns an error
// for a non-positive resolution, a construction-time programming error.
func NewFilm(width, height int, filter Filter) (*Film, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("film: resolution must be positive, got %dx%d", width, height)
	}
	return &Film{
		width:  width,
		height: height,
		filter: filter,
		pixels: make([]pixel, width*height),
	}, nil
}

func (f *Film) Width() int  { return f.width }
func (f *Film) Height() int { return f.height }

// TileBounds returns the pixel-space bounds of tile (tx0,ty0)-(tx1,ty1)
// dilated by the filter radius, clamped to the image, as the region of
// pixels a sample in that tile might contribute to.
func (f *Film) TileBounds(tx0, ty0, tx1, ty1 int) (x0, y0, x1, y1 int) {
	r := int(f.filter.Radius()) + 1
	x0 = clampInt(tx0-r, 0, f.width)
	y0 = clampInt(ty0-r, 0, f.height)
	x1 = clampInt(tx1+r, 0, f.width)
	y1 = clampInt(ty1+r, 0, f.height)
	return
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddSample splats a single (pFilm, L) sample into every pixel within the
// filter radius of pFilm, restricted to [x0,x1)x[y0,y1) (a worker's owned
// tile region) so concurrent workers never write the same pixel.
func (f *Film) AddSample(pFilm [2]float32, l core.Spectrum, x0, y0, x1, y1 int) {
	r := f.filter.Radius()
	px0 := clampInt(int(pFilm[0]-r+0.5), x0, x1)
	py0 := clampInt(int(pFilm[1]-r+0.5), y0, y1)
	px1 := clampInt(int(pFilm[0]+r+0.5), x0, x1)
	py1 := clampInt(int(pFilm[1]+r+0.5), y0, y1)

	for y := py0; y < py1; y++ {
		for x := px0; x < px1; x++ {
			cx := float32(x) + 0.5
			cy := float32(y) + 0.5
			w := f.filter.Evaluate(pFilm[0]-cx, pFilm[1]-cy)
			if w == 0 {
				continue
			}
			idx := y*f.width + x
			f.pixels[idx].sum = f.pixels[idx].sum.Add(l.Multiply(w))
			f.pixels[idx].weight += w
		}
	}
}

// Pixel returns the developed color (sum/weight) at (x,y).
func (f *Film) Pixel(x, y int) core.Spectrum {
	p := f.pixels[y*f.width+x]
	if p.weight == 0 {
		return core.Spectrum{}
	}
	return p.sum.Divide(p.weight)
}

// MeanBrightness returns the average luminance across the developed image,
// used by the end-to-end scenario test to compare against a reference.
func (f *Film) MeanBrightness() float32 {
	var sum float32
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			sum += f.Pixel(x, y).Luminance()
		}
	}
	return sum / float32(f.width*f.height)
}
