package integrator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/df07/kdpath/pkg/core"
	"github.com/df07/kdpath/pkg/film"
)

// TileSize is the pixel width/height of one render tile; workers claim
// whole tiles so film writes stay disjoint without locking.
const TileSize = 32

// Render splits f into TileSize x TileSize tiles and renders them across
// workers concurrent goroutines using errgroup, each with its own sampler
// clone seeded deterministically from (seed, tile coordinates). It blocks
// until every tile is done or the context is cancelled.
func Render(ctx context.Context, f *film.Film, cam core.Camera, li *PathIntegrator, sampler core.Sampler, workers int, seed int64) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for ty0 := 0; ty0 < f.Height(); ty0 += TileSize {
		ty0 := ty0
		ty1 := ty0 + TileSize
		if ty1 > f.Height() {
			ty1 = f.Height()
		}
		for tx0 := 0; tx0 < f.Width(); tx0 += TileSize {
			tx0 := tx0
			tx1 := tx0 + TileSize
			if tx1 > f.Width() {
				tx1 = f.Width()
			}

			g.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				tileSeed := seedForTile(seed, tx0/TileSize, ty0/TileSize)
				workerSampler := sampler.Clone(tileSeed)
				renderTile(f, cam, li, workerSampler, tx0, ty0, tx1, ty1)
				return nil
			})
		}
	}

	return g.Wait()
}

func renderTile(f *film.Film, cam core.Camera, li *PathIntegrator, sampler core.Sampler, tx0, ty0, tx1, ty1 int) {
	for y := ty0; y < ty1; y++ {
		for x := tx0; x < tx1; x++ {
			sampler.StartPixel([2]int{x, y})
			for sampler.StartNextSample() {
				cs := sampler.GetCameraSample([2]float32{float32(x), float32(y)})
				ray := cam.GenerateRay(cs)
				l := li.Li(ray, sampler)
				f.AddSample(cs.PFilm, l, tx0, ty0, tx1, ty1)
			}
		}
	}
}
