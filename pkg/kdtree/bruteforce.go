package kdtree

import "github.com/df07/kdpath/pkg/core"

// BruteForce is a linear-scan reference Container used only to validate the
// k-d tree against testable property 3 (equivalence) and property 4
// (early-exit agreement); it is never used in the production render path.
type BruteForce struct {
	bbox   core.BBox3
	shapes []core.Shape
}

// NewBruteForce builds a brute-force container over shapes.
func NewBruteForce(shapes []core.Shape) *BruteForce {
	bbox := shapes[0].BBox()
	for _, s := range shapes[1:] {
		bbox = bbox.Union(s.BBox())
	}
	return &BruteForce{bbox: bbox, shapes: shapes}
}

// BBox returns the bounding box of all shapes.
func (b *BruteForce) BBox() core.BBox3 { return b.bbox }

// IntersectP reports whether r hits any shape.
func (b *BruteForce) IntersectP(r core.Ray) bool {
	for _, s := range b.shapes {
		if s.IntersectP(r) {
			return true
		}
	}
	return false
}

// Intersect finds the closest hit, if any, along r by scanning every shape.
func (b *BruteForce) Intersect(r core.Ray) (core.SurfaceInteraction, bool) {
	ray := r
	var best core.SurfaceInteraction
	hit := false
	for _, s := range b.shapes {
		if si, d, ok := s.Intersect(ray); ok {
			hit = true
			ray.TMax = d
			best = si
			best.Shape = s
		}
	}
	return best, hit
}
