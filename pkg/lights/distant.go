// Package lights implements the light sources sampled by the integrator
// (a constant-radiance directional light and a shape-wrapping area light),
// their shared visibility test, and a weighted light-selection sampler.
package lights

import "github.com/df07/kdpath/pkg/core"

// DistantLight is a constant-radiance directional light, e.g. sunlight.
// PreProcess captures the scene's bounding sphere so sampled visibility
// segments reach far enough to clear the scene.
type DistantLight struct {
	Direction core.Vec3 // points from the light towards the scene
	L         core.Spectrum

	center core.Point3
	radius float32
}

func NewDistantLight(direction core.Vec3, l core.Spectrum) *DistantLight {
	return &DistantLight{Direction: direction.Normalize(), L: l}
}

func (d *DistantLight) PreProcess(sceneBounds core.BBox3) {
	d.center, d.radius = sceneBounds.BoundingSphere()
}

func (d *DistantLight) SampleLi(ref core.SurfaceInteraction, u [2]float32) (core.Vec3, core.Spectrum, float32, core.VisibilityTester) {
	wi := d.Direction.Negate()
	pOutside := ref.P.Add(wi.Multiply(2 * d.radius))
	vis := core.VisibilityTester{
		P0: ref,
		P1: core.SurfaceInteraction{P: pOutside},
	}
	return wi, d.L, 1, vis
}

func (d *DistantLight) IsDelta() bool { return true }
