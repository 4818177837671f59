// Package shapes implements ray/primitive intersection for spheres and
// triangles, including the floating-point error bounds used to offset
// spawned rays and reject false hits.
package shapes

import (
	"math"

	"github.com/df07/kdpath/pkg/core"
)

// Sphere is a sphere of a given center and radius, carrying the material
// evaluated at any hit.
type Sphere struct {
	Center core.Point3
	Radius float32
	Mat    core.Material
}

// NewSphere creates a sphere.
func NewSphere(center core.Point3, radius float32, mat core.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Mat: mat}
}

// BBox returns the sphere's axis-aligned bounding box.
func (s *Sphere) BBox() core.BBox3 {
	r := core.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return core.BBox3{Min: s.Center.SubtractVec(r), Max: s.Center.Add(r)}
}

// Area returns the sphere's surface area.
func (s *Sphere) Area() float32 { return 4 * float32(math.Pi) * s.Radius * s.Radius }

// Material returns the sphere's material.
func (s *Sphere) Material() core.Material { return s.Mat }

// IsLight reports false; use a separate light wrapper to make a sphere an
// emitter.
func (s *Sphere) IsLight() bool { return false }

// EmittedRadiance returns zero; spheres are not emitters by themselves.
func (s *Sphere) EmittedRadiance(core.SurfaceInteraction, core.Vec3) core.Spectrum {
	return core.Spectrum{}
}

// hitT solves the ray/sphere quadratic in the sphere's local (center-
// relative) frame and returns the smallest positive root below r.TMax.
func (s *Sphere) hitT(r core.Ray) (float32, bool) {
	oc := r.Origin.Subtract(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	t0, t1, ok := core.Quadratic(a, b, c)
	if !ok {
		return 0, false
	}
	if t0 > r.TMax || t1 <= 0 {
		return 0, false
	}
	t := t0
	if t <= 0 {
		t = t1
		if t > r.TMax {
			return 0, false
		}
	}
	return t, true
}

// IntersectP reports whether r hits the sphere, without computing the full
// surface interaction.
func (s *Sphere) IntersectP(r core.Ray) bool {
	_, ok := s.hitT(r)
	return ok
}

// Intersect computes the full surface interaction for the closest hit, if
// any, following spec.md §4.2: project onto the exact radius, derive
// PErr = |p|*gamma(5), flip the normal if the ray starts inside the sphere,
// and compute the parametric partials.
func (s *Sphere) Intersect(r core.Ray) (core.SurfaceInteraction, float32, bool) {
	t, ok := s.hitT(r)
	if !ok {
		return core.SurfaceInteraction{}, 0, false
	}

	p := r.At(t).Subtract(s.Center)
	p = p.Multiply(s.Radius / p.Length())
	pErr := p.Abs().Multiply(core.Gamma(5))
	worldP := s.Center.Add(p)

	n := p.Normalize().ToNormal()
	if r.Origin.Subtract(s.Center).Length() < s.Radius {
		n = n.Negate()
	}

	twoPi := float32(2 * math.Pi)
	piF := float32(math.Pi)
	rho := float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y)))
	dpdu := core.Vec3{X: -twoPi * p.Y, Y: twoPi * p.X, Z: 0}
	var dpdv core.Vec3
	if rho > 0 {
		dpdv = core.Vec3{X: piF * p.Z * p.X / rho, Y: piF * p.Z * p.Y / rho, Z: -piF * rho}
	} else {
		dpdv = core.Vec3{}
	}

	si := core.SurfaceInteraction{
		P:    worldP,
		PErr: pErr,
		N:    n,
		SN:   n,
		DPDU: dpdu,
		DPDV: dpdv,
		Wo:   r.Direction.Negate(),
	}
	return si, t, true
}

// Sample draws a point uniformly on the sphere's surface.
func (s *Sphere) Sample(u [2]float32) core.SurfaceInteraction {
	z := 1 - 2*u[0]
	r := float32(math.Sqrt(math.Max(0, float64(1-z*z))))
	phi := float64(2*math.Pi) * float64(u[1])
	x := r * float32(math.Cos(phi))
	y := r * float32(math.Sin(phi))

	localN := core.Vec3{X: x, Y: y, Z: z}
	n := localN.ToNormal()
	p := s.Center.Add(localN.Multiply(s.Radius))
	return core.SurfaceInteraction{P: p, N: n, SN: n, PErr: p.ToVec().Abs().Multiply(core.Gamma(5))}
}

// SampleFrom defaults to uniform-area sampling; the corresponding pdf
// conversion to solid angle happens in PDF.
func (s *Sphere) SampleFrom(ref core.SurfaceInteraction, u [2]float32) core.SurfaceInteraction {
	return s.Sample(u)
}

// PDF returns the solid-angle density of SampleFrom having sampled
// direction wi from ref: dist^2 / (|cos theta| * area).
func (s *Sphere) PDF(ref core.SurfaceInteraction, wi core.Vec3) float32 {
	r := core.NewRay(ref.P, wi)
	r.TMax = core.Infinity
	si, t, ok := s.Intersect(r)
	if !ok {
		return 0
	}
	dist2 := t * t * wi.LengthSquared()
	cosTheta := si.N.AbsDot(wi.Negate().Normalize())
	if cosTheta == 0 {
		return 0
	}
	return dist2 / (cosTheta * s.Area())
}
