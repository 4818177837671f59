package lights

import "github.com/df07/kdpath/pkg/core"

// AreaLight wraps a shape S and forwards the full core.Shape contract to
// it, so the same value can sit in the scene's shape pool (making it
// hittable and directly visible) and in the light list (making it
// sampleable for next-event estimation). IsLight/EmittedRadiance are
// overridden rather than forwarded, since emission belongs to the light
// wrapper, not to the bare shape (Go generics cannot embed a type
// parameter, so the Shape methods are forwarded explicitly below).
type AreaLight[S core.Shape] struct {
	Shape S
	Lemit core.Spectrum
}

func NewAreaLight[S core.Shape](shape S, lemit core.Spectrum) *AreaLight[S] {
	return &AreaLight[S]{Shape: shape, Lemit: lemit}
}

func (a *AreaLight[S]) BBox() core.BBox3 { return a.Shape.BBox() }
func (a *AreaLight[S]) Area() float32    { return a.Shape.Area() }

func (a *AreaLight[S]) Material() core.Material { return a.Shape.Material() }

func (a *AreaLight[S]) IntersectP(r core.Ray) bool { return a.Shape.IntersectP(r) }
func (a *AreaLight[S]) Intersect(r core.Ray) (core.SurfaceInteraction, float32, bool) {
	return a.Shape.Intersect(r)
}
func (a *AreaLight[S]) Sample(u [2]float32) core.SurfaceInteraction { return a.Shape.Sample(u) }
func (a *AreaLight[S]) SampleFrom(ref core.SurfaceInteraction, u [2]float32) core.SurfaceInteraction {
	return a.Shape.SampleFrom(ref, u)
}
func (a *AreaLight[S]) PDF(ref core.SurfaceInteraction, wi core.Vec3) float32 {
	return a.Shape.PDF(ref, wi)
}

func (a *AreaLight[S]) IsLight() bool { return true }

// EmittedRadiance returns Lemit when si.N faces w, zero otherwise (the
// surface is seen from behind).
func (a *AreaLight[S]) EmittedRadiance(si core.SurfaceInteraction, w core.Vec3) core.Spectrum {
	if si.N.Dot(w) <= 0 {
		return core.Spectrum{}
	}
	return a.Lemit
}

func (a *AreaLight[S]) PreProcess(core.BBox3) {}

func (a *AreaLight[S]) SampleLi(ref core.SurfaceInteraction, u [2]float32) (core.Vec3, core.Spectrum, float32, core.VisibilityTester) {
	pLight := a.Shape.SampleFrom(ref, u)

	wi := pLight.P.Subtract(ref.P)
	if wi.IsZero() {
		return core.Vec3{}, core.Spectrum{}, 0, core.VisibilityTester{}
	}
	wi = wi.Normalize()

	l := a.EmittedRadiance(pLight, wi.Negate())
	pdf := a.Shape.PDF(ref, wi)

	vis := core.VisibilityTester{P0: ref, P1: pLight}
	return wi, l, pdf, vis
}

func (a *AreaLight[S]) IsDelta() bool { return false }
