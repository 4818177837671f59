// Package reflection implements the elemental scattering lobes (BxDFs), the
// BSDF that composes them in a surface's local shading frame, and the
// Fresnel and microfacet-distribution terms they share.
package reflection

import (
	"math"

	"github.com/df07/kdpath/pkg/core"
)

// Flags tags a BxDF (or a single sampled event) with its reflection/
// transmission side and its roughness class.
type Flags uint8

const (
	Reflection Flags = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular

	All = Reflection | Transmission | Diffuse | Glossy | Specular
)

// Has reports whether f contains every bit set in want.
func (f Flags) Has(want Flags) bool { return f&want == want }

// IsSpecular reports whether f carries the Specular bit, meaning the lobe
// has a delta distribution: f() is always zero and all energy flows
// through SampleF with pdf == 1.
func (f Flags) IsSpecular() bool { return f&Specular != 0 }

// BxDF is one reflection or transmission lobe evaluated in the local
// shading frame, where the shading normal is +Z.
type BxDF interface {
	Flags() Flags
	// F evaluates the lobe for a given pair of directions. Always zero for
	// a specular lobe.
	F(wo, wi core.Vec3) core.Spectrum
	// SampleF draws an incident direction from a 2D sample, returning the
	// lobe value, its pdf, and the direction. For a specular lobe, wi is
	// determined by wo and pdf is 1.
	SampleF(wo core.Vec3, u [2]float32) (wi core.Vec3, f core.Spectrum, pdf float32, sampled Flags)
	// PDF returns the density SampleF would assign to wi given wo. Zero for
	// a specular lobe.
	PDF(wo, wi core.Vec3) float32
}

// Local-frame shading helpers: in the frame a BxDF evaluates in, the
// geometric/shading normal is the z axis.

func CosTheta(w core.Vec3) float32  { return w.Z }
func Cos2Theta(w core.Vec3) float32 { return w.Z * w.Z }
func AbsCosTheta(w core.Vec3) float32 {
	return core.Abs(w.Z)
}
func Sin2Theta(w core.Vec3) float32 {
	return core.Max(0, 1-Cos2Theta(w))
}
func SinTheta(w core.Vec3) float32 { return core.Max(0, sqrtF(Sin2Theta(w))) }
func Tan2Theta(w core.Vec3) float32 {
	c2 := Cos2Theta(w)
	if c2 == 0 {
		return 0
	}
	return Sin2Theta(w) / c2
}

func CosPhi(w core.Vec3) float32 {
	s := SinTheta(w)
	if s == 0 {
		return 1
	}
	return core.Clamp(w.X/s, -1, 1)
}
func SinPhi(w core.Vec3) float32 {
	s := SinTheta(w)
	if s == 0 {
		return 0
	}
	return core.Clamp(w.Y/s, -1, 1)
}
func Cos2Phi(w core.Vec3) float32 { c := CosPhi(w); return c * c }
func Sin2Phi(w core.Vec3) float32 { s := SinPhi(w); return s * s }

// SameHemisphere reports whether a and b lie on the same side of the
// shading normal.
func SameHemisphere(a, b core.Vec3) bool { return a.Z*b.Z > 0 }

// Reflect returns the mirror direction of wo about n (both in the same
// frame; n is typically (0,0,1) in local space).
func Reflect(wo, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * wo.Dot(n)).Subtract(wo)
}

// Refract computes the transmitted direction of wi through a surface with
// normal n (oriented to the same side as wi) and relative index eta =
// eta_i/eta_t. Returns ok=false on total internal reflection.
func Refract(wi, n core.Vec3, eta float32) (wt core.Vec3, ok bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := core.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := sqrtF(1 - sin2ThetaT)
	wt = wi.Negate().Multiply(eta).Add(n.Multiply(eta*cosThetaI - cosThetaT))
	return wt, true
}

// PowerHeuristic is the two-sample MIS power heuristic with beta=2, used to
// weight light- and BSDF-sampled contributions.
func PowerHeuristic(nf int, fPdf float32, ng int, gPdf float32) float32 {
	f := float32(nf) * fPdf
	g := float32(ng) * gPdf
	if f == 0 && g == 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}

func sqrtF(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}
