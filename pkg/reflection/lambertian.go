package reflection

import (
	"math"

	"github.com/df07/kdpath/pkg/core"
	"github.com/df07/kdpath/pkg/sampler"
)

var invPi = float32(1 / math.Pi)

// LambertianBRDF is a perfectly diffuse reflection lobe with reflectance R.
type LambertianBRDF struct {
	R core.Spectrum
}

func (LambertianBRDF) Flags() Flags { return Reflection | Diffuse }

func (l LambertianBRDF) F(wo, wi core.Vec3) core.Spectrum {
	return l.R.Multiply(invPi)
}

func (l LambertianBRDF) SampleF(wo core.Vec3, u [2]float32) (core.Vec3, core.Spectrum, float32, Flags) {
	wi := sampler.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := l.PDF(wo, wi)
	return wi, l.F(wo, wi), pdf, l.Flags()
}

func (l LambertianBRDF) PDF(wo, wi core.Vec3) float32 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) * invPi
}
