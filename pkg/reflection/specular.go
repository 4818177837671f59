package reflection

import "github.com/df07/kdpath/pkg/core"

// SpecularReflectionBRDF is a perfect mirror lobe tinted by R and weighted
// by a Fresnel term. All energy is delivered through SampleF; F and PDF are
// always zero since the lobe is a delta distribution.
type SpecularReflectionBRDF struct {
	R       core.Spectrum
	Fresnel Fresnel
}

func (SpecularReflectionBRDF) Flags() Flags { return Reflection | Specular }

func (SpecularReflectionBRDF) F(wo, wi core.Vec3) core.Spectrum { return core.Spectrum{} }
func (SpecularReflectionBRDF) PDF(wo, wi core.Vec3) float32     { return 0 }

func (s SpecularReflectionBRDF) SampleF(wo core.Vec3, u [2]float32) (core.Vec3, core.Spectrum, float32, Flags) {
	wi := core.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	fr := s.Fresnel.Evaluate(CosTheta(wi))
	cosI := AbsCosTheta(wi)
	if cosI == 0 {
		return wi, core.Spectrum{}, 1, s.Flags()
	}
	f := s.R.MultiplySpectrum(fr).Divide(cosI)
	return wi, f, 1, s.Flags()
}

// SpecularTransmissionBTDF is a perfect refraction lobe between two
// dielectric media with indices etaA (outside, wo.z>0 side) and etaB
// (inside). Scales radiance by (etaI/etaT)^2 since radiance changes across
// an interface with differing indices of refraction.
type SpecularTransmissionBTDF struct {
	T          core.Spectrum
	EtaA, EtaB float32
	Fresnel    FresnelDielectric
}

func (SpecularTransmissionBTDF) Flags() Flags { return Transmission | Specular }

func (SpecularTransmissionBTDF) F(wo, wi core.Vec3) core.Spectrum { return core.Spectrum{} }
func (SpecularTransmissionBTDF) PDF(wo, wi core.Vec3) float32     { return 0 }

func (s SpecularTransmissionBTDF) SampleF(wo core.Vec3, u [2]float32) (core.Vec3, core.Spectrum, float32, Flags) {
	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	n := core.Vec3{X: 0, Y: 0, Z: 1}
	if !entering {
		etaI, etaT = s.EtaB, s.EtaA
		n = core.Vec3{X: 0, Y: 0, Z: -1}
	}

	wi, ok := Refract(wo, faceForwardNormal(n, wo), etaI/etaT)
	if !ok {
		return core.Vec3{}, core.Spectrum{}, 0, s.Flags()
	}

	cosI := AbsCosTheta(wi)
	if cosI == 0 {
		return wi, core.Spectrum{}, 0, s.Flags()
	}
	fr := dielectricReflectance(CosTheta(wo), etaI, etaT)
	ft := (1 - fr) * (etaI * etaI) / (etaT * etaT)
	f := s.T.Multiply(ft).Divide(cosI)
	return wi, f, 1, s.Flags()
}

func faceForwardNormal(n, v core.Vec3) core.Vec3 {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}
