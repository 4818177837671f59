package material

import (
	"github.com/df07/kdpath/pkg/core"
	"github.com/df07/kdpath/pkg/reflection"
)

// Lambertian is a purely diffuse material: its BSDF has a single
// Lambertian reflection lobe.
type Lambertian struct {
	Kd SpectrumTexture
}

func (m Lambertian) ComputeScattering(si core.SurfaceInteraction) core.BSDF {
	b := reflection.NewBSDF(si)
	r := m.Kd.Evaluate(si).ClampLow(0)
	if !r.IsBlack() {
		b.Add(reflection.LambertianBRDF{R: r})
	}
	return b
}

// Mirror is a perfect specular reflector with no-op Fresnel (the
// reflectance texture already carries the full tint).
type Mirror struct {
	Kr SpectrumTexture
}

func (m Mirror) ComputeScattering(si core.SurfaceInteraction) core.BSDF {
	b := reflection.NewBSDF(si)
	r := m.Kr.Evaluate(si).ClampLow(0)
	if !r.IsBlack() {
		b.Add(reflection.SpecularReflectionBRDF{R: r, Fresnel: reflection.FresnelNoOp{}})
	}
	return b
}

// Glass is a dielectric: specular reflection plus specular transmission,
// both weighted by the same dielectric Fresnel term at the two indices of
// refraction.
type Glass struct {
	Kr, Kt SpectrumTexture
	Eta    float32
}

func (m Glass) ComputeScattering(si core.SurfaceInteraction) core.BSDF {
	b := reflection.NewBSDF(si)
	r := m.Kr.Evaluate(si).ClampLow(0)
	t := m.Kt.Evaluate(si).ClampLow(0)
	if r.IsBlack() && t.IsBlack() {
		return b
	}
	fr := reflection.FresnelDielectric{EtaI: 1, EtaT: m.Eta}
	if !r.IsBlack() {
		b.Add(reflection.SpecularReflectionBRDF{R: r, Fresnel: fr})
	}
	if !t.IsBlack() {
		b.Add(reflection.SpecularTransmissionBTDF{T: t, EtaA: 1, EtaB: m.Eta, Fresnel: fr})
	}
	return b
}

// Metal is a specular reflector with a conductor Fresnel term derived from
// complex index of refraction (Eta, K).
type Metal struct {
	Eta, K core.Spectrum
}

func (m Metal) ComputeScattering(si core.SurfaceInteraction) core.BSDF {
	b := reflection.NewBSDF(si)
	fr := reflection.FresnelConductor{EtaI: core.Gray(1), Eta: m.Eta, K: m.K}
	b.Add(reflection.SpecularReflectionBRDF{R: core.Gray(1), Fresnel: fr})
	return b
}

// Plastic is Lambertian diffuse plus a reflective coat; the coat is
// microfacet when Roughness evaluates above zero and specular otherwise.
type Plastic struct {
	Kd        SpectrumTexture
	Ks        SpectrumTexture
	Roughness FloatTexture
}

func (m Plastic) ComputeScattering(si core.SurfaceInteraction) core.BSDF {
	b := reflection.NewBSDF(si)
	kd := m.Kd.Evaluate(si).ClampLow(0)
	if !kd.IsBlack() {
		b.Add(reflection.LambertianBRDF{R: kd})
	}
	ks := m.Ks.Evaluate(si).ClampLow(0)
	if !ks.IsBlack() {
		fr := reflection.FresnelDielectric{EtaI: 1, EtaT: 1.5}
		rough := m.Roughness.Evaluate(si)
		if rough <= 0 {
			b.Add(reflection.SpecularReflectionBRDF{R: ks, Fresnel: fr})
		} else {
			alpha := reflection.RoughnessToAlpha(rough)
			b.Add(reflection.MicrofacetReflectionBRDF{
				R:       ks,
				Dist:    reflection.GGXDistribution{AlphaX: alpha, AlphaY: alpha},
				Fresnel: fr,
			})
		}
	}
	return b
}
