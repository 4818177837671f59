package reflection

import (
	"math"

	"github.com/df07/kdpath/pkg/core"
)

// GGXDistribution is the Trowbridge-Reitz (GGX) microfacet distribution
// with anisotropic roughness (AlphaX, AlphaY) and its Smith masking-
// shadowing function.
type GGXDistribution struct {
	AlphaX, AlphaY float32
}

// RoughnessToAlpha converts a perceptually-linear roughness in [0,1] to the
// alpha parameter GGX expects, following the common remapping alpha =
// roughness^2.
func RoughnessToAlpha(roughness float32) float32 {
	r := core.Max(roughness, 1e-3)
	return r * r
}

// D evaluates the normal distribution function at the half-vector wh
// (local frame, wh.z the cosine to the shading normal).
func (d GGXDistribution) D(wh core.Vec3) float32 {
	tan2 := Tan2Theta(wh)
	if math.IsInf(float64(tan2), 1) {
		return 0
	}
	cos4 := Cos2Theta(wh) * Cos2Theta(wh)
	if cos4 < 1e-16 {
		return 0
	}
	e := (Cos2Phi(wh)/(d.AlphaX*d.AlphaX) + Sin2Phi(wh)/(d.AlphaY*d.AlphaY)) * tan2
	denom := float32(math.Pi) * d.AlphaX * d.AlphaY * cos4 * (1 + e) * (1 + e)
	if denom == 0 {
		return 0
	}
	return 1 / denom
}

// Lambda is the Smith auxiliary function used to build the masking-
// shadowing term G.
func (d GGXDistribution) Lambda(w core.Vec3) float32 {
	tan2 := Tan2Theta(w)
	if math.IsInf(float64(tan2), 1) {
		return 0
	}
	alpha2 := Cos2Phi(w)*d.AlphaX*d.AlphaX + Sin2Phi(w)*d.AlphaY*d.AlphaY
	return (sqrtF(1+alpha2*tan2) - 1) / 2
}

// G1 is the masking term for a single direction.
func (d GGXDistribution) G1(w core.Vec3) float32 { return 1 / (1 + d.Lambda(w)) }

// G is the joint Smith masking-shadowing term for wo and wi.
func (d GGXDistribution) G(wo, wi core.Vec3) float32 {
	return 1 / (1 + d.Lambda(wo) + d.Lambda(wi))
}

// SampleWh draws a microfacet normal with density proportional to
// D(wh)*|cos(theta_h)|; it does not sample the distribution of visible
// normals.
func (d GGXDistribution) SampleWh(wo core.Vec3, u [2]float32) core.Vec3 {
	cosTheta := float32(0)
	phi := float32(2*math.Pi) * u[0]
	if d.AlphaX == d.AlphaY {
		tanTheta2 := d.AlphaX * d.AlphaX * u[1] / (1 - u[1])
		cosTheta = 1 / sqrtF(1+tanTheta2)
	} else {
		phi = float32(math.Atan(float64(d.AlphaY/d.AlphaX) * math.Tan(2*math.Pi*float64(u[1])+math.Pi/2)))
		if u[1] > 0.5 {
			phi += float32(math.Pi)
		}
		sinPhi, cosPhi := sinF(phi), cosF(phi)
		alpha2 := 1 / (cosPhi*cosPhi/(d.AlphaX*d.AlphaX) + sinPhi*sinPhi/(d.AlphaY*d.AlphaY))
		tanTheta2 := alpha2 * u[0] / (1 - u[0])
		cosTheta = 1 / sqrtF(1+tanTheta2)
	}
	sinTheta := sqrtF(core.Max(0, 1-cosTheta*cosTheta))
	wh := core.Vec3{X: sinTheta * cosF(phi), Y: sinTheta * sinF(phi), Z: cosTheta}
	if !SameHemisphere(wo, wh) {
		wh = wh.Negate()
	}
	return wh
}

// Pdf returns the density SampleWh assigns to half-vector wh.
func (d GGXDistribution) Pdf(wo, wh core.Vec3) float32 {
	return d.D(wh) * AbsCosTheta(wh)
}

func sinF(x float32) float32 { return float32(math.Sin(float64(x))) }
func cosF(x float32) float32 { return float32(math.Cos(float64(x))) }

// MicrofacetReflectionBRDF is the Torrance-Sparrow microfacet reflection
// lobe: f = R * D(wh) * G(wo,wi) * Fr(wh.wi) / (4 cosThetaO cosThetaI).
type MicrofacetReflectionBRDF struct {
	R       core.Spectrum
	Dist    GGXDistribution
	Fresnel Fresnel
}

func (MicrofacetReflectionBRDF) Flags() Flags { return Reflection | Glossy }

func (m MicrofacetReflectionBRDF) F(wo, wi core.Vec3) core.Spectrum {
	cosThetaO, cosThetaI := AbsCosTheta(wo), AbsCosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return core.Spectrum{}
	}
	wh := wi.Add(wo)
	if wh.IsZero() {
		return core.Spectrum{}
	}
	wh = wh.Normalize()
	fr := m.Fresnel.Evaluate(wi.Dot(faceForwardVec(wh, core.Vec3{X: 0, Y: 0, Z: 1})))
	d := m.Dist.D(wh)
	g := m.Dist.G(wo, wi)
	return m.R.MultiplySpectrum(fr).Multiply(d * g / (4 * cosThetaO * cosThetaI))
}

func (m MicrofacetReflectionBRDF) SampleF(wo core.Vec3, u [2]float32) (core.Vec3, core.Spectrum, float32, Flags) {
	if wo.Z == 0 {
		return core.Vec3{}, core.Spectrum{}, 0, m.Flags()
	}
	wh := m.Dist.SampleWh(wo, u)
	wi := Reflect(wo, wh)
	if !SameHemisphere(wo, wi) {
		return wi, core.Spectrum{}, 0, m.Flags()
	}
	pdf := m.Dist.Pdf(wo, wh) / (4 * wo.Dot(wh))
	return wi, m.F(wo, wi), pdf, m.Flags()
}

func (m MicrofacetReflectionBRDF) PDF(wo, wi core.Vec3) float32 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	wh := wi.Add(wo)
	if wh.IsZero() {
		return 0
	}
	wh = wh.Normalize()
	return m.Dist.Pdf(wo, wh) / (4 * wo.Dot(wh))
}

// MicrofacetTransmissionBTDF is the non-symmetric rough transmission lobe
// between dielectric media with indices EtaA (wo.z>0 side) and EtaB.
type MicrofacetTransmissionBTDF struct {
	T          core.Spectrum
	Dist       GGXDistribution
	EtaA, EtaB float32
}

func (MicrofacetTransmissionBTDF) Flags() Flags { return Transmission | Glossy }

func (m MicrofacetTransmissionBTDF) F(wo, wi core.Vec3) core.Spectrum {
	if SameHemisphere(wo, wi) {
		return core.Spectrum{}
	}
	cosThetaO, cosThetaI := CosTheta(wo), CosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return core.Spectrum{}
	}
	eta := float32(1.0)
	if cosThetaO > 0 {
		eta = m.EtaB / m.EtaA
	} else {
		eta = m.EtaA / m.EtaB
	}
	wh := wo.Add(wi.Multiply(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}
	fr := dielectricReflectance(wo.Dot(wh), m.EtaA, m.EtaB)

	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	if sqrtDenom == 0 {
		return core.Spectrum{}
	}
	factor := float32(1) / eta

	d := m.Dist.D(wh)
	g := m.Dist.G(wo, wi)
	num := d * g * eta * eta * core.Abs(wi.Dot(wh)) * core.Abs(wo.Dot(wh)) * (1 - fr)
	denom := cosThetaI * cosThetaO * sqrtDenom * sqrtDenom
	return m.T.Multiply(num / denom * factor * factor)
}

func (m MicrofacetTransmissionBTDF) SampleF(wo core.Vec3, u [2]float32) (core.Vec3, core.Spectrum, float32, Flags) {
	if wo.Z == 0 {
		return core.Vec3{}, core.Spectrum{}, 0, m.Flags()
	}
	wh := m.Dist.SampleWh(wo, u)
	eta := m.EtaA / m.EtaB
	if CosTheta(wo) < 0 {
		eta = m.EtaB / m.EtaA
	}
	wi, ok := Refract(wo, faceForwardVec(wh, wo), eta)
	if !ok {
		return core.Vec3{}, core.Spectrum{}, 0, m.Flags()
	}
	pdf := m.PDF(wo, wi)
	return wi, m.F(wo, wi), pdf, m.Flags()
}

func (m MicrofacetTransmissionBTDF) PDF(wo, wi core.Vec3) float32 {
	if SameHemisphere(wo, wi) {
		return 0
	}
	eta := float32(1.0)
	if CosTheta(wo) > 0 {
		eta = m.EtaB / m.EtaA
	} else {
		eta = m.EtaA / m.EtaB
	}
	wh := wo.Add(wi.Multiply(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}
	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	if sqrtDenom == 0 {
		return 0
	}
	dwhDwi := core.Abs(eta * eta * wi.Dot(wh) / (sqrtDenom * sqrtDenom))
	return m.Dist.Pdf(wo, wh) * dwhDwi
}

func faceForwardVec(v, ref core.Vec3) core.Vec3 {
	if v.Dot(ref) < 0 {
		return v.Negate()
	}
	return v
}
