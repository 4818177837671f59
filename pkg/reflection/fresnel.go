package reflection

import "github.com/df07/kdpath/pkg/core"

// Fresnel evaluates the fraction of light reflected at an interface for a
// given cosine of the incident angle (measured from the surface normal).
type Fresnel interface {
	Evaluate(cosThetaI float32) core.Spectrum
}

// FresnelNoOp always returns full reflectance; used by mirror materials
// where the reflectance texture already carries the full tint.
type FresnelNoOp struct{}

func (FresnelNoOp) Evaluate(float32) core.Spectrum { return core.Gray(1) }

// FresnelDielectric is the unpolarized Fresnel reflectance at a dielectric
// interface with real indices of refraction etaI (incident side) and etaT
// (transmitted side). Handles total internal reflection by returning 1.
type FresnelDielectric struct {
	EtaI, EtaT float32
}

func (fr FresnelDielectric) Evaluate(cosThetaI float32) core.Spectrum {
	return core.Gray(dielectricReflectance(cosThetaI, fr.EtaI, fr.EtaT))
}

func dielectricReflectance(cosThetaI, etaI, etaT float32) float32 {
	cosThetaI = core.Clamp(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sin2ThetaI := core.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := (etaI / etaT) * (etaI / etaT) * sin2ThetaI
	if sin2ThetaT >= 1 {
		return 1
	}
	cosThetaT := sqrtF(1 - sin2ThetaT)

	rParl := ((etaT * cosThetaI) - (etaI * cosThetaT)) / ((etaT * cosThetaI) + (etaI * cosThetaT))
	rPerp := ((etaI * cosThetaI) - (etaT * cosThetaT)) / ((etaI * cosThetaI) + (etaT * cosThetaT))
	return (rParl*rParl + rPerp*rPerp) / 2
}

// FresnelConductor is the Fresnel reflectance at a conductor interface with
// complex index of refraction Eta + i*K, given per RGB channel.
type FresnelConductor struct {
	EtaI core.Spectrum
	Eta  core.Spectrum
	K    core.Spectrum
}

func (fr FresnelConductor) Evaluate(cosThetaI float32) core.Spectrum {
	cosThetaI = core.Clamp(core.Abs(cosThetaI), 0, 1)
	return core.NewSpectrum(
		conductorReflectance(cosThetaI, fr.EtaI.R, fr.Eta.R, fr.K.R),
		conductorReflectance(cosThetaI, fr.EtaI.G, fr.Eta.G, fr.K.G),
		conductorReflectance(cosThetaI, fr.EtaI.B, fr.Eta.B, fr.K.B),
	)
}

// conductorReflectance evaluates the standard closed-form unpolarized
// Fresnel term for a conductor, with eta/k relative to the incident medium.
func conductorReflectance(cosThetaI, etaI, eta, k float32) float32 {
	e := eta / etaI
	kk := k / etaI

	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2

	e2 := e * e
	k2 := kk * kk

	t0 := e2 - k2 - sin2
	a2plusb2 := sqrtF(core.Max(0, t0*t0+4*e2*k2))
	t1 := a2plusb2 + cos2
	a := sqrtF(core.Max(0, (a2plusb2+t0)/2))
	t2 := 2 * a * cosThetaI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cos2*a2plusb2 + sin2*sin2
	t4 := t2 * sin2
	rp := rs * (t3 - t4) / (t3 + t4)

	return (rs + rp) / 2
}
