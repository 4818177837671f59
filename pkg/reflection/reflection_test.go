package reflection

import (
	"math/rand"
	"testing"

	"github.com/df07/kdpath/pkg/core"
	"github.com/stretchr/testify/assert"
)

// Property 7: for any non-specular lobe, the hemispherical-directional
// reflectance integral must not exceed 1. monteCarloAlbedo estimates it by
// importance sampling with the lobe's own SampleF; the tests below allow a
// 1e-2 margin for Monte Carlo noise.
func monteCarloAlbedo(t *testing.T, bx BxDF, wo core.Vec3, n int) float32 {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	var sum float32
	for i := 0; i < n; i++ {
		u := [2]float32{float32(rng.Float64()), float32(rng.Float64())}
		wi, f, pdf, _ := bx.SampleF(wo, u)
		if pdf == 0 || f.IsBlack() {
			continue
		}
		sum += f.MaxComponent() * AbsCosTheta(wi) / pdf
	}
	return sum / float32(n)
}

func TestLambertianEnergyConservation(t *testing.T) {
	bx := LambertianBRDF{R: core.Gray(0.9)}
	wo := core.Vec3{X: 0, Y: 0, Z: 1}
	albedo := monteCarloAlbedo(t, bx, wo, 20000)
	assert.LessOrEqual(t, albedo, float32(0.9+1e-2))
}

func TestMicrofacetReflectionEnergyConservation(t *testing.T) {
	bx := MicrofacetReflectionBRDF{
		R:       core.Gray(0.9),
		Dist:    GGXDistribution{AlphaX: 0.3, AlphaY: 0.3},
		Fresnel: FresnelNoOp{},
	}
	wo := core.Vec3{X: 0, Y: 0.3, Z: 0.95}.Normalize()
	albedo := monteCarloAlbedo(t, bx, wo, 20000)
	assert.LessOrEqual(t, albedo, float32(1+1e-2))
}

func TestLambertianSampleFStaysInHemisphere(t *testing.T) {
	bx := LambertianBRDF{R: core.Gray(0.5)}
	wo := core.Vec3{X: 0, Y: 0, Z: 1}
	wi, _, pdf, flags := bx.SampleF(wo, [2]float32{0.3, 0.7})
	assert.Greater(t, pdf, float32(0))
	assert.Greater(t, wi.Z, float32(0))
	assert.True(t, flags.Has(Diffuse))
}

func TestSpecularReflectionIsMirror(t *testing.T) {
	bx := SpecularReflectionBRDF{R: core.Gray(1), Fresnel: FresnelNoOp{}}
	wo := core.Vec3{X: 0.3, Y: 0.4, Z: 0.8}
	wi, f, pdf, flags := bx.SampleF(wo, [2]float32{0, 0})
	assert.InDelta(t, -wo.X, wi.X, 1e-6)
	assert.InDelta(t, -wo.Y, wi.Y, 1e-6)
	assert.InDelta(t, wo.Z, wi.Z, 1e-6)
	assert.Equal(t, float32(1), pdf)
	assert.True(t, flags.IsSpecular())
	assert.False(t, f.IsBlack())
}

func TestFresnelDielectricNormalIncidence(t *testing.T) {
	fr := FresnelDielectric{EtaI: 1, EtaT: 1.5}
	r := fr.Evaluate(1)
	// Schlick-equivalent normal-incidence reflectance for 1.0/1.5 is ~0.04.
	assert.InDelta(t, 0.04, r.R, 0.01)
}

func TestFresnelDielectricTotalInternalReflection(t *testing.T) {
	fr := FresnelDielectric{EtaI: 1.5, EtaT: 1.0}
	r := fr.Evaluate(0.05)
	assert.InDelta(t, 1.0, r.R, 1e-4)
}

func TestBSDFAggregatesLambertian(t *testing.T) {
	si := core.SurfaceInteraction{
		SN:   core.Normal3{X: 0, Y: 0, Z: 1},
		DPDU: core.Vec3{X: 1, Y: 0, Z: 0},
	}
	b := NewBSDF(si)
	b.Add(LambertianBRDF{R: core.Gray(0.5)})

	wo := core.Vec3{X: 0, Y: 0, Z: 1}
	wi := core.Vec3{X: 0, Y: 0, Z: 1}
	f := b.F(wo, wi)
	assert.InDelta(t, 0.5*invPi, f.R, 1e-6)
}

func TestPowerHeuristic(t *testing.T) {
	w := PowerHeuristic(1, 0.5, 1, 0.5)
	assert.InDelta(t, 0.5, w, 1e-6)
	w0 := PowerHeuristic(1, 0, 1, 0)
	assert.Equal(t, float32(0), w0)
}
