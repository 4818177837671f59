package material

import (
	"testing"

	"github.com/df07/kdpath/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSI() core.SurfaceInteraction {
	return core.SurfaceInteraction{
		SN:   core.Normal3{X: 0, Y: 0, Z: 1},
		DPDU: core.Vec3{X: 1, Y: 0, Z: 0},
	}
}

func TestLambertianProducesDiffuseLobe(t *testing.T) {
	m := Lambertian{Kd: ConstantSpectrumTexture{Value: core.Gray(0.8)}}
	bsdf := m.ComputeScattering(flatSI())
	wo := core.Vec3{X: 0, Y: 0, Z: 1}
	wi := core.Vec3{X: 0, Y: 0, Z: 1}
	f := bsdf.F(wo, wi)
	assert.Greater(t, f.R, float32(0))
}

func TestMirrorHasNoDiffuseContribution(t *testing.T) {
	m := Mirror{Kr: ConstantSpectrumTexture{Value: core.Gray(0.9)}}
	bsdf := m.ComputeScattering(flatSI())
	wo := core.Vec3{X: 0, Y: 0, Z: 1}
	wi := core.Vec3{X: 0, Y: 0, Z: 1}
	assert.True(t, bsdf.F(wo, wi).IsBlack())

	wiS, f, pdf, specular := bsdf.SampleF(wo, [2]float32{0, 0}, 0)
	require.True(t, specular)
	assert.Equal(t, float32(1), pdf)
	assert.False(t, f.IsBlack())
	assert.InDelta(t, wo.Z, wiS.Z, 1e-6)
}

func TestGlassHasReflectionAndTransmission(t *testing.T) {
	m := Glass{
		Kr:  ConstantSpectrumTexture{Value: core.Gray(1)},
		Kt:  ConstantSpectrumTexture{Value: core.Gray(1)},
		Eta: 1.5,
	}
	bsdf := m.ComputeScattering(flatSI())
	require.Equal(t, 2, bsdf.(interface{ NumLobes() int }).NumLobes())
}

func TestPlasticSwitchesSpecularVsMicrofacet(t *testing.T) {
	smooth := Plastic{
		Kd:        ConstantSpectrumTexture{Value: core.Gray(0.5)},
		Ks:        ConstantSpectrumTexture{Value: core.Gray(0.5)},
		Roughness: ConstantFloatTexture{Value: 0},
	}
	rough := Plastic{
		Kd:        ConstantSpectrumTexture{Value: core.Gray(0.5)},
		Ks:        ConstantSpectrumTexture{Value: core.Gray(0.5)},
		Roughness: ConstantFloatTexture{Value: 0.3},
	}
	siA := smooth.ComputeScattering(flatSI())
	siB := rough.ComputeScattering(flatSI())
	wo := core.Vec3{X: 0, Y: 0, Z: 1}
	_, _, pdfA, specA := siA.SampleF(wo, [2]float32{0.1, 0.1}, 0.9)
	_, _, pdfB, specB := siB.SampleF(wo, [2]float32{0.1, 0.1}, 0.9)
	_ = pdfA
	_ = pdfB
	// Roughness 0 picks the specular coat on uComponent>=0.5; roughness>0
	// picks the microfacet coat, which is never itself IsSpecular.
	if !specA && !specB {
		t.Skip("both lobes landed on the diffuse component for this sample")
	}
	assert.NotEqual(t, specA, specB)
}

func TestMetalReflectsWithConductorFresnel(t *testing.T) {
	m := Metal{Eta: core.NewSpectrum(0.2, 0.9, 1.1), K: core.NewSpectrum(3.9, 2.5, 2.1)}
	bsdf := m.ComputeScattering(flatSI())
	wo := core.Vec3{X: 0, Y: 0, Z: 1}
	_, f, pdf, specular := bsdf.SampleF(wo, [2]float32{0, 0}, 0)
	assert.True(t, specular)
	assert.Equal(t, float32(1), pdf)
	assert.False(t, f.IsBlack())
}

func TestCheckerboardTextureAlternates(t *testing.T) {
	tex := CheckerboardTexture{
		Mapping: UVMapping2D{Su: 1, Sv: 1},
		Tex1:    ConstantSpectrumTexture{Value: core.Gray(0)},
		Tex2:    ConstantSpectrumTexture{Value: core.Gray(1)},
	}
	a := tex.Evaluate(core.SurfaceInteraction{UV: [2]float32{0.2, 0.2}})
	b := tex.Evaluate(core.SurfaceInteraction{UV: [2]float32{1.2, 0.2}})
	assert.NotEqual(t, a.R, b.R)
}
