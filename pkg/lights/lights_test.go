package lights

import (
	"testing"

	"github.com/df07/kdpath/pkg/core"
	"github.com/df07/kdpath/pkg/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistantLightSampleLi(t *testing.T) {
	light := NewDistantLight(core.Vec3{X: 0, Y: -1, Z: 0}, core.Gray(2))
	light.PreProcess(core.NewBBox3FromPoints(core.NewPoint3(-1, -1, -1), core.NewPoint3(1, 1, 1)))

	ref := core.SurfaceInteraction{P: core.NewPoint3(0, 0, 0), N: core.Normal3{X: 0, Y: 1, Z: 0}}
	wi, l, pdf, vis := light.SampleLi(ref, [2]float32{0, 0})

	assert.InDelta(t, 0, wi.X, 1e-6)
	assert.InDelta(t, 1, wi.Y, 1e-6)
	assert.Equal(t, core.Gray(2), l)
	assert.Equal(t, float32(1), pdf)
	assert.True(t, light.IsDelta())
	assert.NotEqual(t, vis.P0.P, vis.P1.P)
}

func TestAreaLightSampleLi(t *testing.T) {
	tri := shapes.NewTriangle(
		core.NewPoint3(-1, 5, -1), core.NewPoint3(1, 5, -1), core.NewPoint3(0, 5, 1),
		nil,
	)
	al := NewAreaLight[*shapes.Triangle](tri, core.Gray(4))
	ref := core.SurfaceInteraction{P: core.NewPoint3(0, 0, 0), N: core.Normal3{X: 0, Y: 1, Z: 0}}

	wi, l, pdf, vis := al.SampleLi(ref, [2]float32{0.3, 0.4})
	assert.Greater(t, wi.Y, float32(0))
	assert.GreaterOrEqual(t, pdf, float32(0))
	assert.False(t, al.IsDelta())
	assert.True(t, al.IsLight())
	require.NotEqual(t, vis.P0.P, vis.P1.P)
	assert.False(t, l.IsBlack())
}

func TestWeightedLightSamplerNormalizesAndSelects(t *testing.T) {
	d1 := NewDistantLight(core.Vec3{X: 0, Y: -1, Z: 0}, core.Gray(1))
	d2 := NewDistantLight(core.Vec3{X: 1, Y: 0, Z: 0}, core.Gray(1))
	s := NewWeightedLightSampler([]core.Light{d1, d2}, []float32{3, 1})

	assert.InDelta(t, 0.75, s.LightProbability(0), 1e-6)
	assert.InDelta(t, 0.25, s.LightProbability(1), 1e-6)

	light, pdf, idx := s.SampleLight(0.1)
	assert.Equal(t, d1, light)
	assert.InDelta(t, 0.75, pdf, 1e-6)
	assert.Equal(t, 0, idx)

	light, _, idx = s.SampleLight(0.9)
	assert.Equal(t, d2, light)
	assert.Equal(t, 1, idx)
}

func TestUniformLightSamplerEqualWeights(t *testing.T) {
	d1 := NewDistantLight(core.Vec3{X: 0, Y: -1, Z: 0}, core.Gray(1))
	d2 := NewDistantLight(core.Vec3{X: 1, Y: 0, Z: 0}, core.Gray(1))
	d3 := NewDistantLight(core.Vec3{X: 0, Y: 0, Z: 1}, core.Gray(1))
	s := NewUniformLightSampler([]core.Light{d1, d2, d3})
	assert.InDelta(t, float32(1)/3, s.LightProbability(0), 1e-6)
	assert.Equal(t, 3, s.LightCount())
}

func TestWeightedLightSamplerPanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewWeightedLightSampler([]core.Light{NewDistantLight(core.Vec3{X: 0, Y: -1, Z: 0}, core.Gray(1))}, []float32{1, 2})
	})
}
