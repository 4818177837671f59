package film

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/df07/kdpath/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianFilterZeroAtRadius(t *testing.T) {
	f := NewGaussianFilter(2, 2)
	assert.InDelta(t, 0, f.Evaluate(2, 0), 1e-6)
	assert.Greater(t, f.Evaluate(0, 0), float32(0))
}

// Property 9: given the same samples in any order, the developed image is
// identical modulo floating-point associativity.
func TestFilmIdempotentUnderSampleOrder(t *testing.T) {
	type sample struct {
		p [2]float32
		l core.Spectrum
	}
	rng := rand.New(rand.NewSource(7))
	samples := make([]sample, 200)
	for i := range samples {
		samples[i] = sample{
			p: [2]float32{float32(rng.Float64()) * 8, float32(rng.Float64()) * 8},
			l: core.Gray(float32(rng.Float64())),
		}
	}

	render := func(order []int) *Film {
		f, err := NewFilm(8, 8, NewGaussianFilter(2, 2))
		require.NoError(t, err)
		for _, i := range order {
			s := samples[i]
			f.AddSample(s.p, s.l, 0, 0, 8, 8)
		}
		return f
	}

	forward := make([]int, len(samples))
	for i := range forward {
		forward[i] = i
	}
	backward := make([]int, len(samples))
	for i := range backward {
		backward[i] = len(samples) - 1 - i
	}

	a := render(forward)
	b := render(backward)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			ca, cb := a.Pixel(x, y), b.Pixel(x, y)
			assert.InDelta(t, ca.R, cb.R, 1e-3)
			assert.InDelta(t, ca.G, cb.G, 1e-3)
			assert.InDelta(t, ca.B, cb.B, 1e-3)
		}
	}
}

func TestFilmRejectsNonPositiveResolution(t *testing.T) {
	_, err := NewFilm(0, 10, NewGaussianFilter(1, 1))
	assert.Error(t, err)
}

func TestWritePPMHeaderAndLength(t *testing.T) {
	f, err := NewFilm(4, 3, NewGaussianFilter(1, 1))
	require.NoError(t, err)
	f.AddSample([2]float32{2, 1.5}, core.Gray(1), 0, 0, 4, 3)

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, f))

	want := "P6\n4 3\n255\n"
	got := buf.String()
	require.True(t, len(got) > len(want))
	assert.Equal(t, want, got[:len(want)])
	assert.Equal(t, len(want)+4*3*3, len(got))
}

func TestGammaByteClampsToRange(t *testing.T) {
	assert.Equal(t, byte(0), gammaByte(0))
	assert.Equal(t, byte(255), gammaByte(10))
}
