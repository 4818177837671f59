package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S4: the first eight base-2 radical inverse values must match the plain
// van der Corput sequence with no digit permutation applied.
func TestRadicalInverseBase2FirstEight(t *testing.T) {
	want := []float32{0, 0.5, 0.25, 0.75, 0.125, 0.625, 0.375, 0.875}
	for i, w := range want {
		got := RadicalInverse(0, uint64(i))
		assert.InDelta(t, w, got, 1e-6, "index %d", i)
	}
}

func TestExtendedGCDLiterals(t *testing.T) {
	cases := []struct {
		a, b, x, y int64
	}{
		{2, 0, 1, 0},
		{2, 4, 1, 0},
		{4, 6, -1, 1},
		{8, 6, 1, -1},
		{77, 14, 1, -5},
	}
	for _, c := range cases {
		x, y := ExtendedGCD(c.a, c.b)
		assert.Equal(t, c.x, x, "a=%d b=%d", c.a, c.b)
		assert.Equal(t, c.y, y, "a=%d b=%d", c.a, c.b)
	}
}

func TestInverseRadicalInverseRoundTrip(t *testing.T) {
	for a := uint64(0); a < 50; a++ {
		ri := radicalInverse(2, a)
		// Reconstruct the index from the same number of digits a occupied.
		nDigits := 0
		for n := a; n > 0; n /= 2 {
			nDigits++
		}
		if nDigits == 0 {
			nDigits = 1
		}
		inverse := uint64(ri * float32(uint64(1)<<uint(nDigits)))
		got := InverseRadicalInverse(2, inverse, nDigits)
		assert.Equal(t, a, got)
	}
}

// Property 5: every Halton and random sample dimension lies in [0, 1).
func TestRandomSamplerRange(t *testing.T) {
	s := NewRandomSampler(16, 1)
	s.StartPixel([2]int{3, 4})
	for s.StartNextSample() {
		v := s.Get1D()
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
		uv := s.Get2D()
		assert.GreaterOrEqual(t, uv[0], float32(0))
		assert.Less(t, uv[0], float32(1))
		assert.GreaterOrEqual(t, uv[1], float32(0))
		assert.Less(t, uv[1], float32(1))
	}
}

func TestHaltonSamplerRange(t *testing.T) {
	s := NewHaltonSampler(32)
	s.StartPixel([2]int{7, 11})
	for s.StartNextSample() {
		v := s.Get1D()
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
		uv := s.Get2D()
		assert.GreaterOrEqual(t, uv[0], float32(0))
		assert.Less(t, uv[0], float32(1))
		assert.GreaterOrEqual(t, uv[1], float32(0))
		assert.Less(t, uv[1], float32(1))
	}
}

// Property 6: resetting to the same pixel reproduces the same sequence.
func TestHaltonSamplerDeterministic(t *testing.T) {
	run := func() [][2]float32 {
		s := NewHaltonSampler(8)
		s.StartPixel([2]int{5, 9})
		var out [][2]float32
		for s.StartNextSample() {
			out = append(out, s.Get2D())
		}
		return out
	}
	a := run()
	b := run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestHaltonSamplerDistinctPixelsDiffer(t *testing.T) {
	sample := func(p [2]int) [2]float32 {
		s := NewHaltonSampler(1)
		s.StartPixel(p)
		s.StartNextSample()
		return s.Get2D()
	}
	a := sample([2]int{0, 0})
	b := sample([2]int{1, 0})
	assert.NotEqual(t, a, b)
}

func TestHaltonSamplerArrays(t *testing.T) {
	s := NewHaltonSampler(4)
	s.Request1DArray(3)
	s.Request2DArray(2)
	s.StartPixel([2]int{1, 2})
	for s.StartNextSample() {
		arr1 := s.Get1DArray(3)
		require.Len(t, arr1, 3)
		arr2 := s.Get2DArray(2)
		require.Len(t, arr2, 2)
		for _, v := range arr1 {
			assert.GreaterOrEqual(t, v, float32(0))
			assert.Less(t, v, float32(1))
		}
	}
}

func TestConcentricSampleDiskWithinUnitDisk(t *testing.T) {
	pts := [][2]float32{{0, 0}, {0.25, 0.75}, {0.9, 0.1}, {0.5, 0.5}}
	for _, u := range pts {
		d := ConcentricSampleDisk(u)
		r2 := d[0]*d[0] + d[1]*d[1]
		assert.LessOrEqual(t, r2, float32(1.0001))
	}
}

func TestCosineSampleHemisphereUpperHemisphere(t *testing.T) {
	v := CosineSampleHemisphere([2]float32{0.3, 0.6})
	assert.GreaterOrEqual(t, v.Z, float32(0))
	assert.InDelta(t, float32(1), v.LengthSquared(), 1e-4)
}
