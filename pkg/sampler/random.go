package sampler

import (
	"math/rand"

	"github.com/df07/kdpath/pkg/core"
)

// RandomSampler fills scalar and array draws from a uniform pseudo-RNG,
// independent across pixels with no correlation guarantees beyond
// uniformity.
type RandomSampler struct {
	spp int
	rng *rand.Rand

	sampleIndex int
	arrays1D    [][]float32
	arrays2D    [][][2]float32
	off1D       []int
	off2D       []int
	n1D         []int
	n2D         []int
}

// NewRandomSampler creates a random sampler producing spp samples per pixel.
func NewRandomSampler(spp int, seed int64) *RandomSampler {
	return &RandomSampler{spp: spp, rng: rand.New(rand.NewSource(seed))}
}

// Request1DArray reserves an n-length 1D array per sample.
func (s *RandomSampler) Request1DArray(n int) {
	s.n1D = append(s.n1D, n)
	s.arrays1D = append(s.arrays1D, make([]float32, n*s.spp))
	s.off1D = append(s.off1D, 0)
}

// Request2DArray reserves an n-length 2D array per sample.
func (s *RandomSampler) Request2DArray(n int) {
	s.n2D = append(s.n2D, n)
	s.arrays2D = append(s.arrays2D, make([][2]float32, n*s.spp))
	s.off2D = append(s.off2D, 0)
}

// StartPixel resets per-pixel state and refills every requested array with
// fresh uniform randoms.
func (s *RandomSampler) StartPixel(p [2]int) {
	s.sampleIndex = -1
	for i, arr := range s.arrays1D {
		for j := range arr {
			arr[j] = s.uniform()
		}
		s.off1D[i] = 0
	}
	for i, arr := range s.arrays2D {
		for j := range arr {
			arr[j] = [2]float32{s.uniform(), s.uniform()}
		}
		s.off2D[i] = 0
	}
}

// StartNextSample advances to the next sample, returning false once spp
// samples have been produced.
func (s *RandomSampler) StartNextSample() bool {
	s.sampleIndex++
	for i := range s.off1D {
		s.off1D[i] = s.sampleIndex * s.n1D[i]
	}
	for i := range s.off2D {
		s.off2D[i] = s.sampleIndex * s.n2D[i]
	}
	return s.sampleIndex < s.spp
}

func (s *RandomSampler) uniform() float32 {
	return core.Min(float32(s.rng.Float64()), core.OneMinusEpsilon)
}

// Get1D returns a fresh uniform draw.
func (s *RandomSampler) Get1D() float32 { return s.uniform() }

// Get2D returns a fresh uniform 2D draw.
func (s *RandomSampler) Get2D() [2]float32 { return [2]float32{s.uniform(), s.uniform()} }

// GetCameraSample consumes two 2D draws: the film-plane position
// (pRaster jittered within the pixel) and the lens position.
func (s *RandomSampler) GetCameraSample(pRaster [2]float32) core.CameraSample {
	jitter := s.Get2D()
	return core.CameraSample{
		PFilm: [2]float32{pRaster[0] + jitter[0], pRaster[1] + jitter[1]},
		PLens: s.Get2D(),
	}
}

// Get1DArray returns the n-length array for the current sample.
func (s *RandomSampler) Get1DArray(n int) []float32 {
	for i, want := range s.n1D {
		if want == n {
			start := s.off1D[i]
			return s.arrays1D[i][start : start+n]
		}
	}
	return nil
}

// Get2DArray returns the n-length array for the current sample.
func (s *RandomSampler) Get2DArray(n int) [][2]float32 {
	for i, want := range s.n2D {
		if want == n {
			start := s.off2D[i]
			return s.arrays2D[i][start : start+n]
		}
	}
	return nil
}

// Clone returns an independent random sampler seeded from seed, sharing the
// same samples-per-pixel and array-request configuration.
func (s *RandomSampler) Clone(seed int64) core.Sampler {
	clone := NewRandomSampler(s.spp, seed)
	for _, n := range s.n1D {
		clone.Request1DArray(n)
	}
	for _, n := range s.n2D {
		clone.Request2DArray(n)
	}
	return clone
}
