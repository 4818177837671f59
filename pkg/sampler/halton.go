package sampler

import "github.com/df07/kdpath/pkg/core"

const (
	tileResolution = 128
	arrayStartDim  = 4
)

// HaltonSampler is a global sampler: every sample index addresses a single
// infinite Halton sequence in bases 2, 3, 5, 7, ... . Per-pixel
// stratification comes from choosing, for the current pixel, the first
// global sample index whose base-2/base-3 radical inverse lands exactly on
// that pixel modulo a TILE x TILE block.
type HaltonSampler struct {
	spp int

	baseExpX, baseExpY     int
	baseScaleX, baseScaleY uint64
	sampleStride           uint64
	multInverseX           uint64
	multInverseY           uint64

	currentPixel          [2]int
	pixelForOffset        [2]int
	haveOffset            bool
	offsetForCurrentPixel uint64

	currentSampleIndex int
	intervalIndex      uint64
	dimension          int
	arrayEndDim        int

	n1D      []int
	n2D      []int
	arr1D    [][]float32
	arr2D    [][][2]float32
	arrOff1D []int
	arrOff2D []int
}

// NewHaltonSampler creates a Halton sampler producing spp samples per
// pixel. This completes the constructor left unfinished in the reference
// this package is grounded on: it searches for the smallest base-2/base-3
// exponents covering a TILE x TILE pixel block and derives the
// multiplicative inverses needed for the per-pixel offset.
func NewHaltonSampler(spp int) *HaltonSampler {
	s := &HaltonSampler{spp: spp}

	x := uint64(1)
	for x < tileResolution {
		x *= 2
		s.baseExpX++
	}
	y := uint64(1)
	for y < tileResolution {
		y *= 3
		s.baseExpY++
	}
	s.baseScaleX, s.baseScaleY = x, y
	s.sampleStride = x * y

	ax := int64(s.sampleStride / x % x)
	s.multInverseX = MultiplicativeInverse(ax, int64(x))
	ay := int64(s.sampleStride / y % y)
	s.multInverseY = MultiplicativeInverse(ay, int64(y))

	return s
}

// Request1DArray reserves an n-length 1D array per sample.
func (s *HaltonSampler) Request1DArray(n int) {
	s.n1D = append(s.n1D, n)
	s.arr1D = append(s.arr1D, make([]float32, n*s.spp))
	s.arrOff1D = append(s.arrOff1D, 0)
}

// Request2DArray reserves an n-length 2D array per sample.
func (s *HaltonSampler) Request2DArray(n int) {
	s.n2D = append(s.n2D, n)
	s.arr2D = append(s.arr2D, make([][2]float32, n*s.spp))
	s.arrOff2D = append(s.arrOff2D, 0)
}

// StartPixel initializes state for all samples of pixel p, pre-generating
// every requested 1D/2D array from the reserved dimension range.
func (s *HaltonSampler) StartPixel(p [2]int) {
	s.currentPixel = p
	s.currentSampleIndex = -1
	s.haveOffset = false

	dimBase := arrayStartDim
	for ai, n := range s.n1D {
		for j := 0; j < s.spp; j++ {
			idx := s.indexForSample(j)
			for k := 0; k < n; k++ {
				s.arr1D[ai][j*n+k] = s.sampleDimension(idx, dimBase+k)
			}
		}
		dimBase += n
	}

	// 2D arrays occupy pairs of dimensions immediately after the 1D arrays.
	for ai, n := range s.n2D {
		for j := 0; j < s.spp; j++ {
			idx := s.indexForSample(j)
			for k := 0; k < n; k++ {
				d := dimBase + 2*k
				s.arr2D[ai][j*n+k] = [2]float32{
					s.sampleDimension(idx, d),
					s.sampleDimension(idx, d+1),
				}
			}
		}
		dimBase += 2 * n
	}

	s.arrayEndDim = dimBase
	s.dimension = 0
	s.intervalIndex = s.indexForSample(0)
	for i := range s.arrOff1D {
		s.arrOff1D[i] = 0
	}
	for i := range s.arrOff2D {
		s.arrOff2D[i] = 0
	}
}

// StartNextSample advances to the next sample, returning false once spp
// samples have been produced.
func (s *HaltonSampler) StartNextSample() bool {
	s.currentSampleIndex++
	s.dimension = 0
	for i, n := range s.n1D {
		s.arrOff1D[i] = s.currentSampleIndex * n
	}
	for i, n := range s.n2D {
		s.arrOff2D[i] = s.currentSampleIndex * n
	}
	if s.currentSampleIndex < s.spp {
		s.intervalIndex = s.indexForSample(s.currentSampleIndex)
		return true
	}
	return false
}

// indexForSample computes the global Halton sequence index for the
// sampleNum-th sample of the current pixel.
func (s *HaltonSampler) indexForSample(sampleNum int) uint64 {
	if !s.haveOffset || s.pixelForOffset != s.currentPixel {
		s.recomputeOffset()
	}
	return s.offsetForCurrentPixel + uint64(sampleNum)*s.sampleStride
}

func (s *HaltonSampler) recomputeOffset() {
	if s.sampleStride > 1 {
		pm := [2]uint64{
			uint64(mod(s.currentPixel[0], tileResolution)),
			uint64(mod(s.currentPixel[1], tileResolution)),
		}
		dimOffset0 := InverseRadicalInverse(2, pm[0], s.baseExpX) * (s.sampleStride / s.baseScaleX) % s.sampleStride * s.multInverseX % s.sampleStride
		dimOffset1 := InverseRadicalInverse(3, pm[1], s.baseExpY) * (s.sampleStride / s.baseScaleY) % s.sampleStride * s.multInverseY % s.sampleStride
		s.offsetForCurrentPixel = (dimOffset0 + dimOffset1) % s.sampleStride
	} else {
		s.offsetForCurrentPixel = 0
	}
	s.pixelForOffset = s.currentPixel
	s.haveOffset = true
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// sampleDimension returns the d-th Halton dimension of the index-th sample:
// dimension 0 uses the base-2 radical inverse shifted by baseExpX bits,
// dimension 1 the base-3 radical inverse divided by baseScaleY, and
// dimensions >= 2 address the d-th prime directly.
func (s *HaltonSampler) sampleDimension(index uint64, d int) float32 {
	switch d {
	case 0:
		return radicalInverse(2, index>>uint(s.baseExpX))
	case 1:
		return radicalInverse(3, index/s.baseScaleY)
	default:
		return RadicalInverse(d, index)
	}
}

func (s *HaltonSampler) nextDimension() int {
	d := s.dimension
	if d >= arrayStartDim && d < s.arrayEndDim {
		d = s.arrayEndDim
	}
	return d
}

// Get1D returns the next scalar dimension of the current sample, skipping
// over the reserved array-request dimension range.
func (s *HaltonSampler) Get1D() float32 {
	d := s.nextDimension()
	s.dimension = d + 1
	if d >= 2 && d >= len(primes) {
		// Wrap past the static prime table; only reachable for very deep
		// path lengths.
		d = 2 + (d-2)%(len(primes)-2)
	}
	return s.sampleDimension(s.intervalIndex, d)
}

// Get2D returns the next two scalar dimensions of the current sample.
func (s *HaltonSampler) Get2D() [2]float32 {
	d := s.nextDimension()
	s.dimension = d + 2
	d0, d1 := d, d+1
	if d1 >= 2 && d1 >= len(primes) {
		d0 = 2 + (d0-2)%(len(primes)-2)
		d1 = 2 + (d1-2)%(len(primes)-2)
	}
	return [2]float32{s.sampleDimension(s.intervalIndex, d0), s.sampleDimension(s.intervalIndex, d1)}
}

// GetCameraSample consumes two 2D draws: the film-plane position and the
// lens position.
func (s *HaltonSampler) GetCameraSample(pRaster [2]float32) core.CameraSample {
	jitter := s.Get2D()
	return core.CameraSample{
		PFilm: [2]float32{pRaster[0] + jitter[0], pRaster[1] + jitter[1]},
		PLens: s.Get2D(),
	}
}

// Get1DArray returns the n-length array for the current sample.
func (s *HaltonSampler) Get1DArray(n int) []float32 {
	for i, want := range s.n1D {
		if want == n {
			start := s.arrOff1D[i]
			return s.arr1D[i][start : start+n]
		}
	}
	return nil
}

// Get2DArray returns the n-length array for the current sample.
func (s *HaltonSampler) Get2DArray(n int) [][2]float32 {
	for i, want := range s.n2D {
		if want == n {
			start := s.arrOff2D[i]
			return s.arr2D[i][start : start+n]
		}
	}
	return nil
}

// Clone returns an independent Halton sampler. The Halton sequence is a
// pure function of pixel coordinates and sample index, so unlike
// RandomSampler the seed does not affect the sequence — it exists only to
// satisfy the common Sampler.Clone contract for per-worker instantiation.
func (s *HaltonSampler) Clone(seed int64) core.Sampler {
	clone := NewHaltonSampler(s.spp)
	for _, n := range s.n1D {
		clone.Request1DArray(n)
	}
	for _, n := range s.n2D {
		clone.Request2DArray(n)
	}
	return clone
}
