// Package sampler implements the two sample sequences driven by the
// integrator: a plain uniform random sampler and a globally stratified
// Halton quasi-random sampler, plus the hemisphere/disk sampling helpers
// BSDF lobes use to turn 2D samples into directions.
package sampler

import "github.com/df07/kdpath/pkg/core"

// radicalInverse computes the base-b radical inverse of a, the standard
// digit-reversal construction Phi_b(a) = sum_j d_j b^(-j-1).
func radicalInverse(base, a uint64) float32 {
	invBase := float32(1) / float32(base)
	reversed := uint64(0)
	invBaseN := float32(1)
	for a > 0 {
		next := a / base
		digit := a - next*base
		reversed = reversed*base + digit
		invBaseN *= invBase
		a = next
	}
	return core.Min(float32(reversed)*invBaseN, core.OneMinusEpsilon)
}

// RadicalInverse computes the radical inverse of a in the baseIndex-th
// prime base (baseIndex 0 -> base 2, 1 -> base 3, ...).
func RadicalInverse(baseIndex int, a uint64) float32 {
	return radicalInverse(uint64(Prime(baseIndex)), a)
}

// InverseRadicalInverse reverses the digit-extraction direction of
// radicalInverse: given the low nDigits digits of a base-b radical inverse,
// it reconstructs the integer whose radical inverse they came from. Used to
// compute the per-pixel Halton offset.
func InverseRadicalInverse(base uint64, inverse uint64, nDigits int) uint64 {
	var index uint64
	for i := 0; i < nDigits; i++ {
		digit := inverse % base
		inverse /= base
		index = index*base + digit
	}
	return index
}

// ExtendedGCD returns (x, y) such that a*x + b*y = gcd(a, b), via the
// standard recursive extended Euclidean algorithm.
func ExtendedGCD(a, b int64) (x, y int64) {
	if b == 0 {
		return 1, 0
	}
	x1, y1 := ExtendedGCD(b, a%b)
	return y1, x1 - (a/b)*y1
}

// MultiplicativeInverse returns the multiplicative inverse of a modulo n.
func MultiplicativeInverse(a, n int64) uint64 {
	x, _ := ExtendedGCD(a, n)
	m := x % n
	if m < 0 {
		m += n
	}
	return uint64(m)
}

// ConcentricSampleDisk maps a uniform 2D sample in [0,1)^2 to a uniform
// point on the unit disk via the Shirley-Chiu concentric mapping.
func ConcentricSampleDisk(u [2]float32) [2]float32 {
	ox := 2*u[0] - 1
	oy := 2*u[1] - 1
	if ox == 0 && oy == 0 {
		return [2]float32{0, 0}
	}

	var r, theta float32
	if core.Abs(ox) > core.Abs(oy) {
		r = ox
		theta = piOver4 * (oy / ox)
	} else {
		r = oy
		theta = piOver2 - piOver4*(ox/oy)
	}
	return [2]float32{r * cosF(theta), r * sinF(theta)}
}

// CosineSampleHemisphere draws a direction from the cosine-weighted
// hemisphere distribution above z=0, with pdf = cos(theta)/pi.
func CosineSampleHemisphere(u [2]float32) core.Vec3 {
	d := ConcentricSampleDisk(u)
	z := sqrtF(core.Max(0, 1-d[0]*d[0]-d[1]*d[1]))
	return core.Vec3{X: d[0], Y: d[1], Z: z}
}

const (
	piOver4 = 0.7853981633974483
	piOver2 = 1.5707963267948966
)
