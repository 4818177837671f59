package core

import "math"

// Spectrum is a three-channel RGB triple, used for both radiance and
// reflectance throughout this renderer (no spectral rendering beyond RGB).
type Spectrum struct {
	R, G, B float32
}

// NewSpectrum creates a Spectrum from RGB components.
func NewSpectrum(r, g, b float32) Spectrum { return Spectrum{r, g, b} }

// Gray creates a Spectrum with equal RGB components.
func Gray(v float32) Spectrum { return Spectrum{v, v, v} }

// Add returns the sum of two spectra.
func (s Spectrum) Add(o Spectrum) Spectrum { return Spectrum{s.R + o.R, s.G + o.G, s.B + o.B} }

// Subtract returns the difference of two spectra.
func (s Spectrum) Subtract(o Spectrum) Spectrum { return Spectrum{s.R - o.R, s.G - o.G, s.B - o.B} }

// Multiply returns the spectrum scaled by a scalar.
func (s Spectrum) Multiply(t float32) Spectrum { return Spectrum{s.R * t, s.G * t, s.B * t} }

// MultiplySpectrum returns the component-wise product of two spectra.
func (s Spectrum) MultiplySpectrum(o Spectrum) Spectrum {
	return Spectrum{s.R * o.R, s.G * o.G, s.B * o.B}
}

// Divide returns the spectrum divided by a scalar.
func (s Spectrum) Divide(t float32) Spectrum { return Spectrum{s.R / t, s.G / t, s.B / t} }

// IsBlack reports whether every channel is exactly zero.
func (s Spectrum) IsBlack() bool { return s.R == 0 && s.G == 0 && s.B == 0 }

// MaxComponent returns the largest channel value, used by the Russian
// roulette termination probability.
func (s Spectrum) MaxComponent() float32 {
	m := s.R
	if s.G > m {
		m = s.G
	}
	if s.B > m {
		m = s.B
	}
	return m
}

// Clamp restricts every channel to [low, high].
func (s Spectrum) Clamp(low, high float32) Spectrum {
	return Spectrum{Clamp(s.R, low, high), Clamp(s.G, low, high), Clamp(s.B, low, high)}
}

// ClampLow restricts every channel to be at least low.
func (s Spectrum) ClampLow(low float32) Spectrum {
	return Spectrum{Max(s.R, low), Max(s.G, low), Max(s.B, low)}
}

// Luminance returns the Rec. 709 perceptual luminance of the spectrum.
func (s Spectrum) Luminance() float32 { return 0.2126*s.R + 0.7152*s.G + 0.0722*s.B }

// GammaEncode raises every channel to the power 1/gamma.
func (s Spectrum) GammaEncode(gamma float32) Spectrum {
	inv := float64(1 / gamma)
	return Spectrum{
		float32(math.Pow(float64(s.R), inv)),
		float32(math.Pow(float64(s.G), inv)),
		float32(math.Pow(float64(s.B), inv)),
	}
}
