// Package material implements the concrete material set that compiles a
// BSDF at a surface interaction, and the texture contract they read
// parameters from.
package material

import "github.com/df07/kdpath/pkg/core"

// FloatTexture evaluates to a scalar at a surface interaction.
type FloatTexture interface {
	Evaluate(si core.SurfaceInteraction) float32
}

// SpectrumTexture evaluates to a Spectrum at a surface interaction.
type SpectrumTexture interface {
	Evaluate(si core.SurfaceInteraction) core.Spectrum
}

// ConstantFloatTexture always returns the same scalar.
type ConstantFloatTexture struct{ Value float32 }

func (t ConstantFloatTexture) Evaluate(core.SurfaceInteraction) float32 { return t.Value }

// ConstantSpectrumTexture always returns the same Spectrum.
type ConstantSpectrumTexture struct{ Value core.Spectrum }

func (t ConstantSpectrumTexture) Evaluate(core.SurfaceInteraction) core.Spectrum { return t.Value }

// UVMapping2D maps a surface interaction's UV to texture-space (s,t) via a
// linear scale+offset per axis.
type UVMapping2D struct {
	Su, Sv, Du, Dv float32
}

func (m UVMapping2D) Map(si core.SurfaceInteraction) (s, t float32) {
	return m.Su*si.UV[0] + m.Du, m.Sv*si.UV[1] + m.Dv
}

// CheckerboardTexture alternates between two textures on a 2D UV grid.
type CheckerboardTexture struct {
	Mapping UVMapping2D
	Tex1    SpectrumTexture
	Tex2    SpectrumTexture
}

func (c CheckerboardTexture) Evaluate(si core.SurfaceInteraction) core.Spectrum {
	s, t := c.Mapping.Map(si)
	if (int(floor(s))+int(floor(t)))%2 == 0 {
		return c.Tex1.Evaluate(si)
	}
	return c.Tex2.Evaluate(si)
}

// IdentityMapping3D maps a surface interaction's world point directly into
// texture space, used by Checkerboard3DTexture.
type IdentityMapping3D struct{}

func (IdentityMapping3D) Map(si core.SurfaceInteraction) core.Point3 { return si.P }

// Checkerboard3DTexture alternates between two textures on a 3D lattice,
// useful for floors/walls that should not show UV seams.
type Checkerboard3DTexture struct {
	Mapping IdentityMapping3D
	Tex1    SpectrumTexture
	Tex2    SpectrumTexture
}

func (c Checkerboard3DTexture) Evaluate(si core.SurfaceInteraction) core.Spectrum {
	p := c.Mapping.Map(si)
	if (int(floor(p.X))+int(floor(p.Y))+int(floor(p.Z)))%2 == 0 {
		return c.Tex1.Evaluate(si)
	}
	return c.Tex2.Evaluate(si)
}

func floor(x float32) float32 {
	i := float32(int(x))
	if x < 0 && i != x {
		i--
	}
	return i
}
