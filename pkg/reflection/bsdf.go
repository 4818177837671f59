package reflection

import "github.com/df07/kdpath/pkg/core"

// BSDF composes a small set of BxDF lobes in the local shading frame built
// from a surface interaction's shading normal and its dpdu tangent, and
// implements core.BSDF so materials can hand it directly to the
// integrator.
type BSDF struct {
	ns     core.Normal3
	ss, ts core.Vec3
	bxdfs  []BxDF
}

// NewBSDF builds an empty BSDF at si's shading frame; materials Add lobes
// to it after evaluating their textures.
func NewBSDF(si core.SurfaceInteraction) *BSDF {
	ns := si.SN
	ss := si.DPDU.Normalize()
	ts := ns.ToVec().Cross(ss)
	return &BSDF{ns: ns, ss: ss, ts: ts}
}

// Add appends a lobe to the BSDF.
func (b *BSDF) Add(bx BxDF) { b.bxdfs = append(b.bxdfs, bx) }

// NumLobes returns how many lobes have been added.
func (b *BSDF) NumLobes() int { return len(b.bxdfs) }

func (b *BSDF) toLocal(v core.Vec3) core.Vec3 {
	return core.Vec3{X: v.Dot(b.ss), Y: v.Dot(b.ts), Z: v.Dot(b.ns.ToVec())}
}

func (b *BSDF) toWorld(v core.Vec3) core.Vec3 {
	return b.ss.Multiply(v.X).Add(b.ts.Multiply(v.Y)).Add(b.ns.ToVec().Multiply(v.Z))
}

// F sums every non-specular lobe's contribution for the pair (woW, wiW),
// given in world space.
func (b *BSDF) F(woW, wiW core.Vec3) core.Spectrum {
	wo, wi := b.toLocal(woW), b.toLocal(wiW)
	if wo.Z == 0 {
		return core.Spectrum{}
	}
	reflect := wiW.Dot(b.ns.ToVec())*woW.Dot(b.ns.ToVec()) > 0

	var sum core.Spectrum
	for _, bx := range b.bxdfs {
		f := bx.Flags()
		if f.IsSpecular() {
			continue
		}
		if (reflect && f.Has(Reflection)) || (!reflect && f.Has(Transmission)) {
			sum = sum.Add(bx.F(wo, wi))
		}
	}
	return sum
}

// PDF returns the average of every non-specular lobe's pdf at (woW, wiW).
func (b *BSDF) PDF(woW, wiW core.Vec3) float32 {
	if len(b.bxdfs) == 0 {
		return 0
	}
	wo, wi := b.toLocal(woW), b.toLocal(wiW)
	if wo.Z == 0 {
		return 0
	}
	var sum float32
	n := 0
	for _, bx := range b.bxdfs {
		if bx.Flags().IsSpecular() {
			continue
		}
		sum += bx.PDF(wo, wi)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}

// SampleF picks a lobe uniformly via uComponent, draws a direction from it,
// and returns the aggregate f/pdf accounting for every matching lobe
// (matching the multi-lobe MIS treatment of the light-transport spec).
func (b *BSDF) SampleF(woW core.Vec3, u [2]float32, uComponent float32) (wiW core.Vec3, f core.Spectrum, pdf float32, specular bool) {
	n := len(b.bxdfs)
	if n == 0 {
		return core.Vec3{}, core.Spectrum{}, 0, false
	}
	idx := int(uComponent * float32(n))
	if idx >= n {
		idx = n - 1
	}
	chosen := b.bxdfs[idx]

	wo := b.toLocal(woW)
	if wo.Z == 0 {
		return core.Vec3{}, core.Spectrum{}, 0, false
	}

	wi, fLocal, samplePdf, sampledFlags := chosen.SampleF(wo, u)
	if samplePdf == 0 {
		return core.Vec3{}, core.Spectrum{}, 0, false
	}
	wiW = b.toWorld(wi)

	if sampledFlags.IsSpecular() {
		return wiW, fLocal, samplePdf, true
	}

	pdf = samplePdf
	fSum := fLocal
	matches := 1
	for i, bx := range b.bxdfs {
		if i == idx || bx.Flags().IsSpecular() {
			continue
		}
		reflect := wi.Z*wo.Z > 0
		bf := bx.Flags()
		if (reflect && bf.Has(Reflection)) || (!reflect && bf.Has(Transmission)) {
			pdf += bx.PDF(wo, wi)
			fSum = fSum.Add(bx.F(wo, wi))
			matches++
		}
	}
	if matches > 1 {
		pdf /= float32(matches)
	}
	return wiW, fSum, pdf, false
}
