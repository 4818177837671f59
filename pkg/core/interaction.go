package core

// SurfaceInteraction is the result of a successful ray/shape intersection.
// Invariants: N and SN are unit vectors; N.Dot(SN.ToVec()) >= 0 (the
// shading normal is flipped into the geometric hemisphere if necessary);
// PErr is nonnegative componentwise.
type SurfaceInteraction struct {
	P     Point3
	PErr  Vec3
	N     Normal3
	SN    Normal3
	DPDU  Vec3
	DPDV  Vec3
	UV    [2]float32
	Wo    Vec3
	Shape Shape
}

// OffsetRayOrigin nudges P along the geometric normal (oriented towards w)
// by an error-bounded amount, then rounds each component one ULP further
// outward, eliminating self-intersection without introducing shadow bias.
func (si *SurfaceInteraction) OffsetRayOrigin(w Vec3) Point3 {
	d := si.N.ToVec().Abs().Dot(si.PErr)
	offset := si.N.Multiply(d).ToVec()
	if si.N.Dot(w) < 0 {
		offset = offset.Negate()
	}
	p := si.P.Add(offset)

	if offset.X > 0 {
		p.X = NextFloatUp(p.X)
	} else if offset.X < 0 {
		p.X = NextFloatDown(p.X)
	}
	if offset.Y > 0 {
		p.Y = NextFloatUp(p.Y)
	} else if offset.Y < 0 {
		p.Y = NextFloatDown(p.Y)
	}
	if offset.Z > 0 {
		p.Z = NextFloatUp(p.Z)
	} else if offset.Z < 0 {
		p.Z = NextFloatDown(p.Z)
	}
	return p
}

// SpawnRay returns a ray leaving the surface in direction d, origin offset
// to avoid self-intersection.
func (si *SurfaceInteraction) SpawnRay(d Vec3) Ray {
	return NewRay(si.OffsetRayOrigin(d), d)
}

// SpawnRayTo returns a ray from this interaction toward another, with TMax
// shortened slightly below 1 so the far endpoint's own offset is never
// re-crossed.
func (si *SurfaceInteraction) SpawnRayTo(to Point3) Ray {
	d := to.Subtract(si.P)
	origin := si.OffsetRayOrigin(d)
	r := NewRay(origin, d)
	r.TMax = 1 - 1e-4
	return r
}

// Le returns the emitted radiance towards w, zero unless Shape is an
// emitter.
func (si *SurfaceInteraction) Le(w Vec3) Spectrum {
	if si.Shape == nil || !si.Shape.IsLight() {
		return Spectrum{}
	}
	return si.Shape.EmittedRadiance(*si, w)
}
