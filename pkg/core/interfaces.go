package core

// Logger is a minimal logging contract, satisfied directly by *log.Logger.
// No package in this module currently calls it.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Shape is the capability set every hittable primitive implements: bounding
// box, surface area, intersection (both a boolean any-hit query and a full
// surface interaction query), and surface sampling for use as a light.
type Shape interface {
	BBox() BBox3
	Area() float32
	IntersectP(r Ray) bool
	Intersect(r Ray) (SurfaceInteraction, float32, bool)
	Material() Material

	// Sample draws a point on the shape's surface with respect to its own
	// area measure.
	Sample(u [2]float32) SurfaceInteraction
	// SampleFrom draws a point on the shape's surface with respect to a
	// reference point ref, defaulting to Sample when a shape has no
	// solid-angle sampling strategy of its own.
	SampleFrom(ref SurfaceInteraction, u [2]float32) SurfaceInteraction
	// PDF returns the solid-angle density of SampleFrom having produced a
	// direction wi from ref.
	PDF(ref SurfaceInteraction, wi Vec3) float32

	// IsLight reports whether this shape also acts as an area light.
	IsLight() bool
	// EmittedRadiance returns the radiance emitted from si towards w; zero
	// for non-emitting shapes or when w is on the back side.
	EmittedRadiance(si SurfaceInteraction, w Vec3) Spectrum
}

// Material compiles a BSDF at a surface interaction. Defined as an opaque
// capability here; concrete lobes live in package reflection and concrete
// materials in package material, both of which depend on core rather than
// the reverse.
type Material interface {
	ComputeScattering(si SurfaceInteraction) BSDF
}

// BSDF is the bidirectional scattering distribution function compiled by a
// Material at a surface point: a small weighted sum of elemental lobes
// evaluated in the shading-local frame (SN, DPDU, DPDV). Concrete
// implementation lives in package reflection; Material implementations
// depend only on this interface to stay independent of it.
type BSDF interface {
	F(wo, wi Vec3) Spectrum
	SampleF(wo Vec3, u [2]float32, uComponent float32) (wi Vec3, f Spectrum, pdf float32, specular bool)
	PDF(wo, wi Vec3) float32
}

// VisibilityTester tests whether two points can see each other through the
// scene, used by Light.SampleLi.
type VisibilityTester struct {
	P0, P1 SurfaceInteraction
}

// Container answers ray/scene intersection queries; it is implemented by
// both the production k-d tree and a brute-force reference container used
// for testing.
type Container interface {
	BBox() BBox3
	IntersectP(r Ray) bool
	Intersect(r Ray) (SurfaceInteraction, bool)
}

// Unoccluded reports whether the segment between P0 and P1 is unobstructed.
func (vt VisibilityTester) Unoccluded(scene Container) bool {
	ray := vt.P0.SpawnRayTo(vt.P1.P)
	return !scene.IntersectP(ray)
}

// Light is a source of illumination sampled at a reference point.
type Light interface {
	// PreProcess is called once after the scene's k-d tree is built, giving
	// infinite lights a chance to capture scene-dependent state (e.g. a
	// DistantLight's bounding-sphere radius). It is a no-op for lights that
	// don't need it.
	PreProcess(sceneBounds BBox3)
	// SampleLi samples an incident direction and radiance at ref, returning
	// the direction wi, incident radiance L, solid-angle pdf, and a
	// visibility tester for the sampled segment.
	SampleLi(ref SurfaceInteraction, u [2]float32) (wi Vec3, l Spectrum, pdf float32, vis VisibilityTester)
	// IsDelta reports whether this light has a delta distribution (point or
	// distant lights), meaning MIS against BSDF sampling does not apply.
	IsDelta() bool
}

// CameraSample is two 2D draws consumed per camera ray: the film-plane
// position and the lens position (for depth of field).
type CameraSample struct {
	PFilm, PLens [2]float32
}

// Camera is the out-of-scope external collaborator that turns a camera
// sample into a world-space ray; only this consumed interface is specified.
type Camera interface {
	GenerateRay(sample CameraSample) Ray
}

// Sampler produces per-pixel sample sequences in up to D dimensions, with
// pre-reserved arrays for integrators that need several independent draws
// per sample (e.g. one 2D draw per light per bounce).
type Sampler interface {
	StartPixel(p [2]int)
	StartNextSample() bool
	Get1D() float32
	Get2D() [2]float32
	GetCameraSample(pRaster [2]float32) CameraSample
	Request1DArray(n int)
	Request2DArray(n int)
	Get1DArray(n int) []float32
	Get2DArray(n int) [][2]float32
	// Clone returns an independent copy seeded for a different stream
	// (e.g. one per worker/tile), sharing the same samples-per-pixel and
	// array-request configuration.
	Clone(seed int64) Sampler
}
