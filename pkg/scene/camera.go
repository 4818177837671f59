package scene

import (
	"math"

	"github.com/df07/kdpath/pkg/core"
)

// PerspectiveCamera turns a film-plane sample into a world-space ray from a
// look-at frame and vertical field of view. It is deliberately thin: no
// lens/depth-of-field beyond passing the sampler's lens sample through
// (LensRadius 0 collapses it to a pinhole camera).
type PerspectiveCamera struct {
	origin               core.Point3
	lowerLeft            core.Point3
	horizontal, vertical core.Vec3
	u, v                 core.Vec3
	lensRadius           float32
	width, height        int
}

// NewPerspectiveCamera builds a camera looking from eye toward look, with
// up as the approximate up direction, vertical field of view fovY in
// degrees, an image resolution of width x height pixels, and an optional
// lens radius for a thin-lens depth-of-field approximation (0 for a
// pinhole camera).
func NewPerspectiveCamera(eye, look core.Point3, up core.Vec3, fovYDegrees float32, width, height int, lensRadius, focusDist float32) *PerspectiveCamera {
	aspect := float32(width) / float32(height)
	theta := float64(fovYDegrees) * math.Pi / 180
	halfHeight := float32(math.Tan(theta / 2))
	halfWidth := aspect * halfHeight

	w := eye.Subtract(look).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := eye
	horizontal := u.Multiply(2 * halfWidth * focusDist)
	vertical := v.Multiply(2 * halfHeight * focusDist)
	lowerLeft := origin.
		SubtractVec(horizontal.Multiply(0.5)).
		SubtractVec(vertical.Multiply(0.5)).
		SubtractVec(w.Multiply(focusDist))

	return &PerspectiveCamera{
		origin:     origin,
		lowerLeft:  lowerLeft,
		horizontal: horizontal,
		vertical:   vertical,
		u:          u,
		v:          v,
		lensRadius: lensRadius,
		width:      width,
		height:     height,
	}
}

// GenerateRay implements core.Camera: s.PFilm is in raster pixel
// coordinates (as produced by Sampler.GetCameraSample), normalized here to
// the [0,1]x[0,1] film-plane range the look-at frame was built in.
func (c *PerspectiveCamera) GenerateRay(s core.CameraSample) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		lu, lv := sampleLensOffset(s.PLens, c.lensRadius)
		origin = origin.Add(c.u.Multiply(lu)).Add(c.v.Multiply(lv))
	}

	su := s.PFilm[0] / float32(c.width)
	sv := 1 - s.PFilm[1]/float32(c.height)

	target := c.lowerLeft.
		Add(c.horizontal.Multiply(su)).
		Add(c.vertical.Multiply(sv))
	dir := target.Subtract(origin).Normalize()
	return core.NewRay(origin, dir)
}

// SampleBBox returns the image-space region (in pixels) the render loop
// samples over.
func (c *PerspectiveCamera) SampleBBox() (x0, y0, x1, y1 float32) {
	return 0, 0, float32(c.width), float32(c.height)
}

func sampleLensOffset(u [2]float32, radius float32) (float32, float32) {
	r := radius * sqrtF(u[0])
	theta := float32(2*math.Pi) * u[1]
	return r * cosF(theta), r * sinF(theta)
}

func sqrtF(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func cosF(x float32) float32  { return float32(math.Cos(float64(x))) }
func sinF(x float32) float32  { return float32(math.Sin(float64(x))) }
