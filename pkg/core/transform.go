package core

import (
	"fmt"
	"math"
)

// Transform is an affine transform and its inverse, kept together so that
// inverse-transpose operations (for normals) and the O(1) Inverse() method
// are both cheap.
type Transform struct {
	m, mInv Matrix4
}

// NewTransform builds a Transform from a matrix, computing its inverse. It
// returns an error for a singular (non-invertible) matrix, which is a
// construction-time programming error.
func NewTransform(m Matrix4) (Transform, error) {
	inv, err := m.Inverse()
	if err != nil {
		return Transform{}, fmt.Errorf("core: cannot build transform: %w", err)
	}
	return Transform{m: m, mInv: inv}, nil
}

// Identity returns the identity transform.
func Identity() Transform { return Transform{m: Identity4(), mInv: Identity4()} }

// Translate returns a translation transform.
func Translate(v Vec3) Transform {
	m := Identity4()
	m.M[0][3], m.M[1][3], m.M[2][3] = v.X, v.Y, v.Z
	inv := Identity4()
	inv.M[0][3], inv.M[1][3], inv.M[2][3] = -v.X, -v.Y, -v.Z
	return Transform{m: m, mInv: inv}
}

// Scale returns a scaling transform.
func Scale(v Vec3) Transform {
	m := Identity4()
	m.M[0][0], m.M[1][1], m.M[2][2] = v.X, v.Y, v.Z
	inv := Identity4()
	inv.M[0][0], inv.M[1][1], inv.M[2][2] = 1/v.X, 1/v.Y, 1/v.Z
	return Transform{m: m, mInv: inv}
}

// RotateX returns a rotation transform of theta radians about the X axis.
func RotateX(theta float32) Transform {
	s, c := math.Sincos(float64(theta))
	sin, cos := float32(s), float32(c)
	m := NewMatrix4(
		1, 0, 0, 0,
		0, cos, -sin, 0,
		0, sin, cos, 0,
		0, 0, 0, 1,
	)
	return Transform{m: m, mInv: m.Transpose()}
}

// RotateY returns a rotation transform of theta radians about the Y axis.
func RotateY(theta float32) Transform {
	s, c := math.Sincos(float64(theta))
	sin, cos := float32(s), float32(c)
	m := NewMatrix4(
		cos, 0, sin, 0,
		0, 1, 0, 0,
		-sin, 0, cos, 0,
		0, 0, 0, 1,
	)
	return Transform{m: m, mInv: m.Transpose()}
}

// RotateZ returns a rotation transform of theta radians about the Z axis.
func RotateZ(theta float32) Transform {
	s, c := math.Sincos(float64(theta))
	sin, cos := float32(s), float32(c)
	m := NewMatrix4(
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
	return Transform{m: m, mInv: m.Transpose()}
}

// LookAt builds a camera-to-world transform from an eye position, a look-at
// point and an up vector.
func LookAt(eye, look Point3, up Vec3) Transform {
	dir := look.Subtract(eye).Normalize()
	left := up.Normalize().Cross(dir).Normalize()
	newUp := dir.Cross(left)

	m := NewMatrix4(
		left.X, newUp.X, dir.X, eye.X,
		left.Y, newUp.Y, dir.Y, eye.Y,
		left.Z, newUp.Z, dir.Z, eye.Z,
		0, 0, 0, 1,
	)
	inv, err := m.Inverse()
	if err != nil {
		// Degenerate basis (look == eye, or up parallel to dir): fall back
		// to identity rather than propagating a construction-time panic
		// into a pure function.
		return Identity()
	}
	return Transform{m: m, mInv: inv}
}

// Inverse returns the inverse transform in O(1) by swapping the cached
// matrix and its inverse.
func (t Transform) Inverse() Transform { return Transform{m: t.mInv, mInv: t.m} }

// Matrix returns the forward matrix.
func (t Transform) Matrix() Matrix4 { return t.m }

// Compose returns the transform equivalent to applying t first, then o.
func (t Transform) Compose(o Transform) Transform {
	return Transform{m: o.m.Mul(t.m), mInv: t.mInv.Mul(o.mInv)}
}

// Point applies the transform affinely to a point.
func (t Transform) Point(p Point3) Point3 {
	m := t.m.M
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w == 1 {
		return Point3{x, y, z}
	}
	return Point3{x / w, y / w, z / w}
}

// Vector applies the transform linearly to a vector (no translation).
func (t Transform) Vector(v Vec3) Vec3 {
	m := t.m.M
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Normal applies the transform to a normal using the inverse-transpose of
// the linear part, which is required to keep normals perpendicular to
// transformed surfaces under non-uniform scaling.
func (t Transform) Normal(n Normal3) Normal3 {
	m := t.mInv.M // already the inverse; use its transpose directly
	return Normal3{
		m[0][0]*n.X + m[1][0]*n.Y + m[2][0]*n.Z,
		m[0][1]*n.X + m[1][1]*n.Y + m[2][1]*n.Z,
		m[0][2]*n.X + m[1][2]*n.Y + m[2][2]*n.Z,
	}
}

// Ray applies the transform to a ray's origin and direction, preserving TMax.
func (t Transform) Ray(r Ray) Ray {
	return Ray{Origin: t.Point(r.Origin), Direction: t.Vector(r.Direction), TMax: r.TMax}
}

// BBox applies the transform to a bounding box by transforming all eight
// corners and re-bounding them (valid for any affine transform, including
// rotations, where the axis-aligned box would otherwise be violated).
func (t Transform) BBox(b BBox3) BBox3 {
	corners := [8]Point3{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Min.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
	out := NewBBox3(t.Point(corners[0]))
	for _, c := range corners[1:] {
		out = out.ExpandToInclude(t.Point(c))
	}
	return out
}
