package core

import "math"

// Ray is a half-open line segment (origin, direction, [0, TMax)). TMax is
// mutated downward as closer intersections are found during traversal.
type Ray struct {
	Origin    Point3
	Direction Vec3
	TMax      float32
}

// Infinity is the float32 positive-infinity sentinel used for unbounded rays.
var Infinity = float32(math.Inf(1))

// NewRay creates a ray with TMax set to +Inf.
func NewRay(origin Point3, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: Infinity}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) Point3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
