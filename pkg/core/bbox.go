package core

// BBox3 is an axis-aligned bounding box with the invariant Min <= Max
// componentwise, maintained by every constructor and mutator below.
type BBox3 struct {
	Min, Max Point3
}

// NewBBox3 creates a degenerate box at a single point.
func NewBBox3(p Point3) BBox3 { return BBox3{Min: p, Max: p} }

// NewBBox3FromPoints creates a box bounding the given points.
func NewBBox3FromPoints(points ...Point3) BBox3 {
	if len(points) == 0 {
		return BBox3{}
	}
	b := NewBBox3(points[0])
	for _, p := range points[1:] {
		b = b.ExpandToInclude(p)
	}
	return b
}

// ExpandToInclude returns a box that also bounds p.
func (b BBox3) ExpandToInclude(p Point3) BBox3 {
	return BBox3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box bounding both b and o.
func (b BBox3) Union(o BBox3) BBox3 {
	return BBox3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Overlaps reports whether b and o share any volume, using the standard
// componentwise a.max >= b.min test in both directions.
func (b BBox3) Overlaps(o BBox3) bool {
	x := b.Max.X >= o.Min.X && o.Max.X >= b.Min.X
	y := b.Max.Y >= o.Min.Y && o.Max.Y >= b.Min.Y
	z := b.Max.Z >= o.Min.Z && o.Max.Z >= b.Min.Z
	return x && y && z
}

// Diagonal returns the vector from Min to Max.
func (b BBox3) Diagonal() Vec3 { return b.Max.Subtract(b.Min) }

// Center returns the midpoint of the box.
func (b BBox3) Center() Point3 { return b.Min.Lerp(b.Max, 0.5) }

// SurfaceArea returns the total surface area of the box.
func (b BBox3) SurfaceArea() float32 {
	d := b.Diagonal()
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// MaximumExtent returns the axis along which the box is longest.
func (b BBox3) MaximumExtent() Axis {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return AxisX
	}
	if d.Y > d.Z {
		return AxisY
	}
	return AxisZ
}

// BoundingSphere returns the center and radius of a sphere that bounds the
// box (the sphere through Min and Max centered at the box's center).
func (b BBox3) BoundingSphere() (center Point3, radius float32) {
	center = b.Center()
	if b.Min == b.Max {
		return center, 0
	}
	radius = center.Distance(b.Max)
	return center, radius
}

// Expand grows the box by amount in every direction.
func (b BBox3) Expand(amount float32) BBox3 {
	d := Vec3{amount, amount, amount}
	return BBox3{Min: b.Min.SubtractVec(d), Max: b.Max.Add(d)}
}

// IntersectP clips a ray against the box, returning the entry/exit
// parameters (tEnter <= tExit) along the ray, or ok=false on a miss.
func (b BBox3) IntersectP(r Ray) (tEnter, tExit float32, ok bool) {
	tEnter, tExit = 0, r.TMax
	axes := [3]Axis{AxisX, AxisY, AxisZ}
	for _, axis := range axes {
		origin := r.Origin.Get(axis)
		dir := r.Direction.Get(axis)
		min := b.Min.Get(axis)
		max := b.Max.Get(axis)

		if dir == 0 {
			if origin < min || origin > max {
				return 0, 0, false
			}
			continue
		}

		invDir := 1 / dir
		t0 := (min - origin) * invDir
		t1 := (max - origin) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
		}
		if t1 < tExit {
			tExit = t1
		}
		if tEnter > tExit {
			return 0, 0, false
		}
	}
	return tEnter, tExit, true
}
