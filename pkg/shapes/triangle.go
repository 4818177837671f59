package shapes

import (
	"math"

	"github.com/df07/kdpath/pkg/core"
)

// Triangle is a single triangle, optionally carrying per-vertex shading
// normals, with a flag to reverse its orientation.
type Triangle struct {
	P                  [3]core.Point3
	N                  [3]core.Normal3 // zero-value Normal3{} in all three means "no shading normals"
	HasVertexNormals   bool
	ReverseOrientation bool
	Mat                core.Material
}

// NewTriangle creates a flat-shaded triangle.
func NewTriangle(p0, p1, p2 core.Point3, mat core.Material) *Triangle {
	return &Triangle{P: [3]core.Point3{p0, p1, p2}, Mat: mat}
}

// NewTriangleSmooth creates a triangle with per-vertex shading normals.
func NewTriangleSmooth(p0, p1, p2 core.Point3, n0, n1, n2 core.Normal3, mat core.Material) *Triangle {
	return &Triangle{
		P: [3]core.Point3{p0, p1, p2}, N: [3]core.Normal3{n0, n1, n2},
		HasVertexNormals: true, Mat: mat,
	}
}

// NewTriangleMesh builds the list of triangles for an indexed mesh.
func NewTriangleMesh(vertices []core.Point3, indices []int, normals []core.Normal3, mat core.Material) []*Triangle {
	tris := make([]*Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if normals != nil {
			tris = append(tris, NewTriangleSmooth(
				vertices[i0], vertices[i1], vertices[i2],
				normals[i0], normals[i1], normals[i2], mat))
		} else {
			tris = append(tris, NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat))
		}
	}
	return tris
}

func (tr *Triangle) geometricNormal() core.Normal3 {
	e1 := tr.P[1].Subtract(tr.P[0])
	e2 := tr.P[2].Subtract(tr.P[0])
	n := e1.Cross(e2).Normalize().ToNormal()
	if tr.ReverseOrientation {
		n = n.Negate()
	}
	return n
}

// BBox returns the triangle's axis-aligned bounding box.
func (tr *Triangle) BBox() core.BBox3 {
	return core.NewBBox3FromPoints(tr.P[0], tr.P[1], tr.P[2])
}

// Area returns the triangle's area.
func (tr *Triangle) Area() float32 {
	e1 := tr.P[1].Subtract(tr.P[0])
	e2 := tr.P[2].Subtract(tr.P[0])
	return 0.5 * e1.Cross(e2).Length()
}

// Material returns the triangle's material.
func (tr *Triangle) Material() core.Material { return tr.Mat }

// IsLight reports false; use a separate light wrapper to make a triangle an
// emitter.
func (tr *Triangle) IsLight() bool { return false }

// EmittedRadiance returns zero; triangles are not emitters by themselves.
func (tr *Triangle) EmittedRadiance(core.SurfaceInteraction, core.Vec3) core.Spectrum {
	return core.Spectrum{}
}

// IntersectP reports whether r hits the triangle.
func (tr *Triangle) IntersectP(r core.Ray) bool {
	_, _, _, _, ok := tr.intersectRaw(r)
	return ok
}

// intersectRaw implements the ray-coordinate-system algorithm: permute axes
// so the dominant ray direction becomes z, shear to align the ray with +z,
// compute edge functions about the projected origin, reject on mixed signs,
// and bound the hit distance with a conservative error estimate built from
// gamma(2)/gamma(3)/gamma(5)/gamma(7).
func (tr *Triangle) intersectRaw(r core.Ray) (t float32, b0, b1, b2 float32, ok bool) {
	p0t := tr.P[0].Subtract(r.Origin)
	p1t := tr.P[1].Subtract(r.Origin)
	p2t := tr.P[2].Subtract(r.Origin)

	kz := r.Direction.MaxAbsAxis()
	kx := kz.Next()
	ky := kx.Next()

	d := r.Direction.Permute(kx, ky, kz)
	p0t = p0t.Permute(kx, ky, kz)
	p1t = p1t.Permute(kx, ky, kz)
	p2t = p2t.Permute(kx, ky, kz)

	sx := -d.X / d.Z
	sy := -d.Y / d.Z
	sz := 1 / d.Z

	p0t.X += sx * p0t.Z
	p0t.Y += sy * p0t.Z
	p1t.X += sx * p1t.Z
	p1t.Y += sy * p1t.Z
	p2t.X += sx * p2t.Z
	p2t.Y += sy * p2t.Z

	e0 := p1t.X*p2t.Y - p1t.Y*p2t.X
	e1 := p2t.X*p0t.Y - p2t.Y*p0t.X
	e2 := p0t.X*p1t.Y - p0t.Y*p1t.X

	if (e0 < 0 || e1 < 0 || e2 < 0) && (e0 > 0 || e1 > 0 || e2 > 0) {
		return 0, 0, 0, 0, false
	}
	det := e0 + e1 + e2
	if det == 0 {
		return 0, 0, 0, 0, false
	}

	p0t.Z *= sz
	p1t.Z *= sz
	p2t.Z *= sz
	tScaled := e0*p0t.Z + e1*p1t.Z + e2*p2t.Z
	if det < 0 && (tScaled >= 0 || tScaled < r.TMax*det) {
		return 0, 0, 0, 0, false
	} else if det > 0 && (tScaled <= 0 || tScaled > r.TMax*det) {
		return 0, 0, 0, 0, false
	}

	invDet := 1 / det
	bb0 := e0 * invDet
	bb1 := e1 * invDet
	bb2 := e2 * invDet
	tHit := tScaled * invDet

	maxX := core.Max(core.Abs(p0t.X), core.Max(core.Abs(p1t.X), core.Abs(p2t.X)))
	maxY := core.Max(core.Abs(p0t.Y), core.Max(core.Abs(p1t.Y), core.Abs(p2t.Y)))
	maxZ := core.Max(core.Abs(p0t.Z), core.Max(core.Abs(p1t.Z), core.Abs(p2t.Z)))

	deltaX := maxX * core.Gamma(5)
	deltaY := maxY * core.Gamma(5)
	deltaZ := maxZ * core.Gamma(3)
	deltaE := (core.Gamma(2)*maxX*maxY + maxX*deltaY + maxY*deltaX) * 2
	maxE := core.Max(core.Abs(e0), core.Max(core.Abs(e1), core.Abs(e2)))
	deltaT := 3 * (core.Gamma(3)*maxE*maxZ + maxZ*deltaE + maxE*deltaZ) / core.Abs(det)
	if tHit <= deltaT {
		return 0, 0, 0, 0, false
	}

	return tHit, bb0, bb1, bb2, true
}

// Intersect computes the full surface interaction for the triangle,
// including the partial derivatives and the shading-normal
// re-orthogonalization described for triangles with per-vertex normals.
func (tr *Triangle) Intersect(r core.Ray) (core.SurfaceInteraction, float32, bool) {
	t, b0, b1, b2, ok := tr.intersectRaw(r)
	if !ok {
		return core.SurfaceInteraction{}, 0, false
	}

	p := core.Point3{
		X: b0*tr.P[0].X + b1*tr.P[1].X + b2*tr.P[2].X,
		Y: b0*tr.P[0].Y + b1*tr.P[1].Y + b2*tr.P[2].Y,
		Z: b0*tr.P[0].Z + b1*tr.P[1].Z + b2*tr.P[2].Z,
	}
	absSum := tr.P[0].ToVec().Abs().Multiply(core.Abs(b0)).
		Add(tr.P[1].ToVec().Abs().Multiply(core.Abs(b1))).
		Add(tr.P[2].ToVec().Abs().Multiply(core.Abs(b2)))
	pErr := absSum.Multiply(core.Gamma(7))

	uv := fixedUV()
	du1, du2 := uv[0][0]-uv[2][0], uv[1][0]-uv[2][0]
	dv1, dv2 := uv[0][1]-uv[2][1], uv[1][1]-uv[2][1]
	dp1 := tr.P[0].Subtract(tr.P[2])
	dp2 := tr.P[1].Subtract(tr.P[2])

	n := tr.geometricNormal()
	var dpdu, dpdv core.Vec3
	detUV := du1*dv2 - dv1*du2
	if core.Abs(detUV) < 1e-8 {
		dpdu, dpdv = core.ConstructCoordinateSystem(n.ToVec().Normalize())
	} else {
		invDetUV := 1 / detUV
		dpdu = dp1.Multiply(dv2).Subtract(dp2.Multiply(dv1)).Multiply(invDetUV)
		dpdv = dp2.Multiply(du1).Subtract(dp1.Multiply(du2)).Multiply(invDetUV)
	}

	sn := n
	if tr.HasVertexNormals {
		sn = core.Normal3{
			X: b0*tr.N[0].X + b1*tr.N[1].X + b2*tr.N[2].X,
			Y: b0*tr.N[0].Y + b1*tr.N[1].Y + b2*tr.N[2].Y,
			Z: b0*tr.N[0].Z + b1*tr.N[1].Z + b2*tr.N[2].Z,
		}
		if tr.ReverseOrientation {
			sn = sn.Negate()
		}
		if sn.LengthSquared() > 0 {
			sn = sn.Normalize()
			// Re-orthogonalize dpdu/dpdv around the interpolated shading
			// normal via Gram-Schmidt; fall back to a constructed frame if
			// the projection degenerates.
			dpduOrtho := dpdu.Subtract(sn.ToVec().Multiply(sn.ToVec().Dot(dpdu)))
			if dpduOrtho.LengthSquared() > 0 {
				dpdu = dpduOrtho
				dpdv = sn.ToVec().Cross(dpdu)
			} else {
				dpdu, dpdv = core.ConstructCoordinateSystem(sn.ToVec())
			}
			if n.Dot(sn.ToVec()) < 0 {
				n = n.Negate()
			}
		} else {
			sn = n
		}
	}

	si := core.SurfaceInteraction{
		P:    p,
		PErr: pErr,
		N:    n,
		SN:   sn,
		DPDU: dpdu,
		DPDV: dpdv,
		UV:   [2]float32{b1*uv[1][0] + b2*uv[2][0] + b0*uv[0][0], b1*uv[1][1] + b2*uv[2][1] + b0*uv[0][1]},
		Wo:   r.Direction.Negate(),
	}
	return si, t, true
}

func fixedUV() [3][2]float32 { return [3][2]float32{{0, 0}, {1, 0}, {1, 1}} }

// Sample draws a point on the triangle using the standard
// area-preserving barycentric mapping (1-sqrt(u0), u1*sqrt(u0), 1-b0-b1).
func (tr *Triangle) Sample(u [2]float32) core.SurfaceInteraction {
	su0 := float32(math.Sqrt(float64(u[0])))
	b0 := 1 - su0
	b1 := u[1] * su0
	b2 := 1 - b0 - b1

	p := core.Point3{
		X: b0*tr.P[0].X + b1*tr.P[1].X + b2*tr.P[2].X,
		Y: b0*tr.P[0].Y + b1*tr.P[1].Y + b2*tr.P[2].Y,
		Z: b0*tr.P[0].Z + b1*tr.P[1].Z + b2*tr.P[2].Z,
	}
	n := tr.geometricNormal()
	absSum := tr.P[0].ToVec().Abs().Multiply(core.Abs(b0)).
		Add(tr.P[1].ToVec().Abs().Multiply(core.Abs(b1))).
		Add(tr.P[2].ToVec().Abs().Multiply(core.Abs(b2)))
	return core.SurfaceInteraction{P: p, N: n, SN: n, PErr: absSum.Multiply(core.Gamma(7))}
}

// SampleFrom defaults to uniform-area sampling on the triangle.
func (tr *Triangle) SampleFrom(ref core.SurfaceInteraction, u [2]float32) core.SurfaceInteraction {
	return tr.Sample(u)
}

// PDF returns the solid-angle density of SampleFrom having sampled
// direction wi from ref.
func (tr *Triangle) PDF(ref core.SurfaceInteraction, wi core.Vec3) float32 {
	r := core.NewRay(ref.P, wi)
	r.TMax = core.Infinity
	si, t, ok := tr.Intersect(r)
	if !ok {
		return 0
	}
	dist2 := t * t * wi.LengthSquared()
	cosTheta := si.N.AbsDot(wi.Negate().Normalize())
	if cosTheta == 0 {
		return 0
	}
	return dist2 / (cosTheta * tr.Area())
}
