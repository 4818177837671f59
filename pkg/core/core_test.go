package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixInverseRoundTrip(t *testing.T) {
	m := NewMatrix4(
		2, 0, 0, 3,
		0, 1, 0, -1,
		0, 0, 4, 2,
		0, 0, 0, 1,
	)
	inv, err := m.Inverse()
	require.NoError(t, err)

	prod := m.Mul(inv)
	ident := Identity4()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, ident.M[i][j], prod.M[i][j], 1e-4)
		}
	}
}

func TestMatrixSingularIsError(t *testing.T) {
	m := Matrix4{} // all zero, determinant zero
	_, err := m.Inverse()
	require.Error(t, err)
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Translate(Vec3{1, 2, 3}).Compose(RotateY(0.7)).Compose(Scale(Vec3{2, 1, 0.5}))
	p := Point3{0.3, -1.2, 4.5}

	got := tr.Inverse().Point(tr.Point(p))
	assert.InDelta(t, float64(p.X), float64(got.X), 1e-3)
	assert.InDelta(t, float64(p.Y), float64(got.Y), 1e-3)
	assert.InDelta(t, float64(p.Z), float64(got.Z), 1e-3)
}

func TestBBoxOverlapsCorrected(t *testing.T) {
	a := BBox3{Min: Point3{0, 0, 0}, Max: Point3{1, 1, 1}}
	b := BBox3{Min: Point3{0.5, 0.5, 0.5}, Max: Point3{2, 2, 2}}
	c := BBox3{Min: Point3{5, 5, 5}, Max: Point3{6, 6, 6}}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
}

func TestBBoxIntersectP(t *testing.T) {
	b := BBox3{Min: Point3{-1, -1, -1}, Max: Point3{1, 1, 1}}
	r := NewRay(Point3{0, 0, -5}, Vec3{0, 0, 1})
	tEnter, tExit, ok := b.IntersectP(r)
	require.True(t, ok)
	assert.InDelta(t, 4, tEnter, 1e-5)
	assert.InDelta(t, 6, tExit, 1e-5)

	miss := NewRay(Point3{5, 5, -5}, Vec3{0, 0, 1})
	_, _, ok = b.IntersectP(miss)
	assert.False(t, ok)
}

func TestGammaAndNextFloat(t *testing.T) {
	assert.Greater(t, Gamma(3), float32(0))
	x := float32(1.0)
	assert.Greater(t, NextFloatUp(x), x)
	assert.Less(t, NextFloatDown(x), x)
}

func TestQuadratic(t *testing.T) {
	// x^2 - 3x + 2 = 0 -> roots 1, 2
	t0, t1, ok := Quadratic(1, -3, 2)
	require.True(t, ok)
	assert.InDelta(t, 1, t0, 1e-5)
	assert.InDelta(t, 2, t1, 1e-5)

	_, _, ok = Quadratic(1, 0, 1) // no real roots
	assert.False(t, ok)
}

func TestConstructCoordinateSystem(t *testing.T) {
	v1 := Vec3{0, 0, 1}
	v2, v3 := ConstructCoordinateSystem(v1)
	assert.InDelta(t, 0, float64(v1.Dot(v2)), 1e-5)
	assert.InDelta(t, 0, float64(v1.Dot(v3)), 1e-5)
	assert.InDelta(t, 0, float64(v2.Dot(v3)), 1e-5)
	assert.InDelta(t, 1, float64(v2.Length()), 1e-4)
	assert.InDelta(t, 1, float64(v3.Length()), 1e-4)
}

func TestOffsetRayOriginAvoidsSelfIntersection(t *testing.T) {
	si := SurfaceInteraction{
		P:    Point3{0, 0, 0},
		PErr: Vec3{1e-6, 1e-6, 1e-6},
		N:    Normal3{0, 0, 1},
	}
	w := Vec3{0, 0, 1}
	p := si.OffsetRayOrigin(w)
	assert.Greater(t, float64(p.Z), 0.0)
}

func TestSpectrumGammaEncode(t *testing.T) {
	s := Spectrum{1, 0.25, 0}
	g := s.GammaEncode(2.2)
	assert.InDelta(t, 1, g.R, 1e-5)
	assert.InDelta(t, math.Pow(0.25, 1/2.2), float64(g.G), 1e-5)
	assert.Equal(t, float32(0), g.B)
}
