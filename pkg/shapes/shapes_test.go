package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/kdpath/pkg/core"
)

func TestSphereHit(t *testing.T) {
	s := NewSphere(core.Point3{X: 2, Y: 2, Z: 2}, 1, nil)
	r := core.NewRay(core.Point3{X: 2, Y: 0, Z: 2}, core.Vec3{X: 0, Y: 1, Z: 0})

	si, _, ok := s.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, 2, si.P.X, 1e-4)
	assert.InDelta(t, 1, si.P.Y, 1e-4)
	assert.InDelta(t, 2, si.P.Z, 1e-4)
	assert.InDelta(t, 0, si.N.X, 1e-4)
	assert.InDelta(t, -1, si.N.Y, 1e-4)
	assert.InDelta(t, 0, si.N.Z, 1e-4)
}

func TestSphereMiss(t *testing.T) {
	s := NewSphere(core.Point3{X: 2, Y: 2, Z: 2}, 1, nil)
	dir := core.Vec3{X: 0, Y: 1, Z: 1}.Normalize()
	r := core.NewRay(core.Point3{X: 2, Y: 0, Z: 2}, dir)

	_, _, ok := s.Intersect(r)
	assert.False(t, ok)
}

func TestSphereRadiusInvariant(t *testing.T) {
	s := NewSphere(core.Point3{X: 1, Y: -2, Z: 3}, 2.5, nil)
	dirs := []core.Vec3{
		{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0.3, Y: 0.7, Z: -0.2},
	}
	for _, d := range dirs {
		r := core.NewRay(core.Point3{X: 1, Y: -2, Z: 10}, d.Normalize())
		si, _, ok := s.Intersect(r)
		if !ok {
			continue
		}
		dist := si.P.Distance(s.Center)
		assert.InDelta(t, float64(s.Radius), float64(dist), 1e-3)
	}
}

func TestTriangleDirectHit(t *testing.T) {
	tr := NewTriangle(
		core.Point3{X: 0, Y: 0, Z: 0},
		core.Point3{X: 1, Y: 0, Z: 0},
		core.Point3{X: 0, Y: 1, Z: 0},
		nil,
	)
	r := core.NewRay(core.Point3{X: 0.25, Y: 0.25, Z: 1}, core.Vec3{X: 0, Y: 0, Z: -1})

	si, _, ok := tr.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, 0.25, si.P.X, 1e-4)
	assert.InDelta(t, 0.25, si.P.Y, 1e-4)
	assert.InDelta(t, 0, si.P.Z, 1e-4)
	assert.InDelta(t, 0, si.N.X, 1e-4)
	assert.InDelta(t, 0, si.N.Y, 1e-4)
	assert.InDelta(t, 1, si.N.Z, 1e-4)
}

func TestTriangleSelfIntersectionAvoided(t *testing.T) {
	tr := NewTriangle(
		core.Point3{X: 0, Y: 0, Z: 0},
		core.Point3{X: 1, Y: 0, Z: 0},
		core.Point3{X: 0, Y: 1, Z: 0},
		nil,
	)
	r := core.NewRay(core.Point3{X: 0.25, Y: 0.25, Z: 1}, core.Vec3{X: 0, Y: 0, Z: -1})
	si, _, ok := tr.Intersect(r)
	require.True(t, ok)

	spawned := si.SpawnRay(si.N.ToVec())
	assert.False(t, tr.IntersectP(spawned))
}

func TestTriangleMiss(t *testing.T) {
	tr := NewTriangle(
		core.Point3{X: 0, Y: 0, Z: 0},
		core.Point3{X: 1, Y: 0, Z: 0},
		core.Point3{X: 0, Y: 1, Z: 0},
		nil,
	)
	r := core.NewRay(core.Point3{X: 5, Y: 5, Z: 1}, core.Vec3{X: 0, Y: 0, Z: -1})
	_, _, ok := tr.Intersect(r)
	assert.False(t, ok)
}
