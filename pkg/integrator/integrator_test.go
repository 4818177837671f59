package integrator

import (
	"context"
	"testing"

	"github.com/df07/kdpath/pkg/core"
	"github.com/df07/kdpath/pkg/film"
	"github.com/df07/kdpath/pkg/kdtree"
	"github.com/df07/kdpath/pkg/lights"
	"github.com/df07/kdpath/pkg/material"
	"github.com/df07/kdpath/pkg/sampler"
	"github.com/df07/kdpath/pkg/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perspectiveCamera is a minimal look-at-plus-FOV camera used only to drive
// these tests without depending on pkg/scene.
type perspectiveCamera struct {
	origin, lowerLeft core.Point3
	horizontal, vert  core.Vec3
}

func newTestCamera() perspectiveCamera {
	return perspectiveCamera{
		origin:     core.NewPoint3(0, 1, 5),
		lowerLeft:  core.NewPoint3(-1, 0, 4),
		horizontal: core.NewVec3(2, 0, 0),
		vert:       core.NewVec3(0, 2, 0),
	}
}

func (c perspectiveCamera) GenerateRay(s core.CameraSample) core.Ray {
	u := s.PFilm[0] / 64
	v := 1 - s.PFilm[1]/64
	target := c.lowerLeft.Add(c.horizontal.Multiply(u)).Add(c.vert.Multiply(v))
	dir := target.Subtract(c.origin).Normalize()
	return core.NewRay(c.origin, dir)
}

func buildLitSceneContainer(t *testing.T) (*kdtree.Tree, *lights.WeightedLightSampler) {
	t.Helper()
	floor := shapes.NewTriangleMesh(
		[]core.Point3{core.NewPoint3(-5, 0, -5), core.NewPoint3(5, 0, -5), core.NewPoint3(5, 0, 5), core.NewPoint3(-5, 0, 5)},
		[]int{0, 1, 2, 0, 2, 3},
		nil,
		material.Lambertian{Kd: material.ConstantSpectrumTexture{Value: core.Gray(0.6)}},
	)
	lightTri := shapes.NewTriangle(
		core.NewPoint3(-1, 3, -1), core.NewPoint3(1, 3, -1), core.NewPoint3(0, 3, 1),
		material.Lambertian{Kd: material.ConstantSpectrumTexture{Value: core.Spectrum{}}},
	)
	al := lights.NewAreaLight[*shapes.Triangle](lightTri, core.Gray(8))

	var shapeList []core.Shape
	for _, tr := range floor {
		shapeList = append(shapeList, tr)
	}
	shapeList = append(shapeList, al)

	tree, err := kdtree.New(shapeList, 0)
	require.NoError(t, err)

	ls := lights.NewUniformLightSampler([]core.Light{al})
	return tree, ls
}

func TestPathIntegratorTerminatesAndProducesNonNegativeRadiance(t *testing.T) {
	tree, ls := buildLitSceneContainer(t)
	li := NewPathIntegrator(tree, ls, 5)

	s := sampler.NewRandomSampler(1, 42)
	s.StartPixel([2]int{0, 0})
	s.StartNextSample()

	ray := core.NewRay(core.NewPoint3(0, 1, 0), core.NewVec3(0, 1, 0.2).Normalize())
	l := li.Li(ray, s)
	assert.GreaterOrEqual(t, l.R, float32(0))
	assert.GreaterOrEqual(t, l.G, float32(0))
	assert.GreaterOrEqual(t, l.B, float32(0))
}

func TestPathIntegratorMissReturnsBlack(t *testing.T) {
	tree, ls := buildLitSceneContainer(t)
	li := NewPathIntegrator(tree, ls, 5)
	s := sampler.NewRandomSampler(1, 1)
	s.StartPixel([2]int{0, 0})
	s.StartNextSample()

	ray := core.NewRay(core.NewPoint3(0, 100, 0), core.NewVec3(0, 1, 0))
	l := li.Li(ray, s)
	assert.True(t, l.IsBlack())
}

func TestRenderProducesNonDegenerateFilm(t *testing.T) {
	tree, ls := buildLitSceneContainer(t)
	li := NewPathIntegrator(tree, ls, 3)
	cam := newTestCamera()

	f, err := film.NewFilm(64, 64, film.NewGaussianFilter(2, 2))
	require.NoError(t, err)

	s := sampler.NewRandomSampler(4, 7)
	err = Render(context.Background(), f, cam, li, s, 2, 1)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, f.MeanBrightness(), float32(0))
}

func TestSeedForTileDeterministic(t *testing.T) {
	a := seedForTile(5, 2, 3)
	b := seedForTile(5, 2, 3)
	c := seedForTile(5, 3, 2)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
