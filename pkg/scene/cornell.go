package scene

import (
	"github.com/df07/kdpath/pkg/core"
	"github.com/df07/kdpath/pkg/lights"
	"github.com/df07/kdpath/pkg/material"
	"github.com/df07/kdpath/pkg/shapes"
)

// NewCornellScene builds a classic Cornell box: five diffuse walls, a
// ceiling area light, a mirror sphere, and a glass sphere, at the
// traditional 555-unit box size. Width/height set the output resolution;
// the camera is a 40-degree-vertical-FOV pinhole looking down the box.
func NewCornellScene(width, height int) (*Scene, error) {
	b := NewBuilder()

	const box = 555.0
	white := material.Lambertian{Kd: material.ConstantSpectrumTexture{Value: core.NewSpectrum(0.73, 0.73, 0.73)}}
	red := material.Lambertian{Kd: material.ConstantSpectrumTexture{Value: core.NewSpectrum(0.65, 0.05, 0.05)}}
	green := material.Lambertian{Kd: material.ConstantSpectrumTexture{Value: core.NewSpectrum(0.12, 0.45, 0.15)}}

	quad := func(corner, u, v core.Point3, mat core.Material) []*shapes.Triangle {
		verts := []core.Point3{
			corner,
			core.NewPoint3(corner.X+u.X, corner.Y+u.Y, corner.Z+u.Z),
			core.NewPoint3(corner.X+u.X+v.X, corner.Y+u.Y+v.Y, corner.Z+u.Z+v.Z),
			core.NewPoint3(corner.X+v.X, corner.Y+v.Y, corner.Z+v.Z),
		}
		return shapes.NewTriangleMesh(verts, []int{0, 1, 2, 0, 2, 3}, nil, mat)
	}
	addQuad := func(tris []*shapes.Triangle) {
		for _, t := range tris {
			b.AddShape(t)
		}
	}

	floor := quad(core.NewPoint3(0, 0, 0), core.NewPoint3(box, 0, 0), core.NewPoint3(0, 0, box), white)
	ceiling := quad(core.NewPoint3(0, box, 0), core.NewPoint3(box, 0, 0), core.NewPoint3(0, 0, box), white)
	back := quad(core.NewPoint3(0, 0, box), core.NewPoint3(box, 0, 0), core.NewPoint3(0, box, 0), white)
	left := quad(core.NewPoint3(0, 0, 0), core.NewPoint3(0, 0, box), core.NewPoint3(0, box, 0), red)
	right := quad(core.NewPoint3(box, 0, 0), core.NewPoint3(0, box, 0), core.NewPoint3(0, 0, box), green)
	addQuad(floor)
	addQuad(ceiling)
	addQuad(back)
	addQuad(left)
	addQuad(right)

	const lightSize = 130.0
	off := float32((box - lightSize) / 2)
	lightTris := quad(
		core.NewPoint3(off, box-1, off),
		core.NewPoint3(lightSize, 0, 0),
		core.NewPoint3(0, 0, lightSize),
		material.Lambertian{Kd: material.ConstantSpectrumTexture{Value: core.Spectrum{}}},
	)
	for _, t := range lightTris {
		al := lights.NewAreaLight[*shapes.Triangle](t, core.Gray(15))
		b.AddAreaLight(al, al)
	}

	mirror := shapes.NewSphere(core.NewPoint3(185, 82.5, 169), 82.5,
		material.Mirror{Kr: material.ConstantSpectrumTexture{Value: core.NewSpectrum(0.8, 0.8, 0.9)}})
	glass := shapes.NewSphere(core.NewPoint3(370, 90, 351), 90,
		material.Glass{
			Kr:  material.ConstantSpectrumTexture{Value: core.Gray(1)},
			Kt:  material.ConstantSpectrumTexture{Value: core.Gray(1)},
			Eta: 1.5,
		})
	b.AddShape(mirror)
	b.AddShape(glass)

	sc, err := b.Construct(KDTreeContainer(0))
	if err != nil {
		return nil, err
	}

	sc.Camera = NewPerspectiveCamera(
		core.NewPoint3(278, 278, -800), core.NewPoint3(278, 278, 0), core.NewVec3(0, 1, 0),
		40, width, height, 0, 800,
	)
	return sc, nil
}
