package scene

import (
	"github.com/df07/kdpath/pkg/core"
	"github.com/df07/kdpath/pkg/lights"
	"github.com/df07/kdpath/pkg/material"
	"github.com/df07/kdpath/pkg/shapes"
)

// NewDefaultScene builds a small showcase scene: a checkered ground plane,
// one sphere of each material family (Lambertian, Metal, Glass, Plastic),
// and a single distant light standing in for a sun, at the given output
// resolution.
func NewDefaultScene(width, height int) (*Scene, error) {
	b := NewBuilder()

	checker := material.Lambertian{
		Kd: material.Checkerboard3DTexture{
			Tex1: material.ConstantSpectrumTexture{Value: core.Gray(0.9)},
			Tex2: material.ConstantSpectrumTexture{Value: core.NewSpectrum(0.1, 0.1, 0.15)},
		},
	}
	ground := shapes.NewTriangleMesh(
		[]core.Point3{
			core.NewPoint3(-20, 0, -20), core.NewPoint3(20, 0, -20),
			core.NewPoint3(20, 0, 20), core.NewPoint3(-20, 0, 20),
		},
		[]int{0, 1, 2, 0, 2, 3}, nil, checker,
	)
	for _, t := range ground {
		b.AddShape(t)
	}

	lambertianBlue := material.Lambertian{Kd: material.ConstantSpectrumTexture{Value: core.NewSpectrum(0.1, 0.2, 0.5)}}
	b.AddShape(shapes.NewSphere(core.NewPoint3(-1.5, 0.5, 0), 0.5, lambertianBlue))

	metalGold := material.Metal{Eta: core.NewSpectrum(0.18, 0.42, 1.37), K: core.NewSpectrum(3.42, 2.35, 1.77)}
	b.AddShape(shapes.NewSphere(core.NewPoint3(0, 0.5, 0), 0.5, metalGold))

	glass := material.Glass{
		Kr:  material.ConstantSpectrumTexture{Value: core.Gray(1)},
		Kt:  material.ConstantSpectrumTexture{Value: core.Gray(1)},
		Eta: 1.5,
	}
	b.AddShape(shapes.NewSphere(core.NewPoint3(1.5, 0.5, 0), 0.5, glass))

	plastic := material.Plastic{
		Kd:        material.ConstantSpectrumTexture{Value: core.NewSpectrum(0.6, 0.1, 0.1)},
		Ks:        material.ConstantSpectrumTexture{Value: core.Gray(0.3)},
		Roughness: material.ConstantFloatTexture{Value: 0.1},
	}
	b.AddShape(shapes.NewSphere(core.NewPoint3(3, 0.5, 0), 0.5, plastic))

	b.AddLight(lights.NewDistantLight(core.NewVec3(-1, -1, -0.3).Normalize(), core.Gray(3)))

	sc, err := b.Construct(KDTreeContainer(0))
	if err != nil {
		return nil, err
	}

	sc.Camera = NewPerspectiveCamera(
		core.NewPoint3(0, 1.5, 6), core.NewPoint3(0, 0.5, 0), core.NewVec3(0, 1, 0),
		40, width, height, 0, 6,
	)
	return sc, nil
}
