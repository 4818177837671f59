// Package scene assembles shapes, lights, and a camera into a renderable
// Scene, and provides a couple of example scene constructors used by the
// end-to-end tests.
package scene

import (
	"fmt"

	"github.com/df07/kdpath/pkg/core"
	"github.com/df07/kdpath/pkg/kdtree"
	"github.com/df07/kdpath/pkg/lights"
)

// Scene bundles everything the render loop needs: the acceleration
// structure for ray/shape intersection, the light sampler for next-event
// estimation, and the camera generating primary rays.
type Scene struct {
	Container core.Container
	Lights    *lights.WeightedLightSampler
	Camera    core.Camera
}

// ContainerFactory builds an acceleration structure over shapes. Builder.
// Construct takes one as a parameter so tests can substitute
// kdtree.NewBruteForce for the production kdtree.Tree.
type ContainerFactory func(shapes []core.Shape) (core.Container, error)

// KDTreeContainer returns a ContainerFactory backed by the production SAH
// k-d tree, split to maxDepth.
func KDTreeContainer(maxDepth int) ContainerFactory {
	return func(shapes []core.Shape) (core.Container, error) {
		return kdtree.New(shapes, maxDepth)
	}
}

// Builder accumulates shapes and lights programmatically before handing
// them to an acceleration structure, mirroring the add-then-construct
// surface of a scene description API without a file format behind it.
type Builder struct {
	shapes []core.Shape
	lights []core.Light
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddShape registers a non-emissive shape.
func (b *Builder) AddShape(s core.Shape) *Builder {
	b.shapes = append(b.shapes, s)
	return b
}

// AddAreaLight registers shape both as a traceable primitive and as a
// light the integrator samples for next-event estimation. light is
// typically the same value as shape wrapped as a *lights.AreaLight[S],
// which implements both core.Shape and core.Light.
func (b *Builder) AddAreaLight(light core.Light, shape core.Shape) *Builder {
	b.lights = append(b.lights, light)
	b.shapes = append(b.shapes, shape)
	return b
}

// AddLight registers an infinite or delta light that contributes no
// traceable geometry (e.g. a DistantLight).
func (b *Builder) AddLight(light core.Light) *Builder {
	b.lights = append(b.lights, light)
	return b
}

// Construct builds the acceleration structure via factory, pre-processes
// every registered light against the resulting scene bounds, and returns a
// Scene ready to pair with a camera.
func (b *Builder) Construct(factory ContainerFactory) (*Scene, error) {
	container, err := factory(b.shapes)
	if err != nil {
		return nil, fmt.Errorf("scene: building container: %w", err)
	}

	bounds := container.BBox()
	for _, light := range b.lights {
		light.PreProcess(bounds)
	}

	return &Scene{
		Container: container,
		Lights:    lights.NewUniformLightSampler(b.lights),
	}, nil
}
