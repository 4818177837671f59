package lights

import (
	"fmt"

	"github.com/df07/kdpath/pkg/core"
)

// WeightedLightSampler selects a light by fixed, user-specified weights
// (independent of the surface point being shaded), for next-event
// estimation's light-selection step.
type WeightedLightSampler struct {
	lights  []core.Light
	weights []float32
}

// NewWeightedLightSampler builds a sampler from parallel lights/weights
// slices; weights are normalized to sum to 1 (falling back to a uniform
// distribution if every weight is zero). Panics on a length mismatch or a
// negative weight, since both are programming errors at scene-build time.
func NewWeightedLightSampler(lights []core.Light, weights []float32) *WeightedLightSampler {
	if len(lights) != len(weights) {
		panic(fmt.Sprintf("lights length (%d) must match weights length (%d)", len(lights), len(weights)))
	}

	normalized := make([]float32, len(weights))
	var total float32
	for _, w := range weights {
		if w < 0 {
			panic("weights must be non-negative")
		}
		total += w
	}

	if total == 0 {
		uniform := float32(1) / float32(len(weights))
		for i := range normalized {
			normalized[i] = uniform
		}
	} else {
		for i, w := range weights {
			normalized[i] = w / total
		}
	}

	return &WeightedLightSampler{lights: lights, weights: normalized}
}

// NewUniformLightSampler builds a sampler assigning every light equal
// selection probability.
func NewUniformLightSampler(lights []core.Light) *WeightedLightSampler {
	if len(lights) == 0 {
		return &WeightedLightSampler{}
	}
	weights := make([]float32, len(lights))
	uniform := float32(1) / float32(len(lights))
	for i := range weights {
		weights[i] = uniform
	}
	return &WeightedLightSampler{lights: lights, weights: weights}
}

// SampleLight selects a light via the fixed weights' cumulative
// distribution, returning the light, its selection probability, and index.
func (s *WeightedLightSampler) SampleLight(u float32) (light core.Light, pdf float32, index int) {
	if len(s.lights) == 0 {
		return nil, 0, -1
	}
	var cumulative float32
	for i := range s.lights {
		cumulative += s.weights[i]
		if u <= cumulative {
			return s.lights[i], s.weights[i], i
		}
	}
	last := len(s.lights) - 1
	return s.lights[last], s.weights[last], last
}

// LightProbability returns the fixed selection probability for the light
// at index i.
func (s *WeightedLightSampler) LightProbability(i int) float32 {
	if i < 0 || i >= len(s.weights) {
		return 0
	}
	return s.weights[i]
}

// LightCount returns the number of lights in this sampler.
func (s *WeightedLightSampler) LightCount() int { return len(s.lights) }
