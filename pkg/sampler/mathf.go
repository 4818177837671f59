package sampler

import "math"

func cosF(x float32) float32  { return float32(math.Cos(float64(x))) }
func sinF(x float32) float32  { return float32(math.Sin(float64(x))) }
func sqrtF(x float32) float32 { return float32(math.Sqrt(float64(x))) }
