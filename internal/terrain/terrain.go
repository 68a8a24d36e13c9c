// Package terrain provides seabed height lookups for depth and line-of-sight
// calculations. Heights are meters relative to sea level, negative below.
package terrain

import (
	"math"
	"math/rand"
)

// HeightProvider returns the seabed height at a horizontal position. It must
// be a pure function of position: detection and LOS results are only
// reproducible when the same inputs yield the same output.
type HeightProvider interface {
	HeightAt(x, z float64) float64
}

// HeightFunc adapts a plain function to a HeightProvider.
type HeightFunc func(x, z float64) float64

func (f HeightFunc) HeightAt(x, z float64) float64 { return f(x, z) }

// Flat is a uniform seabed at a fixed height.
type Flat struct {
	Height float64
}

func (f Flat) HeightAt(x, z float64) float64 { return f.Height }

// Seabed is a deterministic procedural heightfield built from layered
// sinusoids. Two seabeds with the same seed and dimensions produce identical
// heights everywhere.
type Seabed struct {
	meanDepthM float64
	reliefM    float64
	phases     [3]float64
	freqs      [3]float64
}

// NewSeabed creates a seabed with the given mean depth and relief amplitude,
// both in meters. The seed fixes ridge placement.
func NewSeabed(seed int64, meanDepthM, reliefM float64) *Seabed {
	if meanDepthM <= 0 {
		meanDepthM = 400
	}
	if reliefM < 0 {
		reliefM = 0
	}
	rng := rand.New(rand.NewSource(seed))
	s := &Seabed{meanDepthM: meanDepthM, reliefM: reliefM}
	for i := range s.phases {
		s.phases[i] = rng.Float64() * 2 * math.Pi
	}
	s.freqs = [3]float64{
		0.010 + rng.Float64()*0.010,
		0.023 + rng.Float64()*0.012,
		0.047 + rng.Float64()*0.020,
	}
	return s
}

// HeightAt returns the seabed height at (x, z). Always negative for positive
// mean depth and bounded relief.
func (s *Seabed) HeightAt(x, z float64) float64 {
	r := 0.5*math.Sin(x*s.freqs[0]+s.phases[0]) +
		0.3*math.Sin(z*s.freqs[1]+s.phases[1]) +
		0.2*math.Sin((x+z)*s.freqs[2]+s.phases[2])
	return -s.meanDepthM + s.reliefM*r
}
