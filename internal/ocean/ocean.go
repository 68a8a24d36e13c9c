// Package ocean models the layered water column the sonar equation samples:
// temperature, sound speed, and ambient noise as pure functions of depth.
package ocean

const (
	surfaceTempC    = 18.0
	isothermalTempC = 4.0

	// Depth bands in meters, positive down.
	mixedLayerDepthM = 50.0
	deepLayerDepthM  = 1000.0

	// ThermoclineDepthM is the boundary that splits the water column into an
	// upper and a lower acoustic layer. Paths crossing it pass through the
	// shadow zone.
	ThermoclineDepthM = 200.0

	// SurfaceDuctDepthM bounds the near-surface duct that traps sound and
	// carries it further than spherical spreading alone would allow.
	SurfaceDuctDepthM = 45.0
)

// Temperature returns water temperature in degrees Celsius at the given
// depth. Warm in the mixed layer, falling through the thermocline to a fixed
// isothermal floor below the deep layer boundary.
func Temperature(depthM float64) float64 {
	if depthM < 0 {
		depthM = 0
	}
	if depthM >= deepLayerDepthM {
		return isothermalTempC
	}
	if depthM <= mixedLayerDepthM {
		return surfaceTempC - 0.02*depthM
	}
	top := surfaceTempC - 0.02*mixedLayerDepthM
	frac := (depthM - mixedLayerDepthM) / (deepLayerDepthM - mixedLayerDepthM)
	return top - (top-isothermalTempC)*frac
}

// SoundSpeed returns the speed of sound in m/s at the given depth, combining
// the temperature profile with hydrostatic pressure. Values are constrained
// to [1450, 1600] m/s.
func SoundSpeed(depthM float64) float64 {
	if depthM < 0 {
		depthM = 0
	}
	t := Temperature(depthM)
	c := 1449.2 + 4.6*t - 0.055*t*t + 0.016*depthM
	if c < 1450 {
		c = 1450
	} else if c > 1600 {
		c = 1600
	}
	return c
}

// AmbientNoise returns the background noise level in dB at the given depth.
// Surface wind, waves, and shipping dominate shallow water, so the level
// falls slowly with depth.
func AmbientNoise(depthM float64) float64 {
	if depthM < 0 {
		depthM = 0
	}
	n := 60.0 - 5.0*depthM/1000.0
	if n < 48 {
		n = 48
	}
	return n
}

// IsThermoclineBetween reports whether the thermocline lies strictly between
// the two depths. Order-independent.
func IsThermoclineBetween(depthA, depthB float64) bool {
	lo, hi := depthA, depthB
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo < ThermoclineDepthM && ThermoclineDepthM < hi
}

// IsInSurfaceDuct reports whether the depth sits inside the surface duct.
func IsInSurfaceDuct(depthM float64) bool {
	return depthM >= 0 && depthM <= SurfaceDuctDepthM
}

// ColumnSample is one diagnostic sample of the water column.
type ColumnSample struct {
	DepthM       float64 `json:"depth_m"`
	TemperatureC float64 `json:"temperature_c"`
	SoundSpeedMS float64 `json:"sound_speed_ms"`
}

// SampleWaterColumn returns ordered samples from the surface down to maxDepth
// inclusive. A non-positive step falls back to 10 m.
func SampleWaterColumn(maxDepthM, stepM float64) []ColumnSample {
	if stepM <= 0 {
		stepM = 10
	}
	if maxDepthM < 0 {
		maxDepthM = 0
	}
	var samples []ColumnSample
	for d := 0.0; d <= maxDepthM; d += stepM {
		samples = append(samples, ColumnSample{
			DepthM:       d,
			TemperatureC: Temperature(d),
			SoundSpeedMS: SoundSpeed(d),
		})
	}
	if last := samples[len(samples)-1].DepthM; last < maxDepthM {
		samples = append(samples, ColumnSample{
			DepthM:       maxDepthM,
			TemperatureC: Temperature(maxDepthM),
			SoundSpeedMS: SoundSpeed(maxDepthM),
		})
	}
	return samples
}
