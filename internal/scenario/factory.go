package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"sonarsim/internal/contact"
)

// Build turns a validated definition into a flat, ordered list of normalized
// target configurations. Core targets come first in definition order, then
// procedural targets. Every random field consumes exactly one draw from rng
// in a fixed order, so identically seeded streams reproduce the output
// byte for byte.
func Build(def *Definition, rng *rand.Rand) ([]contact.Config, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	configs := make([]contact.Config, 0, len(def.CoreTargets))
	for _, t := range def.CoreTargets {
		cfg := coreConfig(t)
		cfg.Seed = rng.Int63()
		configs = append(configs, normalize(cfg))
	}

	if p := def.Procedural; p != nil {
		for i := 0; i < p.Count; i++ {
			cfg := proceduralConfig(def.ID, i, p, rng)
			configs = append(configs, normalize(cfg))
		}
	}
	return configs, nil
}

func coreConfig(t TargetDef) contact.Config {
	cfg := contact.Config{
		ID:      t.ID,
		Type:    t.Type,
		ClassID: t.ClassID,
		BioType: t.BioType,
	}
	if t.X != nil && t.Z != nil {
		cfg.X = *t.X
		cfg.Z = *t.Z
	} else {
		// Polar placement: compass bearing back to the math angle the
		// kinematics use (bearing 0 = north = -90° math).
		angle := (*t.BearingDeg - 90) * math.Pi / 180
		cfg.X = math.Cos(angle) * *t.Distance
		cfg.Z = math.Sin(angle) * *t.Distance
	}
	if t.CourseRad != nil {
		cfg.Course = *t.CourseRad
	}
	if t.Speed != nil {
		cfg.Speed = *t.Speed
	} else {
		cfg.Speed = -1 // sentinel: fill from defaults
	}
	if t.TurnRate != nil {
		cfg.TurnRate = *t.TurnRate
	} else {
		cfg.TurnRate = -1
	}
	if t.RPM != nil {
		cfg.RPM = *t.RPM
	} else {
		cfg.RPM = -1
	}
	if t.BladeCount != nil {
		cfg.BladeCount = *t.BladeCount
	}
	if t.ShaftRate != nil {
		cfg.ShaftRate = *t.ShaftRate
	}
	if t.BioRate != nil {
		cfg.BioRate = *t.BioRate
	}
	if t.PatrolRadius != nil {
		cfg.PatrolRadius = *t.PatrolRadius
	} else {
		cfg.PatrolRadius = -1
	}
	return cfg
}

// proceduralConfig draws one generated target. Draw order is part of the
// reproducibility contract: type, distance, angle, class (ships and
// submarines only), speed, rpm, blade count, seed.
func proceduralConfig(scenarioID string, index int, p *Procedural, rng *rand.Rand) contact.Config {
	typ := pickType(p.Types, rng.Float64())
	distance := drawRange(p.Distance, rng.Float64())
	angle := drawRange(p.AngleRad, rng.Float64())

	classID := ""
	if typ == contact.TypeShip || typ == contact.TypeSubmarine {
		ids := contact.ClassIDsFor(typ)
		classID = ids[rng.Intn(len(ids))]
	}

	speed := drawRange(p.Speed, rng.Float64())
	rpm := drawRange(p.RPM, rng.Float64())
	bladeCount := p.BladeCount.Min
	if span := p.BladeCount.Max - p.BladeCount.Min; span > 0 {
		bladeCount += rng.Intn(span + 1)
	}
	seed := rng.Int63()

	return contact.Config{
		ID:           fmt.Sprintf("%s-contact-%02d", scenarioID, index+1),
		Type:         typ,
		ClassID:      classID,
		X:            math.Cos(angle) * distance,
		Z:            math.Sin(angle) * distance,
		Course:       angle, // initial course along the placement ray
		Speed:        speed,
		TurnRate:     -1,
		RPM:          rpm,
		BladeCount:   bladeCount,
		PatrolRadius: -1,
		Seed:         seed,
	}
}

func pickType(weights []TypeWeight, draw float64) contact.Type {
	total := 0.0
	for _, w := range weights {
		total += w.Weight
	}
	mark := draw * total
	for _, w := range weights {
		mark -= w.Weight
		if mark < 0 {
			return w.Type
		}
	}
	return weights[len(weights)-1].Type
}

func drawRange(r Range, draw float64) float64 {
	return r.Min + draw*(r.Max-r.Min)
}

// normalize applies the merge order type defaults → class profile → explicit
// fields, clamps acoustic fields, and derives shaftRate when absent. The
// sentinel -1 marks fields the definition left unset.
func normalize(cfg contact.Config) contact.Config {
	d := contact.DefaultsFor(cfg.Type)
	profile, hasProfile := contact.ProfileFor(cfg.ClassID)

	if cfg.Speed < 0 {
		cfg.Speed = d.Speed
	}
	if cfg.TurnRate < 0 {
		cfg.TurnRate = d.TurnRate
	}
	if cfg.PatrolRadius < 0 {
		cfg.PatrolRadius = d.PatrolRadius
	}
	if cfg.RPM < 0 {
		cfg.RPM = d.RPM
		if hasProfile && profile.RPM > 0 {
			cfg.RPM = profile.RPM
		}
	}
	if cfg.BladeCount == 0 {
		cfg.BladeCount = d.BladeCount
		if hasProfile && profile.BladeCount > 0 {
			cfg.BladeCount = profile.BladeCount
		}
	}
	if cfg.ShaftRate == 0 && hasProfile && profile.ShaftRate > 0 {
		cfg.ShaftRate = profile.ShaftRate
	}

	cfg.RPM = clamp(cfg.RPM, contact.MinRPM, contact.MaxRPM)
	cfg.BladeCount = clampInt(cfg.BladeCount, contact.MinBladeCount, contact.MaxBladeCount)
	if cfg.ShaftRate == 0 {
		cfg.ShaftRate = cfg.RPM / 60
	}
	cfg.ShaftRate = clamp(cfg.ShaftRate, contact.MinShaftRate, contact.MaxShaftRate)
	if cfg.Speed < 0 {
		cfg.Speed = 0
	}
	return cfg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
