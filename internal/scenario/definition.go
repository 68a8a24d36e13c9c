// Package scenario loads declarative scenario definitions and turns them
// into normalized target configurations through a deterministic factory.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sonarsim/internal/contact"
)

// Definition is the root scenario document: manually placed core targets
// plus an optional procedural generation block.
type Definition struct {
	ID          string      `yaml:"id"`
	Description string      `yaml:"description,omitempty"`
	CoreTargets []TargetDef `yaml:"core_targets"`
	Procedural  *Procedural `yaml:"procedural,omitempty"`
}

// TargetDef places one core target. Placement is either cartesian (x, z) or
// polar (distance, bearing_deg); exactly one of the two must be present.
// Optional fields left nil fall back to type and class defaults.
type TargetDef struct {
	ID           string       `yaml:"id"`
	Type         contact.Type `yaml:"type"`
	ClassID      string       `yaml:"class_id,omitempty"`
	X            *float64     `yaml:"x,omitempty"`
	Z            *float64     `yaml:"z,omitempty"`
	Distance     *float64     `yaml:"distance,omitempty"`
	BearingDeg   *float64     `yaml:"bearing_deg,omitempty"`
	CourseRad    *float64     `yaml:"course_rad,omitempty"`
	Speed        *float64     `yaml:"speed,omitempty"`
	TurnRate     *float64     `yaml:"turn_rate,omitempty"`
	RPM          *float64     `yaml:"rpm,omitempty"`
	BladeCount   *int         `yaml:"blade_count,omitempty"`
	ShaftRate    *float64     `yaml:"shaft_rate,omitempty"`
	BioType      string       `yaml:"bio_type,omitempty"`
	BioRate      *float64     `yaml:"bio_rate,omitempty"`
	PatrolRadius *float64     `yaml:"patrol_radius,omitempty"`
}

// Range is a closed numeric interval used by procedural draws.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange is a closed integer interval.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// TypeWeight gives one contact type a relative generation weight.
type TypeWeight struct {
	Type   contact.Type `yaml:"type"`
	Weight float64      `yaml:"weight"`
}

// Procedural configures deterministic random target generation.
type Procedural struct {
	Count      int          `yaml:"count"`
	Types      []TypeWeight `yaml:"types"`
	Distance   Range        `yaml:"distance"`
	AngleRad   Range        `yaml:"angle_rad"`
	Speed      Range        `yaml:"speed"`
	RPM        Range        `yaml:"rpm"`
	BladeCount IntRange     `yaml:"blade_count"`
}

// Load reads a YAML scenario definition from disk and validates it.
func Load(path string) (*Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var def Definition
	if err := yaml.Unmarshal(b, &def); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}
